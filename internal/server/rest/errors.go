package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/ticketledger/internal/common"
	"github.com/dmitrijs2005/ticketledger/internal/server/services"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

var kindStatus = map[error]int{
	common.ErrorUnauthenticated: http.StatusUnauthorized,
	common.ErrorForbidden:       http.StatusForbidden,
	common.ErrorNotFound:        http.StatusNotFound,
	common.ErrorInvalidInput:    http.StatusBadRequest,
	common.ErrorInvalidState:    http.StatusConflict,
	common.ErrorConflict:        http.StatusConflict,
	common.ErrorInternal:        http.StatusInternalServerError,
}

// statusOf maps a service error to an HTTP status and body.
func statusOf(err error) (int, errorResponse) {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, errorResponse{Error: err.Error(), Code: "timeout"}
	}

	kind := common.KindOf(err)
	body := errorResponse{Error: err.Error(), Code: services.ErrorCode(err)}
	if kind == common.ErrorInternal {
		body.Error = "internal error"
	}
	return kindStatus[kind], body
}

func (h *handler) abort(c *gin.Context, op string, err error) {
	code, body := statusOf(err)
	if code == http.StatusInternalServerError {
		h.logger.Error(c.Request.Context(), op+" failed", "error", err)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(code, body)
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "invalid_input"})
}
