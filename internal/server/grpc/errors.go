package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/ticketledger/internal/common"
	"github.com/dmitrijs2005/ticketledger/internal/server/services"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorDomain is the ErrorInfo domain attached to every failure status.
const ErrorDomain = "ticketledger"

var kindCodes = map[error]codes.Code{
	common.ErrorUnauthenticated: codes.Unauthenticated,
	common.ErrorForbidden:       codes.PermissionDenied,
	common.ErrorNotFound:        codes.NotFound,
	common.ErrorInvalidInput:    codes.InvalidArgument,
	common.ErrorInvalidState:    codes.FailedPrecondition,
	common.ErrorConflict:        codes.AlreadyExists,
	common.ErrorInternal:        codes.Internal,
}

// toStatus converts a service error to a status carrying an ErrorInfo whose
// Reason is services.ErrorCode(err). Internal details are not exposed.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	kind := common.KindOf(err)
	msg := err.Error()
	if kind == common.ErrorInternal {
		msg = "internal error"
	}
	return errorStatus(err, msg)
}

func errorStatus(err error, msg string) error {
	st := status.New(kindCodes[common.KindOf(err)], msg)
	detailed, derr := st.WithDetails(&errdetails.ErrorInfo{
		Reason: services.ErrorCode(err),
		Domain: ErrorDomain,
	})
	if derr != nil {
		return st.Err()
	}
	return detailed.Err()
}
