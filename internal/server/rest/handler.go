package rest

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/ticketledger/internal/api"
	"github.com/dmitrijs2005/ticketledger/internal/auth"
	"github.com/dmitrijs2005/ticketledger/internal/logging"
	"github.com/dmitrijs2005/ticketledger/internal/server/models"
	"github.com/dmitrijs2005/ticketledger/internal/server/services"
	"github.com/gin-gonic/gin"
)

type handler struct {
	ledger   *services.Facade
	verifier *auth.Verifier
	logger   logging.Logger
}

func caller(ctx context.Context) models.Principal {
	p, _ := auth.PrincipalFromContext(ctx)
	return models.Principal(p)
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) register(c *gin.Context) {
	var req api.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	u, err := h.ledger.Register(ctx, caller(ctx), req.Name, models.Role(req.Role))
	if err != nil {
		h.abort(c, "register", err)
		return
	}
	c.JSON(http.StatusCreated, api.UserResponse{User: api.FromUser(u)})
}

func (h *handler) whoAmI(c *gin.Context) {
	ctx := c.Request.Context()
	u, err := h.ledger.WhoAmI(ctx, caller(ctx))
	if err != nil {
		h.abort(c, "whoami", err)
		return
	}
	c.JSON(http.StatusOK, api.UserResponse{User: api.FromUser(u)})
}

func (h *handler) createEvent(c *gin.Context) {
	var req api.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	e, err := h.ledger.CreateEvent(ctx, caller(ctx), req.Name, req.Date, req.Location)
	if err != nil {
		h.abort(c, "create event", err)
		return
	}
	c.JSON(http.StatusCreated, api.EventResponse{Event: api.FromEvent(e)})
}

func (h *handler) listEvents(c *gin.Context) {
	list, err := h.ledger.ListEvents(c.Request.Context())
	if err != nil {
		h.abort(c, "list events", err)
		return
	}
	c.JSON(http.StatusOK, api.EventsResponse{Events: api.FromEvents(list)})
}

func (h *handler) issueTickets(c *gin.Context) {
	var req api.IssueTicketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	list, err := h.ledger.IssueTickets(ctx, caller(ctx), c.Param("id"), models.TicketRole(req.Role), req.Price, req.Quantity)
	if err != nil {
		h.abort(c, "issue tickets", err)
		return
	}
	c.JSON(http.StatusCreated, api.TicketsResponse{Tickets: api.FromTickets(list)})
}

func (h *handler) listEventTickets(c *gin.Context) {
	list, err := h.ledger.ListEventTickets(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.abort(c, "list event tickets", err)
		return
	}
	c.JSON(http.StatusOK, api.TicketsResponse{Tickets: api.FromTickets(list)})
}

func (h *handler) myTickets(c *gin.Context) {
	ctx := c.Request.Context()
	list, err := h.ledger.MyTickets(ctx, caller(ctx))
	if err != nil {
		h.abort(c, "my tickets", err)
		return
	}
	c.JSON(http.StatusOK, api.TicketsResponse{Tickets: api.FromTickets(list)})
}

func (h *handler) myTransactions(c *gin.Context) {
	ctx := c.Request.Context()
	list, err := h.ledger.MyTransactions(ctx, caller(ctx))
	if err != nil {
		h.abort(c, "my transactions", err)
		return
	}
	c.JSON(http.StatusOK, api.TransactionsResponse{Transactions: api.FromTransactions(list)})
}

func (h *handler) buyTicket(c *gin.Context) {
	var req api.BuyTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	tx, err := h.ledger.BuyTicket(ctx, caller(ctx), c.Param("id"), req.Pay)
	if err != nil {
		h.abort(c, "buy ticket", err)
		return
	}
	c.JSON(http.StatusCreated, api.TransactionResponse{Transaction: api.FromTransaction(tx)})
}

func (h *handler) transferTicket(c *gin.Context) {
	var req api.TransferTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	tx, err := h.ledger.TransferTicket(ctx, caller(ctx), c.Param("id"), models.Principal(req.To))
	if err != nil {
		h.abort(c, "transfer ticket", err)
		return
	}
	c.JSON(http.StatusCreated, api.TransactionResponse{Transaction: api.FromTransaction(tx)})
}
