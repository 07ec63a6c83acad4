package rest

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/ticketledger/internal/api"
	"github.com/dmitrijs2005/ticketledger/internal/auth"
	"github.com/dmitrijs2005/ticketledger/internal/clock"
	"github.com/dmitrijs2005/ticketledger/internal/common"
	"github.com/dmitrijs2005/ticketledger/internal/idgen"
	"github.com/dmitrijs2005/ticketledger/internal/logging"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/ticketledger/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router http.Handler
	clock  *clock.Manual
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	clk := clock.NewManual(now)
	m := repomanager.NewMemoryRepositoryManager()
	ids := idgen.NewSequence("id")
	log := logging.NewNopLogger()
	ledger := services.NewTransactionLedger(m, clk, ids)
	f := services.NewFacade(
		services.NewUserService(m, clk, log),
		services.NewEventService(m, clk, ids, log),
		services.NewTicketService(m, ledger, clk, ids, log),
		ledger,
	)
	return &testEnv{
		router: NewRouter(f, auth.NewVerifier(common.TokenAudience, time.Hour, clk), log),
		clock:  clk,
	}
}

type identity struct {
	priv      ed25519.PrivateKey
	principal string
}

func newIdentity(t *testing.T) identity {
	t.Helper()
	pub, priv, err := auth.GenerateKeypair()
	require.NoError(t, err)
	return identity{priv: priv, principal: auth.PrincipalOf(pub)}
}

// do sends a request as id (nil for anonymous) and decodes the JSON answer
// into out when out is non-nil.
func (e *testEnv) do(t *testing.T, id *identity, method, path string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if id != nil {
		tok, err := auth.MintToken(id.priv, common.TokenAudience, time.Minute, e.clock.Now())
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	if out != nil {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	var body map[string]string
	w := env.do(t, nil, http.MethodGet, "/health", nil, &body)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	var body errorResponse
	w := env.do(t, nil, http.MethodGet, "/v1/me", nil, &body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthenticated", body.Code)

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer nonsense")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"invalid_token"`)
}

func TestPublicListings(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, nil, http.MethodGet, "/v1/events", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"events":[]}`, w.Body.String())

	var body errorResponse
	w = env.do(t, nil, http.MethodGet, "/v1/events/missing/tickets", nil, &body)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "event_not_found", body.Code)
}

func TestMalformedBody(t *testing.T) {
	env := newTestEnv(t)
	id := newIdentity(t)

	tok, err := auth.MintToken(id.priv, common.TokenAudience, time.Minute, now)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/v1/users", bytes.NewBufferString("{"))
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"invalid_input"`)
}

func TestTicketFlow(t *testing.T) {
	env := newTestEnv(t)
	org, p, q := newIdentity(t), newIdentity(t), newIdentity(t)

	var user api.UserResponse
	w := env.do(t, &org, http.MethodPost, "/v1/users", api.RegisterRequest{Name: "Org", Role: "organizer"}, &user)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, org.principal, user.User.ID)
	require.Equal(t, http.StatusCreated, env.do(t, &p, http.MethodPost, "/v1/users", api.RegisterRequest{Name: "P", Role: "participant"}, nil).Code)
	require.Equal(t, http.StatusCreated, env.do(t, &q, http.MethodPost, "/v1/users", api.RegisterRequest{Name: "Q", Role: "participant"}, nil).Code)

	var fail errorResponse
	w = env.do(t, &q, http.MethodPost, "/v1/users", api.RegisterRequest{Name: "Q", Role: "participant"}, &fail)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "already_registered", fail.Code)

	var ev api.EventResponse
	w = env.do(t, &org, http.MethodPost, "/v1/events", api.CreateEventRequest{Name: "Show", Date: now.Add(time.Hour), Location: "Hall"}, &ev)
	require.Equal(t, http.StatusCreated, w.Code)

	var batch api.TicketsResponse
	w = env.do(t, &org, http.MethodPost, "/v1/events/"+ev.Event.ID+"/tickets", api.IssueTicketsRequest{Role: "Regular", Price: 15, Quantity: 3}, &batch)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, batch.Tickets, 3)
	ticket := batch.Tickets[0].ID

	w = env.do(t, &p, http.MethodPost, "/v1/events/"+ev.Event.ID+"/tickets", api.IssueTicketsRequest{Role: "Regular", Price: 15, Quantity: 1}, &fail)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "not_organizer", fail.Code)

	var tx api.TransactionResponse
	w = env.do(t, &p, http.MethodPost, "/v1/tickets/"+ticket+"/buy", api.BuyTicketRequest{Pay: 15}, &tx)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "buy", tx.Transaction.Mode)

	w = env.do(t, &q, http.MethodPost, "/v1/tickets/"+ticket+"/buy", api.BuyTicketRequest{Pay: 15}, &fail)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ticket_already_sold", fail.Code)

	w = env.do(t, &q, http.MethodPost, "/v1/tickets/"+ticket+"/transfer", api.TransferTicketRequest{To: p.principal}, &fail)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "not_owner", fail.Code)

	w = env.do(t, &p, http.MethodPost, "/v1/tickets/"+ticket+"/transfer", api.TransferTicketRequest{To: q.principal}, &tx)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, p.principal, tx.Transaction.SenderID)

	var mine api.TicketsResponse
	w = env.do(t, &q, http.MethodGet, "/v1/me/tickets", nil, &mine)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, mine.Tickets, 1)
	assert.Equal(t, ticket, mine.Tickets[0].ID)

	var txs api.TransactionsResponse
	w = env.do(t, &org, http.MethodGet, "/v1/me/transactions", nil, &txs)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, txs.Transactions, 2)

	env.clock.Advance(2 * time.Hour)
	w = env.do(t, &org, http.MethodPost, "/v1/events/"+ev.Event.ID+"/tickets", api.IssueTicketsRequest{Role: "VIP", Price: 5, Quantity: 1}, &fail)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "event_started", fail.Code)
}

func TestStatusOf(t *testing.T) {
	code, body := statusOf(fmt.Errorf("%w: secret dsn", common.ErrorInternal))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, errorResponse{Error: "internal error", Code: "internal_error"}, body)

	code, body = statusOf(services.ErrPriceMismatch)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "price_mismatch", body.Code)

	code, _ = statusOf(context.DeadlineExceeded)
	assert.Equal(t, http.StatusGatewayTimeout, code)
}
