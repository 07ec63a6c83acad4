package api

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

// echoServer answers every method with canned data derived from the request.
type echoServer struct {
	lastMethod string
}

func (s *echoServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return &PingResponse{Status: "OK"}, nil
}

func (s *echoServer) Register(_ context.Context, in *RegisterRequest) (*UserResponse, error) {
	return &UserResponse{User: User{ID: "u", Name: in.Name, Role: in.Role}}, nil
}

func (s *echoServer) WhoAmI(context.Context, *WhoAmIRequest) (*UserResponse, error) {
	return nil, status.Error(codes.Unauthenticated, "nobody")
}

func (s *echoServer) CreateEvent(_ context.Context, in *CreateEventRequest) (*EventResponse, error) {
	return &EventResponse{Event: Event{ID: "e", Name: in.Name, Date: in.Date, Location: in.Location}}, nil
}

func (s *echoServer) ListEvents(context.Context, *ListEventsRequest) (*EventsResponse, error) {
	return &EventsResponse{Events: []Event{}}, nil
}

func (s *echoServer) IssueTickets(_ context.Context, in *IssueTicketsRequest) (*TicketsResponse, error) {
	out := make([]Ticket, in.Quantity)
	for i := range out {
		out[i] = Ticket{EventID: in.EventID, Role: in.Role, Price: in.Price}
	}
	return &TicketsResponse{Tickets: out}, nil
}

func (s *echoServer) ListEventTickets(_ context.Context, in *ListEventTicketsRequest) (*TicketsResponse, error) {
	return &TicketsResponse{Tickets: []Ticket{{EventID: in.EventID}}}, nil
}

func (s *echoServer) MyTickets(context.Context, *MyTicketsRequest) (*TicketsResponse, error) {
	return &TicketsResponse{}, nil
}

func (s *echoServer) MyTransactions(context.Context, *MyTransactionsRequest) (*TransactionsResponse, error) {
	return &TransactionsResponse{}, nil
}

func (s *echoServer) BuyTicket(_ context.Context, in *BuyTicketRequest) (*TransactionResponse, error) {
	return &TransactionResponse{Transaction: Transaction{Mode: "buy", TicketID: in.TicketID, Pay: in.Pay}}, nil
}

func (s *echoServer) TransferTicket(_ context.Context, in *TransferTicketRequest) (*TransactionResponse, error) {
	return &TransactionResponse{Transaction: Transaction{Mode: "transfer", TicketID: in.TicketID, ParticipantID: in.To}}, nil
}

func dial(t *testing.T, srv *echoServer) LedgerClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer(grpc.UnaryInterceptor(func(ctx context.Context, req any, info *grpc.UnaryServerInfo, h grpc.UnaryHandler) (any, error) {
		srv.lastMethod = info.FullMethod
		return h(ctx, req)
	}))
	RegisterLedgerServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewLedgerClient(conn)
}

func TestCodec_Registered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)

	data, err := c.Marshal(&BuyTicketRequest{TicketID: "t-1", Pay: 18446744073709551615})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ticket_id":"t-1","pay":18446744073709551615}`, string(data))

	var back BuyTicketRequest
	require.NoError(t, c.Unmarshal(data, &back))
	assert.Equal(t, uint64(18446744073709551615), back.Pay)

	require.NoError(t, c.Unmarshal(nil, &back), "empty messages decode to nothing")
	assert.Error(t, c.Unmarshal([]byte("{"), &back))
}

func TestLedgerService_RoundTrip(t *testing.T) {
	srv := &echoServer{}
	c := dial(t, srv)
	ctx := context.Background()

	ping, err := c.Ping(ctx, &PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", ping.Status)
	assert.Equal(t, "/ticketledger.v1.LedgerService/Ping", srv.lastMethod)

	date := time.Date(2027, 5, 1, 18, 0, 0, 0, time.UTC)
	ev, err := c.CreateEvent(ctx, &CreateEventRequest{Name: "Gig", Date: date, Location: "Riga"})
	require.NoError(t, err)
	assert.True(t, ev.Event.Date.Equal(date))
	assert.Equal(t, FullMethod(MethodCreateEvent), srv.lastMethod)

	batch, err := c.IssueTickets(ctx, &IssueTicketsRequest{EventID: "e", Role: "VIP", Price: 5, Quantity: 3})
	require.NoError(t, err)
	assert.Len(t, batch.Tickets, 3)

	tx, err := c.TransferTicket(ctx, &TransferTicketRequest{TicketID: "t", To: "q"})
	require.NoError(t, err)
	assert.Equal(t, "q", tx.Transaction.ParticipantID)

	_, err = c.WhoAmI(ctx, &WhoAmIRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}
