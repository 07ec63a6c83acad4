package api

import (
	"context"

	"google.golang.org/grpc"
)

// LedgerClient is the client side of LedgerService.
type LedgerClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*UserResponse, error)
	WhoAmI(ctx context.Context, in *WhoAmIRequest, opts ...grpc.CallOption) (*UserResponse, error)
	CreateEvent(ctx context.Context, in *CreateEventRequest, opts ...grpc.CallOption) (*EventResponse, error)
	ListEvents(ctx context.Context, in *ListEventsRequest, opts ...grpc.CallOption) (*EventsResponse, error)
	IssueTickets(ctx context.Context, in *IssueTicketsRequest, opts ...grpc.CallOption) (*TicketsResponse, error)
	ListEventTickets(ctx context.Context, in *ListEventTicketsRequest, opts ...grpc.CallOption) (*TicketsResponse, error)
	MyTickets(ctx context.Context, in *MyTicketsRequest, opts ...grpc.CallOption) (*TicketsResponse, error)
	MyTransactions(ctx context.Context, in *MyTransactionsRequest, opts ...grpc.CallOption) (*TransactionsResponse, error)
	BuyTicket(ctx context.Context, in *BuyTicketRequest, opts ...grpc.CallOption) (*TransactionResponse, error)
	TransferTicket(ctx context.Context, in *TransferTicketRequest, opts ...grpc.CallOption) (*TransactionResponse, error)
}

type ledgerClient struct {
	cc grpc.ClientConnInterface
}

func NewLedgerClient(cc grpc.ClientConnInterface) LedgerClient {
	return &ledgerClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *ledgerClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, MethodRegister, in, opts)
}

func (c *ledgerClient) WhoAmI(ctx context.Context, in *WhoAmIRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, MethodWhoAmI, in, opts)
}

func (c *ledgerClient) CreateEvent(ctx context.Context, in *CreateEventRequest, opts ...grpc.CallOption) (*EventResponse, error) {
	return invoke[EventResponse](ctx, c.cc, MethodCreateEvent, in, opts)
}

func (c *ledgerClient) ListEvents(ctx context.Context, in *ListEventsRequest, opts ...grpc.CallOption) (*EventsResponse, error) {
	return invoke[EventsResponse](ctx, c.cc, MethodListEvents, in, opts)
}

func (c *ledgerClient) IssueTickets(ctx context.Context, in *IssueTicketsRequest, opts ...grpc.CallOption) (*TicketsResponse, error) {
	return invoke[TicketsResponse](ctx, c.cc, MethodIssueTickets, in, opts)
}

func (c *ledgerClient) ListEventTickets(ctx context.Context, in *ListEventTicketsRequest, opts ...grpc.CallOption) (*TicketsResponse, error) {
	return invoke[TicketsResponse](ctx, c.cc, MethodListEventTickets, in, opts)
}

func (c *ledgerClient) MyTickets(ctx context.Context, in *MyTicketsRequest, opts ...grpc.CallOption) (*TicketsResponse, error) {
	return invoke[TicketsResponse](ctx, c.cc, MethodMyTickets, in, opts)
}

func (c *ledgerClient) MyTransactions(ctx context.Context, in *MyTransactionsRequest, opts ...grpc.CallOption) (*TransactionsResponse, error) {
	return invoke[TransactionsResponse](ctx, c.cc, MethodMyTransactions, in, opts)
}

func (c *ledgerClient) BuyTicket(ctx context.Context, in *BuyTicketRequest, opts ...grpc.CallOption) (*TransactionResponse, error) {
	return invoke[TransactionResponse](ctx, c.cc, MethodBuyTicket, in, opts)
}

func (c *ledgerClient) TransferTicket(ctx context.Context, in *TransferTicketRequest, opts ...grpc.CallOption) (*TransactionResponse, error) {
	return invoke[TransactionResponse](ctx, c.cc, MethodTransferTicket, in, opts)
}
