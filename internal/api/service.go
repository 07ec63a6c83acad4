package api

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "ticketledger.v1.LedgerService"

// Method names of LedgerService.
const (
	MethodPing             = "Ping"
	MethodRegister         = "Register"
	MethodWhoAmI           = "WhoAmI"
	MethodCreateEvent      = "CreateEvent"
	MethodListEvents       = "ListEvents"
	MethodIssueTickets     = "IssueTickets"
	MethodListEventTickets = "ListEventTickets"
	MethodMyTickets        = "MyTickets"
	MethodMyTransactions   = "MyTransactions"
	MethodBuyTicket        = "BuyTicket"
	MethodTransferTicket   = "TransferTicket"
)

// FullMethod returns the "/service/method" path gRPC uses for method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// LedgerServer is implemented by the server side of LedgerService. The caller
// identity travels in the context, not in the messages.
type LedgerServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Register(context.Context, *RegisterRequest) (*UserResponse, error)
	WhoAmI(context.Context, *WhoAmIRequest) (*UserResponse, error)
	CreateEvent(context.Context, *CreateEventRequest) (*EventResponse, error)
	ListEvents(context.Context, *ListEventsRequest) (*EventsResponse, error)
	IssueTickets(context.Context, *IssueTicketsRequest) (*TicketsResponse, error)
	ListEventTickets(context.Context, *ListEventTicketsRequest) (*TicketsResponse, error)
	MyTickets(context.Context, *MyTicketsRequest) (*TicketsResponse, error)
	MyTransactions(context.Context, *MyTransactionsRequest) (*TransactionsResponse, error)
	BuyTicket(context.Context, *BuyTicketRequest) (*TransactionResponse, error)
	TransferTicket(context.Context, *TransferTicketRequest) (*TransactionResponse, error)
}

func RegisterLedgerServer(s grpc.ServiceRegistrar, srv LedgerServer) {
	s.RegisterService(&LedgerServiceDesc, srv)
}

// unary adapts a typed LedgerServer method to a grpc.MethodHandler, running
// the server's interceptor chain when one is installed.
func unary[Req, Resp any](method string, call func(LedgerServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}

		handler := func(ctx context.Context, req any) (any, error) {
			out, err := call(srv.(LedgerServer), ctx, req.(*Req))
			if err != nil {
				return nil, err
			}
			return out, nil
		}
		if interceptor == nil {
			return handler(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
		return interceptor(ctx, in, info, handler)
	}
}

var LedgerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LedgerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: MethodPing, Handler: unary(MethodPing, LedgerServer.Ping)},
		{MethodName: MethodRegister, Handler: unary(MethodRegister, LedgerServer.Register)},
		{MethodName: MethodWhoAmI, Handler: unary(MethodWhoAmI, LedgerServer.WhoAmI)},
		{MethodName: MethodCreateEvent, Handler: unary(MethodCreateEvent, LedgerServer.CreateEvent)},
		{MethodName: MethodListEvents, Handler: unary(MethodListEvents, LedgerServer.ListEvents)},
		{MethodName: MethodIssueTickets, Handler: unary(MethodIssueTickets, LedgerServer.IssueTickets)},
		{MethodName: MethodListEventTickets, Handler: unary(MethodListEventTickets, LedgerServer.ListEventTickets)},
		{MethodName: MethodMyTickets, Handler: unary(MethodMyTickets, LedgerServer.MyTickets)},
		{MethodName: MethodMyTransactions, Handler: unary(MethodMyTransactions, LedgerServer.MyTransactions)},
		{MethodName: MethodBuyTicket, Handler: unary(MethodBuyTicket, LedgerServer.BuyTicket)},
		{MethodName: MethodTransferTicket, Handler: unary(MethodTransferTicket, LedgerServer.TransferTicket)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ticketledger/v1/ledger",
}
