package client

import (
	"context"
	"crypto/ed25519"
	"sync"
	"time"

	"github.com/dmitrijs2005/ticketledger/internal/api"
	"github.com/dmitrijs2005/ticketledger/internal/auth"
	"github.com/dmitrijs2005/ticketledger/internal/clock"
	"github.com/dmitrijs2005/ticketledger/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

const (
	DefaultTokenTTL    = time.Minute
	DefaultCallTimeout = 10 * time.Second
)

// methods the server serves without a caller token
var publicMethods = map[string]struct{}{
	api.FullMethod(api.MethodPing):             {},
	api.FullMethod(api.MethodListEvents):       {},
	api.FullMethod(api.MethodListEventTickets): {},
}

type Options struct {
	Audience    string
	TokenTTL    time.Duration
	CallTimeout time.Duration
	Clock       clock.Clock
}

func (o *Options) applyDefaults() {
	if o.Audience == "" {
		o.Audience = common.TokenAudience
	}
	if o.TokenTTL <= 0 {
		o.TokenTTL = DefaultTokenTTL
	}
	if o.CallTimeout <= 0 {
		o.CallTimeout = DefaultCallTimeout
	}
	if o.Clock == nil {
		o.Clock = clock.NewSystem()
	}
}

type GRPCClient struct {
	endpointURL string
	opts        Options
	conn        *grpc.ClientConn
	client      api.LedgerClient

	mu  sync.RWMutex
	key ed25519.PrivateKey
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

// accessTokenInterceptor bounds every call with the call timeout and, when
// an identity is loaded, attaches a token minted for this call only.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	ctx, cancel := context.WithTimeout(ctx, s.opts.CallTimeout)
	defer cancel()

	key := s.signingKey()
	if key == nil {
		if _, ok := publicMethods[method]; !ok {
			return ErrNoIdentity
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	token, err := auth.MintToken(key, s.opts.Audience, s.opts.TokenTTL, s.opts.Clock.Now())
	if err != nil {
		return err
	}

	return invoker(withAccessToken(ctx, token), method, req, reply, cc, opts...)
}

// NewGRPCClient prepares a client for endpointURL. The connection is
// established lazily on the first call.
func NewGRPCClient(endpointURL string, o Options, extra ...grpc.DialOption) (*GRPCClient, error) {
	o.applyDefaults()
	c := &GRPCClient{endpointURL: endpointURL, opts: o}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, extra...)

	conn, err := grpc.NewClient(c.endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = api.NewLedgerClient(conn)
	return c, nil
}

// SetIdentity installs the key used to sign subsequent calls. A nil key
// turns signing off.
func (s *GRPCClient) SetIdentity(key ed25519.PrivateKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = key
}

func (s *GRPCClient) signingKey() ed25519.PrivateKey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) Register(ctx context.Context, name, role string) (*api.User, error) {
	resp, err := s.client.Register(ctx, &api.RegisterRequest{Name: name, Role: role})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.User, nil
}

func (s *GRPCClient) WhoAmI(ctx context.Context) (*api.User, error) {
	resp, err := s.client.WhoAmI(ctx, &api.WhoAmIRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.User, nil
}

func (s *GRPCClient) CreateEvent(ctx context.Context, in *api.CreateEventRequest) (*api.Event, error) {
	resp, err := s.client.CreateEvent(ctx, in)
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Event, nil
}

func (s *GRPCClient) ListEvents(ctx context.Context) ([]api.Event, error) {
	resp, err := s.client.ListEvents(ctx, &api.ListEventsRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Events, nil
}

func (s *GRPCClient) IssueTickets(ctx context.Context, in *api.IssueTicketsRequest) ([]api.Ticket, error) {
	resp, err := s.client.IssueTickets(ctx, in)
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Tickets, nil
}

func (s *GRPCClient) ListEventTickets(ctx context.Context, eventID string) ([]api.Ticket, error) {
	resp, err := s.client.ListEventTickets(ctx, &api.ListEventTicketsRequest{EventID: eventID})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Tickets, nil
}

func (s *GRPCClient) MyTickets(ctx context.Context) ([]api.Ticket, error) {
	resp, err := s.client.MyTickets(ctx, &api.MyTicketsRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Tickets, nil
}

func (s *GRPCClient) MyTransactions(ctx context.Context) ([]api.Transaction, error) {
	resp, err := s.client.MyTransactions(ctx, &api.MyTransactionsRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Transactions, nil
}

func (s *GRPCClient) BuyTicket(ctx context.Context, ticketID string, pay uint64) (*api.Transaction, error) {
	resp, err := s.client.BuyTicket(ctx, &api.BuyTicketRequest{TicketID: ticketID, Pay: pay})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Transaction, nil
}

func (s *GRPCClient) TransferTicket(ctx context.Context, ticketID, to string) (*api.Transaction, error) {
	resp, err := s.client.TransferTicket(ctx, &api.TransferTicketRequest{TicketID: ticketID, To: to})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Transaction, nil
}
