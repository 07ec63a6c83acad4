package cli

import (
	"bufio"
	"context"
	"crypto/ed25519"
	"io"
	"os"

	"github.com/dmitrijs2005/ticketledger/internal/client/client"
	"github.com/dmitrijs2005/ticketledger/internal/client/config"
	"github.com/dmitrijs2005/ticketledger/internal/client/identity"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// ledgerClient is the server client plus the hook that makes it sign calls.
type ledgerClient interface {
	client.Client
	SetIdentity(key ed25519.PrivateKey)
}

type keyStore interface {
	Exists() bool
	Create(passphrase []byte) (*identity.Identity, error)
	Load(passphrase []byte) (*identity.Identity, error)
	Principal() (string, error)
}

type App struct {
	config    *config.Config
	client    ledgerClient
	store     keyStore
	reader    *bufio.Reader
	out       io.Writer
	principal string
	unlocked  bool
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr, client.Options{
		Audience:    c.TokenAudience,
		TokenTTL:    c.TokenTTL,
		CallTimeout: c.CallTimeout,
	})
	if err != nil {
		return nil, err
	}

	return newApp(c, apiClient, identity.NewStore(c.IdentityDir), os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, lc ledgerClient, ks keyStore, in io.Reader, out io.Writer) *App {
	a := &App{config: c, client: lc, store: ks, reader: bufio.NewReader(in), out: out}
	if p, err := ks.Principal(); err == nil {
		a.principal = p
	}
	return a
}

func (a *App) Run(ctx context.Context) {
	defer a.client.Close()
	a.Root(ctx)
}

func (a *App) hasIdentity() bool {
	return a.unlocked
}

func (a *App) useIdentity(id *identity.Identity) {
	a.client.SetIdentity(id.Private)
	a.principal = id.Principal
	a.unlocked = true
}
