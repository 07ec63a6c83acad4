// Package server wires the ticket ledger together: configuration, logging,
// storage backend, audit sink, services and the gRPC and HTTP endpoints.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/ticketledger/internal/auth"
	"github.com/dmitrijs2005/ticketledger/internal/clock"
	"github.com/dmitrijs2005/ticketledger/internal/idgen"
	"github.com/dmitrijs2005/ticketledger/internal/logging"
	"github.com/dmitrijs2005/ticketledger/internal/server/audit"
	"github.com/dmitrijs2005/ticketledger/internal/server/config"
	"github.com/dmitrijs2005/ticketledger/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/ticketledger/internal/server/rest"
	"github.com/dmitrijs2005/ticketledger/internal/server/services"
	"github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/ticketledger/internal/server/grpc"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	repos     repomanager.RepositoryManager
	publisher audit.Publisher
	ledger    *services.Facade
	verifier  *auth.Verifier
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(os.Stdout, c.LogFormat, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	repos, err := openRepositories(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}
	if err := repos.RunMigrations(ctx); err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	publisher, err := audit.New(ctx, audit.Options{
		Sink:         c.AuditSink,
		KafkaBrokers: c.KafkaBrokers,
		KafkaTopic:   c.KafkaTopic,
		S3: audit.S3Options{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			Prefix:       c.S3Prefix,
		},
	})
	if err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("audit init error: %w", err)
	}

	clk := clock.NewSystem()
	ids := idgen.NewUUID()
	ledger := services.NewTransactionLedger(repos, clk, ids)
	facade := services.NewFacade(
		services.NewUserService(repos, clk, logger),
		services.NewEventService(repos, clk, ids, logger),
		services.NewTicketService(repos, ledger, clk, ids, logger,
			services.WithMaxBatchSize(c.MaxBatchSize),
			services.WithPublisher(publisher),
		),
		ledger,
	)

	logger.Info(ctx, "app initialized", "storage", c.StorageBackend, "audit_sink", c.AuditSink)

	return &App{
		config:    c,
		logger:    logger,
		repos:     repos,
		publisher: publisher,
		ledger:    facade,
		verifier:  auth.NewVerifier(c.TokenAudience, c.TokenMaxLifetime, clk),
	}, nil
}

func openRepositories(ctx context.Context, c *config.Config) (repomanager.RepositoryManager, error) {
	switch c.StorageBackend {
	case config.BackendPostgres:
		return repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		})
		return repomanager.NewRedisRepositoryManager(client, c.RedisKeyPrefix), nil
	case config.BackendMemory:
		return repomanager.NewMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// runner is a server that serves until its context ends.
type runner interface {
	Run(ctx context.Context) error
}

func (app *App) start(ctx context.Context, cancelFunc context.CancelFunc, name string, r runner) {
	if err := r.Run(ctx); err != nil {
		app.logger.Error(ctx, name+" server failed", "error", err)
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives or a server fails, and
// then releases storage and the audit sink.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.start(ctx, cancelFunc, "grpc", gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.ledger, app.verifier))
	}()

	if app.config.EndpointAddrHTTP != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.start(ctx, cancelFunc, "http", rest.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.ledger, app.verifier))
		}()
	}

	wg.Wait()
	app.close(context.Background())
}

func (app *App) close(ctx context.Context) {
	if err := app.publisher.Close(); err != nil {
		app.logger.Error(ctx, "audit close", "error", err)
	}
	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "storage close", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
