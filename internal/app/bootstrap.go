package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"n8nmcp/internal/config"
	"n8nmcp/internal/n8n"
	"n8nmcp/internal/server"
	"n8nmcp/internal/store"
	"n8nmcp/internal/tools"
	"n8nmcp/pkg/logging"

	"golang.org/x/sync/errgroup"
)

// ServerName is the MCP implementation name reported to clients.
const ServerName = "n8n-mcp-server"

const (
	probeTimeout    = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

// ErrConnection is returned when the startup probe cannot reach n8n.
var ErrConnection = errors.New("failed to connect to n8n API")

// Application holds the configured store, client and MCP server.
type Application struct {
	opts   Options
	config config.Config

	store  *store.Store
	client *n8n.Client
	server *server.Server

	closeOnce sync.Once
	closeErr  error
}

// NewApplication runs the startup sequence. On error every resource opened so
// far has already been released.
func NewApplication(ctx context.Context, opts Options) (*Application, error) {
	opts = opts.withDefaults()

	cfg, err := config.Load(config.LoadOptions{FilePath: opts.ConfigPath, Getenv: opts.Getenv})
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	logging.Init(level, opts.LogOutput)

	a := &Application{opts: opts, config: cfg}
	if err := a.init(ctx); err != nil {
		if closeErr := a.Close(); closeErr != nil {
			logging.Warn("Bootstrap", "Cleanup after failed startup: %v", closeErr)
		}
		return nil, err
	}
	return a, nil
}

func (a *Application) init(ctx context.Context) error {
	var err error
	a.store, err = store.Open(ctx, a.config.Database.Path)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to open database %s", a.config.Database.Path)
		return fmt.Errorf("failed to open database: %w", err)
	}
	logging.Info("Bootstrap", "Opened database %s", a.store.Path())

	a.client = n8n.NewClient(a.config.N8N.APIURL, a.config.N8N.APIKey)

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if !a.client.TestConnection(probeCtx) {
		return fmt.Errorf("%w at %s. Check your N8N_API_URL and N8N_API_KEY", ErrConnection, a.config.N8N.APIURL)
	}
	logging.Info("Bootstrap", "Connected to n8n at %s", a.config.N8N.APIURL)

	stats, err := a.store.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to read catalog statistics: %w", err)
	}
	logging.Info("Bootstrap", "Catalog has %d nodes (%d AI), %d categories, %d templates",
		stats.TotalNodes, stats.AINodes, stats.Categories, stats.TotalTemplates)
	if stats.TotalNodes == 0 {
		logging.Warn("Bootstrap", "Node catalog is empty. Run the seed command to load it")
	}

	provider := tools.NewProvider(a.store, a.client)
	a.server = server.New(server.Config{
		Name:      ServerName,
		Version:   a.opts.Version,
		Transport: a.config.MCP.Mode,
		HTTPAddr:  a.config.MCP.HTTPAddr,
	}, provider)

	return nil
}

// Config returns the loaded configuration.
func (a *Application) Config() config.Config {
	return a.config
}

// Run serves MCP until the transport ends, ctx is cancelled or a termination
// signal arrives, then closes the application.
func (a *Application) Run(ctx context.Context) error {
	defer func() {
		if err := a.Close(); err != nil {
			logging.Warn("Bootstrap", "Shutdown: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// The transport ending for any reason ends the application.
		defer cancel()
		return a.serve(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Bootstrap", "Shutting down")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		return a.server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (a *Application) serve(ctx context.Context) error {
	if a.config.MCP.Mode == config.ModeStdio {
		return a.server.ServeStdio(ctx, a.opts.Stdin, a.opts.Stdout)
	}
	return a.server.Serve(ctx)
}

// Close releases the server and the store. It is safe to call more than once.
func (a *Application) Close() error {
	a.closeOnce.Do(func() {
		var errs []error
		if a.server != nil {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			errs = append(errs, a.server.Shutdown(ctx))
			cancel()
		}
		if a.store != nil {
			errs = append(errs, a.store.Close())
			logging.Info("Bootstrap", "Closed database")
		}
		a.closeErr = errors.Join(errs...)
	})
	return a.closeErr
}
