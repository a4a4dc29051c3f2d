package commands

import (
	"context"
	"fmt"
	"net/http"

	"github.com/conduit-lang/jason/internal/cli/ui"
	"github.com/conduit-lang/jason/internal/config"
	"github.com/conduit-lang/jason/internal/demo"
	"github.com/conduit-lang/jason/internal/definitions"
	"github.com/conduit-lang/jason/internal/logging"
	"github.com/conduit-lang/jason/internal/metrics"
	"github.com/conduit-lang/jason/internal/serializer"
	"github.com/conduit-lang/jason/internal/web/cache"
	"github.com/conduit-lang/jason/internal/web/response"
	"github.com/conduit-lang/jason/internal/web/server"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the article API",
		Long: `Start the HTTP server for the article API.

Configuration is read from --config, or jason.yml in the working
directory. Environment variables prefixed with JASON_ override it
(JASON_SERVER_PORT=8080).

Examples:
  jason serve
  jason serve --config /etc/jason.yml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				fmt.Fprint(cmd.ErrOrStderr(), ui.ConfigError(err.Error(), color.NoColor))
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.New(cfg.ServiceName, cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	handler, closeCache, err := buildHandler(ctx, cfg, logger)
	if err != nil {
		return err
	}

	serverConfig := server.DefaultConfig(handler)
	serverConfig.Address = cfg.Server.Address()
	srv, err := server.New(serverConfig)
	if err != nil {
		return err
	}

	gs := server.NewGracefulShutdown(srv, &server.ShutdownConfig{
		Timeout: cfg.Server.ShutdownTimeout,
		Logger:  logger,
	})
	gs.RegisterHook(func(context.Context) error {
		return closeCache()
	})

	return gs.Run(ctx)
}

// buildHandler wires the registry, serializer, cache and metrics into the
// article routes. The returned func releases the cache backend.
func buildHandler(ctx context.Context, cfg *config.Config, logger *zap.Logger) (http.Handler, func() error, error) {
	var regOpts []serializer.RegistryOption
	if cfg.Registry.AllowOverwrite {
		regOpts = append(regOpts, serializer.WithOverwrite())
	}
	reg := serializer.NewRegistry(regOpts...)
	if err := demo.RegisterSchemas(reg); err != nil {
		return nil, nil, err
	}
	if cfg.Schemas.File != "" {
		file, err := definitions.Load(cfg.Schemas.File)
		if err != nil {
			return nil, nil, err
		}
		if err := file.Register(reg); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", cfg.Schemas.File, err)
		}
		logger.Info("loaded schema definitions",
			zap.String("file", cfg.Schemas.File),
			zap.Int("schemas", len(file.Keys())),
		)
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.ServiceName, true)
	}

	responder := response.NewResponder(
		serializer.New(reg, serializer.WithLogger(logger)),
		response.WithLogger(logger),
		response.WithMetrics(m),
		response.WithPrettyPrint(cfg.Render.Pretty),
	)

	backend, closeCache, err := newCache(ctx, cfg.Cache)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("response cache configured", zap.String("backend", cfg.Cache.Backend))

	routes := demo.Config{
		Responder:   responder,
		Store:       demo.NewStore(demo.FixtureArticle()),
		Logger:      logger,
		Cache:       backend,
		CacheTTL:    cfg.Cache.TTL,
		Metrics:     m,
		MetricsPath: cfg.Metrics.Path,
	}
	if cfg.Profiling.Enabled {
		routes.ProfilingPath = cfg.Profiling.Path
	}
	handler := demo.NewRouter(routes)
	return handler, closeCache, nil
}

// newCache returns the configured cache backend, nil when caching is off
func newCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, func() error, error) {
	noop := func() error { return nil }
	common := cache.Config{DefaultTTL: cfg.TTL, Prefix: cfg.Prefix}

	switch cfg.Backend {
	case config.CacheMemory:
		return cache.NewMemoryCache(common), noop, nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Config:   common,
		})
		if err != nil {
			return nil, nil, err
		}
		return rc, rc.Close, nil
	default:
		return nil, noop, nil
	}
}
