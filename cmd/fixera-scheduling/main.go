// Command fixera-scheduling runs the scheduling engine's CLI: propose,
// validate, and window, each backed by a storage-resolved project,
// professional, and resource set.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/shridmishra/fixera-scheduling/adapter/cli"
	"github.com/shridmishra/fixera-scheduling/adapter/cli/schedule"
	"github.com/shridmishra/fixera-scheduling/internal/scheduling/application/queries"
	"github.com/shridmishra/fixera-scheduling/internal/scheduling/application/services"
	"github.com/shridmishra/fixera-scheduling/internal/scheduling/infrastructure/persistence"
	"github.com/shridmishra/fixera-scheduling/internal/shared/infrastructure/database"
	"github.com/shridmishra/fixera-scheduling/internal/shared/infrastructure/database/postgres"
	"github.com/shridmishra/fixera-scheduling/internal/shared/infrastructure/database/sqlite"
	"github.com/shridmishra/fixera-scheduling/internal/shared/infrastructure/eventbus"
	"github.com/shridmishra/fixera-scheduling/internal/shared/infrastructure/migrations"
	"github.com/shridmishra/fixera-scheduling/pkg/config"
	"github.com/shridmishra/fixera-scheduling/pkg/observability"
)

func main() {
	logger := observability.LoggerFromEnv()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("failed to load config, using development defaults", "error", err)
		cfg = &config.Config{AppEnv: "development"}
	}
	if cfg.ScheduleDebug {
		logger = observability.NewLogger(observability.LogConfig{Level: observability.LogLevelDebug, Format: observability.LogFormatText, ServiceName: "fixera-scheduling"})
	}
	cli.SetLogger(logger)

	cliApp, closeFn, err := buildApp(ctx, cfg, logger)
	if err != nil {
		if cfg.IsDevelopment() {
			logger.Warn("failed to initialize storage, running without database", "error", err)
			cliApp = nil
		} else {
			logger.Error("failed to initialize storage", "error", err)
			os.Exit(1)
		}
	}
	if closeFn != nil {
		defer closeFn()
	}

	cli.SetApp(cliApp)
	cli.AddCommand(schedule.Cmd)
	cli.Execute()
}

// buildApp resolves storage, wires the resolver/cache/audit services, and
// constructs the three query handlers the CLI dispatches to.
func buildApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*cli.App, func(), error) {
	dbCfg := database.Config{
		Driver:     database.Driver(cfg.DatabaseDriver),
		URL:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
	}
	conn, err := database.NewConnection(ctx, dbCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	var repos persistence.Repositories
	switch conn.Driver() {
	case database.DriverPostgres:
		if pg, ok := conn.(*postgres.Connection); ok {
			if err := migrations.RunPostgresMigrations(ctx, pg.Pool()); err != nil {
				_ = conn.Close()
				return nil, nil, fmt.Errorf("run postgres migrations: %w", err)
			}
		}
		repos = persistence.NewRepositories(persistence.NewPostgresRepositories(conn))
	case database.DriverSQLite:
		if lite, ok := conn.(*sqlite.Connection); ok {
			if err := migrations.RunSQLiteMigrations(ctx, lite.DB()); err != nil {
				_ = conn.Close()
				return nil, nil, fmt.Errorf("run sqlite migrations: %w", err)
			}
		}
		repos = persistence.NewRepositories(persistence.NewSQLiteRepositories(conn))
	default:
		_ = conn.Close()
		return nil, nil, fmt.Errorf("unsupported database driver: %s", conn.Driver())
	}

	resolver := services.NewResolver(services.Repositories{
		Projects:      repos.Projects,
		Professionals: repos.Professionals,
		Resources:     repos.Resources,
		Bookings:      repos.Bookings,
	}, services.DefaultResolverConfig(), logger)

	var redisClient *redis.Client
	var publisher eventbus.Publisher = eventbus.NewNoopPublisher(logger)
	closers := []func() error{conn.Close}

	if !cfg.IsLocalMode() {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Warn("invalid REDIS_URL, proposal caching disabled", "error", err)
		} else {
			redisClient = redis.NewClient(opts)
			closers = append(closers, redisClient.Close)
		}

		rmq, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
		if err != nil {
			logger.Warn("failed to connect to RabbitMQ, audit diagnostics disabled", "error", err)
		} else {
			publisher = rmq
			closers = append(closers, rmq.Close)
		}
	}

	metrics := observability.NewInMemoryMetrics()
	cache := services.NewProposalCache(redisClient, logger, metrics)
	audit := services.NewAuditPublisher(publisher, logger, metrics)

	cliApp := cli.NewApp(
		queries.NewBuildProposalsHandler(resolver, cache, audit, logger, metrics),
		queries.NewValidateSelectionHandler(resolver, cache, audit, logger, metrics),
		queries.NewBuildWindowHandler(resolver, logger, metrics),
	)

	closeFn := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Warn("error during shutdown", "error", err)
			}
		}
	}
	return cliApp, closeFn, nil
}
