package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/sourcegraph/conc/pool"

	"github.com/sportsdesk/teamhub/internal/config"
	"github.com/sportsdesk/teamhub/internal/infrastructure/auth"
	"github.com/sportsdesk/teamhub/internal/interfaces/httpapi"
	"github.com/sportsdesk/teamhub/internal/interfaces/livefeed"
	idgen "github.com/sportsdesk/teamhub/internal/platform/id"
	"github.com/sportsdesk/teamhub/internal/platform/logging"
	"github.com/sportsdesk/teamhub/internal/platform/workerpool"
	"github.com/sportsdesk/teamhub/internal/usecase"
)

// App owns the HTTP server and every resource it depends on.
type App struct {
	Server  *http.Server
	Hub     *livefeed.Hub
	logger  *logging.Logger
	closers []closeFunc
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{logger: logger}

	raw, closeStore, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if closeStore != nil {
		a.closers = append(a.closers, closeStore)
	}
	repos := decorate(raw, cfg, logger)

	statsPool, err := workerpool.New(cfg.StatsWorkers)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	a.closers = append(a.closers, func(context.Context) error {
		statsPool.Release()
		return nil
	})

	tokens, err := auth.NewJWTIssuer(cfg.JWTSecret, cfg.JWTExpiresIn, cfg.JWTIssuer, clockwork.NewRealClock())
	if err != nil {
		_ = a.Close(ctx)
		return nil, fmt.Errorf("build token issuer: %w", err)
	}
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	ids := idgen.NewObjectIDGenerator()

	var (
		publisher usecase.MatchPublisher
		feed      httpapi.LiveFeed
	)
	if cfg.LiveFeedEnabled {
		a.Hub = livefeed.NewHub(livefeed.Config{
			PingInterval:   cfg.LiveFeedPingInterval,
			WriteTimeout:   cfg.LiveFeedWriteTimeout,
			SendBuffer:     cfg.LiveFeedSendBuffer,
			AllowedOrigins: cfg.CORSAllowedOrigins,
		}, logger.Named("livefeed"))
		publisher = a.Hub
		feed = a.Hub
		a.closers = append(a.closers, func(context.Context) error {
			a.Hub.Close()
			return nil
		})
	}

	teamSvc := usecase.NewTeamService(repos.teams, ids, statsPool, logger)
	matchSvc := usecase.NewMatchService(repos.matches, repos.deliveries, teamSvc, ids, publisher, logger)
	scoringSvc := usecase.NewScoringService(repos.matches, repos.deliveries, ids, publisher, logger)
	authSvc := usecase.NewAuthService(repos.superAdmins, repos.subAdmins, hasher, tokens, ids, logger)
	subAdminSvc := usecase.NewSubAdminService(repos.subAdmins, hasher, ids, logger)

	handler := httpapi.NewHandler(teamSvc, matchSvc, scoringSvc, authSvc, subAdminSvc, feed, logger)
	router := httpapi.NewRouter(handler, authSvc, logger, httpapi.RouterConfig{
		ServiceName:        cfg.ServiceName,
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		MaxBodyBytes:       cfg.MaxRequestBodyBytes,
		ExposeErrors:       cfg.ExposeErrors(),
	})

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("app wired",
		"storage", cfg.StorageDriver,
		"cache", cfg.CacheEnabled,
		"store_circuit", cfg.StoreCircuitEnabled,
		"livefeed", cfg.LiveFeedEnabled,
		"stats_workers", statsPool.Cap(),
	)
	return a, nil
}

// Close releases every resource opened by New. It does not stop Server.
func (a *App) Close(ctx context.Context) error {
	if a == nil || len(a.closers) == 0 {
		return nil
	}

	p := pool.New().WithErrors().WithContext(ctx)
	for _, closer := range a.closers {
		p.Go(closer)
	}
	a.closers = nil

	if err := p.Wait(); err != nil {
		a.logger.Error("release app resources", "error", err)
		return err
	}
	return nil
}
