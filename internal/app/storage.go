package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/sportsdesk/teamhub/internal/config"
	"github.com/sportsdesk/teamhub/internal/domain/admin"
	"github.com/sportsdesk/teamhub/internal/domain/match"
	"github.com/sportsdesk/teamhub/internal/domain/scoring"
	"github.com/sportsdesk/teamhub/internal/domain/team"
	cacherepo "github.com/sportsdesk/teamhub/internal/infrastructure/repository/cache"
	"github.com/sportsdesk/teamhub/internal/infrastructure/repository/guard"
	"github.com/sportsdesk/teamhub/internal/infrastructure/repository/memory"
	mongorepo "github.com/sportsdesk/teamhub/internal/infrastructure/repository/mongo"
	"github.com/sportsdesk/teamhub/internal/infrastructure/repository/postgres"
	basecache "github.com/sportsdesk/teamhub/internal/platform/cache"
	"github.com/sportsdesk/teamhub/internal/platform/logging"
	"github.com/sportsdesk/teamhub/internal/platform/resilience"
)

type repositories struct {
	teams       team.Repository
	matches     match.Repository
	deliveries  scoring.Repository
	superAdmins admin.SuperAdminRepository
	subAdmins   admin.SubAdminRepository
}

type closeFunc func(context.Context) error

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, closeFunc, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		return openPostgres(ctx, cfg, logger)
	case config.StorageMongo:
		return openMongo(ctx, cfg, logger)
	case config.StorageMemory, "":
		logger.Warn("using in-memory storage, data is lost on restart", "seeded", cfg.MemorySeed)
		var seed []team.Team
		if cfg.MemorySeed {
			seed = memory.SeedTeams(time.Now().UTC())
		}
		return repositories{
			teams:       memory.NewTeamRepository(seed),
			matches:     memory.NewMatchRepository(nil),
			deliveries:  memory.NewDeliveryRepository(),
			superAdmins: memory.NewSuperAdminRepository(),
			subAdmins:   memory.NewSubAdminRepository(),
		}, nil, nil
	default:
		return repositories{}, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func openPostgres(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, closeFunc, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dbURL, postgresTraceOptions(dbURL)...)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return repositories{}, nil, fmt.Errorf("ping postgres: %w", err)
	}

	logger.Info("postgres storage ready", "database", dbNameFromURL(dbURL))
	return postgresRepositories(db), func(context.Context) error { return db.Close() }, nil
}

func postgresRepositories(db *sqlx.DB) repositories {
	return repositories{
		teams:       postgres.NewTeamRepository(db),
		matches:     postgres.NewMatchRepository(db),
		deliveries:  postgres.NewDeliveryRepository(db),
		superAdmins: postgres.NewSuperAdminRepository(db),
		subAdmins:   postgres.NewSubAdminRepository(db),
	}
}

func openMongo(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, closeFunc, error) {
	client, err := mongorepo.Connect(ctx, cfg.MongoURI, cfg.MongoConnectTimeout)
	if err != nil {
		return repositories{}, nil, err
	}
	db := client.Database(cfg.MongoDatabase)
	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return repositories{}, nil, fmt.Errorf("ensure mongo indexes: %w", err)
	}

	logger.Info("mongo storage ready", "database", cfg.MongoDatabase)
	return repositories{
		teams:       mongorepo.NewTeamRepository(db),
		matches:     mongorepo.NewMatchRepository(db),
		deliveries:  mongorepo.NewDeliveryRepository(db),
		superAdmins: mongorepo.NewSuperAdminRepository(db),
		subAdmins:   mongorepo.NewSubAdminRepository(db),
	}, client.Disconnect, nil
}

// decorate wraps the raw store with the circuit breaker and, above it, the
// read cache so cache hits never count against the breaker.
func decorate(repos repositories, cfg config.Config, logger *logging.Logger) repositories {
	breaker := guard.NewBreaker(cfg.StorageDriver, resilience.CircuitBreakerConfig{
		Enabled:          cfg.StoreCircuitEnabled,
		FailureThreshold: cfg.StoreCircuitFailureCount,
		OpenTimeout:      cfg.StoreCircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.StoreCircuitHalfOpenMaxReq,
	}, logger)

	out := repositories{
		teams:       guard.NewTeamRepository(repos.teams, breaker),
		matches:     guard.NewMatchRepository(repos.matches, breaker),
		deliveries:  guard.NewDeliveryRepository(repos.deliveries, breaker),
		superAdmins: guard.NewSuperAdminRepository(repos.superAdmins, breaker),
		subAdmins:   guard.NewSubAdminRepository(repos.subAdmins, breaker),
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		out.teams = cacherepo.NewTeamRepository(out.teams, store)
		out.matches = cacherepo.NewMatchRepository(out.matches, store)
	}
	return out
}
