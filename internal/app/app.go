package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/slotpitch/league-api/internal/config"
	"github.com/slotpitch/league-api/internal/domain/field"
	"github.com/slotpitch/league-api/internal/domain/membership"
	"github.com/slotpitch/league-api/internal/domain/slot"
	"github.com/slotpitch/league-api/internal/infrastructure/account/clubhouse"
	"github.com/slotpitch/league-api/internal/infrastructure/notify"
	cacherepo "github.com/slotpitch/league-api/internal/infrastructure/repository/cache"
	"github.com/slotpitch/league-api/internal/infrastructure/repository/memory"
	"github.com/slotpitch/league-api/internal/infrastructure/repository/postgres"
	"github.com/slotpitch/league-api/internal/interfaces/httpapi"
	basecache "github.com/slotpitch/league-api/internal/platform/cache"
	idgen "github.com/slotpitch/league-api/internal/platform/id"
	"github.com/slotpitch/league-api/internal/platform/logging"
	"github.com/slotpitch/league-api/internal/platform/resilience"
	"github.com/slotpitch/league-api/internal/usecase"
)

// repositories holds the storage layer picked by STORAGE_MODE. readiness and
// close are nil for the in-memory backend.
type repositories struct {
	memberships membership.Repository
	slots       slot.Repository
	fields      field.Repository
	readiness   func(ctx context.Context) error
	close       func() error
}

// NewHTTPServer assembles the full request path and returns the server plus a
// cleanup function that drains the webhook publisher and closes the database.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.memberships = cacherepo.NewMembershipRepository(repos.memberships, store)
		repos.fields = cacherepo.NewFieldRepository(repos.fields, store)
		repos.slots = cacherepo.NewSlotRepository(repos.slots, store)
	}

	var (
		notifier  usecase.Notifier
		publisher *notify.WebhookPublisher
	)
	if cfg.WebhookEnabled {
		publisher = notify.NewWebhookPublisher(notify.WebhookPublisherConfig{
			URL:     cfg.WebhookURL,
			Token:   cfg.WebhookToken,
			Timeout: cfg.WebhookTimeout,
			Retries: cfg.WebhookRetries,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.WebhookCircuitEnabled,
				FailureThreshold: cfg.WebhookCircuitFailureCount,
				OpenTimeout:      cfg.WebhookCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.WebhookCircuitHalfOpenMaxReq,
			},
		}, logger)
		notifier = publisher
	}

	idGen := idgen.NewRandomGenerator()
	guards := usecase.NewGuardService(repos.memberships, cfg.RequireAdminRole, cfg.AdminScanPageSize, logger)
	slotSvc := usecase.NewSlotService(repos.slots, idGen, notifier, logger)
	importSvc := usecase.NewImportService(repos.slots, repos.fields, idGen, cfg.ImportMaxRows, cfg.ImportWorkerCount, logger)
	fieldSvc := usecase.NewFieldService(repos.fields, logger)
	membershipSvc := usecase.NewMembershipService(repos.memberships, logger)

	verifier := clubhouse.NewClient(clubhouse.Config{
		BaseURL:         cfg.ClubhouseBaseURL,
		IntrospectPath:  cfg.ClubhouseIntrospectURL,
		Timeout:         cfg.ClubhouseTimeout,
		CacheTTL:        cfg.ClubhouseCacheTTL,
		CacheMaxEntries: cfg.ClubhouseCacheMaxEntries,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ClubhouseCircuitEnabled,
			FailureThreshold: cfg.ClubhouseCircuitFailureCount,
			OpenTimeout:      cfg.ClubhouseCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ClubhouseCircuitHalfOpenMax,
		},
	}, logger)

	handler := httpapi.NewHandler(slotSvc, importSvc, fieldSvc, membershipSvc, guards, repos.readiness, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	cleanup := func(ctx context.Context) error {
		if publisher != nil {
			publisher.Close()
		}
		if repos.close != nil {
			return repos.close()
		}
		return nil
	}

	return server, cleanup, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	switch cfg.StorageMode {
	case config.StoragePostgres:
		db, err := openPostgres(cfg)
		if err != nil {
			return repositories{}, err
		}

		// The demo dataset is only loaded outside prod, and only into an
		// empty database.
		if cfg.AppEnv == config.EnvDev {
			seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := postgres.BootstrapSeed(seedCtx, db); err != nil {
				_ = db.Close()
				return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
			}
			logger.Info("dev dataset bootstrapped", "db", dbNameFromURL(cfg.DBURL))
		}

		return repositories{
			memberships: postgres.NewMembershipRepository(db),
			slots:       postgres.NewSlotRepository(db),
			fields:      postgres.NewFieldRepository(db),
			readiness:   db.PingContext,
			close:       db.Close,
		}, nil
	default:
		return repositories{
			memberships: memory.NewMembershipRepository(memory.SeedMemberships()),
			slots:       memory.NewSlotRepository(memory.SeedSlots()),
			fields:      memory.NewFieldRepository(memory.SeedFields()),
		}, nil
	}
}

func openPostgres(cfg config.Config) (*sqlx.DB, error) {
	if cfg.DBURL == "" {
		return nil, fmt.Errorf("DB_URL is required when STORAGE_MODE=postgres")
	}

	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	return db, nil
}
