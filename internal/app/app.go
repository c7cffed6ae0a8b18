package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/hooppool/hooppool/external/nbalive"
	"github.com/hooppool/hooppool/external/nbastats"
	"github.com/hooppool/hooppool/internal/config"
	"github.com/hooppool/hooppool/internal/domain/game"
	"github.com/hooppool/hooppool/internal/domain/pick"
	"github.com/hooppool/hooppool/internal/domain/team"
	cacherepo "github.com/hooppool/hooppool/internal/infrastructure/repository/cache"
	"github.com/hooppool/hooppool/internal/infrastructure/repository/csvfile"
	"github.com/hooppool/hooppool/internal/infrastructure/repository/memory"
	"github.com/hooppool/hooppool/internal/infrastructure/repository/postgres"
	"github.com/hooppool/hooppool/internal/infrastructure/repository/sqlite"
	"github.com/hooppool/hooppool/internal/interfaces/httpapi"
	basecache "github.com/hooppool/hooppool/internal/platform/cache"
	"github.com/hooppool/hooppool/internal/platform/logging"
	"github.com/hooppool/hooppool/internal/platform/resilience"
	"github.com/hooppool/hooppool/internal/usecase"
)

// NewHTTPServer wires the configured pick store, the NBA feed clients and
// the pool services into an http.Server. The returned cleanup closes any
// database handle the wiring opened.
func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, func(context.Context) error, error) {
	store, closeStore, err := newPickStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	svcLogger := logging.Default()

	liveClient := nbalive.NewClient(nbalive.ClientConfig{
		BaseURL:    cfg.NBALiveBaseURL,
		Timeout:    cfg.NBALiveTimeout,
		MaxRetries: cfg.NBALiveMaxRetries,
		Logger:     svcLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.NBALiveCircuitEnabled,
			FailureThreshold: cfg.NBALiveCircuitFailureCount,
			OpenTimeout:      cfg.NBALiveCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.NBALiveCircuitHalfOpenMaxReq,
		},
	})

	statsClient := nbastats.NewClient(nbastats.ClientConfig{
		BaseURL:    cfg.NBAStatsBaseURL,
		Timeout:    cfg.NBAStatsTimeout,
		MaxRetries: cfg.NBAStatsMaxRetries,
		Logger:     svcLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.NBAStatsCircuitEnabled,
			FailureThreshold: cfg.NBAStatsCircuitFailureCount,
			OpenTimeout:      cfg.NBAStatsCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.NBAStatsCircuitHalfOpenMaxReq,
		},
	})

	var scoreboard usecase.LiveScoreboard = liveClient
	var directory team.Directory = statsClient
	if offlineMode(cfg) {
		today := time.Now().UTC().Format(pick.DateLayout)
		slate := memory.SeedFixtures()
		scoreboard = memory.NewScoreboard(slate, map[string][]game.Fixture{today: slate})
		directory = memory.NewTeamDirectory(memory.SeedTeams())
	}
	if cfg.CacheEnabled {
		directory = cacherepo.NewTeamDirectory(directory, basecache.NewStore(cfg.CacheTTL))
	}

	var provider usecase.ResultsProvider
	if cfg.ResultsSource == config.ResultsSourceLive || offlineMode(cfg) {
		provider = usecase.NewLiveResultsProvider(scoreboard)
	} else {
		provider = usecase.NewHistoricalResultsProvider(statsClient, directory)
	}

	submissionSvc := usecase.NewSubmissionService(store, scoreboard, cfg.PoolUsers, svcLogger)
	scoringSvc := usecase.NewScoringService(store, provider, svcLogger)
	fixtureSvc := usecase.NewFixtureService(scoreboard)

	handler := httpapi.NewHandler(submissionSvc, scoringSvc, fixtureSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		closeStore(context.Background())
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, closeStore, nil
}

// offlineMode keeps dev instances runnable without the NBA endpoints.
func offlineMode(cfg config.Config) bool {
	return cfg.AppEnv == config.EnvDev && cfg.PickStoreDriver == config.StoreDriverMemory
}

func newPickStore(cfg config.Config) (pick.Store, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	switch cfg.PickStoreDriver {
	case config.StoreDriverPostgres:
		db, err := connectPostgres(cfg)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewPickRepository(db), func(context.Context) error { return db.Close() }, nil
	case config.StoreDriverSQLite:
		db, err := sqlx.Connect("sqlite3", cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite db %q: %w", cfg.SQLitePath, err)
		}
		repo, err := sqlite.NewPickRepository(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return repo, func(context.Context) error { return db.Close() }, nil
	case config.StoreDriverCSV:
		repo, err := csvfile.NewPickRepository(cfg.PickLogPath)
		if err != nil {
			return nil, nil, err
		}
		return repo, noop, nil
	default:
		return memory.NewPickRepository(memory.SeedPicks()), noop, nil
	}
}

func connectPostgres(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
