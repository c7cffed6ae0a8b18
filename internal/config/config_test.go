package config

import (
	"testing"
	"time"

	"github.com/hooppool/hooppool/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.AppEnv != EnvDev {
		t.Fatalf("expected dev env, got %q", cfg.AppEnv)
	}
	if cfg.ServiceName != "hooppool-api" {
		t.Fatalf("unexpected service name: %q", cfg.ServiceName)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected http addr: %q", cfg.HTTPAddr)
	}
	if cfg.PickStoreDriver != StoreDriverMemory {
		t.Fatalf("expected memory store driver, got %q", cfg.PickStoreDriver)
	}
	if cfg.ResultsSource != ResultsSourceHistorical {
		t.Fatalf("expected historical results source, got %q", cfg.ResultsSource)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level: %v", cfg.LogLevel)
	}

	want := []string{"Moises", "Frank", "Gordic", "Kike"}
	if len(cfg.PoolUsers) != len(want) {
		t.Fatalf("expected %d pool users, got %d", len(want), len(cfg.PoolUsers))
	}
	for i, user := range want {
		if cfg.PoolUsers[i] != user {
			t.Fatalf("pool user %d = %q, want %q", i, cfg.PoolUsers[i], user)
		}
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("APP_SERVICE_NAME", "hooppool-api-test")
	t.Setenv("PICK_STORE_DRIVER", "Postgres")
	t.Setenv("RESULTS_SOURCE", "live")
	t.Setenv("POOL_USERS", " Ana , Bruno ,, Carla ")
	t.Setenv("NBA_STATS_TIMEOUT", "45s")
	t.Setenv("APP_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.AppEnv != EnvProd {
		t.Fatalf("expected prod env, got %q", cfg.AppEnv)
	}
	if cfg.ServiceName != "hooppool-api-test" {
		t.Fatalf("unexpected service name: %q", cfg.ServiceName)
	}
	if cfg.PickStoreDriver != StoreDriverPostgres {
		t.Fatalf("expected postgres driver, got %q", cfg.PickStoreDriver)
	}
	if cfg.ResultsSource != ResultsSourceLive {
		t.Fatalf("expected live results source, got %q", cfg.ResultsSource)
	}
	if len(cfg.PoolUsers) != 3 || cfg.PoolUsers[1] != "Bruno" {
		t.Fatalf("unexpected pool users: %v", cfg.PoolUsers)
	}
	if cfg.NBAStatsTimeout != 45*time.Second {
		t.Fatalf("unexpected stats timeout: %v", cfg.NBAStatsTimeout)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Fatalf("unexpected log level: %v", cfg.LogLevel)
	}
}

func TestLoad_InvalidStoreDriver(t *testing.T) {
	t.Setenv("PICK_STORE_DRIVER", "redis")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid store driver")
	}
}

func TestLoad_InvalidResultsSource(t *testing.T) {
	t.Setenv("RESULTS_SOURCE", "oracle")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid results source")
	}
}

func TestLoad_UptraceRequiresDSN(t *testing.T) {
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when uptrace enabled without dsn")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev/123"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/123" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_CircuitValidation(t *testing.T) {
	t.Setenv("NBA_LIVE_CIRCUIT_FAILURE_COUNT", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-positive failure count")
	}
}
