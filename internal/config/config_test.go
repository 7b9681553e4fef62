package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_StorageModeValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default memory", func(t *testing.T) {
		t.Setenv("STORAGE_MODE", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageMode != StorageMemory {
			t.Fatalf("unexpected default storage mode: %q", cfg.StorageMode)
		}
	})

	t.Run("postgres accepted", func(t *testing.T) {
		t.Setenv("STORAGE_MODE", "Postgres")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageMode != StoragePostgres {
			t.Fatalf("unexpected storage mode: %q", cfg.StorageMode)
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("STORAGE_MODE", "dynamo")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid STORAGE_MODE")
		}
	})
}

func TestLoad_GuardConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("REQUIRE_ADMIN_ROLE", "")
		t.Setenv("ADMIN_SCAN_PAGE_SIZE", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.RequireAdminRole {
			t.Fatalf("expected RequireAdminRole=false by default")
		}
		if cfg.AdminScanPageSize != 100 {
			t.Fatalf("unexpected default admin scan page size: %d", cfg.AdminScanPageSize)
		}
	})

	t.Run("admin role toggle on", func(t *testing.T) {
		t.Setenv("REQUIRE_ADMIN_ROLE", "true")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.RequireAdminRole {
			t.Fatalf("expected RequireAdminRole=true")
		}
	})

	t.Run("invalid toggle", func(t *testing.T) {
		t.Setenv("REQUIRE_ADMIN_ROLE", "not-bool")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid REQUIRE_ADMIN_ROLE")
		}
	})

	t.Run("page size must be positive", func(t *testing.T) {
		t.Setenv("REQUIRE_ADMIN_ROLE", "false")
		t.Setenv("ADMIN_SCAN_PAGE_SIZE", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for ADMIN_SCAN_PAGE_SIZE=0")
		}
	})
}

func TestLoad_ImportConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("IMPORT_MAX_ROWS", "")
		t.Setenv("IMPORT_WORKER_COUNT", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.ImportMaxRows != 5000 {
			t.Fatalf("unexpected default import max rows: %d", cfg.ImportMaxRows)
		}
		if cfg.ImportWorkerCount != 4 {
			t.Fatalf("unexpected default import worker count: %d", cfg.ImportWorkerCount)
		}
	})

	t.Run("invalid worker count", func(t *testing.T) {
		t.Setenv("IMPORT_WORKER_COUNT", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for IMPORT_WORKER_COUNT=0")
		}
	})
}

func TestLoad_WebhookConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("disabled by default", func(t *testing.T) {
		t.Setenv("WEBHOOK_ENABLED", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.WebhookEnabled {
			t.Fatalf("expected WebhookEnabled=false by default")
		}
	})

	t.Run("enabled requires url", func(t *testing.T) {
		t.Setenv("WEBHOOK_ENABLED", "true")
		t.Setenv("WEBHOOK_URL", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when WEBHOOK_ENABLED=true without WEBHOOK_URL")
		}
	})

	t.Run("enabled with values", func(t *testing.T) {
		t.Setenv("WEBHOOK_ENABLED", "true")
		t.Setenv("WEBHOOK_URL", "https://hooks.example.com/slots")
		t.Setenv("WEBHOOK_TOKEN", "hook-token")
		t.Setenv("WEBHOOK_RETRIES", "3")
		t.Setenv("WEBHOOK_TIMEOUT", "2s")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.WebhookEnabled {
			t.Fatalf("expected WebhookEnabled=true")
		}
		if cfg.WebhookRetries != 3 {
			t.Fatalf("unexpected webhook retries: %d", cfg.WebhookRetries)
		}
		if cfg.WebhookTimeout != 2*time.Second {
			t.Fatalf("unexpected webhook timeout: %s", cfg.WebhookTimeout)
		}
	})
}

func TestLoad_ClubhouseConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("CLUBHOUSE_TIMEOUT", "4s")
	t.Setenv("CLUBHOUSE_CACHE_TTL", "45s")
	t.Setenv("CLUBHOUSE_CACHE_MAX_ENTRIES", "500")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ClubhouseTimeout != 4*time.Second {
		t.Fatalf("unexpected clubhouse timeout: %s", cfg.ClubhouseTimeout)
	}
	if cfg.ClubhouseCacheTTL != 45*time.Second {
		t.Fatalf("unexpected clubhouse cache ttl: %s", cfg.ClubhouseCacheTTL)
	}
	if cfg.ClubhouseCacheMaxEntries != 500 {
		t.Fatalf("unexpected clubhouse cache max entries: %d", cfg.ClubhouseCacheMaxEntries)
	}
	if !cfg.ClubhouseCircuitEnabled {
		t.Fatalf("expected clubhouse circuit enabled by default")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_BetterStackRequiresEndpointWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("BETTERSTACK_ENABLED", "true")
	t.Setenv("BETTERSTACK_ENDPOINT", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when BETTERSTACK_ENABLED=true without BETTERSTACK_ENDPOINT")
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
	})
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "league-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "league-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_DBConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("prepared binary default true", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.DBDisablePreparedBinary {
			t.Fatalf("expected DBDisablePreparedBinary=true by default")
		}
	})

	t.Run("pool defaults", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.DBMaxOpenConns != 10 || cfg.DBMaxIdleConns != 5 {
			t.Fatalf("unexpected pool defaults: open=%d idle=%d", cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
		}
		if cfg.DBConnMaxLifetime != 30*time.Minute {
			t.Fatalf("unexpected conn max lifetime: %s", cfg.DBConnMaxLifetime)
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "not-bool")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid DB_DISABLE_PREPARED_BINARY_RESULT")
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != 60*time.Second {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})
}
