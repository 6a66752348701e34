package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-projectinfo/cache"
	"github.com/goliatone/go-projectinfo/idgen"
	"github.com/goliatone/go-projectinfo/internal/storeinfra"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.HTTP.Address != ":8080" {
		t.Errorf("expected :8080, got %q", cfg.HTTP.Address)
	}
	if cfg.Database.Driver != storeinfra.DriverSQLite {
		t.Errorf("expected sqlite driver, got %q", cfg.Database.Driver)
	}
	if cfg.Cache.Backend != cache.BackendMemory {
		t.Errorf("expected memory cache, got %q", cfg.Cache.Backend)
	}
	if cfg.IDGen.Kind != idgen.KindSnowflake {
		t.Errorf("expected snowflake ids, got %q", cfg.IDGen.Kind)
	}
	if cfg.Metrics.Enabled || cfg.Metrics.Path != "/metrics" {
		t.Errorf("unexpected metrics defaults %+v", cfg.Metrics)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must be valid: %v", err)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, `
http:
  address: ":9090"
database:
  driver: postgres
  dsn: postgres://localhost/projects?sslmode=disable
  max_open_conns: 8
cache:
  backend: redis
  namespace: tenant
  redis:
    addr: cache:6379
    db: 2
idgen:
  kind: snowflake
  worker_id: 3
log:
  level: debug
  format: json
metrics:
  enabled: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HTTP.Address != ":9090" {
		t.Errorf("address = %q", cfg.HTTP.Address)
	}
	if cfg.Database.Driver != "postgres" || cfg.Database.MaxOpenConns != 8 {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.Cache.Backend != cache.BackendRedis || cfg.Cache.Redis.Addr != "cache:6379" || cfg.Cache.Redis.DB != 2 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Cache.Namespace != "tenant" {
		t.Errorf("namespace = %q", cfg.Cache.Namespace)
	}
	if cfg.Cache.Memory.Capacity != cache.DefaultConfig().Memory.Capacity {
		t.Errorf("unset memory sizing must keep defaults, got %+v", cfg.Cache.Memory)
	}
	if cfg.IDGen.WorkerID != 3 {
		t.Errorf("worker id = %d", cfg.IDGen.WorkerID)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Path != "/metrics" {
		t.Errorf("metrics = %+v", cfg.Metrics)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "http:\n  address: \":9090\"\n")

	t.Setenv("PROJECTINFO_HTTP_ADDRESS", ":7070")
	t.Setenv("PROJECTINFO_DB_DRIVER", "pgx")
	t.Setenv("PROJECTINFO_DB_DSN", "postgres://db/projects")
	t.Setenv("PROJECTINFO_CACHE_BACKEND", "redis")
	t.Setenv("PROJECTINFO_REDIS_ADDR", "redis:6379")
	t.Setenv("PROJECTINFO_REDIS_DB", "4")
	t.Setenv("PROJECTINFO_IDGEN_KIND", "uuid")
	t.Setenv("PROJECTINFO_LOG_LEVEL", "warn")
	t.Setenv("PROJECTINFO_METRICS_ENABLED", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HTTP.Address != ":7070" {
		t.Errorf("env must override the file, got %q", cfg.HTTP.Address)
	}
	if cfg.Database.Driver != storeinfra.DriverPGX || cfg.Database.DSN != "postgres://db/projects" {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.Cache.Backend != cache.BackendRedis || cfg.Cache.Redis.Addr != "redis:6379" || cfg.Cache.Redis.DB != 4 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.IDGen.Kind != idgen.KindUUID {
		t.Errorf("idgen = %+v", cfg.IDGen)
	}
	if cfg.Log.Level != "warn" || !cfg.Metrics.Enabled {
		t.Errorf("log = %+v metrics = %+v", cfg.Log, cfg.Metrics)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		env  map[string]string
		want string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") },
			want: "read config file",
		},
		{
			name: "bad yaml",
			path: func(t *testing.T) string { return writeConfig(t, "http: [") },
			want: "parse config",
		},
		{
			name: "bad log level",
			path: func(t *testing.T) string { return writeConfig(t, "log:\n  level: chatty\n") },
			want: "validate config",
		},
		{
			name: "bad integer env",
			path: func(t *testing.T) string { return "" },
			env:  map[string]string{"PROJECTINFO_REDIS_DB": "two"},
			want: "PROJECTINFO_REDIS_DB",
		},
		{
			name: "bad bool env",
			path: func(t *testing.T) string { return "" },
			env:  map[string]string{"PROJECTINFO_METRICS_ENABLED": "maybe"},
			want: "PROJECTINFO_METRICS_ENABLED",
		},
		{
			name: "worker id out of range",
			path: func(t *testing.T) string { return "" },
			env:  map[string]string{"PROJECTINFO_IDGEN_WORKER_ID": "64"},
			want: "validate config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(tt.path(t))
			if err == nil {
				t.Fatal("expected Load() to fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
