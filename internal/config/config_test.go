package config

import (
	"testing"
	"time"

	"github.com/sportsdesk/teamhub/internal/platform/logging"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad_AppEnvValidation(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("JWT_SECRET", "  ")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when JWT_SECRET is empty")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_HTTP_ADDR", "")
	t.Setenv("PORT", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("JWT_EXPIRES_IN", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("APP_LOG_LEVEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Fatalf("unexpected StorageDriver: %q", cfg.StorageDriver)
	}
	if cfg.JWTExpiresIn != 7*24*time.Hour {
		t.Fatalf("unexpected JWTExpiresIn: %s", cfg.JWTExpiresIn)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected LogLevel: %v", cfg.LogLevel)
	}
	if !cfg.SwaggerEnabled {
		t.Fatalf("expected swagger enabled outside prod")
	}
	if !cfg.ExposeErrors() {
		t.Fatalf("expected error exposure outside prod")
	}
}

func TestLoad_ProdDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("SWAGGER_ENABLED", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SwaggerEnabled {
		t.Fatalf("expected swagger disabled in prod by default")
	}
	if cfg.ExposeErrors() {
		t.Fatalf("expected error details hidden in prod")
	}
}

func TestLoad_PortFallback(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_HTTP_ADDR", "")
	t.Setenv("PORT", "5000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":5000" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}

	t.Setenv("APP_HTTP_ADDR", "127.0.0.1:9000")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9000" {
		t.Fatalf("APP_HTTP_ADDR should win over PORT, got %q", cfg.HTTPAddr)
	}
}

func TestLoad_StorageDriverValidation(t *testing.T) {
	setRequired(t)
	t.Setenv("STORAGE_DRIVER", "sqlite")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown STORAGE_DRIVER")
	}

	t.Setenv("STORAGE_DRIVER", "MONGO")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != StorageMongo {
		t.Fatalf("unexpected StorageDriver: %q", cfg.StorageDriver)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	setRequired(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	setRequired(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PyroscopeRequiresServerAddress(t *testing.T) {
	setRequired(t)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without server address")
	}
}

func TestLoad_NumericValidation(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{key: "STORE_CIRCUIT_FAILURE_COUNT", value: "0"},
		{key: "STORE_CIRCUIT_HALF_OPEN_MAX_REQ", value: "0"},
		{key: "MAX_REQUEST_BODY_BYTES", value: "-1"},
		{key: "STATS_WORKERS", value: "0"},
		{key: "LIVEFEED_SEND_BUFFER", value: "abc"},
		{key: "CACHE_TTL", value: "0s"},
		{key: "APP_READ_TIMEOUT", value: "soon"},
		{key: "CACHE_ENABLED", value: "maybe"},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}

func TestParseExpiry(t *testing.T) {
	tests := []struct {
		raw     string
		want    time.Duration
		wantErr bool
	}{
		{raw: "7d", want: 7 * 24 * time.Hour},
		{raw: "1D", want: 24 * time.Hour},
		{raw: "90m", want: 90 * time.Minute},
		{raw: "12h", want: 12 * time.Hour},
		{raw: "0d", wantErr: true},
		{raw: "xd", wantErr: true},
		{raw: "week", wantErr: true},
	}

	for _, tc := range tests {
		got, err := parseExpiry(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseExpiry(%q) expected error", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseExpiry(%q): %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("parseExpiry(%q)=%s want %s", tc.raw, got, tc.want)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	if got := parseLogLevel("WARNING"); got != logging.LevelWarn {
		t.Fatalf("unexpected level: %v", got)
	}
	if got := parseLogLevel("debug"); got != logging.LevelDebug {
		t.Fatalf("unexpected level: %v", got)
	}
	if got := parseLogLevel("nonsense"); got != logging.LevelInfo {
		t.Fatalf("unexpected level: %v", got)
	}
}
