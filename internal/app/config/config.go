package config

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreSupabase = "supabase"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	HTTPAddr        string
	InternalToken   string
	CORSAllowOrigin []string
	ShutdownTimeout time.Duration

	StoreBackend           string
	SupabaseURL            string
	SupabaseServiceRoleKey string
	DatabaseURL            string
	MigrateOnStart         bool
	DocumentsBucket        string

	AssetsDir string
	FontsDir  string

	SessionTTL        time.Duration
	SessionMaxEntries int

	PolicyPrefix string
	PolicySuffix string

	TelegramBotToken string
	TelegramBaseURL  string
	ManagerChatID    string

	LogLevel  slog.Level
	LogFormat string
}

// Load reads the environment and reports every invalid or missing variable
// at once.
func Load() (Config, error) {
	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	cfg := Config{
		HTTPAddr:               env("HTTP_ADDR", ":8080"),
		InternalToken:          os.Getenv("INTERNAL_TOKEN"),
		CORSAllowOrigin:        splitList(env("CORS_ALLOW_ORIGIN", "*")),
		StoreBackend:           strings.ToLower(env("STORE_BACKEND", StoreSupabase)),
		SupabaseURL:            os.Getenv("SUPABASE_URL"),
		SupabaseServiceRoleKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		DocumentsBucket:        os.Getenv("DOCUMENTS_BUCKET"),
		AssetsDir:              env("ASSETS_DIR", "assets"),
		FontsDir:               os.Getenv("FONTS_DIR"),
		PolicyPrefix:           env("POLICY_PREFIX", "3240-800"),
		PolicySuffix:           env("POLICY_SUFFIX", "25"),
		TelegramBotToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramBaseURL:        env("TELEGRAM_BASE_URL", "https://api.telegram.org"),
		ManagerChatID:          os.Getenv("MANAGER_CHAT_ID"),
		LogFormat:              strings.ToLower(env("LOG_FORMAT", "json")),
	}

	var err error
	cfg.ShutdownTimeout, err = envDuration("SHUTDOWN_TIMEOUT", 5*time.Second)
	collect(err)
	cfg.SessionTTL, err = envDuration("SESSION_TTL", 2*time.Hour)
	collect(err)
	cfg.SessionMaxEntries, err = envInt("SESSION_MAX_ENTRIES", 1000)
	collect(err)
	cfg.MigrateOnStart, err = envBool("MIGRATE_ON_START", false)
	collect(err)
	cfg.LogLevel, err = parseLogLevel(env("LOG_LEVEL", "info"))
	collect(err)

	if cfg.InternalToken == "" {
		collect(errors.New("missing env INTERNAL_TOKEN"))
	}
	switch cfg.StoreBackend {
	case StoreSupabase:
		if cfg.SupabaseURL == "" {
			collect(errors.New("missing env SUPABASE_URL"))
		}
		if cfg.SupabaseServiceRoleKey == "" {
			collect(errors.New("missing env SUPABASE_SERVICE_ROLE_KEY"))
		}
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			collect(errors.New("missing env DATABASE_URL"))
		}
	case StoreMemory:
	default:
		collect(fmt.Errorf("STORE_BACKEND: unknown backend %q, want supabase, postgres or memory", cfg.StoreBackend))
	}
	if cfg.DocumentsBucket != "" && (cfg.SupabaseURL == "" || cfg.SupabaseServiceRoleKey == "") {
		collect(errors.New("DOCUMENTS_BUCKET needs SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY"))
	}
	if cfg.SessionMaxEntries <= 0 {
		collect(errors.New("SESSION_MAX_ENTRIES must be positive"))
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		collect(fmt.Errorf("LOG_FORMAT: unknown format %q, want json or text", cfg.LogFormat))
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// TelegramEnabled reports whether contract notifications are configured.
func (c Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.ManagerChatID != ""
}

// SetupLogger installs the process-wide slog logger.
func SetupLogger(cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var handler slog.Handler
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s: %q is not an integer", k, v)
	}
	return n, nil
}

func envDuration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("%s: %q is not a duration", k, v)
	}
	if d <= 0 {
		return def, fmt.Errorf("%s must be positive", k)
	}
	return d, nil
}

func envBool(k string, def bool) (bool, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("%s: %q is not a boolean", k, v)
	}
	return b, nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: unknown level %q, want debug, info, warn or error", level)
}
