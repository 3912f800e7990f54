package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	defaultDatabaseDSN = "invkeeper.db"
	defaultBaseURL     = "localhost:8081"
	defaultSessionTTL  = time.Minute
)

type Config struct {
	// Server-side settings
	DatabaseDSN string        `env:"DATABASE_URI"`
	TokenKey    string        `env:"BRANCA_KEY"`
	TokenMaxAge time.Duration `env:"TOKEN_MAX_AGE"` // 0 - бейдж бессрочный
	AuthSecret  string        `env:"AUTH_SECRET"`
	SessionTTL  time.Duration `env:"SESSION_TTL"`
	SeedFile    string        `env:"SEED_FILE"`
	LogJSON     bool          `env:"LOG_JSON"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL string `env:"-"`
	TokenFile string `env:"TOKEN_FILE"`
	Version   bool   `env:"-"` // show client version and exit (flag only)
}

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (postgres://... или путь к файлу sqlite)")
	flag.StringVar(&cfg.TokenKey, "token-key", cfg.TokenKey, "секрет для запечатывания бейдж-токенов")
	flag.DurationVar(&cfg.TokenMaxAge, "token-max-age", cfg.TokenMaxAge, "максимальный возраст бейджа (0 - без ограничения)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи сессионного JWT")
	flag.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "время жизни сессии")
	flag.StringVar(&cfg.SeedFile, "seed", cfg.SeedFile, "YAML с начальными пользователями, местами и предметами")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "address of the InvKeeper server (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	// Client flags
	flag.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "path to session token file (client)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	// Defaults
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = defaultDatabaseDSN
	}
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	if cfg.TokenKey == "" {
		cfg.TokenKey = "dev-badge-key"
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	if cfg.TokenMaxAge < 0 {
		cfg.TokenMaxAge = 0
	}
	// BaseURL должен быть вида "address:port" (без схемы и пути), иначе берём значение по умолчанию.
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = defaultBaseURL
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	if cfg.TokenFile == "" {
		home, _ := os.UserHomeDir()
		cfg.TokenFile = filepath.Join(home, ".invkeeper_token")
	}

	return cfg
}
