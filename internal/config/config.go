package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable read by the service.
const EnvPrefix = "WORKOUT"

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// MinJWTSecretLength is the shortest HMAC secret accepted for bearer tokens.
const MinJWTSecretLength = 16

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Session SessionConfig
	JWT     JWTConfig
	OpenAI  OpenAIConfig
}

type AppConfig struct {
	Env       string `envconfig:"WORKOUT_APP_ENV" default:"development"`
	Port      string `envconfig:"WORKOUT_APP_PORT" default:"8080"`
	GinMode   string `envconfig:"WORKOUT_GIN_MODE" default:"debug"`
	LogLevel  string `envconfig:"WORKOUT_LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"WORKOUT_LOG_FORMAT" default:"json"`
}

// IsProduction reports whether the service runs in release mode.
func (a AppConfig) IsProduction() bool {
	return a.GinMode == "release"
}

type DBConfig struct {
	Driver   string `envconfig:"WORKOUT_DB_DRIVER" default:"mysql"`
	DSN      string `envconfig:"WORKOUT_DB_DSN"`
	Host     string `envconfig:"WORKOUT_DB_HOST" default:"localhost"`
	Port     string `envconfig:"WORKOUT_DB_PORT" default:"3306"`
	User     string `envconfig:"WORKOUT_DB_USER" default:"workout"`
	Password string `envconfig:"WORKOUT_DB_PASSWORD" default:"workoutpassword"`
	Name     string `envconfig:"WORKOUT_DB_NAME" default:"workout"`

	MaxOpenConns    int           `envconfig:"WORKOUT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WORKOUT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WORKOUT_DB_CONN_MAX_LIFETIME" default:"1h"`
}

// DataSource returns the DSN for the configured driver. An explicit DSN wins.
func (d DBConfig) DataSource() (string, error) {
	if d.DSN != "" {
		return d.DSN, nil
	}

	switch d.Driver {
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			d.User,
			d.Password,
			net.JoinHostPort(d.Host, d.Port),
			d.Name,
		), nil
	case DriverPostgres:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			d.Host,
			d.User,
			d.Password,
			d.Name,
			d.Port,
		), nil
	case DriverSQLite:
		return d.Name + ".db", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", d.Driver)
	}
}

type RedisConfig struct {
	Host            string        `envconfig:"WORKOUT_REDIS_HOST" default:"localhost"`
	Port            string        `envconfig:"WORKOUT_REDIS_PORT" default:"6379"`
	Password        string        `envconfig:"WORKOUT_REDIS_PASSWORD"`
	DB              int           `envconfig:"WORKOUT_REDIS_DB" default:"0"`
	SessionPoolSize int           `envconfig:"WORKOUT_REDIS_SESSION_POOL_SIZE" default:"10"`
	CacheEnabled    bool          `envconfig:"WORKOUT_CATALOG_CACHE_ENABLED" default:"false"`
	CacheTTL        time.Duration `envconfig:"WORKOUT_CATALOG_CACHE_TTL" default:"10m"`
}

// Addr returns host:port for the redis server.
func (r RedisConfig) Addr() string {
	return net.JoinHostPort(r.Host, r.Port)
}

type SessionConfig struct {
	Store      string `envconfig:"WORKOUT_SESSION_STORE" default:"redis"`
	Secret     string `envconfig:"WORKOUT_SESSION_SECRET" default:"default-secret-key-change-me"`
	CookieName string `envconfig:"WORKOUT_SESSION_COOKIE_NAME" default:"workout_session"`
	MaxAge     int    `envconfig:"WORKOUT_SESSION_MAX_AGE" default:"604800"`
}

type JWTConfig struct {
	Secret            string `envconfig:"WORKOUT_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"WORKOUT_JWT_ISSUER" default:"workout-api"`
	ExpirationMinutes int    `envconfig:"WORKOUT_JWT_EXPIRATION_MINUTES" default:"60"`
}

// TTL returns the lifetime of issued access tokens.
func (j JWTConfig) TTL() time.Duration {
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type OpenAIConfig struct {
	APIKey string `envconfig:"WORKOUT_OPENAI_API_KEY"`
	Model  string `envconfig:"WORKOUT_OPENAI_MODEL" default:"gpt-4o"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	if len(c.JWT.Secret) < MinJWTSecretLength {
		return fmt.Errorf("jwt secret must be at least %d characters", MinJWTSecretLength)
	}
	if c.JWT.ExpirationMinutes <= 0 {
		return errors.New("jwt expiration minutes must be positive")
	}
	if _, err := c.DB.DataSource(); err != nil {
		return err
	}
	switch strings.ToLower(c.Session.Store) {
	case "redis", "cookie":
	default:
		return fmt.Errorf("unsupported session store %q", c.Session.Store)
	}
	return nil
}
