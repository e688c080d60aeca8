package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"munidocs/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	DB          DBConfig
	JWT         JWTConfig
	LLM         LLMConfig
	Institution InstitutionConfig
	S3          S3Config
	Log         LogConfig
	CORS        CORSConfig
	Tracing     TracingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
	URL      string `mapstructure:"url"`
}

// DSN returns the PostgreSQL connection string. An explicit URL wins over
// the individual fields.
func (d *DBConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds the settings used to verify caller credentials issued by
// the identity provider.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// LLMConfig holds the chat-completion provider settings.
type LLMConfig struct {
	Provider     string  `mapstructure:"provider"`
	APIKey       string  `mapstructure:"api_key"`
	DefaultModel string  `mapstructure:"default_model"`
	BaseURL      string  `mapstructure:"base_url"`
	TimeoutSecs  int     `mapstructure:"timeout_secs"`
	RateIn       float64 `mapstructure:"rate_in"`
	RateOut      float64 `mapstructure:"rate_out"`
}

// InstitutionConfig holds the attribution constants used in signatures.
type InstitutionConfig struct {
	Name        string `mapstructure:"name"`
	DefaultRole string `mapstructure:"default_role"`
}

// S3Config holds the archive storage settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// Enabled reports whether archive storage is configured.
func (s *S3Config) Enabled() bool {
	return s.Bucket != ""
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// TracingConfig holds OpenTelemetry settings.
type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	Endpoint     string  `mapstructure:"endpoint"`
	ServiceName  string  `mapstructure:"service_name"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
	StdoutExport bool    `mapstructure:"stdout"`
}

// Validate reports every missing secret the service needs. A non-empty
// result does not stop the server: affected requests fail with a
// ConfigurationError instead.
func (c *Config) Validate() []*domain.ConfigurationError {
	var errs []*domain.ConfigurationError
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		errs = append(errs, &domain.ConfigurationError{Key: "MUNIDOCS_LLM_API_KEY"})
	}
	if strings.TrimSpace(c.JWT.Secret) == "" {
		errs = append(errs, &domain.ConfigurationError{Key: "MUNIDOCS_JWT_SECRET"})
	}
	if strings.TrimSpace(c.DB.URL) == "" && strings.TrimSpace(c.DB.Host) == "" {
		errs = append(errs, &domain.ConfigurationError{Key: "MUNIDOCS_DB_URL"})
	}
	return errs
}

// Load reads configuration from an optional .env file and environment
// variables with the MUNIDOCS_ prefix.
func Load() (*Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("MUNIDOCS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "munidocs")
	v.SetDefault("db.password", "munidocs_secret")
	v.SetDefault("db.name", "munidocs_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)
	v.SetDefault("db.url", "")

	// JWT defaults
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "")

	// LLM defaults
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.api_key", "")
	// Empty lets the selected provider pick its own default model.
	v.SetDefault("llm.default_model", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.timeout_secs", 120)
	v.SetDefault("llm.rate_in", 0.0000025)
	v.SetDefault("llm.rate_out", 0.00001)

	// Institution defaults
	v.SetDefault("institution.name", "Municipalidad")
	v.SetDefault("institution.default_role", "Secretaría Municipal")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Generation endpoints are called from browser clients on any origin
	v.SetDefault("cors.allowed_origins", "*")

	// Tracing defaults
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.service_name", "munidocs")
	v.SetDefault("tracing.sample_ratio", 1.0)
	v.SetDefault("tracing.stdout", false)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                "MUNIDOCS_SERVER_PORT",
		"server.read_timeout":        "MUNIDOCS_SERVER_READ_TIMEOUT",
		"server.write_timeout":       "MUNIDOCS_SERVER_WRITE_TIMEOUT",
		"server.environment":         "MUNIDOCS_SERVER_ENVIRONMENT",
		"db.host":                    "MUNIDOCS_DB_HOST",
		"db.port":                    "MUNIDOCS_DB_PORT",
		"db.user":                    "MUNIDOCS_DB_USER",
		"db.password":                "MUNIDOCS_DB_PASSWORD",
		"db.name":                    "MUNIDOCS_DB_NAME",
		"db.sslmode":                 "MUNIDOCS_DB_SSLMODE",
		"db.max_open":                "MUNIDOCS_DB_MAX_OPEN",
		"db.max_idle":                "MUNIDOCS_DB_MAX_IDLE",
		"db.url":                     "MUNIDOCS_DB_URL",
		"jwt.secret":                 "MUNIDOCS_JWT_SECRET",
		"jwt.issuer":                 "MUNIDOCS_JWT_ISSUER",
		"llm.provider":               "MUNIDOCS_LLM_PROVIDER",
		"llm.api_key":                "MUNIDOCS_LLM_API_KEY",
		"llm.default_model":          "MUNIDOCS_LLM_DEFAULT_MODEL",
		"llm.base_url":               "MUNIDOCS_LLM_BASE_URL",
		"llm.timeout_secs":           "MUNIDOCS_LLM_TIMEOUT_SECS",
		"llm.rate_in":                "MUNIDOCS_LLM_RATE_IN",
		"llm.rate_out":               "MUNIDOCS_LLM_RATE_OUT",
		"institution.name":           "MUNIDOCS_INSTITUTION_NAME",
		"institution.default_role":   "MUNIDOCS_INSTITUTION_DEFAULT_ROLE",
		"s3.region":                  "MUNIDOCS_S3_REGION",
		"s3.bucket":                  "MUNIDOCS_S3_BUCKET",
		"s3.endpoint":                "MUNIDOCS_S3_ENDPOINT",
		"s3.access_key":              "MUNIDOCS_S3_ACCESS_KEY",
		"s3.secret_key":              "MUNIDOCS_S3_SECRET_KEY",
		"s3.presign_expiry":          "MUNIDOCS_S3_PRESIGN_EXPIRY",
		"log.level":                  "MUNIDOCS_LOG_LEVEL",
		"log.format":                 "MUNIDOCS_LOG_FORMAT",
		"cors.allowed_origins":       "MUNIDOCS_CORS_ALLOWED_ORIGINS",
		"tracing.enabled":            "MUNIDOCS_TRACING_ENABLED",
		"tracing.endpoint":           "MUNIDOCS_TRACING_ENDPOINT",
		"tracing.service_name":       "MUNIDOCS_TRACING_SERVICE_NAME",
		"tracing.sample_ratio":       "MUNIDOCS_TRACING_SAMPLE_RATIO",
		"tracing.stdout":             "MUNIDOCS_TRACING_STDOUT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if MUNIDOCS_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("MUNIDOCS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
		URL:      v.GetString("db.url"),
	}
	cfg.JWT = JWTConfig{
		Secret: v.GetString("jwt.secret"),
		Issuer: v.GetString("jwt.issuer"),
	}
	cfg.LLM = LLMConfig{
		Provider:     v.GetString("llm.provider"),
		APIKey:       v.GetString("llm.api_key"),
		DefaultModel: v.GetString("llm.default_model"),
		BaseURL:      v.GetString("llm.base_url"),
		TimeoutSecs:  v.GetInt("llm.timeout_secs"),
		RateIn:       v.GetFloat64("llm.rate_in"),
		RateOut:      v.GetFloat64("llm.rate_out"),
	}
	cfg.Institution = InstitutionConfig{
		Name:        v.GetString("institution.name"),
		DefaultRole: v.GetString("institution.default_role"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}
	cfg.Tracing = TracingConfig{
		Enabled:      v.GetBool("tracing.enabled"),
		Endpoint:     v.GetString("tracing.endpoint"),
		ServiceName:  v.GetString("tracing.service_name"),
		SampleRatio:  v.GetFloat64("tracing.sample_ratio"),
		StdoutExport: v.GetBool("tracing.stdout"),
	}

	return cfg, nil
}
