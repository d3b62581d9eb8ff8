package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultJWTSecret is used when JWT_SECRET is unset. Never rely on it outside local development.
const DefaultJWTSecret = "insecure-dev-secret-change-me"

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Schema   SchemaConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port               string
	Mode               string
	CORSAllowedOrigins []string
}

type DatabaseConfig struct {
	URL            string
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MaxConns       int32
	ConnectTimeout time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type SchemaConfig struct {
	// FailFast makes the serve command exit when the schema cannot be created.
	FailFast bool
	Timeout  time.Duration
}

type LogConfig struct {
	Level string
}

var AppConfig *Config

func LoadConfig() *Config {
	v := newViper()

	AppConfig = &Config{
		Server:   GetServerConfig(v),
		Database: GetDatabaseConfig(v),
		Redis:    GetRedisConfig(v),
		Auth:     GetAuthConfig(v),
		Schema:   GetSchemaConfig(v),
		Log:      LogConfig{Level: v.GetString("LOG_LEVEL")},
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:           "localhost",
		Port:           "5433", // test DB listens on 5433
		User:           "postgres",
		Password:       "postgres",
		DBName:         "test_db",
		SSLMode:        "disable",
		MaxConns:       10,
		ConnectTimeout: 5 * time.Second,
	}

	testRedisConfig := RedisConfig{
		Enabled:  true,
		Host:     "localhost",
		Port:     "6380", // test Redis listens on 6380
		Password: "",
		DB:       1,
		CacheTTL: time.Minute,
	}

	return &Config{
		Server:   ServerConfig{Port: "8080", Mode: "test"},
		Database: *testConfig,
		Redis:    testRedisConfig,
		Auth:     AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour},
		Schema:   SchemaConfig{Timeout: 30 * time.Second},
		Log:      LogConfig{Level: "debug"},
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "postgres")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_CONNECT_TIMEOUT", "10s")

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "30s")

	v.SetDefault("JWT_SECRET", DefaultJWTSecret)
	v.SetDefault("JWT_TTL", "168h")

	v.SetDefault("SCHEMA_FAIL_FAST", false)
	v.SetDefault("SCHEMA_TIMEOUT", "30s")

	v.SetDefault("LOG_LEVEL", "info")
	return v
}

func GetServerConfig(v *viper.Viper) ServerConfig {
	origins := make([]string, 0)
	for _, o := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return ServerConfig{
		Port:               v.GetString("PORT"),
		Mode:               v.GetString("GIN_MODE"),
		CORSAllowedOrigins: origins,
	}
}

func GetDatabaseConfig(v *viper.Viper) DatabaseConfig {
	return DatabaseConfig{
		URL:            v.GetString("DATABASE_URL"),
		Host:           v.GetString("DB_HOST"),
		Port:           v.GetString("DB_PORT"),
		User:           v.GetString("DB_USER"),
		Password:       v.GetString("DB_PASSWORD"),
		DBName:         v.GetString("DB_NAME"),
		SSLMode:        v.GetString("DB_SSL_MODE"),
		MaxConns:       v.GetInt32("DB_MAX_CONNS"),
		ConnectTimeout: v.GetDuration("DB_CONNECT_TIMEOUT"),
	}
}

func GetRedisConfig(v *viper.Viper) RedisConfig {
	return RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetString("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
		CacheTTL: v.GetDuration("CACHE_TTL"),
	}
}

func GetAuthConfig(v *viper.Viper) AuthConfig {
	return AuthConfig{
		JWTSecret: v.GetString("JWT_SECRET"),
		TokenTTL:  v.GetDuration("JWT_TTL"),
	}
}

func GetSchemaConfig(v *viper.Viper) SchemaConfig {
	return SchemaConfig{
		FailFast: v.GetBool("SCHEMA_FAIL_FAST"),
		Timeout:  v.GetDuration("SCHEMA_TIMEOUT"),
	}
}

// ConnString returns DATABASE_URL when set, otherwise a postgres:// URL built from the parts.
func (c DatabaseConfig) ConnString() string {
	if c.URL != "" {
		return c.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%s", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}, "timezone": []string{"UTC"}}.Encode(),
	}
	return u.String()
}

// MigrationURL is ConnString with the scheme golang-migrate's pgx/v5 driver registers.
// Keyword/value DSNs ("host=... dbname=...") cannot be opened by golang-migrate and are rejected.
func (c DatabaseConfig) MigrationURL() (string, error) {
	conn := c.ConnString()
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(conn, prefix) {
			return "pgx5://" + strings.TrimPrefix(conn, prefix), nil
		}
	}
	if strings.HasPrefix(conn, "pgx5://") {
		return conn, nil
	}
	return "", errors.New("DATABASE_URL must be a postgres:// or postgresql:// URL, keyword/value connection strings are not supported")
}

func (c AuthConfig) UsesDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}
