package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"glosaguard/internal/risk"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	Log        LogConfig
	CORS       CORSConfig
	Validation ValidationConfig
	Risk       RiskConfig
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

	// MigrationsPath is the directory or source URL read by cmd/migrate.
	MigrationsPath string `mapstructure:"migrations_path"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ValidationConfig holds guide validation settings.
type ValidationConfig struct {
	// HighValueThreshold is in cents.
	HighValueThreshold int64 `mapstructure:"high_value_threshold"`
	MaxXMLBytes        int64 `mapstructure:"max_xml_bytes"`
}

// RiskConfig holds the risk scoring weights and bands.
type RiskConfig struct {
	ErrorWeight         int `mapstructure:"error_weight"`
	CriticalErrorWeight int `mapstructure:"critical_error_weight"`
	WarningWeight       int `mapstructure:"warning_weight"`
	MaxScore            int `mapstructure:"max_score"`
	MediumAbove         int `mapstructure:"medium_above"`
	HighAbove           int `mapstructure:"high_above"`
}

// Policy converts the configured weights into a scoring policy.
func (r *RiskConfig) Policy() risk.Policy {
	return risk.Policy{
		ErrorWeight:         r.ErrorWeight,
		CriticalErrorWeight: r.CriticalErrorWeight,
		WarningWeight:       r.WarningWeight,
		MaxScore:            r.MaxScore,
		MediumAbove:         r.MediumAbove,
		HighAbove:           r.HighAbove,
	}
}

// Load reads configuration from environment variables with the GLOSA_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GLOSA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "glosaguard")
	v.SetDefault("db.password", "glosaguard_secret")
	v.SetDefault("db.name", "glosaguard_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)
	v.SetDefault("db.migrations_path", "db/migrations")

	// Log defaults
	v.SetDefault("log.level", "debug")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Validation defaults
	v.SetDefault("validation.high_value_threshold", 100000)
	v.SetDefault("validation.max_xml_bytes", 5<<20)

	// Risk defaults
	def := risk.DefaultPolicy()
	v.SetDefault("risk.error_weight", def.ErrorWeight)
	v.SetDefault("risk.critical_error_weight", def.CriticalErrorWeight)
	v.SetDefault("risk.warning_weight", def.WarningWeight)
	v.SetDefault("risk.max_score", def.MaxScore)
	v.SetDefault("risk.medium_above", def.MediumAbove)
	v.SetDefault("risk.high_above", def.HighAbove)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                     "GLOSA_SERVER_PORT",
		"server.read_timeout":             "GLOSA_SERVER_READ_TIMEOUT",
		"server.write_timeout":            "GLOSA_SERVER_WRITE_TIMEOUT",
		"server.environment":              "GLOSA_SERVER_ENVIRONMENT",
		"db.host":                         "GLOSA_DB_HOST",
		"db.port":                         "GLOSA_DB_PORT",
		"db.user":                         "GLOSA_DB_USER",
		"db.password":                     "GLOSA_DB_PASSWORD",
		"db.name":                         "GLOSA_DB_NAME",
		"db.sslmode":                      "GLOSA_DB_SSLMODE",
		"db.max_open":                     "GLOSA_DB_MAX_OPEN",
		"db.max_idle":                     "GLOSA_DB_MAX_IDLE",
		"db.migrations_path":              "GLOSA_DB_MIGRATIONS_PATH",
		"log.level":                       "GLOSA_LOG_LEVEL",
		"cors.allowed_origins":            "GLOSA_CORS_ALLOWED_ORIGINS",
		"validation.high_value_threshold": "GLOSA_VALIDATION_HIGH_VALUE_THRESHOLD",
		"validation.max_xml_bytes":        "GLOSA_VALIDATION_MAX_XML_BYTES",
		"risk.error_weight":               "GLOSA_RISK_ERROR_WEIGHT",
		"risk.critical_error_weight":      "GLOSA_RISK_CRITICAL_ERROR_WEIGHT",
		"risk.warning_weight":             "GLOSA_RISK_WARNING_WEIGHT",
		"risk.max_score":                  "GLOSA_RISK_MAX_SCORE",
		"risk.medium_above":               "GLOSA_RISK_MEDIUM_ABOVE",
		"risk.high_above":                 "GLOSA_RISK_HIGH_ABOVE",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if GLOSA_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("GLOSA_SERVER_PORT") == "" {
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

		MigrationsPath: v.GetString("db.migrations_path"),
	}
	cfg.Log = LogConfig{
		Level: v.GetString("log.level"),
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

	cfg.Validation = ValidationConfig{
		HighValueThreshold: v.GetInt64("validation.high_value_threshold"),
		MaxXMLBytes:        v.GetInt64("validation.max_xml_bytes"),
	}
	if cfg.Validation.HighValueThreshold <= 0 {
		return nil, fmt.Errorf("validation.high_value_threshold must be positive, got %d", cfg.Validation.HighValueThreshold)
	}
	if cfg.Validation.MaxXMLBytes <= 0 {
		return nil, fmt.Errorf("validation.max_xml_bytes must be positive, got %d", cfg.Validation.MaxXMLBytes)
	}

	cfg.Risk = RiskConfig{
		ErrorWeight:         v.GetInt("risk.error_weight"),
		CriticalErrorWeight: v.GetInt("risk.critical_error_weight"),
		WarningWeight:       v.GetInt("risk.warning_weight"),
		MaxScore:            v.GetInt("risk.max_score"),
		MediumAbove:         v.GetInt("risk.medium_above"),
		HighAbove:           v.GetInt("risk.high_above"),
	}
	if cfg.Risk.MediumAbove > cfg.Risk.HighAbove {
		return nil, fmt.Errorf("risk.medium_above (%d) must not exceed risk.high_above (%d)", cfg.Risk.MediumAbove, cfg.Risk.HighAbove)
	}

	return cfg, nil
}
