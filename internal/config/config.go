package config

import (
	"cacei_stats_backend/internal/grading"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Database  DatabaseConfig  `mapstructure:"database" yaml:"database"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Tracing   TracingConfig   `mapstructure:"tracing" yaml:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors" yaml:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" yaml:"rate_limit"`
	Catalog   CatalogConfig   `mapstructure:"catalog" yaml:"catalog"`
	Grading   GradingConfig   `mapstructure:"grading" yaml:"grading"`

	// 运行时标志（非配置文件）
	ConfigPath string `mapstructure:"-" yaml:"-"`
}

type ServerConfig struct {
	Port string `mapstructure:"port" yaml:"port"`
	Mode string `mapstructure:"mode" yaml:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	User     string `mapstructure:"user" yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
	// 为空时不绑定默认库，查询中使用 schema.table
	DBName          string `mapstructure:"dbname" yaml:"dbname"`
	Charset         string `mapstructure:"charset" yaml:"charset"`
	ParseTime       bool   `mapstructure:"parse_time" yaml:"parse_time"`
	MaxOpenConns    int    `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime_seconds" yaml:"conn_max_lifetime_seconds"`
	LogQueries      bool   `mapstructure:"log_queries" yaml:"log_queries"`
}

type LogConfig struct {
	// 为空时按 server.mode 决定（debug 模式为 debug，其余为 info）
	Level      string `mapstructure:"level" yaml:"level"`
	File       string `mapstructure:"file" yaml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled" yaml:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint" yaml:"collector_endpoint"`
	ServiceName       string `mapstructure:"service_name" yaml:"service_name"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests" yaml:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes" yaml:"window_minutes"`
}

// CatalogConfig 科目名称目录的解析方式：auto 在启动时探测 information_schema
type CatalogConfig struct {
	Mode   string `mapstructure:"mode" yaml:"mode"`
	Schema string `mapstructure:"schema" yaml:"schema"`
}

type GradingConfig struct {
	DefaultProgram        string  `mapstructure:"default_program" yaml:"default_program"`
	DefaultThreshold      float64 `mapstructure:"default_threshold" yaml:"default_threshold"`
	DefaultVariant        string  `mapstructure:"default_variant" yaml:"default_variant"`
	CountNonNumericAsFail bool    `mapstructure:"count_non_numeric_as_fail" yaml:"count_non_numeric_as_fail"`
	MaxCohortSemesters    int     `mapstructure:"max_cohort_semesters" yaml:"max_cohort_semesters"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 13306)
	v.SetDefault("database.user", "root")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parse_time", true)
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_seconds", 3600)

	v.SetDefault("log.file", "logs/app.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)

	v.SetDefault("tracing.service_name", "cacei-stats")

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:5173", "http://127.0.0.1:5173"})
	v.SetDefault("rate_limit.max_requests", 6000)
	v.SetDefault("rate_limit.window_minutes", 1)

	v.SetDefault("catalog.mode", "auto")

	v.SetDefault("grading.default_program", "AEROESPACIAL")
	v.SetDefault("grading.default_threshold", 6.0)
	v.SetDefault("grading.default_variant", "best_attempt")
	v.SetDefault("grading.count_non_numeric_as_fail", false)
	v.SetDefault("grading.max_cohort_semesters", 9)
}

func LoadConfig(path string) (*Config, error) {
	// .env 只补充未设置的环境变量
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("CACEI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// Database
	v.BindEnv("database.host", "DB_HOST", "DATABASE_HOST")
	v.BindEnv("database.port", "DB_PORT", "DATABASE_PORT")
	v.BindEnv("database.user", "DB_USER", "DATABASE_USER")
	v.BindEnv("database.password", "DB_PASS", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")

	// Server
	v.BindEnv("server.mode", "SERVER_MODE")
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("log.level", "LOG_LEVEL")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Grading.DefaultThreshold <= 0 {
		return fmt.Errorf("grading.default_threshold must be positive, got %v", c.Grading.DefaultThreshold)
	}
	if _, err := grading.LookupVariant(c.Grading.DefaultVariant); err != nil {
		return fmt.Errorf("grading.default_variant: %w", err)
	}
	if c.Grading.MaxCohortSemesters <= 0 {
		return fmt.Errorf("grading.max_cohort_semesters must be positive, got %d", c.Grading.MaxCohortSemesters)
	}
	switch c.Catalog.Mode {
	case "auto", "none":
	case "nombre", "asignatura":
		if c.Catalog.Schema == "" {
			return fmt.Errorf("catalog.schema is required when catalog.mode is %q", c.Catalog.Mode)
		}
	default:
		return fmt.Errorf("unknown catalog.mode %q", c.Catalog.Mode)
	}
	if c.RateLimit.MaxRequests <= 0 || c.RateLimit.WindowMinutes <= 0 {
		return fmt.Errorf("rate_limit values must be positive")
	}
	return nil
}
