package config

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Storage   StorageConfig
	Tracing   TracingConfig `mapstructure:"tracing"`
	Redis     RedisConfig
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	ForceMigrate bool `mapstructure:"-"`
	MigrateOnly  bool `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

// PipelineConfig 自适应评分管线的可调参数，
// 避免阈值以魔法数字的形式散落在各个模块里
type PipelineConfig struct {
	TrendSlopeThreshold       float64 `mapstructure:"trend_slope_threshold"`        // 难度策略趋势阈值
	StrictTrendSlopeThreshold float64 `mapstructure:"strict_trend_slope_threshold"` // 参与度风险趋势阈值
	ObservationWindow         int     `mapstructure:"observation_window"`           // 趋势分析取最近N条观测
	EngagementWindowDays      int     `mapstructure:"engagement_window_days"`       // 参与度分析窗口天数
	DefaultTimeBudgetMinutes  int     `mapstructure:"default_time_budget_minutes"`  // 默认学习计划预算
	AccuracyWeight            float64 `mapstructure:"accuracy_weight"`
	TrendWeight               float64 `mapstructure:"trend_weight"`
	ConsistencyWeight         float64 `mapstructure:"consistency_weight"`
}

// PipelineParams 原子持有管线参数：热加载协程整体替换，
// 服务每次读取拿到一份完整快照，避免撕裂读
type PipelineParams struct {
	v atomic.Pointer[PipelineConfig]
}

func NewPipelineParams(cfg PipelineConfig) *PipelineParams {
	p := &PipelineParams{}
	p.v.Store(&cfg)
	return p
}

func (p *PipelineParams) Load() PipelineConfig {
	return *p.v.Load()
}

func (p *PipelineParams) Store(cfg PipelineConfig) {
	p.v.Store(&cfg)
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("AITUTOR")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Storage
	viper.BindEnv("storage.type", "STORAGE_TYPE")
	viper.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	viper.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	viper.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	viper.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	// 管线参数默认值
	viper.SetDefault("pipeline.trend_slope_threshold", 0.02)
	viper.SetDefault("pipeline.strict_trend_slope_threshold", 0.05)
	viper.SetDefault("pipeline.observation_window", 20)
	viper.SetDefault("pipeline.engagement_window_days", 30)
	viper.SetDefault("pipeline.default_time_budget_minutes", 60)
	viper.SetDefault("pipeline.accuracy_weight", 0.4)
	viper.SetDefault("pipeline.trend_weight", 0.2)
	viper.SetDefault("pipeline.consistency_weight", 0.2)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	// 生产环境校验 JWT Secret 强度
	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	return &cfg, nil
}
