package config

import (
	"time"

	pkgconfig "github.com/posk43/api-final-yatube/pkg/config"
	"github.com/posk43/api-final-yatube/pkg/pubsub"
	"github.com/posk43/api-final-yatube/pkg/storage"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Auth       AuthConfig
	Pagination PaginationConfig
	Cache      CacheConfig
	Reconciler ReconcilerConfig
	Events     EventsConfig
	Storage    StorageConfig
	Log        LogConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	FilePath        string `mapstructure:"file_path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	Issuer    string        `mapstructure:"issuer"`
	AccessTTL time.Duration `mapstructure:"access_ttl"`
}

type PaginationConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
	MaxLimit     int `mapstructure:"max_limit"`
}

type CacheConfig struct {
	GroupTTL time.Duration `mapstructure:"group_ttl"`
}

type ReconcilerConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type EventsConfig struct {
	Backend string              `mapstructure:"backend"` // redis, kafka, none
	Redis   pubsub.RedisConfig  `mapstructure:"redis"`
	Kafka   pubsub.KafkaConfig  `mapstructure:"kafka"`
}

type StorageConfig struct {
	Driver   string              `mapstructure:"driver"` // local, s3
	Local    storage.LocalConfig `mapstructure:"local"`
	S3       storage.S3Config    `mapstructure:"s3"`
	URLTTL   time.Duration       `mapstructure:"url_ttl"`
	MaxBytes int64               `mapstructure:"max_bytes"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func Load() (*Config, error) {
	v, err := pkgconfig.Load("./config", "config")
	if err != nil {
		return nil, err
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "postgres")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.file_path", "./data/content.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "auth-service")
	v.SetDefault("auth.access_ttl", "15m")
	v.SetDefault("pagination.default_limit", 10)
	v.SetDefault("pagination.max_limit", 100)
	v.SetDefault("cache.group_ttl", "5m")
	v.SetDefault("reconciler.interval", "60s")
	v.SetDefault("events.backend", "none")
	v.SetDefault("events.redis.address", "localhost:6379")
	v.SetDefault("events.kafka.brokers", "localhost:9092")
	v.SetDefault("events.kafka.group_id", "content-service")
	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.local.base_path", "./data/media")
	v.SetDefault("storage.url_ttl", "15m")
	v.SetDefault("storage.max_bytes", 10<<20)
	v.SetDefault("log.level", "info")

	// Bind environment variables
	v.BindEnv("server.port", "PORT")
	v.BindEnv("database.driver", "DB_DRIVER")
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.port", "DB_PORT")
	v.BindEnv("database.user", "DB_USER")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("database.dbname", "DB_NAME")
	v.BindEnv("database.sslmode", "DB_SSLMODE")
	v.BindEnv("database.file_path", "DB_FILE_PATH")
	v.BindEnv("redis.address", "REDIS_ADDRESS")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.db", "REDIS_DB")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("auth.issuer", "JWT_ISSUER")
	v.BindEnv("events.backend", "EVENTS_BACKEND")
	v.BindEnv("events.kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("storage.driver", "STORAGE_DRIVER")
	v.BindEnv("storage.s3.endpoint", "S3_ENDPOINT")
	v.BindEnv("storage.s3.bucket", "S3_BUCKET")
	v.BindEnv("storage.s3.access_key_id", "S3_ACCESS_KEY_ID")
	v.BindEnv("storage.s3.secret_access_key", "S3_SECRET_ACCESS_KEY")
	v.BindEnv("log.level", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
