package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultSecondsPerPoint = 1800
	DefaultStoreTimeout    = 10 * time.Second

	AckBackendSQLite = "sqlite"
	AckBackendFile   = "file"
	AckBackendRedis  = "redis"
)

type Config struct {
	VaultPath string `mapstructure:"-"`
	DBPath    string `mapstructure:"-"`

	UserID       string         `mapstructure:"user_id"`
	LogLevel     string         `mapstructure:"log_level"`
	StoreTimeout time.Duration  `mapstructure:"store_timeout"`
	Reward       RewardConfig   `mapstructure:"reward"`
	AckStore     AckStoreConfig `mapstructure:"ack_store"`
	Capture      CaptureConfig  `mapstructure:"capture"`
}

type RewardConfig struct {
	SecondsPerPoint int64        `mapstructure:"seconds_per_point"`
	Levels          []LevelEntry `mapstructure:"levels"`
}

// LevelEntry is one configured level threshold. An empty list means the
// built-in production table.
type LevelEntry struct {
	Level          int    `mapstructure:"level"`
	TotalPoints    int64  `mapstructure:"total_points"`
	TimeEquivalent string `mapstructure:"time_equivalent"`
	Title          string `mapstructure:"title"`
}

type AckStoreConfig struct {
	Backend string      `mapstructure:"backend"`
	Redis   RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CaptureConfig struct {
	AllowFutureDates bool `mapstructure:"allow_future_dates"`
}

// Dir is the per-vault state directory.
func Dir(vaultPath string) string {
	return filepath.Join(vaultPath, ".prayerlog")
}

// Load reads <vault>/.prayerlog/config.yaml when present and applies
// PRAYERLOG_* environment overrides on top of the defaults.
func Load(vaultPath string) (Config, error) {
	if vaultPath == "" {
		return Config{}, fmt.Errorf("vault path is required")
	}
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(Dir(vaultPath))
	v.SetEnvPrefix("prayerlog")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("user_id", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("store_timeout", DefaultStoreTimeout)
	v.SetDefault("reward.seconds_per_point", DefaultSecondsPerPoint)
	v.SetDefault("ack_store.backend", AckBackendSQLite)
	v.SetDefault("ack_store.redis.address", "localhost:6379")
	v.SetDefault("ack_store.redis.password", "")
	v.SetDefault("ack_store.redis.db", 0)
	v.SetDefault("capture.allow_future_dates", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.VaultPath = vaultPath
	cfg.DBPath = filepath.Join(Dir(vaultPath), "prayerlog.db")
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("store_timeout must be positive")
	}
	if c.Reward.SecondsPerPoint <= 0 {
		return fmt.Errorf("reward.seconds_per_point must be positive")
	}
	switch c.AckStore.Backend {
	case AckBackendSQLite, AckBackendFile:
	case AckBackendRedis:
		if strings.TrimSpace(c.AckStore.Redis.Address) == "" {
			return fmt.Errorf("ack_store.redis.address is required for the redis backend")
		}
	default:
		return fmt.Errorf("unsupported ack_store.backend %q", c.AckStore.Backend)
	}
	return nil
}
