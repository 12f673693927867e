package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the process-wide configuration, loaded once at startup and
// provided through fx. Every value has a default so the binary boots with an
// empty environment (sqlite, no redis auth, local addr).
type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Webhook  WebhookConfig  `mapstructure:"webhook"`
	Referral ReferralConfig `mapstructure:"referral"`

	Subscription SubscriptionConfig `mapstructure:"subscription"`
	Poll         PollConfig         `mapstructure:"poll"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // "postgres" or "sqlite"
	DSN    string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type WebhookConfig struct {
	// AbacatePaySecret is compared against the X-Webhook-Secret header on the
	// PIX QR-code provider's callbacks.
	AbacatePaySecret string `mapstructure:"abacatepay_secret"`
	RetentionDays    int    `mapstructure:"retention_days"`
}

type ReferralConfig struct {
	// MaxDepth bounds the commission chain walk. Loop safety valve, not a
	// business rule: chains deeper than this are silently truncated.
	MaxDepth           int `mapstructure:"max_depth"`
	CommissionHoldDays int `mapstructure:"commission_hold_days"`
}

type SubscriptionConfig struct {
	PeriodDays int `mapstructure:"period_days"`
	TrialDays  int `mapstructure:"trial_days"`
}

type PollConfig struct {
	Backoff     []time.Duration `mapstructure:"backoff"`
	MaxAttempts int             `mapstructure:"max_attempts"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("HUBLN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "file:hubln.db?cache=shared")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("webhook.abacatepay_secret", "")
	v.SetDefault("webhook.retention_days", 90)
	v.SetDefault("referral.max_depth", 10)
	v.SetDefault("referral.commission_hold_days", 7)
	v.SetDefault("subscription.period_days", 30)
	v.SetDefault("subscription.trial_days", 7)
	v.SetDefault("poll.backoff", []time.Duration{
		30 * time.Second,
		60 * time.Second,
		120 * time.Second,
		300 * time.Second,
	})
	v.SetDefault("poll.max_attempts", 10)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
