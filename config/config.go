// Package config loads the application configuration from YAML files with
// environment-variable overrides through koanf.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const defaultPath = "."

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port int `json:"port" yaml:"port"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Redis *RedisConfig `json:"redis" yaml:"redis"`

	Telegram *TelegramConfig `json:"telegram" yaml:"telegram"`

	// Cache configuration for the shop geo index and ranked responses
	Cache *CacheConfig `json:"cache" yaml:"cache"`

	// PubSub configuration for hook-event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// RedisConfig defines the connection pool for the shop cache.
type RedisConfig struct {
	Host        string        `json:"host" yaml:"host"`
	Port        int           `json:"port" yaml:"port"`
	Password    string        `json:"password" yaml:"password"`
	DB          int           `json:"db" yaml:"db"`
	MaxIdle     int           `json:"maxIdle" yaml:"maxIdle"`
	MaxActive   int           `json:"maxActive" yaml:"maxActive"`
	IdleTimeout time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
}

// TelegramConfig defines the outbound Bot API client.
type TelegramConfig struct {
	APIURL string `json:"apiUrl" yaml:"apiUrl"`
	Token  string `json:"token" yaml:"token"`

	// RequestTimeout bounds a single delivery attempt
	RequestTimeout time.Duration `json:"requestTimeout" yaml:"requestTimeout"`

	// RetryCount is the number of retries after the first attempt
	RetryCount int `json:"retryCount" yaml:"retryCount"`

	// Exponential backoff between attempts, capped at BackoffMax
	BackoffInitial time.Duration `json:"backoffInitial" yaml:"backoffInitial"`
	BackoffMax     time.Duration `json:"backoffMax" yaml:"backoffMax"`
}

// CacheConfig defines freshness and query bounds for the shop cache.
type CacheConfig struct {
	// ShopsTTL is the freshness lifetime of a city's geo index
	ShopsTTL time.Duration `json:"shopsTtl" yaml:"shopsTtl"`

	// SearchRadiusMeters bounds the nearest-shop proximity query
	SearchRadiusMeters float64 `json:"searchRadiusMeters" yaml:"searchRadiusMeters"`

	// ResponseQuantity caps how many venue messages one hook produces
	ResponseQuantity int `json:"responseQuantity" yaml:"responseQuantity"`
}

// PubSubConfig defines hook-event publishing.
type PubSubConfig struct {
	// Provider type: empty or "noop" disables publishing, "google" uses
	// Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	ProjectID string `json:"projectId" yaml:"projectId"`
	TopicID   string `json:"topicId" yaml:"topicId"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: TELEGRAM_APIURL -> telegram.apiUrl (not telegram.apiurl)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Cache == nil {
		cfg.Cache = &CacheConfig{}
	}
	if cfg.Cache.ShopsTTL <= 0 {
		cfg.Cache.ShopsTTL = 24 * time.Hour
	}
	if cfg.Cache.SearchRadiusMeters <= 0 {
		cfg.Cache.SearchRadiusMeters = 1000
	}
	if cfg.Cache.ResponseQuantity <= 0 {
		cfg.Cache.ResponseQuantity = 2
	}

	if cfg.Telegram != nil {
		if cfg.Telegram.RequestTimeout <= 0 {
			cfg.Telegram.RequestTimeout = 35 * time.Second
		}
		if cfg.Telegram.RetryCount <= 0 {
			cfg.Telegram.RetryCount = 3
		}
		if cfg.Telegram.BackoffInitial <= 0 {
			cfg.Telegram.BackoffInitial = 200 * time.Millisecond
		}
		if cfg.Telegram.BackoffMax <= 0 {
			cfg.Telegram.BackoffMax = 5 * time.Second
		}
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
