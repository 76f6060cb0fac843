package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sagarc03/text2kv"
	"github.com/sagarc03/text2kv/backend"
	"github.com/sagarc03/text2kv/database"
	text2kvhttp "github.com/sagarc03/text2kv/http"
	"github.com/sagarc03/text2kv/kvdbstore"
	"github.com/sagarc03/text2kv/s3store"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "TEXT2KV"

// LegacyTokenEnv is also accepted for auth.token.
const LegacyTokenEnv = "TOKEN"

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for text2kv.
type Config struct {
	Server   ServerConfig           `mapstructure:"server"`
	Auth     AuthConfig             `mapstructure:"auth"`
	Store    StoreConfig            `mapstructure:"store"`
	Cache    backend.CacheConfig    `mapstructure:"cache"`
	Database database.Config        `mapstructure:"database"`
	Storage  StorageConfig          `mapstructure:"storage"`
	S3       s3store.Config         `mapstructure:"s3"`
	KVDB     kvdbstore.Config       `mapstructure:"kvdb"`
	CORS     text2kvhttp.CORSConfig `mapstructure:"cors"`
	Log      LogConfig              `mapstructure:"log"`
	Env      string                 `mapstructure:"env"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,min=1,max=65535"`
	PublicScheme    string        `mapstructure:"public_scheme" validate:"omitempty,oneof=http https"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"min=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"min=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" validate:"min=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"min=0"`
}

// AuthConfig holds the shared token.
type AuthConfig struct {
	Token string `mapstructure:"token"`
}

// StoreConfig selects the backing store.
type StoreConfig struct {
	Type          string        `mapstructure:"type" validate:"required,oneof=memory kvdb filesystem sqlite postgres s3"`
	ReadFreshness time.Duration `mapstructure:"read_freshness" validate:"min=0"`
}

// StorageConfig holds file storage configuration.
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Backend returns the settings backend.Open needs.
func (c *Config) Backend() backend.Config {
	return backend.Config{
		Type:        c.Store.Type,
		Cache:       c.Cache,
		Database:    c.Database,
		StoragePath: c.Storage.Path,
		S3:          c.S3,
		KVDB:        c.KVDB,
	}
}

// Service returns the TextService settings.
func (c *Config) Service() text2kv.ServiceConfig {
	return text2kv.ServiceConfig{ReadFreshness: c.Store.ReadFreshness}
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"store":        "store.type",
	"token":        "auth.token",
	"db-dsn":       "database.dsn",
	"storage-path": "storage.path",
	"port":         "server.port",
	"log-level":    "log.level",
	"cache":        "cache.enabled",
	"auto-migrate": "database.auto_migrate",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		// Use custom mapping if it exists, otherwise use flag name as-is
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5708)
	v.SetDefault("server.public_scheme", "")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("auth.token", "")

	v.SetDefault("store.type", backend.TypeMemory)
	v.SetDefault("store.read_freshness", text2kv.DefaultReadFreshness)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.max_entries", 1024)

	v.SetDefault("database.dsn", "text2kv.db")
	v.SetDefault("database.tables.objects", "text2kv_objects")
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("storage.path", "./data")

	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.region", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.prefix", "")
	v.SetDefault("s3.path_style", false)

	v.SetDefault("kvdb.name", "")
	v.SetDefault("kvdb.domain", kvdbstore.DefaultDomain)
	v.SetDefault("kvdb.endpoints", []string{})

	v.SetDefault("log.level", "")
	v.SetDefault("env", "dev")
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("auth.token", EnvPrefix+"_AUTH_TOKEN", LegacyTokenEnv)

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 6. Validate using go-playground/validator
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return err
	}

	switch cfg.Store.Type {
	case backend.TypeSQLite, backend.TypePostgres:
		if err := cfg.Database.Tables.Validate(); err != nil {
			return err
		}
	case backend.TypeFilesystem:
		if cfg.Storage.Path == "" {
			return errors.New("storage.path is required for the filesystem store")
		}
	case backend.TypeS3:
		if cfg.S3.Bucket == "" || cfg.S3.Region == "" {
			return errors.New("s3.bucket and s3.region are required for the s3 store")
		}
	}

	return nil
}
