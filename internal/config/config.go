package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers for user snapshots.
const (
	DriverMemory = "memory"
	DriverMongo  = "mongo"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	StaticDir       string        `mapstructure:"static_dir"` // Client files; index.html is the fallback
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // memory | mongo
	URI    string `mapstructure:"uri"`
	Name   string `mapstructure:"name"`
}

// S3Config configures the optional snapshot archive. Archiving is off when
// BucketName is empty.
type S3Config struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	BucketName      string        `mapstructure:"bucket_name"`
	UseSSL          bool          `mapstructure:"use_ssl"` // Scheme for an Endpoint given without one
	PresignExpiry   time.Duration `mapstructure:"presign_expiry"`
}

// Enabled reports whether a bucket is configured.
func (c S3Config) Enabled() bool {
	return c.BucketName != ""
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug | info | warn | error
	Format string `mapstructure:"format"` // text | json
	File   string `mapstructure:"file"`   // Optional rotating log file
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS, database.driver -> DATABASE_DRIVER
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	v.SetDefault("server.address", ":3000")
	v.SetDefault("server.static_dir", "./web")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "5s")
	v.SetDefault("database.driver", DriverMemory)
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "win_tracker")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("s3.presign_expiry", "15m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	// A missing config file is fine; defaults and env vars still apply.
	if err = v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return config, fmt.Errorf("read config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("unmarshal config: %w", err)
	}

	if err = config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case DriverMemory:
	case DriverMongo:
		if c.Database.URI == "" || c.Database.Name == "" {
			return fmt.Errorf("database.uri and database.name are required for the %s driver", DriverMongo)
		}
	default:
		return fmt.Errorf("unknown database.driver %q (want %s or %s)", c.Database.Driver, DriverMemory, DriverMongo)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log.format %q (want text or json)", c.Log.Format)
	}
	return nil
}
