package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
	// Mode is "debug" or "release". Release hides internal error details.
	Mode string `mapstructure:"mode"`
}

// IsRelease reports whether the server runs in release mode.
func (s ServerConfig) IsRelease() bool {
	return s.Mode == ModeRelease
}

const (
	ModeDebug   = "debug"
	ModeRelease = "release"
)

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// Enabled reports whether enough is configured to talk to a bucket.
func (s S3Config) Enabled() bool {
	return s.BucketName != "" && s.Region != ""
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type CORSConfig struct {
	// Origin is a comma-separated list of allowed client origins.
	Origin string `mapstructure:"origin"`
}

// AllowedOrigins splits Origin into its trimmed, non-empty parts.
func (c CORSConfig) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.Origin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// LoadConfig reads configuration from path/.env, path/config.yaml and the
// environment, in increasing order of precedence.
func LoadConfig(path string) (config Config, err error) {
	// .env only seeds the process environment; variables already set win.
	if err = godotenv.Load(filepath.Join(path, ".env")); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return config, fmt.Errorf("loading .env: %w", err)
		}
		err = nil
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS, jwt.expiration -> JWT_EXPIRATION
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	// Every key needs a default so AutomaticEnv applies during Unmarshal.
	v.SetDefault("server.address", ":5001")
	v.SetDefault("server.mode", ModeDebug)
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "fittrack")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "720h")
	v.SetDefault("cors.origin", "http://localhost:5173")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.use_ssl", true)

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, err
		}
		err = nil
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, err
	}

	// Hosting platforms inject a bare port number.
	if port := os.Getenv("PORT"); port != "" {
		config.Server.Address = ":" + port
	}

	return config, nil
}

// Validate reports configuration that would leave the server unusable.
func (c Config) Validate() error {
	var problems []string
	if c.JWT.Secret == "" {
		problems = append(problems, "jwt.secret is required")
	}
	if c.JWT.Expiration <= 0 {
		problems = append(problems, "jwt.expiration must be positive")
	}
	if c.Database.URI == "" {
		problems = append(problems, "database.uri is required")
	}
	if c.Server.Mode != ModeDebug && c.Server.Mode != ModeRelease {
		problems = append(problems, fmt.Sprintf("server.mode %q is not debug or release", c.Server.Mode))
	}
	if len(problems) > 0 {
		return errors.New("invalid config: " + strings.Join(problems, "; "))
	}
	return nil
}
