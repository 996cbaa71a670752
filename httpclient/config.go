package httpclient

import (
	"strings"
	"time"

	"github.com/illuscio-dev/httpentities-go/internal/charsets"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"
)

const (
	defaultTimeout = 30 * time.Second

	// EnvPrefix prefixes environment variables that override file configuration, for
	// example HTTPENTITIES_BASE_URL.
	EnvPrefix = "HTTPENTITIES"
)

// Config configures the clients created by a Factory.
type Config struct {
	// BaseURL is prepended to request paths that are not absolute URLs.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds each request. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Charset is passed to entity writers when a request does not name one. Empty
	// leaves the charset off the Content-Type header.
	Charset string `yaml:"charset" mapstructure:"charset"`

	// Headers are applied to every request. Request headers override them.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
}

// ApplyDefaults fills in zero-value fields.
func (config *Config) ApplyDefaults() {
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}
}

// Validate checks that the configuration is usable.
func (config *Config) Validate() error {
	if config.Timeout <= 0 {
		return xerrors.New("httpclient: timeout must be positive")
	}
	if config.Charset != "" {
		if _, err := charsets.Lookup(config.Charset); err != nil {
			return xerrors.Errorf("httpclient: %w", err)
		}
	}
	return nil
}

// LoadConfig reads a Config from the YAML file at path. Environment variables prefixed
// with EnvPrefix override values from the file. Defaults are applied before the result
// is validated.
func LoadConfig(path string) (Config, error) {
	loader := viper.New()
	loader.SetConfigFile(path)
	loader.SetConfigType("yaml")
	loader.SetEnvPrefix(EnvPrefix)
	loader.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	loader.AutomaticEnv()

	// Keys only known from the environment are invisible to Unmarshal unless bound.
	for _, key := range []string{"base_url", "timeout", "charset"} {
		if err := loader.BindEnv(key); err != nil {
			return Config{}, xerrors.Errorf("error binding %s: %w", key, err)
		}
	}

	config := Config{}
	if err := loader.ReadInConfig(); err != nil {
		return config, xerrors.Errorf("error reading config file %s: %w", path, err)
	}
	if err := loader.Unmarshal(&config); err != nil {
		return config, xerrors.Errorf("error decoding config file %s: %w", path, err)
	}

	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}
