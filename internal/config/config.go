// Package config resolves the application settings from flags, environment
// variables, an optional YAML file and built-in defaults, in that order.
package config

import (
	"net/url"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. REPO_BROWSER_USER.
const EnvPrefix = "REPO_BROWSER"

// Keys shared by viper and the cobra flags bound to it.
const (
	KeyUser    = "user"
	KeyAPIURL  = "api-url"
	KeyAddr    = "addr"
	KeyTimeout = "timeout"
	KeyVerbose = "verbose"
)

// Defaults.
const (
	DefaultUser    = "octocat"
	DefaultAPIURL  = "https://api.github.com/"
	DefaultAddr    = ":8080"
	DefaultTimeout = 30 * time.Second
)

// Config holds the resolved application settings.
type Config struct {
	// User is the fixed account whose repositories are listed.
	User    string
	APIURL  string
	Addr    string
	Timeout time.Duration
	Verbose bool
}

// NewViper returns a viper instance with defaults and environment lookup set up.
// configFile may be empty.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(KeyUser, DefaultUser)
	v.SetDefault(KeyAPIURL, DefaultAPIURL)
	v.SetDefault(KeyAddr, DefaultAddr)
	v.SetDefault(KeyTimeout, DefaultTimeout)
	v.SetDefault(KeyVerbose, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", configFile)
		}
	}
	return v, nil
}

// Load builds and validates a Config from v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		User:    strings.TrimSpace(v.GetString(KeyUser)),
		APIURL:  v.GetString(KeyAPIURL),
		Addr:    v.GetString(KeyAddr),
		Timeout: v.GetDuration(KeyTimeout),
		Verbose: v.GetBool(KeyVerbose),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.User == "" {
		return errors.New("user must not be empty")
	}
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return errors.Wrapf(err, "invalid api-url %q", c.APIURL)
	}
	if !u.IsAbs() || u.Host == "" {
		return errors.Errorf("api-url must be an absolute URL, got %q", c.APIURL)
	}
	if c.Timeout <= 0 {
		return errors.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}
