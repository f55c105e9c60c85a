// Package config loads and validates the ddns-server configuration from
// a YAML file plus environment variables. Configuration is loaded once
// at startup and is read-only afterwards.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/miekg/dns"
	"gopkg.in/yaml.v3"
)

// Defaults applied when neither the file nor the environment sets a value.
const (
	DefaultListen       = ":8000"
	DefaultTTL          = 3600
	DefaultNsupdatePath = "/usr/bin/nsupdate"
	DefaultServer       = "127.0.0.1"
	DefaultTimeout      = 30 * time.Second
	DefaultUserEnv      = "AUTH_USER"
	DefaultPassEnv      = "AUTH_PASS"
)

// Config represents the application configuration.
type Config struct {
	Zone     string         `yaml:"zone"`
	TTL      uint32         `yaml:"ttl"`
	HTTP     HTTPConfig     `yaml:"http"`
	Nsupdate NsupdateConfig `yaml:"nsupdate"`
	Auth     AuthConfig     `yaml:"auth"`
}

// HTTPConfig controls the HTTP API listener.
type HTTPConfig struct {
	Listen string `yaml:"listen"`

	// TrustedProxies lists reverse proxy addresses or CIDRs whose
	// forwarding headers are honored when resolving the client address.
	// Empty means no proxy is trusted and the peer address is used as is.
	TrustedProxies []string `yaml:"trusted_proxies"`
}

// NsupdateConfig controls the external zone update tool.
type NsupdateConfig struct {
	Path    string `yaml:"path"`
	Server  string `yaml:"server"`
	Timeout string `yaml:"timeout"`
}

// AuthConfig names the environment variables holding the API credentials.
// The credentials themselves never appear in the config file.
type AuthConfig struct {
	UserEnv string `yaml:"user_env"`
	PassEnv string `yaml:"pass_env"`

	Username string `yaml:"-"`
	Password string `yaml:"-"`
}

// Load reads the configuration file at path, applies environment
// overrides and defaults, and validates the result. An empty path skips
// the file and uses environment and defaults only.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays environment variables on top of file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("ZONE"); v != "" {
		c.Zone = v
	}
	if v := os.Getenv("RECORD_TTL"); v != "" {
		if ttl, err := strconv.ParseUint(v, 10, 32); err == nil {
			c.TTL = uint32(ttl)
		}
	}
	if v := os.Getenv("LISTEN"); v != "" {
		c.HTTP.Listen = v
	}
	if v := os.Getenv("NSUPDATE"); v != "" {
		c.Nsupdate.Path = v
	}
}

func (c *Config) applyDefaults() {
	if c.TTL == 0 {
		c.TTL = DefaultTTL
	}
	if c.HTTP.Listen == "" {
		c.HTTP.Listen = DefaultListen
	}
	if c.Nsupdate.Path == "" {
		c.Nsupdate.Path = DefaultNsupdatePath
	}
	if c.Nsupdate.Server == "" {
		c.Nsupdate.Server = DefaultServer
	}
	if c.Auth.UserEnv == "" {
		c.Auth.UserEnv = DefaultUserEnv
	}
	if c.Auth.PassEnv == "" {
		c.Auth.PassEnv = DefaultPassEnv
	}

	c.Zone = strings.Trim(c.Zone, ". ")
	c.Auth.Username = os.Getenv(c.Auth.UserEnv)
	c.Auth.Password = os.Getenv(c.Auth.PassEnv)
}

// Validate checks that the configuration is complete enough to start.
// Missing credentials or zone are fatal misconfiguration, caught before
// the server accepts any request.
func (c *Config) Validate() error {
	if c.Auth.Username == "" {
		return fmt.Errorf("environment variable %s is not set or empty", c.Auth.UserEnv)
	}
	if c.Auth.Password == "" {
		return fmt.Errorf("environment variable %s is not set or empty", c.Auth.PassEnv)
	}
	if c.Zone == "" {
		return fmt.Errorf("zone is not configured")
	}
	if _, ok := dns.IsDomainName(c.Zone); !ok {
		return fmt.Errorf("zone %q is not a valid domain name", c.Zone)
	}
	if _, err := c.NsupdateTimeout(); err != nil {
		return err
	}
	return nil
}

// NsupdateTimeout returns the configured tool timeout.
func (c *Config) NsupdateTimeout() (time.Duration, error) {
	if c.Nsupdate.Timeout == "" {
		return DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Nsupdate.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid nsupdate timeout %q: %w", c.Nsupdate.Timeout, err)
	}
	return d, nil
}
