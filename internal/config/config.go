// Package config loads the session configuration for a suite run.
package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default endpoint and credentials for the public storefront instance.
// The credentials belong to a documented demo account.
const (
	DefaultBaseURL  = "https://fakestoreapi.com"
	DefaultUsername = "mor_2314"
	DefaultPassword = "83r5^_"
	DefaultTimeout  = 30 * time.Second
)

// Session configures one suite run: the target service, the demo account
// for the auth scenarios, and the seed from which per-scenario generators
// derive.
type Session struct {
	// BaseURL is the root of the service under test.
	BaseURL string

	// Username and Password are the credentials for the login scenarios.
	Username string
	Password string

	// Timeout bounds each round-trip. There is no retry; a hung remote
	// blocks its scenario until this expires.
	Timeout time.Duration

	// Seed drives per-scenario random generators. Zero means derive a seed
	// from the current time at run start.
	Seed int64
}

// Default returns a session pointed at the public instance.
func Default() Session {
	return Session{
		BaseURL:  DefaultBaseURL,
		Username: DefaultUsername,
		Password: DefaultPassword,
		Timeout:  DefaultTimeout,
	}
}

// rawSession is the on-disk shape. The timeout is a string so configs can
// say "30s" or "1m"; yaml cannot decode those into a time.Duration.
type rawSession struct {
	BaseURL  string `yaml:"base_url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Timeout  string `yaml:"timeout"`
	Seed     int64  `yaml:"seed"`
}

// Load reads a session config from a YAML file. Unknown fields are
// rejected to catch typos; fields left unset keep their defaults.
func Load(path string) (Session, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw rawSession
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return s, fmt.Errorf("failed to parse config: %w", err)
	}

	if raw.BaseURL != "" {
		s.BaseURL = raw.BaseURL
	}
	if raw.Username != "" {
		s.Username = raw.Username
	}
	if raw.Password != "" {
		s.Password = raw.Password
	}
	if raw.Timeout != "" {
		timeout, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return s, fmt.Errorf("failed to parse config: invalid timeout %q: %w", raw.Timeout, err)
		}
		s.Timeout = timeout
	}
	if raw.Seed != 0 {
		s.Seed = raw.Seed
	}

	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("invalid config: %w", err)
	}
	return s, nil
}

// Validate checks the required fields.
func (s Session) Validate() error {
	if s.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", s.Timeout)
	}
	return nil
}
