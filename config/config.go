// Package config loads the YAML configuration of the gimli binary.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the root of the configuration file.
//
//	server:
//	  addr: ":8080"
//	  read_header_timeout: 5s
//	  max_uri_bytes: 8192
//	  max_body_bytes: 1048576
//	  hsts_max_age: 31536000
//	log:
//	  level: info
//	  format: json
//	request_id:
//	  header: X-Request-ID
//	  trust_incoming: true
//	metrics:
//	  enabled: true
//	  path: /metrics
//	auth:
//	  tokens: [s3cret]
//	  forward: /login
type Config struct {
	Server    Server    `yaml:"server"`
	Log       Log       `yaml:"log"`
	RequestID RequestID `yaml:"request_id"`
	Metrics   Metrics   `yaml:"metrics"`
	Auth      Auth      `yaml:"auth"`
}

// Server configures the HTTP listener.
type Server struct {
	Addr              string        `yaml:"addr"`
	Name              string        `yaml:"name"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`

	// MaxURIBytes bounds the request target; longer ones answer 414.
	MaxURIBytes int `yaml:"max_uri_bytes"`
	// MaxBodyBytes bounds request bodies; larger ones answer 413.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
	// HSTSMaxAge is the Strict-Transport-Security max-age in seconds.
	// Zero leaves the header out.
	HSTSMaxAge int `yaml:"hsts_max_age"`
}

// Log configures the process logger.
type Log struct {
	// Level is a logrus level name: trace, debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is "text" or "json".
	Format string `yaml:"format"`
}

// RequestID configures request id propagation.
type RequestID struct {
	Header        string `yaml:"header"`
	TrustIncoming bool   `yaml:"trust_incoming"`
}

// Metrics configures the Prometheus endpoint.
type Metrics struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Auth configures the token middleware guarding the API group.
type Auth struct {
	Tokens  StringList `yaml:"tokens"`
	Forward string     `yaml:"forward"`
}

// StringList decodes from either a YAML scalar or a sequence of scalars.
type StringList []string

// UnmarshalYAML decodes the list from a scalar (one element) or sequence.
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = StringList{node.Value}
		return nil
	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}
		*l = arr
		return nil
	default:
		return fmt.Errorf("unsupported YAML node kind %d for string list", node.Kind)
	}
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: Server{
			Addr:              ":8080",
			Name:              "gimli",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			MaxURIBytes:       8 << 10,
			MaxBodyBytes:      1 << 20,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
		RequestID: RequestID{
			Header: "X-Request-ID",
		},
		Metrics: Metrics{
			Enabled: true,
			Path:    "/metrics",
		},
		Auth: Auth{
			Forward: "/login",
		},
	}
}

// Load reads the file at path over the defaults and validates the result.
// Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML data over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("config: server.addr is required")
	}
	if c.Server.ReadHeaderTimeout < 0 {
		return errors.New("config: server.read_header_timeout must not be negative")
	}
	if c.Server.ShutdownTimeout < 0 {
		return errors.New("config: server.shutdown_timeout must not be negative")
	}
	if c.Server.MaxURIBytes <= 0 {
		return errors.New("config: server.max_uri_bytes must be positive")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New("config: server.max_body_bytes must be positive")
	}
	if c.Server.HSTSMaxAge < 0 {
		return errors.New("config: server.hsts_max_age must not be negative")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: log.format must be text or json, got %q", c.Log.Format)
	}
	if c.RequestID.Header == "" {
		return errors.New("config: request_id.header is required")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("config: metrics.path must start with /, got %q", c.Metrics.Path)
	}
	for i, tok := range c.Auth.Tokens {
		if strings.TrimSpace(tok) == "" {
			return fmt.Errorf("config: auth.tokens[%d] is empty", i)
		}
	}
	return nil
}

// NewLogger builds the process logger writing to w.
func (c Log) NewLogger(w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("config: log.level: %w", err)
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)

	switch c.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	return l, nil
}
