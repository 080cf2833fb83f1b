// Package config loads the offergen settings shared by the CLI and the HTTP
// server. Files are decoded by extension: YAML, TOML or JSON.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable holding the default config path.
const EnvPath = "OFFERGEN_CONFIG"

var ErrUnsupportedFormat = errors.New("config: unsupported file format")

// Config is the root configuration document.
type Config struct {
	// SchemaLocation is written as xsi:noNamespaceSchemaLocation when set.
	SchemaLocation string     `json:"schemaLocation" yaml:"schemaLocation" toml:"schema_location"`
	Output         Output     `json:"output" yaml:"output" toml:"output"`
	Validation     Validation `json:"validation" yaml:"validation" toml:"validation"`
	Log            Log        `json:"log" yaml:"log" toml:"log"`
	Server         Server     `json:"server" yaml:"server" toml:"server"`
}

// Output controls where and how documents are written.
type Output struct {
	Dir      string `json:"dir" yaml:"dir" toml:"dir" validate:"required"`
	Minify   bool   `json:"minify" yaml:"minify" toml:"minify"`
	Optimize bool   `json:"optimize" yaml:"optimize" toml:"optimize"`
	Unique   bool   `json:"unique" yaml:"unique" toml:"unique"`
}

// Validation toggles the pipeline guards.
type Validation struct {
	SelfCheck bool `json:"selfCheck" yaml:"selfCheck" toml:"self_check"`
	// Preset is an optional JSON document whose sections fill gaps in every
	// processed offer.
	Preset string `json:"preset" yaml:"preset" toml:"preset"`
}

// Log configures the slog handler.
type Log struct {
	Level  string `json:"level" yaml:"level" toml:"level" validate:"oneof=debug info warn error"`
	Format string `json:"format" yaml:"format" toml:"format" validate:"oneof=text json"`
}

// Server configures the HTTP endpoint.
type Server struct {
	Addr         string `json:"addr" yaml:"addr" toml:"addr" validate:"required"`
	ReadTimeout  string `json:"readTimeout" yaml:"readTimeout" toml:"read_timeout" validate:"omitempty,duration"`
	WriteTimeout string `json:"writeTimeout" yaml:"writeTimeout" toml:"write_timeout" validate:"omitempty,duration"`
	// MaxBodySize is the request body limit in bytes.
	MaxBodySize int `json:"maxBodySize" yaml:"maxBodySize" toml:"max_body_size" validate:"min=0"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Output:     Output{Dir: "."},
		Validation: Validation{SelfCheck: true},
		Log:        Log{Level: "info", Format: "text"},
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  "10s",
			WriteTimeout: "10s",
			MaxBodySize:  4 << 20,
		},
	}
}

// GetReadTimeout returns the read timeout, falling back to ten seconds.
func (s Server) GetReadTimeout() time.Duration {
	return parseDuration(s.ReadTimeout, 10*time.Second)
}

// GetWriteTimeout returns the write timeout, falling back to ten seconds.
func (s Server) GetWriteTimeout() time.Duration {
	return parseDuration(s.WriteTimeout, 10*time.Second)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Default()
	if err := decode(data, path, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDefault loads the file named by OFFERGEN_CONFIG, or returns Default
// when the variable is unset.
func LoadDefault() (Config, error) {
	path := strings.TrimSpace(os.Getenv(EnvPath))
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func decode(data []byte, path string, cfg *Config) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("config: file %s is empty", path)
	}

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		_, err = toml.Decode(string(data), cfg)
	case ".json":
		err = json.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		d, err := time.ParseDuration(fl.Field().String())
		return err == nil && d > 0
	})
	return v
}

// Validate checks field values.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("config: %w", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("config: invalid values: %s", strings.Join(msgs, "; "))
}
