// File: internal/config/config.go
package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/xkilldash9x/domgraph/internal/browser/layout"
	"github.com/xkilldash9x/domgraph/internal/browser/location"
)

// EnvPrefix namespaces environment overrides, e.g. DOMGRAPH_LOGGER_LEVEL.
const EnvPrefix = "DOMGRAPH"

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Document() DocumentConfig
	Layout() LayoutConfig
	Query() QueryConfig

	// Setters used by CLI flag overrides.
	SetDocumentURL(string)
	SetQueryConcurrency(int)
	SetQueryFormat(string)
}

// Config holds the entire application configuration. It uses private fields
// to enforce access through the Interface's getter methods.
type Config struct {
	logger   LoggerConfig
	document DocumentConfig
	layout   LayoutConfig
	query    QueryConfig
}

// fileConfig is the decoding target for viper. Unexported fields are
// invisible to mapstructure, so Config is filled from this.
type fileConfig struct {
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Document DocumentConfig `mapstructure:"document" yaml:"document"`
	Layout   LayoutConfig   `mapstructure:"layout" yaml:"layout"`
	Query    QueryConfig    `mapstructure:"query" yaml:"query"`
}

// --- Interface Method Implementations (Getters) ---

func (c *Config) Logger() LoggerConfig     { return c.logger }
func (c *Config) Document() DocumentConfig { return c.document }
func (c *Config) Layout() LayoutConfig     { return c.layout }
func (c *Config) Query() QueryConfig       { return c.query }

// --- Interface Method Implementations (Setters) ---

func (c *Config) SetDocumentURL(u string)   { c.document.URL = u }
func (c *Config) SetQueryConcurrency(n int) { c.query.Concurrency = n }
func (c *Config) SetQueryFormat(f string)   { c.query.Format = f }

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color names for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// DocumentConfig sets the environment documents are created in.
type DocumentConfig struct {
	// URL is the address documents pretend to be loaded from. It resolves
	// src and href attributes and scopes cookies.
	URL      string `mapstructure:"url" yaml:"url"`
	Referrer string `mapstructure:"referrer" yaml:"referrer"`
}

// LayoutConfig holds the initial rectangle given to every element.
type LayoutConfig struct {
	DefaultTop    float64 `mapstructure:"default_top" yaml:"default_top"`
	DefaultLeft   float64 `mapstructure:"default_left" yaml:"default_left"`
	DefaultRight  float64 `mapstructure:"default_right" yaml:"default_right"`
	DefaultBottom float64 `mapstructure:"default_bottom" yaml:"default_bottom"`
}

// DefaultRect builds the configured initial rectangle.
func (l LayoutConfig) DefaultRect() layout.Rect {
	return layout.NewRect(l.DefaultTop, l.DefaultLeft, l.DefaultRight, l.DefaultBottom)
}

// QueryConfig controls the query command.
type QueryConfig struct {
	Concurrency int    `mapstructure:"concurrency" yaml:"concurrency"`
	Format      string `mapstructure:"format" yaml:"format"`
}

// Supported query output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	cfg, err := decode(v)
	if err != nil {
		// Defaults are static, so this only fires on a programming error.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "domgraph")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "red")

	// -- Document --
	v.SetDefault("document.url", "about:blank")
	v.SetDefault("document.referrer", "")

	// -- Layout --
	def := layout.DefaultRect()
	v.SetDefault("layout.default_top", def.Top)
	v.SetDefault("layout.default_left", def.Left)
	v.SetDefault("layout.default_right", def.Right)
	v.SetDefault("layout.default_bottom", def.Bottom)

	// -- Query --
	v.SetDefault("query.concurrency", 4)
	v.SetDefault("query.format", FormatJSON)
}

// BindEnv wires DOMGRAPH_* environment variables into v.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// ExpandPath resolves a leading ~ in a config file path.
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("failed to expand path %q: %w", path, err)
	}
	return expanded, nil
}

func decode(v *viper.Viper) (*Config, error) {
	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &Config{
		logger:   fc.Logger,
		document: fc.Document,
		layout:   fc.Layout,
		query:    fc.Query,
	}, nil
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if _, err := location.Parse(c.document.URL); err != nil {
		return fmt.Errorf("document.url is invalid: %w", err)
	}
	if err := c.query.Validate(); err != nil {
		return fmt.Errorf("query configuration invalid: %w", err)
	}
	if c.layout.DefaultRight < c.layout.DefaultLeft {
		return fmt.Errorf("layout.default_right must not be less than layout.default_left")
	}
	if c.layout.DefaultBottom < c.layout.DefaultTop {
		return fmt.Errorf("layout.default_bottom must not be less than layout.default_top")
	}
	return nil
}

// Validate checks the QueryConfig settings.
func (q *QueryConfig) Validate() error {
	if q.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be a positive integer")
	}
	switch q.Format {
	case FormatJSON, FormatText:
		return nil
	}
	return fmt.Errorf("format must be %q or %q, got %q", FormatJSON, FormatText, q.Format)
}
