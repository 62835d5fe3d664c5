package fetchx

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by LoadConfig,
// e.g. FETCHX_BASE_URL.
const EnvPrefix = "FETCHX"

// Config is the file/environment representation of a client configuration.
type Config struct {
	// BaseURL is prepended to every path template.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Headers are configuration-level headers. A null value removes the
	// header, including the built-in Content-Type.
	Headers map[string]any `yaml:"headers" mapstructure:"headers"`

	// ParseAs is the default parse mode: json, text, blob, arrayBuffer or stream.
	ParseAs string `yaml:"parse_as" mapstructure:"parse_as"`

	// Redirect is the default redirect mode: follow, manual or error.
	Redirect string `yaml:"redirect" mapstructure:"redirect"`

	// Timeout bounds the whole exchange inside the default transport's
	// http.Client. Zero means no limit.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// LoadConfig reads filename (without extension) from path as YAML. Any key
// can be overridden from the environment, e.g. FETCHX_BASE_URL.
func LoadConfig(path string, filename string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName(filename)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("base_url", "")
	v.SetDefault("parse_as", ParseJSON.String())
	v.SetDefault("redirect", string(RedirectFollow))
	v.SetDefault("timeout", time.Duration(0))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("fetchx: read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("fetchx: decode config: %w", err)
	}

	// Unmarshal drops null leaves, which carry the removal of a header.
	if raw, ok := v.Get("headers").(map[string]any); ok {
		if cfg.Headers == nil {
			cfg.Headers = make(map[string]any, len(raw))
		}
		for k, val := range raw {
			if val == nil {
				cfg.Headers[k] = nil
			}
		}
	}

	return &cfg, nil
}

// Options converts the configuration into client options.
func (c Config) Options() ([]ClientOption, error) {
	parseAs, err := ParseParseAs(c.ParseAs)
	if err != nil {
		return nil, err
	}
	redirect, err := ParseRedirectMode(c.Redirect)
	if err != nil {
		return nil, err
	}

	headers := make(Headers, len(c.Headers))
	for k, v := range c.Headers {
		headers[k] = v
	}

	opts := []ClientOption{
		WithBaseURL(c.BaseURL),
		WithDefaultHeaders(headers),
		WithDefaultParseAs(parseAs),
		WithRedirect(redirect),
	}
	if c.Timeout > 0 {
		opts = append(opts, WithHTTPClient(&http.Client{Timeout: c.Timeout}))
	}

	return opts, nil
}

// NewClientFromConfig builds a client from cfg. Extra options are applied
// after the configuration, so they win.
func NewClientFromConfig(cfg Config, opts ...ClientOption) (*Client, error) {
	base, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return NewClient(append(base, opts...)...), nil
}
