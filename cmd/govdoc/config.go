package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/govdoc"
	"github.com/fwojciec/govdoc/gemini"
	lochttp "github.com/fwojciec/govdoc/http"
	"github.com/fwojciec/govdoc/limit"
	"github.com/fwojciec/govdoc/openai"
	"github.com/fwojciec/govdoc/rod"
	yaml "gopkg.in/yaml.v3"
)

// Config is the resolved program configuration.
// Precedence: flags > environment > config file > defaults.
type Config struct {
	CacheDir    string        `yaml:"cacheDir"`
	CacheMaxAge time.Duration `yaml:"cacheMaxAge"`
	DBPath      string        `yaml:"db"`

	Domains   []string `yaml:"domains"`
	MaxLength int      `yaml:"maxLength"`
	Mode      string   `yaml:"mode"`

	RequestsPerSecond float64       `yaml:"requestsPerSecond"`
	DownloadTimeout   time.Duration `yaml:"downloadTimeout"`
	RenderTimeout     time.Duration `yaml:"renderTimeout"`
	SettleDelay       time.Duration `yaml:"settleDelay"`
	RecyclePages      int64         `yaml:"recyclePages"`

	// Summarizer selects the backend: "gemini", "azure", or empty to pick
	// whichever has credentials.
	Summarizer string `yaml:"summarizer"`

	Gemini struct {
		APIKey      string `yaml:"key"`
		Model       string `yaml:"model"`
		TokenBudget int    `yaml:"tokenBudget"`
	} `yaml:"gemini"`

	Azure struct {
		APIKey     string `yaml:"key"`
		Endpoint   string `yaml:"endpoint"`
		APIVersion string `yaml:"apiVersion"`
		Deployment string `yaml:"deployment"`
	} `yaml:"azure"`

	Searx struct {
		URL   string `yaml:"url"`
		Limit int    `yaml:"limit"`
	} `yaml:"searx"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	dir := defaultDir()
	cfg := Config{
		CacheDir:          filepath.Join(dir, "cache"),
		DBPath:            filepath.Join(dir, "govdoc.db"),
		Domains:           govdoc.DefaultDomains,
		MaxLength:         govdoc.MaxTextLength,
		Mode:              ModeText,
		RequestsPerSecond: limit.DefaultRPS,
		DownloadTimeout:   lochttp.DefaultTimeout,
		RenderTimeout:     rod.DefaultNavigationTimeout,
		SettleDelay:       rod.DefaultSettleDelay,
		RecyclePages:      rod.DefaultMaxPages,
	}
	cfg.Gemini.Model = gemini.DefaultModel
	cfg.Gemini.TokenBudget = gemini.DefaultTokenBudget
	cfg.Azure.APIVersion = openai.DefaultAPIVersion
	cfg.Azure.Deployment = openai.DefaultDeployment
	cfg.Searx.Limit = 3
	return cfg
}

// DefaultConfigPath returns the config file read when --config is not set.
func DefaultConfigPath() string {
	return filepath.Join(defaultDir(), "config.yaml")
}

func defaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".govdoc"
	}
	return filepath.Join(home, ".govdoc")
}

// LoadConfig builds the configuration from defaults, the YAML file at path
// and the environment. A missing file is not an error unless required is
// set.
func LoadConfig(path string, required bool, getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && !required:
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, getenv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&cfg.CacheDir, "GOVDOC_CACHE_DIR")
	set(&cfg.DBPath, "GOVDOC_DB")
	set(&cfg.Mode, "GOVDOC_MODE")
	set(&cfg.Summarizer, "GOVDOC_SUMMARIZER")
	set(&cfg.Gemini.APIKey, "GEMINI_API_KEY")
	set(&cfg.Azure.APIKey, "AZURE_OPENAI_API_KEY")
	set(&cfg.Azure.Endpoint, "AZURE_OPENAI_ENDPOINT")
	set(&cfg.Azure.APIVersion, "AZURE_OPENAI_API_VERSION")
	set(&cfg.Azure.Deployment, "AZURE_OPENAI_DEPLOYMENT_NAME")
	set(&cfg.Searx.URL, "SEARXNG_URL")

	if v := getenv("GOVDOC_DOMAINS"); v != "" {
		cfg.Domains = splitList(v)
	}
	if v := getenv("GOVDOC_CACHE_MAX_AGE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("GOVDOC_CACHE_MAX_AGE: %w", err)
		}
		cfg.CacheMaxAge = d
	}
	if v := getenv("GOVDOC_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("GOVDOC_RPS: %w", err)
		}
		cfg.RequestsPerSecond = rps
	}
	return nil
}

// Validate returns an error if the configuration cannot be used.
func (c Config) Validate() error {
	if c.CacheDir == "" {
		return govdoc.Errorf(govdoc.EINVALID, "cache directory required")
	}
	if len(c.Domains) == 0 {
		return govdoc.Errorf(govdoc.EINVALID, "at least one authorized domain required")
	}
	if c.MaxLength < 0 {
		return govdoc.Errorf(govdoc.EINVALID, "maxLength must not be negative")
	}
	switch c.Mode {
	case ModeText, ModeMain, ModeArticle, ModeMarkdown:
	default:
		return govdoc.Errorf(govdoc.EINVALID, "unknown extraction mode %q", c.Mode)
	}
	switch c.Summarizer {
	case "", SummarizerGemini, SummarizerAzure:
	default:
		return govdoc.Errorf(govdoc.EINVALID, "unknown summarizer %q", c.Summarizer)
	}
	return nil
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
}
