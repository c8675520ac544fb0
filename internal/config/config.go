package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"jobscout/internal/domain"
	"jobscout/internal/errors"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

const defaultHTTPTimeout = 30 * time.Second

// Company is one employer to poll.
type Company struct {
	Slug   string `yaml:"slug,omitempty"`
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	URL    string `yaml:"url,omitempty"`
}

// RulesConfig is the keyword filter as written in YAML.
type RulesConfig struct {
	Include  []string `yaml:"include"`
	Exclude  []string `yaml:"exclude"`
	Location []string `yaml:"location"`
	Remote   []string `yaml:"remote"`
}

type HistoryConfig struct {
	Path     string `yaml:"path,omitempty"`
	RedisURL string `yaml:"redis_url,omitempty"`
}

type NotifyConfig struct {
	Recipients          string `yaml:"recipients,omitempty"` // comma-separated
	From                string `yaml:"from,omitempty"`
	SendEmpty           bool   `yaml:"send_empty"`
	TelegramChatID      int64  `yaml:"telegram_chat_id,omitempty"`
	SheetsSpreadsheetID string `yaml:"sheets_spreadsheet_id,omitempty"`
	SheetsRange         string `yaml:"sheets_range,omitempty"`
}

// Config contains runtime settings for one agent run. Secrets never
// live in the YAML file; they are read from the environment (a .env
// file is honored when present).
type Config struct {
	LogLevel    string        `yaml:"log_level"`
	HTTPTimeout string        `yaml:"http_timeout"`
	Companies   []Company     `yaml:"companies"`
	Filter      RulesConfig   `yaml:"filter"`
	History     HistoryConfig `yaml:"history"`
	Notify      NotifyConfig  `yaml:"notify"`

	DryRun                bool   `yaml:"-"`
	SendGridAPIKey        string `yaml:"-"`
	TelegramBotToken      string `yaml:"-"`
	SheetsCredentialsFile string `yaml:"-"`
}

// Rules converts the YAML filter block into the engine's rule set.
func (c *Config) Rules() domain.Rules {
	return domain.Rules{
		Include:  c.Filter.Include,
		Exclude:  c.Filter.Exclude,
		Location: c.Filter.Location,
		Remote:   c.Filter.Remote,
	}
}

// RecipientList splits the comma-separated recipients value, dropping
// blanks.
func (c *Config) RecipientList() []string {
	var out []string
	for _, addr := range strings.Split(c.Notify.Recipients, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

func (c *Config) HTTPTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.HTTPTimeout)
	if err != nil || d <= 0 {
		return defaultHTTPTimeout
	}
	return d
}

// HistoryPath is the seen-set file location, defaulting under the XDG
// state directory.
func (c *Config) HistoryPath() string {
	if c.History.Path != "" {
		return c.History.Path
	}
	return filepath.Join(xdg.StateHome, "jobscout", "seen_jobs.txt")
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "jobscout", "config.yaml")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config file at path (JOBSCOUT_CONFIG, then the XDG
// default, when empty), layered over the embedded defaults, then
// applies environment overrides. A missing file is materialized from
// the defaults so the first run leaves something editable behind.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := loadDefaults()
	if err != nil {
		return nil, errors.Config("loading defaults", err)
	}

	if path == "" {
		path = os.Getenv("JOBSCOUT_CONFIG")
	}
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Config(fmt.Sprintf("parsing config %s", path), err)
		}
	case os.IsNotExist(err):
		// Non-fatal: just run on the embedded defaults.
		_ = writeDefaults(path)
	default:
		return nil, errors.Config(fmt.Sprintf("reading config %s", path), err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, errors.Config("applying environment overrides", err)
	}

	if err := validate(cfg); err != nil {
		return nil, errors.Config("invalid configuration", err)
	}

	return cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DRY_RUN"); v != "" {
		cfg.DryRun = strings.EqualFold(v, "true")
	}

	cfg.SendGridAPIKey = os.Getenv("SENDGRID_API_KEY")
	if v := os.Getenv("FROM_EMAIL"); v != "" {
		cfg.Notify.From = v
	}
	if v := os.Getenv("TO_EMAIL"); v != "" {
		cfg.Notify.Recipients = v
	}

	cfg.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.Notify.TelegramChatID = id
	}

	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.History.RedisURL = v
	}

	cfg.SheetsCredentialsFile = os.Getenv("SHEETS_CREDENTIALS_FILE")

	return nil
}

func validate(cfg *Config) error {
	if len(cfg.Companies) == 0 {
		return fmt.Errorf("at least one company is required")
	}

	validSources := map[string]bool{"greenhouse": true, "ashby": true, "lever": true, "rss": true}
	for i, c := range cfg.Companies {
		if c.Name == "" {
			return fmt.Errorf("company %d: name is required", i)
		}
		if !validSources[c.Source] {
			return fmt.Errorf("company %q: unknown source %q (valid: greenhouse, ashby, lever, rss)", c.Name, c.Source)
		}
		if c.Source == "rss" {
			if c.URL == "" {
				return fmt.Errorf("company %q: url is required for rss sources", c.Name)
			}
			u, err := url.Parse(c.URL)
			if err != nil {
				return fmt.Errorf("company %q: invalid url: %w", c.Name, err)
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return fmt.Errorf("company %q: url scheme must be http or https, got %q", c.Name, u.Scheme)
			}
			continue
		}
		if c.Slug == "" {
			return fmt.Errorf("company %q: slug is required for %s sources", c.Name, c.Source)
		}
	}

	return nil
}
