// Package config loads mastopress settings from a YAML file and the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iudanet/mastopress/internal/validation"
)

// Backends of tracked state storage
const (
	BackendJSON   = "json"
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
)

// Config - корневая конфигурация
type Config struct {
	Mastodon  MastodonConfig  `yaml:"mastodon"`
	WordPress WordPressConfig `yaml:"wordpress"`
	State     StateConfig     `yaml:"state"`
	Log       LogConfig       `yaml:"log"`
	Sync      SyncConfig      `yaml:"sync"`
	HTTP      HTTPConfig      `yaml:"http"`
}

// MastodonConfig - источник постов
type MastodonConfig struct {
	BaseURL     string `yaml:"base_url"`     // адрес инстанса, например https://mastodon.social
	AccessToken string `yaml:"access_token"` // bearer token, может быть пустым
	Hashtag     string `yaml:"hashtag"`      // хэштег без #
	Limit       int    `yaml:"limit"`        // размер выборки ленты (максимум 40)
}

// WordPressConfig - сайт, в который публикуются страницы
type WordPressConfig struct {
	BaseURL     string `yaml:"base_url"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`     // application password
	UpdateMode  string `yaml:"update_mode"`  // append | replace
	TitlePrefix string `yaml:"title_prefix"` // к префиксу дописывается id поста
}

// StateConfig - хранилище отслеживаемых постов
type StateConfig struct {
	Backend        string `yaml:"backend"` // json | bolt | sqlite
	Path           string `yaml:"path"`
	ResetOnCorrupt bool   `yaml:"reset_on_corrupt"` // начать с пустого состояния, если файл поврежден
}

// SyncConfig - параметры проходов синхронизации
type SyncConfig struct {
	Interval             time.Duration `yaml:"interval"`
	CheckpointRetryDelay time.Duration `yaml:"checkpoint_retry_delay"`
	CheckpointRetries    uint64        `yaml:"checkpoint_retries"`
}

// HTTPConfig - параметры HTTP клиентов
type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// LogConfig - параметры логирования
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Mastodon: MastodonConfig{
			Limit: 40,
		},
		WordPress: WordPressConfig{
			UpdateMode:  "append",
			TitlePrefix: "Mastodon Post ",
		},
		State: StateConfig{
			Backend: BackendJSON,
		},
		Sync: SyncConfig{
			Interval:             5 * time.Minute,
			CheckpointRetries:    3,
			CheckpointRetryDelay: time.Second,
		},
		HTTP: HTTPConfig{
			Timeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from a YAML file, then applies environment overrides.
// An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := decode(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
			// Нет файла - используем значения по умолчанию
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.applyDerivedDefaults()

	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	// Опечатки в ключах должны быть ошибкой, а не молча игнорироваться
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// applyEnvOverrides переопределяет значения переменными окружения MASTOPRESS_*
func (c *Config) applyEnvOverrides(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"MASTOPRESS_MASTODON_URL":       &c.Mastodon.BaseURL,
		"MASTOPRESS_MASTODON_TOKEN":     &c.Mastodon.AccessToken,
		"MASTOPRESS_HASHTAG":            &c.Mastodon.Hashtag,
		"MASTOPRESS_WORDPRESS_URL":      &c.WordPress.BaseURL,
		"MASTOPRESS_WORDPRESS_USER":     &c.WordPress.Username,
		"MASTOPRESS_WORDPRESS_PASSWORD": &c.WordPress.Password,
		"MASTOPRESS_STATE_BACKEND":      &c.State.Backend,
		"MASTOPRESS_STATE_PATH":         &c.State.Path,
		"MASTOPRESS_LOG_LEVEL":          &c.Log.Level,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("MASTOPRESS_INTERVAL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid MASTOPRESS_INTERVAL: %w", err)
		}
		c.Sync.Interval = d
	}
	if v, ok := lookup("MASTOPRESS_MASTODON_LIMIT"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MASTOPRESS_MASTODON_LIMIT: %w", err)
		}
		c.Mastodon.Limit = n
	}

	return nil
}

// applyDerivedDefaults заполняет путь хранилища по выбранному backend
func (c *Config) applyDerivedDefaults() {
	if c.State.Path != "" {
		return
	}
	switch c.State.Backend {
	case BackendBolt:
		c.State.Path = "tracked_posts.db"
	case BackendSQLite:
		c.State.Path = "tracked_posts.sqlite"
	default:
		c.State.Path = "tracked_posts.json"
	}
}

// Validate checks every field and returns all problems joined.
// The WordPress password is not checked here because it may be prompted for.
func (c *Config) Validate() error {
	var errs []error

	if err := validateURL("mastodon.base_url", c.Mastodon.BaseURL); err != nil {
		errs = append(errs, err)
	}
	if err := validation.ValidateHashtag(c.Mastodon.Hashtag); err != nil {
		errs = append(errs, fmt.Errorf("mastodon.hashtag: %w", err))
	}
	if c.Mastodon.Limit < 1 || c.Mastodon.Limit > 40 {
		errs = append(errs, fmt.Errorf("mastodon.limit must be between 1 and 40, got %d", c.Mastodon.Limit))
	}

	if err := validateURL("wordpress.base_url", c.WordPress.BaseURL); err != nil {
		errs = append(errs, err)
	}
	if c.WordPress.Username == "" {
		errs = append(errs, errors.New("wordpress.username is required"))
	}
	switch c.WordPress.UpdateMode {
	case "append", "replace":
	default:
		errs = append(errs, fmt.Errorf("wordpress.update_mode must be append or replace, got %q", c.WordPress.UpdateMode))
	}

	switch c.State.Backend {
	case BackendJSON, BackendBolt, BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("state.backend must be one of json, bolt, sqlite, got %q", c.State.Backend))
	}
	if c.State.Path == "" {
		errs = append(errs, errors.New("state.path is required"))
	}

	if c.Sync.Interval <= 0 {
		errs = append(errs, fmt.Errorf("sync.interval must be positive, got %s", c.Sync.Interval))
	}
	if c.HTTP.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("http.timeout must be positive, got %s", c.HTTP.Timeout))
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

func validateURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is invalid: %w", field, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL, got %q", field, raw)
	}
	return nil
}
