package extensions

import (
	"errors"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"github.com/onwalk/panelkit/pkg/toggles"
)

// Config carries the environment-driven settings of the extension layer.
// Feature flags themselves are read per definition; this covers everything
// around them.
type Config struct {
	Environment   string `env:"APP_ENV" envDefault:"development"`
	TogglesFile   string `env:"FEATURE_TOGGLES_FILE"`
	SidebarLocale string `env:"SIDEBAR_LOCALE" envDefault:"zh-Hans"`
	LoginPath     string `env:"LOGIN_PATH" envDefault:"/login"`
}

// ErrParsingConfig is returned when the environment cannot be parsed into
// the extension config.
var ErrParsingConfig = errors.New("extensions: failed to parse configuration")

var dotenvOnce sync.Once

// LoadConfig reads the extension configuration from the environment,
// loading a .env file first if one exists.
func LoadConfig() (Config, error) {
	dotenvOnce.Do(func() {
		// The .env file is optional.
		_ = godotenv.Load()
	})

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// CollationTag parses the configured sidebar locale, falling back to
// simplified Chinese when the value is malformed.
func (c Config) CollationTag() language.Tag {
	tag, err := language.Parse(c.SidebarLocale)
	if err != nil {
		return language.SimplifiedChinese
	}
	return tag
}

// Toggles loads the feature-toggle tree named by the config, or the embedded
// default tree when no file is configured.
func (c Config) Toggles() (toggles.Tree, error) {
	if c.TogglesFile == "" {
		return toggles.Default(), nil
	}
	return toggles.LoadFile(c.TogglesFile)
}

// WithConfig applies the config's collation locale to registry construction.
func WithConfig(cfg Config) Option {
	return WithCollation(cfg.CollationTag())
}
