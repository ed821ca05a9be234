package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	. "github.com/cricklet/magicchess/internal/helpers"
	"github.com/cricklet/magicchess/internal/search"
)

const EnvPrefix = "MAGICCHESS"

type Config struct {
	Depth            int           `mapstructure:"depth"`
	MoveTime         time.Duration `mapstructure:"movetime"`
	MaxDepth         int           `mapstructure:"max_depth"`
	AspirationMargin int           `mapstructure:"aspiration_margin"`
	LogLevel         string        `mapstructure:"log_level"`
	ServerAddr       string        `mapstructure:"server_addr"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("depth", search.DefaultDepth)
	v.SetDefault("movetime", time.Duration(0))
	v.SetDefault("max_depth", search.MaxDepth)
	v.SetDefault("aspiration_margin", search.DefaultAspirationMargin)
	v.SetDefault("log_level", "info")
	v.SetDefault("server_addr", ":8080")
}

// Load reads defaults, then the optional config file at path, then
// MAGICCHESS_* environment variables.
func Load(path string) (Config, Error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, Join(Errorf("reading config %v", path), Wrap(err))
		}
	}

	config := Config{}
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, Wrap(err)
	}

	return config, config.Validate()
}

func (c Config) Validate() Error {
	errs := []Error{}
	if c.Depth < 1 || c.Depth >= search.MaxPly {
		errs = append(errs, Errorf("depth %v must be between 1 and %v", c.Depth, search.MaxPly-1))
	}
	if c.MaxDepth < 1 || c.MaxDepth >= search.MaxPly {
		errs = append(errs, Errorf("max_depth %v must be between 1 and %v", c.MaxDepth, search.MaxPly-1))
	}
	if c.MoveTime < 0 {
		errs = append(errs, Errorf("movetime %v is negative", c.MoveTime))
	}
	if c.AspirationMargin < 1 {
		errs = append(errs, Errorf("aspiration_margin %v must be positive", c.AspirationMargin))
	}
	return Join(errs...)
}

func (c Config) SearchOptions() []search.SearchOption {
	return []search.SearchOption{
		search.WithDefaultDepth{Depth: c.Depth},
		search.WithMaxDepth{Depth: c.MaxDepth},
		search.WithAspirationMargin{Margin: c.AspirationMargin},
	}
}

// DefaultSearchParams uses movetime when one is configured, depth otherwise.
func (c Config) DefaultSearchParams() SearchParams {
	if c.MoveTime > 0 {
		return SearchParams{Duration: Some(c.MoveTime)}
	}
	return SearchParams{Depth: Some(c.Depth)}
}
