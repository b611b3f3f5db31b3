package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"strings"
	"time"

	"github.com/ZocoLini/mk-template/pkg/errors"
	"github.com/ZocoLini/mk-template/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of the environment variables read as configuration
const EnvPrefix = "MKT_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

// Commands configures hook execution
type Commands struct {
	Timeout time.Duration `koanf:"timeout"`
}

// Spawn configures template instantiation
type Spawn struct {
	Dest string `koanf:"dest"`
}

// UI configures terminal output
type UI struct {
	Color bool `koanf:"color"`
}

// Registry configures where templates are stored
type Registry struct {
	Home string `koanf:"home"`
}

// Config is the resolved mkt configuration
type Config struct {
	Commands Commands `koanf:"commands"`
	Spawn    Spawn    `koanf:"spawn"`
	UI       UI       `koanf:"ui"`
	Registry Registry `koanf:"registry"`
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Default returns the embedded defaults
func Default() *Config {
	cfg, err := load("", false)
	if err != nil {
		// the embedded file is part of the binary
		panic(err)
	}
	return cfg
}

// Load resolves the configuration from, in increasing priority, the embedded
// defaults, the TOML file at path (skipped when it does not exist) and the
// MKT_* environment.
func Load(path string) (*Config, error) {
	return load(path, true)
}

func load(path string, withEnv bool) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User config file
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
					WithDetail("path", path)
			}
			logger.Debug().Str("path", path).Msg("Loaded user config")
		}
	}

	// 3. Environment
	if withEnv {
		err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
			return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
		}), nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}

	if cfg.Commands.Timeout < 0 {
		return nil, errors.Newf(errors.ErrConfigParse, "commands.timeout must not be negative, got %s", cfg.Commands.Timeout)
	}
	if cfg.Spawn.Dest == "" {
		cfg.Spawn.Dest = "."
	}

	return &cfg, nil
}

// DefaultsContent returns the embedded defaults file, used to seed a user config
func DefaultsContent() string {
	return string(defaultConfig)
}
