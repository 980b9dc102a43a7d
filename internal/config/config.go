package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "QUIZCARD"

// Config holds application configuration loaded from files, environment
// variables and command-line flags.
type Config struct {
	Env     string `mapstructure:"env"`     // local, production
	Catalog string `mapstructure:"catalog"` // question file path or URL, empty for the bundled sample
	Outline string `mapstructure:"outline"` // outline file path or URL, empty for the bundled sample
	DB      DB     `mapstructure:"db"`
	Log     Log    `mapstructure:"log"`
	Serve   Serve  `mapstructure:"serve"`
	LLM     LLM    `mapstructure:"llm"`
}

// DB selects the progress store.
type DB struct {
	Driver string `mapstructure:"driver"` // sqlite, postgres or memory
	DSN    string `mapstructure:"dsn"`    // empty means the default SQLite path
}

// Log configures the file logger.
type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // empty means the default state path
}

// Serve configures the HTTP API.
type Serve struct {
	Addr    string   `mapstructure:"addr"`
	Origins []string `mapstructure:"origins"` // allowed CORS origins
}

// LLM configures the optional explanation provider.
type LLM struct {
	Provider string        `mapstructure:"provider"` // empty disables explanations
	Model    string        `mapstructure:"model"`
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// IsProduction reports whether the production environment is selected.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Options controls where Load looks for configuration.
type Options struct {
	// ConfigFile, when set, is read instead of searching the default paths.
	ConfigFile string
	// EnvFile is a dotenv file loaded into the process environment.
	// A missing file is ignored. Defaults to ".env".
	EnvFile string
	// Flags, when set, override file and environment values for the flags
	// listed in FlagKeys that the set defines.
	Flags *pflag.FlagSet
}

// FlagKeys maps command-line flag names to configuration keys.
var FlagKeys = map[string]string{
	"catalog":   "catalog",
	"outline":   "outline",
	"db":        "db.dsn",
	"db-driver": "db.driver",
	"log-level": "log.level",
	"log-file":  "log.file",
	"addr":      "serve.addr",
	"provider":  "llm.provider",
	"model":     "llm.model",
}

// Load reads configuration in increasing priority: defaults, config file,
// environment, flags.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, dir := range searchPaths() {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if opts.Flags != nil {
		for name, key := range FlagKeys {
			f := opts.Flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("catalog", "")
	v.SetDefault("outline", "")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("serve.addr", "127.0.0.1:8080")
	v.SetDefault("serve.origins", []string{"http://localhost:*", "http://127.0.0.1:*"})
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.timeout", "30s")
}

// searchPaths lists directories searched for config.yaml.
func searchPaths() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "quizcard"))
	} else if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "quizcard"))
	}
	return append(dirs, ".")
}
