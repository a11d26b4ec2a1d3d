package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"

	// DefaultMaxBytes imita la cuota típica de localStorage (5 MiB).
	DefaultMaxBytes = 5 << 20
)

var ErrInvalidBackend = errors.New("invalid storage backend")

type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
}

type StorageConfig struct {
	Backend  string `mapstructure:"backend"`   // memory | file | sqlite
	Path     string `mapstructure:"path"`      // dir (file) o archivo .db (sqlite)
	Key      string `mapstructure:"key"`       // clave bien conocida
	MaxBytes int    `mapstructure:"max_bytes"` // 0 = sin límite
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	App    string `mapstructure:"app"`
}

// Loader arma la config en capas: defaults < archivo yaml < env < flags.
type Loader struct {
	// File es opcional; si está vacío se busca petmanager.yaml en el cwd.
	File string

	// Flags cambiados explícitamente pisan todo lo anterior.
	Flags *pflag.FlagSet

	// FlagKeys mapea clave de config -> nombre de flag.
	FlagKeys map[string]string
}

func (l Loader) Load() (Config, error) {
	v := viper.New()

	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.path", "./data")
	v.SetDefault("storage.key", "pet-manager-pets")
	v.SetDefault("storage.max_bytes", DefaultMaxBytes)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.app", "pet-manager")

	// PETMANAGER_STORAGE_BACKEND, PETMANAGER_STORAGE_PATH, ...
	v.SetEnvPrefix("PETMANAGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// mismas variables que el logger de siempre
	_ = v.BindEnv("log.level", "PETMANAGER_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("log.format", "PETMANAGER_LOG_FORMAT", "LOG_FORMAT")
	_ = v.BindEnv("log.app", "PETMANAGER_LOG_APP", "APP_NAME")

	if strings.TrimSpace(l.File) != "" {
		v.SetConfigFile(l.File)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", l.File, err)
		}
	} else {
		v.SetConfigName("petmanager")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if l.Flags != nil {
		for key, name := range l.FlagKeys {
			f := l.Flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBackend, c.Storage.Backend)
	}
	if c.Storage.Backend != BackendMemory && strings.TrimSpace(c.Storage.Path) == "" {
		return errors.New("storage path required")
	}
	if c.Storage.MaxBytes < 0 {
		return errors.New("storage max_bytes must be >= 0")
	}
	return nil
}
