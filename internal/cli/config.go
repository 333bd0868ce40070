package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/todolist/internal/paths"
	"github.com/mesh-intelligence/todolist/pkg/types"
)

// Config keys.
const (
	keyBackend        = "backend"
	keyDataDir        = "data_dir"
	keyMySQLDSN       = "mysql.dsn"
	keyServerAddr     = "server.addr"
	keyServerMode     = "server.mode"
	keyLogLevel       = "log.level"
	keyLogDevelopment = "log.development"
	keyRedisURL       = "ratelimit.redis_url"
	keyRateLimit      = "ratelimit.limit"
	keyRateWindow     = "ratelimit.window"
)

const envPrefix = "TODOLIST"

// envFile is loaded from the working directory when present.
const envFile = ".env"

// configFile mirrors config.yaml. It is written on first run and read back
// for data_dir, which resolves separately from the viper keys.
type configFile struct {
	Backend string `yaml:"backend"`
	DataDir string `yaml:"data_dir,omitempty"`
	Server  struct {
		Addr string `yaml:"addr"`
		Mode string `yaml:"mode"`
	} `yaml:"server"`
	Log struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`
	RateLimit struct {
		RedisURL string `yaml:"redis_url"`
		Limit    int    `yaml:"limit"`
		Window   string `yaml:"window"`
	} `yaml:"ratelimit"`
}

func defaultConfigFile() configFile {
	var cfg configFile
	cfg.Backend = types.BackendSQLite
	cfg.Server.Addr = ":8080"
	cfg.Server.Mode = gin.ReleaseMode
	cfg.Log.Level = "info"
	cfg.RateLimit.Limit = 120
	cfg.RateLimit.Window = time.Minute.String()
	return cfg
}

// settings is the fully resolved configuration of one invocation.
type settings struct {
	ConfigDir string
	DataDir   string
	Backend   string
	MySQLDSN  string

	Addr string
	Mode string

	LogLevel       string
	LogDevelopment bool

	RedisURL   string
	RateLimit  int
	RateWindow time.Duration
}

// storeConfig returns the store half of the settings.
func (s *settings) storeConfig() types.Config {
	return types.Config{Backend: s.Backend, DataDir: s.DataDir, DSN: s.MySQLDSN}
}

// loadSettings resolves directories, writes a default config.yaml if there
// is none, and layers config.yaml, .env and TODOLIST_* variables.
func loadSettings(flags *rootFlags) (*settings, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	if err := ensureConfigFile(configDir); err != nil {
		return nil, err
	}

	v := newViper()
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	configured, err := configuredDataDir(configDir)
	if err != nil {
		return nil, err
	}
	dataDir, err := paths.ResolveDataDir(flags.dataDir, configured)
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	s := &settings{
		ConfigDir:      configDir,
		DataDir:        dataDir,
		Backend:        v.GetString(keyBackend),
		MySQLDSN:       v.GetString(keyMySQLDSN),
		Addr:           v.GetString(keyServerAddr),
		Mode:           v.GetString(keyServerMode),
		LogLevel:       v.GetString(keyLogLevel),
		LogDevelopment: v.GetBool(keyLogDevelopment),
		RedisURL:       v.GetString(keyRedisURL),
		RateLimit:      v.GetInt(keyRateLimit),
		RateWindow:     v.GetDuration(keyRateWindow),
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func newViper() *viper.Viper {
	defaults := defaultConfigFile()

	v := viper.New()
	v.SetConfigName(strings.TrimSuffix(paths.ConfigFileName, ".yaml"))
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyBackend, defaults.Backend)
	v.SetDefault(keyMySQLDSN, "")
	v.SetDefault(keyServerAddr, defaults.Server.Addr)
	v.SetDefault(keyServerMode, defaults.Server.Mode)
	v.SetDefault(keyLogLevel, defaults.Log.Level)
	v.SetDefault(keyLogDevelopment, defaults.Log.Development)
	v.SetDefault(keyRedisURL, "")
	v.SetDefault(keyRateLimit, defaults.RateLimit.Limit)
	v.SetDefault(keyRateWindow, defaults.RateLimit.Window)
	return v
}

func (s *settings) validate() error {
	switch s.Mode {
	case gin.ReleaseMode, gin.DebugMode, gin.TestMode:
	default:
		return fmt.Errorf("%s: unknown mode %q", keyServerMode, s.Mode)
	}
	if s.RedisURL != "" && s.RateWindow <= 0 {
		return fmt.Errorf("%s must be positive", keyRateWindow)
	}
	return s.storeConfig().Validate()
}

// ensureConfigFile creates configDir and a default config.yaml when the
// file does not exist yet. An existing file is left alone.
func ensureConfigFile(configDir string) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	path := paths.ConfigFile(configDir)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config file: %w", err)
	}

	cfg := defaultConfigFile()
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// configuredDataDir returns data_dir as written in config.yaml, without
// environment overrides.
func configuredDataDir(configDir string) (string, error) {
	data, err := os.ReadFile(paths.ConfigFile(configDir))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read config: %w", err)
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return "", fmt.Errorf("parse config: %w", err)
	}
	return cfg.DataDir, nil
}
