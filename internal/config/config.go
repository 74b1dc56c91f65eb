package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"

	"github.com/yukikurage/mfg-tool-dashboard/internal/constants"
)

type Config struct {
	AppEnv   string `mapstructure:"app_env"`
	BaseDir  string `mapstructure:"base_dir"`
	LogLevel string `mapstructure:"log_level"`
	GinMode  string `mapstructure:"gin_mode"`

	ListenAddr     string `mapstructure:"listen_addr"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes"`

	DBDriver   string `mapstructure:"db_driver"`
	DBPath     string `mapstructure:"db_path"`
	DBHost     string `mapstructure:"db_host"`
	DBPort     string `mapstructure:"db_port"`
	DBUser     string `mapstructure:"db_user"`
	DBPassword string `mapstructure:"db_password"`
	DBName     string `mapstructure:"db_name"`

	SessionSecret string `mapstructure:"session_secret"`
	SessionStore  string `mapstructure:"session_store"`
	RedisHost     string `mapstructure:"redis_host"`
	RedisPort     string `mapstructure:"redis_port"`

	BcryptCost      int    `mapstructure:"bcrypt_cost"`
	AdminEmployeeID string `mapstructure:"admin_employee_id"`
	AdminPassword   string `mapstructure:"admin_password"`

	DefaultCSV               string `mapstructure:"default_csv"`
	ClearOrphanedAssignments bool   `mapstructure:"clear_orphaned_assignments"`
}

var defaults = map[string]any{
	"app_env":   "development",
	"base_dir":  ".",
	"log_level": "info",
	"gin_mode":  "debug",

	"listen_addr":      "127.0.0.1:5000",
	"max_upload_bytes": constants.DefaultUploadLimit,

	"db_driver":   "sqlite",
	"db_path":     constants.DefaultDBName,
	"db_host":     "localhost",
	"db_port":     "",
	"db_user":     "mfguser",
	"db_password": "",
	"db_name":     "mfg_tools",

	"session_secret": "your-secret-key-change-in-production",
	"session_store":  "cookie",
	"redis_host":     "localhost",
	"redis_port":     "6379",

	"bcrypt_cost":       bcrypt.DefaultCost,
	"admin_employee_id": constants.DefaultAdminEmployeeID,
	"admin_password":    constants.DefaultAdminPassword,

	"default_csv":                constants.DefaultCSVName,
	"clear_orphaned_assignments": false,
}

// Load reads configuration from an optional .env file, an optional config file
// and the environment, in increasing order of precedence.
// An empty configFile searches for config.yml in the working directory.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to read .env file: %v", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yml")
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	var errs []string

	switch c.DBDriver {
	case "sqlite", "mysql", "postgres":
	default:
		errs = append(errs, fmt.Sprintf("unsupported db_driver %q", c.DBDriver))
	}

	switch c.SessionStore {
	case "cookie", "redis":
	default:
		errs = append(errs, fmt.Sprintf("unsupported session_store %q", c.SessionStore))
	}

	if c.SessionSecret == "" {
		errs = append(errs, "session_secret is required")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Sprintf("bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.ListenAddr == "" {
		errs = append(errs, "listen_addr is required")
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, "max_upload_bytes must be positive")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production" || c.GinMode == "release"
}

// DatabaseFile returns the sqlite store file resolved against BaseDir.
func (c *Config) DatabaseFile() string {
	return c.resolve(c.DBPath)
}

// DefaultCSVPath returns the default CSV resolved against BaseDir.
func (c *Config) DefaultCSVPath() string {
	return c.resolve(c.DefaultCSV)
}

// RedisAddr returns host:port of the session redis.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || path == ":memory:" {
		return path
	}
	return filepath.Join(c.BaseDir, path)
}
