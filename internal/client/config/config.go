package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/ticketledger/internal/common"
	"github.com/dmitrijs2005/ticketledger/internal/flagx"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the CLI reads.
const EnvPrefix = "TICKETLEDGER_CLI"

type Config struct {
	ServerEndpointAddr string        `mapstructure:"server_endpoint_addr"`
	IdentityDir        string        `mapstructure:"identity_dir"`
	TokenAudience      string        `mapstructure:"token_audience"`
	TokenTTL           time.Duration `mapstructure:"token_ttl"`
	CallTimeout        time.Duration `mapstructure:"call_timeout"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.IdentityDir = defaultIdentityDir()
	c.TokenAudience = common.TokenAudience
	c.TokenTTL = time.Minute
	c.CallTimeout = 10 * time.Second
}

func defaultIdentityDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ticketledger"
	}
	return filepath.Join(home, ".ticketledger")
}

func (c *Config) Validate() error {
	var errs []error
	if c.ServerEndpointAddr == "" {
		errs = append(errs, errors.New("server endpoint address is empty"))
	}
	if c.IdentityDir == "" {
		errs = append(errs, errors.New("identity directory is empty"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("token ttl must be positive, got %s", c.TokenTTL))
	}
	if c.CallTimeout <= 0 {
		errs = append(errs, fmt.Errorf("call timeout must be positive, got %s", c.CallTimeout))
	}
	return errors.Join(errs...)
}

// LoadConfig builds a Config from os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load applies defaults, the config file, the environment and then flags.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFileAndEnv(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	cfg.IdentityDir = expandHome(cfg.IdentityDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseFileAndEnv(cfg *Config, args []string) error {
	v := viper.New()
	v.SetDefault("server_endpoint_addr", cfg.ServerEndpointAddr)
	v.SetDefault("identity_dir", cfg.IdentityDir)
	v.SetDefault("token_audience", cfg.TokenAudience)
	v.SetDefault("token_ttl", cfg.TokenTTL)
	v.SetDefault("call_timeout", cfg.CallTimeout)

	if path := flagx.ConfigFile(args); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
