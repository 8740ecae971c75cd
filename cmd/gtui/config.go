package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	GTCommand       string        `yaml:"gt_command"`
	MetadataDir     string        `yaml:"metadata_dir"`
	AutoReload      *bool         `yaml:"auto_reload,omitempty"`
	CheckoutTimeout time.Duration `yaml:"checkout_timeout"`
	ConfirmCheckout *bool         `yaml:"confirm_checkout,omitempty"`
	SyntaxHighlight *bool         `yaml:"syntax_highlight,omitempty"`
}

const (
	defaultGTCommand       = "gt"
	defaultMetadataDir     = ".git"
	defaultCheckoutTimeout = 30 * time.Second
)

func DefaultConfig() Config {
	return Config{
		GTCommand:       defaultGTCommand,
		MetadataDir:     defaultMetadataDir,
		AutoReload:      boolPtr(true),
		CheckoutTimeout: defaultCheckoutTimeout,
		ConfirmCheckout: boolPtr(true),
		SyntaxHighlight: boolPtr(true),
	}
}

func boolPtr(v bool) *bool {
	return &v
}

func (c Config) autoReload() bool      { return c.AutoReload == nil || *c.AutoReload }
func (c Config) confirmCheckout() bool { return c.ConfirmCheckout == nil || *c.ConfirmCheckout }
func (c Config) syntaxHighlight() bool { return c.SyntaxHighlight == nil || *c.SyntaxHighlight }

// LoadConfig returns defaults when no config file exists.
func LoadConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, err
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.GTCommand = strings.TrimSpace(cfg.GTCommand)
	if cfg.GTCommand == "" {
		cfg.GTCommand = defaultGTCommand
	}
	cfg.MetadataDir = strings.TrimSpace(cfg.MetadataDir)
	if cfg.MetadataDir == "" {
		cfg.MetadataDir = defaultMetadataDir
	}
	if cfg.CheckoutTimeout <= 0 {
		cfg.CheckoutTimeout = defaultCheckoutTimeout
	}
	return cfg, nil
}

func ConfigExists() (bool, error) {
	path, err := configPath()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func SaveConfig(cfg Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func configPath() (string, error) {
	base, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "gtui", "config.yaml"), nil
}

func xdgDir(env string, fallback string) (string, error) {
	if dir := strings.TrimSpace(os.Getenv(env)); dir != "" {
		return dir, nil
	}
	home := os.Getenv("HOME")
	if strings.TrimSpace(home) == "" {
		return "", errors.New("HOME not set")
	}
	return filepath.Join(home, fallback), nil
}
