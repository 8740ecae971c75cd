package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	return dir
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	isolateConfig(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.GTCommand != "gt" || cfg.MetadataDir != ".git" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if !cfg.autoReload() || !cfg.confirmCheckout() || !cfg.syntaxHighlight() {
		t.Fatalf("expected toggles on by default, got %+v", cfg)
	}
	if cfg.CheckoutTimeout != defaultCheckoutTimeout {
		t.Fatalf("expected default timeout, got %s", cfg.CheckoutTimeout)
	}
}

func TestParseConfig_Overrides(t *testing.T) {
	cfg, err := parseConfig([]byte(strings.Join([]string{
		"gt_command: /opt/bin/gt",
		"metadata_dir: .graphite",
		"auto_reload: false",
		"checkout_timeout: 5s",
		"syntax_highlight: false",
	}, "\n")))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.GTCommand != "/opt/bin/gt" {
		t.Fatalf("expected %q, got %q", "/opt/bin/gt", cfg.GTCommand)
	}
	if cfg.MetadataDir != ".graphite" {
		t.Fatalf("expected %q, got %q", ".graphite", cfg.MetadataDir)
	}
	if cfg.autoReload() {
		t.Fatalf("expected auto reload off")
	}
	if cfg.syntaxHighlight() {
		t.Fatalf("expected highlighting off")
	}
	if !cfg.confirmCheckout() {
		t.Fatalf("expected unset confirm_checkout to stay on")
	}
	if cfg.CheckoutTimeout != 5*time.Second {
		t.Fatalf("expected 5s, got %s", cfg.CheckoutTimeout)
	}
}

func TestParseConfig_BlankValuesFallBack(t *testing.T) {
	cfg, err := parseConfig([]byte("gt_command: '  '\nmetadata_dir: ''\ncheckout_timeout: -1s\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.GTCommand != defaultGTCommand || cfg.MetadataDir != defaultMetadataDir || cfg.CheckoutTimeout != defaultCheckoutTimeout {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	if _, err := parseConfig([]byte("gt_command: [unterminated")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := isolateConfig(t)

	exists, err := ConfigExists()
	if err != nil || exists {
		t.Fatalf("expected no config yet, got exists=%v err=%v", exists, err)
	}

	cfg := DefaultConfig()
	cfg.GTCommand = "graphite"
	cfg.ConfirmCheckout = boolPtr(false)
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "gtui", "config.yaml")); err != nil {
		t.Fatalf("expected config file: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.GTCommand != "graphite" || loaded.confirmCheckout() {
		t.Fatalf("unexpected round trip %+v", loaded)
	}
}

func TestXDGDir_FallsBackToHome(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("HOME", "/home/tester")

	got, err := xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
	if err != nil {
		t.Fatalf("xdg dir: %v", err)
	}
	if want := filepath.Join("/home/tester", ".local", "state"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSetupLogging_WritesToStateDir(t *testing.T) {
	dir := isolateConfig(t)
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	closer, err := setupLogging(true, true)
	if err != nil {
		t.Fatalf("setup logging: %v", err)
	}
	t.Cleanup(func() { _ = closer.Close() })

	if _, err := os.Stat(filepath.Join(dir, "state", "gtui", "gtui.log")); err != nil {
		t.Fatalf("expected log file: %v", err)
	}
}
