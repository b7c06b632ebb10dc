// Package config loads ctxbar settings from ~/.ctxbar/config.yaml with
// environment overrides. Priority (highest first):
// 1. CTXBAR_CACHE_DIR, CTXBAR_DEBUG
// 2. <config dir>/config.yaml
// 3. built-in defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	CacheDir string `yaml:"cache_dir"`
	Debug    bool   `yaml:"debug"`
	LogFile  string `yaml:"log_file"`
}

var ConfigDir string // Overrides CTXBAR_CONFIG_DIR and the home default

func GetConfigDir() string {
	if ConfigDir != "" {
		return ConfigDir
	}
	if dir := os.Getenv("CTXBAR_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".ctxbar")
}

func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

func Default() Config {
	return Config{
		CacheDir: os.TempDir(),
		LogFile:  filepath.Join(GetConfigDir(), "ctxbar.log"),
	}
}

// Load never creates files. On a malformed config it still returns usable
// defaults (with env overrides applied) alongside the error.
func Load() (Config, error) {
	cfg := Default()
	var loadErr error
	data, err := os.ReadFile(GetConfigPath())
	switch {
	case err == nil:
		var file Config
		if err := yaml.Unmarshal(data, &file); err != nil {
			loadErr = fmt.Errorf("parse %s: %w", GetConfigPath(), err)
		} else {
			merge(&cfg, file)
		}
	case !os.IsNotExist(err):
		loadErr = fmt.Errorf("read %s: %w", GetConfigPath(), err)
	}
	applyEnv(&cfg)
	return cfg, loadErr
}

func merge(cfg *Config, file Config) {
	if file.CacheDir != "" {
		cfg.CacheDir = expandHome(file.CacheDir)
	}
	if file.LogFile != "" {
		cfg.LogFile = expandHome(file.LogFile)
	}
	cfg.Debug = file.Debug
}

func applyEnv(cfg *Config) {
	if dir := os.Getenv("CTXBAR_CACHE_DIR"); dir != "" {
		cfg.CacheDir = expandHome(dir)
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("CTXBAR_DEBUG"))) {
	case "1", "true", "yes", "on":
		cfg.Debug = true
	case "0", "false", "no", "off":
		cfg.Debug = false
	}
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
