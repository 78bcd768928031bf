package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type SystemConfig struct {
	APIBaseURL     string `toml:"api_base_url"`
	DataDirectory  string `toml:"data_directory"`
	RequestTimeout int    `toml:"request_timeout_seconds"`
}

type Config struct {
	APIBaseURL     string
	DataDirectory  string
	RequestTimeout time.Duration
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) BaseURL() string {
	return c.APIBaseURL
}

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("THINKBOT_API_URL"); url != "" {
		c.APIBaseURL = url
	}
	if dataDir := os.Getenv("THINKBOT_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
	if timeout := os.Getenv("THINKBOT_TIMEOUT"); timeout != "" {
		if secs, err := strconv.Atoi(timeout); err == nil && secs > 0 {
			c.RequestTimeout = time.Duration(secs) * time.Second
		}
	}
}

func CheckDebug() bool {
	debug := os.Getenv("THINKBOT_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// 0600 - the log may contain conversation text
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (THINKBOT_DEBUG=%s) ===", os.Getenv("THINKBOT_DEBUG"))
	DebugLog.Printf("Log path: %s", logPath)
}

func Load() (*Config, error) {
	defaults := DefaultSystemConfig()
	cfg := &Config{
		APIBaseURL:     defaults.APIBaseURL,
		DataDirectory:  defaults.DataDirectory,
		RequestTimeout: time.Duration(defaults.RequestTimeout) * time.Second,
	}

	systemCfg, err := LoadSystemConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load system config: %w", err)
	}
	if systemCfg.APIBaseURL != "" {
		cfg.APIBaseURL = systemCfg.APIBaseURL
	}
	if systemCfg.DataDirectory != "" {
		cfg.DataDirectory = systemCfg.DataDirectory
	}
	if systemCfg.RequestTimeout > 0 {
		cfg.RequestTimeout = time.Duration(systemCfg.RequestTimeout) * time.Second
	}

	cfg.applyEnvOverrides()

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to set data directory permissions: %w", err)
	}

	return cfg, nil
}
