package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/stk/config.yml.
type GlobalConfig struct {
	DepotPath string `yaml:"depot_path,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "stk"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// DepotPathEnv overrides the configured depot path when set.
const DepotPathEnv = "STK_DEPOT"

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/stk/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	// Expand tilde in depot_path
	if cfg.DepotPath != "" {
		cfg.DepotPath = ExpandPath(cfg.DepotPath)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// GetDepotPath returns the configured depot path.
// The STK_DEPOT environment variable wins over the global config file.
func GetDepotPath() string {
	if env := os.Getenv(DepotPathEnv); env != "" {
		return ExpandPath(env)
	}
	cfg, _ := LoadGlobalConfig()
	return cfg.DepotPath
}

// HelpfulConfigMessage returns a helpful message when no depot can be found.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`No stockpile depot found.

Tip: run 'stk init' in a directory to create one, or create %s to set a default depot:
  mkdir -p %s
  echo 'depot_path: /path/to/your/depot' > %s

The %s environment variable also sets the depot path.`,
		configPath,
		filepath.Dir(configPath),
		configPath,
		DepotPathEnv)
}
