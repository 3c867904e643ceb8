/*
Package config manages TOML config for the shopsearch services.
*/
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/storekit/shopsearch/internal/utils"
	"github.com/storekit/shopsearch/pkg/search"
)

// Config holds the entire config structure
type Config struct {
	Search SearchConfig `toml:"search"`
	View   ViewConfig   `toml:"view"`
	Engine EngineConfig `toml:"engine"`
	Server ServerConfig `toml:"server"`
}

// SearchConfig has scorer and classifier tunables.
type SearchConfig struct {
	CategoryPoolMin      float64 `toml:"category_pool_min"`
	SubcategoryPoolMin   float64 `toml:"subcategory_pool_min"`
	ProductPoolMin       float64 `toml:"product_pool_min"`
	PoolLimit            int     `toml:"pool_limit"`
	CategoryThreshold    float64 `toml:"category_threshold"`
	SubcategoryThreshold float64 `toml:"subcategory_threshold"`
	ProductThreshold     float64 `toml:"product_threshold"`
	IncludesBoost        float64 `toml:"includes_boost"`
	BroadMin             float64 `toml:"broad_min"`
	BroadLimit           int     `toml:"broad_limit"`
	SuggestionLimit      int     `toml:"suggestion_limit"`
}

// ViewConfig holds result view and pagination options.
type ViewConfig struct {
	PageSize          int    `toml:"page_size"`
	ScrollThresholdPx int    `toml:"scroll_threshold_px"`
	PlaceholderImage  string `toml:"placeholder_image"`
}

// EngineConfig holds host-facing engine behavior.
type EngineConfig struct {
	DebounceMs int `toml:"debounce_ms"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit     int  `toml:"max_limit"`
	MinQueryLen  int  `toml:"min_query_len"`
	MaxQueryLen  int  `toml:"max_query_len"`
	EnableFilter bool `toml:"enable_filter"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
// 4. builtin defaults
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "shopsearch")
	if utils.WritableDir(primaryPath) {
		return primaryPath, nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "shopsearch")
	if utils.WritableDir(macOSPath) {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/shopsearch/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	var config *Config
	var err error

	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err = LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err = InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	engine := search.DefaultConfig()
	return &Config{
		Search: SearchConfig{
			CategoryPoolMin:      engine.CategoryPoolMin,
			SubcategoryPoolMin:   engine.SubcategoryPoolMin,
			ProductPoolMin:       engine.ProductPoolMin,
			PoolLimit:            engine.PoolLimit,
			CategoryThreshold:    engine.CategoryThreshold,
			SubcategoryThreshold: engine.SubcategoryThreshold,
			ProductThreshold:     engine.ProductThreshold,
			IncludesBoost:        engine.IncludesBoost,
			BroadMin:             engine.BroadMin,
			BroadLimit:           engine.BroadLimit,
			SuggestionLimit:      engine.SuggestionLimit,
		},
		View: ViewConfig{
			PageSize:          engine.PageSize,
			ScrollThresholdPx: engine.ScrollThresholdPx,
			PlaceholderImage:  engine.PlaceholderImage,
		},
		Engine: EngineConfig{
			DebounceMs: int(engine.DebounceWindow / time.Millisecond),
		},
		Server: ServerConfig{
			MaxLimit:     64,
			MinQueryLen:  1,
			MaxQueryLen:  120,
			EnableFilter: true,
		},
	}
}

// EngineConfig flattens the TOML sections into the search engine's Config.
func (c *Config) EngineConfig() search.Config {
	return search.Config{
		CategoryPoolMin:      c.Search.CategoryPoolMin,
		SubcategoryPoolMin:   c.Search.SubcategoryPoolMin,
		ProductPoolMin:       c.Search.ProductPoolMin,
		PoolLimit:            c.Search.PoolLimit,
		CategoryThreshold:    c.Search.CategoryThreshold,
		SubcategoryThreshold: c.Search.SubcategoryThreshold,
		ProductThreshold:     c.Search.ProductThreshold,
		IncludesBoost:        c.Search.IncludesBoost,
		BroadMin:             c.Search.BroadMin,
		BroadLimit:           c.Search.BroadLimit,
		SuggestionLimit:      c.Search.SuggestionLimit,
		PageSize:             c.View.PageSize,
		ScrollThresholdPx:    c.View.ScrollThresholdPx,
		PlaceholderImage:     c.View.PlaceholderImage,
		DebounceWindow:       time.Duration(c.Engine.DebounceMs) * time.Millisecond,
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse attempts to salvage the valid sections of a broken file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if searchSection, ok := utils.ExtractSection(tempConfig, "search"); ok {
		extractSearchConfig(searchSection, &config.Search)
	}
	if viewSection, ok := utils.ExtractSection(tempConfig, "view"); ok {
		extractViewConfig(viewSection, &config.View)
	}
	if engineSection, ok := utils.ExtractSection(tempConfig, "engine"); ok {
		if val, ok := utils.ExtractInt64(engineSection, "debounce_ms"); ok {
			config.Engine.DebounceMs = val
		}
	}
	if serverSection, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	return config, nil
}

// extractSearchConfig extracts scorer/classifier tunables from a map
func extractSearchConfig(data map[string]any, search *SearchConfig) {
	if val, ok := utils.ExtractFloat64(data, "category_pool_min"); ok {
		search.CategoryPoolMin = val
	}
	if val, ok := utils.ExtractFloat64(data, "subcategory_pool_min"); ok {
		search.SubcategoryPoolMin = val
	}
	if val, ok := utils.ExtractFloat64(data, "product_pool_min"); ok {
		search.ProductPoolMin = val
	}
	if val, ok := utils.ExtractInt64(data, "pool_limit"); ok {
		search.PoolLimit = val
	}
	if val, ok := utils.ExtractFloat64(data, "category_threshold"); ok {
		search.CategoryThreshold = val
	}
	if val, ok := utils.ExtractFloat64(data, "subcategory_threshold"); ok {
		search.SubcategoryThreshold = val
	}
	if val, ok := utils.ExtractFloat64(data, "product_threshold"); ok {
		search.ProductThreshold = val
	}
	if val, ok := utils.ExtractFloat64(data, "includes_boost"); ok {
		search.IncludesBoost = val
	}
	if val, ok := utils.ExtractFloat64(data, "broad_min"); ok {
		search.BroadMin = val
	}
	if val, ok := utils.ExtractInt64(data, "broad_limit"); ok {
		search.BroadLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "suggestion_limit"); ok {
		search.SuggestionLimit = val
	}
}

// extractViewConfig extracts view configuration from a map
func extractViewConfig(data map[string]any, view *ViewConfig) {
	if val, ok := utils.ExtractInt64(data, "page_size"); ok {
		view.PageSize = val
	}
	if val, ok := utils.ExtractInt64(data, "scroll_threshold_px"); ok {
		view.ScrollThresholdPx = val
	}
	if val, ok := utils.ExtractString(data, "placeholder_image"); ok {
		view.PlaceholderImage = val
	}
}

// extractServerConfig extracts server configuration from a map
func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "min_query_len"); ok {
		server.MinQueryLen = val
	}
	if val, ok := utils.ExtractInt64(data, "max_query_len"); ok {
		server.MaxQueryLen = val
	}
	if val, ok := utils.ExtractBool(data, "enable_filter"); ok {
		server.EnableFilter = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(defaultPath)
	if err := utils.EnsureDir(configDir); err != nil {
		return err
	}
	config := DefaultConfig()
	return utils.SaveTOMLFile(config, defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
