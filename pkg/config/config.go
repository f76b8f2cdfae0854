/*
Package config manages TOML config for zipfview.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/zipfview/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	UI       UIConfig       `toml:"ui"`
	Analysis AnalysisConfig `toml:"analysis"`
	Fit      FitConfig      `toml:"fit"`
	Tags     TagsConfig     `toml:"tags"`
}

// UIConfig has interactive view options.
type UIConfig struct {
	// DefaultTop caps the non-interactive table rows.
	DefaultTop int `toml:"default_top"`
	// PageSize is the list height used until the terminal reports its size.
	PageSize int `toml:"page_size"`
}

// AnalysisConfig holds tokenization options.
type AnalysisConfig struct {
	MinWordLength int  `toml:"min_word_length"`
	Stemming      bool `toml:"stemming"`
}

// FitConfig bounds the Zipf goodness-of-fit buckets.
type FitConfig struct {
	PerfectThreshold float64 `toml:"perfect_threshold"`
	GoodThreshold    float64 `toml:"good_threshold"`
}

// TagsConfig points at the tag definitions file.
type TagsConfig struct {
	Path string `toml:"path"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. $XDG_CONFIG_HOME or ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	return utils.AppConfigDir()
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
// 2. Default path: [UserConfigDir]/zipfview/config.toml
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
	return &Config{
		UI: UIConfig{
			DefaultTop: 20,
			PageSize:   20,
		},
		Analysis: AnalysisConfig{
			MinWordLength: 1,
			Stemming:      false,
		},
		Fit: FitConfig{
			PerfectThreshold: 0.10,
			GoodThreshold:    0.30,
		},
		Tags: TagsConfig{
			Path: "",
		},
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
	config.normalize()
	return config, nil
}

// tryPartialParse attempts to parse a TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if uiSection, ok := utils.ExtractSection(tempConfig, "ui"); ok {
		extractUIConfig(uiSection, &config.UI)
	}
	if analysisSection, ok := utils.ExtractSection(tempConfig, "analysis"); ok {
		extractAnalysisConfig(analysisSection, &config.Analysis)
	}
	if fitSection, ok := utils.ExtractSection(tempConfig, "fit"); ok {
		extractFitConfig(fitSection, &config.Fit)
	}
	if tagsSection, ok := utils.ExtractSection(tempConfig, "tags"); ok {
		extractTagsConfig(tagsSection, &config.Tags)
	}
	config.normalize()
	return config, nil
}

// extractUIConfig extracts view configuration from a map
func extractUIConfig(data map[string]any, ui *UIConfig) {
	if val, ok := utils.ExtractInt64(data, "default_top"); ok {
		ui.DefaultTop = val
	}
	if val, ok := utils.ExtractInt64(data, "page_size"); ok {
		ui.PageSize = val
	}
}

// extractAnalysisConfig extracts tokenization configuration from a map
func extractAnalysisConfig(data map[string]any, analysis *AnalysisConfig) {
	if val, ok := utils.ExtractInt64(data, "min_word_length"); ok {
		analysis.MinWordLength = val
	}
	if val, ok := utils.ExtractBool(data, "stemming"); ok {
		analysis.Stemming = val
	}
}

// extractFitConfig extracts fit thresholds from a map
func extractFitConfig(data map[string]any, fit *FitConfig) {
	if val, ok := utils.ExtractFloat64(data, "perfect_threshold"); ok {
		fit.PerfectThreshold = val
	}
	if val, ok := utils.ExtractFloat64(data, "good_threshold"); ok {
		fit.GoodThreshold = val
	}
}

// extractTagsConfig extracts the tag file location from a map
func extractTagsConfig(data map[string]any, tags *TagsConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		tags.Path = val
	}
}

// normalize pulls out-of-range values back to their defaults.
func (c *Config) normalize() {
	defaults := DefaultConfig()
	if c.UI.DefaultTop < 1 {
		log.Warnf("default_top %d is invalid, using %d", c.UI.DefaultTop, defaults.UI.DefaultTop)
		c.UI.DefaultTop = defaults.UI.DefaultTop
	}
	if c.UI.PageSize < 1 {
		log.Warnf("page_size %d is invalid, using %d", c.UI.PageSize, defaults.UI.PageSize)
		c.UI.PageSize = defaults.UI.PageSize
	}
	if c.Analysis.MinWordLength < 1 {
		log.Warnf("min_word_length %d is invalid, using %d", c.Analysis.MinWordLength, defaults.Analysis.MinWordLength)
		c.Analysis.MinWordLength = defaults.Analysis.MinWordLength
	}
	if c.Fit.PerfectThreshold <= 0 {
		log.Warnf("perfect_threshold %v is invalid, using %v", c.Fit.PerfectThreshold, defaults.Fit.PerfectThreshold)
		c.Fit.PerfectThreshold = defaults.Fit.PerfectThreshold
	}
	if c.Fit.GoodThreshold < c.Fit.PerfectThreshold {
		log.Warnf("good_threshold %v is below perfect_threshold %v, using %v", c.Fit.GoodThreshold, c.Fit.PerfectThreshold, defaults.Fit.GoodThreshold)
		c.Fit.GoodThreshold = defaults.Fit.GoodThreshold
		if c.Fit.GoodThreshold < c.Fit.PerfectThreshold {
			c.Fit.GoodThreshold = c.Fit.PerfectThreshold
		}
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
