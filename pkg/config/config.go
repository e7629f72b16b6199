/*
Package config manages the TOML config for notekeys.
*/
package config

import (
	"path/filepath"
	"time"

	"github.com/bastiangx/notekeys/internal/utils"
	"github.com/bastiangx/notekeys/pkg/dictionary"
	"github.com/bastiangx/notekeys/pkg/store"
	"github.com/bastiangx/notekeys/pkg/suggest"
	"github.com/charmbracelet/log"
)

// FileName is the config file looked up in the config dir.
const FileName = "config.toml"

// Config holds the entire config structure
type Config struct {
	Suggest  SuggestConfig  `toml:"suggest"`
	Dict     DictConfig     `toml:"dict"`
	Keyboard KeyboardConfig `toml:"keyboard"`
	Store    StoreConfig    `toml:"store"`
	CLI      CliConfig      `toml:"cli"`
}

// SuggestConfig has the ranking weights and result bounds.
type SuggestConfig struct {
	PrefixWeight    int `toml:"prefix_weight"`
	MaxLengthWeight int `toml:"max_length_weight"`
	CommonWeight    int `toml:"common_weight"`
	ContextWeight   int `toml:"context_weight"`
	FrequentWeight  int `toml:"frequent_weight"`
	MaxCompletions  int `toml:"max_completions"`
	MaxNextWords    int `toml:"max_next_words"`
	ContextWords    int `toml:"context_words"`
	CacheSize       int `toml:"cache_size"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	Path       string `toml:"path"`
	MaxWords   int    `toml:"max_words"`
	ChunkSize  int    `toml:"chunk_size"`
	MinWordLen int    `toml:"min_word_len"`
	MaxWordLen int    `toml:"max_word_len"`
}

// KeyboardConfig holds keyboard session options.
type KeyboardConfig struct {
	RequeryDelayMs int `toml:"requery_delay_ms"`
}

// StoreConfig selects where notes are kept. An empty path keeps them in memory.
type StoreConfig struct {
	Path   string `toml:"path"`
	Layout string `toml:"layout"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	ShowScores bool `toml:"show_scores"`
	ShowTiming bool `toml:"show_timing"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	w := suggest.DefaultWeights()
	l := suggest.DefaultLimits()
	return &Config{
		Suggest: SuggestConfig{
			PrefixWeight:    w.Prefix,
			MaxLengthWeight: w.MaxLength,
			CommonWeight:    w.Common,
			ContextWeight:   w.Context,
			FrequentWeight:  w.Frequent,
			MaxCompletions:  l.Completions,
			MaxNextWords:    l.NextWords,
			ContextWords:    l.ContextWords,
			CacheSize:       suggest.DefaultOptions().CacheSize,
		},
		Dict: DictConfig{
			Path:       "",
			MaxWords:   50000,
			ChunkSize:  10000,
			MinWordLen: dictionary.DefaultMinWordLen,
			MaxWordLen: dictionary.DefaultMaxWordLen,
		},
		Keyboard: KeyboardConfig{
			RequeryDelayMs: 0,
		},
		Store: StoreConfig{
			Path:   "",
			Layout: store.LayoutProperties,
		},
		CLI: CliConfig{
			ShowScores: false,
			ShowTiming: true,
		},
	}
}

// EngineOptions converts the suggest section into engine options.
// Limits below one fall back to the defaults.
func (c *Config) EngineOptions() suggest.Options {
	s := c.Suggest
	def := suggest.DefaultLimits()
	return suggest.Options{
		Weights: suggest.Weights{
			Prefix:    s.PrefixWeight,
			MaxLength: s.MaxLengthWeight,
			Common:    s.CommonWeight,
			Context:   s.ContextWeight,
			Frequent:  s.FrequentWeight,
		},
		Limits: suggest.Limits{
			Completions:  positiveOr(s.MaxCompletions, def.Completions),
			NextWords:    positiveOr(s.MaxNextWords, def.NextWords),
			ContextWords: positiveOr(s.ContextWords, def.ContextWords),
		},
		CacheSize: max(s.CacheSize, 0),
	}
}

// RequeryDelay returns the keyboard re-query delay.
func (c *Config) RequeryDelay() time.Duration {
	return time.Duration(max(c.Keyboard.RequeryDelayMs, 0)) * time.Millisecond
}

func positiveOr(v, def int) int {
	if v < 1 {
		return def
	}
	return v
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	pr, err := utils.NewPathResolver()
	if err != nil {
		return "", err
	}
	return pr.GetConfigPath(FileName), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/notekeys/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if utils.FileExists(customConfigPath) {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s. Trying default path...", customConfigPath)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
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
		log.Debugf("Strict parse of %s failed: %v", configPath, err)
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse keeps every value it can read, section by section.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "suggest"); ok {
		extractSuggestConfig(section, &config.Suggest)
	}
	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := utils.ExtractSection(tempConfig, "keyboard"); ok {
		if val, ok := utils.ExtractInt64(section, "requery_delay_ms"); ok {
			config.Keyboard.RequeryDelayMs = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "store"); ok {
		if val, ok := utils.ExtractString(section, "path"); ok {
			config.Store.Path = val
		}
		if val, ok := utils.ExtractString(section, "layout"); ok {
			config.Store.Layout = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		if val, ok := utils.ExtractBool(section, "show_scores"); ok {
			config.CLI.ShowScores = val
		}
		if val, ok := utils.ExtractBool(section, "show_timing"); ok {
			config.CLI.ShowTiming = val
		}
	}
	return config, nil
}

func extractSuggestConfig(data map[string]any, s *SuggestConfig) {
	fields := map[string]*int{
		"prefix_weight":     &s.PrefixWeight,
		"max_length_weight": &s.MaxLengthWeight,
		"common_weight":     &s.CommonWeight,
		"context_weight":    &s.ContextWeight,
		"frequent_weight":   &s.FrequentWeight,
		"max_completions":   &s.MaxCompletions,
		"max_next_words":    &s.MaxNextWords,
		"context_words":     &s.ContextWords,
		"cache_size":        &s.CacheSize,
	}
	for key, dst := range fields {
		if val, ok := utils.ExtractInt64(data, key); ok {
			*dst = val
		}
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		dict.Path = val
	}
	if val, ok := utils.ExtractInt64(data, "max_words"); ok {
		dict.MaxWords = val
	}
	if val, ok := utils.ExtractInt64(data, "chunk_size"); ok {
		dict.ChunkSize = val
	}
	if val, ok := utils.ExtractInt64(data, "min_word_len"); ok {
		dict.MinWordLen = val
	}
	if val, ok := utils.ExtractInt64(data, "max_word_len"); ok {
		dict.MaxWordLen = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return err
	}
	return SaveConfig(DefaultConfig(), defaultPath)
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
