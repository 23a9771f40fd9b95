package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/hydra/config"
	ConfigFileName    = "hydra.yml"
)

// ValidLogFormats lists accepted values for log_format.
var ValidLogFormats = []string{"text", "json"}

// HydraConfig holds all platform configuration settings
type HydraConfig struct {
	// SeasonalYear is the placeholder year marking a recurring (seasonal) timeseries
	SeasonalYear int `yaml:"seasonal_year" json:"seasonal_year"`

	// FlattenLevels is the default relationship depth for flattened records
	FlattenLevels int `yaml:"flatten_levels" json:"flatten_levels"`

	// MaxTimesteps caps the number of points generated for a time range query
	MaxTimesteps int `yaml:"max_timesteps" json:"max_timesteps"`

	// AdminRole is the role code granting usergroup administration
	AdminRole string `yaml:"admin_role" json:"admin_role"`

	LogLevel  string `yaml:"log_level" json:"log_level"`
	LogFormat string `yaml:"log_format" json:"log_format"`

	// RateLimit is the number of requests per second allowed per caller, 0 disables limiting
	RateLimit      int `yaml:"rate_limit" json:"rate_limit"`
	RateLimitBurst int `yaml:"rate_limit_burst" json:"rate_limit_burst"`

	// TokenTTL is the lifetime of issued bearer tokens in seconds
	TokenTTL int `yaml:"token_ttl" json:"token_ttl"`

	// sources tracks where each value came from
	sources map[string]string

	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

var (
	globalConfig *HydraConfig
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *HydraConfig {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() (*HydraConfig, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return cfg, nil
}

// Set replaces the global configuration. Tests use it to pin values.
func Set(cfg *HydraConfig) {
	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
}

// Default returns a config holding only default values.
func Default() *HydraConfig {
	return newDefault()
}

func newDefault() *HydraConfig {
	c := &HydraConfig{
		SeasonalYear:   9999,
		FlattenLevels:  1,
		MaxTimesteps:   100000,
		AdminRole:      "admin",
		LogLevel:       "info",
		LogFormat:      "text",
		RateLimit:      0,
		RateLimitBurst: 20,
		TokenTTL:       8 * 60 * 60,
		sources:        make(map[string]string),
	}
	for _, name := range attributeNames() {
		c.sources[name] = "default"
	}
	return c
}

// Load loads configuration from file and environment variables
// Environment variables take precedence over file values
func Load() (*HydraConfig, error) {
	configPath := os.Getenv("HYDRA_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	return LoadFile(filepath.Join(configPath, ConfigFileName))
}

// LoadFile is Load with an explicit config file path. A missing file is not an error.
func LoadFile(path string) (*HydraConfig, error) {
	config := newDefault()
	config.configFilePath = path

	if data, err := os.ReadFile(path); err == nil {
		var fileConfig HydraConfig
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"seasonal_year", "flatten_levels", "max_timesteps", "admin_role",
		"log_level", "log_format", "rate_limit", "rate_limit_burst", "token_ttl",
	}
}

func (c *HydraConfig) applyFileConfig(file *HydraConfig) {
	if file.SeasonalYear != 0 {
		c.SeasonalYear = file.SeasonalYear
		c.sources["seasonal_year"] = "file"
	}
	if file.FlattenLevels != 0 {
		c.FlattenLevels = file.FlattenLevels
		c.sources["flatten_levels"] = "file"
	}
	if file.MaxTimesteps != 0 {
		c.MaxTimesteps = file.MaxTimesteps
		c.sources["max_timesteps"] = "file"
	}
	if file.AdminRole != "" {
		c.AdminRole = file.AdminRole
		c.sources["admin_role"] = "file"
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
		c.sources["log_level"] = "file"
	}
	if file.LogFormat != "" {
		c.LogFormat = file.LogFormat
		c.sources["log_format"] = "file"
	}
	if file.RateLimit != 0 {
		c.RateLimit = file.RateLimit
		c.sources["rate_limit"] = "file"
	}
	if file.RateLimitBurst != 0 {
		c.RateLimitBurst = file.RateLimitBurst
		c.sources["rate_limit_burst"] = "file"
	}
	if file.TokenTTL != 0 {
		c.TokenTTL = file.TokenTTL
		c.sources["token_ttl"] = "file"
	}
}

func (c *HydraConfig) applyEnvConfig() {
	envInt := func(name, attr string, dst *int) {
		if val := os.Getenv(name); val != "" {
			if i, err := strconv.Atoi(val); err == nil {
				*dst = i
				c.sources[attr] = "environment"
			}
		}
	}
	envString := func(name, attr string, dst *string) {
		if val := os.Getenv(name); val != "" {
			*dst = strings.TrimSpace(val)
			c.sources[attr] = "environment"
		}
	}

	envInt("HYDRA_SEASONAL_YEAR", "seasonal_year", &c.SeasonalYear)
	envInt("HYDRA_FLATTEN_LEVELS", "flatten_levels", &c.FlattenLevels)
	envInt("HYDRA_MAX_TIMESTEPS", "max_timesteps", &c.MaxTimesteps)
	envString("HYDRA_ADMIN_ROLE", "admin_role", &c.AdminRole)
	envString("HYDRA_LOG_LEVEL", "log_level", &c.LogLevel)
	envString("HYDRA_LOG_FORMAT", "log_format", &c.LogFormat)
	envInt("HYDRA_RATE_LIMIT", "rate_limit", &c.RateLimit)
	envInt("HYDRA_RATE_LIMIT_BURST", "rate_limit_burst", &c.RateLimitBurst)
	envInt("HYDRA_TOKEN_TTL", "token_ttl", &c.TokenTTL)
}

// ConfigFilePath returns the path to the config file
func (c *HydraConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *HydraConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// TokenLifetime returns the token TTL as a duration
func (c *HydraConfig) TokenLifetime() time.Duration {
	return time.Duration(c.TokenTTL) * time.Second
}

// Validate validates the configuration
func (c *HydraConfig) Validate() error {
	if c.SeasonalYear < 1 || c.SeasonalYear > 9999 {
		return fmt.Errorf("invalid seasonal_year value: %d", c.SeasonalYear)
	}
	if c.FlattenLevels < 0 {
		return fmt.Errorf("invalid flatten_levels value: %d", c.FlattenLevels)
	}
	if c.MaxTimesteps < 1 {
		return fmt.Errorf("invalid max_timesteps value: %d", c.MaxTimesteps)
	}
	if c.AdminRole == "" {
		return fmt.Errorf("admin_role must not be empty")
	}
	if c.RateLimit < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("rate limits must not be negative")
	}
	valid := false
	for _, f := range ValidLogFormats {
		if strings.EqualFold(c.LogFormat, f) {
			valid = true
		}
	}
	if !valid {
		return fmt.Errorf("invalid log_format: %s", c.LogFormat)
	}
	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *HydraConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "seasonal_year", Value: strconv.Itoa(c.SeasonalYear), Source: c.Source("seasonal_year")},
		{Name: "flatten_levels", Value: strconv.Itoa(c.FlattenLevels), Source: c.Source("flatten_levels")},
		{Name: "max_timesteps", Value: strconv.Itoa(c.MaxTimesteps), Source: c.Source("max_timesteps")},
		{Name: "admin_role", Value: c.AdminRole, Source: c.Source("admin_role")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
		{Name: "log_format", Value: c.LogFormat, Source: c.Source("log_format")},
		{Name: "rate_limit", Value: strconv.Itoa(c.RateLimit), Source: c.Source("rate_limit")},
		{Name: "rate_limit_burst", Value: strconv.Itoa(c.RateLimitBurst), Source: c.Source("rate_limit_burst")},
		{Name: "token_ttl", Value: strconv.Itoa(c.TokenTTL), Source: c.Source("token_ttl")},
	}
}

// FormatText returns a text representation of the configuration
func (c *HydraConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-24s %-20s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-24s %-20s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-24s %-20s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *HydraConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
