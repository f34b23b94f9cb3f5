package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultConfigPath = "/etc/ticketd/config"
	ConfigFileName    = "ticketd.yml"
)

// Config holds all ticketd server settings
type Config struct {
	// BindAddress is the address the HTTP server listens on
	BindAddress string `yaml:"bind_address" json:"bind_address"`

	// Port is the HTTP server port
	Port int `yaml:"port" json:"port"`

	// BcryptCost is the work factor for password hashing
	BcryptCost int `yaml:"bcrypt_cost" json:"bcrypt_cost"`

	// TrustedProxies is a list of CIDR ranges for trusted proxies
	TrustedProxies []string `yaml:"trusted_proxies" json:"trusted_proxies"`

	// AuditEnabled controls the security audit stream
	AuditEnabled bool `yaml:"audit_enabled" json:"audit_enabled"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *Config {
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
			// Return defaults on error
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *Config {
	return &Config{
		BindAddress:    "0.0.0.0",
		Port:           8080,
		BcryptCost:     bcrypt.DefaultCost,
		TrustedProxies: []string{},
		AuditEnabled:   true,
		sources:        make(map[string]string),
	}
}

// Load loads configuration from file and environment variables
// Environment variables take precedence over file values
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("TICKETD_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"bind_address", "port", "bcrypt_cost", "trusted_proxies",
		"audit_enabled",
	}
}

func (c *Config) applyFileConfig(file *Config) {
	if file.BindAddress != "" {
		c.BindAddress = file.BindAddress
		c.sources["bind_address"] = "file"
	}
	if file.Port != 0 {
		c.Port = file.Port
		c.sources["port"] = "file"
	}
	if file.BcryptCost != 0 {
		c.BcryptCost = file.BcryptCost
		c.sources["bcrypt_cost"] = "file"
	}
	if len(file.TrustedProxies) > 0 {
		c.TrustedProxies = file.TrustedProxies
		c.sources["trusted_proxies"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("TICKETD_BIND_ADDRESS"); val != "" {
		c.BindAddress = val
		c.sources["bind_address"] = "environment"
	}
	if val := os.Getenv("TICKETD_PORT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.Port = i
			c.sources["port"] = "environment"
		}
	}
	if val := os.Getenv("TICKETD_BCRYPT_COST"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.BcryptCost = i
			c.sources["bcrypt_cost"] = "environment"
		}
	}
	if val := os.Getenv("TICKETD_TRUSTED_PROXIES"); val != "" {
		c.TrustedProxies = splitAndTrim(val)
		c.sources["trusted_proxies"] = "environment"
	}
	if val := os.Getenv("TICKETD_AUDIT_ENABLED"); val != "" {
		c.AuditEnabled = val == "true" || val == "1"
		c.sources["audit_enabled"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// IsTrustedProxy checks if an IP is from a trusted proxy
func (c *Config) IsTrustedProxy(ip string) bool {
	if len(c.TrustedProxies) == 0 {
		return false
	}

	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return false
	}

	for _, cidr := range c.TrustedProxies {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			// Try as plain IP
			if net.ParseIP(cidr) != nil && cidr == ip {
				return true
			}
			continue
		}
		if network.Contains(parsedIP) {
			return true
		}
	}
	return false
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	for _, cidr := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			if net.ParseIP(cidr) == nil {
				return fmt.Errorf("invalid trusted_proxies value: %s", cidr)
			}
		}
	}

	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *Config) Attributes() []Attribute {
	return []Attribute{
		{Name: "bind_address", Value: c.BindAddress, Source: c.Source("bind_address")},
		{Name: "port", Value: strconv.Itoa(c.Port), Source: c.Source("port")},
		{Name: "bcrypt_cost", Value: strconv.Itoa(c.BcryptCost), Source: c.Source("bcrypt_cost")},
		{Name: "trusted_proxies", Value: strings.Join(c.TrustedProxies, ","), Source: c.Source("trusted_proxies")},
		{Name: "audit_enabled", Value: strconv.FormatBool(c.AuditEnabled), Source: c.Source("audit_enabled")},
	}
}

// FormatText returns a text representation of the configuration
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-20s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-20s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-20s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *Config) FormatJSON() (string, error) {
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

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
