// ABOUTME: Gateway configuration storage at XDG paths with environment overrides
// ABOUTME: Holds the allowed-email list, listen port, and dev-mode flag
package web

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
)

const defaultPort = 8080

// GatewayConfig stores gateway settings. The allowed-email list is the whole
// of the authentication policy; remote store credentials live in the process
// environment, not here.
type GatewayConfig struct {
	AllowedEmails []string `json:"allowed_emails"`
	Port          int      `json:"port,omitempty"`
	Dev           bool     `json:"dev,omitempty"`
}

// ConfigDir returns the XDG-compliant directory for gateway configuration.
func ConfigDir() string {
	return filepath.Join(xdg.DataHome, "tably")
}

// ConfigPath returns the XDG-compliant path of the gateway config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// LoadGatewayConfig loads gateway configuration from the XDG data directory.
// Returns defaults if the file does not exist. Environment variables override
// file values:
// - TABLY_ALLOWED_EMAILS (comma-separated)
// - TABLY_PORT
// - TABLY_DEV.
func LoadGatewayConfig() (*GatewayConfig, error) {
	cfg := &GatewayConfig{
		Port: defaultPort,
	}

	f, err := os.Open(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to open gateway config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode gateway config: %w", err)
	}
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *GatewayConfig) {
	if emails := os.Getenv("TABLY_ALLOWED_EMAILS"); emails != "" {
		cfg.AllowedEmails = splitEmails(emails)
	}
	if port := os.Getenv("TABLY_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil && p > 0 {
			cfg.Port = p
		}
	}
	if dev := os.Getenv("TABLY_DEV"); dev != "" {
		cfg.Dev = dev == "true" || dev == "1"
	}
}

func splitEmails(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// SaveGatewayConfig writes gateway configuration to the XDG data directory
// with restricted permissions.
func SaveGatewayConfig(cfg *GatewayConfig) error {
	if err := os.MkdirAll(ConfigDir(), 0700); err != nil {
		return fmt.Errorf("failed to create gateway config directory: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create gateway config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode gateway config: %w", err)
	}
	return nil
}
