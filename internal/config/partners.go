// Package config loads file-based application configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// PartnersConfig declares extra partner names bound to a built-in format.
type PartnersConfig struct {
	Partners []PartnerAlias `yaml:"partners"`
}

// PartnerAlias maps a partner name to the already-registered partner whose
// parser reads its files.
type PartnerAlias struct {
	Name   string `yaml:"name"`
	Format string `yaml:"format"`
}

// AliasRegistrar is implemented by the importer partner registry.
type AliasRegistrar interface {
	RegisterAlias(alias, target string) error
}

// LoadPartnersConfig loads partner aliases from a YAML file.
// The path parameter is expected to come from a trusted source (environment or command-line flag).
func LoadPartnersConfig(path string) (*PartnersConfig, error) {
	// #nosec G304 -- path is provided by trusted source (env var or CLI flag), not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read partners config: %w", err)
	}

	var cfg PartnersConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse partners config: %w", err)
	}

	if err := validatePartnersConfig(&cfg); err != nil {
		return nil, fmt.Errorf("partners config validation failed: %w", err)
	}
	return &cfg, nil
}

func validatePartnersConfig(cfg *PartnersConfig) error {
	seen := make(map[string]struct{}, len(cfg.Partners))
	for i, p := range cfg.Partners {
		name := strings.ToLower(strings.TrimSpace(p.Name))
		if name == "" {
			return fmt.Errorf("partners[%d]: name is required", i)
		}
		if strings.TrimSpace(p.Format) == "" {
			return fmt.Errorf("partners[%d] (%s): format is required", i, name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("partners[%d]: duplicate name %q", i, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// Apply registers every alias on reg, in file order. Aliases may target an
// alias declared earlier in the file.
func (c *PartnersConfig) Apply(reg AliasRegistrar) error {
	for _, p := range c.Partners {
		if err := reg.RegisterAlias(p.Name, p.Format); err != nil {
			return fmt.Errorf("register partner %q: %w", p.Name, err)
		}
	}
	return nil
}
