package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

func LoadArchetypes(path string) (*ArchetypesConfig, error) {
	var ac ArchetypesConfig
	if err := loadYAML(path, &ac); err != nil {
		return nil, err
	}
	if err := ac.Validate(); err != nil {
		return nil, err
	}
	return &ac, nil
}

// LoadScenario decodes over the stock values, so omitted keys keep their
// defaults and explicit zeros are honoured.
func LoadScenario(path string, ac *ArchetypesConfig) (*ScenarioConfig, error) {
	var sc ScenarioConfig
	sc.ApplyDefaults()
	if err := loadYAML(path, &sc); err != nil {
		return nil, err
	}
	if err := sc.Validate(ac); err != nil {
		return nil, err
	}
	return &sc, nil
}

// LoadAll reads archetypes.yaml and scenario.yaml from dir and validates both.
func LoadAll(dir string) (*ArchetypesConfig, *ScenarioConfig, error) {
	ac, err := LoadArchetypes(filepath.Join(dir, "archetypes.yaml"))
	if err != nil {
		return nil, nil, err
	}
	sc, err := LoadScenario(filepath.Join(dir, "scenario.yaml"), ac)
	if err != nil {
		return nil, nil, err
	}
	return ac, sc, nil
}
