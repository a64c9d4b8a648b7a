package config

import (
	"github.com/multiversx/mx-chain-core-go/core"
)

// LoadConfigFromFile will try to load the main configuration file from the given path
func LoadConfigFromFile(filePath string) (*Config, error) {
	cfg := &Config{}
	err := core.LoadTomlFile(cfg, filePath)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
