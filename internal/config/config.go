package config

import (
	lconfig "github.com/redvlock/agenta/pkg/config"
)

type Config struct {
	// AppID scopes every dataset fetch to one application.
	AppID string `env:"AGENTA_APP_ID" envDefault:""`
	// EvaluatorRegistryFile is the YAML snapshot of known evaluator configs.
	EvaluatorRegistryFile string `env:"EVALUATOR_REGISTRY_FILE" envDefault:"evaluators.yaml"`
}

func NewConfigFromEnv() (*Config, error) {
	var cfg Config
	err := lconfig.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
