package datasource

import lconfig "github.com/redvlock/agenta/pkg/config"

type Config struct {
	AgentaBaseUrl string `env:"AGENTA_BASE_URL" envDefault:"http://localhost:8000"`
}

func NewConfigFromEnv() (*Config, error) {
	var cfg Config
	err := lconfig.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
