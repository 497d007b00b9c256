package poller

import (
	lconfig "github.com/redvlock/agenta/pkg/config"
	"github.com/redvlock/agenta/pkg/poll"
	"time"
)

type Config struct {
	Interval time.Duration `env:"EVALUATION_POLL_INTERVAL" envDefault:"2s"`
}

func NewConfigFromEnv() (*Config, error) {
	var cfg Config
	err := lconfig.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	if _, err := poll.NewConfig(cfg.Interval); err != nil {
		return nil, err
	}
	return &cfg, nil
}
