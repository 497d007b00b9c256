package sbhttpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dimfeld/httptreemux"

	"github.com/redvlock/agenta/pkg/app"
	lconfig "github.com/redvlock/agenta/pkg/config"
)

type Config struct {
	Port              int           `env:"SERVER_HTTP_PORT" envDefault:"3000"`
	ReadTimeout       time.Duration `env:"SERVER_HTTP_READ_TIMEOUT"  envDefault:"60s"`
	ReadHeaderTimeout time.Duration `env:"SERVER_HTTP_READ_HEADER_TIMEOUT" envDefault:"15s"`
	WriteTimeout      time.Duration `env:"SERVER_HTTP_WRITE_TIMEOUT" envDefault:"60s"`
	IdleTimeout       time.Duration `env:"SERVER_HTTP_IDLE_TIMEOUT" envDefault:"60s"` // Close idle connections after 60s
	MaxHeaderBytes    int           `env:"SERVER_HTTP_MAX_HEADER_BYTES"`
}

func NewConfigFromEnv() (*Config, error) {
	var cfg Config
	err := lconfig.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Instance struct {
	app    *app.Instance
	router *httptreemux.TreeMux
	server *http.Server
	config *Config
}

func NewInstance(cfg *Config, app *app.Instance) (*Instance, error) {
	router := httptreemux.New()
	router.RedirectTrailingSlash = false

	localServer := &http.Server{
		Handler:           router,
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	return &Instance{
		app:    app,
		config: cfg,
		router: router,
		server: localServer,
	}, nil
}

func (instance *Instance) Register(server Server) error {
	instance.app.AddCloseFunc(func() error {
		return server.Shutdown()
	})

	instance.registerStatusHandlers(server)

	return instance.registerHandlers(server)
}
