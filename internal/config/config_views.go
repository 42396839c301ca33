package config

import (
	"fmt"
	"time"
)

// ClientConfig is the configuration view of the dashboard client.
type ClientConfig struct {
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	Log     Log
}

// ClientAdapter holds the cloud transport settings.
type ClientAdapter struct {
	HTTPAddress    string
	RequestTimeout time.Duration
	ClientID       string
}

// ClientStorage holds the local store settings.
type ClientStorage struct {
	Driver string
	DSN    string
}

// ClientWorkers holds the sync engine timings.
type ClientWorkers struct {
	PushDebounce time.Duration
	StartupDelay time.Duration
}

// ServerConfig is the configuration view of the reference cloud server.
type ServerConfig struct {
	App     App
	Server  Server
	Storage Storage
}

// GetClientConfig loads the merged configuration and returns the validated
// client view.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := cfg.clientView()
	return clientCfg, clientCfg.validate()
}

// GetServerConfig loads the merged configuration and returns the validated
// server view.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := cfg.serverView()
	return serverCfg, serverCfg.validate()
}

func (cfg *StructuredConfig) clientView() *ClientConfig {
	return &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			ClientID:       cfg.Adapter.ClientID,
		},
		Storage: ClientStorage{
			Driver: cfg.Storage.DB.Driver,
			DSN:    cfg.Storage.DB.DSN,
		},
		Workers: ClientWorkers{
			PushDebounce: cfg.Workers.PushDebounce,
			StartupDelay: cfg.Workers.StartupDelay,
		},
		Log: cfg.Log,
	}
}

func (cfg *StructuredConfig) serverView() *ServerConfig {
	return &ServerConfig{
		App:     cfg.App,
		Server:  cfg.Server,
		Storage: cfg.Storage,
	}
}
