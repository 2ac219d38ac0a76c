package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Spec    SpecConfig    `yaml:"spec"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port     int       `yaml:"port"`
	Host     string    `yaml:"host"`
	BasePath string    `yaml:"basePath"` // Mount point of the documentation surface
	TLS      TLSConfig `yaml:"tls"`
}

// TLSConfig holds TLS configuration
type TLSConfig struct {
	Enabled      bool   `yaml:"enabled"`      // Enable TLS
	CertFile     string `yaml:"certFile"`     // Path to certificate file
	KeyFile      string `yaml:"keyFile"`      // Path to private key file
	AutoGenerate bool   `yaml:"autoGenerate"` // Auto-generate self-signed cert if not configured
	StorePath    string `yaml:"storePath"`    // Path to store auto-generated certs
}

// SpecConfig selects which document a deployment serves
type SpecConfig struct {
	Generation string `yaml:"generation"` // "v1" or "v2"
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:     8080,
			Host:     "0.0.0.0",
			BasePath: "",
			TLS: TLSConfig{
				Enabled:      false,
				AutoGenerate: true,
				StorePath:    "./certs",
			},
		},
		Spec: SpecConfig{
			Generation: "v2",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
