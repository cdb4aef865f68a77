// Package config handles application configuration via environment variables,
// with an optional YAML file overlay.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all configurable values for the app. The hashing secret and
// data directory are injected into the components that need them; nothing
// reads configuration ambiently after startup.
type Config struct {
	Env           string        `yaml:"env" validate:"oneof=development staging production"`
	HTTPPort      int           `yaml:"http_port" validate:"gte=1,lte=65535"`
	DataDir       string        `yaml:"data_dir" validate:"required"`
	HashingSecret string        `yaml:"hashing_secret" validate:"required"`
	MaxChecks     int           `yaml:"max_checks" validate:"gte=1"`
	TokenTTL      time.Duration `yaml:"token_ttl" validate:"gt=0"`
	ProbeInterval time.Duration `yaml:"probe_interval" validate:"gt=0"`
	ProbeEnabled  bool          `yaml:"probe_enabled"`
}

// Load reads environment variables and populates a Config struct. If
// CONFIG_FILE is set, values from that YAML file override the environment.
// Invalid configuration is fatal at startup.
func Load() *Config {
	port, err := strconv.Atoi(getEnv("HTTP_PORT", "3040"))
	if err != nil {
		log.Panicf("Invalid HTTP_PORT: %v", err)
	}

	maxChecks, err := strconv.Atoi(getEnv("MAX_CHECKS", "5"))
	if err != nil {
		log.Panicf("Invalid MAX_CHECKS: %v", err)
	}

	tokenTTL, err := time.ParseDuration(getEnv("TOKEN_TTL", "1h"))
	if err != nil {
		log.Panicf("Invalid TOKEN_TTL: %v", err)
	}

	probeInterval, err := time.ParseDuration(getEnv("PROBE_INTERVAL", "60s"))
	if err != nil {
		log.Panicf("Invalid PROBE_INTERVAL: %v", err)
	}

	cfg := &Config{
		Env:           getEnv("ENV", "staging"),
		HTTPPort:      port,
		DataDir:       getEnv("DATA_DIR", ".data"),
		HashingSecret: getEnv("HASHING_SECRET", "thisIsASecret"),
		MaxChecks:     maxChecks,
		TokenTTL:      tokenTTL,
		ProbeInterval: probeInterval,
		ProbeEnabled:  getEnv("PROBE_ENABLED", "true") == "true",
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := overlayFile(cfg, path); err != nil {
			log.Panicf("Invalid CONFIG_FILE %s: %v", path, err)
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		log.Panicf("Invalid configuration: %v", err)
	}

	return cfg
}

func overlayFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return yaml.NewDecoder(f).Decode(cfg)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
