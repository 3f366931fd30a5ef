package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Env holds process-level settings that come from the environment rather
// than the dashboard file.
type Env struct {
	ConfigPath string `envconfig:"CONFIG_PATH" default:"config.json"`
	Port       string `envconfig:"PORT" default:"8080"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	ProbeAddr  string `envconfig:"PROBE_ADDR" default:"1.1.1.1:53" validate:"required,hostname_port"`
}

// LoadEnv loads .env (if any) and maps the environment onto Env.
func LoadEnv() (Env, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return Env{}, fmt.Errorf("process environment: %w", err)
	}
	if err := validate.Struct(env); err != nil {
		return Env{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return env, nil
}
