package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
)

const defaultSessionMaxAge = 24 * time.Hour

// serverEnv holds the environment settings read at startup. Flags given on
// the command line win over these.
type serverEnv struct {
	ConfigDir         string        `env:"CONFIG_DIR"`
	NgrokEnabled      bool          `env:"NGROK_ENABLED"`
	NgrokAuthToken    string        `env:"NGROK_AUTHTOKEN"`
	NgrokAuthTokenAlt string        `env:"NGROK_AUTH_TOKEN"`
	NgrokDomain       string        `env:"NGROK_DOMAIN"`
	SessionMaxAge     time.Duration `env:"SESSION_MAX_AGE" envDefault:"24h"`
}

// loadEnvConfig parses the server environment
func loadEnvConfig() (serverEnv, error) {
	var cfg serverEnv
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if cfg.NgrokAuthToken == "" {
		cfg.NgrokAuthToken = cfg.NgrokAuthTokenAlt
	}
	if cfg.SessionMaxAge <= 0 {
		log.Printf("Warning: SESSION_MAX_AGE must be positive, using %s", defaultSessionMaxAge)
		cfg.SessionMaxAge = defaultSessionMaxAge
	}
	return cfg, nil
}

// explicitFlags returns the names of flags set on the command line
func explicitFlags() map[string]bool {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// applyEnvConfig fills in every flag the command line left unset
func applyEnvConfig(cfg serverEnv, explicit map[string]bool) {
	if !explicit["config-dir"] && cfg.ConfigDir != "" {
		*configDir = cfg.ConfigDir
	}
	if !explicit["ngrok"] && cfg.NgrokEnabled {
		*ngrokEnabled = true
	}
	if !explicit["ngrok-auth"] && cfg.NgrokAuthToken != "" {
		*ngrokAuth = cfg.NgrokAuthToken
	}
	if !explicit["ngrok-domain"] && cfg.NgrokDomain != "" {
		*ngrokDomain = cfg.NgrokDomain
	}
	sessionMaxAge = cfg.SessionMaxAge
}
