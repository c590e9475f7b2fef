// Package config loads the handful of settings the auth server needs
// to start: the listen address and an optional idle-verifier TTL.
// This mirrors the original implementation's single-field
// SharedConfig -- a small, undecorated loader, because configuration
// itself is an external collaborator per the specification, not part
// of the core this repository is built to demonstrate.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the settings read at startup.
type Config struct {
	// ListenAddr is the host:port the gRPC server binds to.
	ListenAddr string

	// VerifierTTL is how long a pending verifier may sit unclaimed
	// before the optional sweeper evicts it. Zero disables sweeping.
	VerifierTTL time.Duration
}

// Load reads configuration from the AUTH_ environment namespace, with
// an optional config/authserver.yaml overlay, falling back to
// defaults when neither is present.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("auth")
	v.AutomaticEnv()

	v.SetDefault("listen_addr", ":50051")
	v.SetDefault("verifier_ttl", 0)

	v.SetConfigName("authserver")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	return Config{
		ListenAddr:  v.GetString("listen_addr"),
		VerifierTTL: v.GetDuration("verifier_ttl"),
	}, nil
}
