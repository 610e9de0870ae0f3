// Package config loads tool configuration from a config.yml, the environment,
// a .env file and command-line flags, in that order of increasing precedence.
//
// # Usage
//
//	var cfg promptprobe.Config
//	err := config.LoadConfig("fanout", &cfg,
//	    config.WithDefaults(config.ProbeDefaults()),
//	    config.WithFlags(flags, map[string]string{"count": "fanout.count"}),
//	)
//
// Environment variables map onto nested keys by splitting on underscores, so
// FANOUT_COUNT sets fanout.count and API_KEY sets api.key. The provider
// credential is read from api.key_env (TARGON_API_KEY, OPENAI_API_KEY or
// API_KEY depending on api.provider) when api.key is empty.
package config
