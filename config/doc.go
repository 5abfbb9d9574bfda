// Package config provides configuration loading and validation for
// applications built on the module registry.
//
// It uses Viper to load configuration from files and environment variables,
// supporting YAML files, .env files via godotenv, and environment-specific
// overrides.
//
// # Usage
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Listen string `yaml:"listen" mapstructure:"listen"`
//	}
//
//	var cfg AppConfig
//	err := config.LoadConfig("webapp", &cfg)
//
// Environment variables override file values using underscore-separated
// paths (e.g. LOGGING_LEVEL overrides logging.level).
package config
