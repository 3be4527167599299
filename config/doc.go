// Package config provides configuration loading and validation for
// applications embedding apiwire.
//
// It uses Viper to load configuration from a config.yml file and the
// environment, with .env file support via godotenv. Loaded structs are
// validated with struct tags.
//
// # Usage
//
//	var cfg config.Config
//	err := config.Load("my-service", &cfg)
package config
