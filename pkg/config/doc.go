// Package config loads typed configuration structs from environment
// variables using `env` struct tags, with an optional .env file for local
// development.
//
// Every configurable component in this module declares its settings as an
// env-tagged struct and loads it through Load or MustLoad, so the full set
// of environment variables a deployment understands can be discovered by
// grepping for `env:` tags.
//
// # Usage
//
//	var cfg sportline.Config
//	config.MustLoad(&cfg)
package config
