// Package config loads the settings of the eliza command from an optional
// config file, ELIZA_ prefixed environment variables and command line flags.
package config
