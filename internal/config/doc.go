// Package config provides configuration structures and utilities for wikiracer.
//
// Values are layered, each layer overriding the previous one:
//
//  1. defaults from NewConfig
//  2. the YAML file (.wikiracer in the current or home directory, or --config)
//  3. a .env file in the current directory
//  4. WIKIRACER_* environment variables
//  5. command-line flags
package config
