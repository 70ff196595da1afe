// Package config loads runtime configuration for the Sarthi CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path of the local slot database
//	-l string   default interface language (BCP 47 tag)
//
// # JSON schema
//
//	{
//	  "database_path": "sarthi.db",
//	  "default_language": "en"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
