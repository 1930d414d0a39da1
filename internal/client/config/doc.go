// Package config loads runtime configuration for the PlanHub CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables PLANHUB_API_URL and PLANHUB_STATE_PATH.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the PlanHub API
//	-s string   path to the local state database
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "30s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.planhub.example",
//	  "state_path": "/var/lib/planhub/planhub.db",
//	  "cache_ttl": "30s"
//	}
package config
