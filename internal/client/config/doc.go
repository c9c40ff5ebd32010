// Package config loads runtime configuration for the SmartBrain CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string     base URL of the SmartBrain HTTP API
//	-t duration   request timeout (e.g. "10s", "500ms")
//
// # JSON schema
//
//	{
//	  "server_url": "http://localhost:3000",
//	  "request_timeout": "10s"
//	}
package config
