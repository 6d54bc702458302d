// Package config loads runtime configuration for the vgcli client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment variables (VG_*), read with cleanenv.
//  4. Command-line flags, which override everything above.
//
// Supported flags
//
//	-a string   base URL of the REST backend
//	-d string   path of the local sqlite database holding the session token
//	-p int      admin table page size
//	-t int      request timeout in seconds (0 disables the timeout)
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
//	{
//	  "server_base_url": "http://localhost:5000/api",
//	  "database_path": "session.db",
//	  "page_size": 10,
//	  "request_timeout": "30s",
//	  "requests_per_second": 5,
//	  "log_level": "info"
//	}
package config
