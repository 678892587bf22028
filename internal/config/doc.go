// Package config defines the configuration structure for the solver service.
//
// Configuration is organized into logical sections (Server, Solver, Auth)
// with defaults applied via creasty/defaults and values loaded through viper
// from an optional config file and SOLVER_-prefixed environment variables.
//
// # Server Configuration
//
//	┌──────────────────┬─────────┬────────────────────────────────────────┐
//	│ Field            │ Default │ Description                            │
//	├──────────────────┼─────────┼────────────────────────────────────────┤
//	│ Mode             │ "dev"   │ Server mode: "prod" or "dev"           │
//	│ HTTPPort         │ 8000    │ HTTP server listen port                │
//	└──────────────────┴─────────┴────────────────────────────────────────┘
//
// # Solver Configuration
//
//	┌─────────────────┬─────────┬─────────────────────────────────────────┐
//	│ Field           │ Default │ Description                             │
//	├─────────────────┼─────────┼─────────────────────────────────────────┤
//	│ ParallelSolves  │ 3       │ Worker pool size: concurrent solves     │
//	│ DataFolder      │ ""      │ Path to data storage (DuckDB); empty    │
//	│                 │         │ runs an in-memory database              │
//	│ WebhookURL      │ ""      │ Terminal job outcomes are POSTed here;  │
//	│                 │         │ empty disables notification             │
//	│ WebhookRetries  │ 5       │ Max delivery attempts per outcome       │
//	└─────────────────┴─────────┴─────────────────────────────────────────┘
//
// # Authentication Configuration
//
//	┌─────────────┬─────────┬────────────────────────────────────────┐
//	│ Field       │ Default │ Description                            │
//	├─────────────┼─────────┼────────────────────────────────────────┤
//	│ Enabled     │ false   │ Enable JWT bearer authentication       │
//	│ JWTSecret   │ ""      │ HMAC signing secret                    │
//	└─────────────┴─────────┴────────────────────────────────────────┘
//
// # Usage Example
//
//	cfg, err := config.Load("/etc/solver/config.yaml")
//	if err != nil {
//	    return err
//	}
package config
