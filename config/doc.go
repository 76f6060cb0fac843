// Package config provides configuration loading and validation for text2kv.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (TEXT2KV_ prefix)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store, cleanup, err := backend.Open(ctx, cfg.Backend())
//
// # Environment Variables
//
// All config keys map to environment variables with TEXT2KV_ prefix:
//   - server.port → TEXT2KV_SERVER_PORT
//   - store.type → TEXT2KV_STORE_TYPE
//   - auth.token → TEXT2KV_AUTH_TOKEN, or TOKEN
//
// # Token
//
// auth.token is read once at startup. When it is empty the server runs with
// text2kv.DefaultToken, which is public knowledge.
//
// # Validation
//
// Configuration is validated using struct tags and per-store checks:
//   - Port must be 1-65535
//   - store.type must be memory, kvdb, filesystem, sqlite, postgres, or s3
//   - SQL stores need a valid objects table name
//   - The s3 store needs a bucket and a region
package config
