package text2kv

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// DefaultToken is used when no token is configured. It is public knowledge
// and therefore insecure; every deployment must override it.
const DefaultToken = "passwd"

// DefaultReadFreshness is the freshness hint passed to ordinary reads.
const DefaultReadFreshness = 60 * time.Second

// Bypass is the freshness hint that forbids serving a cached value.
const Bypass time.Duration = 0

// Request is the transient per-call context. Text and B64 are empty when the
// corresponding query parameter was absent or empty.
type Request struct {
	Name string
	Text string
	B64  string
}

// IsWrite reports whether the request carries a payload.
func (r Request) IsWrite() bool {
	return r.Text != "" || r.B64 != ""
}

// Tables holds configurable table names for SQL-backed stores.
type Tables struct {
	Objects string `mapstructure:"objects"`
}

var validTableNameRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// IsValidTableName checks if a table name is valid (lowercase, alphanumeric with underscores, max 63 chars).
func IsValidTableName(name string) bool {
	return validTableNameRegex.MatchString(name) && len(name) <= 63
}

// Validate checks that all required table names are set and valid.
func (t Tables) Validate() error {
	if t.Objects == "" {
		return errors.New("validate tables: objects table name cannot be empty")
	}

	if !IsValidTableName(t.Objects) {
		return fmt.Errorf("validate tables: invalid objects table name: %s (must match ^[a-z_][a-z0-9_]*$ and be <= 63 chars)", t.Objects)
	}

	return nil
}
