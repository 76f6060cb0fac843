package text2kv

import (
	"context"
	"time"
)

// Store is the capability interface over a mapping from object name to text.
// Implementations must be safe for concurrent use and must return exactly the
// string previously passed to Put for a name.
//
// All methods accept a context for cancellation and timeout control.
type Store interface {
	// Get retrieves the value stored under name.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - name: The normalized object name
	//   - freshness: Advisory cache duration. A store or cache layer may serve
	//     a value fetched within this window; Bypass (0) requires reading
	//     through to the authoritative copy.
	//
	// Returns:
	//   - string: The stored value
	//   - error: ErrNotFound if nothing is stored under name, or backend errors
	Get(ctx context.Context, name string, freshness time.Duration) (string, error)

	// Put stores value under name, replacing any prior value.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - name: The normalized object name
	//   - value: The full text payload
	//
	// Returns:
	//   - error: Any backend error
	Put(ctx context.Context, name, value string) error
}
