// Package text2kv provides a minimal text-object store guarded by a single
// shared token.
//
// A caller reads or writes a named text blob in a pluggable key-value
// backing store. Every write is followed by a read-back that must return the
// value just written before the write is reported as successful.
//
// # Key Components
//
//   - TextService: Read/write protocol over a Store, with write verification
//   - Store: Interface for the backing key-value store (kvdb, filesystem,
//     SQLite, PostgreSQL, S3)
//   - Gate: Shared-token authorization, captured once per process
//   - Resolve: Maps a request path to a reserved view or an object name
//   - DecodeB64: Normalizes b64 payloads into text
//
// # Reserved Paths
//
//   - config and /<token>: HTML config view
//   - config/update.bat: Windows updater script
//   - config/update.sh: POSIX shell updater script
//
// Every other path is an object name. Names are case-folded, so "Notes" and
// "notes" address the same object.
//
// # Example Usage
//
//	service, err := text2kv.NewTextService(store, text2kv.ServiceConfig{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Write and verify
//	value, err := service.Write(ctx, "notes", "hello", "")
//
//	// Read
//	value, err = service.Read(ctx, "notes")
//
// See the http package for the HTTP entry point and the backend package for
// store selection.
package text2kv
