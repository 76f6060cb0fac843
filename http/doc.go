// Package http serves text2kv over HTTP.
//
// A single catch-all route accepts any method on any path. Each request
// passes through:
//
//   - RequestLogMiddleware: one slog line per request, credentials redacted
//   - RecoverMiddleware: panics become 500 responses
//   - CORS (optional)
//   - StoreBoundMiddleware: 500 when no store is bound
//   - AuthMiddleware: 403 "invalid token" on a credential mismatch
//
// The path is then resolved with text2kv.Resolve. Reserved paths render the
// bootstrap views; every other path is an object name handled by the Service.
//
// # Query Parameters
//
//   - token: the shared credential (not needed on the /<token> path)
//   - text: plain-text payload to store
//   - b64: base64 payload to store, used when text is absent
//
// # Responses
//
// Every response is built by WriteResponse and carries no-cache headers with a
// fresh random ETag. Errors are mapped by HandleError:
//
//	ErrUnauthorized  403  invalid token
//	ErrNotFound      404  File not found
//	ErrInvalidInput  400  Invalid object name
//	anything else    500  Error: <message>
//
// # Usage
//
//	store, cleanup, _ := backend.Open(ctx, backend.Config{Type: backend.TypeMemory})
//	defer cleanup()
//	service, _ := text2kv.NewTextService(store, text2kv.ServiceConfig{})
//
//	handler := http.NewHandler(&http.HandlerConfig{
//	    Gate: text2kv.NewGate(os.Getenv("TOKEN")),
//	}, service)
//	srv := &nethttp.Server{Addr: ":5708", Handler: handler.Router()}
package http
