package text2kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

type TextService struct {
	store         Store
	readFreshness time.Duration
}

// ServiceConfig holds configuration options for TextService.
type ServiceConfig struct {
	ReadFreshness time.Duration // Freshness hint for ordinary reads (default: 60s)
}

func NewTextService(store Store, cfg ServiceConfig) (*TextService, error) {
	if store == nil {
		return nil, fmt.Errorf("new text service: %w", ErrStoreUnbound)
	}
	readFreshness := cfg.ReadFreshness
	if readFreshness <= 0 {
		readFreshness = DefaultReadFreshness
	}
	return &TextService{
		store:         store,
		readFreshness: readFreshness,
	}, nil
}

// Handle dispatches a request to Read or Write depending on whether it
// carries a payload.
func (s *TextService) Handle(ctx context.Context, req Request) (string, error) {
	if req.IsWrite() {
		return s.Write(ctx, req.Name, req.Text, req.B64)
	}
	return s.Read(ctx, req.Name)
}

// Read returns the value stored under name, allowing a cached value within
// the configured freshness window.
//
// Returns ErrNotFound when nothing is stored under name.
func (s *TextService) Read(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("read object: %w", err)
	}

	if name == "" {
		return "", fmt.Errorf("read object: %w: name cannot be empty", ErrInvalidInput)
	}

	value, err := s.store.Get(ctx, name, s.readFreshness)
	if err != nil {
		return "", fmt.Errorf("read object %s: %w", name, err)
	}

	return value, nil
}

// Write stores a payload under name and reads it back to confirm the store
// returns exactly what was written.
//
// The method performs the following steps:
//  1. Picks text, or b64 decoded with DecodeB64 when text is empty. Invalid
//     UTF-8 in text is replaced with U+FFFD.
//  2. Puts the content, overwriting any prior value
//  3. Reads the name back with the Bypass hint
//  4. Compares the read-back byte-for-byte with the written content
//
// Error types returned:
//   - ErrInvalidInput: Empty name, or neither payload set
//   - ErrDecode: b64 is malformed; the store is not touched
//   - ErrVerification: The read-back missed or differed. The written value
//     is left in place, so the outcome is uncertain rather than failed.
//   - Wrapped store errors
//
// Concurrency safety: A concurrent writer to the same name may overwrite the
// value after verification; the returned value describes this call's write.
func (s *TextService) Write(ctx context.Context, name, text, b64 string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("write object: %w", err)
	}

	if name == "" {
		return "", fmt.Errorf("write object: %w: name cannot be empty", ErrInvalidInput)
	}

	content := strings.ToValidUTF8(text, string(utf8.RuneError))
	if content == "" {
		if b64 == "" {
			return "", fmt.Errorf("write object %s: %w: payload cannot be empty", name, ErrInvalidInput)
		}
		decoded, err := DecodeB64(b64)
		if err != nil {
			return "", fmt.Errorf("write object %s: %w", name, err)
		}
		content = decoded
	}

	if err := s.store.Put(ctx, name, content); err != nil {
		return "", fmt.Errorf("write object %s: put failed: %w", name, err)
	}

	verified, err := s.store.Get(ctx, name, Bypass)
	if errors.Is(err, ErrNotFound) {
		return "", fmt.Errorf("write object %s: read-back missed: %w", name, ErrVerification)
	}
	if err != nil {
		return "", fmt.Errorf("write object %s: read-back failed: %w", name, err)
	}

	if verified != content {
		return "", fmt.Errorf("write object %s: %w", name, ErrVerification)
	}

	return verified, nil
}
