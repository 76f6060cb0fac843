// Package kvdbstore implements text2kv.Store on top of a portworx kvdb
// instance. The in-memory kvdb backend is registered by default, which makes
// this the "memory" store; other kvdb backends (etcd, consul) can be selected
// by name once their package is linked in.
package kvdbstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/portworx/kvdb"
	"github.com/portworx/kvdb/mem"

	"github.com/sagarc03/text2kv"
)

// DefaultDomain prefixes every key written by this store.
const DefaultDomain = "text2kv/"

// Config selects and addresses a kvdb backend.
type Config struct {
	Name      string   `mapstructure:"name"`
	Domain    string   `mapstructure:"domain"`
	Endpoints []string `mapstructure:"endpoints"`
}

// Store stores objects as kvdb keys.
type Store struct {
	kv kvdb.Kvdb
}

// New wraps an existing kvdb instance.
func New(kv kvdb.Kvdb) *Store {
	return &Store{kv: kv}
}

// Open creates a kvdb instance from cfg. An empty name selects the
// in-memory backend.
func Open(cfg Config) (*Store, error) {
	name := cfg.Name
	if name == "" {
		name = mem.Name
	}
	domain := cfg.Domain
	if domain == "" {
		domain = DefaultDomain
	}

	kv, err := kvdb.New(name, domain, cfg.Endpoints, nil, kvdb.LogFatalErrorCB)
	if err != nil {
		return nil, fmt.Errorf("open kvdb %s: %w", name, err)
	}

	return New(kv), nil
}

// Get returns the value stored under name. kvdb reads are always served by
// the backend, so the freshness hint is ignored.
func (s *Store) Get(ctx context.Context, name string, _ time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pair, err := s.kv.Get(name)
	if err != nil {
		if errors.Is(err, kvdb.ErrNotFound) {
			return "", text2kv.ErrNotFound
		}
		return "", fmt.Errorf("kvdb get: %w", err)
	}

	return string(pair.Value), nil
}

// Put stores value under name without a TTL.
func (s *Store) Put(ctx context.Context, name, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := s.kv.Put(name, []byte(value), 0); err != nil {
		return fmt.Errorf("kvdb put: %w", err)
	}

	return nil
}
