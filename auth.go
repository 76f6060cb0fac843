package text2kv

import (
	"crypto/subtle"
	"net/url"
)

// anonymousToken is presented when a request carries no credential. It can
// never match because NewGate refuses it.
const anonymousToken = "null"

// Gate holds the effective token for one process activation.
type Gate struct {
	token string
}

// NewGate creates a Gate for the given token. An empty token falls back to
// DefaultToken.
func NewGate(token string) *Gate {
	if token == "" || token == anonymousToken {
		token = DefaultToken
	}
	return &Gate{token: token}
}

// Token returns the effective token.
func (g *Gate) Token() string {
	return g.token
}

// IsDefault reports whether the gate is running with the insecure default.
func (g *Gate) IsDefault() bool {
	return g.token == DefaultToken
}

// Presented extracts the credential a request presents. A path of exactly
// "/<token>" authenticates by itself; otherwise the token query parameter is
// used, and "null" when that is absent or empty.
func (g *Gate) Presented(path string, query url.Values) string {
	if path == "/"+g.token {
		return g.token
	}
	if t := query.Get("token"); t != "" {
		return t
	}
	return anonymousToken
}

// Authorize checks a presented credential against the effective token.
func (g *Gate) Authorize(presented string) error {
	if subtle.ConstantTimeCompare([]byte(presented), []byte(g.token)) != 1 {
		return ErrUnauthorized
	}
	return nil
}
