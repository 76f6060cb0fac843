package text2kv_test

import (
	"net/url"
	"testing"

	"github.com/sagarc03/text2kv"
	"github.com/stretchr/testify/assert"
)

func TestNewGate_Default(t *testing.T) {
	for _, token := range []string{"", "null"} {
		g := text2kv.NewGate(token)
		assert.Equal(t, text2kv.DefaultToken, g.Token())
		assert.True(t, g.IsDefault())
	}

	assert.False(t, text2kv.NewGate("abc123").IsDefault())
}

func TestGate_Presented(t *testing.T) {
	g := text2kv.NewGate("abc123")

	tests := []struct {
		name  string
		path  string
		query url.Values
		want  string
	}{
		{name: "path as token", path: "/abc123", query: url.Values{}, want: "abc123"},
		{name: "path as token ignores query", path: "/abc123", query: url.Values{"token": {"wrong"}}, want: "abc123"},
		{name: "query token", path: "/notes", query: url.Values{"token": {"abc123"}}, want: "abc123"},
		{name: "wrong query token", path: "/notes", query: url.Values{"token": {"wrong"}}, want: "wrong"},
		{name: "missing token", path: "/notes", query: url.Values{}, want: "null"},
		{name: "empty token", path: "/notes", query: url.Values{"token": {""}}, want: "null"},
		{name: "path case differs", path: "/ABC123", query: url.Values{}, want: "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Presented(tt.path, tt.query))
		})
	}
}

func TestGate_Authorize(t *testing.T) {
	g := text2kv.NewGate("abc123")

	assert.NoError(t, g.Authorize("abc123"))
	assert.ErrorIs(t, g.Authorize("wrong"), text2kv.ErrUnauthorized)
	assert.ErrorIs(t, g.Authorize("null"), text2kv.ErrUnauthorized)
	assert.ErrorIs(t, g.Authorize(""), text2kv.ErrUnauthorized)
	assert.ErrorIs(t, g.Authorize("abc1234"), text2kv.ErrUnauthorized)
}
