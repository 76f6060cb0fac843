package clientcli_test

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sagarc03/text2kv"
	"github.com/sagarc03/text2kv/clientcli"
	text2kvhttp "github.com/sagarc03/text2kv/http"
	"github.com/sagarc03/text2kv/kvdbstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newServer starts a text2kv server over an in-memory store.
func newServer(t *testing.T, token string) *httptest.Server {
	t.Helper()
	store, err := kvdbstore.Open(kvdbstore.Config{})
	require.NoError(t, err)

	service, err := text2kv.NewTextService(store, text2kv.ServiceConfig{})
	require.NoError(t, err)

	handler := text2kvhttp.NewHandler(&text2kvhttp.HandlerConfig{
		Gate: text2kv.NewGate(token),
	}, service)

	server := httptest.NewServer(handler.Router())
	t.Cleanup(server.Close)
	return server
}

func newClient(t *testing.T, server, token string) *clientcli.Client {
	t.Helper()
	client, err := clientcli.New(&clientcli.Config{Server: server, Token: token})
	require.NoError(t, err)
	return client
}

func TestNew(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		client, err := clientcli.New(&clientcli.Config{Server: "http://localhost:5708", Token: "abc123"})
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("empty server uses default", func(t *testing.T) {
		client, err := clientcli.New(&clientcli.Config{})
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("nil config", func(t *testing.T) {
		_, err := clientcli.New(nil)
		assert.ErrorIs(t, err, clientcli.ErrConfigRequired)
	})

	t.Run("options applied", func(t *testing.T) {
		httpClient := &http.Client{}
		client, err := clientcli.New(&clientcli.Config{},
			clientcli.WithHTTPClient(httpClient),
			clientcli.WithTimeout(5*time.Second),
		)
		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.Equal(t, 5*time.Second, httpClient.Timeout)
	})
}

func TestClient_PutGet(t *testing.T) {
	server := newServer(t, "abc123")
	client := newClient(t, server.URL+"/", "abc123")
	ctx := context.Background()

	t.Run("text round trip", func(t *testing.T) {
		put, err := client.Put(ctx, clientcli.PutOptions{Name: "Notes", Text: "hello world"})
		require.NoError(t, err)
		assert.Equal(t, "notes", put.Name)
		assert.Equal(t, "hello world", put.Value)
		assert.Equal(t, 11, put.Size)

		got, err := client.Get(ctx, "NOTES")
		require.NoError(t, err)
		assert.Equal(t, "hello world", got.Value)
		assert.NotEmpty(t, got.ETag)
	})

	t.Run("b64 round trip", func(t *testing.T) {
		content := "line one\nline two +/= 你好"
		put, err := client.Put(ctx, clientcli.PutOptions{
			Name: "multi",
			B64:  base64.StdEncoding.EncodeToString([]byte(content)),
		})
		require.NoError(t, err)
		assert.Equal(t, content, put.Value)

		got, err := client.Get(ctx, "multi")
		require.NoError(t, err)
		assert.Equal(t, content, got.Value)
	})

	t.Run("text with reserved query characters", func(t *testing.T) {
		content := "a&b=c?d#e f+g"
		_, err := client.Put(ctx, clientcli.PutOptions{Name: "chars", Text: content})
		require.NoError(t, err)

		got, err := client.Get(ctx, "chars")
		require.NoError(t, err)
		assert.Equal(t, content, got.Value)
	})

	t.Run("nested name", func(t *testing.T) {
		_, err := client.Put(ctx, clientcli.PutOptions{Name: "dir/file.txt", Text: "nested"})
		require.NoError(t, err)

		got, err := client.Get(ctx, "DIR/File.txt")
		require.NoError(t, err)
		assert.Equal(t, "nested", got.Value)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := client.Get(ctx, "never-written")
		assert.ErrorIs(t, err, clientcli.ErrNotFound)
	})

	t.Run("malformed b64", func(t *testing.T) {
		_, err := client.Put(ctx, clientcli.PutOptions{Name: "bad", B64: "@@@"})
		assert.ErrorIs(t, err, clientcli.ErrServer)

		_, err = client.Get(ctx, "bad")
		assert.ErrorIs(t, err, clientcli.ErrNotFound)
	})
}

func TestClient_Validation(t *testing.T) {
	client := newClient(t, "http://127.0.0.1:1", "abc123")
	ctx := context.Background()

	t.Run("empty name", func(t *testing.T) {
		_, err := client.Get(ctx, "/")
		assert.ErrorIs(t, err, clientcli.ErrEmptyName)
	})

	t.Run("reserved name", func(t *testing.T) {
		_, err := client.Get(ctx, "Config")
		assert.ErrorIs(t, err, clientcli.ErrReservedName)

		_, err = client.Put(ctx, clientcli.PutOptions{Name: "config/update.sh", Text: "x"})
		assert.ErrorIs(t, err, clientcli.ErrReservedName)
	})

	t.Run("token name", func(t *testing.T) {
		_, err := client.Get(ctx, "ABC123")
		assert.ErrorIs(t, err, clientcli.ErrReservedName)
	})

	t.Run("empty payload", func(t *testing.T) {
		_, err := client.Put(ctx, clientcli.PutOptions{Name: "notes"})
		assert.ErrorIs(t, err, clientcli.ErrEmptyPayload)
	})
}

func TestClient_Unauthorized(t *testing.T) {
	server := newServer(t, "abc123")
	client := newClient(t, server.URL, "wrong")
	ctx := context.Background()

	_, err := client.Get(ctx, "notes")
	assert.ErrorIs(t, err, clientcli.ErrUnauthorized)

	_, err = client.Put(ctx, clientcli.PutOptions{Name: "notes", Text: "x"})
	assert.ErrorIs(t, err, clientcli.ErrUnauthorized)

	var apiErr *clientcli.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid token", apiErr.Body)
}

func TestClient_Script(t *testing.T) {
	server := newServer(t, "abc123")
	client := newClient(t, server.URL, "abc123")
	ctx := context.Background()

	t.Run("shell", func(t *testing.T) {
		script, err := client.Script(ctx, text2kv.RouteScriptSh)
		require.NoError(t, err)
		assert.Equal(t, "update.sh", script.FileName)
		assert.Contains(t, script.Content, `TOKEN="abc123"`)
		assert.Equal(t, len(script.Content), script.Size)
	})

	t.Run("batch", func(t *testing.T) {
		script, err := client.Script(ctx, text2kv.RouteScriptBat)
		require.NoError(t, err)
		assert.Equal(t, "update.bat", script.FileName)
		assert.Contains(t, script.Content, `set "TOKEN=abc123"`)
	})

	t.Run("unsupported kind", func(t *testing.T) {
		_, err := client.Script(ctx, text2kv.RouteObject)
		assert.Error(t, err)
	})
}

func TestClient_ConfigPage(t *testing.T) {
	server := newServer(t, "abc123")
	client := newClient(t, server.URL, "abc123")

	page, err := client.ConfigPage(context.Background())
	require.NoError(t, err)
	assert.Contains(t, page, "<html")
	assert.Contains(t, page, "abc123")
}

func TestAPIError(t *testing.T) {
	err := &clientcli.APIError{StatusCode: http.StatusNotFound, Body: "File not found"}
	assert.Equal(t, "server error: 404 - File not found", err.Error())
	assert.True(t, err.IsNotFound())
	assert.ErrorIs(t, err, clientcli.ErrNotFound)
	assert.NotErrorIs(t, err, clientcli.ErrUnauthorized)
}
