package bootstrap_test

import (
	"strings"
	"testing"

	"github.com/sagarc03/text2kv"
	"github.com/sagarc03/text2kv/bootstrap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_BatScript(t *testing.T) {
	script, err := bootstrap.New("https").BatScript("kv.example.com", "abc123")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(script, "@echo off\r\nchcp 65001\r\n"))
	assert.NotContains(t, strings.ReplaceAll(script, "\r\n", ""), "\n", "every line ends with CRLF")
	assert.Contains(t, script, `set "DOMAIN=kv.example.com"`)
	assert.Contains(t, script, `set "TOKEN=abc123"`)
	assert.Contains(t, script, "Select-Object -First 65")
	assert.Contains(t, script, `set "URL=https://%DOMAIN%/%FILENAME%?token=%TOKEN%^&b64=%BASE64_TEXT%"`)
}

func TestGenerator_ShScript(t *testing.T) {
	script, err := bootstrap.New("http").ShScript("localhost:5708", "abc123")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(script, "#!/bin/bash\n"))
	assert.NotContains(t, script, "\r")
	assert.Contains(t, script, `DOMAIN="localhost:5708"`)
	assert.Contains(t, script, `TOKEN="abc123"`)
	assert.Contains(t, script, `head -n 65 "$FILENAME" | base64 -w 0`)
	assert.Contains(t, script, `curl -k "http://${DOMAIN}/${FILENAME}?token=${TOKEN}&b64=${BASE64_TEXT}"`)
}

func TestGenerator_ConfigPage(t *testing.T) {
	t.Run("renders domain, token, and script links", func(t *testing.T) {
		page, err := bootstrap.New("https").ConfigPage("kv.example.com", "abc123")
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
		assert.Contains(t, page, "<strong>Domain:</strong> kv.example.com")
		assert.Contains(t, page, "<strong>TOKEN:</strong> abc123")
		assert.Contains(t, page, `curl "https://kv.example.com/config/update.sh?token=abc123`)
		assert.Contains(t, page, "update.bat ip.txt")
		assert.Contains(t, page, "at most 65 lines")
	})

	t.Run("escapes markup in the domain", func(t *testing.T) {
		page, err := bootstrap.New("https").ConfigPage("<b>evil</b>", "abc123")
		require.NoError(t, err)

		assert.NotContains(t, page, "<b>evil</b>")
		assert.Contains(t, page, "&lt;b&gt;evil&lt;/b&gt;")
	})
}

func TestNew_DefaultScheme(t *testing.T) {
	gen := bootstrap.New("")
	assert.Equal(t, bootstrap.DefaultScheme, gen.Scheme)

	script, err := (&bootstrap.Generator{}).ShScript("kv.example.com", "t")
	require.NoError(t, err)
	assert.Contains(t, script, `curl -k "https://`)
}

func TestScriptFileName(t *testing.T) {
	assert.Equal(t, "update.bat", bootstrap.ScriptFileName(text2kv.RouteScriptBat))
	assert.Equal(t, "update.sh", bootstrap.ScriptFileName(text2kv.RouteScriptSh))
	assert.Empty(t, bootstrap.ScriptFileName(text2kv.RouteObject))
}
