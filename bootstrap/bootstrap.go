// Package bootstrap renders the operator-facing views served on reserved
// paths: the HTML config page and the two updater scripts. Every view is a
// pure function of the public scheme, the domain, and the effective token.
package bootstrap

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/sagarc03/text2kv"
)

// MaxScriptLines is how many lines of a file the updater scripts upload.
const MaxScriptLines = 65

// DefaultScheme is used when a Generator has no scheme set.
const DefaultScheme = "https"

// Generator renders bootstrap views.
type Generator struct {
	Scheme string
}

// New returns a Generator that builds links with scheme.
func New(scheme string) *Generator {
	if scheme == "" {
		scheme = DefaultScheme
	}
	return &Generator{Scheme: scheme}
}

type view struct {
	Scheme    string
	Domain    string
	Token     string
	Lines     int
	BatPath   string
	ShPath    string
	BatScript string
	ShScript  string
}

func (g *Generator) view(domain, token string) view {
	scheme := g.Scheme
	if scheme == "" {
		scheme = DefaultScheme
	}
	return view{
		Scheme:    scheme,
		Domain:    domain,
		Token:     token,
		Lines:     MaxScriptLines,
		BatPath:   text2kv.PathScriptBat,
		ShPath:    text2kv.PathScriptSh,
		BatScript: scriptFileName(text2kv.PathScriptBat),
		ShScript:  scriptFileName(text2kv.PathScriptSh),
	}
}

// ConfigPage renders the HTML config view.
func (g *Generator) ConfigPage(domain, token string) (string, error) {
	var buf bytes.Buffer
	if err := configPageTemplate.Execute(&buf, g.view(domain, token)); err != nil {
		return "", fmt.Errorf("render config page: %w", err)
	}
	return buf.String(), nil
}

// BatScript renders the Windows updater. Lines are CRLF-terminated.
func (g *Generator) BatScript(domain, token string) (string, error) {
	var buf bytes.Buffer
	if err := batTemplate.Execute(&buf, g.view(domain, token)); err != nil {
		return "", fmt.Errorf("render bat script: %w", err)
	}
	return strings.ReplaceAll(buf.String(), "\n", "\r\n"), nil
}

// ShScript renders the POSIX shell updater.
func (g *Generator) ShScript(domain, token string) (string, error) {
	var buf bytes.Buffer
	if err := shTemplate.Execute(&buf, g.view(domain, token)); err != nil {
		return "", fmt.Errorf("render sh script: %w", err)
	}
	return buf.String(), nil
}

// ScriptFileName returns the attachment file name for a script route.
func ScriptFileName(kind text2kv.RouteKind) string {
	switch kind {
	case text2kv.RouteScriptBat:
		return scriptFileName(text2kv.PathScriptBat)
	case text2kv.RouteScriptSh:
		return scriptFileName(text2kv.PathScriptSh)
	default:
		return ""
	}
}

func scriptFileName(path string) string {
	return path[strings.LastIndex(path, "/")+1:]
}

var batTemplate = texttemplate.Must(texttemplate.New("bat").Parse(`@echo off
chcp 65001
setlocal

set "DOMAIN={{.Domain}}"
set "TOKEN={{.Token}}"

set "FILENAME=%~nx1"

for /f "delims=" %%i in ('powershell -command "$content = ((Get-Content -Path '%cd%/%FILENAME%' -Encoding UTF8) | Select-Object -First {{.Lines}}) -join [Environment]::NewLine; [convert]::ToBase64String([System.Text.Encoding]::UTF8.GetBytes($content))"') do set "BASE64_TEXT=%%i"

set "URL={{.Scheme}}://%DOMAIN%/%FILENAME%?token=%TOKEN%^&b64=%BASE64_TEXT%"

start %URL%
endlocal

echo Update finished, closing in 5 seconds...
timeout /t 5 >nul
exit`))

var shTemplate = texttemplate.Must(texttemplate.New("sh").Parse(`#!/bin/bash
export LANG=C.UTF-8
DOMAIN="{{.Domain}}"
TOKEN="{{.Token}}"
if [ -n "$1" ]; then
  FILENAME="$1"
else
  echo "missing file name"
  exit 1
fi
BASE64_TEXT=$(head -n {{.Lines}} "$FILENAME" | base64 -w 0)
curl -k "{{.Scheme}}://${DOMAIN}/${FILENAME}?token=${TOKEN}&b64=${BASE64_TEXT}"
echo "Update finished"
`))

var configPageTemplate = htmltemplate.Must(htmltemplate.New("config").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>TEXT2KV configuration</title>
    <style>
        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; padding: 15px; max-width: 800px; margin: 0 auto; }
        h1 { text-align: center; }
        pre, code { border-radius: 8px; overflow-x: auto; white-space: nowrap; }
        button { cursor: pointer; padding: 10px 15px; margin-top: 10px; border: none; border-radius: 5px; }
        input[type="text"] { width: calc(100% - 25px); padding: 10px; border-radius: 5px; margin-bottom: 10px; }
        .container { padding: 15px; border-radius: 10px; box-shadow: 0 0 10px rgba(0, 0, 0, 0.1); }
        body.light { background-color: #f0f0f0; color: #333; }
        body.dark { background-color: #1e1e1e; color: #c9d1d9; }
        .container.light { background-color: #fff; }
        .container.dark { background-color: #2d2d2d; }
        button.light { background-color: #007bff; color: #fff; }
        button.dark { background-color: #1f6feb; color: #c9d1d9; }
    </style>
    <script>
        document.addEventListener('DOMContentLoaded', () => {
            const theme = window.matchMedia('(prefers-color-scheme: dark)').matches ? 'dark' : 'light';
            document.body.classList.add(theme);
            document.querySelectorAll('button, .container').forEach(el => el.classList.add(theme));
        });
    </script>
</head>
<body>
    <h1>TEXT2KV configuration</h1>
    <div class="container">
        <p>
            <strong>Domain:</strong> {{.Domain}}<br>
            <strong>TOKEN:</strong> {{.Token}}<br>
        </p>
        <p><strong>Note:</strong> payloads travel in the URL, so the scripts upload at most {{.Lines}} lines per run.</p>
        <h2>Windows script</h2>
        <button onclick="window.open({{.Scheme}} + '://' + {{.Domain}} + '/{{.BatPath}}?token=' + encodeURIComponent({{.Token}}) + '&t=' + Date.now(), '_blank')">Download</button>
        <pre><code>{{.BatScript}} ip.txt</code></pre>
        <h2>Linux script</h2>
        <pre><code>curl "{{.Scheme}}://{{.Domain}}/{{.ShPath}}?token={{.Token}}&t=$(date +%s%N)" -o {{.ShScript}} &amp;&amp; chmod +x {{.ShScript}}</code></pre>
        <h2>Look up a document</h2>
        <input type="text" id="keyword" placeholder="Document name">
        <button onclick="viewDocument()">View document</button>
        <button onclick="copyDocumentURL()">Copy document URL</button>
    </div>
    <script>
        function documentURL() {
            const keyword = document.getElementById('keyword').value;
            return {{.Scheme}} + '://' + {{.Domain}} + '/' + keyword + '?token=' + encodeURIComponent({{.Token}}) + '&t=' + Date.now();
        }

        function viewDocument() {
            window.open(documentURL(), '_blank');
        }

        function copyDocumentURL() {
            navigator.clipboard.writeText(documentURL()).then(() => alert('Document URL copied to clipboard'));
        }
    </script>
</body>
</html>
`))
