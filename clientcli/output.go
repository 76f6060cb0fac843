package clientcli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter formats results for output.
type Formatter interface {
	FormatGet(w io.Writer, result *GetResult) error
	FormatPut(w io.Writer, result *PutResult) error
	FormatScript(w io.Writer, result *ScriptResult) error
	FormatError(w io.Writer, err error) error
	FormatProfileList(w io.Writer, profiles []Profile, defaultName string, showSecrets bool) error
	FormatProfileShow(w io.Writer, profile Profile, isDefault, showSecrets bool) error
}

// NewFormatter returns the appropriate formatter based on flags.
func NewFormatter(jsonOutput, quiet bool) Formatter {
	if jsonOutput {
		return &JSONFormatter{}
	}
	return &HumanFormatter{Quiet: quiet}
}

// HumanFormatter outputs human-readable text.
type HumanFormatter struct {
	Quiet bool
}

// FormatGet writes the value verbatim so it can be piped.
func (f *HumanFormatter) FormatGet(w io.Writer, result *GetResult) error {
	_, err := io.WriteString(w, result.Value)
	return err
}

// FormatPut formats a write result as human-readable text.
func (f *HumanFormatter) FormatPut(w io.Writer, result *PutResult) error {
	if !f.Quiet {
		_, _ = fmt.Fprintf(w, "Written: %s (%s)\n", result.Name, formatSize(int64(result.Size)))
	}
	return nil
}

// FormatScript formats a script download as human-readable text.
func (f *HumanFormatter) FormatScript(w io.Writer, result *ScriptResult) error {
	if f.Quiet {
		return nil
	}
	if result.LocalPath == "" || result.LocalPath == "-" {
		_, _ = fmt.Fprintf(w, "Downloaded: %s (%s)\n", result.FileName, formatSize(int64(result.Size)))
		return nil
	}
	_, _ = fmt.Fprintf(w, "Downloaded: %s -> %s (%s)\n", result.FileName, result.LocalPath, formatSize(int64(result.Size)))
	return nil
}

// FormatError formats an error as human-readable text.
func (f *HumanFormatter) FormatError(w io.Writer, err error) error {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	return nil
}

// FormatProfileList formats a list of profiles as human-readable text.
func (f *HumanFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string, showSecrets bool) error {
	maxNameLen := 4   // "NAME"
	maxServerLen := 6 // "SERVER"
	for i := range profiles {
		maxNameLen = max(maxNameLen, len(profiles[i].Name))
		maxServerLen = max(maxServerLen, len(profiles[i].Server))
	}
	maxNameLen = min(maxNameLen, 20)
	maxServerLen = min(maxServerLen, 50)

	_, _ = fmt.Fprintf(w, "  %-*s  %-*s  %s\n", maxNameLen, "NAME", maxServerLen, "SERVER", "TOKEN")
	_, _ = fmt.Fprintf(w, "  %s  %s  %s\n", strings.Repeat("-", maxNameLen), strings.Repeat("-", maxServerLen), strings.Repeat("-", 20))

	for i := range profiles {
		p := &profiles[i]
		marker := " "
		if p.Name == defaultName {
			marker = "*"
		}

		_, _ = fmt.Fprintf(w, "%s %-*s  %-*s  %s\n",
			marker,
			maxNameLen, truncate(p.Name, maxNameLen),
			maxServerLen, truncate(p.Server, maxServerLen),
			maskSecret(p.Token, showSecrets),
		)
	}

	return nil
}

// FormatProfileShow formats a single profile as human-readable text.
func (f *HumanFormatter) FormatProfileShow(w io.Writer, profile Profile, isDefault, showSecrets bool) error {
	_, _ = fmt.Fprintf(w, "Name:   %s", profile.Name)
	if isDefault {
		_, _ = fmt.Fprintf(w, " (default)")
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Server: %s\n", profile.Server)
	_, _ = fmt.Fprintf(w, "Token:  %s\n", maskSecret(profile.Token, showSecrets))
	return nil
}

// JSONFormatter outputs JSON.
type JSONFormatter struct{}

// FormatGet formats a read result as JSON.
func (f *JSONFormatter) FormatGet(w io.Writer, result *GetResult) error {
	return writeJSON(w, result)
}

// FormatPut formats a write result as JSON.
func (f *JSONFormatter) FormatPut(w io.Writer, result *PutResult) error {
	return writeJSON(w, result)
}

// FormatScript formats a script download as JSON.
func (f *JSONFormatter) FormatScript(w io.Writer, result *ScriptResult) error {
	return writeJSON(w, result)
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(w io.Writer, err error) error {
	output := struct {
		Error string `json:"error"`
	}{
		Error: err.Error(),
	}
	return writeJSON(w, output)
}

// FormatProfileList formats a list of profiles as JSON.
func (f *JSONFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string, showSecrets bool) error {
	type jsonProfile struct {
		Name    string `json:"name"`
		Server  string `json:"server"`
		Token   string `json:"token"`
		Default bool   `json:"default,omitempty"`
	}

	output := struct {
		Profiles []jsonProfile `json:"profiles"`
	}{
		Profiles: make([]jsonProfile, len(profiles)),
	}

	for i := range profiles {
		p := &profiles[i]
		output.Profiles[i] = jsonProfile{
			Name:    p.Name,
			Server:  p.Server,
			Token:   maskSecret(p.Token, showSecrets),
			Default: p.Name == defaultName,
		}
	}

	return writeJSON(w, output)
}

// FormatProfileShow formats a single profile as JSON.
func (f *JSONFormatter) FormatProfileShow(w io.Writer, profile Profile, isDefault, showSecrets bool) error {
	output := struct {
		Name    string `json:"name"`
		Server  string `json:"server"`
		Token   string `json:"token"`
		Default bool   `json:"default"`
	}{
		Name:    profile.Name,
		Server:  profile.Server,
		Token:   maskSecret(profile.Token, showSecrets),
		Default: isDefault,
	}

	return writeJSON(w, output)
}

// writeJSON writes a value as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatSize formats bytes as human-readable size.
func formatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
	)

	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// maskSecret masks a secret string, showing only first 4 and last 4 characters.
// If showSecrets is true, returns the original value.
// If the secret is too short, returns all asterisks.
func maskSecret(secret string, showSecrets bool) string {
	if showSecrets {
		return secret
	}
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 8 {
		return "********"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
