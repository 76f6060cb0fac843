package text2kv_test

import (
	"encoding/base64"
	"testing"

	"github.com/sagarc03/text2kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeB64(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "ascii", input: "aGVsbG8=", want: "hello"},
		{name: "utf-8", input: "5L2g5aW9", want: "你好"},
		{name: "missing padding", input: "aGVsbG8", want: "hello"},
		{name: "space restored to plus", input: "Pz8/Pj4 ", want: "???>>>"},
		{name: "line breaks ignored", input: "aGVs\r\nbG8=", want: "hello"},
		{name: "empty", input: "", want: ""},
		{name: "invalid utf-8 replaced", input: "/w==", want: "�"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := text2kv.DecodeB64(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeB64_Invalid(t *testing.T) {
	inputs := []string{
		"@@@@",
		"a",
		"aGVsbG8=extra",
		"aGVsbG8===",
		"QQ=",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := text2kv.DecodeB64(in)
			assert.ErrorIs(t, err, text2kv.ErrDecode)
		})
	}
}

func TestDecodeB64_MatchesPlainText(t *testing.T) {
	texts := []string{"hello", "multi\nline\ntext", "emoji 🚀 and + plus", "#!/bin/bash"}

	for _, text := range texts {
		encoded := base64.StdEncoding.EncodeToString([]byte(text))
		got, err := text2kv.DecodeB64(encoded)
		require.NoError(t, err)
		assert.Equal(t, text, got)
	}
}
