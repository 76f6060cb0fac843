package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sagarc03/text2kv/clientcli"
	"github.com/spf13/cobra"
)

var (
	putText string
	putB64  string
)

var putCmd = &cobra.Command{
	Use:   "put <name> [file]",
	Short: "Write an object",
	Long: `Write text under a name, replacing any previous value.

The payload comes from --text, --b64, a file argument, or stdin when the
file is "-". Files and stdin are sent base64 encoded so newlines and
reserved URL characters survive the query string.

Examples:
  text2kv-cli put notes --text "hello"
  text2kv-cli put notes ./notes.txt
  cat notes.txt | text2kv-cli put notes -`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPut,
}

func init() {
	putCmd.Flags().StringVar(&putText, "text", "", "literal text payload")
	putCmd.Flags().StringVar(&putB64, "b64", "", "base64 encoded payload")
	putCmd.MarkFlagsMutuallyExclusive("text", "b64")
}

func runPut(cmd *cobra.Command, args []string) error {
	opts := clientcli.PutOptions{Name: args[0], Text: putText, B64: putB64}

	if len(args) > 1 {
		if opts.Text != "" || opts.B64 != "" {
			return errors.New("file argument cannot be combined with --text or --b64")
		}
		content, err := readPayload(args[1])
		if err != nil {
			return err
		}
		opts.B64 = base64.StdEncoding.EncodeToString(content)
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	result, err := client.Put(cmd.Context(), opts)
	if err != nil {
		return err
	}

	return getFormatter().FormatPut(os.Stdout, result)
}

func readPayload(path string) ([]byte, error) {
	if path == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return content, nil
	}
	content, err := os.ReadFile(path) //#nosec G304 -- path is user-provided input
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return content, nil
}
