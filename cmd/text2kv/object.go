package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/text2kv"
	"github.com/sagarc03/text2kv/backend"
	"github.com/sagarc03/text2kv/config"
)

var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Print an object straight from the configured store",
	Long: `Print an object read straight from the configured store, without going
through the HTTP server. Useful for operators with access to the store.`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

var putCmd = &cobra.Command{
	Use:   "put <name> [file]",
	Short: "Write an object straight to the configured store",
	Long: `Write an object straight to the configured store and verify it.

The content comes from --text, --b64, the given file, or stdin, in that order.

Examples:
  text2kv put notes --text hello
  text2kv put notes ./notes.txt
  echo hello | text2kv put notes`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPut,
}

var (
	putText string
	putB64  string
)

func init() {
	putCmd.Flags().StringVar(&putText, "text", "", "plain-text content")
	putCmd.Flags().StringVar(&putB64, "b64", "", "base64-encoded content")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(putCmd)
}

func openService(cmd *cobra.Command) (*text2kv.TextService, func(), error) {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return nil, nil, err
	}

	store, closeStore, err := backend.Open(cmd.Context(), cfg.Backend())
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	service, err := text2kv.NewTextService(store, cfg.Service())
	if err != nil {
		closeStore()
		return nil, nil, fmt.Errorf("create service: %w", err)
	}

	return service, closeStore, nil
}

func runGet(cmd *cobra.Command, args []string) error {
	service, closeStore, err := openService(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	value, err := service.Read(cmd.Context(), text2kv.NormalizeName(args[0]))
	if errors.Is(err, text2kv.ErrNotFound) {
		return fmt.Errorf("%s: not found", args[0])
	}
	if err != nil {
		return err
	}

	_, err = io.WriteString(cmd.OutOrStdout(), value)
	return err
}

func runPut(cmd *cobra.Command, args []string) error {
	text, b64 := putText, putB64
	if text == "" && b64 == "" {
		content, err := readContent(cmd, args)
		if err != nil {
			return err
		}
		text = content
	}

	service, closeStore, err := openService(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	name := text2kv.NormalizeName(args[0])
	if _, err := service.Write(cmd.Context(), name, text, b64); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "stored %s\n", name)
	return nil
}

func readContent(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 2 {
		data, err := os.ReadFile(args[1])
		if err != nil {
			return "", fmt.Errorf("read %s: %w", args[1], err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
