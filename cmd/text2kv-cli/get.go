package main

import (
	"os"

	"github.com/spf13/cobra"
)

var getOutput string

var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Read an object",
	Long: `Read the text stored under a name and print it.

Names are case-insensitive. Reserved names (config, config/update.bat,
config/update.sh and the token itself) are rejected.

Examples:
  text2kv-cli get notes
  text2kv-cli get notes -o notes.txt
  text2kv-cli get --json notes`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().StringVarP(&getOutput, "output", "o", "-", "output file path")
}

func runGet(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	result, err := client.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if getOutput != "-" {
		return writeFile(os.Stdout, getOutput, result.Value)
	}
	return getFormatter().FormatGet(os.Stdout, result)
}
