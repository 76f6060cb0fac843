package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sagarc03/text2kv/backend"
	"github.com/sagarc03/text2kv/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "text2kv",
	Short:   "Token-protected text object store",
	Long: `text2kv stores small named text objects behind a single shared token.
Objects are read and written over plain HTTP query strings, which makes the
server easy to drive from scripts, browsers, and curl.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFiles, _ := cmd.Flags().GetStringSlice("config")

		cfg, err := config.Load(configFiles, cmd.Flags())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		setupLogging(cfg.Env, cfg.Log.Level)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSlice("config", nil, "config file path, repeatable (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("store", "", "store type: "+strings.Join(backend.Types, ", ")+" (env: TEXT2KV_STORE_TYPE)")
	rootCmd.PersistentFlags().String("db-dsn", "", "database connection string (default: text2kv.db, env: TEXT2KV_DATABASE_DSN)")
	rootCmd.PersistentFlags().String("storage-path", "", "storage directory path (default: ./data, env: TEXT2KV_STORAGE_PATH)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (env: TEXT2KV_LOG_LEVEL)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
