package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sagarc03/text2kv/clientcli"
	"github.com/spf13/cobra"
)

var (
	version = "dev"

	cfgFile    string
	profile    string
	server     string
	token      string
	jsonOutput bool
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:     "text2kv-cli",
	Version: version,
	Short:   "Client for text2kv servers",
	Long: `text2kv CLI - Client for text2kv text object servers

Connection settings are resolved from, in increasing precedence:
  - the selected profile in ~/.text2kv/config.yaml
  - TEXT2KV_SERVER and TEXT2KV_TOKEN
  - the --server and --token flags`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.text2kv/config.yaml, env: TEXT2KV_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "profile name (env: TEXT2KV_PROFILE)")
	rootCmd.PersistentFlags().StringVarP(&server, "server", "s", "", "server URL (default: http://localhost:5708, env: TEXT2KV_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&token, "token", "t", "", "access token (env: TEXT2KV_TOKEN)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(putCmd)
	rootCmd.AddCommand(scriptCmd)
	rootCmd.AddCommand(configureCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		_ = getFormatter().FormatError(os.Stderr, err)
		os.Exit(1)
	}
}

// getConfigPath returns the config file path from the flag, the env or the default.
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if p := clientcli.ConfigPathFromEnv(); p != "" {
		return p
	}
	return clientcli.DefaultConfigPath()
}

// buildConfig merges config from the profile file, env vars, and flags (flags take precedence).
func buildConfig() (*clientcli.Config, error) {
	var configs []*clientcli.Config

	profileName := profile
	if profileName == "" {
		profileName = clientcli.ProfileFromEnv()
	}

	configPath := getConfigPath()
	if configPath != "" {
		fileCfg, err := clientcli.LoadConfigFile(configPath)
		switch {
		case err == nil:
			p, profileErr := fileCfg.GetProfile(profileName)
			switch {
			case profileErr == nil:
				configs = append(configs, clientcli.ConfigFromProfile(p))
			case profileName != "":
				return nil, profileErr
			}
		case cfgFile != "" || profileName != "":
			// Only error if the user asked for this file or a profile in it
			return nil, err
		case !errors.Is(err, os.ErrNotExist):
			return nil, err
		}
	}

	configs = append(configs,
		clientcli.ConfigFromEnv(),
		&clientcli.Config{Server: server, Token: token},
	)

	return clientcli.MergeConfig(configs...), nil
}

// getFormatter returns the appropriate formatter based on flags.
func getFormatter() clientcli.Formatter {
	return clientcli.NewFormatter(jsonOutput, quiet)
}

// getClient creates a configured client. Every server route needs the token.
func getClient() (*clientcli.Client, error) {
	cfg, err := buildConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateWithAuth(); err != nil {
		return nil, fmt.Errorf("%w: set --token, TEXT2KV_TOKEN or run 'text2kv-cli configure add'", err)
	}
	return clientcli.New(cfg)
}

// writeFile writes content to path, or to w when path is "-".
func writeFile(w io.Writer, path, content string) error {
	if path == "-" {
		_, err := io.WriteString(w, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
