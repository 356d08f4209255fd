// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dotandev/soroban-invoker/internal/log"
	"github.com/spf13/cobra"
)

var (
	rawLogLevel string
	logger      *log.Logger

	configurationDirectory string
	envFile                string

	// Overrides for values from the configuration file and environment.
	rpcURL      string
	contractID  string
	networkName string
	journalPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "invoker",
	Short: "Invoke functions on a deployed Soroban contract.",
	Long: `Invoker builds, simulates, signs and submits Soroban contract invocations
and waits for the network to confirm them.

Configuration is read from <config-directory>/invoker.yml, then .env, then the
environment (RPC_URL, SMART_CONTRACT, ADMIN_SECRET_KEY, NETWORK_PASSPHRASE),
then flags.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = log.NewLogger(rawLogLevel)

		configurationDirectory = expandHomeDir(configurationDirectory)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func expandHomeDir(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configurationDirectory, "config-directory", "c", "~/.invoker", "Where to store invoker's configuration")
	rootCmd.PersistentFlags().StringVarP(&rawLogLevel, "log-level", "l", "info", "Logging level")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Dotenv file with RPC_URL, SMART_CONTRACT and ADMIN_SECRET_KEY")
	rootCmd.PersistentFlags().StringVar(&rpcURL, "rpc-url", "", "Soroban RPC endpoint")
	rootCmd.PersistentFlags().StringVar(&contractID, "contract", "", "Contract id (C...)")
	rootCmd.PersistentFlags().StringVarP(&networkName, "network", "n", "", "Named network: testnet, futurenet, public or standalone")
	rootCmd.PersistentFlags().StringVar(&journalPath, "journal", "", "SQLite journal of submissions")
}
