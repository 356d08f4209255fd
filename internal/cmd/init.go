// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/dotandev/soroban-invoker/internal/config"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a configuration directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info().Str("configuration_directory", configurationDirectory).Msg("initializing invoker configuration directory")

		configLoader, err := config.NewConfigurationLoader(configurationDirectory, logger)
		if err != nil {
			return err
		}
		return configLoader.Initialize()
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
