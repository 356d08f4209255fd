// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/dotandev/soroban-invoker/internal/config"
	"github.com/dotandev/soroban-invoker/internal/deploy"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	deployWasm         string
	deploySource       string
	deployBinary       string
	deployOutput       string
	deployIgnoreChecks bool
)

// deployCmd represents the deploy command
var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy a contract wasm with the stellar CLI",
	Long: `Deploy a contract wasm by running 'stellar contract deploy' and store the
new contract id in the output file. Use the printed id as SMART_CONTRACT.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dotenv, err := config.ReadEnvFile(envFile)
		if err != nil {
			return err
		}
		source := deploySource
		if source == "" {
			source, _ = config.EnvLookup(dotenv)(config.EnvSignerSecret)
		}
		if source == "" {
			return errors.Errorf("no source account, pass --source-account or set %s", config.EnvSignerSecret)
		}

		deployer := deploy.NewDeployer(deployBinary, nil, logger)
		id, err := deployer.Deploy(cmd.Context(), deploy.Request{
			SourceAccount: source,
			Network:       orDefault(networkName, config.NetworkTestnet),
			WasmPath:      deployWasm,
			IgnoreChecks:  deployIgnoreChecks,
			OutputPath:    deployOutput,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deployCmd)

	deployCmd.Flags().StringVarP(&deployWasm, "wasm", "w", "target/wasm32-unknown-unknown/release/marketplace.wasm", "Contract wasm to deploy")
	deployCmd.Flags().StringVar(&deploySource, "source-account", "", "Secret seed or CLI identity paying for the deploy, defaults to ADMIN_SECRET_KEY")
	deployCmd.Flags().StringVar(&deployBinary, "binary", deploy.DefaultBinary, "CLI to run, 'stellar' or 'soroban'")
	deployCmd.Flags().StringVarP(&deployOutput, "output", "o", deploy.DefaultOutputPath, "Where to write the deploy output")
	deployCmd.Flags().BoolVar(&deployIgnoreChecks, "ignore-checks", true, "Pass --ignore-checks to the CLI")
}
