// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/dotandev/soroban-invoker/internal/rpc"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the RPC endpoint: health, network and version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfiguration()
		if err != nil {
			return err
		}
		client, err := rpc.NewClient(cfg.RPCURL, cfg.RPCOptions(), logger)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		health, err := client.GetHealth(ctx)
		if err != nil {
			return errors.Wrap(err, "checking health")
		}
		fmt.Fprintf(out, "Endpoint: %s\n", cfg.RPCURL)
		fmt.Fprintf(out, "Health:   %s (ledger %d)\n", health.Status, health.LatestLedger)

		network, err := client.GetNetwork(ctx)
		if err != nil {
			return errors.Wrap(err, "reading network")
		}
		fmt.Fprintf(out, "Network:  %s (protocol %d)\n", network.Passphrase, network.ProtocolVersion)
		if network.Passphrase != cfg.NetworkPassphrase {
			return errors.Errorf("endpoint serves %q but transactions would be signed for %q", network.Passphrase, cfg.NetworkPassphrase)
		}

		v, err := rpc.CheckVersion(ctx, client, cfg.MinRPCVersion)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Version:  %s ✅\n", v)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
