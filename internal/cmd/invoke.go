// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dotandev/soroban-invoker/internal/scval"
	"github.com/dotandev/soroban-invoker/internal/submitter"
	"github.com/spf13/cobra"
)

var invokeArgs []string

// invokeCmd represents the invoke command
var invokeCmd = &cobra.Command{
	Use:   "invoke <function>",
	Short: "Invoke any contract function",
	Long: `Invoke any contract function with typed arguments, e.g.

  invoker invoke get_product --arg u32:1
  invoker invoke create_product --arg string:"Product 1" --arg i128:1000

Argument types: string, symbol, bool, u32, i32, u64, i64, u128, i128, address.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parsed, err := scval.ParseAll(invokeArgs)
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, s *session) error {
			_, err := s.Submit(ctx, submitter.Invocation{
				ContractID: s.cfg.ContractID,
				Function:   args[0],
				Args:       parsed,
			})
			return err
		})
	},
}

// withSession opens a session for the duration of fn. Interrupts cancel the
// context, which stops any wait for confirmation.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}
	s, err := openSession(ctx, cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer s.Close()

	logger.Info().Str("signer", s.Address()).Str("contract", cfg.ContractID).Msg("session ready")
	return fn(ctx, s)
}

func init() {
	rootCmd.AddCommand(invokeCmd)

	invokeCmd.Flags().StringArrayVarP(&invokeArgs, "arg", "a", nil, "Typed argument as type:value, repeatable and ordered")
}
