// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"time"

	"github.com/dotandev/soroban-invoker/internal/journal"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent submissions from the journal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfiguration()
		if err != nil {
			return err
		}
		if cfg.JournalPath == "" {
			return errors.New("no journal configured, set journal_path or --journal")
		}
		j, err := journal.Open(expandHomeDir(cfg.JournalPath))
		if err != nil {
			return err
		}
		defer j.Close()

		entries, err := j.Recent(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, e := range entries {
			fmt.Fprintf(out, "%s  %-18s %-20s fee=%-8d ledger=%-8d %s\n",
				e.CreatedAt.Format(time.RFC3339), e.Function, e.Outcome, e.FeeCharged, e.Ledger, e.Hash)
			if e.Detail != "" {
				fmt.Fprintf(out, "    %s\n", e.Detail)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "How many submissions to show")
}
