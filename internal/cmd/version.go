// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Binary name
const (
	binaryName = "invoker"
	binaryIcon = "🚀"
)

// Set with -ldflags at build time.
var (
	InvokerVersion = "dev"
	GitRevision    string
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the current version of invoker",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  %s:\n", binaryIcon, binaryName)
		fmt.Fprintf(out, "  - Version: %s\n", InvokerVersion)
		fmt.Fprintf(out, "  - Git Revision: %s\n", GitRevision)
		fmt.Fprintf(out, "  - Go Version: %s\n", runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
