// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0


package main

import (
	"fmt"
	"os"

	"github.com/dotandev/soroban-invoker/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
