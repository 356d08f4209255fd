// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

// Package deploy uploads a contract binary by driving the stellar CLI.
package deploy

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/dotandev/soroban-invoker/internal/log"
	"github.com/pkg/errors"
	"github.com/stellar/go/strkey"
)

const (
	DefaultBinary     = "stellar"
	DefaultOutputPath = "marketplace.wasm.txt"

	maxDeployTime = 5 * time.Minute
)

// Runner executes a command and returns what it wrote to stdout and stderr.
type Runner func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

type Request struct {
	// SourceAccount is a secret seed or an identity known to the CLI.
	SourceAccount string
	Network       string
	WasmPath      string
	IgnoreChecks  bool
	// OutputPath receives the CLI output. Empty skips writing it.
	OutputPath string
}

type Deployer struct {
	binary string
	run    Runner
	log    *log.Logger
}

// NewDeployer drives binary ("stellar", or the older "soroban"). A nil
// runner executes the real process.
func NewDeployer(binary string, run Runner, logger *log.Logger) *Deployer {
	if binary == "" {
		binary = DefaultBinary
	}
	if run == nil {
		run = execRunner
	}
	return &Deployer{binary: binary, run: run, log: logger.ApplyPrefix(" [deploy]")}
}

func (r Request) args() []string {
	args := []string{
		"contract", "deploy",
		"--source-account", r.SourceAccount,
		"--network", r.Network,
		"--wasm", r.WasmPath,
	}
	if r.IgnoreChecks {
		args = append(args, "--ignore-checks")
	}
	return args
}

// Deploy returns the id of the new contract.
func (d *Deployer) Deploy(ctx context.Context, req Request) (string, error) {
	if req.SourceAccount == "" || req.Network == "" {
		return "", errors.New("source account and network are required")
	}
	if _, err := os.Stat(req.WasmPath); err != nil {
		return "", errors.Wrap(err, "contract wasm")
	}

	ctx, cancel := context.WithTimeout(ctx, maxDeployTime)
	defer cancel()

	d.log.Info().Str("wasm", req.WasmPath).Str("network", req.Network).Msg("deploying contract")
	stdout, stderr, err := d.run(ctx, d.binary, req.args()...)
	if err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			errs := strings.ReplaceAll(strings.TrimSpace(string(stderr)), "\n", "; ")
			return "", errors.Errorf("error deploying contract: %s", errs)
		}
		return "", errors.Wrapf(err, "error running %s", d.binary)
	}

	contractID, err := ContractIDFromOutput(stdout)
	if err != nil {
		return "", err
	}
	if req.OutputPath != "" {
		if err := os.WriteFile(req.OutputPath, stdout, 0o644); err != nil {
			return "", errors.Wrap(err, "writing deploy output")
		}
	}
	d.log.Info().Str("contract_id", contractID).Msg("contract deployed")
	return contractID, nil
}

// ContractIDFromOutput picks the contract id, the last non-empty line the
// CLI prints.
func ContractIDFromOutput(out []byte) (string, error) {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if _, err := strkey.Decode(strkey.VersionByteContract, last); err != nil {
		return "", errors.Errorf("no contract id in deploy output %q", last)
	}
	return last, nil
}
