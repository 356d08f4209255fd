// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package deploy

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/dotandev/soroban-invoker/internal/log"
	"github.com/pkg/errors"
	"github.com/stellar/go/strkey"
	"github.com/stretchr/testify/require"
)

func contractID(t *testing.T) string {
	raw := make([]byte, 32)
	raw[0] = 1
	id, err := strkey.Encode(strkey.VersionByteContract, raw)
	require.NoError(t, err)
	return id
}

func writeWasm(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "marketplace.wasm")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0x61, 0x73, 0x6d}, 0o600))
	return path
}

func TestDeployWritesOutput(t *testing.T) {
	id := contractID(t)
	var gotName string
	var gotArgs []string
	run := func(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
		gotName, gotArgs = name, args
		return []byte("ℹ️ Simulating install transaction…\n" + id + "\n"), nil, nil
	}
	wasm := writeWasm(t)
	out := filepath.Join(t.TempDir(), DefaultOutputPath)

	deployer := NewDeployer("soroban", run, log.NewNopLogger())
	got, err := deployer.Deploy(context.Background(), Request{
		SourceAccount: "SSECRET",
		Network:       "testnet",
		WasmPath:      wasm,
		IgnoreChecks:  true,
		OutputPath:    out,
	})
	require.NoError(t, err)
	require.Equal(t, id, got)

	require.Equal(t, "soroban", gotName)
	require.Equal(t, []string{
		"contract", "deploy", "--source-account", "SSECRET", "--network", "testnet", "--wasm", wasm, "--ignore-checks",
	}, gotArgs)

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(written), id)
}

func TestDeployReportsCliFailure(t *testing.T) {
	run := func(context.Context, string, ...string) ([]byte, []byte, error) {
		return nil, []byte("error: account not found\nhint: fund it\n"), &exec.ExitError{}
	}
	deployer := NewDeployer("", run, log.NewNopLogger())
	_, err := deployer.Deploy(context.Background(), Request{SourceAccount: "alice", Network: "testnet", WasmPath: writeWasm(t)})
	require.Error(t, err)
	require.Contains(t, err.Error(), "account not found; hint: fund it")

	run = func(context.Context, string, ...string) ([]byte, []byte, error) {
		return nil, nil, errors.New("executable file not found in $PATH")
	}
	deployer = NewDeployer("", run, log.NewNopLogger())
	_, err = deployer.Deploy(context.Background(), Request{SourceAccount: "alice", Network: "testnet", WasmPath: writeWasm(t)})
	require.ErrorContains(t, err, "error running stellar")
}

func TestDeployValidatesRequest(t *testing.T) {
	called := false
	run := func(context.Context, string, ...string) ([]byte, []byte, error) {
		called = true
		return nil, nil, nil
	}
	deployer := NewDeployer("", run, log.NewNopLogger())

	_, err := deployer.Deploy(context.Background(), Request{Network: "testnet", WasmPath: writeWasm(t)})
	require.Error(t, err)
	_, err = deployer.Deploy(context.Background(), Request{SourceAccount: "alice", Network: "testnet", WasmPath: "/does/not/exist.wasm"})
	require.Error(t, err)
	require.False(t, called)
}

func TestContractIDFromOutput(t *testing.T) {
	id := contractID(t)
	got, err := ContractIDFromOutput([]byte("\n" + id + "\n\n"))
	require.NoError(t, err)
	require.Equal(t, id, got)

	_, err = ContractIDFromOutput([]byte("something went wrong"))
	require.Error(t, err)
	_, err = ContractIDFromOutput(nil)
	require.Error(t, err)
}
