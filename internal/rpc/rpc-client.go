// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package rpc

import (
	"context"

	"github.com/dotandev/soroban-invoker/internal/simulator"
)

// Client is the subset of the Soroban RPC API the invoker needs.
type Client interface {
	GetHealth(ctx context.Context) (*HealthResponse, error)
	GetNetwork(ctx context.Context) (*NetworkResponse, error)
	GetVersionInfo(ctx context.Context) (*VersionInfoResponse, error)

	// GetAccount returns ErrAccountNotFound when the ledger has no such account.
	GetAccount(ctx context.Context, address string) (*AccountData, error)

	// SimulateTransaction takes an optional resource config; nil uses the
	// server defaults.
	SimulateTransaction(ctx context.Context, txEnvelope string, resources *simulator.ResourceConfig) (*simulator.SimulationResponse, error)
	// SendTransaction is never retried by the client.
	SendTransaction(ctx context.Context, txEnvelope string) (*SendTransactionResponse, error)
	GetTransaction(ctx context.Context, hash string) (*GetTransactionResponse, error)
}
