// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package simulator

// SimulationRequest is the params object of a simulateTransaction call
type SimulationRequest struct {
	// XDR encoded TransactionEnvelope
	Transaction string `json:"transaction"`
	// Extra instruction budget on top of the simulated usage (optional)
	ResourceConfig *ResourceConfig `json:"resourceConfig,omitempty"`
}

type ResourceConfig struct {
	InstructionLeeway uint64 `json:"instructionLeeway"`
}

// SimulationResponse is the result object of a simulateTransaction call
type SimulationResponse struct {
	Error string `json:"error,omitempty"` // set when the invocation would fail
	// XDR encoded SorobanTransactionData
	TransactionData string             `json:"transactionData,omitempty"`
	MinResourceFee  int64              `json:"minResourceFee,string,omitempty"`
	Events          []string           `json:"events,omitempty"` // Diagnostic events
	Results         []SimulationResult `json:"results,omitempty"`
	Cost            *SimulationCost    `json:"cost,omitempty"`
	LatestLedger    uint32             `json:"latestLedger"`
	// Present when archived entries must be restored first
	RestorePreamble *RestorePreamble `json:"restorePreamble,omitempty"`
}

type SimulationResult struct {
	Auth []string `json:"auth"` // XDR encoded SorobanAuthorizationEntry
	XDR  string   `json:"xdr"`  // XDR encoded ScVal
}

type SimulationCost struct {
	CPUInstructions uint64 `json:"cpuInsns,string"`
	MemoryBytes     uint64 `json:"memBytes,string"`
}

type RestorePreamble struct {
	TransactionData string `json:"transactionData"`
	MinResourceFee  int64  `json:"minResourceFee,string"`
}
