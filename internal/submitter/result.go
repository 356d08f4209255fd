// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package submitter

import (
	"github.com/dotandev/soroban-invoker/internal/scval"
	"github.com/stellar/go/xdr"
)

// Phase is how far a transaction got: Building -> Prepared -> Signed ->
// Submitted -> Pending -> Done.
type Phase int

const (
	PhaseBuilding Phase = iota + 1
	PhasePrepared
	PhaseSigned
	PhaseSubmitted
	PhasePending
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseBuilding:
		return "building"
	case PhasePrepared:
		return "prepared"
	case PhaseSigned:
		return "signed"
	case PhaseSubmitted:
		return "submitted"
	case PhasePending:
		return "pending"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Status of a submission as observed by the client.
type Status string

const StatusSuccess Status = "success"

// Invocation names one contract call.
type Invocation struct {
	ContractID string
	Function   string
	Args       []scval.Arg
}

// Result is a successfully applied invocation.
type Result struct {
	Hash        string
	Status      Status
	ReturnValue xdr.ScVal
	Entries     []scval.Entry
	// FeeCharged in stroops, as reported by the ledger.
	FeeCharged int64
	// ResourceFee the simulation asked for, included in FeeCharged.
	ResourceFee   int64
	Ledger        uint32
	StatusQueries int
}
