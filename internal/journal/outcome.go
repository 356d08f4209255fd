// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package journal

import (
	"github.com/dotandev/soroban-invoker/internal/submitter"
	"github.com/pkg/errors"
)

// FromSubmission turns the outcome of Submit into a journal entry.
func FromSubmission(inv submitter.Invocation, result *submitter.Result, err error) Entry {
	e := Entry{ContractID: inv.ContractID, Function: inv.Function}
	if err == nil && result != nil {
		e.Hash = result.Hash
		e.Outcome = string(result.Status)
		e.FeeCharged = result.FeeCharged
		e.Ledger = result.Ledger
		return e
	}

	var subErr *submitter.Error
	if errors.As(err, &subErr) {
		e.Hash = subErr.Hash
		e.Outcome = subErr.Kind.String()
		e.Detail = subErr.Detail
		if e.Detail == "" && subErr.Err != nil {
			e.Detail = subErr.Err.Error()
		}
		return e
	}
	e.Outcome = "error"
	if err != nil {
		e.Detail = err.Error()
	}
	return e
}
