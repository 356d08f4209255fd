// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package analytics

import (
	"fmt"
	"io"

	"github.com/dotandev/soroban-invoker/internal/scval"
	"github.com/dotandev/soroban-invoker/internal/submitter"
	"github.com/pkg/errors"
)

// ResultReport summarizes one confirmed invocation.
type ResultReport struct {
	Function      string
	Hash          string
	Ledger        uint32
	FeeCharged    int64
	ResourceFee   int64
	StatusQueries int
	Entries       []scval.Entry
}

func NewResultReport(function string, result *submitter.Result) *ResultReport {
	return &ResultReport{
		Function:      function,
		Hash:          result.Hash,
		Ledger:        result.Ledger,
		FeeCharged:    result.FeeCharged,
		ResourceFee:   result.ResourceFee,
		StatusQueries: result.StatusQueries,
		Entries:       result.Entries,
	}
}

func PrintResultReport(w io.Writer, report *ResultReport) {
	fmt.Fprintf(w, "📦 Contract Invocation Report: %s\n", report.Function)
	fmt.Fprintln(w, "--------------------------------")
	fmt.Fprintf(w, "Hash:   %s\n", report.Hash)
	fmt.Fprintf(w, "Ledger: %d\n", report.Ledger)
	fmt.Fprintf(w, "Fee Impact: %d stroops (resource %d)\n", report.FeeCharged, report.ResourceFee)
	fmt.Fprintf(w, "Status queries: %d\n\n", report.StatusQueries)

	fmt.Fprintln(w, "Returned:")
	for _, entry := range report.Entries {
		fmt.Fprintf(w, "  %s: %s\n", entry.Key, entry.Value)
	}
}

// PrintFailure prints a failed submission with whatever diagnostics came
// back from the network.
func PrintFailure(w io.Writer, function string, err error) {
	fmt.Fprintf(w, "❌ %s failed: %v\n", function, err)

	var subErr *submitter.Error
	if !errors.As(err, &subErr) {
		return
	}
	fmt.Fprintf(w, "Phase: %s\n", subErr.Phase)
	if subErr.Hash != "" {
		fmt.Fprintf(w, "Hash:  %s\n", subErr.Hash)
	}
	if len(subErr.Events) > 0 {
		fmt.Fprintln(w, "Diagnostic events:")
		for _, event := range subErr.Events {
			fmt.Fprintf(w, "  %s\n", event)
		}
	}
}
