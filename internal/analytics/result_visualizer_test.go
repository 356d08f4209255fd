// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package analytics

import (
	"bytes"
	"testing"

	"github.com/dotandev/soroban-invoker/internal/scval"
	"github.com/dotandev/soroban-invoker/internal/submitter"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestPrintResultReport(t *testing.T) {
	report := NewResultReport("create_product", &submitter.Result{
		Hash:          "deadbeef",
		Ledger:        52,
		FeeCharged:    61234,
		ResourceFee:   58181,
		StatusQueries: 4,
		Entries: []scval.Entry{
			{Key: "product_title", Value: "Product 1"},
			{Key: "product_price", Value: "1000"},
		},
	})

	var buf bytes.Buffer
	PrintResultReport(&buf, report)
	out := buf.String()

	assert.Contains(t, out, "📦 Contract Invocation Report: create_product\n")
	assert.Contains(t, out, "Hash:   deadbeef\n")
	assert.Contains(t, out, "Fee Impact: 61234 stroops (resource 58181)\n")
	assert.Contains(t, out, "  product_title: Product 1\n  product_price: 1000\n")
}

func TestPrintFailure(t *testing.T) {
	err := errors.Wrap(&submitter.Error{
		Kind:   submitter.KindExecutionFailed,
		Phase:  submitter.PhaseDone,
		Hash:   "cafe",
		Detail: "txFailed: invokeHostFunctionTrapped",
		Events: []string{"[error, Error(Contract, #2)] product missing"},
	}, "get_discount")

	var buf bytes.Buffer
	PrintFailure(&buf, "get_discount", err)
	out := buf.String()

	assert.Contains(t, out, "❌ get_discount failed: get_discount: execution_failed: txFailed: invokeHostFunctionTrapped (tx cafe)\n")
	assert.Contains(t, out, "Phase: done\n")
	assert.Contains(t, out, "Hash:  cafe\n")
	assert.Contains(t, out, "  [error, Error(Contract, #2)] product missing\n")

	buf.Reset()
	PrintFailure(&buf, "init", errors.New("boom"))
	assert.Equal(t, "❌ init failed: boom\n", buf.String())
}
