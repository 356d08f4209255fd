// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dotandev/soroban-invoker/internal/submitter"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Journal {
	j, err := Open(filepath.Join(t.TempDir(), "nested", "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestRecordAndRecent(t *testing.T) {
	j := openTemp(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, fn := range []string{"initialize", "create_product", "get_product"} {
		_, err := j.Record(ctx, Entry{
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
			Hash:       fn + "-hash",
			ContractID: "CCONTRACT",
			Function:   fn,
			Outcome:    "success",
			FeeCharged: int64(100 + i),
			Ledger:     uint32(50 + i),
		})
		require.NoError(t, err)
	}

	entries, err := j.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "get_product", entries[0].Function)
	assert.Equal(t, "create_product", entries[1].Function)
	assert.Equal(t, int64(101), entries[1].FeeCharged)
	assert.Equal(t, uint32(51), entries[1].Ledger)
	assert.True(t, entries[1].CreatedAt.Equal(base.Add(time.Minute)))
	assert.NotEmpty(t, entries[0].ID)
}

func TestRecordFillsIDAndTime(t *testing.T) {
	j := openTemp(t)
	fixed := time.UnixMilli(1_700_000_000_000)
	j.now = func() time.Time { return fixed }

	e, err := j.Record(context.Background(), Entry{ContractID: "C", Function: "f", Outcome: "timeout"})
	require.NoError(t, err)
	assert.Len(t, e.ID, 36)
	assert.True(t, e.CreatedAt.Equal(fixed))
}

func TestRecentValidatesLimit(t *testing.T) {
	j := openTemp(t)
	_, err := j.Recent(context.Background(), 0)
	require.Error(t, err)

	entries, err := j.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("")
	require.Error(t, err)
}

func TestFromSubmission(t *testing.T) {
	inv := submitter.Invocation{ContractID: "CCONTRACT", Function: "create_product"}

	ok := FromSubmission(inv, &submitter.Result{Hash: "abc", Status: submitter.StatusSuccess, FeeCharged: 61234, Ledger: 52}, nil)
	assert.Equal(t, Entry{Hash: "abc", ContractID: "CCONTRACT", Function: "create_product", Outcome: "success", FeeCharged: 61234, Ledger: 52}, ok)

	failed := FromSubmission(inv, nil, &submitter.Error{Kind: submitter.KindExecutionFailed, Hash: "def", Detail: "txFailed"})
	assert.Equal(t, "execution_failed", failed.Outcome)
	assert.Equal(t, "def", failed.Hash)
	assert.Equal(t, "txFailed", failed.Detail)

	wrapped := FromSubmission(inv, nil, errors.Wrap(&submitter.Error{Kind: submitter.KindTimeout, Err: context.DeadlineExceeded}, "create_product"))
	assert.Equal(t, "timeout", wrapped.Outcome)
	assert.Equal(t, context.DeadlineExceeded.Error(), wrapped.Detail)

	other := FromSubmission(inv, nil, errors.New("boom"))
	assert.Equal(t, "error", other.Outcome)
}
