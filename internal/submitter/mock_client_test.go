// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package submitter

import (
	"context"
	"sync"
	"testing"

	"github.com/dotandev/soroban-invoker/internal/rpc"
	"github.com/dotandev/soroban-invoker/internal/simulator"
	"github.com/pkg/errors"
	"github.com/stellar/go/network"
	"github.com/stellar/go/txnbuild"
	"github.com/stellar/go/xdr"
	"github.com/stretchr/testify/require"
)

const testPassphrase = network.TestNetworkPassphrase

// mockNetwork is an in-memory stand-in for a Soroban RPC server. It applies
// a transaction the first time it sees its sequence number.
type mockNetwork struct {
	t  *testing.T
	mu sync.Mutex

	sequence       int64
	appliedSeq     int64
	minResourceFee int64
	feeCharged     int64

	accountErr   error
	simulation   *simulator.SimulationResponse
	sendErr      error
	sendPanic    bool
	sendStatus   string
	notFoundFor  int
	finalStatus  string
	returnValue  xdr.ScVal
	metaV4       bool
	statusErrors int

	accountCalls  int
	simulateCalls int
	sendCalls     int
	statusCalls   int
	inFlight      int
	maxInFlight   int

	lastEnvelope  xdr.TransactionEnvelope
	lastHash      string
	lastResources *simulator.ResourceConfig
}

var _ rpc.Client = (*mockNetwork)(nil)

func newMockNetwork(t *testing.T, returnValue xdr.ScVal) *mockNetwork {
	return &mockNetwork{
		t:              t,
		sequence:       100,
		minResourceFee: 58181,
		feeCharged:     61234,
		sendStatus:     rpc.SendStatusPending,
		finalStatus:    rpc.TransactionStatusSuccess,
		returnValue:    returnValue,
	}
}

func (m *mockNetwork) GetHealth(context.Context) (*rpc.HealthResponse, error) {
	return &rpc.HealthResponse{Status: "healthy"}, nil
}

func (m *mockNetwork) GetNetwork(context.Context) (*rpc.NetworkResponse, error) {
	return &rpc.NetworkResponse{Passphrase: testPassphrase, ProtocolVersion: 22}, nil
}

func (m *mockNetwork) GetVersionInfo(context.Context) (*rpc.VersionInfoResponse, error) {
	return &rpc.VersionInfoResponse{Version: "22.1.0"}, nil
}

func (m *mockNetwork) GetAccount(_ context.Context, address string) (*rpc.AccountData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accountCalls++
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
	if m.accountErr != nil {
		m.inFlight--
		return nil, m.accountErr
	}
	return &rpc.AccountData{Address: address, Sequence: m.sequence}, nil
}

func (m *mockNetwork) SimulateTransaction(_ context.Context, envelope string, resources *simulator.ResourceConfig) (*simulator.SimulationResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.simulateCalls++
	m.lastResources = resources

	var env xdr.TransactionEnvelope
	require.NoError(m.t, xdr.SafeUnmarshalBase64(envelope, &env))
	require.Empty(m.t, env.Signatures(), "simulation takes the unsigned transaction")

	if m.simulation != nil {
		if m.simulation.Failed() {
			m.inFlight--
		}
		return m.simulation, nil
	}

	data := xdr.SorobanTransactionData{
		Resources:   xdr.SorobanResources{Instructions: 1_000_000},
		ResourceFee: xdr.Int64(m.minResourceFee),
	}
	encoded, err := xdr.MarshalBase64(data)
	require.NoError(m.t, err)
	ret, err := xdr.MarshalBase64(m.returnValue)
	require.NoError(m.t, err)

	return &simulator.SimulationResponse{
		TransactionData: encoded,
		MinResourceFee:  m.minResourceFee,
		Results:         []simulator.SimulationResult{{XDR: ret}},
		LatestLedger:    50,
	}, nil
}

func (m *mockNetwork) SendTransaction(_ context.Context, envelope string) (*rpc.SendTransactionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendCalls++
	m.inFlight--

	if m.sendPanic {
		panic("connection reset")
	}
	if m.sendErr != nil {
		return nil, m.sendErr
	}

	require.NoError(m.t, xdr.SafeUnmarshalBase64(envelope, &m.lastEnvelope))
	generic, err := txnbuild.TransactionFromXDR(envelope)
	require.NoError(m.t, err)
	tx, ok := generic.Transaction()
	require.True(m.t, ok)
	m.lastHash, err = tx.HashHex(testPassphrase)
	require.NoError(m.t, err)

	seq := int64(m.lastEnvelope.SeqNum())
	if seq <= m.appliedSeq {
		return &rpc.SendTransactionResponse{
			Status:         rpc.SendStatusError,
			Hash:           m.lastHash,
			ErrorResultXDR: encodeResult(m.t, xdr.TransactionResultCodeTxBadSeq, 100),
		}, nil
	}
	if m.sendStatus == rpc.SendStatusPending {
		m.appliedSeq = seq
	}
	return &rpc.SendTransactionResponse{Status: m.sendStatus, Hash: m.lastHash, LatestLedger: 51}, nil
}

func (m *mockNetwork) GetTransaction(_ context.Context, hash string) (*rpc.GetTransactionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statusCalls++
	require.Equal(m.t, m.lastHash, hash)

	if m.statusErrors > 0 {
		m.statusErrors--
		return nil, errors.New("connection refused")
	}
	if m.notFoundFor < 0 || m.statusCalls <= m.notFoundFor {
		return &rpc.GetTransactionResponse{Status: rpc.TransactionStatusNotFound, LatestLedger: 51}, nil
	}

	switch m.finalStatus {
	case rpc.TransactionStatusSuccess:
		meta := xdr.TransactionMeta{
			V: 3,
			V3: &xdr.TransactionMetaV3{
				SorobanMeta: &xdr.SorobanTransactionMeta{ReturnValue: m.returnValue},
			},
		}
		if m.metaV4 {
			returnValue := m.returnValue
			meta = xdr.TransactionMeta{
				V: 4,
				V4: &xdr.TransactionMetaV4{
					SorobanMeta: &xdr.SorobanTransactionMetaV2{ReturnValue: &returnValue},
				},
			}
		}
		encodedMeta, err := xdr.MarshalBase64(meta)
		require.NoError(m.t, err)
		return &rpc.GetTransactionResponse{
			Status:        rpc.TransactionStatusSuccess,
			Ledger:        52,
			ResultXDR:     encodeResult(m.t, xdr.TransactionResultCodeTxSuccess, m.feeCharged),
			ResultMetaXDR: encodedMeta,
		}, nil
	default:
		return &rpc.GetTransactionResponse{
			Status:    rpc.TransactionStatusFailed,
			Ledger:    52,
			ResultXDR: encodeTrappedResult(m.t, m.feeCharged),
		}, nil
	}
}

func encodeResult(t *testing.T, code xdr.TransactionResultCode, fee int64) string {
	result := xdr.TransactionResult{
		FeeCharged: xdr.Int64(fee),
		Result:     xdr.TransactionResultResult{Code: code},
	}
	if code == xdr.TransactionResultCodeTxSuccess {
		results := []xdr.OperationResult{{
			Code: xdr.OperationResultCodeOpInner,
			Tr: &xdr.OperationResultTr{
				Type: xdr.OperationTypeInvokeHostFunction,
				InvokeHostFunctionResult: &xdr.InvokeHostFunctionResult{
					Code:    xdr.InvokeHostFunctionResultCodeInvokeHostFunctionSuccess,
					Success: &xdr.Hash{},
				},
			},
		}}
		result.Result.Results = &results
	}
	encoded, err := xdr.MarshalBase64(result)
	require.NoError(t, err)
	return encoded
}

func encodeTrappedResult(t *testing.T, fee int64) string {
	results := []xdr.OperationResult{{
		Code: xdr.OperationResultCodeOpInner,
		Tr: &xdr.OperationResultTr{
			Type: xdr.OperationTypeInvokeHostFunction,
			InvokeHostFunctionResult: &xdr.InvokeHostFunctionResult{
				Code: xdr.InvokeHostFunctionResultCodeInvokeHostFunctionTrapped,
			},
		},
	}}
	result := xdr.TransactionResult{
		FeeCharged: xdr.Int64(fee),
		Result: xdr.TransactionResultResult{
			Code:    xdr.TransactionResultCodeTxFailed,
			Results: &results,
		},
	}
	encoded, err := xdr.MarshalBase64(result)
	require.NoError(t, err)
	return encoded
}
