// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

// Package submitter builds, prepares, signs and submits a single Soroban
// contract invocation and waits for it to reach a terminal status.
package submitter

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dotandev/soroban-invoker/internal/log"
	"github.com/dotandev/soroban-invoker/internal/rpc"
	"github.com/dotandev/soroban-invoker/internal/scval"
	"github.com/dotandev/soroban-invoker/internal/simulator"
	"github.com/pkg/errors"
	"github.com/stellar/go/keypair"
	"github.com/stellar/go/strkey"
	"github.com/stellar/go/txnbuild"
	"github.com/stellar/go/xdr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/dotandev/soroban-invoker/internal/submitter"

// PollObserver is told about every status query while a transaction is pending.
type PollObserver func(attempt int, status string)

type Option func(*Submitter)

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Submitter) { s.tracer = tracer }
}

func WithPollObserver(observer PollObserver) Option {
	return func(s *Submitter) { s.observer = observer }
}

func WithClock(now func() time.Time) Option {
	return func(s *Submitter) { s.now = now }
}

// WithSleeper replaces the wait between status queries.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(s *Submitter) { s.sleep = sleep }
}

// Submitter sends invocations from a single signing account. Calls on one
// Submitter are serialized so they never race on the account sequence.
type Submitter struct {
	client rpc.Client
	signer *keypair.Full
	cfg    Config

	tracer   trace.Tracer
	observer PollObserver
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error

	mu sync.Mutex

	log *log.Logger
}

func New(client rpc.Client, signerSecret string, cfg Config, logger *log.Logger, opts ...Option) (*Submitter, error) {
	if client == nil {
		return nil, errors.New("rpc client is required")
	}
	signer, err := keypair.ParseFull(strings.TrimSpace(signerSecret))
	if err != nil {
		return nil, errors.Wrap(err, "parsing signer secret")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Submitter{
		client: client,
		signer: signer,
		cfg:    cfg,

		tracer: otel.Tracer(tracerName),
		now:    time.Now,
		sleep:  sleepContext,

		log: logger.ApplyPrefix(" [submitter]"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Address is the public key transactions are sourced from.
func (s *Submitter) Address() string {
	return s.signer.Address()
}

// Submit runs one invocation to a terminal status. It returns either a
// Result or an *Error, never both.
func (s *Submitter) Submit(ctx context.Context, inv Invocation) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := s.tracer.Start(ctx, "submitter.Submit", trace.WithAttributes(
		attribute.String("contract_id", inv.ContractID),
		attribute.String("function", inv.Function),
		attribute.Int("args", len(inv.Args)),
	))
	defer span.End()

	result, err := s.submit(ctx, inv)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("tx_hash", result.Hash), attribute.Int64("fee_charged", result.FeeCharged))
	return result, nil
}

func (s *Submitter) submit(ctx context.Context, inv Invocation) (*Result, error) {
	op, err := s.invokeOperation(inv)
	if err != nil {
		return nil, &Error{Kind: KindInvalidInput, Phase: PhaseBuilding, Err: err}
	}

	// 1. Fresh account state, every time.
	account, err := s.client.GetAccount(ctx, s.Address())
	if err != nil {
		s.log.Error().Err(err).Str("signer", s.Address()).Msg("error getting account data")
		return nil, &Error{Kind: KindAccountLookup, Phase: PhaseBuilding, Err: err}
	}

	// 2. Build
	tx, err := s.buildTransaction(account, op, s.cfg.BaseFee)
	if err != nil {
		return nil, &Error{Kind: KindInvalidInput, Phase: PhaseBuilding, Err: err}
	}

	// 3. Prepare
	prepared, resourceFee, err := s.prepare(ctx, account, op, tx)
	if err != nil {
		return nil, err
	}

	// 4. Sign
	signed, err := prepared.Sign(s.cfg.NetworkPassphrase, s.signer)
	if err != nil {
		return nil, &Error{Kind: KindInvalidInput, Phase: PhasePrepared, Err: errors.Wrap(err, "signing transaction")}
	}
	hash, err := signed.HashHex(s.cfg.NetworkPassphrase)
	if err != nil {
		return nil, &Error{Kind: KindInvalidInput, Phase: PhasePrepared, Err: errors.Wrap(err, "hashing transaction")}
	}
	envelope, err := signed.Base64()
	if err != nil {
		return nil, &Error{Kind: KindInvalidInput, Phase: PhaseSigned, Hash: hash, Err: errors.Wrap(err, "encoding transaction")}
	}

	// 5. Submit
	logger := s.log.With().Str("tx_hash", hash).Str("function", inv.Function).Logger()
	sent, err := s.send(ctx, envelope, hash)
	if err != nil {
		return nil, err
	}

	// 6. Immediate rejection
	switch sent.Status {
	case rpc.SendStatusPending:
	case rpc.SendStatusError:
		return nil, &Error{
			Kind:   KindSubmissionRejected,
			Phase:  PhaseSubmitted,
			Hash:   hash,
			Detail: "unable to submit transaction: " + resultCode(sent.ErrorResultXDR),
			Events: simulator.DescribeEvents(sent.DiagnosticEventsXDR),
		}
	default:
		return nil, &Error{
			Kind:   KindSubmissionRejected,
			Phase:  PhaseSubmitted,
			Hash:   hash,
			Detail: "unable to submit transaction: status " + sent.Status,
		}
	}
	logger.Info().Int64("fee", signed.BaseFee()).Msg("💤 transaction sent, waiting for inclusion...")

	// 7. Poll
	status, queries, err := s.poll(ctx, hash)
	if err != nil {
		return nil, err
	}

	// 8. Terminal status
	return s.finish(hash, status, queries, resourceFee)
}

func (s *Submitter) invokeOperation(inv Invocation) (*txnbuild.InvokeHostFunction, error) {
	if inv.ContractID == "" {
		return nil, errors.New("contract id is required")
	}
	if inv.Function == "" {
		return nil, errors.New("function name is required")
	}
	raw, err := strkey.Decode(strkey.VersionByteContract, inv.ContractID)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid contract id %q", inv.ContractID)
	}
	var contractID xdr.ContractId
	copy(contractID[:], raw)

	return &txnbuild.InvokeHostFunction{
		HostFunction: xdr.HostFunction{
			Type: xdr.HostFunctionTypeHostFunctionTypeInvokeContract,
			InvokeContract: &xdr.InvokeContractArgs{
				ContractAddress: xdr.ScAddress{
					Type:       xdr.ScAddressTypeScAddressTypeContract,
					ContractId: &contractID,
				},
				FunctionName: xdr.ScSymbol(inv.Function),
				Args:         scval.Values(inv.Args),
			},
		},
	}, nil
}

func (s *Submitter) buildTransaction(account *rpc.AccountData, op *txnbuild.InvokeHostFunction, baseFee int64) (*txnbuild.Transaction, error) {
	// The builder increments the sequence on its own copy.
	source := txnbuild.NewSimpleAccount(account.Address, account.Sequence)
	return txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        &source,
		IncrementSequenceNum: true,
		BaseFee:              baseFee,
		Operations:           []txnbuild.Operation{op},
		Preconditions: txnbuild.Preconditions{
			TimeBounds: txnbuild.NewTimebounds(0, s.now().Add(s.cfg.TxTimeout).Unix()),
		},
	})
}

// prepare simulates tx and rebuilds it with the footprint, auth and resource
// fee the network computed.
func (s *Submitter) prepare(ctx context.Context, account *rpc.AccountData, op *txnbuild.InvokeHostFunction, tx *txnbuild.Transaction) (*txnbuild.Transaction, int64, error) {
	ctx, span := s.tracer.Start(ctx, "submitter.prepare")
	defer span.End()

	envelope, err := tx.Base64()
	if err != nil {
		return nil, 0, &Error{Kind: KindInvalidInput, Phase: PhaseBuilding, Err: errors.Wrap(err, "encoding transaction")}
	}

	var resources *simulator.ResourceConfig
	if s.cfg.InstructionLeeway > 0 {
		resources = &simulator.ResourceConfig{InstructionLeeway: s.cfg.InstructionLeeway}
	}
	sim, err := s.client.SimulateTransaction(ctx, envelope, resources)
	if err != nil {
		return nil, 0, &Error{Kind: KindPreparation, Phase: PhaseBuilding, Err: err}
	}
	if sim.Failed() {
		events := simulator.DescribeEvents(sim.Events)
		s.log.Warn().Str("error", sim.Error).Strs("events", events).Msg("simulation rejected the invocation")
		return nil, 0, &Error{Kind: KindPreparation, Phase: PhaseBuilding, Detail: sim.Error, Events: events}
	}
	if sim.RestorePreamble != nil {
		return nil, 0, &Error{
			Kind:   KindPreparation,
			Phase:  PhaseBuilding,
			Detail: "contract state is archived and must be restored before invoking",
		}
	}

	data, err := sim.SorobanData()
	if err != nil {
		return nil, 0, &Error{Kind: KindPreparation, Phase: PhaseBuilding, Err: err}
	}
	auth, err := sim.Auth()
	if err != nil {
		return nil, 0, &Error{Kind: KindPreparation, Phase: PhaseBuilding, Err: err}
	}

	prepared := *op
	prepared.Auth = auth
	prepared.Ext = xdr.TransactionExt{V: 1, SorobanData: &data}

	// txnbuild adds the soroban resource fee on top of the inclusion fee.
	rebuilt, err := s.buildTransaction(account, &prepared, s.cfg.BaseFee)
	if err != nil {
		return nil, 0, &Error{Kind: KindPreparation, Phase: PhaseBuilding, Err: errors.Wrap(err, "rebuilding prepared transaction")}
	}
	span.SetAttributes(attribute.Int64("min_resource_fee", sim.MinResourceFee))
	s.log.Debug().Int64("min_resource_fee", sim.MinResourceFee).Uint32("latest_ledger", sim.LatestLedger).Msg("transaction prepared")
	return rebuilt, sim.MinResourceFee, nil
}

func (s *Submitter) send(ctx context.Context, envelope, hash string) (resp *rpc.SendTransactionResponse, err error) {
	ctx, span := s.tracer.Start(ctx, "submitter.send", trace.WithAttributes(attribute.String("tx_hash", hash)))
	defer span.End()

	// Panics in the client surface as SubmissionFailed.
	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = &Error{Kind: KindSubmissionFailed, Phase: PhaseSigned, Hash: hash, Err: errors.Errorf("panic during submission: %v", r)}
		}
	}()

	resp, err = s.client.SendTransaction(ctx, envelope)
	if err != nil {
		s.log.Error().Err(err).Str("tx_hash", hash).Msg("error broadcasting transaction")
		return nil, &Error{Kind: KindSubmissionFailed, Phase: PhaseSigned, Hash: hash, Err: err}
	}
	if resp == nil {
		return nil, &Error{Kind: KindSubmissionFailed, Phase: PhaseSigned, Hash: hash, Err: errors.New("empty response")}
	}
	span.SetAttributes(attribute.String("send_status", resp.Status))
	return resp, nil
}

func (s *Submitter) finish(hash string, status *rpc.GetTransactionResponse, queries int, resourceFee int64) (*Result, error) {
	switch status.Status {
	case rpc.TransactionStatusSuccess:
		returnValue, err := returnValueFromMeta(status.ResultMetaXDR)
		if err != nil {
			return nil, &Error{Kind: KindExecutionFailed, Phase: PhaseDone, Hash: hash, Detail: "undecodable result", Err: err}
		}
		s.log.Info().Str("tx_hash", hash).Uint32("ledger", status.Ledger).Msg("✅ transaction confirmed")
		return &Result{
			Hash:          hash,
			Status:        StatusSuccess,
			ReturnValue:   returnValue,
			Entries:       scval.Entries(returnValue),
			FeeCharged:    feeCharged(status.ResultXDR),
			ResourceFee:   resourceFee,
			Ledger:        status.Ledger,
			StatusQueries: queries,
		}, nil
	default:
		s.log.Warn().Str("tx_hash", hash).Str("status", status.Status).Msg("❌ transaction failed")
		return nil, &Error{
			Kind:   KindExecutionFailed,
			Phase:  PhaseDone,
			Hash:   hash,
			Detail: resultCode(status.ResultXDR),
			Events: simulator.DescribeEvents(status.DiagnosticEventsXDR),
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
