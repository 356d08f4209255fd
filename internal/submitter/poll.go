// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package submitter

import (
	"context"
	"fmt"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"github.com/dotandev/soroban-invoker/internal/rpc"
	"github.com/pkg/errors"
	"github.com/stellar/go/xdr"
	"go.opentelemetry.io/otel/attribute"
)

// poll queries the transaction status until it leaves NOT_FOUND or the poll
// policy runs out. It returns the terminal response and how many queries it
// took.
func (s *Submitter) poll(ctx context.Context, hash string) (*rpc.GetTransactionResponse, int, error) {
	ctx, span := s.tracer.Start(ctx, "submitter.poll")
	defer span.End()

	if s.cfg.Poll.MaxWait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Poll.MaxWait)
		defer cancel()
	}

	b := s.cfg.Poll.newBackOff(ctx)
	queries := 0
	var lastErr error
	for {
		queries++
		status, err := s.client.GetTransaction(ctx, hash)
		switch {
		case err != nil:
			// The transaction is already out there, so a failed query is
			// treated like NOT_FOUND.
			lastErr = err
			s.log.Warn().Err(err).Str("tx_hash", hash).Int("attempt", queries).Msg("error querying transaction status")
			s.observe(queries, "error")
		case status.Status == rpc.TransactionStatusNotFound:
			s.observe(queries, status.Status)
		default:
			s.observe(queries, status.Status)
			span.SetAttributes(attribute.Int("status_queries", queries), attribute.String("status", status.Status))
			return status, queries, nil
		}

		next := b.NextBackOff()
		if next == backoff.Stop {
			return nil, queries, s.timeout(ctx, hash, queries, lastErr)
		}
		if err := s.sleep(ctx, next); err != nil {
			return nil, queries, s.timeout(ctx, hash, queries, lastErr)
		}
	}
}

func (s *Submitter) observe(attempt int, status string) {
	if s.observer != nil {
		s.observer(attempt, status)
	}
}

func (s *Submitter) timeout(ctx context.Context, hash string, queries int, lastErr error) error {
	cause := lastErr
	if ctx.Err() != nil {
		cause = ctx.Err()
	}
	s.log.Warn().Str("tx_hash", hash).Int("status_queries", queries).Msg("gave up waiting for transaction")
	return &Error{
		Kind:   KindTimeout,
		Phase:  PhasePending,
		Hash:   hash,
		Detail: fmt.Sprintf("transaction not confirmed after %d status queries", queries),
		Err:    cause,
	}
}

// resultCode names the transaction (and first operation) result code in a
// base64 TransactionResult, e.g. "txFailed: invokeHostFunctionTrapped".
func resultCode(resultXdr string) string {
	if resultXdr == "" {
		return "no result"
	}
	var result xdr.TransactionResult
	if err := xdr.SafeUnmarshalBase64(resultXdr, &result); err != nil {
		return "undecodable result"
	}

	code := lowerFirst(strings.TrimPrefix(result.Result.Code.String(), "TransactionResultCode"))
	if ops, ok := result.Result.GetResults(); ok && len(ops) > 0 {
		if tr, ok := ops[0].GetTr(); ok {
			if ihf, ok := tr.GetInvokeHostFunctionResult(); ok {
				code += ": " + lowerFirst(strings.TrimPrefix(ihf.Code.String(), "InvokeHostFunctionResultCode"))
			}
		}
	}
	return code
}

func feeCharged(resultXdr string) int64 {
	var result xdr.TransactionResult
	if err := xdr.SafeUnmarshalBase64(resultXdr, &result); err != nil {
		return 0
	}
	return int64(result.FeeCharged)
}

// returnValueFromMeta digs the host function return value out of a base64
// TransactionMeta.
func returnValueFromMeta(metaXdr string) (xdr.ScVal, error) {
	var meta xdr.TransactionMeta
	if err := xdr.SafeUnmarshalBase64(metaXdr, &meta); err != nil {
		return xdr.ScVal{}, errors.Wrap(err, "decoding transaction meta")
	}
	switch meta.V {
	case 3:
		if meta.V3 != nil && meta.V3.SorobanMeta != nil {
			return meta.V3.SorobanMeta.ReturnValue, nil
		}
	case 4:
		if meta.V4 != nil && meta.V4.SorobanMeta != nil && meta.V4.SorobanMeta.ReturnValue != nil {
			return *meta.V4.SorobanMeta.ReturnValue, nil
		}
	}
	return xdr.ScVal{}, errors.Errorf("transaction meta v%d carries no return value", meta.V)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
