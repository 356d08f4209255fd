// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package submitter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind classifies why a submission did not succeed.
type Kind int

const (
	KindInvalidInput Kind = iota + 1
	KindAccountLookup
	KindPreparation
	KindSubmissionRejected
	KindSubmissionFailed
	KindExecutionFailed
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindAccountLookup:
		return "account_lookup"
	case KindPreparation:
		return "preparation"
	case KindSubmissionRejected:
		return "submission_rejected"
	case KindSubmissionFailed:
		return "submission_failed"
	case KindExecutionFailed:
		return "execution_failed"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is; they match any *Error of the same kind.
var (
	ErrInvalidInput       = &Error{Kind: KindInvalidInput}
	ErrAccountLookup      = &Error{Kind: KindAccountLookup}
	ErrPreparation        = &Error{Kind: KindPreparation}
	ErrSubmissionRejected = &Error{Kind: KindSubmissionRejected}
	ErrSubmissionFailed   = &Error{Kind: KindSubmissionFailed}
	ErrExecutionFailed    = &Error{Kind: KindExecutionFailed}
	ErrTimeout            = &Error{Kind: KindTimeout}
)

// Error is the only error type Submit returns.
type Error struct {
	Kind Kind
	// Phase is the last phase the transaction reached.
	Phase Phase
	// Hash is empty before signing.
	Hash string
	// Detail holds the remote diagnostic: simulation error, result code,
	// decoded diagnostic events.
	Detail string
	Events []string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if e.Hash != "" {
		fmt.Fprintf(&b, " (tx %s)", e.Hash)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Phase == 0 && t.Err == nil
}

var contractErrorPattern = regexp.MustCompile(`Error\(Contract, #(\d+)\)`)

// ContractCode extracts the contract-defined error code from the detail or
// diagnostic events, if the failure came from the contract itself.
func (e *Error) ContractCode() (uint32, bool) {
	candidates := append([]string{e.Detail}, e.Events...)
	for _, text := range candidates {
		match := contractErrorPattern.FindStringSubmatch(text)
		if len(match) < 2 {
			continue
		}
		code, err := strconv.ParseUint(match[1], 10, 32)
		if err != nil {
			continue
		}
		return uint32(code), true
	}
	return 0, false
}
