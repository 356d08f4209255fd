// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package simulator

import (
	"fmt"
	"strings"

	"github.com/dotandev/soroban-invoker/internal/scval"
	"github.com/pkg/errors"
	"github.com/stellar/go/xdr"
)

func (r *SimulationResponse) Failed() bool {
	return r.Error != ""
}

// SorobanData decodes the footprint and resource data the network computed.
func (r *SimulationResponse) SorobanData() (xdr.SorobanTransactionData, error) {
	var data xdr.SorobanTransactionData
	if r.TransactionData == "" {
		return data, errors.New("simulation returned no transaction data")
	}
	if err := xdr.SafeUnmarshalBase64(r.TransactionData, &data); err != nil {
		return data, errors.Wrap(err, "decoding simulated transaction data")
	}
	return data, nil
}

// Auth decodes the authorization entries of the single host function result.
func (r *SimulationResponse) Auth() ([]xdr.SorobanAuthorizationEntry, error) {
	if len(r.Results) == 0 {
		return nil, nil
	}
	auth := make([]xdr.SorobanAuthorizationEntry, 0, len(r.Results[0].Auth))
	for _, raw := range r.Results[0].Auth {
		var entry xdr.SorobanAuthorizationEntry
		if err := xdr.SafeUnmarshalBase64(raw, &entry); err != nil {
			return nil, errors.Wrap(err, "decoding simulated auth entry")
		}
		auth = append(auth, entry)
	}
	return auth, nil
}

// DescribeEvents renders base64 DiagnosticEvents as "topics: data" lines.
// Events that cannot be decoded are kept verbatim.
func DescribeEvents(events []string) []string {
	lines := make([]string, 0, len(events))
	for _, raw := range events {
		var ev xdr.DiagnosticEvent
		if err := xdr.SafeUnmarshalBase64(raw, &ev); err != nil {
			lines = append(lines, raw)
			continue
		}
		body, ok := ev.Event.Body.GetV0()
		if !ok {
			lines = append(lines, raw)
			continue
		}
		topics := make([]string, 0, len(body.Topics))
		for _, topic := range body.Topics {
			topics = append(topics, scval.Format(topic))
		}
		lines = append(lines, fmt.Sprintf("[%s] %s", strings.Join(topics, ", "), scval.Format(body.Data)))
	}
	return lines
}
