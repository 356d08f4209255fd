// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package submitter

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"github.com/stellar/go/txnbuild"
)

// Config is the network side of a submission.
type Config struct {
	NetworkPassphrase string
	// BaseFee in stroops, before the resource fee the network adds.
	BaseFee int64
	// TxTimeout is how long the transaction stays valid for inclusion.
	TxTimeout time.Duration
	// InstructionLeeway is added to the simulated CPU budget. Zero leaves it
	// to the server.
	InstructionLeeway uint64
	Poll              PollPolicy
}

// PollPolicy bounds the wait for a pending transaction. A Multiplier of 1 or
// less polls at a fixed Interval.
type PollPolicy struct {
	Interval    time.Duration
	MaxInterval time.Duration
	Multiplier  float64
	// MaxAttempts is the number of status queries, including the first.
	MaxAttempts uint64
	// MaxWait caps the total time spent polling. Zero means no cap beyond
	// MaxAttempts and the caller's context.
	MaxWait time.Duration
}

func DefaultPollPolicy() PollPolicy {
	return PollPolicy{
		Interval:    100 * time.Millisecond,
		MaxInterval: 100 * time.Millisecond,
		Multiplier:  1,
		MaxAttempts: 600,
		MaxWait:     2 * time.Minute,
	}
}

func DefaultConfig(passphrase string) Config {
	return Config{
		NetworkPassphrase: passphrase,
		BaseFee:           txnbuild.MinBaseFee,
		TxTimeout:         30 * time.Second,
		Poll:              DefaultPollPolicy(),
	}
}

func (c Config) Validate() error {
	if c.NetworkPassphrase == "" {
		return errors.New("network passphrase is required")
	}
	if c.BaseFee < txnbuild.MinBaseFee {
		return errors.Errorf("base fee %d is below the minimum of %d stroops", c.BaseFee, txnbuild.MinBaseFee)
	}
	if c.TxTimeout < time.Second {
		return errors.Errorf("transaction timeout %s is shorter than one second", c.TxTimeout)
	}
	return c.Poll.Validate()
}

func (p PollPolicy) Validate() error {
	if p.Interval <= 0 {
		return errors.New("poll interval must be positive")
	}
	if p.MaxAttempts == 0 {
		return errors.New("poll attempts must be at least one")
	}
	if p.MaxInterval != 0 && p.MaxInterval < p.Interval {
		return errors.Errorf("poll max interval %s is below the interval %s", p.MaxInterval, p.Interval)
	}
	return nil
}

// newBackOff yields the delays between consecutive status queries and stops
// after MaxAttempts queries or when ctx is done.
func (p PollPolicy) newBackOff(ctx context.Context) backoff.BackOff {
	var b backoff.BackOff
	if p.Multiplier <= 1 {
		b = backoff.NewConstantBackOff(p.Interval)
	} else {
		exp := backoff.NewExponentialBackOff()
		exp.InitialInterval = p.Interval
		exp.Multiplier = p.Multiplier
		exp.RandomizationFactor = 0
		exp.MaxElapsedTime = 0
		if p.MaxInterval > 0 {
			exp.MaxInterval = p.MaxInterval
		}
		exp.Reset()
		b = exp
	}
	b = backoff.WithMaxRetries(b, p.MaxAttempts-1)
	return backoff.WithContext(b, ctx)
}
