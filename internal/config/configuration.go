// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/dotandev/soroban-invoker/internal/rpc"
	"github.com/dotandev/soroban-invoker/internal/submitter"
	"github.com/pkg/errors"
	"github.com/stellar/go/keypair"
	"github.com/stellar/go/strkey"
	"github.com/stellar/go/txnbuild"
)

// Environment variables read on top of the configuration file.
const (
	EnvRPCURL            = "RPC_URL"
	EnvContractID        = "SMART_CONTRACT"
	EnvSignerSecret      = "ADMIN_SECRET_KEY"
	EnvNetworkPassphrase = "NETWORK_PASSPHRASE"
	EnvNetwork           = "STELLAR_NETWORK"
	EnvJournalPath       = "INVOKER_JOURNAL"
	EnvOtelEndpoint      = "OTEL_EXPORTER_OTLP_ENDPOINT"
)

// Configuration is configuration for the invoker
type Configuration struct {
	Network                 string  `yaml:"network" comment:"Named network: testnet, futurenet, public or standalone. Fills in the passphrase and rpc_url when they are empty."`
	RPCURL                  string  `yaml:"rpc_url" comment:"Soroban RPC endpoint. Ex. 'https://soroban-testnet.stellar.org'"`
	NetworkPassphrase       string  `yaml:"network_passphrase" comment:"Network passphrase transactions are signed for"`
	ContractID              string  `yaml:"contract_id" comment:"The deployed contract to invoke (C...)"`
	SignerSecret            string  `yaml:"signer_secret" comment:"Secret seed (S...) of the account that signs and pays. Prefer ADMIN_SECRET_KEY in .env."`
	BaseFee                 int64   `yaml:"base_fee" comment:"Inclusion fee in stroops, before the resource fee"`
	TxTimeoutSeconds        uint    `yaml:"tx_timeout_seconds" comment:"How long a transaction stays valid for inclusion"`
	InstructionLeeway       uint64  `yaml:"instruction_leeway" comment:"Extra CPU instructions requested on top of the simulated usage. 0 uses the server default."`
	PollIntervalMillis      uint    `yaml:"poll_interval_millis" comment:"Delay between status queries for a pending transaction"`
	PollMaxIntervalMillis   uint    `yaml:"poll_max_interval_millis" comment:"Upper bound on the delay when poll_multiplier is above 1"`
	PollMultiplier          float64 `yaml:"poll_multiplier" comment:"Growth factor of the poll delay. 1 polls at a fixed interval."`
	PollAttempts            uint    `yaml:"poll_attempts" comment:"How many status queries before giving up"`
	PollMaxWaitSeconds      uint    `yaml:"poll_max_wait_seconds" comment:"Overall cap on the time spent waiting for a transaction. 0 disables it."`
	NetworkRetryAttempts    uint    `yaml:"network_retry_attempts" comment:"How many attempts for read-only RPC calls that fail in transport"`
	NetworkRetryDelayMillis uint    `yaml:"network_retry_delay_millis" comment:"How long to delay between retries due to RPC failures"`
	RequestsPerSecond       float64 `yaml:"requests_per_second" comment:"Client side rate limit on RPC requests. 0 disables it."`
	MinRPCVersion           string  `yaml:"min_rpc_version" comment:"Oldest RPC server version 'invoker status' accepts"`
	JournalPath             string  `yaml:"journal_path" comment:"SQLite file recording every submission. Empty disables the journal."`
	OtelEndpoint            string  `yaml:"otel_endpoint" comment:"OTLP/HTTP collector for traces, host:port. Empty disables tracing."`
}

// Default is the configuration written by 'invoker init'.
func Default() *Configuration {
	poll := submitter.DefaultPollPolicy()
	return &Configuration{
		Network:                 NetworkTestnet,
		BaseFee:                 txnbuild.MinBaseFee,
		TxTimeoutSeconds:        30,
		PollIntervalMillis:      uint(poll.Interval / time.Millisecond),
		PollMaxIntervalMillis:   uint(poll.MaxInterval / time.Millisecond),
		PollMultiplier:          poll.Multiplier,
		PollAttempts:            uint(poll.MaxAttempts),
		PollMaxWaitSeconds:      uint(poll.MaxWait / time.Second),
		NetworkRetryAttempts:    3,
		NetworkRetryDelayMillis: 500,
		MinRPCVersion:           "21.0.0",
	}
}

// ApplyEnv overrides values with the environment variables that are set.
func (c *Configuration) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(key string, target *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*target = strings.TrimSpace(v)
		}
	}
	set(EnvNetwork, &c.Network)
	set(EnvRPCURL, &c.RPCURL)
	set(EnvNetworkPassphrase, &c.NetworkPassphrase)
	set(EnvContractID, &c.ContractID)
	set(EnvSignerSecret, &c.SignerSecret)
	set(EnvJournalPath, &c.JournalPath)
	set(EnvOtelEndpoint, &c.OtelEndpoint)
}

// ResolveNetwork fills the passphrase and endpoint from the named network
// where they were left empty.
func (c *Configuration) ResolveNetwork() error {
	if c.Network == "" {
		return nil
	}
	preset, err := LookupNetwork(c.Network)
	if err != nil {
		return err
	}
	if c.NetworkPassphrase == "" {
		c.NetworkPassphrase = preset.Passphrase
	}
	if c.RPCURL == "" {
		c.RPCURL = preset.RPCURL
	}
	return nil
}

// Validate checks the values every invocation needs. Contract id and signer
// are checked separately since not every command needs them.
func (c *Configuration) Validate() error {
	if c.RPCURL == "" {
		return errors.Errorf("no RPC endpoint configured, set rpc_url or %s", EnvRPCURL)
	}
	if c.NetworkPassphrase == "" {
		return errors.Errorf("no network passphrase configured, set network_passphrase or %s", EnvNetworkPassphrase)
	}
	if _, err := c.SubmitterConfig(); err != nil {
		return err
	}
	return nil
}

func (c *Configuration) ValidateContract() error {
	if c.ContractID == "" {
		return errors.Errorf("no contract configured, set contract_id or %s", EnvContractID)
	}
	if _, err := strkey.Decode(strkey.VersionByteContract, c.ContractID); err != nil {
		return errors.Wrapf(err, "invalid contract id %q", c.ContractID)
	}
	return nil
}

func (c *Configuration) ValidateSigner() error {
	if c.SignerSecret == "" {
		return errors.Errorf("no signer configured, set signer_secret or %s", EnvSignerSecret)
	}
	if _, err := keypair.ParseFull(c.SignerSecret); err != nil {
		return errors.Wrap(err, "invalid signer secret")
	}
	return nil
}

func (c *Configuration) TxTimeout() time.Duration {
	return time.Duration(c.TxTimeoutSeconds) * time.Second
}

func (c *Configuration) NetworkRetryDelay() time.Duration {
	return time.Duration(c.NetworkRetryDelayMillis) * time.Millisecond
}

func (c *Configuration) PollPolicy() submitter.PollPolicy {
	return submitter.PollPolicy{
		Interval:    time.Duration(c.PollIntervalMillis) * time.Millisecond,
		MaxInterval: time.Duration(c.PollMaxIntervalMillis) * time.Millisecond,
		Multiplier:  c.PollMultiplier,
		MaxAttempts: uint64(c.PollAttempts),
		MaxWait:     time.Duration(c.PollMaxWaitSeconds) * time.Second,
	}
}

func (c *Configuration) SubmitterConfig() (submitter.Config, error) {
	cfg := submitter.Config{
		NetworkPassphrase: c.NetworkPassphrase,
		BaseFee:           c.BaseFee,
		TxTimeout:         c.TxTimeout(),
		InstructionLeeway: c.InstructionLeeway,
		Poll:              c.PollPolicy(),
	}
	return cfg, cfg.Validate()
}

func (c *Configuration) RPCOptions() rpc.Options {
	return rpc.Options{
		RetryAttempts:     c.NetworkRetryAttempts,
		RetryDelay:        c.NetworkRetryDelay(),
		RequestsPerSecond: c.RequestsPerSecond,
	}
}

// Redacted is a copy safe to print.
func (c Configuration) Redacted() Configuration {
	if c.SignerSecret != "" {
		c.SignerSecret = "<redacted, " + strconv.Itoa(len(c.SignerSecret)) + " chars>"
	}
	return c
}
