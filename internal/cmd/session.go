// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dotandev/soroban-invoker/internal/analytics"
	"github.com/dotandev/soroban-invoker/internal/config"
	"github.com/dotandev/soroban-invoker/internal/journal"
	"github.com/dotandev/soroban-invoker/internal/rpc"
	"github.com/dotandev/soroban-invoker/internal/submitter"
	"github.com/dotandev/soroban-invoker/internal/telemetry"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// loadConfiguration layers the yaml file, the dotenv file, the environment
// and the command line flags, in that order.
func loadConfiguration() (*config.Configuration, error) {
	loader, err := config.NewConfigurationLoader(configurationDirectory, logger)
	if err != nil {
		return nil, err
	}
	cfg, err := loader.LoadConfiguration()
	if err != nil {
		return nil, err
	}

	dotenv, err := config.ReadEnvFile(envFile)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(config.EnvLookup(dotenv))

	if networkName != "" {
		cfg.Network = networkName
	}
	if rpcURL != "" {
		cfg.RPCURL = rpcURL
	}
	if contractID != "" {
		cfg.ContractID = contractID
	}
	if journalPath != "" {
		cfg.JournalPath = journalPath
	}

	if err := cfg.ResolveNetwork(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// session holds everything one command needs to submit invocations.
type session struct {
	cfg       *config.Configuration
	client    rpc.Client
	submitter *submitter.Submitter
	journal   *journal.Journal
	shutdown  telemetry.ShutdownFunc
	out       io.Writer

	spinner *progressbar.ProgressBar
}

func openSession(ctx context.Context, cfg *config.Configuration, out io.Writer) (*session, error) {
	if err := cfg.ValidateSigner(); err != nil {
		return nil, err
	}
	if err := cfg.ValidateContract(); err != nil {
		return nil, err
	}

	shutdown, err := telemetry.Init(ctx, telemetry.Config{Endpoint: cfg.OtelEndpoint, Insecure: true, Version: InvokerVersion})
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg, shutdown: shutdown, out: out}

	s.client, err = rpc.NewClient(cfg.RPCURL, cfg.RPCOptions(), logger)
	if err != nil {
		s.Close()
		return nil, err
	}

	subCfg, err := cfg.SubmitterConfig()
	if err != nil {
		s.Close()
		return nil, err
	}
	s.submitter, err = submitter.New(s.client, cfg.SignerSecret, subCfg, logger, submitter.WithPollObserver(s.observe))
	if err != nil {
		s.Close()
		return nil, err
	}

	if cfg.JournalPath != "" {
		s.journal, err = journal.Open(expandHomeDir(cfg.JournalPath))
		if err != nil {
			s.Close()
			return nil, err
		}
	}
	return s, nil
}

// Submit runs one invocation, journals the outcome and prints it.
func (s *session) Submit(ctx context.Context, inv submitter.Invocation) (*submitter.Result, error) {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		s.spinner = progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription(fmt.Sprintf("%s: waiting for confirmation", inv.Function)),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionClearOnFinish(),
		)
	}
	result, err := s.submitter.Submit(ctx, inv)
	if s.spinner != nil {
		_ = s.spinner.Finish()
		s.spinner = nil
	}

	if s.journal != nil {
		if _, jerr := s.journal.Record(ctx, journal.FromSubmission(inv, result, err)); jerr != nil {
			logger.Warn().Err(jerr).Msg("error recording submission")
		}
	}

	if err != nil {
		analytics.PrintFailure(s.out, inv.Function, err)
		return nil, err
	}
	analytics.PrintResultReport(s.out, analytics.NewResultReport(inv.Function, result))
	return result, nil
}

func (s *session) observe(attempt int, status string) {
	if s.spinner == nil {
		return
	}
	s.spinner.Describe(fmt.Sprintf("waiting for confirmation (query %d, %s)", attempt, status))
	_ = s.spinner.Add(1)
}

func (s *session) Address() string {
	return s.submitter.Address()
}

func (s *session) Close() {
	if s.journal != nil {
		if err := s.journal.Close(); err != nil {
			logger.Warn().Err(err).Msg("error closing journal")
		}
	}
	if s.shutdown != nil {
		if err := s.shutdown(context.Background()); err != nil {
			logger.Debug().Err(err).Msg("error flushing traces")
		}
	}
}
