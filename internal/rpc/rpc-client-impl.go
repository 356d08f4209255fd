// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package rpc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	retry "github.com/avast/retry-go/v4"
	"github.com/dotandev/soroban-invoker/internal/log"
	"github.com/dotandev/soroban-invoker/internal/simulator"
	"github.com/gorilla/rpc/v2/json2"
	"github.com/pkg/errors"
	"github.com/stellar/go/xdr"
	"golang.org/x/time/rate"
)

// ErrAccountNotFound is returned by GetAccount for addresses with no ledger entry.
var ErrAccountNotFound = errors.New("account not found")

// Error is a JSON-RPC error object returned by the server.
type Error struct {
	Method  string
	Code    int
	Message string
	Data    interface{}
}

func (e *Error) Error() string {
	if e.Data != nil {
		return fmt.Sprintf("%s: rpc error %d: %s (%v)", e.Method, e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("%s: rpc error %d: %s", e.Method, e.Code, e.Message)
}

// Options tunes the transport behaviour of the client.
type Options struct {
	HTTPClient *http.Client

	// Retries apply to read-only calls that failed in transport.
	RetryAttempts uint
	RetryDelay    time.Duration

	// Zero disables rate limiting.
	RequestsPerSecond float64
}

// rpcClientImpl is the default JSON-RPC 2.0 over HTTP implementation.
type rpcClientImpl struct {
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter

	attempts retry.Option
	delay    retry.Option

	log *log.Logger
}

// Ensure that rpcClientImpl implements Client
var _ Client = (*rpcClientImpl)(nil)

// NewClient makes a new Client for the Soroban RPC server at endpoint.
func NewClient(endpoint string, opts Options, log *log.Logger) (Client, error) {
	if endpoint == "" {
		return nil, errors.New("rpc endpoint is required")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	attempts := opts.RetryAttempts
	if attempts == 0 {
		attempts = 1
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	return &rpcClientImpl{
		endpoint:   endpoint,
		httpClient: httpClient,
		limiter:    limiter,

		attempts: retry.Attempts(attempts),
		delay:    retry.Delay(opts.RetryDelay),

		log: log,
	}, nil
}

func (r *rpcClientImpl) GetHealth(ctx context.Context) (*HealthResponse, error) {
	response := &HealthResponse{}
	err := r.callWithRetries(ctx, "getHealth", nil, response)
	return response, err
}

func (r *rpcClientImpl) GetNetwork(ctx context.Context) (*NetworkResponse, error) {
	response := &NetworkResponse{}
	err := r.callWithRetries(ctx, "getNetwork", nil, response)
	return response, err
}

func (r *rpcClientImpl) GetVersionInfo(ctx context.Context) (*VersionInfoResponse, error) {
	response := &VersionInfoResponse{}
	err := r.callWithRetries(ctx, "getVersionInfo", nil, response)
	return response, err
}

func (r *rpcClientImpl) GetAccount(ctx context.Context, address string) (*AccountData, error) {
	accountID, err := xdr.AddressToAccountId(address)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid account address %q", address)
	}
	key := xdr.LedgerKey{
		Type:    xdr.LedgerEntryTypeAccount,
		Account: &xdr.LedgerKeyAccount{AccountId: accountID},
	}
	encodedKey, err := xdr.MarshalBase64(key)
	if err != nil {
		return nil, errors.Wrap(err, "encoding account ledger key")
	}

	response := &GetLedgerEntriesResponse{}
	err = r.callWithRetries(ctx, "getLedgerEntries", &getLedgerEntriesRequest{Keys: []string{encodedKey}}, response)
	if err != nil {
		return nil, err
	}
	if len(response.Entries) == 0 {
		return nil, errors.Wrapf(ErrAccountNotFound, "address %s", address)
	}

	var data xdr.LedgerEntryData
	if err := xdr.SafeUnmarshalBase64(response.Entries[0].XDR, &data); err != nil {
		return nil, errors.Wrap(err, "decoding account ledger entry")
	}
	account, ok := data.GetAccount()
	if !ok {
		return nil, errors.Errorf("ledger entry for %s is %s, not an account", address, data.Type)
	}

	return &AccountData{
		Address:  address,
		Sequence: int64(account.SeqNum),
	}, nil
}

func (r *rpcClientImpl) SimulateTransaction(ctx context.Context, txEnvelope string, resources *simulator.ResourceConfig) (*simulator.SimulationResponse, error) {
	response := &simulator.SimulationResponse{}
	request := &simulator.SimulationRequest{Transaction: txEnvelope, ResourceConfig: resources}
	err := r.callWithRetries(ctx, "simulateTransaction", request, response)
	return response, err
}

func (r *rpcClientImpl) SendTransaction(ctx context.Context, txEnvelope string) (*SendTransactionResponse, error) {
	response := &SendTransactionResponse{}
	err := r.call(ctx, "sendTransaction", &sendTransactionRequest{Transaction: txEnvelope}, response)
	return response, err
}

func (r *rpcClientImpl) GetTransaction(ctx context.Context, hash string) (*GetTransactionResponse, error) {
	response := &GetTransactionResponse{}
	err := r.callWithRetries(ctx, "getTransaction", &getTransactionRequest{Hash: hash}, response)
	return response, err
}

// callWithRetries retries transport failures only. Errors reported by the
// server are returned immediately.
func (r *rpcClientImpl) callWithRetries(ctx context.Context, method string, params, reply interface{}) error {
	return retry.Do(func() error {
		return r.call(ctx, method, params, reply)
	},
		r.attempts,
		r.delay,
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var rpcErr *Error
			return !errors.As(err, &rpcErr)
		}),
		retry.OnRetry(func(n uint, err error) {
			r.log.Debug().Err(err).Str("method", method).Uint("attempt", n+1).Msg("retrying rpc call")
		}),
	)
}

func (r *rpcClientImpl) call(ctx context.Context, method string, params, reply interface{}) error {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return errors.Wrapf(err, "%s: waiting for rate limiter", method)
		}
	}

	if params == nil {
		params = struct{}{}
	}
	body, err := json2.EncodeClientRequest(method, params)
	if err != nil {
		return errors.Wrapf(err, "%s: encoding request", method)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrapf(err, "%s: building request", method)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := r.httpClient.Do(request)
	if err != nil {
		return errors.Wrapf(err, "%s request failed", method)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(response.Body, 512))
		return errors.Errorf("%s: http status %s: %s", method, response.Status, bytes.TrimSpace(snippet))
	}

	err = json2.DecodeClientResponse(response.Body, reply)
	if err != nil {
		var jsonErr *json2.Error
		if errors.As(err, &jsonErr) {
			return &Error{
				Method:  method,
				Code:    int(jsonErr.Code),
				Message: jsonErr.Message,
				Data:    jsonErr.Data,
			}
		}
		return errors.Wrapf(err, "%s: decoding response", method)
	}

	r.log.Debug().Str("method", method).Msg("rpc call completed")
	return nil
}
