// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package rpc

// AccountData is the part of an account a transaction source needs.
type AccountData struct {
	Address  string
	Sequence int64
}

// Statuses reported by sendTransaction.
const (
	SendStatusPending       = "PENDING"
	SendStatusDuplicate     = "DUPLICATE"
	SendStatusTryAgainLater = "TRY_AGAIN_LATER"
	SendStatusError         = "ERROR"
)

// Statuses reported by getTransaction.
const (
	TransactionStatusSuccess  = "SUCCESS"
	TransactionStatusNotFound = "NOT_FOUND"
	TransactionStatusFailed   = "FAILED"
)

type HealthResponse struct {
	Status                string `json:"status"`
	LatestLedger          uint32 `json:"latestLedger"`
	OldestLedger          uint32 `json:"oldestLedger"`
	LedgerRetentionWindow uint32 `json:"ledgerRetentionWindow"`
}

type NetworkResponse struct {
	FriendbotURL    string `json:"friendbotUrl,omitempty"`
	Passphrase      string `json:"passphrase"`
	ProtocolVersion int    `json:"protocolVersion"`
}

type VersionInfoResponse struct {
	Version            string `json:"version"`
	CommitHash         string `json:"commitHash"`
	BuildTimestamp     string `json:"buildTimestamp"`
	CaptiveCoreVersion string `json:"captiveCoreVersion"`
	ProtocolVersion    int    `json:"protocolVersion"`
}

type getLedgerEntriesRequest struct {
	Keys []string `json:"keys"`
}

type LedgerEntryResult struct {
	Key                string  `json:"key"`
	XDR                string  `json:"xdr"`
	LastModifiedLedger uint32  `json:"lastModifiedLedgerSeq"`
	LiveUntilLedgerSeq *uint32 `json:"liveUntilLedgerSeq,omitempty"`
}

type GetLedgerEntriesResponse struct {
	Entries      []LedgerEntryResult `json:"entries"`
	LatestLedger uint32              `json:"latestLedger"`
}

type sendTransactionRequest struct {
	Transaction string `json:"transaction"`
}

type SendTransactionResponse struct {
	Status                string `json:"status"`
	Hash                  string `json:"hash"`
	LatestLedger          uint32 `json:"latestLedger"`
	LatestLedgerCloseTime int64  `json:"latestLedgerCloseTime,string"`
	// XDR encoded TransactionResult, set when Status is ERROR
	ErrorResultXDR      string   `json:"errorResultXdr,omitempty"`
	DiagnosticEventsXDR []string `json:"diagnosticEventsXdr,omitempty"`
}

type getTransactionRequest struct {
	Hash string `json:"hash"`
}

type GetTransactionResponse struct {
	Status                string   `json:"status"`
	LatestLedger          uint32   `json:"latestLedger"`
	LatestLedgerCloseTime int64    `json:"latestLedgerCloseTime,string"`
	OldestLedger          uint32   `json:"oldestLedger"`
	ApplicationOrder      int32    `json:"applicationOrder,omitempty"`
	FeeBump               bool     `json:"feeBump,omitempty"`
	EnvelopeXDR           string   `json:"envelopeXdr,omitempty"`
	ResultXDR             string   `json:"resultXdr,omitempty"`
	ResultMetaXDR         string   `json:"resultMetaXdr,omitempty"`
	Ledger                uint32   `json:"ledger,omitempty"`
	CreatedAt             int64    `json:"createdAt,string,omitempty"`
	DiagnosticEventsXDR   []string `json:"diagnosticEventsXdr,omitempty"`
}
