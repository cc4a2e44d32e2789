package ledger

import (
	"context"
	"errors"

	"github.com/nexus-network/ledger/internal/wallet"
)

// ErrNotInitialized is raised when the ledger API is used on a Service that
// was not built with NewService. It signals a programming error.
var ErrNotInitialized = errors.New("ledger: service not initialized")

// Type categorizes a balance-affecting operation.
type Type string

const (
	TypeDeposit  Type = "deposit"
	TypeWithdraw Type = "withdraw"
	TypeTransfer Type = "transfer"
	TypeFund     Type = "fund"
)

// Valid reports whether t is a known transaction type.
func (t Type) Valid() bool {
	switch t {
	case TypeDeposit, TypeWithdraw, TypeTransfer, TypeFund:
		return true
	}
	return false
}

// Status is the outcome of a transaction.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	// StatusPending is part of the declared domain but never produced here.
	StatusPending Status = "pending"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusPending:
		return true
	}
	return false
}

// Reason explains why a transaction failed. Empty on success.
type Reason string

const (
	ReasonWalletNotFound    Reason = "wallet_not_found"
	ReasonInvalidWallets    Reason = "invalid_wallets"
	ReasonInsufficientFunds Reason = "insufficient_funds"
	ReasonInvalidAmount     Reason = "invalid_amount"
)

// Notes written over the caller's note for missing-wallet failures.
const (
	NoteWalletNotFound = "wallet not found"
	NoteInvalidWallets = "invalid wallets"
)

// Persister loads and stores the wallet set and transaction log. Loads never
// fail: implementations fall back to seed or empty data.
type Persister interface {
	LoadWallets(ctx context.Context) []wallet.Wallet
	LoadTransactions(ctx context.Context) []Transaction
	SaveWallets(ctx context.Context, wallets []wallet.Wallet) error
	SaveTransactions(ctx context.Context, transactions []Transaction) error
}
