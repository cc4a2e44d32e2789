package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nexus-network/ledger/internal/notification"
	"github.com/nexus-network/ledger/internal/wallet"
)

const defaultPersistTimeout = 2 * time.Second

// Options carries optional collaborators for a Service.
type Options struct {
	Notifier       notification.Notifier
	Logger         *slog.Logger
	PersistTimeout time.Duration
	Now            func() time.Time
	NewID          func() string
}

// Service owns the wallet store and the transaction log and implements the
// deposit, withdraw, transfer and fund operations over them.
//
// Every operation returns the Transaction it recorded. Rule violations are
// reported through Status and Reason, never as errors.
type Service struct {
	mu        sync.RWMutex
	wallets   *wallet.Store
	log       []Transaction // newest first
	persister Persister
	notifier  notification.Notifier
	logger    *slog.Logger
	timeout   time.Duration
	now       func() time.Time
	newID     func() string
}

// NewService loads wallets and transactions through the persister and
// returns a ready Service. A nil persister keeps state in process memory
// only and starts with no wallets; wrap kv.NewMemory in a
// persistence.Adapter to get an in-memory ledger with the seed wallets.
func NewService(ctx context.Context, persister Persister, opts Options) *Service {
	if persister == nil {
		persister = newMemoryPersister(nil)
	}
	s := &Service{
		wallets:   wallet.NewStore(persister.LoadWallets(ctx)),
		log:       persister.LoadTransactions(ctx),
		persister: persister,
		notifier:  opts.Notifier,
		logger:    opts.Logger,
		timeout:   opts.PersistTimeout,
		now:       opts.Now,
		newID:     opts.NewID,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.timeout <= 0 {
		s.timeout = defaultPersistTimeout
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.newID == nil {
		s.newID = func() string { return uuid.Must(uuid.NewV7()).String() }
	}
	s.logger.Info("ledger loaded", "wallets", s.wallets.Len(), "transactions", len(s.log))
	return s
}

// Deposit credits amount to the wallet.
func (s *Service) Deposit(ctx context.Context, walletID string, amount decimal.Decimal, note string) Transaction {
	s.mustBeReady()
	return s.execute(ctx, func() Transaction {
		tx := s.draft(TypeDeposit, amount, "", walletID, note)
		if _, ok := s.wallets.Find(walletID); !ok {
			return tx.fail(ReasonWalletNotFound, NoteWalletNotFound)
		}
		if amount.Sign() <= 0 {
			return tx.fail(ReasonInvalidAmount, tx.Note)
		}

		s.wallets.ApplyDelta(walletID, amount)
		tx.Status = StatusCompleted
		return tx
	})
}

// Withdraw debits amount from the wallet when the balance covers it.
func (s *Service) Withdraw(ctx context.Context, walletID string, amount decimal.Decimal, note string) Transaction {
	s.mustBeReady()
	return s.execute(ctx, func() Transaction {
		tx := s.draft(TypeWithdraw, amount, walletID, "", note)
		w, ok := s.wallets.Find(walletID)
		if !ok {
			return tx.fail(ReasonWalletNotFound, NoteWalletNotFound)
		}
		if amount.Sign() <= 0 {
			return tx.fail(ReasonInvalidAmount, tx.Note)
		}
		if w.Balance.LessThan(amount) {
			return tx.fail(ReasonInsufficientFunds, tx.Note)
		}

		s.wallets.ApplyDelta(walletID, amount.Neg())
		tx.Status = StatusCompleted
		return tx
	})
}

// Transfer moves amount between two wallets.
func (s *Service) Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal, note string) Transaction {
	s.mustBeReady()
	return s.execute(ctx, func() Transaction {
		return s.move(TypeTransfer, fromID, toID, amount, note)
	})
}

// FundDeal moves amount from an investor wallet to an entrepreneur wallet.
// It validates and settles exactly like Transfer but is recorded as a fund.
func (s *Service) FundDeal(ctx context.Context, investorID, entrepreneurID string, amount decimal.Decimal, note string) Transaction {
	s.mustBeReady()
	return s.execute(ctx, func() Transaction {
		return s.move(TypeFund, investorID, entrepreneurID, amount, note)
	})
}

func (s *Service) move(kind Type, fromID, toID string, amount decimal.Decimal, note string) Transaction {
	tx := s.draft(kind, amount, fromID, toID, note)
	from, fromOK := s.wallets.Find(fromID)
	_, toOK := s.wallets.Find(toID)
	if !fromOK || !toOK || fromID == toID {
		return tx.fail(ReasonInvalidWallets, NoteInvalidWallets)
	}
	if amount.Sign() <= 0 {
		return tx.fail(ReasonInvalidAmount, tx.Note)
	}
	if from.Balance.LessThan(amount) {
		return tx.fail(ReasonInsufficientFunds, tx.Note)
	}

	s.wallets.ApplyDelta(fromID, amount.Neg())
	s.wallets.ApplyDelta(toID, amount)
	tx.Status = StatusCompleted
	return tx
}

// execute runs op and commits its transaction under the write lock.
// Notifications go out after the lock is released so a slow notifier never
// stalls other operations or the read views.
func (s *Service) execute(ctx context.Context, op func() Transaction) Transaction {
	tx := func() Transaction {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.commit(ctx, op())
	}()
	if tx.Completed() {
		s.notify(ctx, tx)
	}
	return tx
}

// Wallets returns the current wallet set in storage order.
func (s *Service) Wallets() []wallet.Wallet {
	s.mustBeReady()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wallets.List()
}

// Wallet returns one wallet by id.
func (s *Service) Wallet(id string) (wallet.Wallet, bool) {
	s.mustBeReady()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wallets.Find(id)
}

// Transactions returns the full log, newest first.
func (s *Service) Transactions() []Transaction {
	s.mustBeReady()
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Transaction, len(s.log))
	copy(out, s.log)
	return out
}

// TransactionsFor returns the transactions where the wallet is sender or
// receiver, newest first.
func (s *Service) TransactionsFor(walletID string) []Transaction {
	s.mustBeReady()
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Transaction, 0)
	for _, tx := range s.log {
		if tx.Involves(walletID) {
			out = append(out, tx)
		}
	}
	return out
}

func (s *Service) mustBeReady() {
	if s == nil || s.wallets == nil || s.persister == nil {
		panic(ErrNotInitialized)
	}
}

func (s *Service) draft(kind Type, amount decimal.Decimal, sender, receiver, note string) Transaction {
	return Transaction{
		ID:       s.newID(),
		Date:     s.now(),
		Type:     kind,
		Amount:   amount,
		Sender:   sender,
		Receiver: receiver,
		Status:   StatusFailed,
		Note:     note,
	}
}

func (t Transaction) fail(reason Reason, note string) Transaction {
	t.Status = StatusFailed
	t.Reason = reason
	t.Note = note
	return t
}

// commit must be called with s.mu held.
func (s *Service) commit(ctx context.Context, tx Transaction) Transaction {
	s.log = slices.Insert(s.log, 0, tx)

	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	if s.wallets.Dirty() {
		if err := s.persister.SaveWallets(persistCtx, s.wallets.List()); err != nil {
			s.logger.Warn("persist wallets failed", "transaction_id", tx.ID, "error", err)
		} else {
			s.wallets.MarkClean()
		}
	}
	if err := s.persister.SaveTransactions(persistCtx, s.log); err != nil {
		s.logger.Warn("persist transactions failed", "transaction_id", tx.ID, "error", err)
	}

	attrs := []any{
		"transaction_id", tx.ID,
		"type", string(tx.Type),
		"amount", tx.Amount.String(),
		"status", string(tx.Status),
	}
	if tx.Reason != "" {
		attrs = append(attrs, "reason", string(tx.Reason))
	}
	s.logger.Info("ledger transaction recorded", attrs...)
	return tx
}

func (s *Service) notify(ctx context.Context, tx Transaction) {
	if s.notifier == nil {
		return
	}
	for _, msg := range messagesFor(tx) {
		if err := s.notifier.Send(ctx, msg); err != nil && !errors.Is(err, notification.ErrDropped) {
			s.logger.Warn("notification failed", "transaction_id", tx.ID, "destination", msg.Destination, "error", err)
		}
	}
}

func messagesFor(tx Transaction) []notification.Message {
	amount := tx.Amount.String()
	switch tx.Type {
	case TypeDeposit:
		return []notification.Message{{
			Kind:          notification.KindDeposit,
			Destination:   tx.Receiver,
			TransactionID: tx.ID,
			Body:          fmt.Sprintf("%s deposited into wallet %s", amount, tx.Receiver),
		}}
	case TypeWithdraw:
		return []notification.Message{{
			Kind:          notification.KindWithdraw,
			Destination:   tx.Sender,
			TransactionID: tx.ID,
			Body:          fmt.Sprintf("%s withdrawn from wallet %s", amount, tx.Sender),
		}}
	case TypeTransfer, TypeFund:
		kind := notification.KindTransfer
		if tx.Type == TypeFund {
			kind = notification.KindFund
		}
		return []notification.Message{
			{
				Kind:          kind,
				Destination:   tx.Sender,
				TransactionID: tx.ID,
				Body:          fmt.Sprintf("You sent %s to wallet %s", amount, tx.Receiver),
			},
			{
				Kind:          kind,
				Destination:   tx.Receiver,
				TransactionID: tx.ID,
				Body:          fmt.Sprintf("You received %s from wallet %s", amount, tx.Sender),
			},
		}
	}
	return nil
}
