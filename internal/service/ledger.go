package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hedisam/txchain/internal/identity"
	"github.com/hedisam/txchain/internal/ledger"
)

//go:generate moq -out mocks/record_store.go -pkg mocks -skip-ensure . RecordStore
//go:generate moq -out mocks/publisher.go -pkg mocks -skip-ensure . Publisher

// RecordStore keeps every record admitted to the ledger, in arrival order.
type RecordStore interface {
	Append(ctx context.Context, records ...ledger.Record) error
	Records(ctx context.Context) ([]ledger.Record, error)
}

// Publisher is notified of every record appended through Submit.
type Publisher interface {
	Publish(records ...ledger.Record)
}

// Ledger serves balances and history derived from the stored records and admits new ones. Derivation runs on every
// call: the store is the only state.
type Ledger struct {
	logger    *logrus.Logger
	store     RecordStore
	publisher Publisher

	// mu serialises read-derive-append so two submissions cannot both link to the same tail.
	mu sync.Mutex
}

func New(logger *logrus.Logger, store RecordStore, publisher Publisher) *Ledger {
	return &Ledger{
		logger:    logger,
		store:     store,
		publisher: publisher,
	}
}

// Seed appends records to the store as they are, without validation. It is meant for loading a genesis history
// before the ledger starts serving.
func (l *Ledger) Seed(ctx context.Context, records ...ledger.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	err := l.store.Append(ctx, records...)
	if err != nil {
		return fmt.Errorf("could not append seed records to store: %w", err)
	}

	l.logger.WithContext(ctx).WithField("records", len(records)).Info("Ledger seeded")
	return nil
}

// Balance returns the balance of addr, zero for an account that never took part in an accepted transfer.
func (l *Ledger) Balance(ctx context.Context, addr identity.Address) (int64, error) {
	chain, err := l.derive(ctx)
	if err != nil {
		return 0, err
	}

	return chain.Balance(addr), nil
}

// Balances returns the balance of every known account.
func (l *Ledger) Balances(ctx context.Context) (ledger.Balances, error) {
	chain, err := l.derive(ctx)
	if err != nil {
		return nil, err
	}

	return chain.Balances(), nil
}

// Transactions returns the accepted records in chain order.
func (l *Ledger) Transactions(ctx context.Context) ([]ledger.Record, error) {
	chain, err := l.derive(ctx)
	if err != nil {
		return nil, err
	}

	return chain.Accepted(), nil
}

// Tail returns the id of the last accepted record, nil when the chain is empty.
func (l *Ledger) Tail(ctx context.Context) (*uint64, error) {
	chain, err := l.derive(ctx)
	if err != nil {
		return nil, err
	}

	return chain.Tail(), nil
}

// Submit validates r against the current chain, stores it and publishes it. It returns the sender's balance after
// the transfer. Validation failures match ledger.ErrInvalidRecord or ledger.ErrInsufficientFunds.
func (l *Ledger) Submit(ctx context.Context, r ledger.Record) (int64, error) {
	logger := l.logger.WithContext(ctx).WithFields(logrus.Fields{
		"record_id": r.ID,
		"recipient": r.Recipient,
		"amount":    r.Amount,
	})

	l.mu.Lock()
	defer l.mu.Unlock()

	chain, err := l.deriveLocked(ctx)
	if err != nil {
		submissions.WithLabelValues(outcomeError).Inc()
		return 0, err
	}

	balance, err := chain.Append(r)
	if err != nil {
		logger.WithError(err).Warn("Transaction refused")
		submissions.WithLabelValues(outcome(err)).Inc()
		return balance, err
	}

	err = l.store.Append(ctx, r)
	if err != nil {
		logger.WithError(err).Error("Failed to append accepted transaction to store")
		submissions.WithLabelValues(outcomeError).Inc()
		return 0, fmt.Errorf("could not append record to store: %w", err)
	}

	l.publisher.Publish(r)
	submissions.WithLabelValues(outcomeAccepted).Inc()
	chainLength.Set(float64(chain.Len()))
	logger.WithField("sender_balance", balance).Info("Transaction accepted")

	return balance, nil
}

func (l *Ledger) derive(ctx context.Context) (*ledger.Chain, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.deriveLocked(ctx)
}

func (l *Ledger) deriveLocked(ctx context.Context) (*ledger.Chain, error) {
	records, err := l.store.Records(ctx)
	if err != nil {
		l.logger.WithContext(ctx).WithError(err).Error("Failed to read records from store")
		return nil, fmt.Errorf("could not read records from store: %w", err)
	}

	start := time.Now()
	chain := ledger.Replay(records)
	deriveDuration.Observe(time.Since(start).Seconds())

	rejected := chain.Rejected()
	for rejection := range slices.Values(rejected) {
		l.logger.WithContext(ctx).WithField("record_id", rejection.RecordID).WithError(rejection.Reason).
			Debug("Stored transaction left out of the chain")
	}
	chainLength.Set(float64(chain.Len()))
	rejectedRecords.Set(float64(len(rejected)))

	return chain, nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return outcomeInsufficientFunds
	case errors.Is(err, ledger.ErrLinkageMismatch):
		return outcomeLinkage
	case errors.Is(err, ledger.ErrMalformedRecord):
		return outcomeMalformed
	case errors.Is(err, ledger.ErrInvalidRecord):
		return outcomeSignature
	default:
		return outcomeError
	}
}
