package service_test

import (
	"context"
	"errors"
	"io"
	"slices"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedisam/txchain/internal/identity"
	"github.com/hedisam/txchain/internal/ledger"
	lt "github.com/hedisam/txchain/internal/ledger/ledgertest"
	"github.com/hedisam/txchain/internal/service"
	"github.com/hedisam/txchain/internal/service/mocks"
)

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// sliceStore returns a RecordStoreMock backed by an in-memory slice.
func sliceStore(records ...ledger.Record) *mocks.RecordStoreMock {
	var mu sync.Mutex
	stored := slices.Clone(records)
	return &mocks.RecordStoreMock{
		AppendFunc: func(ctx context.Context, records ...ledger.Record) error {
			mu.Lock()
			defer mu.Unlock()
			stored = append(stored, records...)
			return nil
		},
		RecordsFunc: func(ctx context.Context) ([]ledger.Record, error) {
			mu.Lock()
			defer mu.Unlock()
			return slices.Clone(stored), nil
		},
	}
}

func noopPublisher() *mocks.PublisherMock {
	return &mocks.PublisherMock{
		PublishFunc: func(records ...ledger.Record) {},
	}
}

func TestLedgerReads(t *testing.T) {
	ctx := context.Background()
	l := service.New(newLogger(), sliceStore(lt.GenesisLedger(t)...), noopPublisher())

	balance, err := l.Balance(ctx, lt.MustAddress(t, lt.AliceAddr))
	require.NoError(t, err)
	assert.Equal(t, int64(50), balance)

	balance, err = l.Balance(ctx, lt.MustAddress(t, lt.CarolAddr))
	require.NoError(t, err)
	assert.Zero(t, balance)

	balances, err := l.Balances(ctx)
	require.NoError(t, err)
	assert.Equal(t, ledger.Balances{
		lt.MustAddress(t, lt.GenesisSigner): -225,
		lt.MustAddress(t, lt.MinterAddr):            100,
		lt.MustAddress(t, lt.AliceAddr):             50,
		lt.MustAddress(t, lt.BobAddr):               75,
	}, balances)

	txs, err := l.Transactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, lt.GenesisLedger(t), txs)

	tail, err := l.Tail(ctx)
	require.NoError(t, err)
	require.NotNil(t, tail)
	assert.Equal(t, uint64(2), *tail)
}

func TestLedgerReadsSkipRejectedHistory(t *testing.T) {
	ctx := context.Background()
	history := lt.GenesisLedger(t)
	history[1].Amount = 5000 // reattributes the transfer to an unknown sender, still accepted
	history[2].PrevID = ledger.Uint64(9)

	l := service.New(newLogger(), sliceStore(history...), noopPublisher())

	txs, err := l.Transactions(ctx)
	require.NoError(t, err)
	assert.Len(t, txs, 2)

	tail, err := l.Tail(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), *tail)
}

func TestLedgerEmpty(t *testing.T) {
	ctx := context.Background()
	l := service.New(newLogger(), sliceStore(), noopPublisher())

	tail, err := l.Tail(ctx)
	require.NoError(t, err)
	assert.Nil(t, tail)

	balances, err := l.Balances(ctx)
	require.NoError(t, err)
	assert.Empty(t, balances)
}

func TestLedgerSubmit(t *testing.T) {
	tests := map[string]struct {
		candidate       func(t *testing.T) ledger.Record
		expectedBalance int64
		expectedErr     error
		expectStored    bool
	}{
		"accepted transfer": {
			candidate: func(t *testing.T) ledger.Record {
				return lt.Signed(t, lt.MinterKey, 3, ledger.Uint64(2), lt.CarolAddr, 40)
			},
			expectedBalance: 60,
			expectStored:    true,
		},
		"spends the whole balance": {
			candidate: func(t *testing.T) ledger.Record {
				return lt.Signed(t, lt.MinterKey, 3, ledger.Uint64(2), lt.CarolAddr, 100)
			},
			expectedBalance: 0,
			expectStored:    true,
		},
		"not enough funds": {
			candidate: func(t *testing.T) ledger.Record {
				return lt.Signed(t, lt.MinterKey, 3, ledger.Uint64(2), lt.CarolAddr, 101)
			},
			expectedBalance: 100,
			expectedErr:     ledger.ErrInsufficientFunds,
		},
		"stale previous id": {
			candidate: func(t *testing.T) ledger.Record {
				return lt.Signed(t, lt.MinterKey, 3, ledger.Uint64(1), lt.CarolAddr, 10)
			},
			expectedErr: ledger.ErrLinkageMismatch,
		},
		"high s signature": {
			candidate: func(t *testing.T) ledger.Record {
				return lt.HighS(lt.Signed(t, lt.MinterKey, 3, ledger.Uint64(2), lt.CarolAddr, 10))
			},
			expectedErr: ledger.ErrSignatureInvalid,
		},
		"malformed recipient": {
			candidate: func(t *testing.T) ledger.Record {
				return lt.Signed(t, lt.MinterKey, 3, ledger.Uint64(2), "carol", 10)
			},
			expectedErr: ledger.ErrMalformedRecord,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := sliceStore(lt.GenesisLedger(t)...)
			publisher := noopPublisher()
			l := service.New(newLogger(), store, publisher)

			candidate := test.candidate(t)
			balance, err := l.Submit(ctx, candidate)
			if test.expectedErr != nil {
				require.ErrorIs(t, err, test.expectedErr)
				assert.Equal(t, test.expectedBalance, balance)
				assert.Empty(t, store.AppendCalls())
				assert.Empty(t, publisher.PublishCalls())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expectedBalance, balance)
			require.Len(t, store.AppendCalls(), 1)
			assert.Equal(t, []ledger.Record{candidate}, store.AppendCalls()[0].Records)
			require.Len(t, publisher.PublishCalls(), 1)
			assert.Equal(t, []ledger.Record{candidate}, publisher.PublishCalls()[0].Records)

			tail, err := l.Tail(ctx)
			require.NoError(t, err)
			assert.Equal(t, candidate.ID, *tail)
		})
	}
}

func TestLedgerSubmitStoreErrors(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("disk on fire")

	t.Run("read", func(t *testing.T) {
		store := &mocks.RecordStoreMock{
			RecordsFunc: func(ctx context.Context) ([]ledger.Record, error) {
				return nil, storeErr
			},
		}
		l := service.New(newLogger(), store, noopPublisher())

		_, err := l.Submit(ctx, lt.Signed(t, lt.MinterKey, 0, nil, lt.MinterAddr, 0))
		require.ErrorIs(t, err, storeErr)

		_, err = l.Balance(ctx, identity.Address{})
		require.ErrorIs(t, err, storeErr)
	})

	t.Run("append", func(t *testing.T) {
		publisher := noopPublisher()
		store := &mocks.RecordStoreMock{
			RecordsFunc: func(ctx context.Context) ([]ledger.Record, error) {
				return nil, nil
			},
			AppendFunc: func(ctx context.Context, records ...ledger.Record) error {
				return storeErr
			},
		}
		l := service.New(newLogger(), store, publisher)

		_, err := l.Submit(ctx, lt.Signed(t, lt.CarolKey, 0, nil, lt.MinterAddr, 0))
		require.ErrorIs(t, err, storeErr)
		assert.NotErrorIs(t, err, ledger.ErrInvalidRecord)
		assert.Empty(t, publisher.PublishCalls())
	})
}

func TestLedgerConcurrentSubmitsLinkOnce(t *testing.T) {
	ctx := context.Background()
	l := service.New(newLogger(), sliceStore(lt.GenesisLedger(t)...), noopPublisher())

	// every candidate links to the same tail, only one of them may win
	candidates := []ledger.Record{
		lt.Signed(t, lt.MinterKey, 3, ledger.Uint64(2), lt.CarolAddr, 1),
		lt.Signed(t, lt.MinterKey, 3, ledger.Uint64(2), lt.CarolAddr, 2),
		lt.Signed(t, lt.AliceKey, 3, ledger.Uint64(2), lt.CarolAddr, 3),
		lt.Signed(t, lt.BobKey, 3, ledger.Uint64(2), lt.CarolAddr, 4),
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for c := range slices.Values(candidates) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Submit(ctx, c)
			if err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, ledger.ErrLinkageMismatch)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, accepted)
	txs, err := l.Transactions(ctx)
	require.NoError(t, err)
	assert.Len(t, txs, 4)
}

func TestLedgerSeed(t *testing.T) {
	ctx := context.Background()
	store := sliceStore()
	l := service.New(newLogger(), store, noopPublisher())

	require.NoError(t, l.Seed(ctx, lt.GenesisLedger(t)...))
	require.Len(t, store.AppendCalls(), 1)

	balance, err := l.Balance(ctx, lt.MustAddress(t, lt.BobAddr))
	require.NoError(t, err)
	assert.Equal(t, int64(75), balance)
}
