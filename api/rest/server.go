package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/hedisam/txchain/internal/identity"
	"github.com/hedisam/txchain/internal/ledger"
)

const (
	// InvalidAddrMessage is returned when users make a request with an invalid addr.
	InvalidAddrMessage = "Invalid address. Expected a 40-character hex string, with or without '0x' prefix. Example: 0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	// NotEnoughFundsMessage is returned when the sender of a submitted transaction cannot cover the amount.
	NotEnoughFundsMessage = "Not enough funds!"
	// InvalidTransactionMessage is returned when a submitted transaction does not link to the ledger tail or its
	// signature does not hold.
	InvalidTransactionMessage = "The transaction is formally invalid (invalid signature or previous transaction ID)"
)

//go:generate moq -out mocks/ledger.go -pkg mocks -skip-ensure . Ledger

type Ledger interface {
	Balance(ctx context.Context, addr identity.Address) (int64, error)
	Balances(ctx context.Context) (ledger.Balances, error)
	Transactions(ctx context.Context) ([]ledger.Record, error)
	Tail(ctx context.Context) (*uint64, error)
	Submit(ctx context.Context, r ledger.Record) (int64, error)
}

type Server struct {
	logger *logrus.Logger
	ledger Ledger
}

func NewServer(logger *logrus.Logger, ledger Ledger) *Server {
	return &Server{
		logger: logger,
		ledger: ledger,
	}
}

func (s *Server) GetBalance(ctx context.Context, req *GetBalanceRequest) (*GetBalanceResponse, error) {
	logger := s.logger.WithContext(ctx).WithField("addr", req.Address)

	addr, err := identity.ParseAddress(req.Address)
	if err != nil {
		logger.WithError(err).Warn("Invalid address provided to get balance")
		return nil, NewErrf(http.StatusBadRequest, InvalidAddrMessage)
	}

	balance, err := s.ledger.Balance(ctx, addr)
	if err != nil {
		logger.WithError(err).Error("Failed to get balance from ledger")
		return nil, NewErrf(http.StatusInternalServerError, "Could not get balance")
	}

	return &GetBalanceResponse{
		Balance: balance,
	}, nil
}

func (s *Server) ListBalances(ctx context.Context, _ *ListBalancesRequest) (*ListBalancesResponse, error) {
	balances, err := s.ledger.Balances(ctx)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Failed to list balances from ledger")
		return nil, NewErrf(http.StatusInternalServerError, "Could not list balances")
	}

	if balances == nil {
		balances = ledger.Balances{}
	}
	return &ListBalancesResponse{
		Balances: balances,
	}, nil
}

func (s *Server) ListTransactions(ctx context.Context, _ *ListTransactionsRequest) (*ListTransactionsResponse, error) {
	txs, err := s.ledger.Transactions(ctx)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Failed to list transactions from ledger")
		return nil, NewErrf(http.StatusInternalServerError, "Could not list transactions")
	}

	if txs == nil {
		txs = []ledger.Record{}
	}
	return &ListTransactionsResponse{
		Transactions: txs,
	}, nil
}

func (s *Server) GetTail(ctx context.Context, _ *GetTailRequest) (*GetTailResponse, error) {
	tail, err := s.ledger.Tail(ctx)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Failed to get ledger tail")
		return nil, NewErrf(http.StatusInternalServerError, "Could not get the last transaction id")
	}

	return &GetTailResponse{
		ID: tail,
	}, nil
}

func (s *Server) Send(ctx context.Context, req *SendRequest) (*SendResponse, error) {
	logger := s.logger.WithContext(ctx).WithFields(logrus.Fields{
		"record_id": req.ID,
		"recipient": req.Recipient,
	})

	balance, err := s.ledger.Submit(ctx, req.Record)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInsufficientFunds):
			logger.WithField("balance", balance).Warn("Sender cannot cover the transaction amount")
			return nil, NewErrf(http.StatusBadRequest, NotEnoughFundsMessage)
		case errors.Is(err, ledger.ErrInvalidRecord):
			logger.WithError(err).Warn("Formally invalid transaction submitted")
			return nil, NewErrf(http.StatusBadRequest, InvalidTransactionMessage)
		default:
			logger.WithError(err).Error("Failed to submit transaction to ledger")
			return nil, NewErrf(http.StatusInternalServerError, "Could not submit transaction")
		}
	}

	return &SendResponse{
		Balance: balance,
	}, nil
}
