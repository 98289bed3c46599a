package rest

import (
	"github.com/hedisam/txchain/internal/ledger"
)

// request and response types are defined below
// records travel in their signed JSON form so clients can verify them independently

type GetBalanceRequest struct {
	Address string `uri:"address"`
}

type GetBalanceResponse struct {
	Balance int64 `json:"balance"`
}

type ListBalancesRequest struct{}

type ListBalancesResponse struct {
	Balances ledger.Balances `json:"balances"`
}

type ListTransactionsRequest struct{}

type ListTransactionsResponse struct {
	Transactions []ledger.Record `json:"transactions"`
}

type GetTailRequest struct{}

type GetTailResponse struct {
	// ID is the id of the last accepted transaction, null for an empty ledger.
	ID *uint64 `json:"id"`
}

// SendRequest is a signed record submitted for admission.
type SendRequest struct {
	ledger.Record
}

type SendResponse struct {
	// Balance is the sender's balance once the transaction is applied.
	Balance int64 `json:"balance"`
}
