package ledger

import (
	"fmt"
	"slices"

	"github.com/hedisam/txchain/internal/identity"
)

// Transfer is a record that passed validation, together with the accounts it moves value between.
type Transfer struct {
	Record    Record
	Sender    identity.Address
	Recipient identity.Address
}

// Chain holds the state of a single validation pass: the id of the last accepted record, the accepted records in
// order and the balances derived from them. A Chain is not safe for concurrent use.
type Chain struct {
	tail     *uint64
	accepted []Record
	rejected []*RejectionError
	balances Balances
}

// NewChain returns an empty chain, ready to accept a genesis record.
func NewChain() *Chain {
	return &Chain{
		balances: make(Balances),
	}
}

// Replay builds a chain by pushing every candidate in order.
func Replay(candidates []Record) *Chain {
	c := NewChain()
	c.accepted = make([]Record, 0, len(candidates))
	for _, r := range candidates {
		_ = c.Push(r)
	}

	return c
}

// Tail returns the id of the last accepted record, nil if nothing has been accepted yet.
func (c *Chain) Tail() *uint64 {
	if c.tail == nil {
		return nil
	}
	return Uint64(*c.tail)
}

// Len returns the number of accepted records.
func (c *Chain) Len() int {
	return len(c.accepted)
}

// Accepted returns a copy of the accepted records in chain order.
func (c *Chain) Accepted() []Record {
	return slices.Clone(c.accepted)
}

// Rejected returns the rejections collected by Push.
func (c *Chain) Rejected() []*RejectionError {
	return slices.Clone(c.rejected)
}

// Balances returns a copy of the current balances.
func (c *Chain) Balances() Balances {
	return c.balances.Clone()
}

// Balance returns the current balance of addr.
func (c *Chain) Balance(addr identity.Address) int64 {
	return c.balances.Of(addr)
}

// Push validates r against the current tail and, if valid, applies it. Funds are not checked: Push replays records
// that were admitted earlier. A rejected record is remembered and leaves the tail where it was, so any later record
// linking to it is rejected as well.
func (c *Chain) Push(r Record) error {
	t, rejection := c.check(r)
	if rejection != nil {
		c.rejected = append(c.rejected, rejection)
		return rejection
	}

	c.apply(t)
	return nil
}

// Check validates r against the current tail without changing the chain.
func (c *Chain) Check(r Record) (Transfer, error) {
	t, rejection := c.check(r)
	if rejection != nil {
		return Transfer{}, rejection
	}

	return t, nil
}

// Append admits a new record: it must be formally valid and its sender must be able to cover the amount.
// On success the record is applied and the sender's new balance is returned. On failure the chain is unchanged.
func (c *Chain) Append(r Record) (int64, error) {
	t, err := c.Check(r)
	if err != nil {
		return 0, err
	}

	balance := c.balances.Of(t.Sender)
	if balance < r.Amount {
		return balance, fmt.Errorf("%w: account %s has %d, transfer needs %d", ErrInsufficientFunds, t.Sender, balance, r.Amount)
	}

	c.apply(t)
	return c.balances.Of(t.Sender), nil
}

func (c *Chain) check(r Record) (Transfer, *RejectionError) {
	if !sameID(r.PrevID, c.tail) {
		return Transfer{}, reject(r, ErrLinkageMismatch)
	}

	digest, err := r.Digest()
	if err != nil {
		return Transfer{}, reject(r, fmt.Errorf("%w: %w", ErrMalformedRecord, err))
	}

	pub, err := identity.RecoverPubKey(digest[:], r.Signature, r.Recovery)
	if err != nil {
		return Transfer{}, reject(r, err)
	}
	// recovery alone does not prove validity, the signature is verified against the recovered key as well
	if !identity.Verify(digest[:], r.Signature, pub) {
		return Transfer{}, reject(r, ErrSignatureInvalid)
	}

	recipient, err := identity.ParseAddress(r.Recipient)
	if err != nil {
		return Transfer{}, reject(r, fmt.Errorf("%w: %w", ErrMalformedRecord, err))
	}
	if r.Amount < 0 {
		return Transfer{}, reject(r, fmt.Errorf("%w: negative amount %d", ErrMalformedRecord, r.Amount))
	}

	return Transfer{
		Record:    r,
		Sender:    identity.AddressFromPubKey(pub),
		Recipient: recipient,
	}, nil
}

func (c *Chain) apply(t Transfer) {
	c.balances.transfer(t.Sender, t.Recipient, t.Record.Amount)
	c.accepted = append(c.accepted, t.Record)
	c.tail = Uint64(t.Record.ID)
}

func sameID(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
