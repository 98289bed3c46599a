package ledger

import (
	"maps"

	"github.com/hedisam/txchain/internal/identity"
)

// Balances maps an account to its net balance. Any address seen as a sender or recipient of an accepted record has
// an entry, even if its balance is zero. Balances can go negative: replaying history does not re-check funds.
type Balances map[identity.Address]int64

// Of returns the balance of addr, zero if it has never been seen.
func (b Balances) Of(addr identity.Address) int64 {
	return b[addr]
}

// Clone returns an independent copy of b.
func (b Balances) Clone() Balances {
	return maps.Clone(b)
}

func (b Balances) init(addrs ...identity.Address) {
	for _, addr := range addrs {
		if _, ok := b[addr]; !ok {
			b[addr] = 0
		}
	}
}

func (b Balances) transfer(from, to identity.Address, amount int64) {
	b.init(from, to)
	b[from] -= amount
	b[to] += amount
}
