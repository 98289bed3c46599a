package ledger

// Result is the outcome of a validation pass over a candidate sequence.
type Result struct {
	// Accepted holds the records that link and verify, in input order.
	Accepted []Record
	// Balances is the replay of Accepted.
	Balances Balances
	// Rejected explains every candidate left out of Accepted.
	Rejected []*RejectionError
	// Tail is the id of the last accepted record, nil when nothing was accepted.
	Tail *uint64
}

// Derive walks the candidates once, keeping the records that chain onto the last accepted record and carry a valid
// signature, and derives balances from them. It is a pure function of its input.
func Derive(candidates []Record) *Result {
	c := Replay(candidates)

	return &Result{
		Accepted: c.accepted,
		Balances: c.balances,
		Rejected: c.rejected,
		Tail:     c.tail,
	}
}

// TryAppend checks candidate against the chain derived from history and returns the sender's balance after the
// transfer. It fails with an error matching ErrInvalidRecord when the candidate is formally invalid and with
// ErrInsufficientFunds when the sender cannot cover the amount. history is never modified.
func TryAppend(history []Record, candidate Record) (int64, error) {
	return Replay(history).Append(candidate)
}
