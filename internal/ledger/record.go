package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/hedisam/txchain/internal/identity"
)

// Record is a signed value transfer. Records are values: once signed, none of the fields should change, since any
// change to id, prevId, recipient or amount invalidates the signature.
//
// The sender is deliberately absent: it is recovered from the signature every time the record is validated.
type Record struct {
	ID     uint64  `json:"id"`
	PrevID *uint64 `json:"prevId"`
	// Recipient is kept exactly as submitted since it is part of the signed content.
	Recipient string             `json:"recipient"`
	Amount    int64              `json:"amount"`
	Signature identity.Signature `json:"signature"`
	Recovery  uint8              `json:"recovery"`
}

// IsGenesis reports whether r starts a chain.
func (r Record) IsGenesis() bool {
	return r.PrevID == nil
}

// canonicalRecord is the signed subset of a Record. Field order is part of the signed byte format.
type canonicalRecord struct {
	ID        uint64  `json:"id"`
	PrevID    *uint64 `json:"prevId"`
	Recipient string  `json:"recipient"`
	Amount    int64   `json:"amount"`
}

// CanonicalBytes returns the compact JSON form of the record without its signature fields:
//
//	{"id":1,"prevId":0,"recipient":"0x70997970C51812dc3A010C7d01b50e0d17dc79C8","amount":50}
func (r Record) CanonicalBytes() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err := enc.Encode(canonicalRecord{
		ID:        r.ID,
		PrevID:    r.PrevID,
		Recipient: r.Recipient,
		Amount:    r.Amount,
	})
	if err != nil {
		return nil, fmt.Errorf("encode canonical record: %w", err)
	}

	// Encode terminates every value with a newline which is not part of the signed content
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// Digest returns the keccak-256 hash of the canonical bytes. This is the message signed by the sender.
func (r Record) Digest() ([identity.DigestLength]byte, error) {
	data, err := r.CanonicalBytes()
	if err != nil {
		return [identity.DigestLength]byte{}, err
	}

	return identity.Keccak256(data), nil
}

// Sign returns a copy of r carrying a signature of its digest by key.
func Sign(r Record, key *secp256k1.PrivateKey) (Record, error) {
	digest, err := r.Digest()
	if err != nil {
		return Record{}, fmt.Errorf("compute record digest: %w", err)
	}

	sig, recovery, err := identity.Sign(digest[:], key)
	if err != nil {
		return Record{}, fmt.Errorf("sign record digest: %w", err)
	}

	r.Signature = sig
	r.Recovery = recovery
	return r, nil
}

// Uint64 returns a pointer to v. Useful for filling PrevID.
func Uint64(v uint64) *uint64 {
	return &v
}
