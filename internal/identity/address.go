package identity

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/sha3"
)

const (
	// AddressLength is the number of bytes in an account address.
	AddressLength = 20
	// DigestLength is the output size of the keccak-256 hash used for record digests.
	DigestLength = 32

	hexPrefix = "0x"
)

var (
	// ErrInvalidAddress is returned when a string cannot be parsed as an address.
	ErrInvalidAddress = errors.New("invalid address")
)

// Address identifies an account. It is the low 20 bytes of the keccak-256 hash of an uncompressed public key.
type Address [AddressLength]byte

// ParseAddress parses a 40-character hex string, with or without the '0x' prefix. Comparison is case-insensitive
// so checksummed and lowercase forms of the same address parse to the same value.
func ParseAddress(s string) (Address, error) {
	var addr Address

	raw := strings.ToLower(strings.TrimSpace(s))
	raw = strings.TrimPrefix(raw, hexPrefix)
	if len(raw) != 2*AddressLength {
		return addr, fmt.Errorf("%w: expected %d hex characters, got %d", ErrInvalidAddress, 2*AddressLength, len(raw))
	}

	_, err := hex.Decode(addr[:], []byte(raw))
	if err != nil {
		return addr, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	return addr, nil
}

// String returns the canonical lowercase, '0x' prefixed form.
func (a Address) String() string {
	return hexPrefix + hex.EncodeToString(a[:])
}

// IsZero reports whether a is the all-zero address.
func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	addr, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// AddressFromPubKey derives the account address of the given public key.
func AddressFromPubKey(pub *secp256k1.PublicKey) Address {
	// drop the 0x04 uncompressed-format marker
	hash := Keccak256(pub.SerializeUncompressed()[1:])

	var addr Address
	copy(addr[:], hash[DigestLength-AddressLength:])
	return addr
}

// Keccak256 returns the legacy (pre-NIST) keccak-256 hash of the concatenated inputs.
func Keccak256(data ...[]byte) [DigestLength]byte {
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		h.Write(b)
	}

	var digest [DigestLength]byte
	h.Sum(digest[:0])
	return digest
}
