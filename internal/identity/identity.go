package identity

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

const (
	// SignatureLength is the size of a compact (r || s) signature.
	SignatureLength = 64
	// MaxRecovery is the largest recovery value accepted on secp256k1.
	MaxRecovery = 3

	// compactRecoveryOffset is the magic offset of the recovery byte in the 65-byte compact format used by
	// the secp256k1 ecdsa package.
	compactRecoveryOffset = 27
)

var (
	// ErrMalformedSignature is returned for structurally invalid signature or recovery encodings.
	ErrMalformedSignature = errors.New("malformed signature")
	// ErrRecoveryFailure is returned when no valid public key can be recovered from a signature.
	ErrRecoveryFailure = errors.New("public key recovery failed")
	// ErrInvalidDigest is returned when a digest does not have the hash output length.
	ErrInvalidDigest = errors.New("invalid digest")
)

// Signature is a compact (r || s) secp256k1 signature, both components big-endian.
type Signature [SignatureLength]byte

// ParseSignature parses a 128-character hex string, with or without the '0x' prefix.
func ParseSignature(s string) (Signature, error) {
	var sig Signature

	raw := strings.TrimPrefix(strings.TrimSpace(s), hexPrefix)
	if len(raw) != 2*SignatureLength {
		return sig, fmt.Errorf("%w: expected %d hex characters, got %d", ErrMalformedSignature, 2*SignatureLength, len(raw))
	}

	_, err := hex.Decode(sig[:], []byte(raw))
	if err != nil {
		return sig, fmt.Errorf("%w: %w", ErrMalformedSignature, err)
	}

	return sig, nil
}

func (s Signature) String() string {
	return hexPrefix + hex.EncodeToString(s[:])
}

func (s Signature) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Signature) UnmarshalText(text []byte) error {
	sig, err := ParseSignature(string(text))
	if err != nil {
		return err
	}
	*s = sig
	return nil
}

// RecoverPubKey recovers the public key that produced sig over digest. The recovery value selects which of the
// candidate points is used: bit 0 is the parity of the y coordinate and bit 1 marks an x coordinate >= n.
func RecoverPubKey(digest []byte, sig Signature, recovery uint8) (*secp256k1.PublicKey, error) {
	if len(digest) != DigestLength {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidDigest, DigestLength, len(digest))
	}
	if recovery > MaxRecovery {
		return nil, fmt.Errorf("%w: recovery %d out of range [0, %d]", ErrMalformedSignature, recovery, MaxRecovery)
	}

	var compact [1 + SignatureLength]byte
	compact[0] = compactRecoveryOffset + recovery
	copy(compact[1:], sig[:])

	pub, _, err := ecdsa.RecoverCompact(compact[:], digest)
	if err != nil {
		return nil, classifyRecoveryErr(err)
	}

	return pub, nil
}

// RecoverAddress recovers the address of the account that produced sig over digest.
func RecoverAddress(digest []byte, sig Signature, recovery uint8) (Address, error) {
	pub, err := RecoverPubKey(digest, sig, recovery)
	if err != nil {
		return Address{}, err
	}

	return AddressFromPubKey(pub), nil
}

// Verify reports whether sig is a valid signature of digest by pub.
// Only canonical low-S signatures are accepted, so each signature has exactly one valid encoding.
func Verify(digest []byte, sig Signature, pub *secp256k1.PublicKey) bool {
	if len(digest) != DigestLength || pub == nil {
		return false
	}

	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(sig[:32]); overflow || r.IsZero() {
		return false
	}
	if overflow := s.SetByteSlice(sig[32:]); overflow || s.IsZero() {
		return false
	}
	if s.IsOverHalfOrder() {
		return false
	}

	return ecdsa.NewSignature(&r, &s).Verify(digest, pub)
}

// Sign produces a compact signature of digest and the recovery value needed to recover the signer's key.
func Sign(digest []byte, key *secp256k1.PrivateKey) (Signature, uint8, error) {
	var sig Signature
	if len(digest) != DigestLength {
		return sig, 0, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidDigest, DigestLength, len(digest))
	}

	compact := ecdsa.SignCompact(key, digest, false)
	copy(sig[:], compact[1:])

	return sig, compact[0] - compactRecoveryOffset, nil
}

// ParsePrivateKey parses a 32-byte hex encoded private key, with or without the '0x' prefix.
func ParsePrivateKey(s string) (*secp256k1.PrivateKey, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), hexPrefix)
	b, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("decode private key: %w", err)
	}
	if len(b) != secp256k1.PrivKeyBytesLen {
		return nil, fmt.Errorf("private key must be %d bytes, got %d", secp256k1.PrivKeyBytesLen, len(b))
	}

	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(b); overflow || scalar.IsZero() {
		return nil, errors.New("private key is not a valid secp256k1 scalar")
	}

	return secp256k1.NewPrivateKey(&scalar), nil
}

func classifyRecoveryErr(err error) error {
	switch {
	case errors.Is(err, ecdsa.ErrSigInvalidLen),
		errors.Is(err, ecdsa.ErrSigInvalidRecoveryCode),
		errors.Is(err, ecdsa.ErrSigRIsZero),
		errors.Is(err, ecdsa.ErrSigRTooBig),
		errors.Is(err, ecdsa.ErrSigSIsZero),
		errors.Is(err, ecdsa.ErrSigSTooBig):
		return fmt.Errorf("%w: %w", ErrMalformedSignature, err)
	default:
		return fmt.Errorf("%w: %w", ErrRecoveryFailure, err)
	}
}
