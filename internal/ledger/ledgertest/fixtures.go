// Package ledgertest provides well known keys and record builders for tests.
package ledgertest

import (
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"

	"github.com/hedisam/txchain/internal/identity"
	"github.com/hedisam/txchain/internal/ledger"
)

// Development keys shared with common local ethereum tooling. Never use them for anything of value.
const (
	MinterKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	AliceKey  = "59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
	BobKey    = "5de4111afa1a4b94908f83103eb1f1706367c2e68ca870fc3fb9a804cdab365a"
	CarolKey  = "7c852118294e51e653712a81e05800f419141751be58f605c371e15141b007a6"
)

// Checksummed addresses of the keys above.
const (
	MinterAddr = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	AliceAddr  = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	BobAddr    = "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"
	CarolAddr  = "0x90F79bf6EB2c4f870365E785982E1f101E93b906"
)

// GenesisLedger returns a three record ledger signed by third party tooling: a genesis record minting 225 to the
// minter followed by two transfers signed by the minter.
func GenesisLedger(t testing.TB) []ledger.Record {
	t.Helper()

	return []ledger.Record{
		{
			ID:        0,
			PrevID:    nil,
			Recipient: MinterAddr,
			Amount:    225,
			Signature: MustSignature(t, "0x189fe565250606f7704cfd297c24aef6d355ca600aee3f483dffb747bbaac307552a627a5b248b03d0c565155c1c549b93a047f4f9df33ddc5d2ab0fdd51edfe"),
			Recovery:  0,
		},
		{
			ID:        1,
			PrevID:    ledger.Uint64(0),
			Recipient: AliceAddr,
			Amount:    50,
			Signature: MustSignature(t, "0xc2272cf09d7e8c56fef0a90584605387a7d5b8a3864ba41c32408c0ce4db23743d8a777c04d9de7cbb5fcab7499d5cf2624f2d344b465a253806be8b3f83b9c5"),
			Recovery:  0,
		},
		{
			ID:        2,
			PrevID:    ledger.Uint64(1),
			Recipient: BobAddr,
			Amount:    75,
			Signature: MustSignature(t, "0x28f11afe0105361fb76a263032f892e38a3ec791a425dd06544c81041d3f96de7c13dbbb1418782dad2676b04fbde18c36633c918b0176b2b3eb9d7f18642d81"),
			Recovery:  0,
		},
	}
}

// GenesisSigner is the account that signed the genesis record of GenesisLedger.
const GenesisSigner = "0x57c1918e6c46c0d56f8405bfec5f7921f954d371"

func MustKey(t testing.TB, hexKey string) *secp256k1.PrivateKey {
	t.Helper()

	key, err := identity.ParsePrivateKey(hexKey)
	require.NoError(t, err)
	return key
}

func MustAddress(t testing.TB, s string) identity.Address {
	t.Helper()

	addr, err := identity.ParseAddress(s)
	require.NoError(t, err)
	return addr
}

func MustSignature(t testing.TB, s string) identity.Signature {
	t.Helper()

	sig, err := identity.ParseSignature(s)
	require.NoError(t, err)
	return sig
}

// Signed builds a record and signs it with hexKey.
func Signed(t testing.TB, hexKey string, id uint64, prevID *uint64, recipient string, amount int64) ledger.Record {
	t.Helper()

	r, err := ledger.Sign(ledger.Record{
		ID:        id,
		PrevID:    prevID,
		Recipient: recipient,
		Amount:    amount,
	}, MustKey(t, hexKey))
	require.NoError(t, err)
	return r
}

// HighS returns r with its signature replaced by the high-S twin. The twin still recovers the actual signer but is
// not a canonical encoding.
func HighS(r ledger.Record) ledger.Record {
	var s secp256k1.ModNScalar
	s.SetByteSlice(r.Signature[32:])
	s.Negate()
	b := s.Bytes()
	copy(r.Signature[32:], b[:])
	r.Recovery ^= 1
	return r
}
