package identity_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedisam/txchain/internal/identity"
)

const (
	// well known development keys and their addresses
	minterKey  = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	minterAddr = "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"
	aliceKey   = "59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
	aliceAddr  = "0x70997970c51812dc3a010c7d01b50e0d17dc79c8"

	// keccak256 of {"id":1,"prevId":0,"recipient":"0x70997970C51812dc3A010C7d01b50e0d17dc79C8","amount":50}
	transferDigest = "8bd6c95a1b4eb6fe30f93a772481d05039db5c0776a7a1be43156b77dfe296c6"
	transferSig    = "0xc2272cf09d7e8c56fef0a90584605387a7d5b8a3864ba41c32408c0ce4db23743d8a777c04d9de7cbb5fcab7499d5cf2624f2d344b465a253806be8b3f83b9c5"
	// same r as transferSig with s replaced by n-s
	transferSigHighS = "0xc2272cf09d7e8c56fef0a90584605387a7d5b8a3864ba41c32408c0ce4db2374c2758883fb26218344a03548b662a30c585fafb26402461687cba00190b2877c"
)

func TestParseAddress(t *testing.T) {
	tests := map[string]struct {
		input       string
		expected    string
		errExpected bool
	}{
		"lowercase with prefix": {
			input:    "0x70997970c51812dc3a010c7d01b50e0d17dc79c8",
			expected: aliceAddr,
		},
		"checksummed": {
			input:    "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
			expected: aliceAddr,
		},
		"no prefix and whitespace": {
			input:    "  70997970C51812dc3A010C7d01b50e0d17dc79C8 ",
			expected: aliceAddr,
		},
		"too short": {
			input:       "0x1234",
			errExpected: true,
		},
		"not hex": {
			input:       "0xZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZ",
			errExpected: true,
		},
		"empty": {
			input:       "",
			errExpected: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			addr, err := identity.ParseAddress(test.input)
			if test.errExpected {
				require.ErrorIs(t, err, identity.ErrInvalidAddress)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expected, addr.String())
		})
	}
}

func TestAddressText(t *testing.T) {
	var addr identity.Address
	require.NoError(t, addr.UnmarshalText([]byte("0xF39FD6E51AAD88F6F4CE6AB8827279CFFFB92266")))

	text, err := addr.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, minterAddr, string(text))
	assert.False(t, addr.IsZero())
	assert.True(t, identity.Address{}.IsZero())
}

func TestKeccak256(t *testing.T) {
	empty := identity.Keccak256()
	assert.Equal(t, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", hex.EncodeToString(empty[:]))

	split := identity.Keccak256([]byte("hello "), []byte("world"))
	joined := identity.Keccak256([]byte("hello world"))
	assert.Equal(t, joined, split)
}

func TestRecoverAddress(t *testing.T) {
	tests := map[string]struct {
		digest       string
		sig          string
		recovery     uint8
		expectedAddr string
		expectedErr  error
	}{
		"signed by minter": {
			digest:       transferDigest,
			sig:          transferSig,
			recovery:     0,
			expectedAddr: minterAddr,
		},
		"genesis record signer": {
			digest:       "083ef35a52e218680fe9bb08082ec2385842f8f9fb72dee0bb6824cf41e81934",
			sig:          "0x189fe565250606f7704cfd297c24aef6d355ca600aee3f483dffb747bbaac307552a627a5b248b03d0c565155c1c549b93a047f4f9df33ddc5d2ab0fdd51edfe",
			recovery:     0,
			expectedAddr: "0x57c1918e6c46c0d56f8405bfec5f7921f954d371",
		},
		"wrong parity recovers someone else": {
			digest:   transferDigest,
			sig:      transferSig,
			recovery: 1,
		},
		"recovery out of range": {
			digest:      transferDigest,
			sig:         transferSig,
			recovery:    4,
			expectedErr: identity.ErrMalformedSignature,
		},
		"zero r": {
			digest:      transferDigest,
			sig:         "0x" + strings.Repeat("0", 64) + strings.Repeat("1", 64),
			expectedErr: identity.ErrMalformedSignature,
		},
		"s not below group order": {
			digest:      transferDigest,
			sig:         "0x" + strings.Repeat("1", 64) + "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141",
			expectedErr: identity.ErrMalformedSignature,
		},
		"overflow bit with large r": {
			digest:      transferDigest,
			sig:         transferSig,
			recovery:    2,
			expectedErr: identity.ErrRecoveryFailure,
		},
		"r is not an x coordinate on the curve": {
			digest:      transferDigest,
			sig:         "0x" + strings.Repeat("0", 63) + "5" + strings.Repeat("0", 63) + "1",
			expectedErr: identity.ErrRecoveryFailure,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			digest, err := hex.DecodeString(test.digest)
			require.NoError(t, err)
			sig, err := identity.ParseSignature(test.sig)
			require.NoError(t, err)

			addr, err := identity.RecoverAddress(digest, sig, test.recovery)
			if test.expectedErr != nil {
				require.ErrorIs(t, err, test.expectedErr)
				return
			}
			require.NoError(t, err)
			if test.expectedAddr == "" {
				assert.NotEqual(t, minterAddr, addr.String())
				return
			}
			assert.Equal(t, test.expectedAddr, addr.String())
		})
	}
}

func TestRecoverAddressIsDeterministic(t *testing.T) {
	digest, err := hex.DecodeString(transferDigest)
	require.NoError(t, err)
	sig, err := identity.ParseSignature(transferSig)
	require.NoError(t, err)

	first, err := identity.RecoverAddress(digest, sig, 0)
	require.NoError(t, err)
	for range 5 {
		addr, err := identity.RecoverAddress(digest, sig, 0)
		require.NoError(t, err)
		assert.Equal(t, first, addr)
	}
}

func TestRecoverPubKeyRejectsShortDigest(t *testing.T) {
	sig, err := identity.ParseSignature(transferSig)
	require.NoError(t, err)

	_, err = identity.RecoverPubKey([]byte{1, 2, 3}, sig, 0)
	require.ErrorIs(t, err, identity.ErrInvalidDigest)
}

func TestVerifyRejectsHighS(t *testing.T) {
	digest, err := hex.DecodeString(transferDigest)
	require.NoError(t, err)

	low, err := identity.ParseSignature(transferSig)
	require.NoError(t, err)
	high, err := identity.ParseSignature(transferSigHighS)
	require.NoError(t, err)

	pub, err := identity.RecoverPubKey(digest, low, 0)
	require.NoError(t, err)
	assert.True(t, identity.Verify(digest, low, pub))

	// the high-S twin still recovers the same key with the flipped parity bit
	highPub, err := identity.RecoverPubKey(digest, high, 1)
	require.NoError(t, err)
	assert.Equal(t, minterAddr, identity.AddressFromPubKey(highPub).String())
	assert.False(t, identity.Verify(digest, high, highPub))
}

func TestSignAndRecover(t *testing.T) {
	digest := identity.Keccak256([]byte(`{"id":7,"prevId":6,"recipient":"0x0","amount":1}`))

	tests := map[string]struct {
		key      string
		expected string
	}{
		"minter":         {key: minterKey, expected: minterAddr},
		"minter with 0x": {key: "0x" + minterKey, expected: minterAddr},
		"alice":          {key: aliceKey, expected: aliceAddr},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			key, err := identity.ParsePrivateKey(test.key)
			require.NoError(t, err)

			sig, recovery, err := identity.Sign(digest[:], key)
			require.NoError(t, err)
			assert.LessOrEqual(t, recovery, uint8(identity.MaxRecovery))

			pub, err := identity.RecoverPubKey(digest[:], sig, recovery)
			require.NoError(t, err)
			assert.Equal(t, test.expected, identity.AddressFromPubKey(pub).String())
			assert.True(t, identity.Verify(digest[:], sig, pub))

			other := identity.Keccak256([]byte("another message"))
			assert.False(t, identity.Verify(other[:], sig, pub))
		})
	}
}

func TestParsePrivateKey(t *testing.T) {
	tests := map[string]string{
		"not hex":   "zz",
		"too short": "0x1234",
		"zero":      strings.Repeat("0", 64),
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := identity.ParsePrivateKey(input)
			require.Error(t, err)
		})
	}
}

func TestParseSignature(t *testing.T) {
	sig, err := identity.ParseSignature(strings.ToUpper(transferSig[2:]))
	require.NoError(t, err)
	assert.Equal(t, transferSig, sig.String())

	_, err = identity.ParseSignature("0x1234")
	require.ErrorIs(t, err, identity.ErrMalformedSignature)
}
