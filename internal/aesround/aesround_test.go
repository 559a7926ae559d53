package aesround

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSubKnownValues checks the S-box against entries from the AES
// specification.
func TestSubKnownValues(t *testing.T) {
	t.Parallel()

	require.Equal(t, byte(0x63), Sub(0x00))
	require.Equal(t, byte(0x7c), Sub(0x01))
	require.Equal(t, byte(0xed), Sub(0x53))
	require.Equal(t, byte(0x16), Sub(0xff))
}

// TestSubBijective asserts the S-box is a permutation of the byte values.
func TestSubBijective(t *testing.T) {
	t.Parallel()

	var seen [256]bool
	for i := 0; i < 256; i++ {
		out := Sub(byte(i))
		require.False(t, seen[out], "duplicate S-box output %#x", out)
		seen[out] = true
	}
}

// TestMul checks the GF(2^8) multiplication against the worked example from
// the AES specification and a few algebraic identities.
func TestMul(t *testing.T) {
	t.Parallel()

	// {57} * {83} = {c1} per FIPS-197 section 4.2.
	require.Equal(t, byte(0xc1), Mul(0x57, 0x83))

	for i := 0; i < 256; i++ {
		a := byte(i)

		// 1 is the multiplicative identity and 0 annihilates.
		require.Equal(t, a, Mul(a, 1))
		require.Equal(t, byte(0), Mul(a, 0))

		// Multiplication is commutative.
		require.Equal(t, Mul(a, 0x1b), Mul(0x1b, a))

		// Multiplication distributes over addition (xor).
		require.Equal(
			t, Mul(a, 0x03), Mul(a, 0x01)^Mul(a, 0x02),
		)
	}
}

// TestRoundKeyZero asserts that a round with an all-zero key matches the
// unkeyed round.
func TestRoundKeyZero(t *testing.T) {
	t.Parallel()

	var st, st2, key [16]byte
	for i := range st {
		st[i] = byte(i * 19)
		st2[i] = st[i]
	}

	Round(&st)
	RoundKey(&st2, &key)
	require.Equal(t, st, st2)
}
