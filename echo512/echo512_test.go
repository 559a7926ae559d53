package echo512

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func seq(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

// TestVectors checks the digest against the recorded known-answer vectors.
func TestVectors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{
			name:  "empty",
			input: nil,
			want: "158f58cc79d300a9aa292515049275d051a28ab931726d0" +
				"ec44bdd9faef4a702c36db9e7922fff077402236465833c" +
				"5cc76af4efc352b4b44c7fa15aa0ef234e",
		},
		{
			name:  "zero byte",
			input: []byte{0x00},
			want: "dfd69d4e2a71541803993f5a3d6727228100d2646392269" +
				"031965b0425c7442bbc7d42082d6b7954c807509fb1a719" +
				"38dfa034208edb178e33d6f702b75d10b3",
		},
		{
			name:  "abc",
			input: []byte("abc"),
			want: "3bf04ec89d67e0dafd1b8ab26b176abaead6b3cdc706ff7" +
				"198c3c6045e77d4eaf64cd90af9c5a7674919b90ff8c9b4" +
				"a7554d6cfeffb334406ec233fb0b0dd6bc",
		},
		{
			name:  "64 sequential bytes",
			input: seq(64),
			want: "2f7a64cec7e07c9d791f902b838e9a776c03da43ef8858e" +
				"89c16bbfa7eff641d5e309d9a51e13177cbb86fb1021070" +
				"c64763fa93b39824dafd773154cf2ec058",
		},
		{
			name:  "one full block",
			input: seq(128),
			want: "d37a5967e4ab8e69c2164486866e9159523be40ea4b852e" +
				"2ff166c4a6577da194da5333d0556bbde82c6e620cf6f83" +
				"9cf5c0a5a08db6ac8e4c580afd6af4fa24",
		},
		{
			name:  "two blocks with tail",
			input: seq(200),
			want: "61c10247231339fe1649319067997f656a1a90a0482763a" +
				"227378c96eaf07eb984018a897d0ed453729ca700d21753" +
				"432c0cabef97ea9b32fcbd61268d0f7d11",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sum := Sum(test.input)
			require.Equal(t, test.want, hex.EncodeToString(sum[:]))

			h := New()
			_, err := h.Write(test.input)
			require.NoError(t, err)
			require.Equal(
				t, test.want, hex.EncodeToString(h.Sum(nil)),
			)
		})
	}
}

// TestSplitWrites verifies that absorbing a message across arbitrary write
// boundaries gives the same digest as a single write.
func TestSplitWrites(t *testing.T) {
	msg := seq(200)
	want := Sum(msg)

	for _, split := range []int{1, 63, 64, 127, 128, 129, 199} {
		h := New()
		_, err := h.Write(msg[:split])
		require.NoError(t, err)
		_, err = h.Write(msg[split:])
		require.NoError(t, err)

		require.Equal(t, want[:], h.Sum(nil), "split at %d", split)
	}
}

// TestReset checks that a reset instance matches a fresh one.
func TestReset(t *testing.T) {
	h := New()
	_, err := h.Write([]byte("garbage"))
	require.NoError(t, err)

	h.Reset()
	_, err = h.Write([]byte("abc"))
	require.NoError(t, err)

	want := Sum([]byte("abc"))
	require.Equal(t, want[:], h.Sum(nil))
}

// TestInterface pins the hash.Hash size accounting.
func TestInterface(t *testing.T) {
	h := New()
	require.Equal(t, Size, h.Size())
	require.Equal(t, BlockSize, h.BlockSize())
	require.Len(t, h.Sum(nil), Size)
}
