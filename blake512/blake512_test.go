package blake512

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

// seq returns n sequential bytes starting at zero.
func seq(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

// TestVectors checks the digest against known-answer vectors, including the
// official single-zero-byte vector from the BLAKE submission.
func TestVectors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{
			name:  "empty",
			input: nil,
			want: "a8cfbbd73726062df0c6864dda65defe58ef0cc52a56250" +
				"90fa17601e1eecd1b628e94f396ae402a00acc9eab77b4d" +
				"4c2e852aaaa25a636d80af3fc7913ef5b8",
		},
		{
			name:  "zero byte",
			input: []byte{0x00},
			want: "97961587f6d970faba6d2478045de6d1fabd09b61ae5093" +
				"2054d52bc29d31be4ff9102b9f69e2bbdb83be13d4b9c06" +
				"091e5fa0b48bd081b634058be0ec49beb3",
		},
		{
			name:  "abc",
			input: []byte("abc"),
			want: "14266c7c704a3b58fb421ee69fd005fcc6eeff742136be6" +
				"7435df995b7c986e7cbde4dbde135e7689c354d2bc5b8d2" +
				"60536c554b4f84c118e61efc576fed7cd3",
		},
		{
			name:  "64 sequential bytes",
			input: seq(64),
			want: "4d47291b807750d2ce6ced17ae71dc24f5a3205f4fe3095" +
				"37488242c4420cd32d997beda4d560200cbcf3e9d68143e" +
				"69f08c54b82ce77db7c22d0e17b5a1363e",
		},
		{
			name:  "one full block",
			input: seq(128),
			want: "d8501cdaf83ff9159d68e065b4d112bf2e96c570d2eae9e" +
				"eddcf44f62fa221148d2d53722b58778ad681fc8a441ded" +
				"46fd9e9eb8c58b6e35aa635c7ae0e028f0",
		},
		{
			name:  "two blocks with tail",
			input: seq(200),
			want: "e327afcd4b6113e8f9571f030f60b4b85ea29df58c35ac1" +
				"d0daceefe9edb17c6ce5a8bf5934214da6a3746f72c8b96" +
				"cfce9625f4edf157408d67a6d3071d5980",
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

// TestSumDoesNotDisturbState checks that Sum can be called mid-stream.
func TestSumDoesNotDisturbState(t *testing.T) {
	msg := seq(200)

	h := New()
	_, err := h.Write(msg)
	require.NoError(t, err)

	first := h.Sum(nil)
	second := h.Sum(nil)
	require.Equal(t, first, second)
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
