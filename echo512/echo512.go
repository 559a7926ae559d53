// Package echo512 implements the ECHO-512 hash algorithm: a 2048-bit
// internal state of sixteen AES words, folded against 1024-bit blocks by 10
// rounds of BIG.SubWords, BIG.ShiftRows and BIG.MixColumns under a keyed
// counter.
package echo512

import (
	"encoding/binary"
	"hash"

	"github.com/pozoqoproject/nist5/internal/aesround"
)

const (
	// Size is the size of an ECHO-512 digest in bytes.
	Size = 64

	// BlockSize is the block size of ECHO-512 in bytes.
	BlockSize = 128
)

const rounds = 10

// word is one 128-bit AES state.
type word = [16]byte

type digest struct {
	v    [8]word
	buf  [BlockSize]byte
	n    int
	bits uint64
}

// New returns a new hash.Hash computing the ECHO-512 digest.
func New() hash.Hash {
	d := new(digest)
	d.Reset()
	return d
}

// Sum returns the ECHO-512 digest of data.
func Sum(data []byte) [Size]byte {
	var d digest
	d.Reset()
	d.Write(data)
	return d.checkSum()
}

func (d *digest) Reset() {
	d.v = [8]word{}
	// Each chaining word holds the digest bit size, little endian.
	for i := range d.v {
		d.v[i][0] = 0x00
		d.v[i][1] = 0x02
	}
	d.n = 0
	d.bits = 0
}

func (d *digest) Size() int { return Size }

func (d *digest) BlockSize() int { return BlockSize }

func (d *digest) Write(p []byte) (int, error) {
	written := len(p)
	for len(p) > 0 {
		n := copy(d.buf[d.n:], p)
		d.n += n
		p = p[n:]
		if d.n == BlockSize {
			d.bits += BlockSize * 8
			compress(&d.v, &d.buf, d.bits)
			d.n = 0
		}
	}
	return written, nil
}

// Sum appends the digest to b without disturbing the streaming state.
func (d *digest) Sum(b []byte) []byte {
	dd := *d
	sum := dd.checkSum()
	return append(b, sum[:]...)
}

func (d *digest) checkSum() [Size]byte {
	bits := d.bits + uint64(d.n)*8

	// A block holding the end of the message carries the total bit count;
	// a padding-only block carries zero.
	cnt := bits
	if d.n == 0 {
		cnt = 0
	}

	d.buf[d.n] = 0x80
	if d.n <= 109 {
		for i := d.n + 1; i < 110; i++ {
			d.buf[i] = 0
		}
	} else {
		for i := d.n + 1; i < BlockSize; i++ {
			d.buf[i] = 0
		}
		compress(&d.v, &d.buf, cnt)
		cnt = 0
		for i := 0; i < 110; i++ {
			d.buf[i] = 0
		}
	}

	// Trailer: 16-bit digest size, then the 128-bit bit length, little
	// endian.
	d.buf[110] = 0x00
	d.buf[111] = 0x02
	binary.LittleEndian.PutUint64(d.buf[112:], bits)
	for i := 120; i < BlockSize; i++ {
		d.buf[i] = 0
	}
	compress(&d.v, &d.buf, cnt)

	var out [Size]byte
	for i := 0; i < 4; i++ {
		copy(out[16*i:], d.v[i][:])
	}
	return out
}

// compress folds one 128-byte block into the chaining value. The sixteen
// words form a 4x4 matrix with word i at row i%4, column i/4; the first two
// columns hold the chaining value and the last two the message block.
func compress(v *[8]word, block *[BlockSize]byte, cnt uint64) {
	var w, nw [16]word
	for i := 0; i < 8; i++ {
		w[i] = v[i]
		copy(w[8+i][:], block[16*i:])
	}

	k := cnt
	for r := 0; r < rounds; r++ {
		// BIG.SubWords: two AES rounds per word, keyed by the running
		// counter and the (zero) salt.
		for i := 0; i < 16; i++ {
			var key, zero word
			binary.LittleEndian.PutUint64(key[:8], k)
			aesround.RoundKey(&w[i], &key)
			aesround.RoundKey(&w[i], &zero)
			k++
		}

		// BIG.ShiftRows: row i rotates left by i columns.
		for c := 0; c < 4; c++ {
			for row := 0; row < 4; row++ {
				nw[c*4+row] = w[((c+row)&3)*4+row]
			}
		}

		// BIG.MixColumns: byte-sliced AES column mix across each
		// column of words.
		for c := 0; c < 4; c++ {
			for b := 0; b < 16; b++ {
				a0 := nw[c*4][b]
				a1 := nw[c*4+1][b]
				a2 := nw[c*4+2][b]
				a3 := nw[c*4+3][b]
				w[c*4][b] = aesround.Mul(a0, 2) ^
					aesround.Mul(a1, 3) ^ a2 ^ a3
				w[c*4+1][b] = a0 ^ aesround.Mul(a1, 2) ^
					aesround.Mul(a2, 3) ^ a3
				w[c*4+2][b] = a0 ^ a1 ^ aesround.Mul(a2, 2) ^
					aesround.Mul(a3, 3)
				w[c*4+3][b] = aesround.Mul(a0, 3) ^ a1 ^ a2 ^
					aesround.Mul(a3, 2)
			}
		}
	}

	// BIG.Final: feed both state halves and the message forward into the
	// chaining value.
	for i := 0; i < 8; i++ {
		for b := 0; b < 16; b++ {
			v[i][b] ^= block[16*i+b] ^ w[i][b] ^ w[8+i][b]
		}
	}
}
