// Package groestl512 implements the Grøstl-512 hash algorithm, final-round
// (tweaked) version: a 1024-bit AES-derived state driven through the P and Q
// permutations with 14 rounds each.
package groestl512

import (
	"encoding/binary"
	"hash"

	"github.com/pozoqoproject/nist5/internal/aesround"
)

const (
	// Size is the size of a Grøstl-512 digest in bytes.
	Size = 64

	// BlockSize is the block size of Grøstl-512 in bytes.
	BlockSize = 128
)

const (
	rounds = 14
	cols   = 16
)

// Per-row rotation amounts for ShiftBytes in the P and Q permutations.
var (
	shiftP = [8]int{0, 1, 2, 3, 4, 5, 6, 11}
	shiftQ = [8]int{1, 3, 5, 11, 0, 2, 4, 6}
)

// mixCoeff is the circulant MixBytes matrix circ(2, 2, 3, 4, 5, 3, 5, 7).
var mixCoeff = [8]byte{2, 2, 3, 4, 5, 3, 5, 7}

type digest struct {
	h      [BlockSize]byte
	buf    [BlockSize]byte
	n      int
	blocks uint64
}

// New returns a new hash.Hash computing the Grøstl-512 digest.
func New() hash.Hash {
	d := new(digest)
	d.Reset()
	return d
}

// Sum returns the Grøstl-512 digest of data.
func Sum(data []byte) [Size]byte {
	var d digest
	d.Reset()
	d.Write(data)
	return d.checkSum()
}

func (d *digest) Reset() {
	d.h = [BlockSize]byte{}
	// IV: the digest bit length as a big-endian 64-bit value in the last
	// state word.
	d.h[126] = 0x02
	d.h[127] = 0x00
	d.n = 0
	d.blocks = 0
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
			d.compress(&d.buf)
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
	// Padding: 0x80, zeroes, then the total number of blocks (including
	// the padding block) as a big-endian 64-bit value.
	d.buf[d.n] = 0x80
	d.n++
	if d.n > 120 {
		for i := d.n; i < BlockSize; i++ {
			d.buf[i] = 0
		}
		d.compress(&d.buf)
		d.n = 0
	}
	for i := d.n; i < 120; i++ {
		d.buf[i] = 0
	}
	binary.BigEndian.PutUint64(d.buf[120:], d.blocks+1)
	d.compress(&d.buf)

	// Output transform: trunc512(P(h) xor h), keeping the trailing half.
	p := d.h
	permute(&p, false)
	var out [Size]byte
	for i := range out {
		out[i] = p[64+i] ^ d.h[64+i]
	}
	return out
}

// compress folds one message block into the chaining value:
// h = P(h xor m) xor Q(m) xor h.
func (d *digest) compress(m *[BlockSize]byte) {
	var p, q [BlockSize]byte
	for i := range p {
		p[i] = d.h[i] ^ m[i]
		q[i] = m[i]
	}
	permute(&p, false)
	permute(&q, true)
	for i := range d.h {
		d.h[i] ^= p[i] ^ q[i]
	}
	d.blocks++
}

// permute applies the P (q=false) or Q (q=true) permutation in place. The
// 128 bytes map onto an 8x16 matrix column-wise: byte k sits at row k%8,
// column k/8.
func permute(state *[BlockSize]byte, q bool) {
	var x, t [8][cols]byte
	for k, b := range state {
		x[k%8][k/8] = b
	}

	for r := 0; r < rounds; r++ {
		// AddRoundConstant.
		if !q {
			for j := 0; j < cols; j++ {
				x[0][j] ^= byte(j<<4) ^ byte(r)
			}
		} else {
			for i := 0; i < 8; i++ {
				for j := 0; j < cols; j++ {
					x[i][j] ^= 0xff
				}
			}
			for j := 0; j < cols; j++ {
				x[7][j] ^= byte(j<<4) ^ byte(r)
			}
		}

		// SubBytes.
		for i := 0; i < 8; i++ {
			for j := 0; j < cols; j++ {
				x[i][j] = aesround.Sub(x[i][j])
			}
		}

		// ShiftBytes: row i rotates left by its shift amount.
		for i := 0; i < 8; i++ {
			s := shiftP[i]
			if q {
				s = shiftQ[i]
			}
			for j := 0; j < cols; j++ {
				t[i][j] = x[i][(j+s)%cols]
			}
		}

		// MixBytes.
		for j := 0; j < cols; j++ {
			for i := 0; i < 8; i++ {
				var v byte
				for k := 0; k < 8; k++ {
					v ^= aesround.Mul(
						mixCoeff[(k-i+8)%8], t[k][j],
					)
				}
				x[i][j] = v
			}
		}
	}

	for k := range state {
		state[k] = x[k%8][k/8]
	}
}
