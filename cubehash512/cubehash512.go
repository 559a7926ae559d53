// Package cubehash512 implements the CubeHash16/32-512 hash algorithm (the
// official round-2 parameters: 16 rounds per 32-byte block).
package cubehash512

import (
	"encoding/binary"
	"hash"
	"math/bits"
)

const (
	// Size is the size of a CubeHash-512 digest in bytes.
	Size = 64

	// BlockSize is the block size of CubeHash16/32 in bytes.
	BlockSize = 32
)

const blockRounds = 16

// iv is the initial state: (h/8, b, r, 0, ..., 0) transformed for 10r
// rounds, precomputed here.
var iv = initialState()

type digest struct {
	x   [32]uint32
	buf [BlockSize]byte
	n   int
}

// New returns a new hash.Hash computing the CubeHash-512 digest.
func New() hash.Hash {
	d := new(digest)
	d.Reset()
	return d
}

// Sum returns the CubeHash-512 digest of data.
func Sum(data []byte) [Size]byte {
	var d digest
	d.Reset()
	d.Write(data)
	return d.checkSum()
}

func initialState() [32]uint32 {
	var x [32]uint32
	x[0] = Size
	x[1] = BlockSize
	x[2] = blockRounds
	rounds(&x, 10*blockRounds)
	return x
}

func (d *digest) Reset() {
	d.x = iv
	d.n = 0
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
			d.absorb(&d.buf)
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
	// Pad with 0x80 and zeroes; the padded block is always absorbed, so
	// an empty message still drives one block through the state.
	d.buf[d.n] = 0x80
	for i := d.n + 1; i < BlockSize; i++ {
		d.buf[i] = 0
	}
	d.absorb(&d.buf)

	// Finalization: flip the last state bit and run 10r more rounds.
	d.x[31] ^= 1
	rounds(&d.x, 10*blockRounds)

	var out [Size]byte
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(out[4*i:], d.x[i])
	}
	return out
}

func (d *digest) absorb(block *[BlockSize]byte) {
	for i := 0; i < 8; i++ {
		d.x[i] ^= binary.LittleEndian.Uint32(block[4*i:])
	}
	rounds(&d.x, blockRounds)
}

// rounds applies n rounds of the CubeHash transformation.
func rounds(x *[32]uint32, n int) {
	for r := 0; r < n; r++ {
		for i := 0; i < 16; i++ {
			x[16+i] += x[i]
		}
		for i := 0; i < 16; i++ {
			x[i] = bits.RotateLeft32(x[i], 7)
		}
		for i := 0; i < 8; i++ {
			x[i], x[i+8] = x[i+8], x[i]
		}
		for i := 0; i < 16; i++ {
			x[i] ^= x[16+i]
		}
		for i := 16; i < 32; i += 4 {
			x[i], x[i+2] = x[i+2], x[i]
			x[i+1], x[i+3] = x[i+3], x[i+1]
		}
		for i := 0; i < 16; i++ {
			x[16+i] += x[i]
		}
		for i := 0; i < 16; i++ {
			x[i] = bits.RotateLeft32(x[i], 11)
		}
		for i := 0; i < 16; i += 8 {
			for j := i; j < i+4; j++ {
				x[j], x[j+4] = x[j+4], x[j]
			}
		}
		for i := 0; i < 16; i++ {
			x[i] ^= x[16+i]
		}
		for i := 16; i < 32; i += 2 {
			x[i], x[i+1] = x[i+1], x[i]
		}
	}
}
