// Package blake512 implements the BLAKE-512 hash algorithm, as specified
// for the final round of the SHA-3 competition (16 rounds).
package blake512

import (
	"encoding/binary"
	"hash"
)

const (
	// Size is the size of a BLAKE-512 digest in bytes.
	Size = 64

	// BlockSize is the block size of BLAKE-512 in bytes.
	BlockSize = 128
)

// rounds is the number of compression rounds.
const rounds = 16

// iv is the BLAKE-512 initial value, shared with SHA-512.
var iv = [8]uint64{
	0x6a09e667f3bcc908, 0xbb67ae8584caa73b,
	0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
	0x510e527fade682d1, 0x9b05688c2b3e6c1f,
	0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
}

// cst holds the first 1024 bits of the fractional part of pi, used as the
// round constants.
var cst = [16]uint64{
	0x243f6a8885a308d3, 0x13198a2e03707344,
	0xa4093822299f31d0, 0x082efa98ec4e6c89,
	0x452821e638d01377, 0xbe5466cf34e90c6c,
	0xc0ac29b7c97c50dd, 0x3f84d5b5b5470917,
	0x9216d5d98979fb1b, 0xd1310ba698dfb5ac,
	0x2ffd72dbd01adfb7, 0xb8e1afed6a267e96,
	0xba7c9045f12c7f99, 0x24a19947b3916cf7,
	0x0801f2e2858efc16, 0x636920d871574e69,
}

// sigma is the message word permutation schedule.
var sigma = [10][16]int{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{14, 10, 4, 8, 9, 15, 13, 6, 1, 12, 0, 2, 11, 7, 5, 3},
	{11, 8, 12, 0, 5, 2, 15, 13, 10, 14, 3, 6, 7, 1, 9, 4},
	{7, 9, 3, 1, 13, 12, 11, 14, 2, 6, 5, 10, 4, 0, 15, 8},
	{9, 0, 5, 7, 2, 4, 10, 15, 14, 1, 11, 12, 6, 8, 3, 13},
	{2, 12, 6, 10, 0, 11, 8, 3, 4, 13, 7, 5, 15, 14, 1, 9},
	{12, 5, 1, 15, 14, 13, 4, 10, 0, 7, 6, 3, 9, 2, 8, 11},
	{13, 11, 7, 14, 12, 1, 3, 9, 5, 0, 15, 4, 8, 6, 2, 10},
	{6, 15, 14, 9, 11, 3, 0, 8, 12, 2, 13, 7, 1, 4, 10, 5},
	{10, 2, 8, 4, 7, 6, 1, 5, 15, 11, 9, 14, 3, 12, 13, 0},
}

// digest is the streaming state. The t0/t1 pair is the 128-bit message bit
// counter mandated by the specification.
type digest struct {
	h      [8]uint64
	t0, t1 uint64
	buf    [BlockSize]byte
	n      int
}

// New returns a new hash.Hash computing the BLAKE-512 digest.
func New() hash.Hash {
	d := new(digest)
	d.Reset()
	return d
}

// Sum returns the BLAKE-512 digest of data.
func Sum(data []byte) [Size]byte {
	var d digest
	d.Reset()
	d.Write(data)
	return d.checkSum()
}

func (d *digest) Reset() {
	d.h = iv
	d.t0, d.t1 = 0, 0
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
			// The counter tracks message bits absorbed so far,
			// including this block.
			d.t0 += BlockSize * 8
			if d.t0 < BlockSize*8 {
				d.t1++
			}
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
	// Total message length in bits, as a 128-bit quantity.
	lo := d.t0 + uint64(d.n)*8
	hi := d.t1
	if lo < d.t0 {
		hi++
	}
	var length [16]byte
	binary.BigEndian.PutUint64(length[:8], hi)
	binary.BigEndian.PutUint64(length[8:], lo)

	if d.n <= 111 {
		// The padding and length fit in one final block. A block
		// holding message bits is compressed with the full counter; a
		// padding-only block carries a zero counter.
		d.t0, d.t1 = lo, hi
		if d.n == 0 {
			d.t0, d.t1 = 0, 0
		}
		d.buf[d.n] = 0x80
		for i := d.n + 1; i < 112; i++ {
			d.buf[i] = 0
		}
		d.buf[111] |= 0x01
		copy(d.buf[112:], length[:])
		d.compress(&d.buf)
	} else {
		// The message tail runs into the length field, so the length
		// goes into a second padding-only block.
		d.t0, d.t1 = lo, hi
		d.buf[d.n] = 0x80
		for i := d.n + 1; i < BlockSize; i++ {
			d.buf[i] = 0
		}
		d.compress(&d.buf)

		d.t0, d.t1 = 0, 0
		for i := 0; i < 112; i++ {
			d.buf[i] = 0
		}
		d.buf[111] = 0x01
		copy(d.buf[112:], length[:])
		d.compress(&d.buf)
	}

	var out [Size]byte
	for i, v := range d.h {
		binary.BigEndian.PutUint64(out[8*i:], v)
	}
	return out
}

// compress absorbs one 128-byte block into the chaining value.
func (d *digest) compress(block *[BlockSize]byte) {
	var m, v [16]uint64
	for i := range m {
		m[i] = binary.BigEndian.Uint64(block[8*i:])
	}
	copy(v[:8], d.h[:])
	v[8] = cst[0]
	v[9] = cst[1]
	v[10] = cst[2]
	v[11] = cst[3]
	v[12] = d.t0 ^ cst[4]
	v[13] = d.t0 ^ cst[5]
	v[14] = d.t1 ^ cst[6]
	v[15] = d.t1 ^ cst[7]

	for r := 0; r < rounds; r++ {
		s := &sigma[r%10]
		g := func(a, b, c, e, i int) {
			v[a] += v[b] + (m[s[2*i]] ^ cst[s[2*i+1]])
			v[e] = rotr(v[e]^v[a], 32)
			v[c] += v[e]
			v[b] = rotr(v[b]^v[c], 25)
			v[a] += v[b] + (m[s[2*i+1]] ^ cst[s[2*i]])
			v[e] = rotr(v[e]^v[a], 16)
			v[c] += v[e]
			v[b] = rotr(v[b]^v[c], 11)
		}

		// Column steps.
		g(0, 4, 8, 12, 0)
		g(1, 5, 9, 13, 1)
		g(2, 6, 10, 14, 2)
		g(3, 7, 11, 15, 3)

		// Diagonal steps.
		g(0, 5, 10, 15, 4)
		g(1, 6, 11, 12, 5)
		g(2, 7, 8, 13, 6)
		g(3, 4, 9, 14, 7)
	}

	for i := range d.h {
		d.h[i] ^= v[i] ^ v[i+8]
	}
}

func rotr(x uint64, n uint) uint64 {
	return x>>n | x<<(64-n)
}
