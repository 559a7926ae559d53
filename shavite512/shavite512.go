// Package shavite512 implements the SHAvite-3-512 hash algorithm: a 512-bit
// chaining value compressed against 1024-bit blocks by 14 rounds of a
// four-branch AES-based Feistel network, keyed by a 448-word expanded
// message schedule with 128-bit counter injection.
package shavite512

import (
	"encoding/binary"
	"hash"

	"github.com/pozoqoproject/nist5/internal/aesround"
)

const (
	// Size is the size of a SHAvite-512 digest in bytes.
	Size = 64

	// BlockSize is the block size of SHAvite-512 in bytes.
	BlockSize = 128
)

const rounds = 14

// iv is the initial chaining value for the 512-bit digest size.
var iv = [16]uint32{
	0x72FCCDD8, 0x79CA4727, 0x128A077B, 0x40D55AEC,
	0xD1901A06, 0x430AE307, 0xB29F5CD1, 0xDF07FBFC,
	0x8E45D73D, 0x681AB538, 0xBDE86578, 0xDD577E47,
	0xE275EADE, 0x502D9FCD, 0xB9357178, 0x022A4B9A,
}

type digest struct {
	h    [16]uint32
	buf  [BlockSize]byte
	n    int
	bits uint64
}

// New returns a new hash.Hash computing the SHAvite-512 digest.
func New() hash.Hash {
	d := new(digest)
	d.Reset()
	return d
}

// Sum returns the SHAvite-512 digest of data.
func Sum(data []byte) [Size]byte {
	var d digest
	d.Reset()
	d.Write(data)
	return d.checkSum()
}

func (d *digest) Reset() {
	d.h = iv
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
			cnt := [4]uint32{
				uint32(d.bits), uint32(d.bits >> 32), 0, 0,
			}
			compress(&d.h, &d.buf, cnt)
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

	// A block holding the end of the message is compressed with the total
	// bit count; a padding-only block carries a zero counter.
	cnt := [4]uint32{uint32(bits), uint32(bits >> 32), 0, 0}
	if d.n == 0 {
		cnt[0], cnt[1] = 0, 0
	}

	d.buf[d.n] = 0x80
	if d.n <= 109 {
		for i := d.n + 1; i < 110; i++ {
			d.buf[i] = 0
		}
	} else {
		// The trailer does not fit; close this block and emit a
		// padding-only one.
		for i := d.n + 1; i < BlockSize; i++ {
			d.buf[i] = 0
		}
		compress(&d.h, &d.buf, cnt)
		cnt[0], cnt[1] = 0, 0
		for i := 0; i < 110; i++ {
			d.buf[i] = 0
		}
	}

	// Trailer: 128-bit little-endian bit length, then the 16-bit digest
	// size.
	binary.LittleEndian.PutUint64(d.buf[110:], bits)
	for i := 118; i < 126; i++ {
		d.buf[i] = 0
	}
	d.buf[126] = 0x00
	d.buf[127] = 0x02
	compress(&d.h, &d.buf, cnt)

	var out [Size]byte
	for i, v := range d.h {
		binary.LittleEndian.PutUint32(out[4*i:], v)
	}
	return out
}

// compress folds one 128-byte block into the chaining value.
func compress(h *[16]uint32, msg *[BlockSize]byte, cnt [4]uint32) {
	var rk [448]uint32
	for i := 0; i < 32; i++ {
		rk[i] = binary.LittleEndian.Uint32(msg[4*i:])
	}
	expand(&rk, cnt)

	var p [16]uint32
	copy(p[:], h[:])
	for r := 0; r < rounds; r++ {
		// Two Feistel halves per round, then a branch rotation.
		t := f4(p[4:8], rk[32*r:])
		for i := 0; i < 4; i++ {
			p[i] ^= t[i]
		}
		t = f4(p[12:16], rk[32*r+16:])
		for i := 0; i < 4; i++ {
			p[8+i] ^= t[i]
		}

		var tail [4]uint32
		copy(tail[:], p[12:16])
		copy(p[4:16], p[0:12])
		copy(p[0:4], tail[:])
	}

	for i := range h {
		h[i] ^= p[i]
	}
}

// expand derives the full 448-word schedule from the 32 message words:
// thirteen 32-word steps alternating nonlinear (an AES round over a rotated
// previous quad, folded into the quad four words back) and linear (xor of
// the words 32 and 7 back). The counter is folded in at four fixed offsets,
// each a different word order with one word complemented.
func expand(rk *[448]uint32, cnt [4]uint32) {
	u := 32
	for {
		for s := 0; s < 4; s++ {
			t := [4]uint32{
				rk[u-31], rk[u-30], rk[u-29], rk[u-32],
			}
			aesRoundWords(&t)
			for j := 0; j < 4; j++ {
				rk[u+j] = t[j] ^ rk[u-4+j]
			}
			switch u {
			case 32:
				rk[32] ^= cnt[0]
				rk[33] ^= cnt[1]
				rk[34] ^= cnt[2]
				rk[35] ^= ^cnt[3]
			case 440:
				rk[440] ^= cnt[1]
				rk[441] ^= cnt[0]
				rk[442] ^= cnt[3]
				rk[443] ^= ^cnt[2]
			}
			u += 4

			t = [4]uint32{
				rk[u-31], rk[u-30], rk[u-29], rk[u-32],
			}
			aesRoundWords(&t)
			for j := 0; j < 4; j++ {
				rk[u+j] = t[j] ^ rk[u-4+j]
			}
			switch u {
			case 164:
				rk[164] ^= cnt[3]
				rk[165] ^= cnt[2]
				rk[166] ^= cnt[1]
				rk[167] ^= ^cnt[0]
			case 316:
				rk[316] ^= cnt[2]
				rk[317] ^= cnt[3]
				rk[318] ^= cnt[0]
				rk[319] ^= ^cnt[1]
			}
			u += 4
		}
		if u == len(rk) {
			break
		}
		for s := 0; s < 8; s++ {
			for j := 0; j < 4; j++ {
				rk[u+j] = rk[u-32+j] ^ rk[u-7+j]
			}
			u += 4
		}
	}
}

// f4 runs four keyed AES rounds over a 128-bit branch.
func f4(in []uint32, k []uint32) [4]uint32 {
	var x [4]uint32
	for i := 0; i < 4; i++ {
		x[i] = in[i] ^ k[i]
	}
	for r := 1; r < 4; r++ {
		aesRoundWords(&x)
		for i := 0; i < 4; i++ {
			x[i] ^= k[4*r+i]
		}
	}
	aesRoundWords(&x)
	return x
}

// aesRoundWords applies one unkeyed AES round to four little-endian words.
func aesRoundWords(w *[4]uint32) {
	var st [16]byte
	for i, v := range w {
		binary.LittleEndian.PutUint32(st[4*i:], v)
	}
	aesround.Round(&st)
	for i := range w {
		w[i] = binary.LittleEndian.Uint32(st[4*i:])
	}
}
