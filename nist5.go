// Package nist5 implements the NIST5 chained proof-of-work digest. The
// input is hashed through five independent 512-bit primitives in a fixed
// order -- BLAKE-512, Grøstl-512, CubeHash-512, SHAvite-512, ECHO-512 --
// with each stage's digest becoming the sole input of the next, and the
// final 512-bit digest truncated to its first 256 bits.
//
// The construction trades the hardware friendliness of a single primitive
// for five structurally different ones in series, which is what gives the
// proof of work its ASIC resistance. Every byte of the output is consensus
// critical: two implementations must agree bit for bit on every input,
// including the empty one.
package nist5

import (
	"fmt"
	"hash"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/pozoqoproject/nist5/blake512"
	"github.com/pozoqoproject/nist5/cubehash512"
	"github.com/pozoqoproject/nist5/echo512"
	"github.com/pozoqoproject/nist5/groestl512"
	"github.com/pozoqoproject/nist5/shavite512"
)

const (
	// Size is the size of the final digest in bytes.
	Size = 32

	// StageSize is the size of every intermediate stage digest in bytes.
	// All five primitives emit 512-bit digests.
	StageSize = 64
)

// NumStages is the number of primitives in the chain.
const NumStages = 5

// stage couples a pipeline position with the constructor of its primitive.
type stage struct {
	name string
	new  func() hash.Hash
}

// stages fixes the pipeline order. The order is consensus critical and is
// configuration, not runtime state: it never changes for the lifetime of
// the process.
var stages = [NumStages]stage{
	{name: "blake512", new: blake512.New},
	{name: "groestl512", new: groestl512.New},
	{name: "cubehash512", new: cubehash512.New},
	{name: "shavite512", new: shavite512.New},
	{name: "echo512", new: echo512.New},
}

// Sum256 computes the chained digest of data. The function is pure and
// deterministic, performs no I/O, and cannot fail for any finite input,
// including a zero-length one.
func Sum256(data []byte) [Size]byte {
	return sumChain(&stages, data)
}

// SumHash computes the chained digest of data as a chainhash.Hash, the
// form consumed by proof-of-work validation code.
func SumHash(data []byte) chainhash.Hash {
	return chainhash.Hash(Sum256(data))
}

// StageNames returns the primitive names in pipeline order.
func StageNames() [NumStages]string {
	var names [NumStages]string
	for i, s := range stages {
		names[i] = s.name
	}
	return names
}

// StageDigests computes the chain over data and returns all five
// intermediate stage digests in pipeline order. The first Size bytes of
// the last digest equal Sum256(data). This exists for diagnostics;
// proof-of-work consumers should use Sum256 or SumHash.
func StageDigests(data []byte) [NumStages][StageSize]byte {
	return chainDigests(&stages, data)
}

// sumChain drives the stage primitives in sequence over data and truncates
// the last stage's digest.
func sumChain(chain *[NumStages]stage, data []byte) [Size]byte {
	digests := chainDigests(chain, data)

	// Truncation: the first 32 bytes of the fifth digest, byte for byte.
	var out [Size]byte
	copy(out[:], digests[NumStages-1][:Size])
	return out
}

// chainDigests runs every stage primitive in sequence over data. Each
// invocation constructs fresh primitive states, so concurrent calls are
// safe.
func chainDigests(chain *[NumStages]stage,
	data []byte) [NumStages][StageSize]byte {

	// An empty input is absorbed as a zero-length view of a local
	// one-byte scratch buffer. The upstream implementation hands its
	// primitives a one-byte placeholder with a reported length of zero
	// in this case, and the digest of the empty message must reproduce
	// that behavior bit for bit. The scratch byte itself is never read.
	var blank [1]byte
	msg := data
	if len(msg) == 0 {
		msg = blank[:0]
	}

	// Five 64-byte slots, one per stage, each written exactly once and
	// consumed exactly once by the following stage.
	var digests [NumStages][StageSize]byte
	for i, s := range chain {
		h := s.new()
		h.Write(msg)
		sum := h.Sum(nil)

		// A primitive emitting anything but 64 bytes is a broken
		// build, not a runtime condition the caller could handle.
		if len(sum) != StageSize {
			panic(fmt.Sprintf("nist5: stage %s returned a "+
				"%d-byte digest, want %d", s.name, len(sum),
				StageSize))
		}

		copy(digests[i][:], sum)
		msg = digests[i][:]
	}

	return digests
}
