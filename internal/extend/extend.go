// Package extend implements the output extender (component F): stretching
// one 128-bit leaf seed into msg_len 128-bit blocks via the PRF façade,
// for both the generator (stretching the two parties' leaf seeds once each
// to build the output correction word) and the evaluator (stretching every
// leaf of the full domain in one batched call).
//
// The extender's contract, made explicit here rather than left as an
// incidental property of buffer reuse the way the original C leaves it
// (see the design notes' "scratch-buffer overloading" remark): the first
// block produced for each leaf is the leaf seed itself, verbatim, so its
// control bit survives extension at a known, fixed offset and the caller
// never needs a separate control-bit table.
package extend

import (
	"encoding/binary"
	"fmt"

	"github.com/zhli271828/base-ary-dpf/internal/bits"
	"github.com/zhli271828/base-ary-dpf/prf"
)

// Extend stretches each of the k seeds in leaves into m 128-bit blocks,
// writing k*m blocks to out. out[l*m] == leaves[l] for every leaf l; blocks
// out[l*m+1 .. l*m+m-1] are produced by batch-evaluating PRF branch 0 on
// leaves[l] XORed with a per-position counter, which is the "counter-mode
// PRF over the first m keys" variant spec allows, specialized to one key
// since a single AES-keyed PRF with a distinct counter per output position
// is already an independent pseudorandom stream per position.
func Extend(keys *prf.KeySet, leaves []bits.Block, m uint, out []bits.Block) error {
	if m == 0 {
		return fmt.Errorf("extend: msg_len must be positive")
	}
	k := len(leaves)
	if len(out) != k*int(m) {
		return fmt.Errorf("extend: output buffer is %d blocks, want %d", len(out), k*int(m))
	}

	for l, seed := range leaves {
		out[l*int(m)] = seed
	}
	if m == 1 {
		return nil
	}

	extra := int(m) - 1
	in := make([]bits.Block, k*extra)
	idx := 0
	for _, seed := range leaves {
		for i := uint(1); i < m; i++ {
			in[idx] = bits.XOR(seed, counterBlock(i))
			idx++
		}
	}

	stretched := make([]bits.Block, len(in))
	if err := keys.BatchEval(0, in, stretched); err != nil {
		return fmt.Errorf("extend: %w", err)
	}

	idx = 0
	for l := range leaves {
		for i := uint(1); i < m; i++ {
			out[l*int(m)+int(i)] = stretched[idx]
			idx++
		}
	}
	return nil
}

// counterBlock encodes i as the low 8 bytes of a block, little-endian,
// zero-padded to 128 bits. It exists purely to decorrelate the m-1
// derived blocks of a single leaf from one another.
func counterBlock(i uint) bits.Block {
	var b bits.Block
	binary.LittleEndian.PutUint64(b[:8], uint64(i))
	return b
}
