package dpf

import (
	"fmt"

	"github.com/zhli271828/base-ary-dpf/internal/bits"
	"github.com/zhli271828/base-ary-dpf/internal/extend"
	"github.com/zhli271828/base-ary-dpf/prf"
)

// logBatchSize governs how many PRF evaluations are grouped into a single
// prf.KeySet.BatchEval call while expanding one tree level, trading a
// little extra scratch memory for fewer, larger batches.
const (
	logBatchSize = 6
	batchSize    = 1 << logBatchSize
)

// FullDomainEval evaluates a B=2 key at every point of its domain. It
// routes to FullDomainEvalZ; see that function for the output layout.
func FullDomainEval(key *Key, keys *prf.KeySet) ([]bits.Block, error) {
	return FullDomainEvalZ(key, keys)
}

// FullDomainEvalZ evaluates key at every point of its domain
// [0, key.Base()^key.Depth()) in one pass, expanding the tree level by
// level with two alternating buffers (the current level's seeds and the
// next level's) rather than recursing per point.
//
// The returned slice has key.Base()^key.Depth() * key.MsgLen() blocks:
// out[x*key.MsgLen()+k] is this party's share of block k of the output
// at domain point x. x is a native position, not a canonical one — the
// order in which this evaluator produces points is the base-digit
// reversal of the standard digit-significant domain order, a side
// effect of flattening each level's branch-major expansion into a
// single buffer without a second reordering pass. Use
// bits.CanonicalIndex(x, key.Base(), key.Depth()) to recover the
// standard domain value a given output position corresponds to, or to
// find which native position a given domain value ends up at.
func FullDomainEvalZ(key *Key, keys *prf.KeySet) ([]bits.Block, error) {
	base := key.Base()
	n := key.Depth()
	m := key.MsgLen()

	if keys.Count() != int(base) {
		return nil, fmt.Errorf("dpf: got %d PRF keys, want %d (=key base): %w", keys.Count(), base, ErrInvalidArgument)
	}
	if bits.IPowOverflows(base, n) {
		return nil, fmt.Errorf("dpf: base^n overflows for base=%d n=%d: %w", base, n, ErrIntegerOverflow)
	}
	domain := bits.IPow(base, n)
	if _, overflow := mulOverflows(domain, uint64(m)); overflow {
		return nil, fmt.Errorf("dpf: base^n*m overflows for base=%d n=%d m=%d: %w", base, n, m, ErrIntegerOverflow)
	}

	cur := []bits.Block{key.InitialSeed()}
	for i := uint(0); i < n; i++ {
		stride := uint64(len(cur))
		next := make([]bits.Block, stride*base)

		for j := uint64(0); j < base; j++ {
			cw, err := key.CW(j, i)
			if err != nil {
				return nil, err
			}
			out := make([]bits.Block, batchSize)
			for start := 0; start < len(cur); start += batchSize {
				end := start + batchSize
				if end > len(cur) {
					end = len(cur)
				}
				chunk := cur[start:end]
				if err := keys.BatchEval(int(j), chunk, out[:len(chunk)]); err != nil {
					return nil, fmt.Errorf("dpf: expanding level %d branch %d: %w", i, j, err)
				}
				for k, parent := range chunk {
					p := uint64(start+k) + j*stride
					child := out[k]
					if bits.LSB(parent) == 1 {
						child = bits.XOR(child, cw)
					}
					next[p] = child
				}
			}
		}
		cur = next
	}
	if uint64(len(cur)) != domain {
		return nil, fmt.Errorf("dpf: evaluated %d leaves, want %d", len(cur), domain)
	}
	leaves := cur

	ocw := make([]bits.Block, m)
	for k := uint(0); k < m; k++ {
		b, err := key.OCW(k)
		if err != nil {
			return nil, err
		}
		ocw[k] = b
	}

	extended := make([]bits.Block, domain*uint64(m))
	if err := extend.Extend(keys, leaves, m, extended); err != nil {
		return nil, fmt.Errorf("dpf: extending leaves: %w", err)
	}

	out := make([]bits.Block, len(extended))
	for x, seed := range leaves {
		c := bits.LSB(seed)
		rowStart := uint64(x) * uint64(m)
		for k := uint(0); k < m; k++ {
			idx := rowStart + uint64(k)
			if c == 1 {
				out[idx] = bits.XOR(extended[idx], ocw[k])
			} else {
				out[idx] = extended[idx]
			}
		}
	}
	return out, nil
}
