// Package multipoint composes several single-point DPF keys into one
// distributed sum-of-point-functions key, the way dspf composes several
// dpf.DPF keys in this corpus: one constituent key per (point, message)
// pair, full-domain evaluation XOR-summed across constituents instead of
// big.Int-summed, since the core this package builds on is XOR-additive
// rather than big.Int-additive.
package multipoint

import (
	"fmt"

	"github.com/zhli271828/base-ary-dpf/internal/bits"
	"github.com/zhli271828/base-ary-dpf/prf"

	dpf "github.com/zhli271828/base-ary-dpf"
)

// Key is one party's share of a multi-point function: one constituent
// DPF key per special point, all sharing the same base and depth.
type Key struct {
	Keys []*dpf.Key
}

// Base returns the branching factor shared by every constituent key, or 0
// if Key is empty.
func (k Key) Base() uint64 {
	if len(k.Keys) == 0 {
		return 0
	}
	return k.Keys[0].Base()
}

// Depth returns the tree depth shared by every constituent key, or 0 if
// Key is empty.
func (k Key) Depth() uint {
	if len(k.Keys) == 0 {
		return 0
	}
	return k.Keys[0].Depth()
}

// MsgLen returns the message length shared by every constituent key, or 0
// if Key is empty.
func (k Key) MsgLen() uint {
	if len(k.Keys) == 0 {
		return 0
	}
	return k.Keys[0].MsgLen()
}

// GenZ generates a key pair for the sum of t point functions, one per
// (points[i], msgs[i]) pair, all sharing base and n. Special points must
// be pairwise distinct, mirroring dspf.Gen's duplicate check — a
// repeated point would make two constituents disagree about the value
// at the same x, which CombineResults there (and FullDomainEvalZ here)
// has no way to reconcile.
func GenZ(keys *prf.KeySet, base uint64, n uint, points []uint64, msgs [][]bits.Block) (Key, Key, error) {
	if len(points) == 0 {
		return Key{}, Key{}, fmt.Errorf("multipoint: need at least one special point: %w", dpf.ErrInvalidArgument)
	}
	if len(points) != len(msgs) {
		return Key{}, Key{}, fmt.Errorf("multipoint: %d points but %d messages: %w", len(points), len(msgs), dpf.ErrInvalidArgument)
	}
	seen := make(map[uint64]struct{}, len(points))
	for _, p := range points {
		if _, dup := seen[p]; dup {
			return Key{}, Key{}, fmt.Errorf("multipoint: duplicate special point %d: %w", p, dpf.ErrInvalidArgument)
		}
		seen[p] = struct{}{}
	}

	party0 := Key{Keys: make([]*dpf.Key, len(points))}
	party1 := Key{Keys: make([]*dpf.Key, len(points))}
	for i, p := range points {
		k0, k1, err := dpf.GenZ(keys, base, n, p, msgs[i])
		if err != nil {
			return Key{}, Key{}, fmt.Errorf("multipoint: generating point %d: %w", i, err)
		}
		party0.Keys[i] = k0
		party1.Keys[i] = k1
	}
	return party0, party1, nil
}

// FullDomainEvalZ evaluates every constituent key over the full domain
// and XOR-sums the results, producing this party's share of the
// multi-point function's output vector: domain*msgLen blocks, native
// order (see dpf.FullDomainEvalZ).
func FullDomainEvalZ(k Key, keys *prf.KeySet) ([]bits.Block, error) {
	if len(k.Keys) == 0 {
		return nil, fmt.Errorf("multipoint: empty key: %w", dpf.ErrInvalidArgument)
	}

	base, n, m := k.Base(), k.Depth(), k.MsgLen()
	domain := bits.IPow(base, n)
	out := make([]bits.Block, domain*uint64(m))

	for i, sub := range k.Keys {
		share, err := dpf.FullDomainEvalZ(sub, keys)
		if err != nil {
			return nil, fmt.Errorf("multipoint: evaluating point %d: %w", i, err)
		}
		if len(share) != len(out) {
			return nil, fmt.Errorf("multipoint: point %d evaluated to %d blocks, want %d: %w", i, len(share), len(out), dpf.ErrInvalidArgument)
		}
		for j := range out {
			out[j] = bits.XOR(out[j], share[j])
		}
	}
	return out, nil
}
