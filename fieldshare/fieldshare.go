// Package fieldshare adapts raw DPF leaf blocks into secp256k1 field
// elements and scalars, for downstream consumers that want to combine
// shares with field/scalar arithmetic instead of a bytewise XOR.
//
// The core package (Gen/GenZ, FullDomainEval/FullDomainEvalZ) is and
// stays XOR-additive: that is what its correctness invariants are stated
// and proven against. This package does not change that. It plays the
// same role dpf/2018_boyle_optimization's convert, genGroupCalc,
// evalGroupCalc, and CombineResults play there — folding a PRG/PRF
// output into a group element, and combining two such elements — but
// kept out of the core's hot path and offered as an opt-in adapter,
// since forcing every caller to pay for field arithmetic it doesn't need
// would contradict the core's own XOR-reconstruction contract.
package fieldshare

import (
	secp256k1fp "github.com/consensys/gnark-crypto/ecc/secp256k1/fp"
	decred "github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/zhli271828/base-ary-dpf/internal/bits"
)

// ToFieldElement reduces a DPF leaf block modulo the secp256k1 base
// field's prime, the way optreedpf.convert reduces a PRG output modulo
// the same prime before using it as an OpTreeDPF seed.
func ToFieldElement(b bits.Block) secp256k1fp.Element {
	var e secp256k1fp.Element
	e.SetBytes(b[:])
	return e
}

// CombineFieldShares returns a + b mod p, mirroring
// OpTreeDPF.CombineResults' y1+y2 reconstruction for the prime-field
// construction.
func CombineFieldShares(a, b secp256k1fp.Element) secp256k1fp.Element {
	var sum secp256k1fp.Element
	sum.Add(&a, &b)
	return sum
}

// ToScalar reduces a DPF leaf block modulo the secp256k1 group order n
// (distinct from the base field order p that ToFieldElement reduces
// against), for consumers combining shares that must live in the scalar
// field ECDSA/Schnorr signing uses rather than the curve's base field.
func ToScalar(b bits.Block) decred.ModNScalar {
	var padded [32]byte
	copy(padded[32-len(b):], b[:])
	var s decred.ModNScalar
	s.SetBytes(&padded)
	return s
}

// CombineScalarShares returns a + b mod n.
func CombineScalarShares(a, b decred.ModNScalar) decred.ModNScalar {
	sum := a
	sum.Add(&b)
	return sum
}
