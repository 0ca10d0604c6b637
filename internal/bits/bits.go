// Package bits provides the low-level bit and digit helpers shared by the
// DPF generator and evaluator: control-bit extraction, integer exponents,
// and base-B digit decomposition of the secret index.
//
// These mirror get_lsb, flip_lsb, ipow, and the get_trit/get_septit family
// from the original C implementation, generalized to an arbitrary base.
package bits

import "fmt"

// Block is a 128-bit seed, correction word, or PRF input/output. The least
// significant bit of Lo is the control bit; the remaining 127 bits (the
// high 64 bits plus the top 63 bits of Lo) are the pseudorandom value.
type Block [16]byte

// LSB returns the control bit of b: the least significant bit of its first
// byte.
func LSB(b Block) byte {
	return b[0] & 1
}

// FlipLSB flips the control bit of b and returns the result. b itself is
// left unmodified.
func FlipLSB(b Block) Block {
	out := b
	out[0] ^= 1
	return out
}

// XOR returns the bytewise XOR of a and b.
func XOR(a, b Block) Block {
	var out Block
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// Mux returns b if the low bit of cond is 1, else the zero block. It
// stands in for the C `cb * CW` idiom used to conditionally apply a
// correction word; unlike that idiom, it branches on the control bit.
func Mux(cond byte, b Block) Block {
	if cond&1 == 0 {
		return Block{}
	}
	return b
}

// IPow returns base^exp exactly, for non-negative exp. It panics on overflow
// of a 64-bit unsigned integer: the caller (Gen/GenZ) is expected to have
// already validated that base^n fits the platform's address space and
// translate that into dpf.ErrIntegerOverflow before calling IPow in a
// hot loop.
func IPow(base uint64, exp uint) uint64 {
	result := uint64(1)
	for i := uint(0); i < exp; i++ {
		if base != 0 && result > (^uint64(0))/base {
			panic(fmt.Sprintf("bits: %d^%d overflows uint64", base, exp))
		}
		result *= base
	}
	return result
}

// IPowOverflows reports whether base^exp would overflow a uint64.
func IPowOverflows(base uint64, exp uint) bool {
	result := uint64(1)
	for i := uint(0); i < exp; i++ {
		if base != 0 && result > (^uint64(0))/base {
			return true
		}
		result *= base
	}
	return false
}

// Digit returns the level-th digit of idx in base `base`, given a tree of
// depth `depth`, most-significant digit first: digit(base, idx, depth, level)
// = (idx / base^(depth-1-level)) mod base.
//
// It returns an error if level is not in [0, depth). idx itself is not
// range-checked: for idx >= base^depth the digits above the top level are
// dropped by the final mod, so callers validate idx < base^depth before
// calling Digit. The result is always in [0, base) because of that mod; the
// explicit range check on it is purely defensive (see Open Question 2 in
// the design notes: digits are enumerated exhaustively, never assumed to be
// one of a fixed small set).
func Digit(base uint64, idx uint64, depth uint, level uint) (uint64, error) {
	if level >= depth {
		return 0, fmt.Errorf("bits: level %d out of range for depth %d", level, depth)
	}
	shift := IPow(base, depth-1-level)
	d := (idx / shift) % base
	if d >= base {
		return 0, fmt.Errorf("bits: digit %d out of range for base %d", d, base)
	}
	return d, nil
}

// CanonicalIndex remaps a leaf position produced by the evaluator's native
// order (branch-major across each whole level, independent of batching)
// into the canonical domain index (parent_idx*base + branch). The two
// orders are base-digit reversals of each other, so the same map also
// takes a canonical index to its native position; they coincide only
// trivially at depth 1. See FullDomainEvalZ's doc comment.
func CanonicalIndex(nativeIndex uint64, base uint64, depth uint) uint64 {
	// Each level-synchronous expansion step folds the new branch digit in
	// as the *more* significant part of the running index (cache index =
	// branch*num_nodes + parent_index), so after n levels the native index
	// is the base-B digit reversal of the canonical index: native =
	// sum(digit_i * base^i) while canonical = sum(digit_i * base^(n-1-i)).
	// Un-reversing is the usual Horner-form digit reversal.
	digits := make([]uint64, depth)
	n := nativeIndex
	for i := uint(0); i < depth; i++ {
		digits[i] = n % base
		n /= base
	}
	var canonical uint64
	for i := uint(0); i < depth; i++ {
		canonical = canonical*base + digits[i]
	}
	return canonical
}

// Zeroize overwrites b with zero bytes. It is used to scrub transient seed
// and correction-word material before it goes out of scope.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ZeroizeBlock overwrites a Block in place.
func ZeroizeBlock(b *Block) {
	for i := range b {
		b[i] = 0
	}
}
