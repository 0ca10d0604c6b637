// Package prf is the PRG/PRF façade the DPF generator and evaluator are
// built on: B independently-keyed pseudorandom functions, each mapping a
// 128-bit input block to a fresh 128-bit output block, with a batch
// evaluation entry point for the evaluator's level-synchronous expansion.
//
// The façade is deliberately the only place in this module that touches
// crypto/aes: a KeySet keys B AES-128 ciphers and treats single-block AES
// encryption as the PRF, the same construction mvmcconnell-pir/dpf uses
// (fixed cipher.Block per key, ECB-style single block encrypt) rather than
// the stream-oriented AES-CTR PRG used for the tree-DPF variants elsewhere
// in this corpus — a stream cipher doesn't give the fixed-width,
// independent-per-input map this package's contract requires.
package prf

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/zhli271828/base-ary-dpf/internal/bits"
	"github.com/zhli271828/base-ary-dpf/internal/entropy"
)

// KeySet holds B independently-keyed AES-128 block ciphers, indexed
// 0..B-1. Across one KeySet, Eval(j, x) is a deterministic function of x;
// outputs of distinct j on the same x are computationally independent.
type KeySet struct {
	blocks []cipher.Block
	raw    [][]byte
}

// Count returns B, the number of independent PRF keys in the set.
func (k *KeySet) Count() int {
	return len(k.blocks)
}

// GenerateKeySet draws b fresh random AES-128 keys from the package CSPRNG
// and returns the resulting KeySet. It fails with an error wrapping the
// entropy package's error (entropy.ErrShortRead on a short read) if the
// random source returns fewer bytes than requested.
func GenerateKeySet(b int) (*KeySet, error) {
	if b < 1 {
		return nil, fmt.Errorf("prf: key count must be positive, got %d", b)
	}
	raw := make([][]byte, b)
	for j := 0; j < b; j++ {
		key, err := entropy.RandomBytes(aes.BlockSize)
		if err != nil {
			return nil, fmt.Errorf("prf: generating key %d: %w", j, err)
		}
		raw[j] = key
	}
	return NewKeySetFromBytes(raw)
}

// NewKeySetFromBytes builds a KeySet from caller-supplied 16-byte AES keys,
// one per branch. This is the entry point used by tests and by any two
// parties that must share identical PRF keys out of band before calling
// Gen/GenZ and FullDomainEval/FullDomainEvalZ on the resulting DPF keys.
func NewKeySetFromBytes(keys [][]byte) (*KeySet, error) {
	blocks := make([]cipher.Block, len(keys))
	raw := make([][]byte, len(keys))
	for j, key := range keys {
		if len(key) != aes.BlockSize {
			return nil, fmt.Errorf("prf: key %d must be %d bytes, got %d", j, aes.BlockSize, len(key))
		}
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("prf: key %d: %w", j, err)
		}
		blocks[j] = block
		raw[j] = append([]byte(nil), key...)
	}
	return &KeySet{blocks: blocks, raw: raw}, nil
}

// Eval evaluates PRF branch j on a single 128-bit input block.
func (k *KeySet) Eval(j int, in bits.Block) (bits.Block, error) {
	if j < 0 || j >= len(k.blocks) {
		return bits.Block{}, fmt.Errorf("prf: branch %d out of range [0,%d)", j, len(k.blocks))
	}
	var out bits.Block
	k.blocks[j].Encrypt(out[:], in[:])
	return out, nil
}

// BatchEval evaluates PRF branch j on every element of in, writing results
// to out. in and out may overlap only if they are identical (writing to a
// location distinct from the input is also supported, and is what the
// double-buffered evaluator relies on).
func (k *KeySet) BatchEval(j int, in []bits.Block, out []bits.Block) error {
	if j < 0 || j >= len(k.blocks) {
		return fmt.Errorf("prf: branch %d out of range [0,%d)", j, len(k.blocks))
	}
	if len(in) != len(out) {
		return fmt.Errorf("prf: batch length mismatch: %d inputs, %d outputs", len(in), len(out))
	}
	block := k.blocks[j]
	for i := range in {
		block.Encrypt(out[i][:], in[i][:])
	}
	return nil
}

// Zeroize scrubs the retained raw key bytes. The keyed cipher.Block values
// themselves are opaque and cannot be zeroized through the standard
// library's interface, so this only guarantees the plaintext key copies
// KeySet retained for inspection are overwritten.
func (k *KeySet) Zeroize() {
	for _, key := range k.raw {
		bits.Zeroize(key)
	}
}
