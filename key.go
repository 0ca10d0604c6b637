package dpf

import (
	"fmt"

	"github.com/zhli271828/base-ary-dpf/internal/bits"
)

// blockSize is the byte width of a Seed, a correction word, or one output
// correction word block: 128 bits.
const blockSize = 16

// Key is a DPF key: a contiguous byte buffer laid out exactly as described
// in the design notes — initial seed, then B groups of n per-level
// correction words, then m output-correction-word blocks — plus the three
// parameters (base, depth, message length) needed to interpret it. A Key's
// memory layout is self-describing given those three parameters; they must
// be agreed out of band (or carried alongside the key bytes by the caller)
// the way spec requires, since the byte buffer alone doesn't carry them.
//
// Every 128-bit word inside the buffer is stored as the 16 raw bytes
// produced by the PRF façade, least-significant byte first — this is
// already the little-endian convention the external interface recommends,
// since bits.LSB reads byte 0, and no further byte-swapping is needed
// between Gen and FullDomainEval.
type Key struct {
	base uint64
	n    uint
	m    uint
	buf  []byte
}

// Base returns the key's branching factor B.
func (k *Key) Base() uint64 { return k.base }

// Depth returns the key's tree depth n. The domain size is Base()^Depth().
func (k *Key) Depth() uint { return k.n }

// MsgLen returns the key's message length m, in 128-bit blocks.
func (k *Key) MsgLen() uint { return k.m }

// KeySize returns the exact serialized size in bytes of a key with the
// given parameters: 16*(1 + n*base + m). It returns ErrIntegerOverflow if
// that size, or any of the intermediate products, would not fit a uint64.
func KeySize(base uint64, n uint, m uint) (uint64, error) {
	nb, overflow := mulOverflows(base, uint64(n))
	if overflow {
		return 0, fmt.Errorf("dpf: key size for base=%d n=%d m=%d: %w", base, n, m, ErrIntegerOverflow)
	}
	total, overflow := addOverflows(nb, uint64(m))
	if overflow {
		return 0, fmt.Errorf("dpf: key size for base=%d n=%d m=%d: %w", base, n, m, ErrIntegerOverflow)
	}
	total, overflow = addOverflows(total, 1)
	if overflow {
		return 0, fmt.Errorf("dpf: key size for base=%d n=%d m=%d: %w", base, n, m, ErrIntegerOverflow)
	}
	size, overflow := mulOverflows(total, blockSize)
	if overflow {
		return 0, fmt.Errorf("dpf: key size for base=%d n=%d m=%d: %w", base, n, m, ErrIntegerOverflow)
	}
	return size, nil
}

func mulOverflows(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	r := a * b
	return r, r/a != b
}

func addOverflows(a, b uint64) (uint64, bool) {
	r := a + b
	return r, r < a
}

// newKey allocates a zeroed key buffer for the given parameters. Callers
// must have already validated base, n, and m (newKey itself does not
// re-validate, since Gen/GenZ validate once for both keys of a pair).
func newKey(base uint64, n uint, m uint) (*Key, error) {
	size, err := KeySize(base, n, m)
	if err != nil {
		return nil, err
	}
	return &Key{base: base, n: n, m: m, buf: make([]byte, size)}, nil
}

// NewKeyFromBytes wraps a byte buffer produced by Gen/GenZ (or received
// from the other party) as a Key, given the out-of-band parameters the
// buffer alone cannot carry. It copies data, so the caller's slice may be
// reused or scrubbed afterward.
func NewKeyFromBytes(base uint64, n uint, m uint, data []byte) (*Key, error) {
	size, err := KeySize(base, n, m)
	if err != nil {
		return nil, err
	}
	if uint64(len(data)) != size {
		return nil, fmt.Errorf("dpf: key buffer is %d bytes, want %d: %w", len(data), size, ErrInvalidArgument)
	}
	buf := make([]byte, size)
	copy(buf, data)
	return &Key{base: base, n: n, m: m, buf: buf}, nil
}

// Bytes returns the key's underlying byte buffer. The slice aliases the
// Key's own storage; callers that need an independent copy must clone it.
func (k *Key) Bytes() []byte {
	return k.buf
}

func readBlock(buf []byte, offset uint64) bits.Block {
	var b bits.Block
	copy(b[:], buf[offset:offset+blockSize])
	return b
}

func writeBlock(buf []byte, offset uint64, b bits.Block) {
	copy(buf[offset:offset+blockSize], b[:])
}

// InitialSeed returns the key's initial (root) seed.
func (k *Key) InitialSeed() bits.Block {
	return readBlock(k.buf, 0)
}

func (k *Key) setInitialSeed(b bits.Block) {
	writeBlock(k.buf, 0, b)
}

// cwOffset returns the byte offset of CW[branch][level].
func (k *Key) cwOffset(branch uint64, level uint) (uint64, error) {
	if branch >= k.base {
		return 0, fmt.Errorf("dpf: branch %d out of range [0,%d): %w", branch, k.base, ErrInvalidArgument)
	}
	if level >= k.n {
		return 0, fmt.Errorf("dpf: level %d out of range [0,%d): %w", level, k.n, ErrInvalidArgument)
	}
	return blockSize + (branch*uint64(k.n)+uint64(level))*blockSize, nil
}

// CW returns the correction word for the given branch and tree level.
func (k *Key) CW(branch uint64, level uint) (bits.Block, error) {
	off, err := k.cwOffset(branch, level)
	if err != nil {
		return bits.Block{}, err
	}
	return readBlock(k.buf, off), nil
}

func (k *Key) setCW(branch uint64, level uint, b bits.Block) error {
	off, err := k.cwOffset(branch, level)
	if err != nil {
		return err
	}
	writeBlock(k.buf, off, b)
	return nil
}

// ocwOffset returns the byte offset of OCW[block].
func (k *Key) ocwOffset(block uint) (uint64, error) {
	if block >= k.m {
		return 0, fmt.Errorf("dpf: OCW block %d out of range [0,%d): %w", block, k.m, ErrInvalidArgument)
	}
	base := blockSize + k.base*uint64(k.n)*blockSize
	return base + uint64(block)*blockSize, nil
}

// OCW returns the block-th block of the output correction word.
func (k *Key) OCW(block uint) (bits.Block, error) {
	off, err := k.ocwOffset(block)
	if err != nil {
		return bits.Block{}, err
	}
	return readBlock(k.buf, off), nil
}

func (k *Key) setOCW(block uint, b bits.Block) error {
	off, err := k.ocwOffset(block)
	if err != nil {
		return err
	}
	writeBlock(k.buf, off, b)
	return nil
}

// Zeroize overwrites the key's entire byte buffer. Correction words and
// output correction words are not secret once both parties hold a key, but
// the initial seed is, and Zeroize is the bluntest tool that is still
// correct: it is meant for callers releasing a key entirely, not for
// scrubbing only the generator's transient state (see Gen's own internal
// zeroization of seeds and the per-level nonce).
func (k *Key) Zeroize() {
	bits.Zeroize(k.buf)
}
