package dpf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dpf "github.com/zhli271828/base-ary-dpf"
	"github.com/zhli271828/base-ary-dpf/internal/bits"
)

// reconstruct XORs the two parties' full-domain evaluations together and
// returns one slice of domain*m blocks, indexed by canonical domain value
// (not native position), so test assertions can talk about alpha directly.
func reconstruct(t *testing.T, base uint64, n uint, m uint, out0, out1 []bits.Block) []bits.Block {
	t.Helper()
	domain := bits.IPow(base, n)
	require.Equal(t, domain*uint64(m), uint64(len(out0)))
	require.Equal(t, len(out0), len(out1))

	canonical := make([]bits.Block, domain*uint64(m))
	for x := uint64(0); x < domain; x++ {
		c := bits.CanonicalIndex(x, base, n)
		for k := uint(0); k < m; k++ {
			canonical[c*uint64(m)+uint64(k)] = bits.XOR(out0[x*uint64(m)+uint64(k)], out1[x*uint64(m)+uint64(k)])
		}
	}
	return canonical
}

func TestFullDomainEvalReconstructsThePointFunction(t *testing.T) {
	cases := []struct {
		base  uint64
		n     uint
		alpha uint64
		m     uint
	}{
		{2, 4, 5, 1},
		{2, 6, 0, 2},
		{3, 3, 19, 1},
		{5, 2, 24, 3},
	}

	for _, tc := range cases {
		ks := keySet(t, int(tc.base))
		msg := msgBlocks(tc.m, 0x5A)
		k0, k1, err := dpf.GenZ(ks, tc.base, tc.n, tc.alpha, msg)
		require.NoError(t, err)

		out0, err := dpf.FullDomainEvalZ(k0, ks)
		require.NoError(t, err)
		out1, err := dpf.FullDomainEvalZ(k1, ks)
		require.NoError(t, err)

		got := reconstruct(t, tc.base, tc.n, tc.m, out0, out1)
		domain := bits.IPow(tc.base, tc.n)
		for x := uint64(0); x < domain; x++ {
			row := got[x*uint64(tc.m) : (x+1)*uint64(tc.m)]
			if x == tc.alpha {
				assert.Equal(t, msg, row, "base=%d n=%d alpha=%d: value at alpha", tc.base, tc.n, tc.alpha)
			} else {
				for k, b := range row {
					assert.Equal(t, bits.Block{}, b, "base=%d n=%d alpha=%d: nonzero at x=%d block=%d", tc.base, tc.n, tc.alpha, x, k)
				}
			}
		}
	}
}

func TestFullDomainEvalRejectsWrongKeyCount(t *testing.T) {
	ks2 := keySet(t, 2)
	k0, _, err := dpf.Gen(ks2, 3, 1, msgBlocks(1, 1))
	require.NoError(t, err)

	ks3 := keySet(t, 3)
	_, err = dpf.FullDomainEvalZ(k0, ks3)
	assert.ErrorIs(t, err, dpf.ErrInvalidArgument)
}

func TestFullDomainEvalIsDeterministic(t *testing.T) {
	ks := keySet(t, 2)
	k0, _, err := dpf.Gen(ks, 5, 11, msgBlocks(2, 7))
	require.NoError(t, err)

	out1, err := dpf.FullDomainEvalZ(k0, ks)
	require.NoError(t, err)
	out2, err := dpf.FullDomainEvalZ(k0, ks)
	require.NoError(t, err)
	assert.Equal(t, out1, out2)
}
