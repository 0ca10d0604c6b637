package multipoint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhli271828/base-ary-dpf/internal/bits"
	"github.com/zhli271828/base-ary-dpf/multipoint"
	"github.com/zhli271828/base-ary-dpf/prf"
)

func msg(fill byte) []bits.Block {
	return []bits.Block{{fill}}
}

func TestGenZRejectsMismatchedLengths(t *testing.T) {
	ks, err := prf.GenerateKeySet(2)
	require.NoError(t, err)

	_, _, err = multipoint.GenZ(ks, 2, 4, []uint64{1, 2}, [][]bits.Block{msg(1)})
	assert.Error(t, err)
}

func TestGenZRejectsDuplicatePoints(t *testing.T) {
	ks, err := prf.GenerateKeySet(2)
	require.NoError(t, err)

	_, _, err = multipoint.GenZ(ks, 2, 4, []uint64{3, 3}, [][]bits.Block{msg(1), msg(2)})
	assert.Error(t, err)
}

func TestFullDomainEvalReconstructsEveryPoint(t *testing.T) {
	ks, err := prf.GenerateKeySet(2)
	require.NoError(t, err)

	n := uint(4)
	points := []uint64{1, 6, 13}
	msgs := [][]bits.Block{msg(0xAA), msg(0xBB), msg(0xCC)}

	k0, k1, err := multipoint.GenZ(ks, 2, n, points, msgs)
	require.NoError(t, err)

	out0, err := multipoint.FullDomainEvalZ(k0, ks)
	require.NoError(t, err)
	out1, err := multipoint.FullDomainEvalZ(k1, ks)
	require.NoError(t, err)
	require.Equal(t, len(out0), len(out1))

	domain := bits.IPow(2, n)
	canonical := make([]bits.Block, domain)
	for x := uint64(0); x < domain; x++ {
		c := bits.CanonicalIndex(x, 2, n)
		canonical[c] = bits.XOR(out0[x], out1[x])
	}

	want := map[uint64]bits.Block{
		points[0]: msgs[0][0],
		points[1]: msgs[1][0],
		points[2]: msgs[2][0],
	}
	for x := uint64(0); x < domain; x++ {
		if m, ok := want[x]; ok {
			assert.Equal(t, m, canonical[x], "point %d", x)
		} else {
			assert.Equal(t, bits.Block{}, canonical[x], "point %d should be zero", x)
		}
	}
}
