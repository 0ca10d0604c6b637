package prf_test

import (
	"crypto/aes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhli271828/base-ary-dpf/internal/bits"
	"github.com/zhli271828/base-ary-dpf/prf"
)

func fixedKeys(t *testing.T, b int) [][]byte {
	t.Helper()
	keys := make([][]byte, b)
	for j := range keys {
		key := make([]byte, aes.BlockSize)
		key[0] = byte(j + 1)
		keys[j] = key
	}
	return keys
}

func TestGenerateKeySetCount(t *testing.T) {
	ks, err := prf.GenerateKeySet(5)
	require.NoError(t, err)
	assert.Equal(t, 5, ks.Count())
}

func TestGenerateKeySetRejectsNonPositive(t *testing.T) {
	_, err := prf.GenerateKeySet(0)
	assert.Error(t, err)
}

func TestNewKeySetFromBytesRejectsBadLength(t *testing.T) {
	_, err := prf.NewKeySetFromBytes([][]byte{{1, 2, 3}})
	assert.Error(t, err)
}

func TestEvalDeterministic(t *testing.T) {
	ks, err := prf.NewKeySetFromBytes(fixedKeys(t, 3))
	require.NoError(t, err)

	var in bits.Block
	in[0] = 0x42

	out1, err := ks.Eval(1, in)
	require.NoError(t, err)
	out2, err := ks.Eval(1, in)
	require.NoError(t, err)
	assert.Equal(t, out1, out2)
}

func TestEvalBranchesIndependent(t *testing.T) {
	ks, err := prf.NewKeySetFromBytes(fixedKeys(t, 3))
	require.NoError(t, err)

	var in bits.Block
	in[0] = 0x42

	out0, err := ks.Eval(0, in)
	require.NoError(t, err)
	out1, err := ks.Eval(1, in)
	require.NoError(t, err)
	out2, err := ks.Eval(2, in)
	require.NoError(t, err)

	assert.NotEqual(t, out0, out1)
	assert.NotEqual(t, out1, out2)
	assert.NotEqual(t, out0, out2)
}

func TestEvalOutOfRangeBranch(t *testing.T) {
	ks, err := prf.NewKeySetFromBytes(fixedKeys(t, 2))
	require.NoError(t, err)

	_, err = ks.Eval(2, bits.Block{})
	assert.Error(t, err)
}

func TestBatchEvalMatchesEval(t *testing.T) {
	ks, err := prf.NewKeySetFromBytes(fixedKeys(t, 2))
	require.NoError(t, err)

	in := make([]bits.Block, 4)
	for i := range in {
		in[i][0] = byte(i)
	}
	out := make([]bits.Block, 4)
	require.NoError(t, ks.BatchEval(0, in, out))

	for i := range in {
		single, err := ks.Eval(0, in[i])
		require.NoError(t, err)
		assert.Equal(t, single, out[i])
	}
}

func TestBatchEvalLengthMismatch(t *testing.T) {
	ks, err := prf.NewKeySetFromBytes(fixedKeys(t, 1))
	require.NoError(t, err)

	err = ks.BatchEval(0, make([]bits.Block, 2), make([]bits.Block, 3))
	assert.Error(t, err)
}

func TestBatchEvalDistinctOutputLocation(t *testing.T) {
	ks, err := prf.NewKeySetFromBytes(fixedKeys(t, 1))
	require.NoError(t, err)

	in := make([]bits.Block, 3)
	for i := range in {
		in[i][0] = byte(10 + i)
	}
	snapshot := append([]bits.Block(nil), in...)

	out := make([]bits.Block, 3)
	require.NoError(t, ks.BatchEval(0, in, out))

	assert.Equal(t, snapshot, in, "BatchEval must not mutate its input when writing to a distinct output")
}
