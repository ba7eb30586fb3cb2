package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdenticalSequencesAreNeutral(t *testing.T) {
	tester := NewPairedTTester()
	x := []float64{1.5, 2.5, 3.5, 4.5}

	res, err := tester.Test(x, x, 0.05)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Significance)
	assert.Equal(t, 0.0, res.MeanDiff)
	assert.Equal(t, 1.0, res.PValue)
	assert.Equal(t, 4, res.N)
}

func TestConstantShiftIsSignificant(t *testing.T) {
	tester := NewPairedTTester()
	x := []float64{1, 2, 3}
	y := []float64{3, 4, 5}

	res, err := tester.Test(x, y, 0.05)
	require.NoError(t, err)

	// Every difference is exactly -2: degenerate variance, fully significant.
	assert.Equal(t, -1, res.Significance)
	assert.Equal(t, -2.0, res.MeanDiff)
	assert.Equal(t, 0.0, res.PValue)
}

func TestClearDifferenceWithNoise(t *testing.T) {
	tester := NewPairedTTester()
	x := []float64{51, 52, 53}
	y := []float64{62, 64, 66}

	res, err := tester.Test(x, y, 0.05)
	require.NoError(t, err)

	assert.Equal(t, -1, res.Significance)
	assert.InDelta(t, 52.0, res.MeanX, 1e-9)
	assert.InDelta(t, 64.0, res.MeanY, 1e-9)
	assert.InDelta(t, -12.0, res.MeanDiff, 1e-9)
	// mean diff -12, sd of diffs 1, n 3: t = -12*sqrt(3)
	assert.InDelta(t, -20.7846, res.TStat, 1e-3)
	assert.Less(t, res.PValue, 0.05)
}

func TestNoDifferenceInNoise(t *testing.T) {
	tester := NewPairedTTester()
	x := []float64{10, 12, 9, 11, 10}
	y := []float64{11, 10, 10, 12, 9}

	res, err := tester.Test(x, y, 0.05)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Significance)
	assert.Greater(t, res.PValue, 0.05)
}

func TestSignSymmetry(t *testing.T) {
	tester := NewPairedTTester()
	x := []float64{1.0, 2.1, 2.9, 4.2}
	y := []float64{2.0, 3.4, 4.1, 5.2}

	ab, err := tester.Test(x, y, 0.05)
	require.NoError(t, err)
	ba, err := tester.Test(y, x, 0.05)
	require.NoError(t, err)

	assert.Equal(t, -ab.Significance, ba.Significance)
	assert.InDelta(t, -ab.MeanDiff, ba.MeanDiff, 1e-12)
	assert.InDelta(t, -ab.TStat, ba.TStat, 1e-12)
	assert.InDelta(t, ab.PValue, ba.PValue, 1e-12)
	assert.Equal(t, ab.MeanX, ba.MeanY)
	assert.Equal(t, ab.MeanY, ba.MeanX)
	assert.Equal(t, ab.VarX, ba.VarY)
}

func TestInputValidation(t *testing.T) {
	tester := NewPairedTTester()

	_, err := tester.Test([]float64{1, 2}, []float64{1}, 0.05)
	assert.Error(t, err, "length mismatch")

	_, err = tester.Test([]float64{1}, []float64{2}, 0.05)
	assert.Error(t, err, "too few pairs")

	_, err = tester.Test([]float64{1, 2}, []float64{1, 2}, 0)
	assert.Error(t, err, "significance at bound")

	_, err = tester.Test([]float64{1, 2}, []float64{1, 2}, 1)
	assert.Error(t, err, "significance at bound")
}
