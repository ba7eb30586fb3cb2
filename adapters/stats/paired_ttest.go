package stats

import (
	"fmt"
	"math"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"goexpt/ports"
)

// PairedTTester performs a two-tailed paired Student's t-test over two
// aligned numeric sequences. It implements ports.PairedTesterPort.
type PairedTTester struct{}

// NewPairedTTester creates a new paired t-test service
func NewPairedTTester() *PairedTTester {
	return &PairedTTester{}
}

// Test runs the paired t-test at the given significance level.
//
// Degenerate variance is handled explicitly: when every pairwise
// difference is identical, the test reports no significant difference if
// the common difference is zero, and a fully significant one otherwise.
// Identical input sequences therefore always come back neutral, which
// callers rely on when a resultset is compared against itself.
func (a *PairedTTester) Test(x, y []float64, significance float64) (*ports.PairedTestResult, error) {
	if significance <= 0 || significance >= 1 {
		return nil, fmt.Errorf("significance level must be in (0,1), got %g", significance)
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("sequence lengths differ: %d vs %d", len(x), len(y))
	}
	if len(x) < 2 {
		return nil, fmt.Errorf("need at least two paired values, got %d", len(x))
	}

	diffs := make([]float64, len(x))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			return nil, fmt.Errorf("missing value at pair %d", i)
		}
		diffs[i] = x[i] - y[i]
	}

	n := len(diffs)
	meanX, _ := mstats.Mean(x)
	meanY, _ := mstats.Mean(y)
	varX, _ := mstats.SampleVariance(x)
	varY, _ := mstats.SampleVariance(y)
	meanDiff, _ := mstats.Mean(diffs)
	varDiff, _ := mstats.SampleVariance(diffs)

	result := &ports.PairedTestResult{
		N:        n,
		MeanX:    meanX,
		MeanY:    meanY,
		VarX:     varX,
		VarY:     varY,
		MeanDiff: meanDiff,
	}

	if varDiff == 0 {
		if meanDiff == 0 {
			result.TStat = 0
			result.PValue = 1
			result.Significance = 0
			return result, nil
		}
		result.TStat = math.Inf(sign(meanDiff))
		result.PValue = 0
		result.Significance = sign(meanDiff)
		return result, nil
	}

	result.TStat = meanDiff / math.Sqrt(varDiff/float64(n))
	result.PValue = twoTailedP(result.TStat, float64(n-1))
	if result.PValue < significance {
		result.Significance = sign(result.TStat)
	}
	return result, nil
}

// twoTailedP computes the two-tailed p-value from Student's t
// distribution with df degrees of freedom.
func twoTailedP(t, df float64) float64 {
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * dist.CDF(-math.Abs(t))
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}
