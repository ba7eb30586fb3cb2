package ports

// PairedTestResult is the finalized output of one paired-difference test
// over two aligned numeric sequences.
type PairedTestResult struct {
	N        int     // sample count (pairs)
	MeanX    float64 // mean of the first sequence
	MeanY    float64 // mean of the second sequence
	VarX     float64 // sample variance of the first sequence
	VarY     float64 // sample variance of the second sequence
	MeanDiff float64 // mean of (x - y)
	TStat    float64 // test statistic
	PValue   float64 // two-tailed p-value

	// Significance is the signed three-way decision at the requested
	// level: -1 when the first sequence is significantly lower, +1 when
	// significantly higher, 0 when no significant difference.
	Significance int
}

// PairedTesterPort is the external paired-difference statistic service.
// Implementations receive two equal-length, positionally aligned
// sequences and a significance level in (0,1).
type PairedTesterPort interface {
	Test(x, y []float64, significance float64) (*PairedTestResult, error)
}
