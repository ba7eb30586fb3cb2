package compare

// Outcome is the three-way signed significance result of a paired
// comparison: negative when the first sequence is significantly lower,
// positive when significantly higher, zero when no significant
// difference was found at the configured level.
type Outcome int

const (
	FirstLower   Outcome = -1
	NoDifference Outcome = 0
	FirstHigher  Outcome = 1
)

// Inverse returns the outcome with the argument order swapped
func (o Outcome) Inverse() Outcome {
	return -o
}

// PairedStats holds the result of one paired comparison between two
// resultsets on one dataset.
type PairedStats struct {
	Dataset string `json:"dataset"`
	LabelA  string `json:"label_a"`
	LabelB  string `json:"label_b"`

	N         int     `json:"n"`
	MeanA     float64 `json:"mean_a"`
	MeanB     float64 `json:"mean_b"`
	VarianceA float64 `json:"variance_a"`
	VarianceB float64 `json:"variance_b"`
	MeanDiff  float64 `json:"mean_diff"`
	TStat     float64 `json:"t_stat"`
	PValue    float64 `json:"p_value"`
	Outcome   Outcome `json:"outcome"`

	// Warnings carries non-fatal run-alignment diagnostics. The
	// comparison proceeded positionally regardless.
	Warnings []string `json:"warnings,omitempty"`
}

// WinMatrix is the aggregate of all pairwise comparisons over all
// datasets. Wins[i][j] counts datasets where resultset j significantly
// outperforms resultset i; the diagonal is unused.
type WinMatrix struct {
	Wins        [][]int `json:"wins"`
	Comparisons int     `json:"comparisons"`
	Skipped     int     `json:"skipped"`
}

// NewWinMatrix creates an n×n zero matrix
func NewWinMatrix(n int) *WinMatrix {
	wins := make([][]int, n)
	for i := range wins {
		wins[i] = make([]int, n)
	}
	return &WinMatrix{Wins: wins}
}

// Size returns the resultset count the matrix covers
func (m *WinMatrix) Size() int {
	return len(m.Wins)
}

// RankingRow is one line of the net-ranking output
type RankingRow struct {
	Index  int    `json:"index"`
	Label  string `json:"label"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Diff   int    `json:"diff"`
}

// WinTieLoss tallies full-table outcomes for one resultset across datasets
type WinTieLoss struct {
	Wins   int `json:"wins"`
	Ties   int `json:"ties"`
	Losses int `json:"losses"`
}

// Full-table marker characters
const (
	MarkerWorse  = 'v'
	MarkerBetter = '*'
	MarkerNone   = ' '
)

// FullTableCell is one resultset's entry for one dataset in the full
// comparison table: its mean and the significance marker against the base.
type FullTableCell struct {
	Mean   float64 `json:"mean"`
	Marker rune    `json:"marker"`
}

// FullTableRow is one dataset line of the full comparison table. Cells is
// indexed by resultset; the base resultset's cell carries its own mean
// and no marker.
type FullTableRow struct {
	Dataset string          `json:"dataset"`
	Runs    int             `json:"runs"`
	Cells   []FullTableCell `json:"cells"`
}

// FullTable is the per-base comparison view over every dataset
type FullTable struct {
	Base        int            `json:"base"`
	BaseLabel   string         `json:"base_label"`
	ValueColumn string         `json:"value_column"`
	Rows        []FullTableRow `json:"rows"`
	// Tallies holds (win/tie/loss) per resultset; the base entry is unused
	Tallies []WinTieLoss `json:"tallies"`
	// Skipped lists datasets where the base comparison itself failed
	Skipped []string `json:"skipped,omitempty"`
}
