package table

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ParseColumnRange expands a column range expression into a concrete
// ascending list of zero-based column indexes, clipped to columnCount.
//
// The expression uses one-based indexes, comma-separated, with optional
// spans: "1,3-5". The tokens "first" and "last" name the first and last
// column of the table. An empty expression yields an empty list.
func ParseColumnRange(expr string, columnCount int) ([]int, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}

	seen := make(map[int]bool)
	for _, token := range strings.Split(expr, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, fmt.Errorf("empty token in column range %q", expr)
		}

		var lo, hi int
		var err error
		if idx := strings.Index(token, "-"); idx > 0 {
			lo, err = parseColumnIndex(token[:idx], columnCount)
			if err != nil {
				return nil, err
			}
			hi, err = parseColumnIndex(token[idx+1:], columnCount)
			if err != nil {
				return nil, err
			}
			if hi < lo {
				return nil, fmt.Errorf("descending span %q in column range", token)
			}
		} else {
			lo, err = parseColumnIndex(token, columnCount)
			if err != nil {
				return nil, err
			}
			hi = lo
		}

		for i := lo; i <= hi; i++ {
			// Clip to the table width rather than failing: range
			// expressions are written against the widest schema.
			if i >= 0 && i < columnCount {
				seen[i] = true
			}
		}
	}

	indexes := make([]int, 0, len(seen))
	for i := range seen {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	return indexes, nil
}

// parseColumnIndex converts one token to a zero-based index
func parseColumnIndex(token string, columnCount int) (int, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "first":
		return 0, nil
	case "last":
		return columnCount - 1, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil {
		return 0, fmt.Errorf("invalid column index %q", token)
	}
	if n < 1 {
		return 0, fmt.Errorf("column indexes are one-based, got %d", n)
	}
	return n - 1, nil
}
