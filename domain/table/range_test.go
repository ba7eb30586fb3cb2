package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColumnRange(t *testing.T) {
	tests := []struct {
		name        string
		expr        string
		columnCount int
		want        []int
		wantErr     bool
	}{
		{name: "single", expr: "1", columnCount: 5, want: []int{0}},
		{name: "list", expr: "1,3", columnCount: 5, want: []int{0, 2}},
		{name: "span", expr: "1,3-5", columnCount: 6, want: []int{0, 2, 3, 4}},
		{name: "first and last", expr: "first,last", columnCount: 4, want: []int{0, 3}},
		{name: "span to last", expr: "2-last", columnCount: 4, want: []int{1, 2, 3}},
		{name: "clipped to width", expr: "3-9", columnCount: 5, want: []int{2, 3, 4}},
		{name: "duplicates collapse", expr: "2,1-3", columnCount: 5, want: []int{0, 1, 2}},
		{name: "whitespace", expr: " 1 , 3 - 4 ", columnCount: 5, want: []int{0, 2, 3}},
		{name: "empty", expr: "", columnCount: 5, want: nil},
		{name: "garbage", expr: "1,x", columnCount: 5, wantErr: true},
		{name: "zero is invalid", expr: "0", columnCount: 5, wantErr: true},
		{name: "descending span", expr: "4-2", columnCount: 5, wantErr: true},
		{name: "trailing comma", expr: "1,", columnCount: 5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColumnRange(tt.expr, tt.columnCount)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
