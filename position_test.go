package gridsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCellPosition(t *testing.T) {
	p, err := ParseCellPosition("B3")
	require.NoError(t, err)
	assert.Equal(t, NewCellPosition(2, 1), p)
	assert.Equal(t, "B3", p.String())

	p, err = ParseCellPosition("AA10")
	require.NoError(t, err)
	assert.Equal(t, NewCellPosition(9, 26), p)

	_, err = ParseCellPosition("3B")
	assert.ErrorIs(t, err, ErrInvalidAddress)

	assert.Equal(t, "", EmptyPosition.String())
	assert.True(t, EmptyPosition.IsEmpty())
}

func TestParseRangePosition(t *testing.T) {
	tests := []struct {
		addr string
		want RangePosition
		str  string
	}{
		{"A1:C3", NewRange(0, 0, 3, 3), "A1:C3"},
		{"C3:A1", NewRange(0, 0, 3, 3), "A1:C3"},
		{"B2", NewRange(1, 1, 1, 1), "B2"},
		{"B:D", EntireColumns(1, 3), "B:D"},
		{"4:2", EntireRows(1, 3), "2:4"},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			r, err := ParseRangePosition(tt.addr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r)
			assert.Equal(t, tt.str, r.String())
		})
	}

	_, err := ParseRangePosition("A1:??")
	assert.ErrorIs(t, err, ErrInvalidAddress)
	_, err = ParseRangePosition("0:3")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestRangePositionGeometry(t *testing.T) {
	r := NewRange(2, 2, 3, 3)
	assert.Equal(t, 4, r.EndRow())
	assert.Equal(t, 4, r.EndCol())
	assert.True(t, r.Contains(NewCellPosition(4, 4)))
	assert.False(t, r.Contains(NewCellPosition(5, 4)))
	assert.True(t, r.ContainsRange(NewRange(3, 3, 2, 2)))
	assert.False(t, r.ContainsRange(NewRange(3, 3, 3, 2)))
	assert.True(t, r.Intersects(NewRange(4, 4, 5, 5)))
	assert.False(t, r.Intersects(NewRange(5, 0, 5, 5)))
	assert.Equal(t, NewRange(0, 2, 5, 4), r.Union(NewRange(0, 5, 1, 1)))
	assert.Equal(t, r, r.Union(RangePosition{}))

	assert.True(t, RangePosition{}.IsEmpty())
	assert.True(t, NewRange(7, 7, 1, 1).IsSingleCell())
	assert.Equal(t, NewRange(1, 1, 3, 4), RangeFromPositions(NewCellPosition(3, 4), NewCellPosition(1, 1)))

	rows := EntireRows(3, 2)
	assert.True(t, rows.IsEntireRow())
	assert.True(t, rows.Contains(NewCellPosition(4, 5000)))
}

func TestFixRange(t *testing.T) {
	assert.Equal(t, NewRange(1, 2, 4, 3), fixRange(NewCellPosition(4, 4), NewCellPosition(1, 2), 10, 10))
	assert.Equal(t, NewRange(8, 0, 2, 10), fixRange(NewCellPosition(8, -3), NewCellPosition(20, 30), 10, 10))
	assert.True(t, fixRange(NewCellPosition(0, 0), NewCellPosition(1, 1), 0, 5).IsEmpty())

	ws := NewWorksheet("fix", 5, 5)
	assert.Equal(t, NewRange(0, 1, 5, 2), ws.FixRangePosition(EntireColumns(1, 2)))
	assert.Equal(t, NewRange(3, 0, 2, 5), ws.FixRangePosition(EntireRows(3, 10)))
}
