package convert

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/xelarion/gridsheet"
)

func writeWorkbook(t *testing.T, dir string) string {
	first := gridsheet.NewWorksheet("First", 3, 3)
	require.NoError(t, first.SetCellData(2, 2, "c3"))
	require.NoError(t, first.MergeRange(gridsheet.NewRange(0, 0, 2, 2)))
	second := gridsheet.NewWorksheet("Second", 2, 2)
	require.NoError(t, second.SetCellData(1, 1, 12.5))

	path := filepath.Join(dir, "in.xlsx")
	require.NoError(t, gridsheet.NewExporter(path, false).Export([]gridsheet.SheetData{
		{Worksheet: first},
		{Worksheet: second},
	}))
	return path
}

func TestConvertAllSheets(t *testing.T) {
	for _, stream := range []bool{false, true} {
		dir := t.TempDir()
		c := &Convert{
			Input:  writeWorkbook(t, dir),
			Output: filepath.Join(dir, "out.xlsx"),
			Stream: stream,
		}
		require.NoError(t, c.Do(context.Background()))
		assert.Equal(t, []string{"First", "Second"}, c.Converted)

		f, err := excelize.OpenFile(c.Output)
		require.NoError(t, err)
		assert.Equal(t, []string{"First", "Second"}, f.GetSheetList())
		merges, err := f.GetMergeCells("First")
		require.NoError(t, err)
		require.Len(t, merges, 1)
		assert.Equal(t, "A1", merges[0].GetStartAxis())
		assert.Equal(t, "B2", merges[0].GetEndAxis())
		value, err := f.GetCellValue("Second", "B2")
		require.NoError(t, err)
		assert.Equal(t, "12.5", value)
		require.NoError(t, f.Close())
	}
}

func TestConvertSelectedSheet(t *testing.T) {
	dir := t.TempDir()
	c := &Convert{
		Input:  writeWorkbook(t, dir),
		Output: filepath.Join(dir, "out.xlsx"),
		Sheets: []string{"Second"},
	}
	require.NoError(t, c.Do(context.Background()))

	f, err := excelize.OpenFile(c.Output)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Second"}, f.GetSheetList())
}

func TestConvertErrors(t *testing.T) {
	dir := t.TempDir()
	input := writeWorkbook(t, dir)

	assert.Error(t, (&Convert{Input: input}).Do(context.Background()))
	assert.Error(t, (&Convert{Input: input, Output: filepath.Join(dir, "o.xlsx"), Sheets: []string{"Nope"}}).Do(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, (&Convert{Input: input, Output: filepath.Join(dir, "o.xlsx")}).Do(ctx), context.Canceled)
}
