package inspect

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xelarion/gridsheet"
	"github.com/xelarion/gridsheet/internal/printers"
)

func writeWorkbook(t *testing.T) string {
	ws := gridsheet.NewWorksheet("Report", 6, 4)
	require.NoError(t, ws.SetCellData(0, 0, "title"))
	require.NoError(t, ws.SetCellData(5, 3, "end"))
	require.NoError(t, ws.MergeRange(gridsheet.NewRange(0, 0, 1, 4)))
	require.NoError(t, ws.SetRangeBorders(gridsheet.NewRange(1, 0, 2, 4), gridsheet.BorderOutline,
		gridsheet.BorderStyle{Line: gridsheet.BorderThin, Color: "000000"}))

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, gridsheet.NewExporter(path, false).Export([]gridsheet.SheetData{{Worksheet: ws}}))
	return path
}

func TestInspect(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	i := &Inspect{
		Path:     writeWorkbook(t),
		Validate: true,
		Borders:  true,
		Printer:  &printers.PrettyPrint{Out: &buf},
	}
	require.NoError(t, i.Do(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "Report")
	assert.Contains(t, out, "A1:D1")
	assert.Contains(t, out, "horizontal borders")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "valid"))
}

func TestInspectMissingFile(t *testing.T) {
	i := &Inspect{Path: filepath.Join(t.TempDir(), "missing.xlsx")}
	assert.Error(t, i.Do(context.Background()))
}
