package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/xelarion/gridsheet/internal/commands/options"
	"github.com/xelarion/gridsheet/internal/runner/navigate"
)

func addSelect(topLevel *cobra.Command) {
	so := &options.SheetOptions{}
	mo := &options.MoveOptions{}

	cmd := &cobra.Command{
		Use:   "select <file.xlsx> [range]",
		Short: "Select a range, replay cursor moves and print the resulting selection.",
		Example: `
gridsheet select report.xlsx B2
gridsheet select report.xlsx B2:D4 --move forward --times 3
gridsheet select report.xlsx A1 --move right,down --append
`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			_, opts, err := global.Load()
			if err != nil {
				return err
			}
			n := navigate.Navigate{
				Path:    args[0],
				Sheet:   so.Sheet,
				Moves:   mo.Moves,
				Times:   mo.Times,
				Append:  mo.Append,
				Options: opts,
			}
			if len(args) > 1 {
				n.Range = args[1]
			}
			return n.Do(context.Background())
		},
	}
	options.AddSheetArgs(cmd, so)
	options.AddMoveArgs(cmd, mo)

	topLevel.AddCommand(cmd)
}
