package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/xelarion/gridsheet/internal/commands/options"
	"github.com/xelarion/gridsheet/internal/runner/convert"
)

func addConvert(topLevel *cobra.Command) {
	co := &options.ConvertOptions{}

	cmd := &cobra.Command{
		Use:   "convert <in.xlsx> <out.xlsx>",
		Short: "Load sheets through the grid engine and write them to a new workbook.",
		Example: `
gridsheet convert in.xlsx out.xlsx
gridsheet convert in.xlsx out.xlsx --sheets Data,Totals --stream
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, opts, err := global.Load()
			if err != nil {
				return err
			}
			c := convert.Convert{
				Input:   args[0],
				Output:  args[1],
				Sheets:  co.Sheets,
				Stream:  co.ResolveStream(cmd, cfg.Stream),
				Options: opts,
			}
			if err := c.Do(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(color.Output, "wrote %d sheet(s) to %s\n", len(c.Converted), c.Output)
			return nil
		},
	}
	options.AddConvertArgs(cmd, co)

	topLevel.AddCommand(cmd)
}
