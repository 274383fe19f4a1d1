package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/xelarion/gridsheet/internal/commands/options"
	"github.com/xelarion/gridsheet/internal/runner/inspect"
)

func addInspect(topLevel *cobra.Command) {
	so := &options.SheetOptions{}
	io := &options.InspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <file.xlsx>",
		Short: "Print the size, merged ranges and border runs of a sheet.",
		Example: `
gridsheet inspect report.xlsx
gridsheet inspect report.xlsx --sheet Summary --validate
gridsheet inspect report.xlsx --borders=false
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			_, opts, err := global.Load()
			if err != nil {
				return err
			}
			i := inspect.Inspect{
				Path:     args[0],
				Sheet:    so.Sheet,
				Validate: io.Validate,
				Borders:  io.Borders,
				Options:  opts,
			}
			return i.Do(context.Background())
		},
	}
	options.AddSheetArgs(cmd, so)
	options.AddInspectArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
