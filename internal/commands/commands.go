// Package commands holds the gridsheet cobra commands.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/xelarion/gridsheet/internal/commands/options"
)

var (
	global = &options.GlobalOptions{}
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gridsheet",
		Short: "Inspect, navigate and convert xlsx worksheets.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddGlobalArgs(cmd, global)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addInspect(topLevel)
	addConvert(topLevel)
	addSelect(topLevel)
	addVersion(topLevel)
}
