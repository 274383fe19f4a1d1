// Package options defines shared flag helpers for CLI commands.
package options

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/xelarion/gridsheet"
	"github.com/xelarion/gridsheet/internal/config"
)

// GlobalOptions are the persistent flags of the root command.
type GlobalOptions struct {
	ConfigPath string
	Debug      bool
}

// AddGlobalArgs wires the persistent flags on the root command.
func AddGlobalArgs(cmd *cobra.Command, o *GlobalOptions) {
	cmd.PersistentFlags().StringVar(&o.ConfigPath, "config", "",
		"Config file (default is $HOME/.gridsheet.yaml).")
	cmd.PersistentFlags().BoolVar(&o.Debug, "debug", false,
		"Trace worksheet edits to stderr.")
}

// Load reads the config and returns it with the worksheet options it implies.
func (o *GlobalOptions) Load() (*config.Config, []gridsheet.Option, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	opts := cfg.Options()
	if o.Debug {
		opts = append(opts, gridsheet.WithDebug(os.Stderr))
	}
	return cfg, opts, nil
}
