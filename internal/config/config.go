// Package config loads gridsheet defaults from .gridsheet.yaml and GRIDSHEET_* environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/xelarion/gridsheet"
)

const (
	keyRowHeight     = "row_height"
	keyColumnWidth   = "column_width"
	keySelectionMode = "selection_mode"
	keyStream        = "stream"
)

// Config holds the worksheet defaults used by the CLI.
type Config struct {
	RowHeight     int    `json:"row_height"`
	ColumnWidth   int    `json:"column_width"`
	SelectionMode string `json:"selection_mode"`
	Stream        bool   `json:"stream"`
}

// Load reads the configuration. A non-empty path names the file to read;
// otherwise .gridsheet is looked up in $GRIDSHEET_CONFIG_PATH, the home
// directory and the working directory. A missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault(keyRowHeight, gridsheet.DefaultRowHeight)
	v.SetDefault(keyColumnWidth, gridsheet.DefaultColumnWidth)
	v.SetDefault(keySelectionMode, gridsheet.SelectionRange.String())
	v.SetDefault(keyStream, false)
	v.SetEnvPrefix("GRIDSHEET")
	v.AutomaticEnv()

	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, fmt.Errorf("failed to expand config path: %w", err)
		}
		v.SetConfigFile(expanded)
	} else {
		v.SetConfigName(".gridsheet") // .yaml is implicit
		if override := os.Getenv("GRIDSHEET_CONFIG_PATH"); override != "" {
			v.AddConfigPath(override)
		}
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath("./")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	c := &Config{
		RowHeight:     v.GetInt(keyRowHeight),
		ColumnWidth:   v.GetInt(keyColumnWidth),
		SelectionMode: v.GetString(keySelectionMode),
		Stream:        v.GetBool(keyStream),
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.RowHeight <= 0 {
		return fmt.Errorf("%s must be positive, got %d", keyRowHeight, c.RowHeight)
	}
	if c.ColumnWidth <= 0 {
		return fmt.Errorf("%s must be positive, got %d", keyColumnWidth, c.ColumnWidth)
	}
	if _, ok := gridsheet.ParseSelectionMode(c.SelectionMode); !ok {
		return fmt.Errorf("unknown %s %q", keySelectionMode, c.SelectionMode)
	}
	return nil
}

// Options converts the configuration into worksheet options.
func (c *Config) Options() []gridsheet.Option {
	mode, _ := gridsheet.ParseSelectionMode(c.SelectionMode)
	return []gridsheet.Option{
		gridsheet.WithDefaultRowHeight(c.RowHeight),
		gridsheet.WithDefaultColumnWidth(c.ColumnWidth),
		gridsheet.WithSelectionMode(mode),
	}
}
