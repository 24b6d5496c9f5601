package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joshuapare/wasmkit/pkg/bundle"
)

// Settings come from, in increasing precedence: built-in defaults, the
// --config file (TOML, YAML or JSON by extension), WASMCTL_* environment
// variables, and command-line flags.
var cfgFile string

func loadConfig() (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("section", bundle.DefaultSection)

	v.SetEnvPrefix("wasmctl")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("load config %s: %w", cfgFile, err)
		}
	}
	return v, nil
}

// resolveSection fills dst from the configuration unless the command's
// --section flag was given explicitly.
func resolveSection(cmd *cobra.Command, dst *string) error {
	if cmd.Flags().Changed("section") {
		return nil
	}
	v, err := loadConfig()
	if err != nil {
		return err
	}
	*dst = v.GetString("section")
	return nil
}
