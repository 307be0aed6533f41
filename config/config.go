// Package config resolves command settings from flags, COCKTAILSEED_* environment variables and
// an optional YAML file, in that order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	EnvPrefix   = "COCKTAILSEED"
	ConfigFlag  = "config"
	VerboseFlag = "verbose"
)

// AddCommonFlags registers the flags every command shares.
func AddCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String(ConfigFlag, "", "Path to a YAML file with default flag values")
	cmd.Flags().BoolP(VerboseFlag, "v", false, "Enable debug logging")
}

// Load binds the flags of cmd to a fresh viper instance. A flag named "recipes" can then also be
// set with COCKTAILSEED_RECIPES or a "recipes" key in the --config file.
func Load(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}

	if path := v.GetString(ConfigFlag); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	return v, nil
}
