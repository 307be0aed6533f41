package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cocktailseed/config"
	"cocktailseed/dataset"
	"cocktailseed/logging"
)

const defaultRecipesPath = "recipes.json"

func main() {
	rootCmd := &cobra.Command{
		Use:           "prune",
		Short:         "Remove recipes without an image_url from the recipe dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.Load(cmd)
			if err != nil {
				return err
			}
			log, err := logging.New(v.GetBool(config.VerboseFlag))
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			return prune(log, cmd.OutOrStdout(), v.GetString("recipes"))
		},
	}
	rootCmd.Flags().String("recipes", defaultRecipesPath, "Recipe dataset to rewrite in place")
	config.AddCommonFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "prune: %v\n", err)
		os.Exit(1)
	}
}

func prune(log *zap.SugaredLogger, stdout io.Writer, recipesPath string) error {
	items, err := dataset.ReadRaw(recipesPath)
	if err != nil {
		return err
	}
	kept, removed, err := dataset.Prune(items)
	if err != nil {
		return err
	}
	if removed == 0 {
		fmt.Fprintln(stdout, "No recipes removed; all have image_url.")
		return nil
	}
	if err := dataset.WriteRaw(recipesPath, kept); err != nil {
		return err
	}
	log.Debugf("rewrote %s", recipesPath)
	fmt.Fprintf(stdout, "Removed %d recipes without image_url. New total: %d\n", removed, len(kept))
	return nil
}
