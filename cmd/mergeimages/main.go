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

const (
	defaultRecipesPath = "recipes.json"
	defaultIBAPath     = "iba_cocktails_json.json"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "mergeimages",
		Short:         "Backfill missing image_url values in the recipe dataset from the IBA cocktail dataset",
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

			return mergeImages(log, cmd.OutOrStdout(), v.GetString("recipes"), v.GetString("iba"))
		},
	}
	rootCmd.Flags().String("recipes", defaultRecipesPath, "Recipe dataset to update in place")
	rootCmd.Flags().String("iba", defaultIBAPath, "IBA cocktail dataset providing the images")
	config.AddCommonFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mergeimages: %v\n", err)
		os.Exit(1)
	}
}

func mergeImages(log *zap.SugaredLogger, stdout io.Writer, recipesPath, ibaPath string) error {
	index, err := dataset.LoadImageIndex(ibaPath)
	if err != nil {
		return err
	}
	log.Debugf("IBA dataset has %d named images", len(index))

	items, err := dataset.ReadRaw(recipesPath)
	if err != nil {
		return err
	}
	merged, updated, err := dataset.MergeImages(items, index)
	if err != nil {
		return err
	}
	if updated == 0 {
		fmt.Fprintln(stdout, "No recipes were updated. Either they already had images or none matched.")
		return nil
	}
	if err := dataset.WriteRaw(recipesPath, merged); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Updated %d recipes with image URLs and saved back to %s.\n", updated, recipesPath)
	return nil
}
