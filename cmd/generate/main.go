package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cocktailseed/catalog"
	"cocktailseed/compiler"
	"cocktailseed/config"
	"cocktailseed/dataset"
	"cocktailseed/logging"
)

const (
	defaultCatalogPath = "sql/ddl_create_base_ingredients.sql"
	defaultRecipesPath = "recipes.json"
	defaultOutputPath  = "sql/data_insert_cocktails.sql"
)

type options struct {
	catalogPath string
	recipesPath string
	outputPath  string
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "generate",
		Short: "Compile recipes.json into the SQL that seeds cocktails and their ingredients",
		Long: `Reads the base ingredient catalog and the recipe dataset and writes a SQL script that
inserts every cocktail with its matched ingredients inside one transaction.

Ingredients that match no base ingredient are listed, embedded in the script as statements that
abort the transaction, and make the command exit with status 1. The script is still written so
it can be inspected.`,
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

			return generate(log, cmd.OutOrStdout(), options{
				catalogPath: v.GetString("catalog"),
				recipesPath: v.GetString("recipes"),
				outputPath:  v.GetString("output"),
			})
		},
	}

	rootCmd.Flags().String("catalog", defaultCatalogPath, "Base ingredient catalog (.sql DDL, .json/.yaml list, or .db SQLite)")
	rootCmd.Flags().String("recipes", defaultRecipesPath, "Recipe dataset")
	rootCmd.Flags().StringP("output", "o", defaultOutputPath, "Where to write the generated SQL")
	config.AddCommonFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, compiler.ErrUnmatchedIngredients) {
			fmt.Fprintf(os.Stderr, "generate: %v\n", err)
		}
		os.Exit(1)
	}
}

func generate(log *zap.SugaredLogger, stdout io.Writer, opts options) error {
	cat, err := catalog.LoadFile(opts.catalogPath)
	if err != nil {
		return err
	}
	for _, dup := range cat.Duplicates() {
		log.Warnf("catalog declares %q more than once, keeping the last declaration", dup)
	}
	log.Debugf("loaded %d base ingredients from %s", cat.Len(), opts.catalogPath)

	recipes, err := dataset.LoadRecipes(opts.recipesPath)
	if err != nil {
		return err
	}
	log.Debugf("loaded %d recipes from %s", len(recipes), opts.recipesPath)

	for i, r := range recipes {
		if strings.TrimSpace(r.Name) == "" {
			log.Warnf("recipe #%d has no name", i+1)
		}
	}

	res := compiler.Compile(recipes, cat, compiler.Options{
		ScriptName: filepath.Base(opts.outputPath),
		Generator:  "cmd/generate",
	})

	if err := os.MkdirAll(filepath.Dir(opts.outputPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(opts.outputPath, res.SQL, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", opts.outputPath, err)
	}
	log.Debugf("emitted %d ingredient rows", res.Rows)

	compiler.WriteSummary(stdout, res, opts.outputPath, cat)
	return res.Err()
}
