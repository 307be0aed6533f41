package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cocktailseed/catalog"
	"cocktailseed/config"
	"cocktailseed/db"
	"cocktailseed/logging"
)

const (
	defaultSourcePath = "sql/ddl_create_base_ingredients.sql"
	defaultDBPath     = "base_ingredients.db"
	defaultMaxBackups = 5
	backupFileExt     = ".bak"
)

type options struct {
	sourcePath string
	dbPath     string
	backup     bool
	maxBackups int
	list       bool
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "catalogdb",
		Short: "Build a SQLite base ingredient catalog from a DDL or structured catalog file",
		Long: `Loads the base ingredient catalog from --source and stores it in the SQLite database
at --db, replacing whatever catalog it held. The generate command accepts the resulting file as
its --catalog, which removes any dependency on the layout of the DDL.`,
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

			return build(log, cmd.OutOrStdout(), options{
				sourcePath: v.GetString("source"),
				dbPath:     v.GetString("db"),
				backup:     v.GetBool("backup"),
				maxBackups: v.GetInt("max-backups"),
				list:       v.GetBool("list"),
			})
		},
	}

	rootCmd.Flags().String("source", defaultSourcePath, "Catalog to import (.sql DDL or .json/.yaml list)")
	rootCmd.Flags().String("db", defaultDBPath, "Path to SQLite database file")
	rootCmd.Flags().Bool("backup", true, "Whether to create a backup of the database if it exists")
	rootCmd.Flags().Int("max-backups", defaultMaxBackups, "Maximum number of backups to retain")
	rootCmd.Flags().Bool("list", false, "Print the stored catalog when done")
	config.AddCommonFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "catalogdb: %v\n", err)
		os.Exit(1)
	}
}

func build(log *zap.SugaredLogger, stdout io.Writer, opts options) error {
	cat, err := catalog.LoadFile(opts.sourcePath)
	if err != nil {
		return err
	}
	if cat.Len() == 0 {
		return fmt.Errorf("%s: %w", opts.sourcePath, db.ErrCatalogEmpty)
	}
	for _, dup := range cat.Duplicates() {
		log.Warnf("catalog declares %q more than once, keeping the last declaration", dup)
	}

	if opts.backup {
		if info, err := os.Stat(opts.dbPath); err == nil {
			log.Infof("existing database file size: %d bytes", info.Size())
			backupPath := fmt.Sprintf("%s.%s%s", opts.dbPath, time.Now().Format("20060102-150405"), backupFileExt)
			if err := copyFile(log, opts.dbPath, backupPath); err != nil {
				return fmt.Errorf("failed to create DB backup: %w", err)
			}
			log.Infof("existing database backed up to %s", backupPath)
			pruneOldBackups(log, opts.dbPath, opts.maxBackups)
		}
	}

	conn, err := db.BootstrapSQLite(log, opts.dbPath, cat.Entries())
	if err != nil {
		return err
	}
	if sqlDB, err := conn.DB(); err == nil {
		defer sqlDB.Close()
	}

	var store db.Store = db.NewSQLStore(conn)
	if err := store.Ping(context.Background()); err != nil {
		return err
	}
	count, err := store.CountBaseIngredients()
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Stored %d base ingredients in %s.\n", count, opts.dbPath)

	if opts.list {
		items, err := store.ListBaseIngredients()
		if err != nil {
			return err
		}
		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.SetOutputMirror(stdout)
		t.AppendHeader(table.Row{"Slug", "ID", "Name"})
		for _, b := range items {
			t.AppendRow(table.Row{b.Slug, b.ID, b.Name})
		}
		t.Render()
	}
	return nil
}

func copyFile(log *zap.SugaredLogger, src, dst string) error {
	sourceFileStat, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !sourceFileStat.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func(source *os.File) {
		err := source.Close()
		if err != nil {
			log.Warnf("failed to close file %s: %v", src, err)
		}
	}(source)

	destination, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func(destination *os.File) {
		err := destination.Close()
		if err != nil {
			log.Warnf("failed to close file %s: %v", dst, err)
		}
	}(destination)

	_, err = destination.ReadFrom(source)
	return err
}

func pruneOldBackups(log *zap.SugaredLogger, dbPath string, max int) {
	dir := filepath.Dir(dbPath)
	base := filepath.Base(dbPath)
	prefix := base + "."
	files, err := os.ReadDir(dir)
	if err != nil {
		log.Warnf("failed to read backup directory: %v", err)
		return
	}

	var backups []string
	for _, f := range files {
		if strings.HasPrefix(f.Name(), prefix) && strings.HasSuffix(f.Name(), backupFileExt) {
			backups = append(backups, filepath.Join(dir, f.Name()))
		}
	}

	if len(backups) <= max {
		return
	}

	sort.Strings(backups)
	toRemove := backups[:len(backups)-max]
	for _, file := range toRemove {
		err := os.Remove(file)
		if err != nil {
			log.Warnf("failed to remove old backup %s: %v", file, err)
		} else {
			log.Infof("removed old backup: %s", file)
		}
	}
}
