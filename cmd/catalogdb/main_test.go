package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cocktailseed/catalog"
	"cocktailseed/db"
)

const testDDL = `('00000000-0000-0000-0000-000000000025', slugify('Gin'), 'Gin', 40, NULL),
('00000000-0000-0000-0000-000000000026', slugify('Dry Vermouth'), 'Dry Vermouth', 18, NULL),
`

func TestBuild(t *testing.T) {
	log := zap.NewNop().Sugar()
	dir := t.TempDir()
	source := filepath.Join(dir, "base.sql")
	require.NoError(t, os.WriteFile(source, []byte(testDDL), 0o644))
	opts := options{
		sourcePath: source,
		dbPath:     filepath.Join(dir, "catalog.db"),
		backup:     true,
		maxBackups: 2,
		list:       true,
	}

	var out bytes.Buffer
	require.NoError(t, build(log, &out, opts))
	assert.Contains(t, out.String(), "Stored 2 base ingredients")
	assert.Contains(t, out.String(), "dry-vermouth")

	// the stored catalog resolves the same keys as its source
	cat, err := catalog.LoadFile(opts.dbPath)
	require.NoError(t, err)
	b, ok := cat.Resolve("gin")
	require.True(t, ok)
	assert.Equal(t, "00000000-0000-0000-0000-000000000025", b.ID)

	t.Run("empty source is refused", func(t *testing.T) {
		empty := filepath.Join(dir, "empty.sql")
		require.NoError(t, os.WriteFile(empty, []byte("-- nothing\n"), 0o644))
		err := build(log, &bytes.Buffer{}, options{sourcePath: empty, dbPath: filepath.Join(dir, "other.db")})
		assert.ErrorIs(t, err, db.ErrCatalogEmpty)
	})
}

func TestPruneOldBackups(t *testing.T) {
	log := zap.NewNop().Sugar()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "catalog.db")
	for i := 1; i <= 4; i++ {
		name := fmt.Sprintf("%s.2024010%d-000000%s", dbPath, i, backupFileExt)
		require.NoError(t, os.WriteFile(name, nil, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.bak"), nil, 0o644))

	pruneOldBackups(log, dbPath, 2)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{
		"catalog.db.20240103-000000.bak",
		"catalog.db.20240104-000000.bak",
		"unrelated.bak",
	}, names)
}

func TestCopyFile(t *testing.T) {
	log := zap.NewNop().Sugar()
	dir := t.TempDir()
	src := filepath.Join(dir, "a")
	require.NoError(t, os.WriteFile(src, []byte("data"), 0o644))
	require.NoError(t, copyFile(log, src, filepath.Join(dir, "b")))
	got, err := os.ReadFile(filepath.Join(dir, "b"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))

	assert.Error(t, copyFile(log, dir, filepath.Join(dir, "c")))
}
