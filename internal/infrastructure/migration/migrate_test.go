package migration

import (
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/storefront/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	names, err := List()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "000001_create_catalog_items", names[0])
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(migrations.FS, "*.up.sql")
	require.NoError(t, err)
	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		_, err := fs.Stat(migrations.FS, down)
		assert.NoError(t, err, "missing rollback for %s", up)
	}
}

func TestListMigrations_Sorted(t *testing.T) {
	fsys := fstest.MapFS{
		"000002_b.up.sql":   {Data: []byte("SELECT 1;")},
		"000002_b.down.sql": {Data: []byte("SELECT 1;")},
		"000001_a.up.sql":   {Data: []byte("SELECT 1;")},
		"README.md":         {Data: []byte("x")},
	}
	names, err := listMigrations(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_a", "000002_b"}, names)
}
