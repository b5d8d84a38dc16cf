package sqlite

import (
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mockbanker/mockbanker/internal/kvstore"
)

func openTestDB(t *testing.T) (*DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mockbanker.db")
	db, err := NewDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, path
}

// TestNewDB_CreatesDirectory verifies nested parents are created with 0700.
func TestNewDB_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "nested", "mockbanker.db")

	db, err := NewDB(path)
	require.NoError(t, err)
	defer db.Close()

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	require.True(t, info.IsDir())
	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), info.Mode().Perm())
	}
	require.Equal(t, path, db.Path())
}

func TestNewDB_RunsMigrations(t *testing.T) {
	db, _ := openTestDB(t)

	var name string
	err := db.conn.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='kv'`).Scan(&name)
	require.NoError(t, err)
	require.Equal(t, "kv", name)

	var version int
	var dirty bool
	require.NoError(t, db.conn.QueryRow(`SELECT version, dirty FROM schema_migrations`).Scan(&version, &dirty))
	require.Equal(t, 1, version)
	require.False(t, dirty)
}

// TestNewDB_PreMigrationBackup verifies reopening copies the file to .bak.
func TestNewDB_PreMigrationBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mockbanker.db")

	db1, err := NewDB(path)
	require.NoError(t, err)
	_, err = db1.conn.Exec(`INSERT INTO kv (key, value, updated_at) VALUES ('theme', 'dark', 1)`)
	require.NoError(t, err)
	require.NoError(t, db1.Close())

	_, err = os.Stat(path + ".bak")
	require.True(t, os.IsNotExist(err), "first open has nothing to back up")

	db2, err := NewDB(path)
	require.NoError(t, err)
	defer db2.Close()

	info, err := os.Stat(path + ".bak")
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

// TestBackup_IncludesWAL verifies writes still sitting in the WAL of an open
// database are part of the backup.
func TestBackup_IncludesWAL(t *testing.T) {
	db, path := openTestDB(t)
	require.NoError(t, db.KVStore().Set(t.Context(), "history", `[{"id":"a"}]`))

	_, err := os.Stat(path + "-wal")
	require.NoError(t, err, "write should still be in the WAL")

	dst := path + ".bak"
	require.NoError(t, os.WriteFile(dst, []byte("stale"), 0o600))
	require.NoError(t, backup(path, dst))

	snap, err := sql.Open("sqlite3", "file:"+dst)
	require.NoError(t, err)
	defer snap.Close()
	var value string
	require.NoError(t, snap.QueryRow(`SELECT value FROM kv WHERE key = 'history'`).Scan(&value))
	require.Equal(t, `[{"id":"a"}]`, value)
}

func TestNewDB_Pragmas(t *testing.T) {
	db, _ := openTestDB(t)

	var journal string
	require.NoError(t, db.conn.QueryRow("PRAGMA journal_mode").Scan(&journal))
	require.Equal(t, "wal", journal)

	var fk int
	require.NoError(t, db.conn.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	require.Equal(t, 1, fk)

	var busy int
	require.NoError(t, db.conn.QueryRow("PRAGMA busy_timeout").Scan(&busy))
	require.Equal(t, 5000, busy)
}

func TestDB_Close(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "mockbanker.db"))
	require.NoError(t, err)
	require.NoError(t, db.Close())
	require.Error(t, db.conn.Ping())
}

func TestDB_Connection(t *testing.T) {
	db, _ := openTestDB(t)
	conn := db.Connection()
	require.IsType(t, (*sql.DB)(nil), conn)
	require.NoError(t, conn.Ping())
}

func TestNewDB_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mockbanker.db")

	db1, err := NewDB(path)
	require.NoError(t, err)
	defer db1.Close()

	db2, err := NewDB(path)
	require.NoError(t, err, "second open should see no pending migrations")
	defer db2.Close()

	var n int
	require.NoError(t, db2.conn.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&n))
	require.Zero(t, n)
}

func TestNewDB_InvalidPath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := NewDB(filepath.Join(blocker, "sub", "mockbanker.db"))
	require.Error(t, err)
}

func TestMigrateDriver_Lock(t *testing.T) {
	db, _ := openTestDB(t)
	d := newMigrateDriver(db.conn)

	require.NoError(t, d.Lock())
	require.Error(t, d.Lock())
	require.NoError(t, d.Unlock())
	require.Error(t, d.Unlock())
}

func TestMigrateDriver_Version(t *testing.T) {
	db, _ := openTestDB(t)
	d := newMigrateDriver(db.conn)

	require.NoError(t, d.SetVersion(7, true))
	v, dirty, err := d.Version()
	require.NoError(t, err)
	require.Equal(t, 7, v)
	require.True(t, dirty)

	require.NoError(t, d.SetVersion(-1, false))
	v, _, err = d.Version()
	require.NoError(t, err)
	require.Equal(t, -1, v)
}

func TestKVStore(t *testing.T) {
	db, _ := openTestDB(t)
	ctx := t.Context()
	var s kvstore.Store = db.KVStore()

	_, found, err := s.Get(ctx, "history")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, s.Set(ctx, "history", "[]"))
	require.NoError(t, s.Set(ctx, "history", `[{"id":"a"}]`))
	v, found, err := s.Get(ctx, "history")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, `[{"id":"a"}]`, v)

	require.NoError(t, s.Delete(ctx, "history"))
	_, found, err = s.Get(ctx, "history")
	require.NoError(t, err)
	require.False(t, found)
}

func TestKVStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mockbanker.db")
	db, err := NewDB(path)
	require.NoError(t, err)
	require.NoError(t, db.KVStore().Set(t.Context(), "theme", "light"))
	require.NoError(t, db.Close())

	db, err = NewDB(path)
	require.NoError(t, err)
	defer db.Close()
	v, found, err := db.KVStore().Get(t.Context(), "theme")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "light", v)
}
