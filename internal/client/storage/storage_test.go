package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestOpenSQLite_CreatesFileAndSchema(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.db")

	db, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	require.True(t, tableExists(t, db, "metadata"))
	require.FileExists(t, path)
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()

	db, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))
	require.True(t, tableExists(t, db, "metadata"))
}

func TestOpen_SQLiteBackendRoundTrip(t *testing.T) {
	ctx := context.Background()

	repo, closer, err := Open(ctx, Config{Backend: BackendSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	defer closer.Close()

	require.NoError(t, repo.SetMany(ctx, map[string][]byte{"token": []byte("t")}))
	v, err := repo.Get(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, []byte("t"), v)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, _, err := Open(context.Background(), Config{Backend: "etcd"})
	require.ErrorContains(t, err, "unknown store backend")
}

func TestOpen_RedisUnreachable(t *testing.T) {
	_, _, err := Open(context.Background(), Config{
		Backend:     BackendRedis,
		RedisAddr:   "127.0.0.1:1",
		PingTimeout: 300 * time.Millisecond,
	})
	require.ErrorContains(t, err, "redis ping")
}
