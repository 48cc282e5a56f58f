package migrations_test

import (
	"context"
	"database/sql"
	"testing"
	"testing/fstest"

	"github.com/msomdec/taskboard/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// :memory: databases are per connection.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunMigrations(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()

	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("first migration run: %v", err)
	}

	_, err := db.ExecContext(ctx,
		"INSERT INTO users (email, name, password_hash) VALUES (?, ?, ?)",
		"test@example.com", "Test User", "hash123",
	)
	if err != nil {
		t.Fatalf("insert into users: %v", err)
	}

	_, err = db.ExecContext(ctx,
		"INSERT INTO tasks (id, owner_email, text) VALUES (?, ?, ?)",
		"t-1", "nobody@example.com", "orphan tasks are allowed",
	)
	if err != nil {
		t.Fatalf("insert into tasks: %v", err)
	}
}

func TestRunMigrationsIdempotent(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()

	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("second run (idempotent): %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("count schema_migrations: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 migration records, got %d", count)
	}
}

func TestRunFS_OrderAndRollback(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()

	fsys := fstest.MapFS{
		"002_add.sql":  {Data: []byte("INSERT INTO things (name) VALUES ('b');")},
		"001_init.sql": {Data: []byte("CREATE TABLE things (name TEXT NOT NULL);")},
		"README.md":    {Data: []byte("ignored")},
		"003_bad.sql":  {Data: []byte("INSERT INTO missing_table VALUES (1);")},
	}

	if err := migrations.RunFS(ctx, db, fsys); err == nil {
		t.Fatal("expected error from broken migration")
	}

	var things int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM things").Scan(&things); err != nil {
		t.Fatalf("count things: %v", err)
	}
	if things != 1 {
		t.Fatalf("expected 1 row from 002_add.sql, got %d", things)
	}

	var recorded int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&recorded); err != nil {
		t.Fatalf("count schema_migrations: %v", err)
	}
	if recorded != 2 {
		t.Fatalf("expected 2 recorded migrations, got %d", recorded)
	}
}

func TestRunFS_AppliesOnlyNewFiles(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()

	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE things (name TEXT NOT NULL);")},
	}
	if err := migrations.RunFS(ctx, db, fsys); err != nil {
		t.Fatalf("first run: %v", err)
	}

	// Re-running 001 would fail because the table exists.
	fsys["002_seed.sql"] = &fstest.MapFile{Data: []byte("INSERT INTO things (name) VALUES ('a');")}
	if err := migrations.RunFS(ctx, db, fsys); err != nil {
		t.Fatalf("second run: %v", err)
	}

	var names []string
	rows, err := db.QueryContext(ctx, "SELECT filename FROM schema_migrations ORDER BY filename")
	if err != nil {
		t.Fatalf("query schema_migrations: %v", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("scan: %v", err)
		}
		names = append(names, name)
	}
	if len(names) != 2 || names[0] != "001_init.sql" || names[1] != "002_seed.sql" {
		t.Fatalf("unexpected recorded migrations: %v", names)
	}
}
