package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"climate-api/internal/config"
)

func seedFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hawaii.sqlite")
	w, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open writable: %v", err)
	}
	defer func() { _ = w.Close() }()
	if _, err := w.Exec(`CREATE TABLE station (id INTEGER PRIMARY KEY, station TEXT)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := w.Exec(`INSERT INTO station (station) VALUES ('USC00519281')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	return path
}

func Test_buildDSN(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		want    string
		wantErr bool
	}{
		{
			name: "explicit dsn wins",
			cfg:  config.Config{Driver: "sqlite3", DSN: "file:x.db?cache=shared", Path: "ignored.db"},
			want: "file:x.db?cache=shared",
		},
		{
			name: "mattn plain path",
			cfg:  config.Config{Driver: "sqlite3", Path: "Resources/hawaii.sqlite"},
			want: "file:Resources/hawaii.sqlite?mode=ro&_busy_timeout=5000",
		},
		{
			name: "modernc plain path",
			cfg:  config.Config{Driver: "sqlite", Path: "/data/h.sqlite"},
			want: "file:/data/h.sqlite?mode=ro&_pragma=busy_timeout(5000)",
		},
		{
			name: "file uri with query",
			cfg:  config.Config{Driver: "sqlite3", Path: "file:/data/h.sqlite?cache=private"},
			want: "file:/data/h.sqlite?cache=private&mode=ro&_busy_timeout=5000",
		},
		{
			name: "file uri without query",
			cfg:  config.Config{Driver: "sqlite3", Path: "file:/data/h.sqlite"},
			want: "file:/data/h.sqlite?mode=ro&_busy_timeout=5000",
		},
		{
			name:    "empty path",
			cfg:     config.Config{Driver: "sqlite3"},
			wantErr: true,
		},
		{
			name:    "unknown driver",
			cfg:     config.Config{Driver: "postgres", Path: "x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildDSN(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("buildDSN() err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("buildDSN() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestOpen_ReadOnlyPool(t *testing.T) {
	for _, driverName := range []string{"sqlite3", "sqlite"} {
		t.Run(driverName, func(t *testing.T) {
			path := seedFile(t)
			cfg := config.Config{Driver: driverName, Path: path, MaxOpenConns: 2, MaxIdleConns: 2}

			conn, err := Open(context.Background(), cfg)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer func() { _ = Close(conn) }()

			var id string
			if err := conn.QueryRow(`SELECT station FROM station`).Scan(&id); err != nil {
				t.Fatalf("select: %v", err)
			}
			if id != "USC00519281" {
				t.Errorf("station = %q; want USC00519281", id)
			}

			if _, err := conn.Exec(`INSERT INTO station (station) VALUES ('X')`); err == nil {
				t.Fatal("insert on read-only pool succeeded; want error")
			}
		})
	}
}

func TestOpen_WithSQLLogging(t *testing.T) {
	path := seedFile(t)
	cfg := config.Config{Driver: "sqlite3", Path: path, LogSQL: true}

	conn, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = Close(conn) }()

	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM station`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d; want 1", n)
	}
}

func TestOpen_MissingFileFails(t *testing.T) {
	cfg := config.Config{Driver: "sqlite3", Path: filepath.Join(t.TempDir(), "missing.sqlite")}

	conn, err := Open(context.Background(), cfg)
	if err == nil {
		_ = Close(conn)
		t.Fatal("Open on missing file succeeded; want error")
	}
}

func TestClose_Nil(t *testing.T) {
	if err := Close(nil); err != nil {
		t.Errorf("Close(nil) = %v; want nil", err)
	}
}
