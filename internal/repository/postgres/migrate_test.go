package postgres

import (
	"database/sql"
	"testing"

	"github.com/pratik-mahalle/threatwatch/migrations"
)

func TestRunMigrations_Idempotent(t *testing.T) {
	db, err := sql.Open(DriverSQLite, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	schema, err := migrations.GetFS(DriverSQLite)
	if err != nil {
		t.Fatal(err)
	}

	n, err := RunMigrations(db, DriverSQLite, schema)
	if err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}
	if n != 2 {
		t.Errorf("RunMigrations() applied %d, want 2", n)
	}

	n, err = RunMigrations(db, DriverSQLite, schema)
	if err != nil {
		t.Fatalf("second RunMigrations() error = %v", err)
	}
	if n != 0 {
		t.Errorf("second RunMigrations() applied %d, want 0", n)
	}
}

func TestRebind(t *testing.T) {
	tests := []struct {
		driver string
		in     string
		want   string
	}{
		{DriverSQLite, "SELECT * FROM alerts WHERE id = ? AND user_id = ?", "SELECT * FROM alerts WHERE id = ? AND user_id = ?"},
		{DriverPostgres, "SELECT * FROM alerts WHERE id = ? AND user_id = ?", "SELECT * FROM alerts WHERE id = $1 AND user_id = $2"},
		{DriverPostgres, "SELECT 1", "SELECT 1"},
	}

	for _, tt := range tests {
		if got := rebind(tt.driver, tt.in); got != tt.want {
			t.Errorf("rebind(%s) = %q, want %q", tt.driver, got, tt.want)
		}
	}
}

func TestDBTime_Scan(t *testing.T) {
	var ts dbTime
	if err := ts.Scan("2024-03-01T09:01:00.000000Z"); err != nil || !ts.Valid {
		t.Fatalf("Scan(text) = %v valid=%v", err, ts.Valid)
	}
	if ts.Time.Minute() != 1 {
		t.Errorf("Scan(text) minute = %d", ts.Time.Minute())
	}
	if err := ts.Scan(nil); err != nil || ts.Valid {
		t.Errorf("Scan(nil) = %v valid=%v", err, ts.Valid)
	}
	if err := ts.Scan(42); err == nil {
		t.Error("Scan(int) succeeded")
	}
}
