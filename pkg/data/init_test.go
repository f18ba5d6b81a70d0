package data

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitDuckDB(t *testing.T) {
	tests := []struct {
		name string
		path func(dir string) string
	}{
		{"flat", func(dir string) string { return filepath.Join(dir, "state.db") }},
		{"nested directories", func(dir string) string { return filepath.Join(dir, "a", "b", "state.db") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path(t.TempDir())
			db, err := InitDuckDB(path)
			if err != nil {
				t.Fatalf("InitDuckDB(%s) error: %v", path, err)
			}
			defer db.Close()

			if _, err := os.Stat(path); err != nil {
				t.Errorf("Expected database file at %s: %v", path, err)
			}

			var columns []string
			rows, err := db.Query(`SELECT column_name FROM information_schema.columns
				WHERE table_name = 'snapshots' ORDER BY ordinal_position`)
			if err != nil {
				t.Fatalf("Failed to query columns: %v", err)
			}
			defer rows.Close()
			for rows.Next() {
				var c string
				if err := rows.Scan(&c); err != nil {
					t.Fatalf("Scan: %v", err)
				}
				columns = append(columns, c)
			}

			want := []string{"host", "kind", "payload", "saved_at"}
			if len(columns) != len(want) {
				t.Fatalf("Expected columns %v, got %v", want, columns)
			}
			for i := range want {
				if columns[i] != want[i] {
					t.Errorf("Expected column %d to be %s, got %s", i, want[i], columns[i])
				}
			}
		})
	}
}

func TestInitDuckDB_ReopenKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	db, err := InitDuckDB(path)
	if err != nil {
		t.Fatalf("First init: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO snapshots VALUES ('category/film', 'category', '{}', now())`); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	db.Close()

	db, err = InitDuckDB(path)
	if err != nil {
		t.Fatalf("Second init should reuse the schema: %v", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&n); err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 row after reopening, got %d", n)
	}
}
