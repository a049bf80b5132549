package snapshot

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func writeSnapshot(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stats.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE VideoDimension (
			ID TEXT PRIMARY KEY,
			ytChannelID TEXT,
			ytVideoTitle TEXT,
			ytVideoPublishedDate TEXT,
			ytVideoPublishedTime TEXT
		)`,
		`CREATE TABLE VideoBasicStats (
			ytVideoID TEXT,
			Date TEXT,
			views INTEGER,
			estimatedMinutesWatched INTEGER,
			comments INTEGER,
			likes INTEGER,
			dislikes INTEGER,
			shares INTEGER,
			subscribersGained INTEGER,
			subscribersLost INTEGER
		)`,
		`INSERT INTO VideoDimension VALUES
			('v1', 'c1', 'Old Video', '2023-06-01', '10:00:00'),
			('v2', 'c1', 'New Video', '2024-01-05', '11:00:00')`,
		`INSERT INTO VideoBasicStats VALUES
			('v1', '2024-01-10', 100, 200, 1, 2, 0, 3, 4, 1),
			('v2', '2024-01-10', 50, 80, 2, 5, 1, 1, 2, 0),
			('v2', '2024-01-11', 60, 90, NULL, 6, 0, 2, 1, 0)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	return path
}

func TestVideoStatsFilterAndScan(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, writeSnapshot(t))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	tbl, err := db.VideoStats(ctx, "2024-01-01")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("expected 2 rows for v2 only, got %d", tbl.Len())
	}
	row := tbl.Row(0)
	if row["ytVideoID"] != "v2" || row["views"] != int64(50) {
		t.Errorf("row 0 = %v", row)
	}
	// NULL count scans to a null cell.
	var found bool
	for _, r := range tbl.Rows() {
		if r["Date"] == "2024-01-11" {
			found = true
			if r["comments"] != nil {
				t.Errorf("NULL comments should be null, got %v", r["comments"])
			}
		}
	}
	if !found {
		t.Error("missing 2024-01-11 row")
	}
}

func TestOpenMissingSnapshot(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "absent.db"))
	if err == nil {
		t.Fatal("expected error for missing snapshot file")
	}
}
