// Package snapshot reads the daily per-video stats snapshot: a local
// SQLite file carrying the VideoDimension and VideoBasicStats tables the
// warehouse export job produces. The snapshot is a plain input file;
// this package never writes to it.
package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/cgileta/ytmetrics/pkg/ytmetrics/table"
)

// DB wraps a read-only snapshot connection.
type DB struct {
	db *sql.DB
}

// Open opens an existing snapshot file. A missing file is an error; the
// driver would otherwise create an empty database in its place.
func Open(ctx context.Context, path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA query_only=ON"); err != nil {
		db.Close()
		return nil, err
	}
	return &DB{db: db}, nil
}

// Close closes the snapshot connection.
func (s *DB) Close() error {
	return s.db.Close()
}

// statsColumns is the output schema of VideoStats, in query order.
var statsColumns = []string{
	"ytVideoID", "ytChannelID", "ytVideoTitle",
	"ytVideoPublishedDate", "ytVideoPublishedTime",
	"Date", "views", "estimatedMinutesWatched",
	"comments", "likes", "dislikes", "shares",
	"subscribersGained", "subscribersLost",
}

// VideoStats joins the dimension and daily-stats tables, keeping videos
// published on or after publishedAfter (YYYY-MM-DD).
func (s *DB) VideoStats(ctx context.Context, publishedAfter string) (*table.Table, error) {
	const query = `
SELECT
	vd.ID AS ytVideoID,
	vd.ytChannelID,
	vd.ytVideoTitle,
	vd.ytVideoPublishedDate,
	vd.ytVideoPublishedTime,
	vbs.Date,
	vbs.views,
	vbs.estimatedMinutesWatched,
	vbs.comments,
	vbs.likes,
	vbs.dislikes,
	vbs.shares,
	vbs.subscribersGained,
	vbs.subscribersLost
FROM VideoDimension vd
JOIN VideoBasicStats vbs ON vd.ID = vbs.ytVideoID
WHERE vd.ytVideoPublishedDate >= ?`

	rows, err := s.db.QueryContext(ctx, query, publishedAfter)
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	defer rows.Close()

	t := table.New(statsColumns...)
	for rows.Next() {
		var (
			id, channel, title, pubDate, pubTime sql.NullString
			date                                 sql.NullString
			counts                               [8]sql.NullInt64
		)
		if err := rows.Scan(
			&id, &channel, &title, &pubDate, &pubTime, &date,
			&counts[0], &counts[1], &counts[2], &counts[3],
			&counts[4], &counts[5], &counts[6], &counts[7],
		); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		row := table.Row{
			"ytVideoID":            nullString(id),
			"ytChannelID":          nullString(channel),
			"ytVideoTitle":         nullString(title),
			"ytVideoPublishedDate": nullString(pubDate),
			"ytVideoPublishedTime": nullString(pubTime),
			"Date":                 nullString(date),
		}
		for i, col := range statsColumns[6:] {
			row[col] = nullInt(counts[i])
		}
		t.Append(row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read snapshot rows: %w", err)
	}
	return t, nil
}

func nullString(v sql.NullString) table.Value {
	if !v.Valid {
		return nil
	}
	return v.String
}

func nullInt(v sql.NullInt64) table.Value {
	if !v.Valid {
		return nil
	}
	return v.Int64
}
