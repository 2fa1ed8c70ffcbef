// Package msclip trims measurement-set auxiliary tables down to the time
// ranges actually present in the main table.
//
// VLASS measurement sets ship POINTING and SYSPOWER tables covering the whole
// observing run, while the visibilities themselves cover a handful of short
// field scans. Clipping the auxiliary rows to the per-chunk time spans of the
// main table usually removes the large majority of them. Times are MJD
// seconds throughout, matching the measurement-set convention.
package msclip

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
)

// Interval is an inclusive time span [Min, Max] in MJD seconds.
type Interval struct {
	Min float64
	Max float64
}

// Contains reports whether t lies within the interval, inclusive on both ends.
func (iv Interval) Contains(t float64) bool {
	return t >= iv.Min && t <= iv.Max
}

// Intervals computes one inclusive [min, max] time span per distinct chunk ID.
// chunkIDs and times must be parallel slices (one entry per main-table row).
// Output is ordered by chunk ID.
func Intervals(chunkIDs []int64, times []float64) ([]Interval, error) {
	if len(chunkIDs) != len(times) {
		return nil, fmt.Errorf("chunk ids and times length mismatch: %d vs %d", len(chunkIDs), len(times))
	}
	byChunk := make(map[int64]Interval, 16)
	for i, id := range chunkIDs {
		t := times[i]
		iv, ok := byChunk[id]
		if !ok {
			byChunk[id] = Interval{Min: t, Max: t}
			continue
		}
		if t < iv.Min {
			iv.Min = t
		}
		if t > iv.Max {
			iv.Max = t
		}
		byChunk[id] = iv
	}

	ids := make([]int64, 0, len(byChunk))
	for id := range byChunk {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]Interval, 0, len(ids))
	for _, id := range ids {
		out = append(out, byChunk[id])
	}
	return out, nil
}

// Keep returns the indices of times that fall inside at least one interval,
// in input order.
func Keep(times []float64, intervals []Interval) []int {
	keep := make([]int, 0, len(times))
	for i, t := range times {
		for _, iv := range intervals {
			if iv.Contains(t) {
				keep = append(keep, i)
				break
			}
		}
	}
	return keep
}

// Result reports the outcome of clipping one auxiliary table.
type Result struct {
	Table string
	Total int64 // rows before clipping
	Kept  int64 // rows remaining
}

// Clipper clips auxiliary tables of a measurement set stored in SQLite.
// Table and column names come from the caller and are interpolated into SQL,
// so they must be trusted (they identify fixed measurement-set tables, not
// user input).
type Clipper struct {
	DB *sql.DB
	// MainTable is the table holding the visibility rows, with a TIME column
	// and the chunk column.
	MainTable string
	// ChunkCol groups main-table rows into time chunks. FIELD_ID for VLASS,
	// SCAN_NUMBER for a typical measurement set.
	ChunkCol string
}

// ErrNoRows is returned when the main table holds no rows to derive spans from.
var ErrNoRows = errors.New("main table has no rows")

// MainIntervals reads the chunk column and TIME from the main table and
// returns the per-chunk time spans.
func (c *Clipper) MainIntervals(ctx context.Context) ([]Interval, error) {
	q := fmt.Sprintf(`SELECT %s, TIME FROM %s`, c.ChunkCol, c.MainTable)
	rows, err := c.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("read main table: %w", err)
	}
	defer rows.Close()

	var (
		ids   []int64
		times []float64
	)
	for rows.Next() {
		var id int64
		var t float64
		if err := rows.Scan(&id, &t); err != nil {
			return nil, err
		}
		ids = append(ids, id)
		times = append(times, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ErrNoRows
	}
	return Intervals(ids, times)
}

// ClipTables removes rows from each named auxiliary table whose TIME falls
// outside every main-table chunk span. Each table is clipped in its own
// transaction; an empty table is left alone and reported with Total == 0.
func (c *Clipper) ClipTables(ctx context.Context, tables []string) ([]Result, error) {
	intervals, err := c.MainIntervals(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(tables))
	for _, table := range tables {
		res, err := c.clipTable(ctx, table, intervals)
		if err != nil {
			return results, fmt.Errorf("clip %s: %w", table, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (c *Clipper) clipTable(ctx context.Context, table string, intervals []Interval) (Result, error) {
	res := Result{Table: table}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return res, err
	}
	defer tx.Rollback() // no-op after commit

	if err := tx.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).Scan(&res.Total); err != nil {
		return res, err
	}
	if res.Total == 0 {
		return res, tx.Commit()
	}

	// One DELETE per span would also work, but building the predicate once
	// keeps a single pass over the table.
	pred := ""
	args := make([]any, 0, len(intervals)*2)
	for i, iv := range intervals {
		if i > 0 {
			pred += " OR "
		}
		pred += "(TIME >= ? AND TIME <= ?)"
		args = append(args, iv.Min, iv.Max)
	}
	del, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE NOT (%s)`, table, pred), args...)
	if err != nil {
		return res, err
	}
	deleted, err := del.RowsAffected()
	if err != nil {
		return res, err
	}
	res.Kept = res.Total - deleted
	return res, tx.Commit()
}
