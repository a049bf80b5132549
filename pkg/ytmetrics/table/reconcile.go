package table

import (
	"fmt"
	"strings"

	"github.com/cgileta/ytmetrics/pkg/ytmetrics/internalerr"
)

// Concat appends src's rows to dst, extending dst's schema with src's
// unseen columns in src order. Used by the concatenate-and-tag policy
// after each batch has been tagged via SetConstant.
func Concat(dst, src *Table) {
	for _, c := range src.cols {
		dst.AddColumn(c)
	}
	dst.rows = append(dst.rows, src.rows...)
}

// MergeFill combines other into base with outer-join-with-fill semantics
// on the given key columns: rows sharing a key tuple are merged by
// filling only base's null cells from other, never overwriting a present
// value; rows whose key tuple is new are appended. base is modified in
// place and returned.
//
// Every key column must exist in both operands, otherwise
// internalerr.ErrNoKeyColumns is returned and base is left untouched —
// the caller skips this merge step and keeps going.
func MergeFill(base, other *Table, keys []string) (*Table, error) {
	for _, k := range keys {
		if !base.HasColumn(k) || !other.HasColumn(k) {
			return base, fmt.Errorf("column %q: %w", k, internalerr.ErrNoKeyColumns)
		}
	}

	index := make(map[string]Row, base.Len())
	for _, row := range base.rows {
		index[keyTuple(row, keys)] = row
	}

	for _, c := range other.cols {
		base.AddColumn(c)
	}

	for _, row := range other.rows {
		existing, ok := index[keyTuple(row, keys)]
		if !ok {
			base.rows = append(base.rows, row)
			index[keyTuple(row, keys)] = row
			continue
		}
		for col, v := range row {
			if v == nil {
				continue
			}
			if existing[col] == nil {
				existing[col] = v
			}
		}
	}
	return base, nil
}

// keyTuple renders the key cells into a single comparable string. The
// unit separator keeps composite keys unambiguous.
func keyTuple(row Row, keys []string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = Format(row[k])
	}
	return strings.Join(parts, "\x1f")
}

// Dedupe drops rows that are identical across every column, keeping the
// first occurrence. Runs once, at the end of reconciliation.
func (t *Table) Dedupe() {
	seen := make(map[string]struct{}, len(t.rows))
	kept := t.rows[:0]
	for _, row := range t.rows {
		sig := keyTuple(row, t.cols)
		if _, dup := seen[sig]; dup {
			continue
		}
		seen[sig] = struct{}{}
		kept = append(kept, row)
	}
	t.rows = kept
}

// FillNull replaces every null cell in the listed columns with v. With no
// columns given, all non-excluded columns are filled.
func (t *Table) FillNull(v Value, cols ...string) {
	if len(cols) == 0 {
		cols = t.cols
	}
	for _, row := range t.rows {
		for _, c := range cols {
			if row[c] == nil {
				row[c] = v
			}
		}
	}
}
