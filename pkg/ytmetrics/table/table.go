package table

import (
	"sort"
	"strconv"
	"strings"
)

// Value is one cell of a Table. nil is the null cell; non-null cells hold
// int64, float64, or string.
type Value any

// Float coerces a numeric cell to float64.
func Float(v Value) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// Format renders a cell the way it is written to CSV. Null cells render
// as the empty string.
func Format(v Value) string {
	switch c := v.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(c, 10)
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case string:
		return c
	default:
		return ""
	}
}

// Row maps column name to cell value. Absent entries read as null.
type Row map[string]Value

// Table is an ordered set of named columns over a sequence of rows. It is
// the unit of composition between pipeline stages; rows change only
// through the defined merge and derive operations.
type Table struct {
	cols []string
	rows []Row
}

// New creates an empty table with the given column order.
func New(cols ...string) *Table {
	t := &Table{}
	for _, c := range cols {
		t.AddColumn(c)
	}
	return t
}

// Columns returns the column order. Callers must not mutate it.
func (t *Table) Columns() []string { return t.cols }

// HasColumn reports whether name is part of the schema.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.cols {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends name to the schema if not already present.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.cols = append(t.cols, name)
	}
}

// Len returns the row count.
func (t *Table) Len() int { return len(t.rows) }

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool { return len(t.rows) == 0 }

// Rows returns the backing row slice.
func (t *Table) Rows() []Row { return t.rows }

// Row returns row i.
func (t *Table) Row(i int) Row { return t.rows[i] }

// Append adds a row, extending the schema with any unseen columns in
// first-seen order.
func (t *Table) Append(r Row) {
	// Deterministic schema growth: sort unseen keys before adding.
	var unseen []string
	for k := range r {
		if !t.HasColumn(k) {
			unseen = append(unseen, k)
		}
	}
	sort.Strings(unseen)
	for _, k := range unseen {
		t.AddColumn(k)
	}
	t.rows = append(t.rows, r)
}

// SetConstant adds (or overwrites) a column holding the same value in
// every row. Used to tag each batch with its source archive.
func (t *Table) SetConstant(name string, v Value) {
	t.AddColumn(name)
	for _, r := range t.rows {
		r[name] = v
	}
}

// Reorder rearranges the schema to the given order, keeping only the
// listed columns that exist. Columns absent from the table are ignored.
func (t *Table) Reorder(order []string) {
	var cols []string
	for _, c := range order {
		if t.HasColumn(c) {
			cols = append(cols, c)
		}
	}
	t.cols = cols
}

// SortBy stably sorts rows by the given columns, ascending. Null cells
// order before numbers, numbers before strings; numbers compare
// numerically and strings lexically.
func (t *Table) SortBy(cols ...string) {
	sort.SliceStable(t.rows, func(i, j int) bool {
		for _, c := range cols {
			if cmp := compareValues(t.rows[i][c], t.rows[j][c]); cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})
}

func compareValues(a, b Value) int {
	ra, rb := valueRank(a), valueRank(b)
	if ra != rb {
		return ra - rb
	}
	switch ra {
	case 0: // both null
		return 0
	case 1: // both numeric
		fa, _ := Float(a)
		fb, _ := Float(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	default:
		return strings.Compare(a.(string), b.(string))
	}
}

func valueRank(v Value) int {
	switch v.(type) {
	case nil:
		return 0
	case int64, float64:
		return 1
	default:
		return 2
	}
}
