package jsondoc

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a Path: a field lookup, optionally followed by
// an index into the looked-up array.
type Segment struct {
	Field    string
	Index    int
	HasIndex bool
}

// Path addresses one value inside a nested document.
type Path []Segment

// ParsePath parses dotted path syntax, e.g.
// "results[0].value.getCards.cards[0].scatterplotData".
func ParsePath(expr string) (Path, error) {
	if expr == "" {
		return nil, fmt.Errorf("empty path")
	}
	parts := strings.Split(expr, ".")
	path := make(Path, 0, len(parts))
	for _, part := range parts {
		seg, err := parseSegment(part)
		if err != nil {
			return nil, fmt.Errorf("path %q: %w", expr, err)
		}
		path = append(path, seg)
	}
	return path, nil
}

// MustPath is ParsePath for compiled-in templates.
func MustPath(expr string) Path {
	path, err := ParsePath(expr)
	if err != nil {
		panic(err)
	}
	return path
}

func parseSegment(part string) (Segment, error) {
	open := strings.IndexByte(part, '[')
	if open < 0 {
		if part == "" {
			return Segment{}, fmt.Errorf("empty segment")
		}
		return Segment{Field: part}, nil
	}
	if part[len(part)-1] != ']' || open == 0 {
		return Segment{}, fmt.Errorf("malformed segment %q", part)
	}
	idx, err := strconv.Atoi(part[open+1 : len(part)-1])
	if err != nil || idx < 0 {
		return Segment{}, fmt.Errorf("bad index in segment %q", part)
	}
	return Segment{Field: part[:open], Index: idx, HasIndex: true}, nil
}

// String renders the path back in dotted syntax.
func (p Path) String() string {
	var sb strings.Builder
	for i, seg := range p {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(seg.Field)
		if seg.HasIndex {
			fmt.Fprintf(&sb, "[%d]", seg.Index)
		}
	}
	return sb.String()
}

// Append returns a new Path with extra segments parsed from expr.
func (p Path) Append(expr string) (Path, error) {
	tail, err := ParsePath(expr)
	if err != nil {
		return nil, err
	}
	out := make(Path, 0, len(p)+len(tail))
	out = append(out, p...)
	out = append(out, tail...)
	return out, nil
}

// Resolve walks path through doc. Any structural mismatch along the way
// (non-object lookup, absent field, non-array index, index out of range)
// reports not-found; it never panics. Schema drift in the upstream export
// makes not-found routine, so callers treat it as "absent in this
// document version".
func Resolve(doc Value, path Path) (Value, bool) {
	current := doc
	for _, seg := range path {
		child, ok := current.Field(seg.Field)
		if !ok {
			return Value{}, false
		}
		if seg.HasIndex {
			child, ok = child.Index(seg.Index)
			if !ok {
				return Value{}, false
			}
		}
		current = child
	}
	return current, true
}
