package jsondoc

import (
	"encoding/json"
	"sort"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// Value is one node of a decoded JSON document. The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	num  float64
	str  string
	arr  []Value
	obj  map[string]Value
}

// Decode parses a JSON document into a Value tree.
func Decode(data []byte) (Value, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Value{}, err
	}
	return fromAny(raw), nil
}

func fromAny(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Value{}
	case bool:
		return Value{kind: Bool, b: v}
	case float64:
		return Value{kind: Number, num: v}
	case string:
		return Value{kind: String, str: v}
	case []any:
		arr := make([]Value, len(v))
		for i, elem := range v {
			arr[i] = fromAny(elem)
		}
		return Value{kind: Array, arr: arr}
	case map[string]any:
		obj := make(map[string]Value, len(v))
		for key, elem := range v {
			obj[key] = fromAny(elem)
		}
		return Value{kind: Object, obj: obj}
	default:
		return Value{}
	}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null variant.
func (v Value) IsNull() bool { return v.kind == Null }

// Bool returns the boolean payload (false for other kinds).
func (v Value) Bool() bool { return v.b }

// Number returns the numeric payload (0 for other kinds).
func (v Value) Number() float64 { return v.num }

// String returns the string payload ("" for other kinds).
func (v Value) String() string { return v.str }

// Array returns the element slice, or nil for non-arrays.
func (v Value) Array() []Value { return v.arr }

// Len returns the element count for arrays, 0 otherwise.
func (v Value) Len() int { return len(v.arr) }

// Field looks up a key in an object value. The second return is false
// when v is not an object or the key is absent.
func (v Value) Field(name string) (Value, bool) {
	if v.kind != Object {
		return Value{}, false
	}
	child, ok := v.obj[name]
	return child, ok
}

// Keys returns the sorted field names of an object value, nil otherwise.
// Sorting keeps discovery over drifting schemas deterministic.
func (v Value) Keys() []string {
	if v.kind != Object {
		return nil
	}
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Index returns the i-th element of an array value. The second return is
// false when v is not an array or i is out of range.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != Array || i < 0 || i >= len(v.arr) {
		return Value{}, false
	}
	return v.arr[i], true
}

// AsFloat coerces a Number or numeric String to a float64. Used for
// fields the analytics export sometimes serializes as strings
// (timePublishedSeconds in particular).
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case Number:
		return v.num, true
	case String:
		f, err := strconv.ParseFloat(v.str, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// AsString renders Number and String values as text. Dimension arrays mix
// both (dateIds are numeric, video ids are strings).
func (v Value) AsString() (string, bool) {
	switch v.kind {
	case String:
		return v.str, true
	case Number:
		return strconv.FormatFloat(v.num, 'f', -1, 64), true
	default:
		return "", false
	}
}
