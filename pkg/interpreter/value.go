package interpreter

import (
	"hash/fnv"
	"math"
	"strconv"
)

// Cell is one operand stack slot. When Hashed is false, Value is the integer
// itself. When it is set, Value is a handle into the interning table.
type Cell struct {
	Value  int64
	Hashed bool
}

// IntCell creates a plain integer cell.
func IntCell(v int64) Cell {
	return Cell{Value: v}
}

// HandleCell creates a cell referring to an interned value.
func HandleCell(h int64) Cell {
	return Cell{Value: h, Hashed: true}
}

type ValueKind int

const (
	KindString ValueKind = iota
	KindFloat
)

// TableValue is an interned string or float.
type TableValue struct {
	Kind  ValueKind
	Str   string
	Float float32
}

func newString(s string) TableValue {
	return TableValue{Kind: KindString, Str: s}
}

func newFloat(f float32) TableValue {
	return TableValue{Kind: KindFloat, Float: f}
}

// AsString returns the string payload.
func (v TableValue) AsString() (string, bool) {
	return v.Str, v.Kind == KindString
}

// AsFloat returns the float payload.
func (v TableValue) AsFloat() (float32, bool) {
	return v.Float, v.Kind == KindFloat
}

// String renders the value in its canonical form, the text that is hashed.
func (v TableValue) String() string {
	if v.Kind == KindFloat {
		return FormatFloat(v.Float)
	}
	return v.Str
}

// FormatFloat renders f as the shortest decimal that reads back as the same
// float32, never in exponent form.
func FormatFloat(f float32) string {
	switch {
	case math.IsNaN(float64(f)):
		return "NaN"
	case math.IsInf(float64(f), 1):
		return "inf"
	case math.IsInf(float64(f), -1):
		return "-inf"
	}
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}

// Hash is the 32-bit FNV-1a hash of s, sign extended.
func Hash(s string) int64 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return int64(int32(h.Sum32()))
}
