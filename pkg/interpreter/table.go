package interpreter

import (
	"maps"
	"slices"
)

// store is an int64 keyed map whose capacity can be released on request.
type store[V any] struct {
	m map[int64]V
}

func newStore[V any]() store[V] {
	return store[V]{m: make(map[int64]V)}
}

func (s *store[V]) Get(k int64) (V, bool) {
	v, ok := s.m[k]
	return v, ok
}

func (s *store[V]) Set(k int64, v V) {
	s.m[k] = v
}

// Remove deletes k. Removing a missing key does nothing.
func (s *store[V]) Remove(k int64) {
	delete(s.m, k)
}

// Clear drops every entry, keeping the allocated buckets.
func (s *store[V]) Clear() {
	clear(s.m)
}

// Shrink rebuilds the map sized to its current entries.
func (s *store[V]) Shrink() {
	s.m = maps.Clone(s.m)
}

func (s *store[V]) Len() int {
	return len(s.m)
}

// Keys returns the keys in ascending order.
func (s *store[V]) Keys() []int64 {
	return slices.Sorted(maps.Keys(s.m))
}

// Table is the interning table: handle -> string or float.
type Table struct {
	store[TableValue]
}

func NewTable() *Table {
	return &Table{newStore[TableValue]()}
}

// Intern stores v under the hash of its canonical form and returns the
// handle. An entry already at that handle is overwritten.
func (t *Table) Intern(v TableValue) int64 {
	h := Hash(v.String())
	t.Set(h, v)
	return h
}

// InternString interns a string.
func (t *Table) InternString(s string) int64 {
	return t.Intern(newString(s))
}

// InternFloat interns a float.
func (t *Table) InternFloat(f float32) int64 {
	return t.Intern(newFloat(f))
}

// FloatAt returns the float behind a handle, if there is one.
func (t *Table) FloatAt(h int64) (float32, bool) {
	v, ok := t.Get(h)
	if !ok {
		return 0, false
	}
	return v.AsFloat()
}

// StringAt returns the string behind a handle, if there is one.
func (t *Table) StringAt(h int64) (string, bool) {
	v, ok := t.Get(h)
	if !ok {
		return "", false
	}
	return v.AsString()
}

// Registers is the register file: register id -> cell.
type Registers struct {
	store[Cell]
}

func NewRegisters() *Registers {
	return &Registers{newStore[Cell]()}
}
