package interpreter_test

import (
	"math"
	"testing"

	"stasm/pkg/interpreter"
)

func TestHash(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"", -2128831035}, // 0x811c9dc5
		{"a", -468965076}, // 0xe40c292c
	}

	for _, test := range tests {
		if got := interpreter.Hash(test.in); got != test.want {
			t.Errorf("Hash(%q): expected %d, got %d", test.in, test.want, got)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float32
		want string
	}{
		{3, "3"},
		{1.5, "1.5"},
		{0.1, "0.1"},
		{-2.25, "-2.25"},
		{1e20, "100000000000000000000"},
		{float32(math.Inf(1)), "inf"},
		{float32(math.Inf(-1)), "-inf"},
		{float32(math.NaN()), "NaN"},
	}

	for _, test := range tests {
		if got := interpreter.FormatFloat(test.in); got != test.want {
			t.Errorf("FormatFloat(%v): expected %q, got %q", test.in, test.want, got)
		}
	}
}

func TestTable(t *testing.T) {
	table := interpreter.NewTable()

	hs := table.InternString("abc")
	if hs != interpreter.Hash("abc") {
		t.Errorf("expected handle to be the hash of the text")
	}
	hf := table.InternFloat(0.5)
	if hf != interpreter.Hash("0.5") {
		t.Errorf("expected handle to be the hash of the canonical float")
	}

	if s, ok := table.StringAt(hs); !ok || s != "abc" {
		t.Errorf("expected abc, got %q (%v)", s, ok)
	}
	if _, ok := table.FloatAt(hs); ok {
		t.Errorf("expected string entry not to read as float")
	}
	if f, ok := table.FloatAt(hf); !ok || f != 0.5 {
		t.Errorf("expected 0.5, got %v (%v)", f, ok)
	}

	table.Remove(hs)
	table.Remove(12345)
	if table.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", table.Len())
	}

	table.Shrink()
	if f, _ := table.FloatAt(hf); f != 0.5 {
		t.Errorf("expected entries to survive shrink")
	}

	table.Clear()
	if table.Len() != 0 {
		t.Errorf("expected empty table, got %d", table.Len())
	}
}

func TestRegisterKeys(t *testing.T) {
	regs := interpreter.NewRegisters()
	for _, id := range []int64{5, -2, 0} {
		regs.Set(id, interpreter.IntCell(id*10))
	}

	keys := regs.Keys()
	want := []int64{-2, 0, 5}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, keys)
		}
	}

	if c, ok := regs.Get(-2); !ok || c != interpreter.IntCell(-20) {
		t.Errorf("expected -20, got %+v", c)
	}
}
