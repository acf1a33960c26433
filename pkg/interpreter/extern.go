package interpreter

import (
	"strconv"

	"github.com/kr/pretty"
	"github.com/pkg/errors"
)

// ExternFunc is a host function reachable through `extern <name>`.
type ExternFunc func(i *Interpreter) error

// Externs maps extern names to host functions.
type Externs map[string]ExternFunc

// DefaultExterns returns the built-in debugging externs:
//
//	prtvfs  dump the table entry whose handle is the top payload
//	prtvfh  dump the table entry for the hash of the top payload in decimal
func DefaultExterns() Externs {
	return Externs{
		"prtvfs": func(i *Interpreter) error {
			top, err := i.stack.Peek()
			if err != nil {
				return err
			}
			return i.dumpEntry(top.Value)
		},
		"prtvfh": func(i *Interpreter) error {
			top, err := i.stack.Peek()
			if err != nil {
				return err
			}
			return i.dumpEntry(Hash(strconv.FormatInt(top.Value, 10)))
		},
	}
}

// dumpEntry pretty prints the table entry at h, or nil when there is none.
func (i *Interpreter) dumpEntry(h int64) error {
	var entry *TableValue
	if v, ok := i.table.Get(h); ok {
		entry = &v
	}

	_, err := pretty.Fprintf(i.out, "%# v\n", entry)
	return errors.WithStack(err)
}
