package parser

import (
	"stasm/pkg/lexer"

	"github.com/pkg/errors"
)

// Labels maps a label name to the index of its line.
type Labels map[string]int

// Procedure is the extent of a proc block: Start is the index of the
// `proc` line and End the index just past its `end` line.
type Procedure struct {
	Start int
	End   int
}

// Entry is the first instruction of the body.
func (p Procedure) Entry() int {
	return p.Start + 1
}

// Procedures maps a procedure name to its extent.
type Procedures map[string]Procedure

// FindLabels records every `label <name>` line. A later definition of the
// same name replaces an earlier one.
func FindLabels(lines []lexer.Line) Labels {
	labels := make(Labels)

	for i, l := range lines {
		if len(l.Tokens) == 2 && l.Tokens[0] == "label" {
			labels[l.Tokens[1]] = i
		}
	}

	return labels
}

// FindProcedures scans for `proc <name>` lines and the next `end` line
// after each of them. Scanning resumes at that `end`, so a proc nested in
// another body is not recorded.
func FindProcedures(lines []lexer.Line) (Procedures, error) {
	procs := make(Procedures)

	for ip := 0; ip < len(lines); {
		if len(lines[ip].Tokens) != 2 || lines[ip].Tokens[0] != "proc" {
			ip++
			continue
		}

		start := ip
		for ip < len(lines) && !lines[ip].Is("end") {
			ip++
		}

		if ip == len(lines) {
			return nil, &LoadError{
				Pos:  lines[start].Pos,
				Text: lines[start].Text(),
				Err:  errors.Wrapf(ErrMalformedProcedure, "no end for proc %s", lines[start].Tokens[1]),
			}
		}

		procs[lines[start].Tokens[1]] = Procedure{Start: start, End: ip + 1}
	}

	return procs, nil
}
