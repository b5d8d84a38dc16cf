package validation

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Op is the kind of a diff segment.
type Op int

const (
	OpEqual Op = iota
	OpDelete
	OpInsert
)

// Segment is a run of characters that is kept, removed or added.
type Segment struct {
	Op   Op
	Text string
}

// Diff returns the character-level edits turning from into to.
func Diff(from, to string) []Segment {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(from, to, false))

	out := make([]Segment, 0, len(diffs))
	for _, d := range diffs {
		var op Op
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			op = OpDelete
		case diffmatchpatch.DiffInsert:
			op = OpInsert
		default:
			op = OpEqual
		}
		out = append(out, Segment{Op: op, Text: d.Text})
	}
	return out
}
