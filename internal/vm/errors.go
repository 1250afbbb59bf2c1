package vm

import "github.com/faisaal99/mipssim/internal/simerr"

// lineError re-anchors a line-less simerr.Error (as produced by Stack
// bounds/alignment checks) to the current program counter's line, so every
// error surfaced by Step carries a line number regardless of which layer
// detected the violation.
func lineError(err error, lineNo int, raw string) error {
	se, ok := err.(*simerr.Error)
	if !ok {
		return err
	}
	if se.Line > 0 {
		return se
	}
	return simerr.New(se.Kind, lineNo, raw, se.Message)
}
