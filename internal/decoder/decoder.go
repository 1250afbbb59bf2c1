package decoder

import (
	"strings"

	"github.com/faisaal99/mipssim/internal/lexer"
	"github.com/faisaal99/mipssim/internal/loader"
	"github.com/faisaal99/mipssim/internal/simerr"
)

// Decode re-reads nothing itself: callers pass the already comment-stripped,
// leading-whitespace-trimmed line at the current program counter. lineNo is
// 1-based, for error reporting; raw is the original line text for the error
// context. textLabels and data resolve symbolic operands.
func Decode(line string, lineNo int, raw string, textLabels map[string]int, data *loader.DataMemory) (Instruction, error) {
	if strings.ContainsRune(line, ':') {
		return Instruction{LabelLine: true}, nil
	}

	mnemonic, rest := splitMnemonic(line)
	op, ok := LookupOpcode(mnemonic)
	if !ok {
		return Instruction{}, simerr.New(simerr.KindSyntax, lineNo, raw, "Unknown operation")
	}
	rest = lexer.TrimLeading(rest)

	switch FormatOf(op) {
	case FormatR:
		return decodeR(op, rest, lineNo, raw)
	case FormatI:
		return decodeI(op, rest, lineNo, raw)
	case FormatMem:
		return decodeMem(op, rest, lineNo, raw, data)
	case FormatBranch:
		return decodeBranch(op, rest, lineNo, raw, textLabels)
	case FormatJump:
		return decodeJump(op, rest, lineNo, raw, textLabels)
	case FormatHalt:
		return decodeHalt(rest, lineNo, raw)
	default:
		return Instruction{}, simerr.New(simerr.KindSyntax, lineNo, raw, "Unknown operation")
	}
}

// splitMnemonic extracts the maximal prefix of length <= 4 up to the
// first whitespace character.
func splitMnemonic(line string) (mnemonic, rest string) {
	i := 0
	for i < len(line) && i < 4 && !isSpace(line[i]) {
		i++
	}
	return line[:i], line[i:]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

// parseRegister consumes a "$name" reference from the front of s,
// returning the register index and the remainder of the buffer.
func parseRegister(s string, lineNo int, raw string) (index int, rest string, err error) {
	if len(s) == 0 || s[0] != '$' {
		return 0, s, simerr.New(simerr.KindSyntax, lineNo, raw, "expected '$' register reference")
	}
	body := s[1:]
	if len(body) >= 4 && body[:4] == "zero" {
		return RegZero, body[4:], nil
	}
	if len(body) < 2 {
		return 0, s, simerr.New(simerr.KindSyntax, lineNo, raw, "malformed register reference")
	}
	idx, ok := LookupRegister(body[:2])
	if !ok {
		return 0, s, simerr.New(simerr.KindSyntax, lineNo, raw, "unrecognised register name")
	}
	return idx, body[2:], nil
}

func expectByte(s string, b byte, lineNo int, raw, what string) (rest string, err error) {
	s = lexer.TrimLeading(s)
	if len(s) == 0 || s[0] != b {
		return s, simerr.New(simerr.KindSyntax, lineNo, raw, "expected "+what)
	}
	return s[1:], nil
}

func expectComma(s string, lineNo int, raw string) (string, error) {
	return expectByte(lexer.TrimLeading(s), ',', lineNo, raw, "','")
}

// takeToken returns the maximal run of non-whitespace, non-comma
// characters at the front of s (after trimming leading whitespace), and
// the remainder.
func takeToken(s string) (token, rest string) {
	s = lexer.TrimLeading(s)
	i := 0
	for i < len(s) && !isSpace(s[i]) && s[i] != ',' {
		i++
	}
	return s[:i], s[i:]
}

func decodeR(op Opcode, rest string, lineNo int, raw string) (Instruction, error) {
	dest, rest, err := parseRegister(lexer.TrimLeading(rest), lineNo, raw)
	if err != nil {
		return Instruction{}, err
	}
	rest, err = expectComma(rest, lineNo, raw)
	if err != nil {
		return Instruction{}, err
	}
	src1, rest, err := parseRegister(lexer.TrimLeading(rest), lineNo, raw)
	if err != nil {
		return Instruction{}, err
	}
	rest, err = expectComma(rest, lineNo, raw)
	if err != nil {
		return Instruction{}, err
	}
	src2, rest, err := parseRegister(lexer.TrimLeading(rest), lineNo, raw)
	if err != nil {
		return Instruction{}, err
	}
	if !lexer.IsBlankRange(rest) {
		return Instruction{}, simerr.New(simerr.KindSyntax, lineNo, raw, "unexpected trailing content")
	}
	return Instruction{Op: op, Dest: dest, Src1: src1, Src2: src2}, nil
}

func decodeI(op Opcode, rest string, lineNo int, raw string) (Instruction, error) {
	dest, rest, err := parseRegister(lexer.TrimLeading(rest), lineNo, raw)
	if err != nil {
		return Instruction{}, err
	}
	rest, err = expectComma(rest, lineNo, raw)
	if err != nil {
		return Instruction{}, err
	}
	src1, rest, err := parseRegister(lexer.TrimLeading(rest), lineNo, raw)
	if err != nil {
		return Instruction{}, err
	}
	rest, err = expectComma(rest, lineNo, raw)
	if err != nil {
		return Instruction{}, err
	}
	token, rest := takeToken(rest)
	imm, ok := lexer.ParseIntegerLiteral(token)
	if !ok {
		return Instruction{}, simerr.New(simerr.KindSemantic, lineNo, raw, "integer literal out of range or malformed")
	}
	if !lexer.IsBlankRange(rest) {
		return Instruction{}, simerr.New(simerr.KindSyntax, lineNo, raw, "unexpected trailing content")
	}
	return Instruction{Op: op, Dest: dest, Src1: src1, Imm: imm}, nil
}

func decodeMem(op Opcode, rest string, lineNo int, raw string, data *loader.DataMemory) (Instruction, error) {
	memReg, rest, err := parseRegister(lexer.TrimLeading(rest), lineNo, raw)
	if err != nil {
		return Instruction{}, err
	}
	rest, err = expectComma(rest, lineNo, raw)
	if err != nil {
		return Instruction{}, err
	}
	rest = lexer.TrimLeading(rest)

	if len(rest) > 0 && (rest[0] == '-' || (rest[0] >= '0' && rest[0] <= '9')) {
		// Offset form: <int>($reg)
		token, after := takeTokenUpTo(rest, '(')
		offset, ok := lexer.ParseIntegerLiteral(token)
		if !ok {
			return Instruction{}, simerr.New(simerr.KindSemantic, lineNo, raw, "integer literal out of range or malformed")
		}
		if offset == -1 {
			return Instruction{}, simerr.New(simerr.KindSemantic, lineNo, raw, "offset may not be -1")
		}
		after, err = expectByte(after, '(', lineNo, raw, "'('")
		if err != nil {
			return Instruction{}, err
		}
		baseReg, after, err := parseRegister(lexer.TrimLeading(after), lineNo, raw)
		if err != nil {
			return Instruction{}, err
		}
		after, err = expectByte(lexer.TrimLeading(after), ')', lineNo, raw, "')'")
		if err != nil {
			return Instruction{}, err
		}
		if !lexer.IsBlankRange(after) {
			return Instruction{}, simerr.New(simerr.KindSyntax, lineNo, raw, "unexpected trailing content")
		}
		return Instruction{Op: op, MemReg: memReg, Addressing: AddrOffset, BaseReg: baseReg, Offset: offset}, nil
	}

	// Label form.
	label, after := takeToken(rest)
	if !lexer.IsBlankRange(after) {
		return Instruction{}, simerr.New(simerr.KindSyntax, lineNo, raw, "unexpected trailing content")
	}
	value, idx, ok := data.Lookup(label)
	if !ok {
		return Instruction{}, simerr.New(simerr.KindSemantic, lineNo, raw, "unknown label: "+label)
	}
	return Instruction{Op: op, MemReg: memReg, Addressing: AddrLabel, DataIndex: idx, LabelValue: value}, nil
}

func takeTokenUpTo(s string, stop byte) (token, rest string) {
	i := 0
	for i < len(s) && s[i] != stop {
		i++
	}
	return strings.TrimSpace(s[:i]), s[i:]
}

func decodeBranch(op Opcode, rest string, lineNo int, raw string, textLabels map[string]int) (Instruction, error) {
	src1, rest, err := parseRegister(lexer.TrimLeading(rest), lineNo, raw)
	if err != nil {
		return Instruction{}, err
	}
	rest, err = expectComma(rest, lineNo, raw)
	if err != nil {
		return Instruction{}, err
	}
	src2, rest, err := parseRegister(lexer.TrimLeading(rest), lineNo, raw)
	if err != nil {
		return Instruction{}, err
	}
	rest, err = expectComma(rest, lineNo, raw)
	if err != nil {
		return Instruction{}, err
	}
	label, rest := takeToken(rest)
	if !lexer.IsBlankRange(rest) {
		return Instruction{}, simerr.New(simerr.KindSyntax, lineNo, raw, "unexpected trailing content")
	}
	target, ok := textLabels[label]
	if !ok {
		return Instruction{}, simerr.New(simerr.KindSemantic, lineNo, raw, "unknown label: "+label)
	}
	return Instruction{Op: op, Src1: src1, Src2: src2, Target: target}, nil
}

func decodeJump(op Opcode, rest string, lineNo int, raw string, textLabels map[string]int) (Instruction, error) {
	label, rest := takeToken(rest)
	if !lexer.IsBlankRange(rest) {
		return Instruction{}, simerr.New(simerr.KindSyntax, lineNo, raw, "unexpected trailing content")
	}
	target, ok := textLabels[label]
	if !ok {
		return Instruction{}, simerr.New(simerr.KindSemantic, lineNo, raw, "unknown label: "+label)
	}
	return Instruction{Op: op, Target: target}, nil
}

func decodeHalt(rest string, lineNo int, raw string) (Instruction, error) {
	if !lexer.IsBlankRange(rest) {
		return Instruction{}, simerr.New(simerr.KindSyntax, lineNo, raw, "unexpected trailing content")
	}
	return Instruction{Op: OpHalt}, nil
}
