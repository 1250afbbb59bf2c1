// Package loader performs the two-pass scan of a program's source lines:
// pass 1 collects the .data section into a DataMemory, pass 2 collects
// the .text section's labels and locates the mandatory main entry point.
package loader

import (
	"sort"
	"strings"

	"github.com/faisaal99/mipssim/internal/lexer"
	"github.com/faisaal99/mipssim/internal/simerr"
)

// MaxLines is the largest input the loader will accept.
const MaxLines = 10000

// Program is the fully validated result of loading a source file: its raw
// lines (for re-reading during execution and display), the data memory
// built from .data, the text-section label table, and the initial program
// counter.
type Program struct {
	Lines      []string
	Data       *DataMemory
	TextLabels map[string]int // label -> line index, excludes "main"
	MainIndex  int            // program counter to start execution at
}

// Load runs both passes over lines and returns a validated Program.
func Load(lines []string) (*Program, error) {
	if len(lines) > MaxLines {
		return nil, simerr.NoLine(simerr.KindSetup, "input exceeds 10000 lines")
	}

	data, err := loadData(lines)
	if err != nil {
		return nil, err
	}

	textLabels, mainIndex, err := loadText(lines)
	if err != nil {
		return nil, err
	}

	return &Program{
		Lines:      lines,
		Data:       data,
		TextLabels: textLabels,
		MainIndex:  mainIndex,
	}, nil
}

// loadData is pass 1: find the single .data directive and collect
// "label: .word <int32>" entries up to .text or EOF.
func loadData(lines []string) (*DataMemory, error) {
	dataStart := -1

	for i, raw := range lines {
		stripped := lexer.StripComment(raw)
		idx := strings.Index(stripped, ".data")
		if idx < 0 {
			continue
		}
		if dataStart >= 0 {
			return nil, simerr.New(simerr.KindStructural, i+1, raw, "multiple .data directives")
		}
		if !lexer.IsBlankRange(stripped[:idx]) || !lexer.IsBlankRange(stripped[idx+len(".data"):]) {
			return nil, simerr.New(simerr.KindStructural, i+1, raw, "unexpected character")
		}
		dataStart = i
	}

	var entries []DataEntry
	if dataStart >= 0 {
		for i := dataStart + 1; i < len(lines); i++ {
			raw := lines[i]
			stripped := lexer.StripComment(raw)
			if isDirectiveLine(stripped, ".text") {
				break
			}
			if lexer.IsBlankRange(stripped) {
				continue
			}
			entry, err := parseDataEntry(stripped, i+1, raw)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(a, b int) bool { return entries[a].Label < entries[b].Label })
	for i := 1; i < len(entries); i++ {
		if entries[i].Label == entries[i-1].Label {
			return nil, simerr.NoLine(simerr.KindStructural, "One or more labels are repeated")
		}
	}

	return NewDataMemory(entries), nil
}

// parseDataEntry parses "<label>: .word <int32>" with whitespace-only
// separators. The label is read right-to-left from the colon: everything
// before it, after trimming, must be exactly the label with no other
// whitespace-separated token preceding it.
func parseDataEntry(stripped string, lineNo int, raw string) (DataEntry, error) {
	colon := strings.IndexByte(stripped, ':')
	if colon < 0 {
		return DataEntry{}, simerr.New(simerr.KindSyntax, lineNo, raw, "expected ':' in data entry")
	}

	label := strings.TrimSpace(stripped[:colon])
	if strings.ContainsAny(label, " \t") {
		return DataEntry{}, simerr.New(simerr.KindSyntax, lineNo, raw, "unexpected token before label")
	}
	if !lexer.IsLegalLabel(label) {
		return DataEntry{}, simerr.New(simerr.KindSyntax, lineNo, raw, "illegal label")
	}

	rest := stripped[colon+1:]
	wordIdx := strings.Index(rest, ".word")
	if wordIdx < 0 {
		return DataEntry{}, simerr.New(simerr.KindSyntax, lineNo, raw, "expected .word")
	}
	if !lexer.IsBlankRange(rest[:wordIdx]) {
		return DataEntry{}, simerr.New(simerr.KindSyntax, lineNo, raw, "unexpected character before .word")
	}

	literal := strings.TrimSpace(rest[wordIdx+len(".word"):])
	value, ok := lexer.ParseIntegerLiteral(literal)
	if !ok {
		return DataEntry{}, simerr.New(simerr.KindSemantic, lineNo, raw, "integer literal out of range or malformed")
	}

	return DataEntry{Label: label, Value: value}, nil
}

// loadText is pass 2: find the single .text directive, collect every
// "label:" line into the text-label table (main is consumed separately),
// and require that main was seen.
func loadText(lines []string) (map[string]int, int, error) {
	textStart := -1

	for i, raw := range lines {
		stripped := lexer.StripComment(raw)
		idx := strings.Index(stripped, ".text")
		if idx < 0 {
			continue
		}
		if textStart >= 0 {
			return nil, 0, simerr.New(simerr.KindStructural, i+1, raw, "multiple .text directives")
		}
		if !lexer.IsBlankRange(stripped[:idx]) || !lexer.IsBlankRange(stripped[idx+len(".text"):]) {
			return nil, 0, simerr.New(simerr.KindStructural, i+1, raw, "unexpected character")
		}
		textStart = i
	}

	if textStart < 0 {
		return nil, 0, simerr.NoLine(simerr.KindStructural, ".text directive not found")
	}

	type labelHit struct {
		label string
		line  int
	}
	var hits []labelHit
	mainIndex := -1

	for i := textStart + 1; i < len(lines); i++ {
		raw := lines[i]
		stripped := lexer.StripComment(raw)
		if lexer.IsBlankRange(stripped) {
			continue
		}
		colon := strings.IndexByte(stripped, ':')
		if colon < 0 {
			continue
		}

		label := strings.TrimSpace(stripped[:colon])
		if strings.ContainsAny(label, " \t") {
			return nil, 0, simerr.New(simerr.KindSyntax, i+1, raw, "unexpected token before label")
		}
		if !lexer.IsLegalLabel(label) {
			return nil, 0, simerr.New(simerr.KindSyntax, i+1, raw, "illegal label")
		}
		if !lexer.IsBlankRange(stripped[colon+1:]) {
			return nil, 0, simerr.New(simerr.KindSyntax, i+1, raw, "unexpected content after label")
		}

		if label == "main" {
			if mainIndex >= 0 {
				return nil, 0, simerr.New(simerr.KindStructural, i+1, raw, "duplicate main label")
			}
			// Unlike an ordinary label, main's recorded index is the line
			// after the label itself, so execution starts at the first
			// real instruction rather than spending a step on the label.
			mainIndex = i + 1
			continue
		}
		hits = append(hits, labelHit{label: label, line: i})
	}

	if mainIndex < 0 {
		return nil, 0, simerr.NoLine(simerr.KindStructural, "main label not found")
	}

	sort.Slice(hits, func(a, b int) bool { return hits[a].label < hits[b].label })
	for i := 1; i < len(hits); i++ {
		if hits[i].label == hits[i-1].label {
			return nil, 0, simerr.NoLine(simerr.KindStructural, "One or more labels are repeated")
		}
	}

	table := make(map[string]int, len(hits))
	for _, h := range hits {
		table[h.label] = h.line
	}

	return table, mainIndex, nil
}

// isDirectiveLine reports whether stripped contains directive surrounded
// by whitespace only, the same test applied to .data/.text.
func isDirectiveLine(stripped, directive string) bool {
	idx := strings.Index(stripped, directive)
	if idx < 0 {
		return false
	}
	return lexer.IsBlankRange(stripped[:idx]) && lexer.IsBlankRange(stripped[idx+len(directive):])
}
