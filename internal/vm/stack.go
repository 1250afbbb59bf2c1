package vm

import "github.com/faisaal99/mipssim/internal/simerr"

const (
	// StackBase is the lowest valid stack address.
	StackBase int32 = 40000
	// StackTop is the highest valid stack address.
	StackTop int32 = 40396
	// StackCells is the number of 4-byte cells in the stack.
	StackCells = 100
)

// Stack is the fixed 100-cell array backing addresses 40000-40396.
type Stack struct {
	cells [StackCells]int32
}

// NewStack returns a zero-initialized stack.
func NewStack() *Stack {
	return &Stack{}
}

// Reset zeroes every cell.
func (s *Stack) Reset() {
	for i := range s.cells {
		s.cells[i] = 0
	}
}

// CellIndex validates a stack address and returns its cell index. An
// address outside [StackBase, StackTop] or not 4-byte aligned is an error.
func CellIndex(addr int32) (int, error) {
	if addr < StackBase || addr > StackTop {
		return 0, simerr.NoLine(simerr.KindSemantic, "stack address out of range")
	}
	if (addr-StackBase)%4 != 0 {
		return 0, simerr.NoLine(simerr.KindSemantic, "stack address misaligned")
	}
	return int((addr - StackBase) / 4), nil
}

// ValidSP reports whether value is a legal $sp value: in [StackBase,
// StackTop] and 4-byte aligned.
func ValidSP(value int32) bool {
	_, err := CellIndex(value)
	return err == nil
}

// Load reads the cell at addr.
func (s *Stack) Load(addr int32) (int32, error) {
	idx, err := CellIndex(addr)
	if err != nil {
		return 0, err
	}
	return s.cells[idx], nil
}

// Store writes value to the cell at addr.
func (s *Stack) Store(addr, value int32) error {
	idx, err := CellIndex(addr)
	if err != nil {
		return err
	}
	s.cells[idx] = value
	return nil
}

// Dump returns a snapshot of all 100 cells, addressed from StackBase.
func (s *Stack) Dump() [StackCells]int32 {
	return s.cells
}
