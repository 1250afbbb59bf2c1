package loader

import "fmt"

// DataBase is the synthetic display address of the first data-memory
// entry; entry k (sorted by label) is displayed at DataBase + 4*k.
const DataBase int32 = 40400

// DataEntry is a single labeled word from the .data section.
type DataEntry struct {
	Label string
	Value int32
}

// DataMemory is the ordered, label-addressed store built by pass 1 of the
// loader. Entries are sorted by label ascending; the sort order is also
// the display/index order.
type DataMemory struct {
	entries []DataEntry
	index   map[string]int
}

// NewDataMemory builds a DataMemory from entries already sorted by label
// with duplicates rejected (see Load).
func NewDataMemory(entries []DataEntry) *DataMemory {
	dm := &DataMemory{
		entries: entries,
		index:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		dm.index[e.Label] = i
	}
	return dm
}

// Lookup returns an entry's current value and its index by label.
func (dm *DataMemory) Lookup(label string) (value int32, index int, ok bool) {
	i, found := dm.index[label]
	if !found {
		return 0, 0, false
	}
	return dm.entries[i].Value, i, true
}

// ValueAt returns the value stored at entry index i.
func (dm *DataMemory) ValueAt(i int) int32 {
	return dm.entries[i].Value
}

// SetValueAt overwrites the value stored at entry index i.
func (dm *DataMemory) SetValueAt(i int, value int32) {
	dm.entries[i].Value = value
}

// Len returns the number of data-memory entries.
func (dm *DataMemory) Len() int {
	return len(dm.entries)
}

// Entries returns the entries in display order (address = DataBase + 4*k).
func (dm *DataMemory) Entries() []DataEntry {
	return dm.entries
}

// AddressOf returns the synthetic display address of entry index i.
func AddressOf(i int) int32 {
	return DataBase + int32(4*i)
}

func (e DataEntry) String() string {
	return fmt.Sprintf("%s: %d", e.Label, e.Value)
}
