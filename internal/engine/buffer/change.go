package buffer

import "fmt"

// Change records a single overwrite applied to the buffer.
// Old and New always have the same length.
type Change struct {
	Offset ByteOffset // Position of the first replaced byte
	Old    []byte     // Bytes that were overwritten
	New    []byte     // Bytes that were written
}

// Invert returns the inverse change that would undo this change.
func (c Change) Invert() Change {
	return Change{Offset: c.Offset, Old: c.New, New: c.Old}
}

// Len returns the number of bytes the change covers.
func (c Change) Len() int {
	return len(c.New)
}

// IsNoOp returns true if the change writes back the same bytes.
func (c Change) IsNoOp() bool {
	if len(c.Old) != len(c.New) {
		return false
	}
	for i := range c.Old {
		if c.Old[i] != c.New[i] {
			return false
		}
	}
	return true
}

// String returns a human-readable representation of the change.
func (c Change) String() string {
	return fmt.Sprintf("Overwrite(%d, % x -> % x)", c.Offset, c.Old, c.New)
}
