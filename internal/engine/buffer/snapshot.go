package buffer

// Snapshot is an immutable copy of a buffer's state at one revision.
// Snapshots are safe for concurrent use without locking.
type Snapshot struct {
	data       []byte
	path       string
	modified   bool
	revisionID RevisionID
}

// Len returns the byte length of the snapshot.
func (s *Snapshot) Len() ByteOffset {
	return ByteOffset(len(s.data))
}

// Byte returns the byte at the given offset.
func (s *Snapshot) Byte(offset ByteOffset) (byte, bool) {
	if offset < 0 || offset >= ByteOffset(len(s.data)) {
		return 0, false
	}
	return s.data[offset], true
}

// Bytes returns up to n bytes starting at offset, truncated at the end.
// The returned slice aliases the snapshot and must not be modified.
func (s *Snapshot) Bytes(offset ByteOffset, n int) []byte {
	if offset < 0 || n <= 0 || offset >= ByteOffset(len(s.data)) {
		return nil
	}
	end := offset + ByteOffset(n)
	if end > ByteOffset(len(s.data)) {
		end = ByteOffset(len(s.data))
	}
	return s.data[offset:end]
}

// Path returns the snapshot's file path.
func (s *Snapshot) Path() string {
	return s.path
}

// Modified returns the modified flag at snapshot time.
func (s *Snapshot) Modified() bool {
	return s.modified
}

// RevisionID returns the revision the snapshot was taken at.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}
