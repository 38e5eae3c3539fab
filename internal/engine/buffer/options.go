package buffer

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithPath sets the file path used by Save.
func WithPath(path string) Option {
	return func(b *Buffer) {
		b.path = path
	}
}

// WithReadOnly marks the buffer as read-only. Writes and saves fail
// with ErrReadOnly.
func WithReadOnly() Option {
	return func(b *Buffer) {
		b.readOnly = true
	}
}
