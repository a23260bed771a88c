package widget

// Buffer is a Composer holding a plain string, for hosts without an input control.
type Buffer struct {
	value string
}

// Ensure Buffer implements Composer
var _ Composer = (*Buffer)(nil)

// NewBuffer creates a composer holding value
func NewBuffer(value string) *Buffer {
	return &Buffer{value: value}
}

func (b *Buffer) Value() string {
	return b.value
}

func (b *Buffer) Reset() {
	b.value = ""
}

// SetValue replaces the pending text
func (b *Buffer) SetValue(value string) {
	b.value = value
}
