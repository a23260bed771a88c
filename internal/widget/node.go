package widget

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/diogo/chatwidget/internal/models"
)

// Class names carried by transcript nodes
const (
	ClassMessage = "message"
	ClassLoading = "loading"
)

// Node is a rendered transcript entry. Its text is always plain text.
type Node struct {
	ID      uuid.UUID
	Role    models.Role
	Classes []string
	Text    string
}

// HasClass reports whether the node carries the given class
func (n Node) HasClass(class string) bool {
	return slices.Contains(n.Classes, class)
}

// IsLoading reports whether the node is a loading indicator
func (n Node) IsLoading() bool {
	return n.HasClass(ClassLoading)
}

// Render builds a fresh node for msg. Two calls never share state.
func Render(msg models.Message) Node {
	return Node{
		ID:      uuid.New(),
		Role:    msg.Role,
		Classes: []string{ClassMessage, string(msg.Role)},
		Text:    PlainText(msg.Content),
	}
}

// LoadingNode builds a placeholder shown while a reply is pending
func LoadingNode() Node {
	return Node{
		ID:      uuid.New(),
		Role:    models.RoleAssistant,
		Classes: []string{ClassMessage, string(models.RoleAssistant), ClassLoading},
	}
}

// PlainText escapes control characters so the terminal shows them instead
// of acting on them. Newlines and tabs are kept.
func PlainText(s string) string {
	clean := true
	for _, r := range s {
		if isUnsafe(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		switch {
		case !isUnsafe(r):
			b.WriteRune(r)
		case r == 0x7f:
			b.WriteString("^?")
		case r < 0x20:
			b.WriteByte('^')
			b.WriteRune(r + 0x40)
		default:
			fmt.Fprintf(&b, "\\u%04x", r)
		}
	}
	return b.String()
}

func isUnsafe(r rune) bool {
	if r == '\n' || r == '\t' {
		return false
	}
	return r < 0x20 || r == 0x7f || (r >= 0x80 && r <= 0x9f)
}
