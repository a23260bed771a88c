package widget

import (
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Log is an in-memory Transcript. Hosts read it back with Nodes to draw it.
type Log struct {
	mu      sync.RWMutex
	nodes   []Node
	scrolls int
}

// Ensure Log implements Transcript
var _ Transcript = (*Log)(nil)

// NewLog creates an empty transcript
func NewLog() *Log {
	return &Log{}
}

// Append adds a node at the end of the transcript
func (l *Log) Append(n Node) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nodes = append(l.nodes, n)
}

// Remove deletes the node with the given id. It reports whether a node was removed.
func (l *Log) Remove(id uuid.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := slices.IndexFunc(l.nodes, func(n Node) bool { return n.ID == id })
	if i < 0 {
		return false
	}
	l.nodes = slices.Delete(l.nodes, i, i+1)
	return true
}

// ScrollToBottom records a scroll request for the host to honour
func (l *Log) ScrollToBottom() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scrolls++
}

// TakeScroll reports whether a scroll was requested since the last call
func (l *Log) TakeScroll() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	pending := l.scrolls > 0
	l.scrolls = 0
	return pending
}

// Nodes returns a copy of the transcript in order
func (l *Log) Nodes() []Node {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.nodes)
}

// Len returns the number of nodes in the transcript
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.nodes)
}

// Last returns the most recent node matching keep
func (l *Log) Last(keep func(Node) bool) (Node, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for i := len(l.nodes) - 1; i >= 0; i-- {
		if keep(l.nodes[i]) {
			return l.nodes[i], true
		}
	}
	return Node{}, false
}
