package hooking

import (
	"sort"
	"sync"
)

// Labeled is an item that can be counted by label.
type Labeled interface {
	Label() string
}

// CountTracer counts how many times each label passes a hook position.
type CountTracer struct {
	pos   *HookPos
	lock  sync.Mutex
	count map[string]uint64
}

// NewCountTracer creates a CountTracer that only counts items at pos. If pos is
// nil, items at every position are counted.
func NewCountTracer(pos *HookPos) *CountTracer {
	return &CountTracer{
		pos:   pos,
		count: make(map[string]uint64),
	}
}

// Func counts the item if it has a label.
func (t *CountTracer) Func(ctx HookCtx) {
	if t.pos != nil && ctx.Pos != t.pos {
		return
	}

	item, ok := ctx.Item.(Labeled)
	if !ok {
		return
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	t.count[item.Label()]++
}

// Labels returns all the labels seen, sorted.
func (t *CountTracer) Labels() []string {
	t.lock.Lock()
	defer t.lock.Unlock()

	labels := make([]string, 0, len(t.count))
	for label := range t.count {
		labels = append(labels, label)
	}

	sort.Strings(labels)

	return labels
}

// Count returns the number of items seen with the label.
func (t *CountTracer) Count(label string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.count[label]
}

// Counts returns a copy of all counters.
func (t *CountTracer) Counts() map[string]uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	counts := make(map[string]uint64, len(t.count))
	for label, n := range t.count {
		counts[label] = n
	}

	return counts
}
