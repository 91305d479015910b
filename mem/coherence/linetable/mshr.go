package linetable

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sarchlab/coherence/mem/coherence"
)

var (
	// ErrMSHRFull is returned when no more misses can be tracked.
	ErrMSHRFull = errors.New("MSHR is full")

	// ErrNoPendingTransaction is returned when a line has no outstanding
	// miss.
	ErrNoPendingTransaction = errors.New("no pending transaction")
)

// MSHREntry is an outstanding miss on a line.
type MSHREntry struct {
	AddrBlock    uint64
	Cmd          coherence.MemCmd
	ClientXactID uint64
	Secondary    []coherence.MemCmd
}

// MSHR tracks the acquires a client is waiting for.
type MSHR struct {
	lock     sync.Mutex
	capacity int
	entries  map[uint64]*MSHREntry
}

// NewMSHR creates an MSHR that tracks up to capacity misses.
func NewMSHR(capacity int) *MSHR {
	if capacity < 1 {
		panic("MSHR capacity must be positive")
	}

	return &MSHR{
		capacity: capacity,
		entries:  make(map[uint64]*MSHREntry),
	}
}

// Add records a primary miss.
func (m *MSHR) Add(
	addrBlock uint64,
	cmd coherence.MemCmd,
	clientXactID uint64,
) (*MSHREntry, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if _, ok := m.entries[addrBlock]; ok {
		return nil, fmt.Errorf("MSHR line %#x: %w", addrBlock, ErrLineBusy)
	}

	if len(m.entries) >= m.capacity {
		return nil, ErrMSHRFull
	}

	e := &MSHREntry{
		AddrBlock:    addrBlock,
		Cmd:          cmd,
		ClientXactID: clientXactID,
	}
	m.entries[addrBlock] = e

	return e, nil
}

// Lookup returns a copy of the outstanding miss on a line.
func (m *MSHR) Lookup(addrBlock uint64) (MSHREntry, bool) {
	m.lock.Lock()
	defer m.lock.Unlock()

	e, ok := m.entries[addrBlock]
	if !ok {
		return MSHREntry{}, false
	}

	return *e, true
}

// Remove ends the outstanding miss on a line and returns it.
func (m *MSHR) Remove(addrBlock uint64) (MSHREntry, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	e, ok := m.entries[addrBlock]
	if !ok {
		return MSHREntry{}, fmt.Errorf("MSHR line %#x: %w",
			addrBlock, ErrNoPendingTransaction)
	}

	delete(m.entries, addrBlock)

	return *e, nil
}

// AddSecondary tries to merge a command into the outstanding miss on the same
// line. The entry is looked up first; only then the metadata decides whether
// the pending acquire is enough for the new command. If it is not, nothing
// is merged and needsAcquire is true: the caller must wait for the pending
// miss to finish and issue a new acquire.
func (m *MSHR) AddSecondary(
	addrBlock uint64,
	cmd coherence.MemCmd,
	meta coherence.ClientMetadata,
) (needsAcquire bool, err error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	e, ok := m.entries[addrBlock]
	if !ok {
		return false, fmt.Errorf("MSHR line %#x: %w",
			addrBlock, ErrNoPendingTransaction)
	}

	if meta.RequiresAcquireOnSecondaryMiss(e.Cmd, cmd) {
		return true, nil
	}

	e.Secondary = append(e.Secondary, cmd)

	return false, nil
}

// Len returns the number of outstanding misses.
func (m *MSHR) Len() int {
	m.lock.Lock()
	defer m.lock.Unlock()

	return len(m.entries)
}

// IsFull returns true if no more misses can be tracked.
func (m *MSHR) IsFull() bool {
	return m.Len() >= m.capacity
}
