// Package linetable stores the coherence metadata of every line a cache or a
// directory knows about, and makes sure that at most one transition per line
// is in flight.
package linetable

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sarchlab/coherence/sim/hooking"
	"github.com/sarchlab/coherence/sim/id"
)

// ErrLineBusy is returned when a line already has a transition in flight.
var ErrLineBusy = errors.New("line has a transition in flight")

// HookPosCommit marks a committed transition. The item is a Transition.
var HookPosCommit = &hooking.HookPos{Name: "LineTransitionCommit"}

// HookPosAbort marks an aborted transition. The item is a Transition whose
// After equals its Before.
var HookPosAbort = &hooking.HookPos{Name: "LineTransitionAbort"}

// Metadata is what a table can store.
type Metadata[M any] interface {
	Equals(rhs M) bool
	String() string
}

// Transition describes a change of a line.
type Transition struct {
	Table     string
	AddrBlock uint64
	Event     string
	TxnID     string
	Before    string
	After     string
	Changed   bool
	Msg       string
}

// Label returns the event, so that transitions can be counted by event.
func (t Transition) Label() string {
	return t.Event
}

type line[M Metadata[M]] struct {
	meta  M
	txnID string
}

// Table maps block addresses to metadata. Lines that were never touched hold
// the reset value.
type Table[M Metadata[M]] struct {
	hooking.HookableBase

	name  string
	reset func() M
	idGen id.IDGenerator

	lock  sync.Mutex
	lines map[uint64]*line[M]
}

// New creates a table. The reset function returns the metadata of a line the
// table has never seen.
func New[M Metadata[M]](
	name string,
	reset func() M,
	idGen id.IDGenerator,
) *Table[M] {
	if reset == nil {
		panic("line table requires a reset function")
	}

	if idGen == nil {
		idGen = id.NewIDGenerator()
	}

	return &Table[M]{
		name:  name,
		reset: reset,
		idGen: idGen,
		lines: make(map[uint64]*line[M]),
	}
}

// Name returns the name of the table.
func (t *Table[M]) Name() string {
	return t.name
}

func (t *Table[M]) lineOf(addrBlock uint64) *line[M] {
	l, ok := t.lines[addrBlock]
	if !ok {
		l = &line[M]{meta: t.reset()}
		t.lines[addrBlock] = l
	}

	return l
}

// Get returns the current metadata of a line.
func (t *Table[M]) Get(addrBlock uint64) M {
	t.lock.Lock()
	defer t.lock.Unlock()

	if l, ok := t.lines[addrBlock]; ok {
		return l.meta
	}

	return t.reset()
}

// IsBusy returns true if the line has a transition in flight.
func (t *Table[M]) IsBusy(addrBlock uint64) bool {
	t.lock.Lock()
	defer t.lock.Unlock()

	l, ok := t.lines[addrBlock]

	return ok && l.txnID != ""
}

// Begin starts a transition on a line. It fails with ErrLineBusy if another
// transition on the same line has not finished.
func (t *Table[M]) Begin(addrBlock uint64) (*Txn[M], error) {
	t.lock.Lock()
	defer t.lock.Unlock()

	l := t.lineOf(addrBlock)
	if l.txnID != "" {
		return nil, fmt.Errorf("%s line %#x: %w", t.name, addrBlock, ErrLineBusy)
	}

	l.txnID = t.idGen.Generate()

	return &Txn[M]{
		table:     t,
		addrBlock: addrBlock,
		id:        l.txnID,
		before:    l.meta,
	}, nil
}

// Update runs a whole transition on a line. The function returns the next
// metadata and a description of the message it caused, if any.
func (t *Table[M]) Update(
	addrBlock uint64,
	event string,
	f func(before M) (after M, msg string),
) (M, error) {
	txn, err := t.Begin(addrBlock)
	if err != nil {
		var zero M
		return zero, err
	}

	after, msg := f(txn.Before())
	txn.Commit(event, after, msg)

	return after, nil
}

// Set overwrites a line without a transition. It is meant for initializing
// a table.
func (t *Table[M]) Set(addrBlock uint64, meta M) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.lineOf(addrBlock).meta = meta
}

// Addresses returns the addresses of all lines the table has seen, sorted.
func (t *Table[M]) Addresses() []uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	addrs := make([]uint64, 0, len(t.lines))
	for addr := range t.lines {
		addrs = append(addrs, addr)
	}

	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	return addrs
}

// Snapshot returns the printed metadata of every line the table has seen.
func (t *Table[M]) Snapshot() map[string]string {
	t.lock.Lock()
	defer t.lock.Unlock()

	snapshot := make(map[string]string, len(t.lines))
	for addr, l := range t.lines {
		snapshot[fmt.Sprintf("%#x", addr)] = l.meta.String()
	}

	return snapshot
}

// Txn is a transition in flight on one line.
type Txn[M Metadata[M]] struct {
	table     *Table[M]
	addrBlock uint64
	id        string
	before    M
	done      bool
}

// ID returns the ID of the transition.
func (x *Txn[M]) ID() string {
	return x.id
}

// AddrBlock returns the line the transition is on.
func (x *Txn[M]) AddrBlock() uint64 {
	return x.addrBlock
}

// Before returns the metadata at the time the transition began.
func (x *Txn[M]) Before() M {
	return x.before
}

func (x *Txn[M]) finish(after M) {
	if x.done {
		panic("transition already finished")
	}

	x.done = true

	x.table.lock.Lock()
	defer x.table.lock.Unlock()

	l := x.table.lines[x.addrBlock]
	l.meta = after
	l.txnID = ""
}

// Commit stores the next metadata and releases the line.
func (x *Txn[M]) Commit(event string, after M, msg string) {
	x.finish(after)

	x.table.InvokeHook(hooking.HookCtx{
		Domain: x.table,
		Pos:    HookPosCommit,
		Item:   x.transition(event, after, msg),
	})
}

// Abort releases the line and keeps its metadata.
func (x *Txn[M]) Abort(event string) {
	x.finish(x.before)

	x.table.InvokeHook(hooking.HookCtx{
		Domain: x.table,
		Pos:    HookPosAbort,
		Item:   x.transition(event, x.before, ""),
	})
}

func (x *Txn[M]) transition(event string, after M, msg string) Transition {
	return Transition{
		Table:     x.table.name,
		AddrBlock: x.addrBlock,
		Event:     event,
		TxnID:     x.id,
		Before:    x.before.String(),
		After:     after.String(),
		Changed:   !x.before.Equals(after),
		Msg:       msg,
	}
}
