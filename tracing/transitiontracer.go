// Package tracing records what happens to cache lines.
package tracing

import (
	"context"
	"fmt"
	"sync"

	"github.com/sarchlab/coherence/datarecording"
	"github.com/sarchlab/coherence/mem/coherence/linetable"
	"github.com/sarchlab/coherence/sim/hooking"
	"github.com/tebeka/atexit"
)

// TransitionEntry is a row of a transition table.
type TransitionEntry struct {
	Seq       int64  `json:"seq"`
	TxnID     string `json:"txn_id"`
	Location  string `json:"location"`
	AddrBlock int64  `json:"addr_block"`
	Event     string `json:"event"`
	Before    string `json:"before"`
	After     string `json:"after"`
	Changed   bool   `json:"changed"`
	Aborted   bool   `json:"aborted"`
	Msg       string `json:"msg"`
}

// sessionEntry indexes the tables the tracer has written.
type sessionEntry struct {
	TableName string `json:"table_name"`
	Entries   int64  `json:"entries"`
}

// SessionTable lists every recording session of a TransitionTracer.
const SessionTable = "transition_sessions"

// TransitionTracer is a hook that stores line transitions into a database.
// Recording happens in sessions, each writing into its own table.
type TransitionTracer struct {
	lock     sync.Mutex
	backend  datarecording.DataRecorder
	aborts   bool
	session  int
	table    string
	seq      int64
	inTable  int64
	tracing  bool
	finished bool
}

// NewTransitionTracer creates a tracer that writes to the data recorder. It
// starts a first session right away.
func NewTransitionTracer(
	dataRecorder datarecording.DataRecorder,
) *TransitionTracer {
	dataRecorder.CreateTable(SessionTable, sessionEntry{})

	t := &TransitionTracer{
		backend: dataRecorder,
	}

	t.StartSession()

	atexit.Register(func() {
		t.Terminate()
	})

	return t
}

// WithAborts makes the tracer record aborted transitions as well.
func (t *TransitionTracer) WithAborts() *TransitionTracer {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.aborts = true

	return t
}

// Func records a transition.
func (t *TransitionTracer) Func(ctx hooking.HookCtx) {
	aborted := ctx.Pos == linetable.HookPosAbort

	if ctx.Pos != linetable.HookPosCommit && !aborted {
		return
	}

	tr, ok := ctx.Item.(linetable.Transition)
	if !ok {
		return
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	if !t.tracing || (aborted && !t.aborts) {
		return
	}

	t.seq++
	t.inTable++

	t.backend.InsertData(t.table, TransitionEntry{
		Seq:       t.seq,
		TxnID:     tr.TxnID,
		Location:  tr.Table,
		AddrBlock: int64(tr.AddrBlock),
		Event:     tr.Event,
		Before:    tr.Before,
		After:     tr.After,
		Changed:   tr.Changed,
		Aborted:   aborted,
		Msg:       tr.Msg,
	})
}

// IsTracing returns true if a session is open.
func (t *TransitionTracer) IsTracing() bool {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.tracing
}

// TableName returns the table of the current or the last session.
func (t *TransitionTracer) TableName() string {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.table
}

// StartSession opens a new table for the transitions that follow. An open
// session is stopped first.
func (t *TransitionTracer) StartSession() {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.tracing {
		t.stopSession()
	}

	t.session++
	t.table = fmt.Sprintf("transitions%d", t.session)
	t.inTable = 0
	t.tracing = true
	t.backend.CreateTable(t.table, TransitionEntry{})
}

// StopSession stops recording and writes everything out.
func (t *TransitionTracer) StopSession() {
	t.lock.Lock()
	defer t.lock.Unlock()

	if !t.tracing {
		return
	}

	t.stopSession()
	t.backend.Flush()
}

func (t *TransitionTracer) stopSession() {
	t.tracing = false
	t.backend.InsertData(SessionTable, sessionEntry{
		TableName: t.table,
		Entries:   t.inTable,
	})
}

// Terminate ends the open session and flushes the recorder. It does nothing
// the second time.
func (t *TransitionTracer) Terminate() {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.finished {
		return
	}

	t.finished = true

	if t.tracing {
		t.stopSession()
	}

	t.backend.Flush()
}

// ReadTransitions reads back the transitions of one line from a session
// table, in the order they were recorded. Passing a negative address reads
// every line.
func ReadTransitions(
	ctx context.Context,
	reader datarecording.DataReader,
	table string,
	addrBlock int64,
) ([]TransitionEntry, error) {
	reader.MapTable(table, TransitionEntry{})

	params := datarecording.QueryParams{OrderBy: "Seq"}
	if addrBlock >= 0 {
		params.Where = "AddrBlock = ?"
		params.Args = []any{addrBlock}
	}

	rows, _, err := reader.Query(ctx, table, params)
	if err != nil {
		return nil, err
	}

	entries := make([]TransitionEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, *r.(*TransitionEntry))
	}

	return entries, nil
}
