package verify

import (
	"fmt"
	"math/rand"

	"github.com/sarchlab/coherence/mem/coherence"
	"github.com/sarchlab/coherence/mem/coherence/linetable"
	"github.com/sarchlab/coherence/mem/coherence/system"
	"github.com/sarchlab/coherence/sim/hooking"
)

// Progress is told whenever a step finishes.
type Progress interface {
	IncrementFinished(amount uint64)
}

// maxViolations stops a walk that has gone wrong for good.
const maxViolations = 32

// A Walker drives a system with random operations on a few lines and checks
// every line it touched after each step.
type Walker struct {
	sys      *system.System
	rng      *rand.Rand
	seed     int64
	addrs    []uint64
	progress Progress
	tracer   *hooking.CountTracer
	report   *Report
	step     int
}

// NewWalker creates a walker. The same seed on the same system configuration
// replays the same operations.
func NewWalker(sys *system.System, seed int64) *Walker {
	w := &Walker{
		sys:    sys,
		rng:    rand.New(rand.NewSource(seed)),
		seed:   seed,
		tracer: hooking.NewCountTracer(linetable.HookPosCommit),
	}

	for i := 0; i < 4; i++ {
		w.addrs = append(w.addrs, uint64(i)*0x40)
	}

	sys.AcceptHook(w.tracer)

	return w
}

// WithProgress reports finished steps to p.
func (w *Walker) WithProgress(p Progress) *Walker {
	w.progress = p
	return w
}

// WithLines sets how many lines the walk uses. Fewer lines means more
// conflicts.
func (w *Walker) WithLines(n int) *Walker {
	if n < 1 {
		panic("a walk needs at least one line")
	}

	w.addrs = w.addrs[:0]
	for i := 0; i < n; i++ {
		w.addrs = append(w.addrs, uint64(i)*0x40)
	}

	return w
}

// RandomWalk runs a walk of the given number of steps on a system.
func RandomWalk(sys *system.System, seed int64, steps int) *Report {
	return NewWalker(sys, seed).Run(steps)
}

// Run performs the steps and returns what was found. It stops early once
// too many violations have been found.
func (w *Walker) Run(steps int) *Report {
	w.report = &Report{Policy: w.sys.PolicyName()}

	for w.step = 0; w.step < steps; w.step++ {
		addr := w.addrs[w.rng.Intn(len(w.addrs))]

		w.randomOp(addr)
		w.checkLine(addr)
		w.report.Steps++

		if w.progress != nil {
			w.progress.IncrementFinished(1)
		}

		if len(w.report.Violations) >= maxViolations {
			break
		}
	}

	stats := w.sys.Stats()
	w.report.Stats = &stats
	w.report.Transitions = w.tracer.Counts()

	return w.report
}

func (w *Walker) violate(rule string, addr uint64, format string, args ...any) {
	w.report.Violations = append(w.report.Violations, Violation{
		Step:      w.step,
		Rule:      rule,
		AddrBlock: addr,
		Detail:    fmt.Sprintf(format, args...),
	})
}

func (w *Walker) expect(ok bool, rule string, addr uint64, format string, args ...any) {
	w.report.Checks++

	if !ok {
		w.violate(rule, addr, format, args...)
	}
}

func (w *Walker) randomOp(addr uint64) {
	leaf := w.rng.Intn(w.sys.NumLeaves())
	r := w.rng.Intn(100)

	switch {
	case r < 35:
		w.access(leaf, w.randomCmd(), addr)
	case r < 45:
		w.burst(leaf, addr)
	case r < 55:
		cmds := controlCmds()
		cmd := cmds[w.rng.Intn(len(cmds))]
		_, err := w.sys.Access(leaf, cmd, addr, 0)
		w.opDone(err, addr, "%s at leaf %d", cmd, leaf)
	case r < 70:
		w.opDone(w.sys.Evict(leaf, addr), addr, "evict at leaf %d", leaf)
	case r < 80:
		if w.sys.NumClusters() == 0 {
			w.access(leaf, coherence.CmdRead, addr)
			return
		}

		cluster := w.rng.Intn(w.sys.NumClusters())
		w.opDone(w.sys.EvictIntermediate(cluster, addr), addr,
			"evict at cluster %d", cluster)
	case r < 85:
		w.opDone(w.sys.FlushAll(addr), addr, "flush all")
	default:
		w.uncached(addr)
	}
}

func (w *Walker) randomCmd() coherence.MemCmd {
	cmds := []coherence.MemCmd{
		coherence.CmdRead,
		coherence.CmdRead,
		coherence.CmdWrite,
		coherence.CmdWrite,
		coherence.CmdAtomicAdd,
		coherence.CmdAtomicSwap,
		coherence.CmdLoadReserved,
		coherence.CmdPrefetchRead,
		coherence.CmdPrefetchWrite,
	}

	return cmds[w.rng.Intn(len(cmds))]
}

func (w *Walker) value() uint64 {
	return uint64(w.rng.Intn(1000))
}

// returnsOld tells if a command returns the value before it.
func returnsOld(cmd coherence.MemCmd) bool {
	return cmd.IsRead() && cmd != coherence.CmdStoreConditional
}

func (w *Walker) access(leaf int, cmd coherence.MemCmd, addr uint64) {
	latest := w.sys.Latest(addr)

	res, err := w.sys.Access(leaf, cmd, addr, w.value())
	if !w.opDone(err, addr, "%s at leaf %d", cmd, leaf) {
		return
	}

	if returnsOld(cmd) {
		w.expect(res.Value == latest, RuleDataValue, addr,
			"%s at leaf %d returned %d, the last write was %d",
			cmd, leaf, res.Value, latest)
	}
}

func (w *Walker) burst(leaf int, addr uint64) {
	ops := make([]system.Op, 2+w.rng.Intn(3))
	for i := range ops {
		ops[i] = system.Op{Cmd: w.randomCmd(), Value: w.value()}
	}

	expected := w.sys.Latest(addr)

	results, err := w.sys.AccessBurst(leaf, addr, ops)
	if !w.opDone(err, addr, "burst of %d at leaf %d", len(ops), leaf) {
		return
	}

	for i, res := range results {
		op := ops[i]

		if returnsOld(op.Cmd) {
			w.expect(res.Value == expected, RuleDataValue, addr,
				"%s %d of a burst at leaf %d returned %d, expected %d",
				op.Cmd, i, leaf, res.Value, expected)
		}

		if op.Cmd.IsWrite() {
			expected = apply(op.Cmd, expected, op.Value)
		}
	}

	latest := w.sys.Latest(addr)
	w.expect(latest == expected, RuleDataValue, addr,
		"burst at leaf %d left %d, expected %d", leaf, latest, expected)
}

// apply computes the result of the writing commands randomCmd picks.
func apply(cmd coherence.MemCmd, old, operand uint64) uint64 {
	if cmd == coherence.CmdAtomicAdd {
		return old + operand
	}

	return operand
}

func (w *Walker) uncached(addr uint64) {
	cmds := []coherence.MemCmd{
		coherence.CmdRead,
		coherence.CmdWrite,
		coherence.CmdAtomicAdd,
	}
	cmd := cmds[w.rng.Intn(len(cmds))]
	latest := w.sys.Latest(addr)

	old, err := w.sys.UncachedAccess(cmd, addr, w.value())
	if !w.opDone(err, addr, "uncached %s", cmd) {
		return
	}

	if cmd != coherence.CmdWrite {
		w.expect(old == latest, RuleDataValue, addr,
			"uncached %s returned %d, the last write was %d",
			cmd, old, latest)
	}
}

func (w *Walker) opDone(err error, addr uint64, format string, args ...any) bool {
	if err == nil {
		return true
	}

	w.violate(RuleOperation, addr, "%s: %v", fmt.Sprintf(format, args...), err)

	return false
}
