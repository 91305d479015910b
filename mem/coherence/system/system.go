// Package system composes coherence metadata into a functional cache
// hierarchy: a root directory in front of memory, optional mid-level caches,
// and leaf caches that processors access. Messages are delivered by direct
// calls, so every operation finishes before the next one starts.
package system

import (
	"fmt"
	"sync"

	"github.com/sarchlab/coherence/mem/coherence"
	"github.com/sarchlab/coherence/sim/hooking"
)

// Table is a line table of one node, as seen from outside.
type Table interface {
	hooking.Hookable
	Name() string
	Addresses() []uint64
	Snapshot() map[string]string
}

// AccessResult tells how a processor command went.
type AccessResult struct {
	Hit   bool
	Value uint64
}

// Stats counts the messages exchanged in a system.
type Stats struct {
	Accesses   uint64
	Hits       uint64
	Acquires   uint64
	Probes     uint64
	Releases   uint64
	Grants     uint64
	Writebacks uint64
	Beats      uint64
}

// System is a coherent cache hierarchy. It is safe for concurrent use;
// operations are applied one at a time.
type System struct {
	lock sync.Mutex

	policyName   string
	root         *node
	mids         []*node
	leaves       []*node
	tables       []Table
	latest       map[uint64]uint64
	stats        Stats
	uncachedXact *coherence.XactIDAllocator
}

func (s *System) collectTables() {
	s.tables = append(s.tables, s.root.managers)

	for _, m := range s.mids {
		s.tables = append(s.tables, m.hier)
	}

	for _, l := range s.leaves {
		s.tables = append(s.tables, l.clients)
	}
}

// PolicyName returns the name of the protocol in use.
func (s *System) PolicyName() string {
	return s.policyName
}

// Policy returns the protocol the leaf caches use.
func (s *System) Policy() coherence.Policy {
	return s.leaves[0].outer.Policy
}

// NumLeaves returns the number of leaf caches.
func (s *System) NumLeaves() int {
	return len(s.leaves)
}

// NumClusters returns the number of mid-level caches.
func (s *System) NumClusters() int {
	return len(s.mids)
}

// Tables returns the line tables of every node, root first.
func (s *System) Tables() []Table {
	return s.tables
}

// AcceptHook registers a hook with every line table.
func (s *System) AcceptHook(hook hooking.Hook) {
	for _, t := range s.tables {
		t.AcceptHook(hook)
	}
}

// Stats returns the message counters.
func (s *System) Stats() Stats {
	s.lock.Lock()
	defer s.lock.Unlock()

	stats := s.stats
	for _, n := range append(append([]*node{}, s.mids...), s.leaves...) {
		stats.Beats += n.link.beats
	}

	return stats
}

func (s *System) leaf(i int) (*node, error) {
	if i < 0 || i >= len(s.leaves) {
		return nil, fmt.Errorf("leaf %d does not exist, there are %d leaves",
			i, len(s.leaves))
	}

	return s.leaves[i], nil
}

func (s *System) mid(i int) (*node, error) {
	if i < 0 || i >= len(s.mids) {
		return nil, fmt.Errorf("cluster %d does not exist, there are %d clusters",
			i, len(s.mids))
	}

	return s.mids[i], nil
}

// Op is a processor command and its operand.
type Op struct {
	Cmd   coherence.MemCmd
	Value uint64
}

// Access performs a processor command at a leaf cache. Reads and atomics
// return the value before the command. Maintenance commands act on the leaf
// cache only.
func (s *System) Access(
	leaf int,
	cmd coherence.MemCmd,
	addr uint64,
	value uint64,
) (AccessResult, error) {
	results, err := s.AccessBurst(leaf, addr, []Op{{Cmd: cmd, Value: value}})
	if err != nil {
		return AccessResult{}, err
	}

	return results[0], nil
}

// AccessBurst performs commands on one line of a leaf cache as if they all
// arrived while the first of them was missing. Commands that the outstanding
// acquire also covers wait for it and do not send their own acquire.
// Results are returned for the commands performed before an error.
func (s *System) AccessBurst(
	leaf int,
	addr uint64,
	ops []Op,
) ([]AccessResult, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	n, err := s.leaf(leaf)
	if err != nil {
		return nil, err
	}

	results := make([]AccessResult, 0, len(ops))

	for i := 0; i < len(ops); {
		cmd := ops[i].Cmd

		switch {
		case cmd.IsCacheControl():
			s.stats.Accesses++

			if err := s.cacheControl(n, cmd, addr); err != nil {
				return results, err
			}

			results = append(results, AccessResult{})
			i++
		case cmd == coherence.CmdNop:
			s.stats.Accesses++
			results = append(results, AccessResult{Hit: true})
			i++
		case n.client(addr).IsHit(cmd):
			s.stats.Accesses++
			s.stats.Hits++

			res, err := s.perform(n, ops[i], addr)
			if err != nil {
				return results, err
			}

			res.Hit = true
			results = append(results, res)
			i++
		default:
			merged, err := s.miss(n, addr, ops[i:])
			if err != nil {
				return results, err
			}

			s.stats.Accesses += uint64(merged)

			for _, op := range ops[i : i+merged] {
				res, err := s.perform(n, op, addr)
				if err != nil {
					return results, err
				}

				results = append(results, res)
			}

			i += merged
		}
	}

	return results, nil
}

// miss acquires the permission the first command needs. The commands right
// after it are merged into the same miss as long as the pending acquire
// covers them. It returns the number of commands the grant serves.
func (s *System) miss(n *node, addr uint64, ops []Op) (int, error) {
	meta := n.client(addr)
	xactID := n.clientXact.Next()

	if _, err := n.mshr.Add(addr, ops[0].Cmd, xactID); err != nil {
		return 0, err
	}

	merged := 1
	for ; merged < len(ops); merged++ {
		cmd := ops[merged].Cmd
		if cmd.IsCacheControl() || cmd == coherence.CmdNop {
			break
		}

		needsAcquire, err := n.mshr.AddSecondary(addr, cmd, meta)
		if err != nil || needsAcquire {
			break
		}
	}

	err := s.acquire(n, ops[0].Cmd, addr, xactID)

	if _, rmErr := n.mshr.Remove(addr); err == nil {
		err = rmErr
	}

	return merged, err
}

// perform applies a command that hits.
func (s *System) perform(n *node, op Op, addr uint64) (AccessResult, error) {
	meta := n.client(addr)
	if !meta.IsHit(op.Cmd) {
		return AccessResult{}, fmt.Errorf(
			"%s line %#x: %s misses in %s after a grant",
			n.name, addr, op.Cmd, meta)
	}

	result := AccessResult{}

	old := n.data[addr]
	if op.Cmd.IsRead() && op.Cmd != coherence.CmdStoreConditional {
		result.Value = old
	}

	if op.Cmd.IsWrite() {
		s.write(n, addr, applyOp(op.Cmd, old, op.Value))
	}

	return result, n.setClient(addr, "Hit", op.Cmd.String(), meta.OnHit(op.Cmd))
}

// Evict drops a line from a leaf cache, writing it back if needed.
func (s *System) Evict(leaf int, addr uint64) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	n, err := s.leaf(leaf)
	if err != nil {
		return err
	}

	return s.cacheControl(n, coherence.CmdFlush, addr)
}

// EvictIntermediate drops a line from a mid-level cache. The line is
// recalled from the leaf caches of the cluster first.
func (s *System) EvictIntermediate(cluster int, addr uint64) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	n, err := s.mid(cluster)
	if err != nil {
		return err
	}

	return s.cacheControl(n, coherence.CmdFlush, addr)
}

// FlushAll recalls a line from every cache into memory.
func (s *System) FlushAll(addr uint64) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	mgr := s.root.manager(addr)
	if !mgr.RequiresProbesOnCmd(coherence.CmdFlush) {
		return nil
	}

	return s.probeChildren(s.root, mgr.MakeProbe(coherence.CmdFlush, addr),
		noClient)
}

// UncachedAccess reads, writes, or atomically updates memory without
// caching the line. Caches holding the line are probed as needed.
func (s *System) UncachedAccess(
	cmd coherence.MemCmd,
	addr uint64,
	value uint64,
) (uint64, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	var t coherence.AcquireType

	switch {
	case cmd == coherence.CmdRead:
		t = coherence.AcquireGet
	case cmd == coherence.CmdWrite:
		t = coherence.AcquirePut
	case cmd.IsAtomic():
		t = coherence.AcquirePutAtomic
	default:
		return 0, fmt.Errorf("%s cannot be performed uncached", cmd)
	}

	acq := coherence.MakeBuiltInAcquire(
		t, s.uncachedXact.Next(), addr, cmd, value)
	acq.ClientID = noClient

	s.stats.Accesses++

	grant, err := s.handleAcquire(s.root, acq)
	if err != nil {
		return 0, err
	}

	return grant.Data, nil
}

// Latest returns the value last written to a line.
func (s *System) Latest(addr uint64) uint64 {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.latest[addr]
}

func (s *System) write(n *node, addr, value uint64) {
	n.data[addr] = value
	s.latest[addr] = value
}
