package system

import (
	"fmt"

	"github.com/sarchlab/coherence/mem/coherence"
)

// acquire asks the parent of n for the permission a command needs.
func (s *System) acquire(
	n *node,
	cmd coherence.MemCmd,
	addr uint64,
	xactID uint64,
) error {
	meta := n.client(addr)
	acq := meta.MakeAcquire(xactID, addr, cmd)
	acq.ClientID = n.id

	s.stats.Acquires++

	grant, err := s.handleAcquire(n.parent, acq)
	if err != nil {
		return err
	}

	if grant.Dst != n.id || grant.ClientXactID != acq.ClientXactID {
		return fmt.Errorf("%s line %#x: grant for client %d xact %d "+
			"does not match acquire of client %d xact %d",
			n.name, addr, grant.Dst, grant.ClientXactID, n.id, acq.ClientXactID)
	}

	policy := n.outer.Policy
	if policy.GrantHasData(grant) {
		n.data[addr] = n.link.transfer(grant.Data)
	}

	return n.setClient(addr, "Grant", grantName(policy, grant),
		meta.OnGrant(grant, cmd))
}

// handleAcquire serves an acquire at a manager node.
func (s *System) handleAcquire(
	m *node,
	acq coherence.Acquire,
) (coherence.Grant, error) {
	addr := acq.AddrBlock
	policy := m.inner.Policy

	mgr := m.manager(addr)
	if mgr.RequiresProbes(acq) {
		probe := mgr.MakeProbeForAcquire(acq)
		if err := s.probeChildren(m, probe, acq.ClientID); err != nil {
			return coherence.Grant{}, err
		}

		mgr = m.manager(addr)
	}

	grant := mgr.MakeGrant(acq, m.managerXact.Next(), 0, 0)

	if m.kind == kindMid {
		if err := s.ensureOuterPermission(m, acq, grant); err != nil {
			return coherence.Grant{}, err
		}
	}

	grant.Data = s.serveData(m, acq)

	s.stats.Grants++

	err := m.setManager(addr, "Grant",
		acquireName(policy, acq)+" -> "+grantName(policy, grant),
		mgr.OnGrant(grant, acq.ClientID))

	return grant, err
}

// ensureOuterPermission makes sure that a mid-level cache holds at least the
// permission it is about to grant to one of its clients.
func (s *System) ensureOuterPermission(
	m *node,
	acq coherence.Acquire,
	grant coherence.Grant,
) error {
	need := coherence.CmdPrefetchRead
	if grantsWrite(m.inner.Policy, acq, grant) {
		need = coherence.CmdPrefetchWrite
	}

	if m.client(acq.AddrBlock).IsHit(need) {
		return nil
	}

	return s.acquire(m, need, acq.AddrBlock, m.clientXact.Next())
}

func grantsWrite(
	p coherence.Policy,
	acq coherence.Acquire,
	grant coherence.Grant,
) bool {
	if acq.IsBuiltInType() {
		return acq.HasData()
	}

	state := p.ClientStateOnGrant(grant, acq.OpCode, p.ClientStateOnReset())

	return p.IsHit(coherence.CmdWrite, state)
}

// serveData returns the data that goes with the grant. Built-in puts update
// the manager's copy.
func (s *System) serveData(m *node, acq coherence.Acquire) uint64 {
	addr := acq.AddrBlock
	old := m.data[addr]

	if !acq.IsBuiltInType() {
		return old
	}

	switch {
	case acq.IsBuiltIn(coherence.AcquirePut),
		acq.IsBuiltIn(coherence.AcquirePutBlock):
		s.write(m, addr, acq.Data)
		return 0
	case acq.IsBuiltIn(coherence.AcquirePutAtomic):
		s.write(m, addr, applyOp(acq.OpCode, old, acq.Data))
		return old
	default:
		return old
	}
}

// probeChildren sends a probe to every client the directory of m names,
// except one, and collects the releases.
func (s *System) probeChildren(
	m *node,
	probe coherence.Probe,
	except coherence.ClientID,
) error {
	addr := probe.AddrBlock
	policy := m.inner.Policy

	for _, id := range m.manager(addr).ProbeTargets() {
		if id == except {
			continue
		}

		child := m.children[id]

		s.stats.Probes++

		rel, err := s.handleProbe(child, probe)
		if err != nil {
			return err
		}

		s.stats.Releases++

		if policy.ReleaseHasData(rel.Type) {
			if err := s.absorb(m, addr, child.link.transfer(rel.Data)); err != nil {
				return err
			}
		}

		mgr := m.manager(addr)
		err = m.setManager(addr, "Release", policy.ReleaseTypeName(rel.Type),
			mgr.OnRelease(rel, id))
		if err != nil {
			return err
		}
	}

	return nil
}

// handleProbe answers a probe at a client node. A mid-level cache passes the
// probe on to its own clients first.
func (s *System) handleProbe(
	c *node,
	probe coherence.Probe,
) (coherence.Release, error) {
	addr := probe.AddrBlock

	if c.kind == kindMid {
		if err := s.recallInner(c, probe); err != nil {
			return coherence.Release{}, err
		}
	}

	policy := c.outer.Policy
	meta := c.client(addr)

	rel := meta.MakeRelease(probe, c.clientXact.Next(), 0, c.data[addr])
	rel.ClientID = c.id

	if !policy.ReleaseHasData(rel.Type) {
		rel.Data = 0
	}

	next := meta.OnProbe(probe)
	if !next.IsValid() {
		delete(c.data, addr)
	}

	err := c.setClient(addr, "Probe",
		policy.ProbeTypeName(probe.Type)+" -> "+policy.ReleaseTypeName(rel.Type),
		next)

	return rel, err
}

// recallInner takes from the clients of a mid-level cache whatever the cache
// is about to lose because of a probe from its parent.
func (s *System) recallInner(c *node, probe coherence.Probe) error {
	addr := probe.AddrBlock
	outer := c.client(addr)
	next := outer.OnProbe(probe)

	cmd := coherence.CmdClean

	switch {
	case !next.IsValid():
		cmd = coherence.CmdFlush
	case outer.IsHit(coherence.CmdWrite) && !next.IsHit(coherence.CmdWrite):
		cmd = coherence.CmdProduce
	}

	mgr := c.manager(addr)
	if !mgr.RequiresProbesOnCmd(cmd) {
		return nil
	}

	return s.probeChildren(c, mgr.MakeProbe(cmd, addr), noClient)
}

// absorb stores data released by a client. A mid-level cache now holds data
// newer than its parent, so it marks its line dirty.
func (s *System) absorb(m *node, addr, data uint64) error {
	m.data[addr] = data

	if m.kind != kindMid {
		return nil
	}

	outer := m.client(addr)

	return m.setClient(addr, "Hit", "Writeback", outer.OnHit(coherence.CmdWrite))
}

// cacheControl performs a maintenance command on a line of a client node.
func (s *System) cacheControl(
	n *node,
	cmd coherence.MemCmd,
	addr uint64,
) error {
	if n.kind == kindMid && cmd == coherence.CmdFlush {
		mgr := n.manager(addr)
		if mgr.RequiresProbesOnVoluntaryWriteback() {
			err := s.probeChildren(n,
				mgr.MakeProbeForVoluntaryWriteback(addr), noClient)
			if err != nil {
				return err
			}
		}
	}

	meta := n.client(addr)

	if meta.RequiresReleaseOnCacheControl(cmd) {
		rel := meta.MakeVoluntaryRelease(
			cmd, n.clientXact.Next(), addr, 0, n.data[addr])
		rel.ClientID = n.id

		s.stats.Writebacks++

		grant, err := s.handleVoluntaryRelease(n.parent, n, rel)
		if err != nil {
			return err
		}

		if !grant.IsVoluntaryAck() || grant.ClientXactID != rel.ClientXactID {
			return fmt.Errorf("%s line %#x: release was not acknowledged",
				n.name, addr)
		}
	}

	next := meta.OnCacheControl(cmd)
	if !next.IsValid() {
		delete(n.data, addr)
	}

	return n.setClient(addr, "CacheControl", cmd.String(), next)
}

func (s *System) handleVoluntaryRelease(
	m *node,
	src *node,
	rel coherence.Release,
) (coherence.Grant, error) {
	addr := rel.AddrBlock
	policy := m.inner.Policy

	if policy.ReleaseHasData(rel.Type) {
		if err := s.absorb(m, addr, src.link.transfer(rel.Data)); err != nil {
			return coherence.Grant{}, err
		}
	}

	mgr := m.manager(addr)
	grant := mgr.MakeGrantForRelease(rel, m.managerXact.Next())

	err := m.setManager(addr, "Release", policy.ReleaseTypeName(rel.Type),
		mgr.OnRelease(rel, rel.ClientID))

	return grant, err
}
