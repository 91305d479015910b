package system

import (
	"encoding/binary"

	"github.com/sarchlab/coherence/mem/coherence"
	"github.com/sarchlab/coherence/mem/coherence/linetable"
	"github.com/sarchlab/coherence/mem/coherence/serializer"
)

const wordBytes = 8

// mshrEntries is the number of misses a leaf cache can have in flight.
// Operations run one at a time, so one is enough.
const mshrEntries = 1

// noClient is the ID of a requester that is not tracked by any directory.
const noClient = coherence.ClientID(-1)

type nodeKind int

const (
	kindRoot nodeKind = iota
	kindMid
	kindLeaf
)

// node is a cache or the root directory. The root only has a manager side,
// leaves only have a client side, and mid-level caches have both.
type node struct {
	name     string
	kind     nodeKind
	id       coherence.ClientID
	parent   *node
	children []*node

	inner *coherence.Config
	outer *coherence.Config

	clients  *linetable.ClientTable
	managers *linetable.ManagerTable
	hier     *linetable.HierarchicalTable

	data        map[uint64]uint64
	clientXact  *coherence.XactIDAllocator
	managerXact *coherence.XactIDAllocator
	link        *link
	mshr        *linetable.MSHR
}

func (n *node) client(addr uint64) coherence.ClientMetadata {
	switch n.kind {
	case kindLeaf:
		return n.clients.Get(addr)
	case kindMid:
		return n.hier.Get(addr).Outer
	default:
		panic("the root has no client side")
	}
}

func (n *node) manager(addr uint64) coherence.ManagerMetadata {
	switch n.kind {
	case kindRoot:
		return n.managers.Get(addr)
	case kindMid:
		return n.hier.Get(addr).Inner
	default:
		panic("a leaf has no manager side")
	}
}

func (n *node) setClient(
	addr uint64,
	event, msg string,
	next coherence.ClientMetadata,
) error {
	var err error

	switch n.kind {
	case kindLeaf:
		_, err = n.clients.Update(addr, event,
			func(coherence.ClientMetadata) (coherence.ClientMetadata, string) {
				return next, msg
			})
	case kindMid:
		_, err = n.hier.Update(addr, event,
			func(m coherence.HierarchicalMetadata) (
				coherence.HierarchicalMetadata, string,
			) {
				return coherence.Compose(m.Inner, next), msg
			})
	default:
		panic("the root has no client side")
	}

	return err
}

func (n *node) setManager(
	addr uint64,
	event, msg string,
	next coherence.ManagerMetadata,
) error {
	var err error

	switch n.kind {
	case kindRoot:
		_, err = n.managers.Update(addr, event,
			func(coherence.ManagerMetadata) (coherence.ManagerMetadata, string) {
				return next, msg
			})
	case kindMid:
		_, err = n.hier.Update(addr, event,
			func(m coherence.HierarchicalMetadata) (
				coherence.HierarchicalMetadata, string,
			) {
				return coherence.Compose(next, m.Outer), msg
			})
	default:
		panic("a leaf has no manager side")
	}

	return err
}

// link moves data words between a node and its parent in beats.
type link struct {
	ser   *serializer.Serializer
	des   *serializer.Deserializer
	beats uint64
}

func (l *link) transfer(data uint64) uint64 {
	payload := make([]byte, wordBytes)
	binary.LittleEndian.PutUint64(payload, data)

	l.ser.Accept(payload)

	for {
		beat, _ := l.ser.Pop()
		l.beats++

		out, done := l.des.Push(beat)
		if done {
			return binary.LittleEndian.Uint64(out)
		}
	}
}

func applyOp(cmd coherence.MemCmd, old, operand uint64) uint64 {
	switch cmd {
	case coherence.CmdAtomicAdd:
		return old + operand
	case coherence.CmdAtomicXor:
		return old ^ operand
	case coherence.CmdAtomicOr:
		return old | operand
	case coherence.CmdAtomicAnd:
		return old & operand
	case coherence.CmdAtomicMin:
		if int64(operand) < int64(old) {
			return operand
		}

		return old
	case coherence.CmdAtomicMax:
		if int64(operand) > int64(old) {
			return operand
		}

		return old
	case coherence.CmdAtomicMinU:
		return min(old, operand)
	case coherence.CmdAtomicMaxU:
		return max(old, operand)
	default:
		return operand
	}
}

func acquireName(p coherence.Describer, a coherence.Acquire) string {
	if a.IsBuiltInType() {
		return coherence.BuiltInAcquireName(a.Type)
	}

	return p.AcquireTypeName(a.Type)
}

func grantName(p coherence.Describer, g coherence.Grant) string {
	if g.IsBuiltInType() {
		return coherence.BuiltInGrantName(g.Type)
	}

	return p.GrantTypeName(g.Type)
}
