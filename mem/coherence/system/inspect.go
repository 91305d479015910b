package system

import "github.com/sarchlab/coherence/mem/coherence"

// NodeLine is what one node holds for a line.
type NodeLine struct {
	Name     string
	Parent   string
	ClientID coherence.ClientID
	Leaf     bool

	// Client is nil for the root.
	Client *coherence.ClientMetadata

	// Manager is nil for leaf caches.
	Manager *coherence.ManagerMetadata

	Data    uint64
	HasData bool
}

// LineView is the state of a line across the whole system.
type LineView struct {
	AddrBlock uint64
	Latest    uint64
	Nodes     []NodeLine
}

// Inspect returns the state of a line in every node, root first, then the
// mid-level caches, then the leaf caches.
func (s *System) Inspect(addr uint64) LineView {
	s.lock.Lock()
	defer s.lock.Unlock()

	view := LineView{
		AddrBlock: addr,
		Latest:    s.latest[addr],
	}

	nodes := append([]*node{s.root}, s.mids...)
	nodes = append(nodes, s.leaves...)

	for _, n := range nodes {
		line := NodeLine{
			Name:     n.name,
			ClientID: n.id,
			Leaf:     n.kind == kindLeaf,
		}

		if n.parent != nil {
			line.Parent = n.parent.name
		}

		if n.kind != kindRoot {
			c := n.client(addr)
			line.Client = &c
		}

		if n.kind != kindLeaf {
			m := n.manager(addr)
			line.Manager = &m
		}

		line.Data, line.HasData = n.data[addr]
		if n.kind == kindRoot {
			line.HasData = true
		}

		view.Nodes = append(view.Nodes, line)
	}

	return view
}
