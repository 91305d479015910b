package system

import (
	"fmt"

	"github.com/sarchlab/coherence/mem/coherence"
	"github.com/sarchlab/coherence/mem/coherence/linetable"
	"github.com/sarchlab/coherence/mem/coherence/protocols"
	"github.com/sarchlab/coherence/mem/coherence/serializer"
	"github.com/sarchlab/coherence/sim/id"
)

// A Builder can build coherence systems.
type Builder struct {
	policy      string
	directory   string
	numClients  int
	numClusters int
	dataBeats   int
	idGen       id.IDGenerator
}

// MakeBuilder creates a builder for a flat MSI system with 4 clients and a
// full directory.
func MakeBuilder() Builder {
	return Builder{
		policy:     "msi",
		directory:  "full",
		numClients: 4,
		dataBeats:  4,
	}
}

// WithPolicy sets the protocol by name, see protocols.Names.
func (b Builder) WithPolicy(name string) Builder {
	b.policy = name
	return b
}

// WithDirectory sets the directory representation, "full" or "null".
func (b Builder) WithDirectory(name string) Builder {
	b.directory = name
	return b
}

// WithNumClients sets the number of leaf caches. With clusters, it is the
// number of leaf caches in each cluster.
func (b Builder) WithNumClients(n int) Builder {
	b.numClients = n
	return b
}

// WithNumClusters sets the number of mid-level caches. With 0 clusters, the
// leaf caches talk to the root directly.
func (b Builder) WithNumClusters(n int) Builder {
	b.numClusters = n
	return b
}

// WithDataBeats sets the number of beats a data word is split into on every
// link. It must divide 8.
func (b Builder) WithDataBeats(n int) Builder {
	b.dataBeats = n
	return b
}

// WithIDGenerator sets the generator of transition IDs.
func (b Builder) WithIDGenerator(g id.IDGenerator) Builder {
	b.idGen = g
	return b
}

func (b Builder) mustBeValid() {
	if b.numClients < 1 || b.numClients > coherence.MaxClients {
		panic(fmt.Sprintf("number of clients must be in [1, %d], got %d",
			coherence.MaxClients, b.numClients))
	}

	if b.numClusters < 0 || b.numClusters > coherence.MaxClients {
		panic(fmt.Sprintf("number of clusters must be in [0, %d], got %d",
			coherence.MaxClients, b.numClusters))
	}
}

func (b Builder) linkConfig(name string, numClients int) *coherence.Config {
	dir, err := protocols.NewDirectory(b.directory, numClients)
	if err != nil {
		panic(err)
	}

	policy, err := protocols.New(b.policy, dir)
	if err != nil {
		panic(err)
	}

	return coherence.MakeConfigBuilder().
		WithName(name).
		WithPolicy(policy).
		WithDataBeats(b.dataBeats).
		Build()
}

// Build creates the system. It panics if the configuration is invalid.
func (b Builder) Build() *System {
	b.mustBeValid()

	if b.idGen == nil {
		b.idGen = id.NewIDGenerator()
	}

	s := &System{
		latest: make(map[uint64]uint64),
	}

	numRootClients := b.numClients
	if b.numClusters > 0 {
		numRootClients = b.numClusters
	}

	memConfig := b.linkConfig("mem", numRootClients)
	s.root = b.buildRoot(memConfig)
	s.uncachedXact = memConfig.NewClientXactIDAllocator()
	s.policyName = memConfig.Policy.Name()

	if b.numClusters == 0 {
		for i := 0; i < b.numClients; i++ {
			s.leaves = append(s.leaves, b.buildLeaf(s.root, i, i, memConfig))
		}

		s.collectTables()

		return s
	}

	l2Config := b.linkConfig("l2", b.numClients)
	hierConfig := coherence.MakeHierarchicalConfig(l2Config, memConfig)

	for c := 0; c < b.numClusters; c++ {
		mid := b.buildMid(s.root, c, hierConfig)
		s.mids = append(s.mids, mid)

		for i := 0; i < b.numClients; i++ {
			leaf := b.buildLeaf(mid, i, c*b.numClients+i, l2Config)
			s.leaves = append(s.leaves, leaf)
		}
	}

	s.collectTables()

	return s
}

func (b Builder) buildRoot(config *coherence.Config) *node {
	n := &node{
		name:        "Root",
		kind:        kindRoot,
		id:          noClient,
		inner:       config,
		data:        make(map[uint64]uint64),
		managerXact: config.NewManagerXactIDAllocator(),
	}
	n.managers = linetable.NewManagerTable(n.name, config, b.idGen)

	return n
}

func (b Builder) buildMid(
	parent *node,
	index int,
	config coherence.HierarchicalConfig,
) *node {
	n := &node{
		name:        fmt.Sprintf("L2[%d]", index),
		kind:        kindMid,
		id:          coherence.ClientID(index),
		parent:      parent,
		inner:       config.Inner,
		outer:       config.Outer,
		data:        make(map[uint64]uint64),
		clientXact:  config.Outer.NewClientXactIDAllocator(),
		managerXact: config.Inner.NewManagerXactIDAllocator(),
		link:        b.buildLink(config.Outer),
	}
	n.hier = linetable.NewHierarchicalTable(n.name, config, b.idGen)
	parent.children = append(parent.children, n)

	return n
}

func (b Builder) buildLeaf(
	parent *node,
	index int,
	globalIndex int,
	config *coherence.Config,
) *node {
	n := &node{
		name:       fmt.Sprintf("L1[%d]", globalIndex),
		kind:       kindLeaf,
		id:         coherence.ClientID(index),
		parent:     parent,
		outer:      config,
		data:       make(map[uint64]uint64),
		clientXact: config.NewClientXactIDAllocator(),
		link:       b.buildLink(config),
		mshr:       linetable.NewMSHR(mshrEntries),
	}
	n.clients = linetable.NewClientTable(n.name, config, b.idGen)
	parent.children = append(parent.children, n)

	return n
}

func (b Builder) buildLink(config *coherence.Config) *link {
	sb := serializer.MakeBuilder().
		WithByteSize(wordBytes).
		WithNumBeats(config.DataBeats)

	return &link{
		ser: sb.Build(),
		des: sb.BuildDeserializer(),
	}
}
