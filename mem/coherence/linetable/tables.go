package linetable

import (
	"github.com/sarchlab/coherence/mem/coherence"
	"github.com/sarchlab/coherence/sim/id"
)

// ClientTable holds the permissions of a client cache.
type ClientTable = Table[coherence.ClientMetadata]

// ManagerTable holds the sharers a directory tracks.
type ManagerTable = Table[coherence.ManagerMetadata]

// HierarchicalTable holds the state of a cache in the middle of the
// hierarchy.
type HierarchicalTable = Table[coherence.HierarchicalMetadata]

// NewClientTable creates a table of client metadata bound to the config.
func NewClientTable(
	name string,
	config *coherence.Config,
	idGen id.IDGenerator,
) *ClientTable {
	return New(name, func() coherence.ClientMetadata {
		return coherence.ClientMetadataOnReset(config)
	}, idGen)
}

// NewManagerTable creates a table of manager metadata bound to the config.
func NewManagerTable(
	name string,
	config *coherence.Config,
	idGen id.IDGenerator,
) *ManagerTable {
	return New(name, func() coherence.ManagerMetadata {
		return coherence.ManagerMetadataOnReset(config)
	}, idGen)
}

// NewHierarchicalTable creates a table of hierarchical metadata bound to
// both configs.
func NewHierarchicalTable(
	name string,
	config coherence.HierarchicalConfig,
	idGen id.IDGenerator,
) *HierarchicalTable {
	return New(name, func() coherence.HierarchicalMetadata {
		return coherence.HierarchicalMetadataOnReset(config)
	}, idGen)
}
