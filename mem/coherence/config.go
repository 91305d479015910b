package coherence

import "fmt"

// Config binds a coherence policy to one side of a link. The name of a config
// identifies the transaction-ID namespace of the link, so that a cache in the
// middle of the hierarchy can use different IDs toward each side.
type Config struct {
	Name              string
	Policy            Policy
	ClientXactIDBits  int
	ManagerXactIDBits int
	DataBeats         int
}

// MaxClientXactID returns the largest client transaction ID on the link.
func (c *Config) MaxClientXactID() uint64 {
	return uint64(1)<<uint(c.ClientXactIDBits) - 1
}

// MaxManagerXactID returns the largest manager transaction ID on the link.
func (c *Config) MaxManagerXactID() uint64 {
	return uint64(1)<<uint(c.ManagerXactIDBits) - 1
}

// NewClientXactIDAllocator creates an allocator that hands out client
// transaction IDs of the link.
func (c *Config) NewClientXactIDAllocator() *XactIDAllocator {
	return &XactIDAllocator{max: c.MaxClientXactID()}
}

// NewManagerXactIDAllocator creates an allocator that hands out manager
// transaction IDs of the link.
func (c *Config) NewManagerXactIDAllocator() *XactIDAllocator {
	return &XactIDAllocator{max: c.MaxManagerXactID()}
}

// XactIDAllocator generates transaction IDs in a round-robin manner. It is
// not safe for concurrent use.
type XactIDAllocator struct {
	max  uint64
	next uint64
}

// Next returns the next transaction ID.
func (a *XactIDAllocator) Next() uint64 {
	id := a.next

	if a.next == a.max {
		a.next = 0
	} else {
		a.next++
	}

	return id
}

// ConfigBuilder can build Configs.
type ConfigBuilder struct {
	name              string
	policy            Policy
	clientXactIDBits  int
	managerXactIDBits int
	dataBeats         int
}

// MakeConfigBuilder creates a ConfigBuilder with default widths.
func MakeConfigBuilder() ConfigBuilder {
	return ConfigBuilder{
		clientXactIDBits:  6,
		managerXactIDBits: 6,
		dataBeats:         4,
	}
}

// WithName sets the name of the link side.
func (b ConfigBuilder) WithName(name string) ConfigBuilder {
	b.name = name
	return b
}

// WithPolicy sets the coherence policy.
func (b ConfigBuilder) WithPolicy(policy Policy) ConfigBuilder {
	b.policy = policy
	return b
}

// WithClientXactIDBits sets the width of client transaction IDs.
func (b ConfigBuilder) WithClientXactIDBits(n int) ConfigBuilder {
	b.clientXactIDBits = n
	return b
}

// WithManagerXactIDBits sets the width of manager transaction IDs.
func (b ConfigBuilder) WithManagerXactIDBits(n int) ConfigBuilder {
	b.managerXactIDBits = n
	return b
}

// WithDataBeats sets the number of beats a block is transferred in.
func (b ConfigBuilder) WithDataBeats(n int) ConfigBuilder {
	b.dataBeats = n
	return b
}

// Build creates the Config. It panics if the configuration is invalid.
func (b ConfigBuilder) Build() *Config {
	b.mustBeValid()

	return &Config{
		Name:              b.name,
		Policy:            b.policy,
		ClientXactIDBits:  b.clientXactIDBits,
		ManagerXactIDBits: b.managerXactIDBits,
		DataBeats:         b.dataBeats,
	}
}

func (b ConfigBuilder) mustBeValid() {
	if b.name == "" {
		panic("config name must not be empty")
	}

	if b.policy == nil {
		panic(fmt.Sprintf("config %s: policy must be set", b.name))
	}

	if b.clientXactIDBits < 1 || b.clientXactIDBits > 32 {
		panic(fmt.Sprintf(
			"config %s: client xact ID bits must be in [1, 32], got %d",
			b.name, b.clientXactIDBits))
	}

	if b.managerXactIDBits < 1 || b.managerXactIDBits > 32 {
		panic(fmt.Sprintf(
			"config %s: manager xact ID bits must be in [1, 32], got %d",
			b.name, b.managerXactIDBits))
	}

	if b.dataBeats < 1 {
		panic(fmt.Sprintf(
			"config %s: data beats must be positive, got %d",
			b.name, b.dataBeats))
	}
}

// HierarchicalConfig holds the configs of both sides of a cache in the
// middle of the hierarchy.
type HierarchicalConfig struct {
	Inner *Config
	Outer *Config
}

// MakeHierarchicalConfig pairs an inner and an outer config. It panics if
// either is missing or if both use the same transaction-ID namespace.
func MakeHierarchicalConfig(inner, outer *Config) HierarchicalConfig {
	if inner == nil || outer == nil {
		panic("both inner and outer configs must be set")
	}

	if inner.Name == outer.Name {
		panic(fmt.Sprintf(
			"inner and outer configs must use different namespaces, "+
				"both are named %s", inner.Name))
	}

	return HierarchicalConfig{Inner: inner, Outer: outer}
}
