package coherence

// HierarchicalMetadata is the state of a line in a cache that is a manager
// toward the inner caches and a client toward the outer level. It has no
// transitions of its own; transition Inner and Outer and compose again.
type HierarchicalMetadata struct {
	Inner ManagerMetadata
	Outer ClientMetadata
}

// Compose pairs an inner and an outer half.
func Compose(inner ManagerMetadata, outer ClientMetadata) HierarchicalMetadata {
	return HierarchicalMetadata{Inner: inner, Outer: outer}
}

// HierarchicalMetadataOnReset returns the state every line starts with.
func HierarchicalMetadataOnReset(
	config HierarchicalConfig,
) HierarchicalMetadata {
	return Compose(
		ManagerMetadataOnReset(config.Inner),
		ClientMetadataOnReset(config.Outer),
	)
}

// Equals returns true if both halves are equal.
func (m HierarchicalMetadata) Equals(rhs HierarchicalMetadata) bool {
	return m.Inner.Equals(rhs.Inner) && m.Outer.Equals(rhs.Outer)
}

// NotEquals returns true if either half differs.
func (m HierarchicalMetadata) NotEquals(rhs HierarchicalMetadata) bool {
	return !m.Equals(rhs)
}

func (m HierarchicalMetadata) String() string {
	return m.Inner.String() + "/" + m.Outer.String()
}
