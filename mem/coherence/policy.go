// Package coherence provides the per-line coherence metadata of a cache
// hierarchy. ClientMetadata is the permission a cache holds on a line,
// ManagerMetadata is what a directory knows about the line's sharers, and
// HierarchicalMetadata pairs the two for a cache in the middle of the
// hierarchy.
//
// Metadata values are immutable. Every event returns a new value together
// with, when needed, the message to send. What the states mean, and which
// message subtypes are used, is decided by an injected Policy.
package coherence

// ClientPolicy is the part of a coherence protocol that concerns the client
// side of a link.
type ClientPolicy interface {
	// ClientStateWidth returns the number of bits needed to store a client
	// state.
	ClientStateWidth() int

	// ClientStates lists every state a client can be in.
	ClientStates() []ClientState

	// IsValid returns true if the state grants any permission.
	IsValid(s ClientState) bool

	// IsHit returns true if the command can be performed with the state
	// without contacting the manager.
	IsHit(cmd MemCmd, s ClientState) bool

	// RequiresAcquireOnSecondaryMiss returns true if a second command that
	// targets a line already missing for the first command needs its own
	// acquire.
	RequiresAcquireOnSecondaryMiss(first, second MemCmd, s ClientState) bool

	// RequiresReleaseOnCacheControl returns true if a maintenance command on
	// the state must send a release.
	RequiresReleaseOnCacheControl(cmd MemCmd, s ClientState) bool

	AcquireType(cmd MemCmd, s ClientState) AcquireType
	ReleaseType(cmd MemCmd, s ClientState) ReleaseType
	ReleaseTypeOnProbe(p Probe, s ClientState) ReleaseType

	ClientStateOnReset() ClientState
	ClientStateOnHit(cmd MemCmd, s ClientState) ClientState
	ClientStateOnCacheControl(cmd MemCmd, s ClientState) ClientState
	ClientStateOnGrant(g Grant, pending MemCmd, s ClientState) ClientState
	ClientStateOnProbe(p Probe, s ClientState) ClientState
}

// ManagerPolicy is the part of a coherence protocol that concerns the
// manager side of a link.
type ManagerPolicy interface {
	// Directory returns how sharers are encoded.
	Directory() Directory

	// RequiresProbes returns true if the sharers must be probed before the
	// acquire can be granted.
	RequiresProbes(a Acquire, sharers SharerSet) bool

	// RequiresProbesOnCmd returns true if the sharers must be probed before
	// the manager performs a command locally.
	RequiresProbesOnCmd(cmd MemCmd, sharers SharerSet) bool

	ProbeType(cmd MemCmd, sharers SharerSet) ProbeType
	ProbeTypeOnAcquire(a Acquire, sharers SharerSet) ProbeType
	GrantType(a Acquire, sharers SharerSet) GrantType
	ExclusiveGrantType() GrantType

	SharersOnReset() SharerSet
	SharersOnRelease(r Release, src ClientID, sharers SharerSet) SharerSet
	SharersOnGrant(g Grant, dst ClientID, sharers SharerSet) SharerSet
}

// Describer names the states and message subtypes of a protocol and tells
// which messages carry data.
type Describer interface {
	Name() string

	StateName(s ClientState) string
	AcquireTypeName(t AcquireType) string
	ProbeTypeName(t ProbeType) string
	ReleaseTypeName(t ReleaseType) string
	GrantTypeName(t GrantType) string

	ProbeTypes() []ProbeType
	GrantTypes() []GrantType

	ReleaseHasData(t ReleaseType) bool
	GrantHasData(g Grant) bool
}

// Policy is a complete coherence protocol.
type Policy interface {
	ClientPolicy
	ManagerPolicy
	Describer
}
