package protocols

import "github.com/sarchlab/coherence/mem/coherence"

// MEI client states.
const (
	MEIInvalid coherence.ClientState = iota
	MEIValid
)

// MEI is a protocol with a single valid state. A valid line is always
// readable, writable, and dirty, so every acquire asks for exclusivity.
type MEI struct {
	base
}

// NewMEI creates an MEI protocol that tracks sharers with the directory.
func NewMEI(dir coherence.Directory) *MEI {
	return &MEI{base: base{
		name:       "MEI",
		dir:        dir,
		stateNames: []string{"Invalid", "Valid"},
		probes:     []coherence.ProbeType{ProbeInvalidate, ProbeCopy},
		grants:     []coherence.GrantType{GrantExclusive},
	}}
}

// IsValid reports whether the line is held.
func (p *MEI) IsValid(s coherence.ClientState) bool {
	return s != MEIInvalid
}

// IsHit reports whether the line is held. A valid MEI line serves every command.
func (p *MEI) IsHit(_ coherence.MemCmd, s coherence.ClientState) bool {
	return p.IsValid(s)
}

// RequiresReleaseOnCacheControl is true for every maintenance command on a
// valid line, since a valid line is always dirty.
func (p *MEI) RequiresReleaseOnCacheControl(
	cmd coherence.MemCmd,
	s coherence.ClientState,
) bool {
	return cmd.IsCacheControl() && p.IsValid(s)
}

// AcquireType always asks for exclusivity.
func (p *MEI) AcquireType(
	_ coherence.MemCmd,
	_ coherence.ClientState,
) coherence.AcquireType {
	return AcquireExclusive
}

// ReleaseType returns the release a maintenance command sends. Valid lines
// always carry data.
func (p *MEI) ReleaseType(
	cmd coherence.MemCmd,
	s coherence.ClientState,
) coherence.ReleaseType {
	return releaseType(cmd, p.IsValid(s), false)
}

// ReleaseTypeOnProbe returns the answer to a probe. It panics on a probe type
// this package does not define.
func (p *MEI) ReleaseTypeOnProbe(
	probe coherence.Probe,
	s coherence.ClientState,
) coherence.ReleaseType {
	cmd := cmdOfProbe(probe)
	return releaseType(cmd, p.IsValid(s), false)
}

// ClientStateOnReset returns Invalid.
func (p *MEI) ClientStateOnReset() coherence.ClientState {
	return MEIInvalid
}

// ClientStateOnHit keeps the state.
func (p *MEI) ClientStateOnHit(
	_ coherence.MemCmd,
	s coherence.ClientState,
) coherence.ClientState {
	return s
}

// ClientStateOnCacheControl drops the line on Flush. Produce and Clean keep
// it, as MEI has no state to downgrade to.
func (p *MEI) ClientStateOnCacheControl(
	cmd coherence.MemCmd,
	s coherence.ClientState,
) coherence.ClientState {
	if cmd == coherence.CmdFlush {
		return MEIInvalid
	}

	return s
}

// ClientStateOnGrant makes the line valid, except for built-in grants, which
// leave nothing cached.
func (p *MEI) ClientStateOnGrant(
	g coherence.Grant,
	_ coherence.MemCmd,
	_ coherence.ClientState,
) coherence.ClientState {
	if g.IsBuiltInType() {
		return MEIInvalid
	}

	return MEIValid
}

// ClientStateOnProbe drops the line on an invalidating probe.
func (p *MEI) ClientStateOnProbe(
	probe coherence.Probe,
	s coherence.ClientState,
) coherence.ClientState {
	if probe.Is(ProbeInvalidate) {
		return MEIInvalid
	}

	return s
}

// RequiresProbes is true whenever anyone else may hold the line, as every
// holder may be writing.
func (p *MEI) RequiresProbes(
	_ coherence.Acquire,
	sharers coherence.SharerSet,
) bool {
	return !p.dir.None(sharers)
}

// ProbeType returns the probe for a manager-side maintenance command. There
// is no downgrade probe.
func (p *MEI) ProbeType(
	cmd coherence.MemCmd,
	_ coherence.SharerSet,
) coherence.ProbeType {
	return probeTypeOnCmd(cmd, false)
}

// ProbeTypeOnAcquire invalidates other holders for custom acquires.
func (p *MEI) ProbeTypeOnAcquire(
	a coherence.Acquire,
	_ coherence.SharerSet,
) coherence.ProbeType {
	if a.IsBuiltInType() {
		return p.builtInProbeType(a)
	}

	return ProbeInvalidate
}

// GrantType always grants exclusivity.
func (p *MEI) GrantType(
	_ coherence.Acquire,
	_ coherence.SharerSet,
) coherence.GrantType {
	return GrantExclusive
}
