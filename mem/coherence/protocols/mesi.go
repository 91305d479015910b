package protocols

import "github.com/sarchlab/coherence/mem/coherence"

// MESI client states.
const (
	MESIInvalid coherence.ClientState = iota
	MESIShared
	MESIExclusiveClean
	MESIExclusiveDirty
)

// MESI extends MSI with a clean exclusive state. A reader that finds no other
// sharer gets the line exclusively and can later write it without asking.
type MESI struct {
	base
}

// NewMESI creates a MESI protocol that tracks sharers with the directory.
func NewMESI(dir coherence.Directory) *MESI {
	return &MESI{base: base{
		name: "MESI",
		dir:  dir,
		stateNames: []string{
			"Invalid", "Shared", "ExclusiveClean", "ExclusiveDirty",
		},
		probes: []coherence.ProbeType{
			ProbeInvalidate, ProbeDowngrade, ProbeCopy,
		},
		grants: []coherence.GrantType{
			GrantShared, GrantExclusive, GrantExclusiveAck,
		},
	}}
}

// IsValid reports whether the line is in any state but Invalid.
func (p *MESI) IsValid(s coherence.ClientState) bool {
	return s != MESIInvalid
}

func (p *MESI) writable(s coherence.ClientState) bool {
	return isOneOf(s, MESIExclusiveClean, MESIExclusiveDirty)
}

// IsHit requires one of the exclusive states for write intents.
func (p *MESI) IsHit(cmd coherence.MemCmd, s coherence.ClientState) bool {
	if cmd.IsWriteIntent() {
		return p.writable(s)
	}

	return p.IsValid(s)
}

// RequiresReleaseOnCacheControl is true when a maintenance command finds the
// line ExclusiveDirty.
func (p *MESI) RequiresReleaseOnCacheControl(
	cmd coherence.MemCmd,
	s coherence.ClientState,
) bool {
	return cmd.IsCacheControl() && s == MESIExclusiveDirty
}

// AcquireType asks for exclusivity on write intents.
func (p *MESI) AcquireType(
	cmd coherence.MemCmd,
	_ coherence.ClientState,
) coherence.AcquireType {
	return pick(cmd.IsWriteIntent(), AcquireExclusive, AcquireShared)
}

// ReleaseType returns the release a maintenance command sends. Only
// ExclusiveDirty lines carry data.
func (p *MESI) ReleaseType(
	cmd coherence.MemCmd,
	s coherence.ClientState,
) coherence.ReleaseType {
	return releaseType(cmd, s == MESIExclusiveDirty, true)
}

// ReleaseTypeOnProbe returns the answer to a probe. It panics on a probe type
// this package does not define.
func (p *MESI) ReleaseTypeOnProbe(
	probe coherence.Probe,
	s coherence.ClientState,
) coherence.ReleaseType {
	cmd := cmdOfProbe(probe)
	return releaseType(cmd, s == MESIExclusiveDirty, true)
}

// ClientStateOnReset returns Invalid.
func (p *MESI) ClientStateOnReset() coherence.ClientState {
	return MESIInvalid
}

// ClientStateOnHit marks the line ExclusiveDirty on writes.
func (p *MESI) ClientStateOnHit(
	cmd coherence.MemCmd,
	s coherence.ClientState,
) coherence.ClientState {
	if cmd.IsWrite() {
		return MESIExclusiveDirty
	}

	return s
}

// ClientStateOnCacheControl drops the line on Flush, makes an exclusive line
// Shared on Produce, and cleans a dirty line on Clean.
func (p *MESI) ClientStateOnCacheControl(
	cmd coherence.MemCmd,
	s coherence.ClientState,
) coherence.ClientState {
	switch {
	case cmd == coherence.CmdFlush:
		return MESIInvalid
	case cmd == coherence.CmdProduce && p.writable(s):
		return MESIShared
	case cmd == coherence.CmdClean && s == MESIExclusiveDirty:
		return MESIExclusiveClean
	default:
		return s
	}
}

// ClientStateOnGrant returns Shared for a shared grant. An exclusive grant
// gives ExclusiveDirty when the pending command writes and ExclusiveClean
// otherwise.
func (p *MESI) ClientStateOnGrant(
	g coherence.Grant,
	pending coherence.MemCmd,
	_ coherence.ClientState,
) coherence.ClientState {
	switch {
	case g.IsBuiltInType():
		return MESIInvalid
	case g.Is(GrantShared):
		return MESIShared
	case g.Is(GrantExclusive):
		return pick(pending.IsWrite(), MESIExclusiveDirty, MESIExclusiveClean)
	default:
		return MESIExclusiveDirty
	}
}

// ClientStateOnProbe drops or downgrades the line as the probe asks.
func (p *MESI) ClientStateOnProbe(
	probe coherence.Probe,
	s coherence.ClientState,
) coherence.ClientState {
	switch probe.Type {
	case ProbeInvalidate:
		return MESIInvalid
	case ProbeDowngrade:
		return pick(p.IsValid(s), MESIShared, MESIInvalid)
	default:
		return s
	}
}

// RequiresProbes behaves as in MSI.
func (p *MESI) RequiresProbes(
	a coherence.Acquire,
	sharers coherence.SharerSet,
) bool {
	return requiresProbes(p.dir, a, sharers)
}

// ProbeType returns the probe for a manager-side maintenance command.
func (p *MESI) ProbeType(
	cmd coherence.MemCmd,
	_ coherence.SharerSet,
) coherence.ProbeType {
	return probeTypeOnCmd(cmd, true)
}

// ProbeTypeOnAcquire behaves as in MSI.
func (p *MESI) ProbeTypeOnAcquire(
	a coherence.Acquire,
	_ coherence.SharerSet,
) coherence.ProbeType {
	return probeTypeOnAcquire(p.base, a)
}

// GrantType hands a reader the line exclusively when nobody else holds it.
func (p *MESI) GrantType(
	a coherence.Acquire,
	sharers coherence.SharerSet,
) coherence.GrantType {
	if a.Is(AcquireShared) && !p.dir.None(sharers) {
		return GrantShared
	}

	return GrantExclusive
}
