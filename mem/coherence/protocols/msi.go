package protocols

import "github.com/sarchlab/coherence/mem/coherence"

// MSI client states.
const (
	MSIInvalid coherence.ClientState = iota
	MSIShared
	MSIModified
)

// MSI lets many clients read a line while one client at most may write it.
type MSI struct {
	base
}

// NewMSI creates an MSI protocol that tracks sharers with the directory.
func NewMSI(dir coherence.Directory) *MSI {
	return &MSI{base: base{
		name:       "MSI",
		dir:        dir,
		stateNames: []string{"Invalid", "Shared", "Modified"},
		probes: []coherence.ProbeType{
			ProbeInvalidate, ProbeDowngrade, ProbeCopy,
		},
		grants: []coherence.GrantType{
			GrantShared, GrantExclusive, GrantExclusiveAck,
		},
	}}
}

// IsValid reports whether the line is Shared or Modified.
func (p *MSI) IsValid(s coherence.ClientState) bool {
	return s != MSIInvalid
}

// IsHit requires Modified for write intents and any valid state otherwise.
func (p *MSI) IsHit(cmd coherence.MemCmd, s coherence.ClientState) bool {
	if cmd.IsWriteIntent() {
		return s == MSIModified
	}

	return p.IsValid(s)
}

// RequiresReleaseOnCacheControl is true when a maintenance command finds the
// line Modified.
func (p *MSI) RequiresReleaseOnCacheControl(
	cmd coherence.MemCmd,
	s coherence.ClientState,
) bool {
	return cmd.IsCacheControl() && s == MSIModified
}

// AcquireType asks for exclusivity on write intents.
func (p *MSI) AcquireType(
	cmd coherence.MemCmd,
	_ coherence.ClientState,
) coherence.AcquireType {
	return pick(cmd.IsWriteIntent(), AcquireExclusive, AcquireShared)
}

// ReleaseType returns the release a maintenance command sends. Only Modified
// lines carry data.
func (p *MSI) ReleaseType(
	cmd coherence.MemCmd,
	s coherence.ClientState,
) coherence.ReleaseType {
	return releaseType(cmd, s == MSIModified, true)
}

// ReleaseTypeOnProbe returns the answer to a probe. It panics on a probe type
// this package does not define.
func (p *MSI) ReleaseTypeOnProbe(
	probe coherence.Probe,
	s coherence.ClientState,
) coherence.ReleaseType {
	cmd := cmdOfProbe(probe)
	return releaseType(cmd, s == MSIModified, true)
}

// ClientStateOnReset returns Invalid.
func (p *MSI) ClientStateOnReset() coherence.ClientState {
	return MSIInvalid
}

// ClientStateOnHit marks the line Modified on writes.
func (p *MSI) ClientStateOnHit(
	cmd coherence.MemCmd,
	s coherence.ClientState,
) coherence.ClientState {
	if cmd.IsWrite() {
		return MSIModified
	}

	return s
}

// ClientStateOnCacheControl drops the line on Flush and downgrades a Modified
// line to Shared on Produce.
func (p *MSI) ClientStateOnCacheControl(
	cmd coherence.MemCmd,
	s coherence.ClientState,
) coherence.ClientState {
	switch {
	case cmd == coherence.CmdFlush:
		return MSIInvalid
	case cmd == coherence.CmdProduce && s == MSIModified:
		return MSIShared
	default:
		return s
	}
}

// ClientStateOnGrant returns Shared for a shared grant and Modified for an
// exclusive one. Built-in grants leave nothing cached.
func (p *MSI) ClientStateOnGrant(
	g coherence.Grant,
	_ coherence.MemCmd,
	_ coherence.ClientState,
) coherence.ClientState {
	switch {
	case g.IsBuiltInType():
		return MSIInvalid
	case g.Is(GrantShared):
		return MSIShared
	default:
		return MSIModified
	}
}

// ClientStateOnProbe drops or downgrades the line as the probe asks.
func (p *MSI) ClientStateOnProbe(
	probe coherence.Probe,
	s coherence.ClientState,
) coherence.ClientState {
	switch probe.Type {
	case ProbeInvalidate:
		return MSIInvalid
	case ProbeDowngrade:
		return pick(p.IsValid(s), MSIShared, MSIInvalid)
	default:
		return s
	}
}

// RequiresProbes lets shared requests pass several readers and probes
// otherwise.
func (p *MSI) RequiresProbes(
	a coherence.Acquire,
	sharers coherence.SharerSet,
) bool {
	return requiresProbes(p.dir, a, sharers)
}

// ProbeType returns the probe for a manager-side maintenance command.
func (p *MSI) ProbeType(
	cmd coherence.MemCmd,
	_ coherence.SharerSet,
) coherence.ProbeType {
	return probeTypeOnCmd(cmd, true)
}

// ProbeTypeOnAcquire downgrades others for shared requests and invalidates
// them for exclusive ones.
func (p *MSI) ProbeTypeOnAcquire(
	a coherence.Acquire,
	_ coherence.SharerSet,
) coherence.ProbeType {
	return probeTypeOnAcquire(p.base, a)
}

// GrantType grants what was asked for.
func (p *MSI) GrantType(
	a coherence.Acquire,
	_ coherence.SharerSet,
) coherence.GrantType {
	return pick(a.Is(AcquireShared), GrantShared, GrantExclusive)
}

// requiresProbes is shared by the protocols that have a shared state. Several
// sharers can only be readers, so a shared request does not disturb them. A
// single sharer may be a writer, and an imprecise directory knows nothing.
func requiresProbes(
	dir coherence.Directory,
	a coherence.Acquire,
	sharers coherence.SharerSet,
) bool {
	switch {
	case dir.None(sharers):
		return false
	case dir.One(sharers) || !dir.Precise():
		return true
	case a.IsBuiltInType():
		return a.HasData()
	default:
		return !a.Is(AcquireShared)
	}
}

func probeTypeOnAcquire(b base, a coherence.Acquire) coherence.ProbeType {
	switch {
	case a.IsBuiltInType():
		return b.builtInProbeType(a)
	case a.Is(AcquireShared):
		return ProbeDowngrade
	default:
		return ProbeInvalidate
	}
}
