// Package protocols provides concrete coherence policies: MEI, MSI, and
// MESI. All of them share the same message subtypes; a protocol simply never
// uses the subtypes it has no states for.
package protocols

import (
	"fmt"
	"math/bits"
	"sort"
	"strings"

	"github.com/sarchlab/coherence/mem/coherence"
)

// Custom acquire types.
const (
	AcquireShared coherence.AcquireType = iota
	AcquireExclusive
)

// Probe types.
const (
	ProbeInvalidate coherence.ProbeType = iota
	ProbeDowngrade
	ProbeCopy
)

// Release types.
const (
	ReleaseInvalidateData coherence.ReleaseType = iota
	ReleaseDowngradeData
	ReleaseCopyData
	ReleaseInvalidateAck
	ReleaseDowngradeAck
	ReleaseCopyAck
)

// Custom grant types.
const (
	GrantShared coherence.GrantType = iota
	GrantExclusive
	GrantExclusiveAck
)

var acquireNames = map[coherence.AcquireType]string{
	AcquireShared:    "AcquireShared",
	AcquireExclusive: "AcquireExclusive",
}

var probeNames = map[coherence.ProbeType]string{
	ProbeInvalidate: "ProbeInvalidate",
	ProbeDowngrade:  "ProbeDowngrade",
	ProbeCopy:       "ProbeCopy",
}

var releaseNames = map[coherence.ReleaseType]string{
	ReleaseInvalidateData: "ReleaseInvalidateData",
	ReleaseDowngradeData:  "ReleaseDowngradeData",
	ReleaseCopyData:       "ReleaseCopyData",
	ReleaseInvalidateAck:  "ReleaseInvalidateAck",
	ReleaseDowngradeAck:   "ReleaseDowngradeAck",
	ReleaseCopyAck:        "ReleaseCopyAck",
}

var grantNames = map[coherence.GrantType]string{
	GrantShared:       "GrantShared",
	GrantExclusive:    "GrantExclusive",
	GrantExclusiveAck: "GrantExclusiveAck",
}

// base holds what every protocol here does the same way.
type base struct {
	name       string
	dir        coherence.Directory
	stateNames []string
	probes     []coherence.ProbeType
	grants     []coherence.GrantType
}

func (b base) Name() string {
	return b.name
}

func (b base) Directory() coherence.Directory {
	return b.dir
}

func (b base) ClientStateWidth() int {
	return bits.Len(uint(len(b.stateNames) - 1))
}

func (b base) ClientStates() []coherence.ClientState {
	states := make([]coherence.ClientState, len(b.stateNames))
	for i := range states {
		states[i] = coherence.ClientState(i)
	}

	return states
}

func (b base) StateName(s coherence.ClientState) string {
	if int(s) < len(b.stateNames) {
		return b.stateNames[s]
	}

	return fmt.Sprintf("State(%d)", s)
}

func (b base) AcquireTypeName(t coherence.AcquireType) string {
	return lookupName(acquireNames, t)
}

func (b base) ProbeTypeName(t coherence.ProbeType) string {
	return lookupName(probeNames, t)
}

func (b base) ReleaseTypeName(t coherence.ReleaseType) string {
	return lookupName(releaseNames, t)
}

func (b base) GrantTypeName(t coherence.GrantType) string {
	return lookupName(grantNames, t)
}

func (b base) ProbeTypes() []coherence.ProbeType {
	return b.probes
}

func (b base) GrantTypes() []coherence.GrantType {
	return b.grants
}

func (b base) ReleaseHasData(t coherence.ReleaseType) bool {
	return t == ReleaseInvalidateData ||
		t == ReleaseDowngradeData ||
		t == ReleaseCopyData
}

func (b base) GrantHasData(g coherence.Grant) bool {
	if g.IsBuiltInType() {
		return g.Type == coherence.GrantGetDataBeat ||
			g.Type == coherence.GrantGetDataBlock
	}

	return g.Type == GrantShared || g.Type == GrantExclusive
}

// RequiresAcquireOnSecondaryMiss assumes that every state with write
// permission also has read permission.
func (b base) RequiresAcquireOnSecondaryMiss(
	first, second coherence.MemCmd,
	_ coherence.ClientState,
) bool {
	return second.IsWriteIntent() && !first.IsWriteIntent()
}

func (b base) RequiresProbesOnCmd(
	_ coherence.MemCmd,
	sharers coherence.SharerSet,
) bool {
	return !b.dir.None(sharers)
}

func (b base) ExclusiveGrantType() coherence.GrantType {
	return GrantExclusive
}

func (b base) SharersOnReset() coherence.SharerSet {
	return b.dir.Flush()
}

// SharersOnRelease removes the source only when it gives up the line.
func (b base) SharersOnRelease(
	r coherence.Release,
	src coherence.ClientID,
	sharers coherence.SharerSet,
) coherence.SharerSet {
	if r.Is(ReleaseInvalidateData) || r.Is(ReleaseInvalidateAck) {
		return b.dir.Pop(sharers, src)
	}

	return sharers
}

// SharersOnGrant adds the destination unless the grant is built-in, as
// built-in grants do not hand out cached copies.
func (b base) SharersOnGrant(
	g coherence.Grant,
	dst coherence.ClientID,
	sharers coherence.SharerSet,
) coherence.SharerSet {
	if g.IsBuiltInType() {
		return sharers
	}

	return b.dir.Push(sharers, dst)
}

func (b base) builtInProbeType(a coherence.Acquire) coherence.ProbeType {
	switch a.Type {
	case coherence.AcquirePut,
		coherence.AcquirePutBlock,
		coherence.AcquirePutAtomic,
		coherence.AcquirePutPrefetch:
		return ProbeInvalidate
	default:
		return ProbeCopy
	}
}

// releaseType picks the release for a maintenance command. Without a shared
// state, Produce keeps the line and releases a copy.
func releaseType(
	cmd coherence.MemCmd,
	dirty bool,
	canDowngrade bool,
) coherence.ReleaseType {
	switch cmd {
	case coherence.CmdFlush:
		return pick(dirty, ReleaseInvalidateData, ReleaseInvalidateAck)
	case coherence.CmdProduce:
		if canDowngrade {
			return pick(dirty, ReleaseDowngradeData, ReleaseDowngradeAck)
		}

		return pick(dirty, ReleaseCopyData, ReleaseCopyAck)
	case coherence.CmdClean:
		return pick(dirty, ReleaseCopyData, ReleaseCopyAck)
	default:
		return ReleaseCopyAck
	}
}

// cmdOfProbe maps a probe to the maintenance command it asks for. A probe
// type none of the protocols define is a bug in the sender, so it panics.
func cmdOfProbe(p coherence.Probe) coherence.MemCmd {
	switch p.Type {
	case ProbeInvalidate:
		return coherence.CmdFlush
	case ProbeDowngrade:
		return coherence.CmdProduce
	case ProbeCopy:
		return coherence.CmdClean
	default:
		panic(fmt.Sprintf("unknown probe type %d", p.Type))
	}
}

func probeTypeOnCmd(cmd coherence.MemCmd, canDowngrade bool) coherence.ProbeType {
	switch {
	case cmd == coherence.CmdFlush:
		return ProbeInvalidate
	case cmd == coherence.CmdProduce && canDowngrade:
		return ProbeDowngrade
	default:
		return ProbeCopy
	}
}

func pick[T any](cond bool, a, b T) T {
	if cond {
		return a
	}

	return b
}

func isOneOf(s coherence.ClientState, states ...coherence.ClientState) bool {
	for _, x := range states {
		if s == x {
			return true
		}
	}

	return false
}

func lookupName[T ~uint8](names map[T]string, t T) string {
	if name, ok := names[t]; ok {
		return name
	}

	return fmt.Sprintf("%d", t)
}

var registry = map[string]func(coherence.Directory) coherence.Policy{
	"mei":  func(d coherence.Directory) coherence.Policy { return NewMEI(d) },
	"msi":  func(d coherence.Directory) coherence.Policy { return NewMSI(d) },
	"mesi": func(d coherence.Directory) coherence.Policy { return NewMESI(d) },
}

// Names lists the protocols that New can create.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// New creates a protocol by its name.
func New(name string, dir coherence.Directory) (coherence.Policy, error) {
	create, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf(
			"unknown protocol %q, available: %s",
			name, strings.Join(Names(), ", "))
	}

	return create(dir), nil
}

// NewDirectory creates a directory representation by its name.
func NewDirectory(name string, numClients int) (coherence.Directory, error) {
	switch strings.ToLower(name) {
	case "full":
		return coherence.NewFullDirectory(numClients), nil
	case "null":
		return coherence.NewNullDirectory(numClients), nil
	default:
		return nil, fmt.Errorf(
			"unknown directory %q, available: full, null", name)
	}
}
