package coherence

import "fmt"

// ClientState is the per-line permission code held by a client. Its meaning
// is defined by the Policy that produced it.
type ClientState uint8

// SharerSet is the directory code recording which clients may hold a line.
// Its encoding is defined by the Directory of the Policy.
type SharerSet uint64

// ClientID identifies a client of a manager.
type ClientID int

// AcquireType is the subtype of an Acquire. Built-in and custom acquires use
// separate code spaces, distinguished by Acquire.BuiltIn.
type AcquireType uint8

// ProbeType is the subtype of a Probe.
type ProbeType uint8

// ReleaseType is the subtype of a Release.
type ReleaseType uint8

// GrantType is the subtype of a Grant. Built-in and custom grants use
// separate code spaces, distinguished by Grant.BuiltIn.
type GrantType uint8

// Built-in acquire types. They are served by the manager without handing out
// any cached permission.
const (
	AcquireGet         AcquireType = 0
	AcquireGetBlock    AcquireType = 1
	AcquirePut         AcquireType = 2
	AcquirePutBlock    AcquireType = 3
	AcquirePutAtomic   AcquireType = 4
	AcquireGetPrefetch AcquireType = 5
	AcquirePutPrefetch AcquireType = 6
)

// Built-in grant types.
const (
	GrantVoluntaryAck GrantType = 0
	GrantPrefetchAck  GrantType = 1
	GrantPutAck       GrantType = 2
	GrantGetDataBeat  GrantType = 3
	GrantGetDataBlock GrantType = 4
)

var builtInAcquireNames = map[AcquireType]string{
	AcquireGet:         "Get",
	AcquireGetBlock:    "GetBlock",
	AcquirePut:         "Put",
	AcquirePutBlock:    "PutBlock",
	AcquirePutAtomic:   "PutAtomic",
	AcquireGetPrefetch: "GetPrefetch",
	AcquirePutPrefetch: "PutPrefetch",
}

var builtInGrantNames = map[GrantType]string{
	GrantVoluntaryAck: "VoluntaryAck",
	GrantPrefetchAck:  "PrefetchAck",
	GrantPutAck:       "PutAck",
	GrantGetDataBeat:  "GetDataBeat",
	GrantGetDataBlock: "GetDataBlock",
}

// BuiltInAcquireName returns the name of a built-in acquire type.
func BuiltInAcquireName(t AcquireType) string {
	if name, ok := builtInAcquireNames[t]; ok {
		return name
	}

	return fmt.Sprintf("BuiltInAcquire(%d)", t)
}

// BuiltInGrantName returns the name of a built-in grant type.
func BuiltInGrantName(t GrantType) string {
	if name, ok := builtInGrantNames[t]; ok {
		return name
	}

	return fmt.Sprintf("BuiltInGrant(%d)", t)
}

// Acquire is a request from a client to a manager for new or upgraded
// permission on a line.
type Acquire struct {
	Link         string
	BuiltIn      bool
	Type         AcquireType
	ClientID     ClientID
	ClientXactID uint64
	AddrBlock    uint64
	AddrBeat     int
	OpCode       MemCmd
	Data         uint64
}

// MakeBuiltInAcquire creates an acquire of a built-in type. OpCode is only
// meaningful for PutAtomic.
func MakeBuiltInAcquire(
	t AcquireType,
	clientXactID uint64,
	addrBlock uint64,
	opCode MemCmd,
	data uint64,
) Acquire {
	if _, ok := builtInAcquireNames[t]; !ok {
		panic(fmt.Sprintf("acquire type %d is not a built-in type", t))
	}

	return Acquire{
		BuiltIn:      true,
		Type:         t,
		ClientXactID: clientXactID,
		AddrBlock:    addrBlock,
		OpCode:       opCode,
		Data:         data,
	}
}

// IsBuiltInType returns true if the acquire uses a built-in type.
func (a Acquire) IsBuiltInType() bool {
	return a.BuiltIn
}

// IsBuiltIn returns true if the acquire is the given built-in type.
func (a Acquire) IsBuiltIn(t AcquireType) bool {
	return a.BuiltIn && a.Type == t
}

// Is returns true if the acquire is the given custom type.
func (a Acquire) Is(t AcquireType) bool {
	return !a.BuiltIn && a.Type == t
}

// HasData returns true if the acquire carries data to the manager.
func (a Acquire) HasData() bool {
	return a.IsBuiltIn(AcquirePut) ||
		a.IsBuiltIn(AcquirePutBlock) ||
		a.IsBuiltIn(AcquirePutAtomic)
}

// IsPrefetch returns true for the built-in prefetch acquires.
func (a Acquire) IsPrefetch() bool {
	return a.IsBuiltIn(AcquireGetPrefetch) || a.IsBuiltIn(AcquirePutPrefetch)
}

// BuiltInGrantType returns the grant type that answers a built-in acquire.
func (a Acquire) BuiltInGrantType() GrantType {
	switch a.Type {
	case AcquireGet, AcquirePutAtomic:
		return GrantGetDataBeat
	case AcquireGetBlock:
		return GrantGetDataBlock
	case AcquireGetPrefetch, AcquirePutPrefetch:
		return GrantPrefetchAck
	default:
		return GrantPutAck
	}
}

// Probe is a request from a manager to a client to downgrade or give up its
// permission on a line.
type Probe struct {
	Link      string
	Type      ProbeType
	AddrBlock uint64
}

// Is returns true if the probe is of the given type.
func (p Probe) Is(t ProbeType) bool {
	return p.Type == t
}

// Release is a message from a client to a manager giving up or downgrading
// permission. A voluntary release is initiated by the client; a non-voluntary
// one answers a probe.
type Release struct {
	Link         string
	Voluntary    bool
	Type         ReleaseType
	ClientID     ClientID
	ClientXactID uint64
	AddrBlock    uint64
	AddrBeat     int
	Data         uint64
}

// Is returns true if the release is of the given type.
func (r Release) Is(t ReleaseType) bool {
	return r.Type == t
}

// Grant is a message from a manager to a client that grants permission or
// acknowledges a release.
type Grant struct {
	Link          string
	Dst           ClientID
	BuiltIn       bool
	Type          GrantType
	ClientXactID  uint64
	ManagerXactID uint64
	AddrBeat      int
	Data          uint64
}

// IsBuiltInType returns true if the grant uses a built-in type.
func (g Grant) IsBuiltInType() bool {
	return g.BuiltIn
}

// IsBuiltIn returns true if the grant is the given built-in type.
func (g Grant) IsBuiltIn(t GrantType) bool {
	return g.BuiltIn && g.Type == t
}

// Is returns true if the grant is the given custom type.
func (g Grant) Is(t GrantType) bool {
	return !g.BuiltIn && g.Type == t
}

// IsVoluntaryAck returns true if the grant acknowledges a voluntary release.
func (g Grant) IsVoluntaryAck() bool {
	return g.IsBuiltIn(GrantVoluntaryAck)
}
