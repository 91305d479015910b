package coherence

import "fmt"

// ManagerMetadata is what a manager knows about which clients may hold a
// line.
type ManagerMetadata struct {
	config  *Config
	sharers SharerSet
}

// NewManagerMetadata wraps a sharer set produced by the policy of the config.
func NewManagerMetadata(config *Config, sharers SharerSet) ManagerMetadata {
	if config == nil {
		panic("manager metadata requires a config")
	}

	return ManagerMetadata{config: config, sharers: sharers}
}

// ManagerMetadataOnReset returns the sharer set every line starts with.
func ManagerMetadataOnReset(config *Config) ManagerMetadata {
	return NewManagerMetadata(config, config.Policy.SharersOnReset())
}

// Config returns the config the metadata is bound to.
func (m ManagerMetadata) Config() *Config {
	return m.config
}

// Sharers returns the raw sharer set.
func (m ManagerMetadata) Sharers() SharerSet {
	return m.sharers
}

func (m ManagerMetadata) String() string {
	return fmt.Sprintf("%s:%#x", m.directory().Name(), uint64(m.sharers))
}

func (m ManagerMetadata) policy() Policy {
	if m.config == nil {
		panic("manager metadata is not bound to a config")
	}

	return m.config.Policy
}

func (m ManagerMetadata) directory() Directory {
	return m.policy().Directory()
}

func (m ManagerMetadata) next(sharers SharerSet) ManagerMetadata {
	return ManagerMetadata{config: m.config, sharers: sharers}
}

// Equals returns true if both record the same sharers.
func (m ManagerMetadata) Equals(rhs ManagerMetadata) bool {
	return m.sharers == rhs.sharers
}

// IsValid returns true if any client may hold the line.
func (m ManagerMetadata) IsValid() bool {
	return !m.directory().None(m.sharers)
}

// Full returns true if the sharer set covers every client.
func (m ManagerMetadata) Full() bool {
	return m.directory().IsFull(m.sharers)
}

// ProbeTargets lists the clients a probe must be sent to.
func (m ManagerMetadata) ProbeTargets() []ClientID {
	return Members(m.directory(), m.sharers)
}

// RequiresProbes returns true if the sharers must be probed before the
// acquire is granted.
func (m ManagerMetadata) RequiresProbes(acq Acquire) bool {
	return m.policy().RequiresProbes(acq, m.sharers)
}

// RequiresProbesOnCmd returns true if the sharers must be probed before the
// manager performs the command locally.
func (m ManagerMetadata) RequiresProbesOnCmd(cmd MemCmd) bool {
	return m.policy().RequiresProbesOnCmd(cmd, m.sharers)
}

// RequiresProbesOnVoluntaryWriteback returns true if the sharers must be
// probed before the manager evicts the line.
func (m ManagerMetadata) RequiresProbesOnVoluntaryWriteback() bool {
	return m.RequiresProbesOnCmd(CmdFlush)
}

// MakeProbe creates the probe sent to sharers before performing a command.
func (m ManagerMetadata) MakeProbe(cmd MemCmd, addrBlock uint64) Probe {
	return Probe{
		Link:      m.config.Name,
		Type:      m.policy().ProbeType(cmd, m.sharers),
		AddrBlock: addrBlock,
	}
}

// MakeProbeForAcquire creates the probe sent to sharers before granting an
// acquire.
func (m ManagerMetadata) MakeProbeForAcquire(acq Acquire) Probe {
	return Probe{
		Link:      m.config.Name,
		Type:      m.policy().ProbeTypeOnAcquire(acq, m.sharers),
		AddrBlock: acq.AddrBlock,
	}
}

// MakeProbeForVoluntaryWriteback creates the probe that recalls a line the
// manager is about to evict.
func (m ManagerMetadata) MakeProbeForVoluntaryWriteback(
	addrBlock uint64,
) Probe {
	return m.MakeProbe(CmdFlush, addrBlock)
}

// MakeGrantForRelease creates the grant that acknowledges a voluntary
// release.
func (m ManagerMetadata) MakeGrantForRelease(
	rel Release,
	managerXactID uint64,
) Grant {
	return Grant{
		Link:          m.config.Name,
		Dst:           rel.ClientID,
		BuiltIn:       true,
		Type:          GrantVoluntaryAck,
		ClientXactID:  rel.ClientXactID,
		ManagerXactID: managerXactID,
	}
}

// MakeGrant creates the grant that answers an acquire. Built-in acquires get
// their fixed grant type. Custom acquires get the type the policy picks.
func (m ManagerMetadata) MakeGrant(
	acq Acquire,
	managerXactID uint64,
	addrBeat int,
	data uint64,
) Grant {
	g := Grant{
		Link:          m.config.Name,
		Dst:           acq.ClientID,
		BuiltIn:       acq.IsBuiltInType(),
		ClientXactID:  acq.ClientXactID,
		ManagerXactID: managerXactID,
		AddrBeat:      addrBeat,
		Data:          data,
	}

	if acq.IsBuiltInType() {
		g.Type = acq.BuiltInGrantType()
	} else {
		g.Type = m.policy().GrantType(acq, m.sharers)
	}

	return g
}

// OnRelease returns the sharers after a client releases the line.
func (m ManagerMetadata) OnRelease(
	incoming Release,
	src ClientID,
) ManagerMetadata {
	return m.next(m.policy().SharersOnRelease(incoming, src, m.sharers))
}

// OnGrant returns the sharers after the manager grants the line to a client.
func (m ManagerMetadata) OnGrant(
	outgoing Grant,
	dst ClientID,
) ManagerMetadata {
	return m.next(m.policy().SharersOnGrant(outgoing, dst, m.sharers))
}
