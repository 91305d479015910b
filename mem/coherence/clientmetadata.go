package coherence

// ClientMetadata is the coherence state of one line as held by a client.
type ClientMetadata struct {
	config *Config
	state  ClientState
}

// NewClientMetadata wraps a state produced by the policy of the config.
func NewClientMetadata(config *Config, state ClientState) ClientMetadata {
	if config == nil {
		panic("client metadata requires a config")
	}

	return ClientMetadata{config: config, state: state}
}

// ClientMetadataOnReset returns the state every line starts with.
func ClientMetadataOnReset(config *Config) ClientMetadata {
	return NewClientMetadata(config, config.Policy.ClientStateOnReset())
}

// Config returns the config the metadata is bound to.
func (m ClientMetadata) Config() *Config {
	return m.config
}

// State returns the raw state code.
func (m ClientMetadata) State() ClientState {
	return m.state
}

func (m ClientMetadata) String() string {
	return m.policy().StateName(m.state)
}

func (m ClientMetadata) policy() Policy {
	if m.config == nil {
		panic("client metadata is not bound to a config")
	}

	return m.config.Policy
}

func (m ClientMetadata) next(state ClientState) ClientMetadata {
	return ClientMetadata{config: m.config, state: state}
}

// Equals returns true if both hold the same state.
func (m ClientMetadata) Equals(rhs ClientMetadata) bool {
	return m.state == rhs.state
}

// IsValid returns true if the client holds any permission.
func (m ClientMetadata) IsValid() bool {
	return m.policy().IsValid(m.state)
}

// IsHit returns true if the command can be performed without contacting the
// manager.
func (m ClientMetadata) IsHit(cmd MemCmd) bool {
	return m.policy().IsHit(cmd, m.state)
}

// IsMiss returns true if the command needs an acquire.
func (m ClientMetadata) IsMiss(cmd MemCmd) bool {
	return !m.IsHit(cmd)
}

// RequiresAcquireOnSecondaryMiss returns true if a second command on a line
// already missing for the first command needs an acquire of its own.
func (m ClientMetadata) RequiresAcquireOnSecondaryMiss(
	firstCmd, secondCmd MemCmd,
) bool {
	return m.policy().RequiresAcquireOnSecondaryMiss(
		firstCmd, secondCmd, m.state)
}

// RequiresReleaseOnCacheControl returns true if the maintenance command must
// send a release.
func (m ClientMetadata) RequiresReleaseOnCacheControl(cmd MemCmd) bool {
	return m.policy().RequiresReleaseOnCacheControl(cmd, m.state)
}

// RequiresVoluntaryWriteback returns true if evicting the line must write
// data back.
func (m ClientMetadata) RequiresVoluntaryWriteback() bool {
	return m.RequiresReleaseOnCacheControl(CmdFlush)
}

// MakeAcquire creates the acquire that requests permission for the command.
func (m ClientMetadata) MakeAcquire(
	clientXactID uint64,
	addrBlock uint64,
	opCode MemCmd,
) Acquire {
	return Acquire{
		Link:         m.config.Name,
		BuiltIn:      false,
		Type:         m.policy().AcquireType(opCode, m.state),
		ClientXactID: clientXactID,
		AddrBlock:    addrBlock,
		OpCode:       opCode,
	}
}

// MakeVoluntaryWriteback creates the release sent when the client evicts the
// line on its own.
func (m ClientMetadata) MakeVoluntaryWriteback(
	clientXactID uint64,
	addrBlock uint64,
	addrBeat int,
	data uint64,
) Release {
	return m.MakeVoluntaryRelease(
		CmdFlush, clientXactID, addrBlock, addrBeat, data)
}

// MakeVoluntaryRelease creates the release sent for a local maintenance
// command.
func (m ClientMetadata) MakeVoluntaryRelease(
	cmd MemCmd,
	clientXactID uint64,
	addrBlock uint64,
	addrBeat int,
	data uint64,
) Release {
	return Release{
		Link:         m.config.Name,
		Voluntary:    true,
		Type:         m.policy().ReleaseType(cmd, m.state),
		ClientXactID: clientXactID,
		AddrBlock:    addrBlock,
		AddrBeat:     addrBeat,
		Data:         data,
	}
}

// MakeRelease creates the release that answers a probe. The release always
// targets the line named by the probe.
func (m ClientMetadata) MakeRelease(
	probe Probe,
	clientXactID uint64,
	addrBeat int,
	data uint64,
) Release {
	return Release{
		Link:         m.config.Name,
		Voluntary:    false,
		Type:         m.policy().ReleaseTypeOnProbe(probe, m.state),
		ClientXactID: clientXactID,
		AddrBlock:    probe.AddrBlock,
		AddrBeat:     addrBeat,
		Data:         data,
	}
}

// OnGrant returns the state after receiving a grant for a pending command.
func (m ClientMetadata) OnGrant(incoming Grant, pending MemCmd) ClientMetadata {
	return m.next(m.policy().ClientStateOnGrant(incoming, pending, m.state))
}

// OnProbe returns the state after receiving a probe.
func (m ClientMetadata) OnProbe(incoming Probe) ClientMetadata {
	return m.next(m.policy().ClientStateOnProbe(incoming, m.state))
}

// OnHit returns the state after a local hit.
func (m ClientMetadata) OnHit(cmd MemCmd) ClientMetadata {
	return m.next(m.policy().ClientStateOnHit(cmd, m.state))
}

// OnCacheControl returns the state after a local maintenance command.
func (m ClientMetadata) OnCacheControl(cmd MemCmd) ClientMetadata {
	return m.next(m.policy().ClientStateOnCacheControl(cmd, m.state))
}
