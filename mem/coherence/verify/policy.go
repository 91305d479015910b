package verify

import (
	"github.com/sarchlab/coherence/mem/coherence"
)

var builtInGrants = []coherence.GrantType{
	coherence.GrantVoluntaryAck,
	coherence.GrantPrefetchAck,
	coherence.GrantPutAck,
	coherence.GrantGetDataBeat,
	coherence.GrantGetDataBlock,
}

// accessCmds are the commands a processor can issue to a cache, excluding
// maintenance commands.
func accessCmds() []coherence.MemCmd {
	var cmds []coherence.MemCmd

	for _, cmd := range coherence.AllCmds() {
		if cmd == coherence.CmdNop || cmd.IsCacheControl() {
			continue
		}

		cmds = append(cmds, cmd)
	}

	return cmds
}

func controlCmds() []coherence.MemCmd {
	return []coherence.MemCmd{
		coherence.CmdFlush,
		coherence.CmdProduce,
		coherence.CmdClean,
	}
}

type policyChecker struct {
	p       coherence.Policy
	config  *coherence.Config
	states  map[coherence.ClientState]bool
	sharers []coherence.SharerSet
	report  *Report
}

// CheckPolicy examines every state of a policy against every event the policy
// declares. It does not need a running system.
func CheckPolicy(p coherence.Policy) *Report {
	c := &policyChecker{
		p: p,
		config: coherence.MakeConfigBuilder().
			WithName("check").
			WithPolicy(p).
			Build(),
		states: make(map[coherence.ClientState]bool),
		report: &Report{Policy: p.Name()},
	}

	for _, s := range p.ClientStates() {
		c.states[s] = true
	}

	dir := p.Directory()
	c.sharers = []coherence.SharerSet{
		p.SharersOnReset(),
		dir.Push(p.SharersOnReset(), 0),
	}

	c.checkReset()

	for _, s := range p.ClientStates() {
		c.checkWidth(s)
		c.checkHits(s)
		c.checkGrants(s)
		c.checkProbes(s)
		c.checkCacheControl(s)
	}

	c.checkSharers()

	return c.report
}

func (c *policyChecker) declared(s coherence.ClientState, event string) {
	c.report.check(c.states[s], RuleDeclaredState,
		"%s leads to undeclared state %d", event, s)
}

func (c *policyChecker) name(s coherence.ClientState) string {
	return c.p.StateName(s)
}

func (c *policyChecker) checkReset() {
	reset := c.p.ClientStateOnReset()

	c.declared(reset, "reset")
	c.report.check(!c.p.IsValid(reset), RuleResetInvalid,
		"reset state %s is valid", c.name(reset))
	c.report.check(
		coherence.ClientMetadataOnReset(c.config).
			Equals(coherence.ClientMetadataOnReset(c.config)),
		RuleResetIdempotent, "client reset is not stable")
	c.report.check(
		coherence.ManagerMetadataOnReset(c.config).
			Equals(coherence.ManagerMetadataOnReset(c.config)),
		RuleResetIdempotent, "manager reset is not stable")
	c.report.check(c.p.SharersOnReset() == c.p.Directory().Flush(),
		RuleResetIdempotent, "reset sharers %#x are not empty",
		uint64(c.p.SharersOnReset()))
}

func (c *policyChecker) checkWidth(s coherence.ClientState) {
	c.report.check(uint64(s) < 1<<c.p.ClientStateWidth(), RuleDeclaredState,
		"state %s does not fit in %d bits", c.name(s), c.p.ClientStateWidth())
}

func (c *policyChecker) checkHits(s coherence.ClientState) {
	meta := coherence.NewClientMetadata(c.config, s)

	c.report.check(
		!c.p.IsHit(coherence.CmdWrite, s) || c.p.IsHit(coherence.CmdRead, s),
		RuleWriteImpliesRead, "%s can write but not read", c.name(s))

	for _, cmd := range accessCmds() {
		c.report.check(meta.IsHit(cmd) != meta.IsMiss(cmd), RuleHitMiss,
			"%s in %s is both or neither a hit and a miss", cmd, c.name(s))

		if !c.p.IsHit(cmd, s) {
			continue
		}

		next := c.p.ClientStateOnHit(cmd, s)
		c.declared(next, "hit "+cmd.String()+" in "+c.name(s))
		c.report.check(c.p.IsHit(cmd, next), RuleHitKeepsHit,
			"%s hit in %s leads to %s, where it misses",
			cmd, c.name(s), c.name(next))
	}
}

func (c *policyChecker) checkGrants(s coherence.ClientState) {
	for _, cmd := range accessCmds() {
		for _, g := range c.p.GrantTypes() {
			next := c.p.ClientStateOnGrant(coherence.Grant{Type: g}, cmd, s)
			c.declared(next, c.p.GrantTypeName(g)+" in "+c.name(s))
		}

		for _, g := range builtInGrants {
			grant := coherence.Grant{BuiltIn: true, Type: g}
			next := c.p.ClientStateOnGrant(grant, cmd, s)
			c.declared(next,
				coherence.BuiltInGrantName(g)+" in "+c.name(s))
		}

		if c.p.IsHit(cmd, s) {
			continue
		}

		c.checkGrantRoundTrip(cmd, s)
	}
}

// checkGrantRoundTrip follows a miss through an acquire and the grant the
// manager answers with, for both an empty and a non-empty sharer set.
func (c *policyChecker) checkGrantRoundTrip(
	cmd coherence.MemCmd,
	s coherence.ClientState,
) {
	acq := coherence.NewClientMetadata(c.config, s).MakeAcquire(0, 0, cmd)

	for _, sharers := range c.sharers {
		mgr := coherence.NewManagerMetadata(c.config, sharers)
		grant := mgr.MakeGrant(acq, 0, 0, 0)
		next := c.p.ClientStateOnGrant(grant, cmd, s)

		c.report.check(c.p.IsHit(cmd, next), RuleHitAfterGrant,
			"%s miss in %s, %s answered with %s, still misses in %s",
			cmd, c.name(s), c.p.AcquireTypeName(acq.Type),
			c.p.GrantTypeName(grant.Type), c.name(next))
	}
}

func (c *policyChecker) checkProbes(s coherence.ClientState) {
	for _, t := range c.p.ProbeTypes() {
		probe := coherence.Probe{Type: t}
		next := c.p.ClientStateOnProbe(probe, s)

		c.declared(next, c.p.ProbeTypeName(t)+" in "+c.name(s))
		c.noUpgrade(s, next, c.p.ProbeTypeName(t))
	}

	for _, sharers := range c.sharers {
		probe := coherence.Probe{Type: c.p.ProbeType(coherence.CmdFlush, sharers)}
		next := c.p.ClientStateOnProbe(probe, s)

		c.report.check(!c.p.IsValid(next), RuleFlushInvalidates,
			"%s leaves %s valid as %s",
			c.p.ProbeTypeName(probe.Type), c.name(s), c.name(next))
	}
}

func (c *policyChecker) checkCacheControl(s coherence.ClientState) {
	for _, cmd := range controlCmds() {
		next := c.p.ClientStateOnCacheControl(cmd, s)

		c.declared(next, cmd.String()+" in "+c.name(s))
		c.noUpgrade(s, next, cmd.String())
	}

	next := c.p.ClientStateOnCacheControl(coherence.CmdFlush, s)
	c.report.check(!c.p.IsValid(next), RuleFlushInvalidates,
		"Flush leaves %s valid as %s", c.name(s), c.name(next))
}

func (c *policyChecker) noUpgrade(s, next coherence.ClientState, event string) {
	for _, cmd := range accessCmds() {
		c.report.check(!c.p.IsHit(cmd, next) || c.p.IsHit(cmd, s),
			RuleProbeNoUpgrade, "%s turns %s into %s, which allows %s",
			event, c.name(s), c.name(next), cmd)
	}
}

// checkSharers makes sure that a precise directory records a client once it
// is granted a line and forgets it once the client gives the line up.
func (c *policyChecker) checkSharers() {
	dir := c.p.Directory()
	if !dir.Precise() {
		return
	}

	for _, g := range c.p.GrantTypes() {
		sharers := c.p.SharersOnGrant(
			coherence.Grant{Type: g}, 0, c.p.SharersOnReset())

		c.report.check(dir.Contains(sharers, 0), RuleSharerTracking,
			"%s does not record the client", c.p.GrantTypeName(g))
	}

	held := dir.Push(c.p.SharersOnReset(), 0)
	probe := coherence.Probe{Type: c.p.ProbeType(coherence.CmdFlush, held)}

	for _, s := range c.p.ClientStates() {
		rel := coherence.Release{Type: c.p.ReleaseTypeOnProbe(probe, s)}
		sharers := c.p.SharersOnRelease(rel, 0, held)

		c.report.check(!dir.Contains(sharers, 0), RuleSharerTracking,
			"%s from %s keeps the client",
			c.p.ReleaseTypeName(rel.Type), c.name(s))
	}
}
