package verify

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sarchlab/coherence/mem/coherence"
)

// A Row is one entry of a transition table.
type Row struct {
	State   string `json:"state"`
	Event   string `json:"event"`
	Next    string `json:"next"`
	Message string `json:"message"`
}

// tableCmds are the commands listed in transition tables. Atomics other than
// AtomicAdd behave the same as AtomicAdd.
var tableCmds = []coherence.MemCmd{
	coherence.CmdRead,
	coherence.CmdWrite,
	coherence.CmdPrefetchRead,
	coherence.CmdPrefetchWrite,
	coherence.CmdAtomicAdd,
}

// Transitions lists what a client in each state does for each event. A miss
// is shown together with the grant it gets from a manager with no other
// sharers.
func Transitions(p coherence.Policy) []Row {
	config := coherence.MakeConfigBuilder().
		WithName("table").
		WithPolicy(p).
		Build()
	mgr := coherence.ManagerMetadataOnReset(config)

	var rows []Row

	for _, s := range p.ClientStates() {
		meta := coherence.NewClientMetadata(config, s)
		state := p.StateName(s)

		for _, cmd := range tableCmds {
			if meta.IsHit(cmd) {
				rows = append(rows, Row{
					State: state,
					Event: "Hit " + cmd.String(),
					Next:  meta.OnHit(cmd).String(),
				})

				continue
			}

			acq := meta.MakeAcquire(0, 0, cmd)
			grant := mgr.MakeGrant(acq, 0, 0, 0)

			rows = append(rows, Row{
				State: state,
				Event: "Miss " + cmd.String(),
				Next:  meta.OnGrant(grant, cmd).String(),
				Message: fmt.Sprintf("%s -> %s",
					p.AcquireTypeName(acq.Type), p.GrantTypeName(grant.Type)),
			})
		}

		for _, cmd := range controlCmds() {
			row := Row{
				State: state,
				Event: cmd.String(),
				Next:  meta.OnCacheControl(cmd).String(),
			}

			if meta.RequiresReleaseOnCacheControl(cmd) {
				rel := meta.MakeVoluntaryRelease(cmd, 0, 0, 0, 0)
				row.Message = p.ReleaseTypeName(rel.Type)
			}

			rows = append(rows, row)
		}

		for _, t := range p.ProbeTypes() {
			probe := coherence.Probe{Type: t}
			rel := meta.MakeRelease(probe, 0, 0, 0)

			rows = append(rows, Row{
				State:   state,
				Event:   p.ProbeTypeName(t),
				Next:    meta.OnProbe(probe).String(),
				Message: p.ReleaseTypeName(rel.Type),
			})
		}
	}

	return rows
}

// WriteTransitions prints the transition table of a policy as aligned
// columns.
func WriteTransitions(w io.Writer, p coherence.Policy) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "STATE\tEVENT\tNEXT\tMESSAGE\n")

	for _, r := range Transitions(p) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.State, r.Event, r.Next, r.Message)
	}

	return tw.Flush()
}
