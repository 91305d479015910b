package verify

import (
	"fmt"

	"github.com/sarchlab/coherence/mem/coherence"
	"github.com/sarchlab/coherence/mem/coherence/system"
)

func (w *Walker) checkLine(addr uint64) {
	for _, v := range CheckLine(w.sys.Inspect(addr)) {
		v.Step = w.step
		w.report.Violations = append(w.report.Violations, v)
	}

	w.report.Checks++
}

// CheckLine checks a line across the whole system:
//   - a client that may write is the only valid client among its peers, and
//     among the leaf caches;
//   - every valid client is recorded by its parent's directory, and a valid
//     leaf has a valid mid-level cache above it;
//   - every valid leaf holds the last written value.
func CheckLine(view system.LineView) []Violation {
	var violations []Violation

	add := func(rule, format string, args ...any) {
		v := Violation{Rule: rule, AddrBlock: view.AddrBlock}
		v.Detail = fmt.Sprintf(format, args...)
		violations = append(violations, v)
	}

	byName := make(map[string]system.NodeLine, len(view.Nodes))
	for _, n := range view.Nodes {
		byName[n.Name] = n
	}

	checkWriters(view.Nodes, add)

	for _, n := range view.Nodes {
		if n.Client == nil || !n.Client.IsValid() {
			continue
		}

		parent := byName[n.Parent]
		dir := parent.Manager.Config().Policy.Directory()

		if !dir.Contains(parent.Manager.Sharers(), n.ClientID) {
			add(RuleInclusion, "%s holds %s but %s does not record it",
				n.Name, n.Client, parent.Name)
		}

		if parent.Client != nil && !parent.Client.IsValid() {
			add(RuleInclusion, "%s holds %s but %s is %s",
				n.Name, n.Client, parent.Name, parent.Client)
		}

		if n.Leaf && (!n.HasData || n.Data != view.Latest) {
			add(RuleDataValue, "%s holds %d, the last write was %d",
				n.Name, n.Data, view.Latest)
		}
	}

	return violations
}

// checkWriters looks for a client with write permission that coexists with
// another valid client at the same level.
func checkWriters(
	nodes []system.NodeLine,
	add func(rule, format string, args ...any),
) {
	levels := map[string][]system.NodeLine{}

	for _, n := range nodes {
		if n.Client == nil {
			continue
		}

		level := "mid"
		if n.Leaf {
			level = "leaf"
		}

		levels[level] = append(levels[level], n)
	}

	for _, level := range []string{"mid", "leaf"} {
		var writer *system.NodeLine

		valid := 0

		for i, n := range levels[level] {
			if !n.Client.IsValid() {
				continue
			}

			valid++

			if n.Client.IsHit(coherence.CmdWrite) {
				writer = &levels[level][i]
			}
		}

		if writer != nil && valid > 1 {
			add(RuleSingleWriter, "%s holds %s while %d other caches hold the line",
				writer.Name, writer.Client, valid-1)
		}
	}
}
