// Package verify checks coherence protocols. CheckPolicy examines a policy on
// its own, and RandomWalk drives a whole system with random traffic while
// checking that no cache ever sees stale or conflicting data.
package verify

import (
	"fmt"
	"strings"

	"github.com/sarchlab/coherence/mem/coherence/system"
)

// Rules that a check can find broken.
const (
	RuleDeclaredState    = "declared-state"
	RuleResetInvalid     = "reset-invalid"
	RuleResetIdempotent  = "reset-idempotent"
	RuleHitMiss          = "hit-miss"
	RuleWriteImpliesRead = "write-implies-read"
	RuleHitAfterGrant    = "hit-after-grant"
	RuleHitKeepsHit      = "hit-keeps-hit"
	RuleProbeNoUpgrade   = "probe-no-upgrade"
	RuleFlushInvalidates = "flush-invalidates"
	RuleSharerTracking   = "sharer-tracking"
	RuleOperation        = "operation"
	RuleSingleWriter     = "single-writer"
	RuleInclusion        = "inclusion"
	RuleDataValue        = "data-value"
)

// A Violation is a rule found broken.
type Violation struct {
	Step      int    `json:"step"`
	Rule      string `json:"rule"`
	AddrBlock uint64 `json:"addr_block"`
	Detail    string `json:"detail"`
}

func (v Violation) String() string {
	if v.Step < 0 {
		return fmt.Sprintf("%s: %s", v.Rule, v.Detail)
	}

	return fmt.Sprintf("step %d, line %#x, %s: %s",
		v.Step, v.AddrBlock, v.Rule, v.Detail)
}

// A Report is the outcome of a check.
type Report struct {
	Policy      string            `json:"policy"`
	Checks      int               `json:"checks"`
	Steps       int               `json:"steps"`
	Violations  []Violation       `json:"violations"`
	Transitions map[string]uint64 `json:"transitions,omitempty"`
	Stats       *system.Stats     `json:"stats,omitempty"`
}

// OK returns true if no rule was broken.
func (r *Report) OK() bool {
	return len(r.Violations) == 0
}

// Error summarizes the violations. It returns nil if there are none.
func (r *Report) Error() error {
	if r.OK() {
		return nil
	}

	lines := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		lines = append(lines, v.String())
	}

	return fmt.Errorf("%s: %d violations\n%s",
		r.Policy, len(r.Violations), strings.Join(lines, "\n"))
}

func (r *Report) check(ok bool, rule string, format string, args ...any) {
	r.Checks++

	if !ok {
		r.Violations = append(r.Violations, Violation{
			Step:   -1,
			Rule:   rule,
			Detail: fmt.Sprintf(format, args...),
		})
	}
}
