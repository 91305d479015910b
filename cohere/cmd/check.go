package cmd

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sarchlab/coherence/datarecording"
	"github.com/sarchlab/coherence/mem/coherence"
	"github.com/sarchlab/coherence/mem/coherence/system"
	"github.com/sarchlab/coherence/mem/coherence/verify"
	"github.com/sarchlab/coherence/tracing"
	"github.com/spf13/cobra"
)

var errViolations = errors.New("coherence violations found")

var checkCmd = &cobra.Command{
	Use:   "check [policy...]",
	Short: "Check protocols on their own and in a running system.",
	Long: "`check` examines every state of the protocols, then drives a " +
		"system with random traffic and checks every line it touches. " +
		"Use `all` to check every protocol.",
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Int("steps", 10000, "The number of random operations.")
	checkCmd.Flags().Int64("seed", 1, "The seed of the random walk.")
	checkCmd.Flags().Int("clusters", 0,
		"The number of mid-level caches. 0 connects clients to memory.")
	checkCmd.Flags().Int("lines", 4, "The number of lines the walk uses.")
	checkCmd.Flags().String("trace", "",
		"Record every transition into this SQLite database.")
}

func runCheck(cmd *cobra.Command, args []string) error {
	policies, err := policiesOf(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := false

	for _, p := range policies {
		report := verify.CheckPolicy(p)
		fmt.Fprintf(out, "%-5s policy: %d checks, %d violations\n",
			p.Name(), report.Checks, len(report.Violations))
		failed = printViolations(cmd, report) || failed

		report, err = walk(cmd, p)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%-5s walk:   %d steps, %d checks, %d violations, %s\n",
			p.Name(), report.Steps, report.Checks, len(report.Violations),
			countsString(report.Transitions))
		failed = printViolations(cmd, report) || failed
	}

	if failed {
		return errViolations
	}

	return nil
}

func walk(cmd *cobra.Command, p coherence.Policy) (*verify.Report, error) {
	steps, _ := cmd.Flags().GetInt("steps")
	seed, _ := cmd.Flags().GetInt64("seed")
	lines, _ := cmd.Flags().GetInt("lines")
	tracePath, _ := cmd.Flags().GetString("trace")

	if lines < 1 {
		return nil, fmt.Errorf("--lines must be at least 1, got %d", lines)
	}

	sys, err := buildSystem(cmd, p)
	if err != nil {
		return nil, err
	}

	if tracePath != "" {
		recorder := datarecording.New(tracePath + "_" + strings.ToLower(p.Name()))
		defer recorder.Close()

		tracer := tracing.NewTransitionTracer(recorder)
		defer tracer.Terminate()

		sys.AcceptHook(tracer)
	}

	return verify.NewWalker(sys, seed).WithLines(lines).Run(steps), nil
}

// buildSystem builds a system running p with the shape given by the flags.
func buildSystem(cmd *cobra.Command, p coherence.Policy) (*system.System, error) {
	dir, _ := cmd.Flags().GetString("directory")
	clients, _ := cmd.Flags().GetInt("clients")
	clusters, _ := cmd.Flags().GetInt("clusters")

	if clusters < 0 || clusters > coherence.MaxClients {
		return nil, fmt.Errorf("--clusters must be in [0, %d], got %d",
			coherence.MaxClients, clusters)
	}

	sys := system.MakeBuilder().
		WithPolicy(strings.ToLower(p.Name())).
		WithDirectory(dir).
		WithNumClients(clients).
		WithNumClusters(clusters).
		Build()

	return sys, nil
}

func printViolations(cmd *cobra.Command, report *verify.Report) bool {
	for _, v := range report.Violations {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", v)
	}

	return !report.OK()
}

func countsString(counts map[string]uint64) string {
	events := make([]string, 0, len(counts))
	for event := range counts {
		events = append(events, event)
	}

	sort.Strings(events)

	parts := make([]string, 0, len(events))
	for _, event := range events {
		parts = append(parts, fmt.Sprintf("%s=%d", event, counts[event]))
	}

	return strings.Join(parts, " ")
}
