package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/pkg/browser"
	"github.com/sarchlab/coherence/mem/coherence/verify"
	"github.com/sarchlab/coherence/monitoring"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve protocols and a running system over HTTP.",
	Long: "`serve` starts the monitoring server. A system built with the " +
		"given protocol runs a random walk in the background so that its " +
		"line tables can be browsed.",
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Int("port", envInt("COHERE_PORT", 0),
		"The port to listen on. 0 picks a free port.")
	serveCmd.Flags().Bool("open", false, "Open the page in a browser.")
	serveCmd.Flags().Int("steps", 100000, "The number of random operations.")
	serveCmd.Flags().Int("clusters", 0, "The number of mid-level caches.")
}

func runServe(cmd *cobra.Command, _ []string) error {
	dir, _ := cmd.Flags().GetString("directory")
	clients, _ := cmd.Flags().GetInt("clients")
	steps, _ := cmd.Flags().GetInt("steps")
	port, _ := cmd.Flags().GetInt("port")
	open, _ := cmd.Flags().GetBool("open")

	policies, err := policiesOf(cmd, nil)
	if err != nil {
		return err
	}

	if len(policies) != 1 {
		return fmt.Errorf("serve runs one protocol, got %d", len(policies))
	}

	if steps < 0 {
		return fmt.Errorf("--steps must not be negative, got %d", steps)
	}

	sys, err := buildSystem(cmd, policies[0])
	if err != nil {
		return err
	}

	policy := strings.ToLower(policies[0].Name())

	m := monitoring.NewMonitor().WithDirectory(dir, clients)
	if port != 0 {
		m = m.WithPortNumber(port)
	}

	m.RegisterSystem(sys)

	url := m.StartServer()

	if open {
		if err := browser.OpenURL(url); err != nil {
			log.Printf("cannot open a browser: %v", err)
		}
	}

	go func() {
		bar := m.CreateProgressBar("walk "+policy, uint64(steps))
		report := verify.NewWalker(sys, 1).WithProgress(bar).Run(steps)
		m.CompleteProgressBar(bar)

		fmt.Fprintf(os.Stderr, "Walk finished: %d steps, %d violations\n",
			report.Steps, len(report.Violations))
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	return nil
}
