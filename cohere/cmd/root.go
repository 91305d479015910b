// Package cmd provides the command-line interface of cohere.
package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sarchlab/coherence/mem/coherence"
	"github.com/sarchlab/coherence/mem/coherence/protocols"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cohere",
	Short: "Cohere inspects and checks cache coherence protocols.",
	Long: `Cohere inspects and checks cache coherence protocols. It prints ` +
		`transition tables, checks protocols with random traffic, and ` +
		`serves them over HTTP. Defaults can be set in a .env file with ` +
		`COHERE_POLICY, COHERE_DIRECTORY, COHERE_CLIENTS, and COHERE_PORT.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().String("policy", envString("COHERE_POLICY", "msi"),
		"The protocol to use.")
	rootCmd.PersistentFlags().String("directory",
		envString("COHERE_DIRECTORY", "full"),
		"How directories track sharers, full or null.")
	rootCmd.PersistentFlags().Int("clients", envInt("COHERE_CLIENTS", 4),
		"The number of clients of each directory.")
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	return def
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ignoring %s=%q, not a number\n", key, v)
		return def
	}

	return n
}

// policiesOf returns the protocols named on the command line, or the one
// given by --policy.
func policiesOf(cmd *cobra.Command, args []string) ([]coherence.Policy, error) {
	names := args
	if len(names) == 0 {
		name, _ := cmd.Flags().GetString("policy")
		names = []string{name}
	}

	if len(names) == 1 && names[0] == "all" {
		names = protocols.Names()
	}

	dirName, _ := cmd.Flags().GetString("directory")
	clients, _ := cmd.Flags().GetInt("clients")

	if clients < 1 || clients > coherence.MaxClients {
		return nil, fmt.Errorf("--clients must be in [1, %d], got %d",
			coherence.MaxClients, clients)
	}

	var policies []coherence.Policy

	for _, name := range names {
		dir, err := protocols.NewDirectory(dirName, clients)
		if err != nil {
			return nil, err
		}

		p, err := protocols.New(name, dir)
		if err != nil {
			return nil, err
		}

		policies = append(policies, p)
	}

	return policies, nil
}
