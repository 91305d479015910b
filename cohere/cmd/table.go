package cmd

import (
	"fmt"

	"github.com/sarchlab/coherence/mem/coherence/verify"
	"github.com/spf13/cobra"
)

var tableCmd = &cobra.Command{
	Use:   "table [policy...]",
	Short: "Print the transition table of protocols.",
	Long: "`table` prints what a client does in every state for every " +
		"event. Use `all` to print every protocol.",
	RunE: func(cmd *cobra.Command, args []string) error {
		policies, err := policiesOf(cmd, args)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		for i, p := range policies {
			if i > 0 {
				fmt.Fprintln(out)
			}

			fmt.Fprintf(out, "%s\n\n", p.Name())

			if err := verify.WriteTransitions(out, p); err != nil {
				return err
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(tableCmd)
}
