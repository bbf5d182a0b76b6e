package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gnolang/cslint/internal/numeric"
)

// explainCmd: cslint explain <value>
var explainCmd = &cobra.Command{
	Use:   "explain <value>",
	Short: "Show how a declaration value is reduced by the numeric constant check",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return explainValue(cmd.OutOrStdout(), args[0])
	},
}

func explainValue(w io.Writer, value string) error {
	names := numeric.PassNames()
	width := 0
	for _, name := range names {
		if len(name) > width {
			width = len(name)
		}
	}

	if _, err := fmt.Fprintf(w, "value: %q\n", value); err != nil {
		return err
	}

	rounds := numeric.Trace(value)
	for i, round := range rounds {
		fmt.Fprintf(w, "round %d:\n", i+1)
		for j, step := range round.Steps {
			fmt.Fprintf(w, "  %-*s  %q\n", width, names[j], step)
		}
	}

	verdict := "not a numeric constant"
	if rounds[len(rounds)-1].Output() == "0" {
		verdict = "numeric constant"
	}
	_, err := fmt.Fprintf(w, "verdict: %s\n", verdict)
	return err
}
