package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bracket-sim/bracket-sim/sim/predict"
)

var predictorsCmd = &cobra.Command{
	Use:   "predictors",
	Short: "List the available predictors",
	Run: func(cmd *cobra.Command, args []string) {
		listPredictors(os.Stdout)
	},
}

func listPredictors(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, name := range predict.Names() {
		fmt.Fprintf(tw, "%s\t%s\n", name, predict.Describe(name))
	}
	tw.Flush()
}
