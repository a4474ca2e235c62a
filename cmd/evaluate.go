package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bracket-sim/bracket-sim/sim"
	"github.com/bracket-sim/bracket-sim/sim/predict"
	"github.com/bracket-sim/bracket-sim/sim/stats"
)

var evaluateOpts runOptions

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score a predictor's simulated brackets against actual results",
	Run: func(cmd *cobra.Command, args []string) {
		opts := evaluateOpts
		if err := resolveOptions(cmd, &opts); err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := runEvaluate(os.Stdout, &opts); err != nil {
			logrus.Fatalf("Evaluation failed: %v", err)
		}
	},
}

// selectSeasons picks the seasons to evaluate: an explicit list, else the
// available seasons within [from, to] (zero bounds are open).
func selectSeasons(available, explicit []int, from, to int) ([]int, error) {
	if len(explicit) > 0 {
		return explicit, nil
	}
	var out []int
	for _, s := range available {
		if (from == 0 || s >= from) && (to == 0 || s <= to) {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no seasons in range %d..%d", from, to)
	}
	return out, nil
}

func runEvaluate(w io.Writer, opts *runOptions) error {
	if !predict.ValidPredictors[opts.predictor] {
		return fmt.Errorf("unknown predictor %q; valid predictors: %v", opts.predictor, predict.Names())
	}
	model, err := opts.loadModel()
	if err != nil {
		return err
	}
	data, err := openData(opts.data, opts.prefix)
	if err != nil {
		return err
	}
	defer data.close()

	seasons, err := selectSeasons(data.seasons, opts.seasons, opts.from, opts.to)
	if err != nil {
		return err
	}
	engine := sim.NewEngine(data.provider)
	engine.Parallelism = opts.parallel
	ev, err := engine.TourneySimVsActual(seasons, predict.Factory(opts.predictor, model, sim.NewSimulationKey(opts.seed)))
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"run_id":   ev.RunID,
		"seasons":  len(ev.Seasons),
		"failures": len(ev.Failures),
	}).Info("evaluation complete")

	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ev)
	}
	printEvaluation(w, ev)
	return nil
}

func printEvaluation(w io.Writer, ev *sim.Evaluation) {
	fmt.Fprintf(w, "Predictor %s (run %s)\n\n", ev.Predictor, ev.RunID)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEASON\tCORRECT\tGAMES\tACCURACY")
	for _, s := range ev.Seasons {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%.3f\n", s.Season, s.Tally.Correct, s.Tally.Total, s.Accuracy)
	}
	fmt.Fprintf(tw, "pooled\t%d\t%d\t%.3f\n", ev.Pooled.Correct, ev.Pooled.Total, ev.Accuracy)
	tw.Flush()
	fmt.Fprintf(w, "\nMean season accuracy: %.3f\n", ev.MeanSeasonAccuracy)
	if ev.Partial {
		fmt.Fprintf(w, "\nPartial result, %d season(s) skipped:\n", len(ev.Failures))
		for _, f := range ev.Failures {
			fmt.Fprintf(w, "  %d [%s] %s\n", f.Season, f.Kind, f.Message)
		}
	}
}

func init() {
	evaluateCmd.Flags().StringVar(&evaluateOpts.data, "data", "", "Kaggle CSV directory or .db store (default $"+envData+")")
	evaluateCmd.Flags().StringVar(&evaluateOpts.prefix, "prefix", stats.DefaultKagglePrefix, "Kaggle file name prefix")
	evaluateCmd.Flags().IntSliceVar(&evaluateOpts.seasons, "seasons", nil, "Seasons to evaluate (default: every available season)")
	evaluateCmd.Flags().IntVar(&evaluateOpts.from, "from", 0, "First season when --seasons is not set")
	evaluateCmd.Flags().IntVar(&evaluateOpts.to, "to", 0, "Last season when --seasons is not set")
	evaluateCmd.Flags().StringVar(&evaluateOpts.predictor, "predictor", predict.NameBetterSeed, "Predictor name (see 'bracketsim predictors')")
	evaluateCmd.Flags().Int64Var(&evaluateOpts.seed, "seed", 0, "Master seed; each season derives its own RNG from it")
	evaluateCmd.Flags().StringVar(&evaluateOpts.modelFile, "model", "", "YAML logistic model file")
	evaluateCmd.Flags().IntVar(&evaluateOpts.parallel, "parallel", 1, "Seasons simulated concurrently")
	evaluateCmd.Flags().BoolVar(&evaluateOpts.json, "json", false, "Print the evaluation as JSON")
}
