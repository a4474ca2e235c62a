package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bracket-sim/bracket-sim/sim"
	"github.com/bracket-sim/bracket-sim/sim/predict"
	"github.com/bracket-sim/bracket-sim/sim/stats"
	"github.com/bracket-sim/bracket-sim/sim/trace"
)

var simulateOpts runOptions

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate one season's bracket with a predictor",
	Run: func(cmd *cobra.Command, args []string) {
		opts := simulateOpts
		if err := resolveOptions(cmd, &opts); err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := runSimulate(os.Stdout, &opts); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
	},
}

// simulatedGame is one resolved node in --json output.
type simulatedGame struct {
	Node   int        `json:"node"`
	Round  int        `json:"round"`
	TeamA  sim.TeamID `json:"team_a"`
	TeamB  sim.TeamID `json:"team_b"`
	Winner sim.TeamID `json:"winner"`
}

// simulateReport is the --json output of simulate.
type simulateReport struct {
	Season    int                 `json:"season"`
	Predictor string              `json:"predictor"`
	Champion  sim.TeamID          `json:"champion"`
	Winners   []sim.TeamID        `json:"winners"`
	Games     []simulatedGame     `json:"games"`
	Summary   *trace.TraceSummary `json:"summary,omitempty"`
}

func runSimulate(w io.Writer, opts *runOptions) error {
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

	season := opts.season
	if season == 0 {
		if len(data.seasons) == 0 {
			return fmt.Errorf("%s holds no seasons", opts.data)
		}
		season = data.seasons[len(data.seasons)-1]
	}

	var follow sim.TeamID
	if opts.follow != "" {
		if follow, err = stats.FindTeam(opts.follow, data.names); err != nil {
			return err
		}
	}

	key := sim.NewSimulationKey(opts.seed)
	p, err := predict.Factory(opts.predictor, model, key)(season)
	if err != nil {
		return err
	}
	engine := sim.NewEngine(data.provider)
	if opts.trace {
		engine.TraceLevel = trace.TraceLevelGames
	}
	res, err := engine.TourneySim(season, p)
	if err != nil {
		return err
	}
	view, err := data.provider.StatsForSeason(season)
	if err != nil {
		return err
	}

	var summary *trace.TraceSummary
	if res.Trace != nil {
		summary = trace.Summarize(res.Trace, seedLookup(view))
	}
	nodes := res.Bracket.Nodes()
	champion := res.Winners[res.Bracket.Final()]

	if opts.json {
		report := simulateReport{
			Season:    season,
			Predictor: sim.PredictorName(p),
			Champion:  champion,
			Winners:   res.Winners,
			Summary:   summary,
		}
		for _, n := range nodes {
			report.Games = append(report.Games, simulatedGame{
				Node: n.Index, Round: n.Round, TeamA: n.TeamA, TeamB: n.TeamB, Winner: n.Winner,
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	layout := res.Bracket.Layout()
	fmt.Fprintf(w, "Season %d, predictor %s\n", season, sim.PredictorName(p))
	for round := 0; round <= layout.Rounds(); round++ {
		header := false
		for _, n := range nodes {
			if n.Round != round {
				continue
			}
			if !header {
				fmt.Fprintf(w, "\n%s\n", roundName(layout, round))
				header = true
			}
			fmt.Fprintf(w, "  %s def. %s\n", data.teamLabel(n.Winner, view), data.teamLabel(loser(n), view))
		}
	}
	fmt.Fprintf(w, "\nChampion: %s\n", data.teamLabel(champion, view))

	if follow != 0 {
		printFollow(w, data, view, layout, nodes, follow)
	}
	if summary != nil {
		fmt.Fprintf(w, "\nPredictor calls: %d, play-ins: %d, upsets: %d (%.1f%%)\n",
			summary.TotalGames, summary.PlayIns, summary.Upsets, 100*summary.UpsetRate)
	}
	return nil
}

func loser(n sim.GameNode) sim.TeamID {
	if n.Winner == n.TeamA {
		return n.TeamB
	}
	return n.TeamA
}

// roundName labels a round for display.
func roundName(layout sim.Layout, round int) string {
	switch {
	case round == 0:
		return "Play-in"
	case round == layout.Rounds():
		return "Championship"
	case layout.GamesInRound(round) == 2:
		return "National semifinals"
	default:
		return fmt.Sprintf("Round of %d", 2*layout.GamesInRound(round))
	}
}

// printFollow prints one team's path through the simulated bracket.
func printFollow(w io.Writer, data *dataSource, view sim.StatsView, layout sim.Layout, nodes []sim.GameNode, team sim.TeamID) {
	fmt.Fprintf(w, "\nPath of %s\n", data.teamLabel(team, view))
	played := false
	for round := 0; round <= layout.Rounds(); round++ {
		for _, n := range nodes {
			if n.Round != round || (n.TeamA != team && n.TeamB != team) {
				continue
			}
			played = true
			opp := n.TeamA
			if opp == team {
				opp = n.TeamB
			}
			result := "beat"
			if n.Winner != team {
				result = "lost to"
			}
			fmt.Fprintf(w, "  %s: %s %s\n", roundName(layout, round), result, data.teamLabel(opp, view))
		}
	}
	if !played {
		fmt.Fprintln(w, "  not in this season's bracket")
	}
}

// seedLookup exposes integer seeds for trace summaries.
func seedLookup(view sim.StatsView) trace.SeedLookup {
	return func(team int) (int, bool) {
		t, err := view.Team(sim.TeamID(team))
		if err != nil || t.Seed.IsZero() {
			return 0, false
		}
		return t.Seed.Number, true
	}
}

func init() {
	simulateCmd.Flags().StringVar(&simulateOpts.data, "data", "", "Kaggle CSV directory or .db store (default $"+envData+")")
	simulateCmd.Flags().StringVar(&simulateOpts.prefix, "prefix", stats.DefaultKagglePrefix, "Kaggle file name prefix")
	simulateCmd.Flags().IntVar(&simulateOpts.season, "season", 0, "Season to simulate (default: latest available)")
	simulateCmd.Flags().StringVar(&simulateOpts.predictor, "predictor", predict.NameBetterSeed, "Predictor name (see 'bracketsim predictors')")
	simulateCmd.Flags().Int64Var(&simulateOpts.seed, "seed", 0, "Seed for tie-break and sampling randomness")
	simulateCmd.Flags().StringVar(&simulateOpts.modelFile, "model", "", "YAML logistic model file")
	simulateCmd.Flags().BoolVar(&simulateOpts.trace, "trace", false, "Record every predictor decision and print a summary")
	simulateCmd.Flags().StringVar(&simulateOpts.follow, "follow", "", "Print one team's path (fuzzy name match)")
	simulateCmd.Flags().BoolVar(&simulateOpts.json, "json", false, "Print the result as JSON")
}
