package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bracket-sim/bracket-sim/sim/stats"
	"github.com/bracket-sim/bracket-sim/sim/store"
)

var (
	importDir    string // Kaggle CSV directory
	importPrefix string // Kaggle file name prefix
	importDB     string // Destination SQLite file
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load Kaggle CSVs into a SQLite store for repeated runs",
	Run: func(cmd *cobra.Command, args []string) {
		if importDir == "" || importDB == "" {
			logrus.Fatalf("--kaggle-dir and --db are required")
		}
		if err := runImport(os.Stdout, importDir, importPrefix, importDB); err != nil {
			logrus.Fatalf("Import failed: %v", err)
		}
	},
}

func runImport(w io.Writer, dir, prefix, dbPath string) error {
	ds, err := stats.LoadKaggleDir(dir, prefix)
	if err != nil {
		return err
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Import(ds); err != nil {
		return err
	}
	seasons := ds.Seasons()
	if len(seasons) == 0 {
		fmt.Fprintf(w, "Imported no seasons into %s\n", dbPath)
		return nil
	}
	fmt.Fprintf(w, "Imported %d season(s) (%d-%d), %d teams into %s\n",
		len(seasons), seasons[0], seasons[len(seasons)-1], len(ds.TeamNames()), dbPath)
	return nil
}

func init() {
	importCmd.Flags().StringVar(&importDir, "kaggle-dir", "", "Kaggle March Madness CSV directory")
	importCmd.Flags().StringVar(&importPrefix, "prefix", stats.DefaultKagglePrefix, "Kaggle file name prefix")
	importCmd.Flags().StringVar(&importDB, "db", "", "SQLite file to write")
}
