package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bracket-sim/bracket-sim/sim"
	"github.com/bracket-sim/bracket-sim/sim/stats"
	"github.com/bracket-sim/bracket-sim/sim/store"
)

// dataSource is an opened StatsProvider plus the metadata the commands print.
type dataSource struct {
	provider sim.StatsProvider
	seasons  []int
	names    map[sim.TeamID]string
	close    func() error
}

// isStorePath reports whether path names a SQLite file written by import.
func isStorePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// openData opens a Kaggle CSV directory or an imported SQLite store.
func openData(path, prefix string) (*dataSource, error) {
	if isStorePath(path) {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("opening store: %w", err)
		}
		st, err := store.Open(path)
		if err != nil {
			return nil, err
		}
		seasons, err := st.Seasons()
		if err != nil {
			st.Close()
			return nil, err
		}
		names, err := st.TeamNames()
		if err != nil {
			st.Close()
			return nil, err
		}
		return &dataSource{provider: st, seasons: seasons, names: names, close: st.Close}, nil
	}

	if prefix == "" {
		prefix = stats.DefaultKagglePrefix
	}
	ds, err := stats.LoadKaggleDir(path, prefix)
	if err != nil {
		return nil, err
	}
	return &dataSource{
		provider: ds,
		seasons:  ds.Seasons(),
		names:    ds.TeamNames(),
		close:    func() error { return nil },
	}, nil
}

// teamLabel renders "Name (W01)" when name and seed are known.
func (d *dataSource) teamLabel(id sim.TeamID, view sim.StatsView) string {
	label := d.names[id]
	if label == "" {
		label = fmt.Sprintf("team %d", id)
	}
	if view == nil {
		return label
	}
	if t, err := view.Team(id); err == nil && !t.Seed.IsZero() {
		label += " (" + t.Seed.String() + ")"
	}
	return label
}
