// Package sims loads what-if simulation sets from a folder of JSON files.
// Each file is one named scenario: an array of hypothetical events layered
// onto the real forecast. The baseline ("Actual Balance") is the absence of
// a set and is handled by callers.
package sims

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mwolters/budgetcast/internal/model"
)

// Set is one named simulation scenario.
type Set struct {
	Name   string
	Events []model.Simulation
}

// Load reads every *.json file in dir. A missing directory yields no sets;
// malformed files are skipped with a warning so one broken scenario never
// takes down the forecast. Sets come back sorted by name.
func Load(dir string) ([]Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading simulations dir: %w", err)
	}

	var sets []Set
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		set, err := loadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("file", entry.Name()).Msg("skipping simulation file")
			continue
		}
		set.Name = strings.TrimSuffix(entry.Name(), ".json")
		sets = append(sets, set)
	}

	sort.Slice(sets, func(i, j int) bool { return sets[i].Name < sets[j].Name })
	return sets, nil
}

// Find returns the set with the given name.
func Find(sets []Set, name string) (Set, bool) {
	for _, s := range sets {
		if s.Name == name {
			return s, true
		}
	}
	return Set{}, false
}

func loadFile(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, err
	}

	var events []model.Simulation
	if err := json.Unmarshal(data, &events); err != nil {
		return Set{}, fmt.Errorf("parsing: %w", err)
	}

	// Dates must be valid ISO days before the events reach the engine.
	for _, ev := range events {
		if _, err := time.Parse("2006-01-02", ev.Date); err != nil {
			return Set{}, fmt.Errorf("event date %q: %w", ev.Date, err)
		}
	}

	return Set{Events: events}, nil
}
