package driver

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Run is a single (start, target, seed) reduction request.
type Run struct {
	Name   string `toml:"name"`
	Start  int    `toml:"start"`
	Target int    `toml:"target"`
	// Seed overrides the global seed when set, 0 asks for a random one
	Seed *uint32 `toml:"seed"`
}

// BaseName is the name the snapshots of the run are exported under.
func (r Run) BaseName() string {
	if r.Name != "" {
		return r.Name
	}
	return fmt.Sprintf("%dto%d", r.Start, r.Target)
}

func DefaultRuns() []Run {
	return []Run{
		{Start: 5000, Target: 50},
		{Start: 500, Target: 50},
		{Start: 5000, Target: 250},
		{Start: 5000, Target: 500},
	}
}

type runsFile struct {
	Runs []Run `toml:"run"`
}

// DecodeRuns parses a TOML run list:
//
//	[[run]]
//	name = "5000to50"
//	start = 5000
//	target = 50
//	seed = 7
func DecodeRuns(data string) ([]Run, error) {
	var f runsFile
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, fmt.Errorf("unable decode runs: %w", err)
	}
	return f.Runs, nil
}

func LoadRuns(path string) ([]Run, error) {
	var f runsFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("unable decode runs file %s: %w", path, err)
	}
	return f.Runs, nil
}

// RunsFor returns the runs of the configured file, or the default runs.
func RunsFor(cfg *Config) ([]Run, error) {
	if cfg.RunsFile == "" {
		return DefaultRuns(), nil
	}
	runs, err := LoadRuns(cfg.RunsFile)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("runs file %s has no runs", cfg.RunsFile)
	}
	return runs, nil
}
