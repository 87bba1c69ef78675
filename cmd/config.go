package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/mmk-sim/sim"
)

// FileConfig is the structure of the optional --config YAML file.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type FileConfig struct {
	Simulation SimulationSection `yaml:"simulation"`
}

// SimulationSection mirrors sim.SimConfig, plus an optional load that
// replaces arrival_rate.
type SimulationSection struct {
	sim.SimConfig `yaml:",inline"`
	Load          float64 `yaml:"load"`
}

// loadFileConfig parses path on top of the simulator defaults. Keys missing
// from the file keep their default values.
func loadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &FileConfig{Simulation: SimulationSection{SimConfig: sim.DefaultSimConfig()}}
	// Parse YAML with strict field checking: typos must cause errors
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// resolveSimConfig builds the run configuration: defaults, then the config
// file, then every flag the user set explicitly.
func resolveSimConfig(cmd *cobra.Command) (sim.SimConfig, error) {
	cfg := sim.DefaultSimConfig()
	var fileLoad float64
	if configPath != "" {
		fc, err := loadFileConfig(configPath)
		if err != nil {
			return sim.SimConfig{}, err
		}
		cfg = fc.Simulation.SimConfig
		fileLoad = fc.Simulation.Load
	}

	flags := cmd.Flags()
	if flags.Changed("capacity") {
		cfg.Capacity = capacity
	}
	if flags.Changed("service-rate") {
		cfg.ServiceRate = serviceRate
	}
	if flags.Changed("arrival-rate") {
		cfg.ArrivalRate = arrivalRate
	}
	if flags.Changed("departures") {
		cfg.Departures = departures
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("rng") {
		cfg.RNG = rngMode
	}
	// Load is applied last so it sees the final mu.
	switch {
	case flags.Changed("load"):
		cfg = cfg.WithLoad(load)
	case fileLoad != 0 && !flags.Changed("arrival-rate"):
		cfg = cfg.WithLoad(fileLoad)
	}

	if err := cfg.Validate(); err != nil {
		return sim.SimConfig{}, err
	}
	return cfg, nil
}
