package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/mmk-sim/sim"
)

// newTestRunCmd returns a command with the run flags registered and
// configPath pointing at path.
func newTestRunCmd(t *testing.T, path string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "run"}
	registerModelFlags(c)
	c.Flags().Float64Var(&arrivalRate, "arrival-rate", sim.DefaultSimConfig().ArrivalRate, "")
	c.Flags().Float64Var(&load, "load", 0, "")
	configPath = path
	t.Cleanup(func() { configPath = "" })
	return c
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestResolveSimConfig_DefaultsWithoutFileOrFlags(t *testing.T) {
	c := newTestRunCmd(t, "")
	cfg, err := resolveSimConfig(c)
	require.NoError(t, err)
	assert.Equal(t, sim.DefaultSimConfig(), cfg)
}

func TestResolveSimConfig_FileOverridesDefaults(t *testing.T) {
	// GIVEN a config file setting some fields
	path := writeConfig(t, `
simulation:
  capacity: 6
  service_rate: 2
  departures: 500
  rng: partitioned
`)
	c := newTestRunCmd(t, path)

	// WHEN resolved
	cfg, err := resolveSimConfig(c)
	require.NoError(t, err)

	// THEN file values win and unset keys keep defaults
	assert.Equal(t, 6, cfg.Capacity)
	assert.Equal(t, 2.0, cfg.ServiceRate)
	assert.Equal(t, int64(500), cfg.Departures)
	assert.Equal(t, sim.RNGPartitioned, cfg.RNG)
	assert.Equal(t, sim.DefaultSeed, cfg.Seed)
	assert.Equal(t, sim.DefaultServers, cfg.Servers)
}

func TestResolveSimConfig_FlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "simulation:\n  capacity: 6\n  seed: 7\n")
	c := newTestRunCmd(t, path)
	require.NoError(t, c.Flags().Set("capacity", "3"))

	cfg, err := resolveSimConfig(c)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Capacity)
	assert.Equal(t, int64(7), cfg.Seed)
}

func TestResolveSimConfig_LoadFromFileUsesFinalServiceRate(t *testing.T) {
	path := writeConfig(t, "simulation:\n  load: 0.5\n")
	c := newTestRunCmd(t, path)
	require.NoError(t, c.Flags().Set("service-rate", "4"))

	cfg, err := resolveSimConfig(c)
	require.NoError(t, err)
	assert.Equal(t, 0.5*2*4, cfg.ArrivalRate)
}

func TestResolveSimConfig_LoadFlagOverridesArrivalRate(t *testing.T) {
	c := newTestRunCmd(t, "")
	require.NoError(t, c.Flags().Set("arrival-rate", "9"))
	require.NoError(t, c.Flags().Set("load", "0.25"))

	cfg, err := resolveSimConfig(c)
	require.NoError(t, err)
	assert.Equal(t, 0.25*2*3, cfg.ArrivalRate)
}

func TestResolveSimConfig_UnknownFieldRejected(t *testing.T) {
	// Strict parsing: typos must cause errors
	path := writeConfig(t, "simulation:\n  capacty: 6\n")
	c := newTestRunCmd(t, path)

	_, err := resolveSimConfig(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capacty")
}

func TestResolveSimConfig_InvalidValueRejected(t *testing.T) {
	c := newTestRunCmd(t, "")
	require.NoError(t, c.Flags().Set("capacity", "1"))

	_, err := resolveSimConfig(c)
	assert.True(t, errors.Is(err, sim.ErrInvalidConfiguration), "got %v", err)
}

func TestResolveSimConfig_MissingFile(t *testing.T) {
	c := newTestRunCmd(t, filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := resolveSimConfig(c)
	assert.Error(t, err)
}
