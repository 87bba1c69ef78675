package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/mmk-sim/sim"
)

// captureStdout runs fn with os.Stdout redirected and returns what it wrote.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	fn()

	_ = w.Close()
	os.Stdout = old
	return <-done
}

func TestRootCmd_HasRunAndSweep(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["run"], "run subcommand registered")
	assert.True(t, names["sweep"], "sweep subcommand registered")
}

func TestRunCmd_FlagDefaults(t *testing.T) {
	def := sim.DefaultSimConfig()
	flags := runCmd.Flags()

	for name, want := range map[string]string{
		"capacity":     "4",
		"service-rate": "3",
		"departures":   "100000",
		"seed":         "1234",
		"rng":          def.RNG,
		"log":          "error",
		"trace":        "none",
	} {
		f := flags.Lookup(name)
		require.NotNil(t, f, "flag --%s", name)
		assert.Equal(t, want, f.DefValue, "flag --%s", name)
	}
	assert.NotNil(t, sweepCmd.Flags().Lookup("steps"))
	assert.NotNil(t, sweepCmd.Flags().Lookup("analytic"))
	assert.Nil(t, sweepCmd.Flags().Lookup("arrival-rate"), "sweep derives lambda from the load")
}

func TestRunCmd_Execute_PrintsSummaryAndTrace(t *testing.T) {
	// GIVEN a short run with event tracing
	rootCmd.SetArgs([]string{"run", "--departures", "5", "--capacity", "2", "--trace", "events", "--trace-limit", "3"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	// WHEN the command executes
	out := captureStdout(t, func() {
		require.NoError(t, rootCmd.Execute())
	})

	// THEN the trace and the metrics JSON are on stdout
	assert.Contains(t, out, "=== Event Trace ===")
	assert.Contains(t, out, "a(000001): ")
	assert.Contains(t, out, "=== Simulation Metrics ===")
	assert.Contains(t, out, `"departures": 5`)
	assert.Contains(t, out, `"capacity": 2`)
}
