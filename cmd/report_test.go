package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/mmk-sim/sim"
	"github.com/inference-sim/mmk-sim/sim/sweep"
	"github.com/inference-sim/mmk-sim/sim/trace"
)

func init() {
	color.NoColor = true
}

func TestPrintSummary_WritesHeaderAndJSON(t *testing.T) {
	// GIVEN a summary from a short run
	cfg := sim.DefaultSimConfig()
	cfg.Departures = 100
	s, err := sim.NewSimulator(cfg)
	require.NoError(t, err)
	summary, err := s.Run()
	require.NoError(t, err)

	// WHEN printed
	var buf bytes.Buffer
	require.NoError(t, printSummary(&buf, summary))

	// THEN the header is followed by JSON that decodes back to the summary
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "=== Simulation Metrics ===\n"), out)
	var decoded sim.RunSummary
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(out, "=== Simulation Metrics ===\n")), &decoded))
	assert.Equal(t, summary, decoded)
	assert.Contains(t, out, `"blocking_probability"`)
}

func TestPrintTrace_LimitAndSummaryLine(t *testing.T) {
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelEvents, Limit: 2})
	st.OnEvent(trace.EventRecord{Kind: "a", CustomerID: 1, Time: 0.5})
	st.OnEvent(trace.EventRecord{Kind: "d", CustomerID: 1, Time: 0.75, Departures: 1})
	st.OnEvent(trace.EventRecord{Kind: "a", CustomerID: 2, Time: 1})

	var buf bytes.Buffer
	printTrace(&buf, st)

	out := buf.String()
	assert.Contains(t, out, "a(000001): 0.500\n")
	assert.Contains(t, out, "d(000001): 0.750 [1]\n")
	assert.Contains(t, out, "... 1 more events not shown")
	assert.Contains(t, out, "shown: 1 arrivals (0 blocked), 1 departures")
}

func TestPrintTrace_Disabled_WritesNothing(t *testing.T) {
	var buf bytes.Buffer
	printTrace(&buf, trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelNone}))
	assert.Empty(t, buf.String())
}

func TestPrintSweep_RowsAndSeries(t *testing.T) {
	base := sim.DefaultSimConfig()
	base.Departures = 200
	res, err := sweep.Run(base, []float64{0.5, 1}, sweep.Options{WithAnalytic: true})
	require.NoError(t, err)

	var buf bytes.Buffer
	printSweep(&buf, res)

	out := buf.String()
	assert.Contains(t, out, "=== Load Sweep ===")
	assert.Contains(t, out, "=== Series ===")
	assert.Equal(t, 2, strings.Count(out, "analytic"))
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// header, column names, 2 x (sim + analytic) rows, series header, 4 series
	assert.Len(t, lines, 1+1+4+1+4)
}
