package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/inference-sim/mmk-sim/sim"
	"github.com/inference-sim/mmk-sim/sim/sweep"
	"github.com/inference-sim/mmk-sim/sim/trace"
)

var headerColor = color.New(color.FgCyan, color.Bold)

// printSummary writes the run summary as indented JSON under a header.
func printSummary(w io.Writer, s sim.RunSummary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	headerColor.Fprintln(w, "=== Simulation Metrics ===")
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printTrace writes one line per recorded event. Nothing is written when
// tracing was off.
func printTrace(w io.Writer, st *trace.SimulationTrace) {
	if st == nil || len(st.Events) == 0 {
		return
	}
	headerColor.Fprintln(w, "=== Event Trace ===")
	for _, e := range st.Events {
		fmt.Fprintln(w, e.String())
	}
	if st.Dropped > 0 {
		fmt.Fprintf(w, "... %d more events not shown\n", st.Dropped)
	}
	sum := trace.Summarize(st)
	fmt.Fprintf(w, "shown: %d arrivals (%d blocked), %d departures\n", sum.Arrivals, sum.BlockedCount, sum.Departures)
}

// printSweep writes one table row per load, then the four series in load order.
func printSweep(w io.Writer, res *sweep.Result) {
	headerColor.Fprintln(w, "=== Load Sweep ===")
	fmt.Fprintf(w, "%-6s %-9s %-10s %-10s %-10s %-10s\n", "load", "lambda", "avg_n", "avg_time", "p_block", "util")
	for _, p := range res.Points {
		fmt.Fprintf(w, "%-6.2f %-9.4f %-10.5f %-10.6f %-10.5f %-10.5f\n",
			p.Load, p.Summary.ArrivalRate, p.Summary.AverageCustomers, p.Summary.AverageSojournTime,
			p.Summary.BlockingProbability, p.Summary.Utilization)
		if p.Analytic != nil {
			fmt.Fprintf(w, "%-6s %-9s %-10.5f %-10.6f %-10.5f %-10.5f\n",
				"", "analytic", p.Analytic.AverageCustomers, p.Analytic.MeanSojournTime,
				p.Analytic.BlockingProbability, p.Analytic.Utilization)
		}
	}

	headerColor.Fprintln(w, "=== Series ===")
	fmt.Fprintln(w, res.AverageCustomers)
	fmt.Fprintln(w, res.AverageTime)
	fmt.Fprintln(w, res.BlockingProbability)
	fmt.Fprintln(w, res.Utilization)
}
