// Package testutil provides shared test infrastructure for the queue simulator.
// It consolidates golden dataset types and assertion helpers used across
// sim/ and its sub-package tests.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
// The values were produced by the reference program for K=4, mu=3 over the
// ten sweep loads 0.1..1.0.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase represents a single run from the golden dataset.
type GoldenTestCase struct {
	Capacity    int           `json:"capacity"`
	ServiceRate float64       `json:"service_rate"`
	ArrivalRate float64       `json:"arrival_rate"`
	Departures  int64         `json:"departures"`
	Metrics     GoldenMetrics `json:"metrics"`
}

// GoldenMetrics represents the expected statistics of a golden run.
type GoldenMetrics struct {
	// Exact match
	Blocked int64 `json:"blocked"`

	// Report values
	AverageCustomers    float64 `json:"average_customers"`
	AverageSojournTime  float64 `json:"average_sojourn_time"`
	BlockingProbability float64 `json:"blocking_probability"`
	Utilization         float64 `json:"utilization"`

	// Raw accumulators
	EndTime         float64 `json:"end_time"`
	Area            float64 `json:"area"`
	OperationTime   float64 `json:"operation_time"`
	LastSojournTime float64 `json:"last_sojourn_time"`
}

// GoldenTrace represents testdata/golden_trace.json: every event processed by
// the reference program for one short run.
type GoldenTrace struct {
	Capacity    int                `json:"capacity"`
	ServiceRate float64            `json:"service_rate"`
	ArrivalRate float64            `json:"arrival_rate"`
	Departures  int64              `json:"departures"`
	Blocked     int64              `json:"blocked"`
	Events      []GoldenTraceEvent `json:"events"`
}

// GoldenTraceEvent is one processed event of a GoldenTrace.
type GoldenTraceEvent struct {
	Kind     string  `json:"kind"`
	Customer int64   `json:"customer"`
	Time     float64 `json:"time"`
	Blocked  bool    `json:"blocked"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()
	var dataset GoldenDataset
	loadTestdataJSON(t, "goldendataset.json", &dataset)
	return &dataset
}

// LoadGoldenTrace loads the golden event trace from the testdata directory.
func LoadGoldenTrace(t *testing.T) *GoldenTrace {
	t.Helper()
	var tr GoldenTrace
	loadTestdataJSON(t, "golden_trace.json", &tr)
	return &tr
}

// loadTestdataJSON resolves name relative to this source file:
// sim/internal/testutil/ → testdata/.
func loadTestdataJSON(t *testing.T, name string, v any) {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", name)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("Failed to parse %s: %v", name, err)
	}
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
