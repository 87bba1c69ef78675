package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent_Valid(t *testing.T) {
	e, err := NewEvent(Arrival, 1.5, 3)
	require.NoError(t, err)
	assert.Equal(t, Event{Kind: Arrival, Time: 1.5, CustomerID: 3}, e)
}

func TestNewEvent_Invalid(t *testing.T) {
	tests := []struct {
		name string
		kind EventKind
		time float64
		id   int64
	}{
		{"zero kind", EventKind(0), 1, 1},
		{"unknown kind", EventKind(7), 1, 1},
		{"negative time", Arrival, -0.1, 1},
		{"NaN time", Departure, math.NaN(), 1},
		{"infinite time", Departure, math.Inf(1), 1},
		{"zero customer", Arrival, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEvent(tt.kind, tt.time, tt.id)
			assert.True(t, errors.Is(err, ErrInvalidEvent), "got %v", err)
		})
	}
}

func TestEvent_String(t *testing.T) {
	assert.Equal(t, "a(000001): 0.967", mustEvent(Arrival, 0.9666657598230716, 1).String())
	assert.Equal(t, "d(123456): 12.000", mustEvent(Departure, 12, 123456).String())
}

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "a", Arrival.String())
	assert.Equal(t, "d", Departure.String())
	assert.Equal(t, "EventKind(9)", EventKind(9).String())
}
