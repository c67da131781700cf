// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pmc

import "testing"

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "idle"},
		{StateFetchingPage, "fetching"},
		{StateAggregating, "aggregating"},
		{StateDone, "done"},
		{StateFailed, "failed"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestInProgress(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{StateIdle, false},
		{StateFetchingPage, true},
		{StateAggregating, true},
		{StateDone, false},
		{StateFailed, false},
	}
	for _, tt := range tests {
		s := &Session{State: tt.state}
		if got := s.InProgress(); got != tt.want {
			t.Errorf("InProgress() in state %v = %v, want %v", tt.state, got, tt.want)
		}
	}
}
