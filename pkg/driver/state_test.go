package driver

import (
	"errors"
	"testing"
)

func TestStateUpdate(t *testing.T) {
	tests := []struct {
		name    string
		from    State
		to      State
		wantErr bool
	}{
		{"closed to opened", StateClosed, StateOpened, false},
		{"opened to running", StateOpened, StateRunning, false},
		{"running to opened", StateRunning, StateOpened, false},
		{"running to closed", StateRunning, StateClosed, false},
		{"opened to closed", StateOpened, StateClosed, false},
		{"closed to running", StateClosed, StateRunning, true},
		{"opened to opened", StateOpened, StateOpened, true},
		{"running to running", StateRunning, StateRunning, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.from
			err := s.Update(tt.to, func() error { return nil })
			if (err != nil) != tt.wantErr {
				t.Fatalf("Update(%s) from %s: err = %v, wantErr %v", tt.to, tt.from, err, tt.wantErr)
			}
			if tt.wantErr && s != tt.from {
				t.Errorf("state changed on rejected transition: %s", s)
			}
			if !tt.wantErr && s != tt.to {
				t.Errorf("state = %s, want %s", s, tt.to)
			}
		})
	}
}

func TestStateUpdateKeepsStateOnFailure(t *testing.T) {
	s := StateClosed
	failure := errors.New("hardware said no")
	if err := s.Update(StateOpened, func() error { return failure }); !errors.Is(err, failure) {
		t.Fatalf("expected the function error, got %v", err)
	}
	if s != StateClosed {
		t.Errorf("state must stay closed after a failed transition, got %s", s)
	}
}
