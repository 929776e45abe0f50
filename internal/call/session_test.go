package call

import (
	"testing"
	"time"
)

func TestTerminalStates(t *testing.T) {
	terminal := []State{StateDeclined, StateMissed, StateEnded, StateFailed}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Fatalf("%s must be terminal", s)
		}
	}
	active := []State{StateIdle, StateCalling, StateRinging, StateAnswered, StateConnected}
	for _, s := range active {
		if s.Terminal() {
			t.Fatalf("%s must not be terminal", s)
		}
	}
}

func TestTransitions(t *testing.T) {
	cases := []struct {
		from State
		ev   Event
		want State
		ok   bool
	}{
		{StateIdle, EventDial, StateCalling, true},
		{StateIdle, EventIncoming, StateRinging, true},
		{StateCalling, EventAnswerRemote, StateAnswered, true},
		{StateCalling, EventDeclineRemote, StateDeclined, true},
		{StateCalling, EventHangupLocal, StateEnded, true},
		{StateRinging, EventAnswerLocal, StateAnswered, true},
		{StateRinging, EventDeclineLocal, StateDeclined, true},
		{StateRinging, EventRingTimeout, StateMissed, true},
		{StateRinging, EventHangupRemote, StateEnded, true},
		{StateAnswered, EventMediaConnected, StateConnected, true},
		{StateAnswered, EventMediaFailed, StateFailed, true},
		{StateConnected, EventHangupLocal, StateEnded, true},
		{StateConnected, EventHangupRemote, StateEnded, true},

		// inapplicable events are dropped, never errors
		{StateIdle, EventAnswerLocal, "", false},
		{StateCalling, EventRingTimeout, "", false},
		{StateCalling, EventAnswerLocal, "", false},
		{StateConnected, EventAnswerRemote, "", false},
		{StateEnded, EventHangupRemote, "", false},
		{StateDeclined, EventAnswerLocal, "", false},
		{StateMissed, EventRingTimeout, "", false},
		{StateFailed, EventMediaConnected, "", false},
	}
	for _, c := range cases {
		got, ok := Next(c.from, c.ev)
		if ok != c.ok {
			t.Fatalf("%s + %s: applies=%v, want %v", c.from, c.ev, ok, c.ok)
		}
		if ok && got != c.want {
			t.Fatalf("%s + %s: got %s, want %s", c.from, c.ev, got, c.want)
		}
	}
}

func TestNoTransitionOutOfTerminal(t *testing.T) {
	events := []Event{
		EventDial, EventIncoming, EventAnswerLocal, EventAnswerRemote,
		EventDeclineLocal, EventDeclineRemote, EventHangupLocal,
		EventHangupRemote, EventRingTimeout, EventMediaConnected, EventMediaFailed,
	}
	for _, s := range []State{StateDeclined, StateMissed, StateEnded, StateFailed} {
		for _, ev := range events {
			if _, ok := Next(s, ev); ok {
				t.Fatalf("terminal state %s must not transition on %s", s, ev)
			}
		}
	}
}

func TestDurationSeconds(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	connected := base.Add(5 * time.Second)

	s := &session{startedAt: base, endedAt: base.Add(65 * time.Second)}
	if got := s.durationSeconds(); got != 0 {
		t.Fatalf("never-connected session must have zero duration, got %d", got)
	}

	s.connectedAt = &connected
	if got := s.durationSeconds(); got != 60 {
		t.Fatalf("duration = %d, want 60", got)
	}
}

func TestStatusText(t *testing.T) {
	if StateDeclined.StatusText() != "Call Declined" {
		t.Fatalf("unexpected declined status: %q", StateDeclined.StatusText())
	}
	if StateMissed.StatusText() != "Call Missed" {
		t.Fatalf("unexpected missed status: %q", StateMissed.StatusText())
	}
	if StateConnected.StatusText() != "Connected" {
		t.Fatalf("unexpected connected status: %q", StateConnected.StatusText())
	}
}
