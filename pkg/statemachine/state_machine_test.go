// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package statemachine

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doorState string

const (
	doorOpen   doorState = "OPEN"
	doorClosed doorState = "CLOSED"
	doorLocked doorState = "LOCKED"
)

func newDoor() *StateMachine[doorState] {
	sm := NewWithState(doorOpen)
	sm.AddEventTransition(doorOpen, "close", doorClosed).
		AddEventTransition(doorClosed, "open", doorOpen).
		AddEventTransition(doorClosed, "lock", doorLocked).
		AddEventTransition(doorLocked, "unlock", doorClosed)
	return sm
}

func TestStateMachine_Basic(t *testing.T) {
	sm := NewWithState(doorOpen)
	sm.Allow(doorOpen, doorClosed).Allow(doorClosed, doorOpen, doorLocked)

	assert.Equal(t, doorOpen, sm.Current())
	assert.Equal(t, doorOpen, sm.Initial())

	require.NoError(t, sm.TransitionTo(doorClosed))
	assert.True(t, sm.Is(doorClosed))

	require.NoError(t, sm.TransitionTo(doorLocked))
	err := sm.TransitionTo(doorOpen)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, doorLocked, sm.Current())
}

func TestStateMachine_TriggerEvent(t *testing.T) {
	sm := newDoor()

	assert.True(t, sm.CanTriggerEvent("close"))
	assert.False(t, sm.CanTriggerEvent("lock"))

	require.NoError(t, sm.TriggerEvent("close"))
	require.NoError(t, sm.TriggerEvent("lock"))
	assert.Equal(t, doorLocked, sm.Current())

	err := sm.TriggerEvent("open")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, doorLocked, sm.Current())
}

func TestStateMachine_Hooks(t *testing.T) {
	sm := newDoor()

	var transitions []string
	entered := 0
	sm.OnTransition(func(from, to doorState, event Event) error {
		transitions = append(transitions, string(from)+">"+string(to)+":"+string(event))
		return nil
	})
	sm.OnEnter(doorClosed, func(doorState) error {
		entered++
		return nil
	})

	require.NoError(t, sm.TriggerEvent("close"))
	require.NoError(t, sm.TriggerEvent("open"))
	require.NoError(t, sm.TriggerEvent("close"))

	assert.Equal(t, 2, entered)
	assert.Equal(t, []string{"OPEN>CLOSED:close", "CLOSED>OPEN:open", "OPEN>CLOSED:close"}, transitions)
}

func TestStateMachine_FailingHookKeepsState(t *testing.T) {
	sm := newDoor()
	sm.OnEnter(doorClosed, func(doorState) error {
		return errors.New("jammed")
	})

	err := sm.TriggerEvent("close")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jammed")
	assert.Equal(t, doorOpen, sm.Current())

	history := sm.History()
	require.Len(t, history, 1)
	assert.Error(t, history[0].Error)
}

func TestStateMachine_HistoryAndReset(t *testing.T) {
	sm := newDoor().SetMaxHistorySize(2)

	require.NoError(t, sm.TriggerEvent("close"))
	require.NoError(t, sm.TriggerEvent("open"))
	require.NoError(t, sm.TriggerEvent("close"))

	history := sm.History()
	require.Len(t, history, 2)
	assert.Equal(t, doorClosed, history[0].From)
	assert.Equal(t, Event("close"), history[1].Event)

	sm.Reset()
	assert.Equal(t, doorOpen, sm.Current())
	assert.Empty(t, sm.History())
}

func TestStateMachine_ToDot(t *testing.T) {
	dot := newDoor().ToDot("door")

	assert.True(t, strings.HasPrefix(dot, "digraph door {"))
	assert.Contains(t, dot, `"CLOSED" -> "LOCKED" [label="lock"];`)
	assert.Contains(t, dot, `start -> "OPEN";`)
}

func TestOnboardingStateMachine(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		want   OnboardingStep
		failAt int
	}{
		{name: "happy path", events: []Event{EventInvitationFound, EventOtpVerified, EventAccountCreated}, want: StepCompleted, failAt: -1},
		{name: "back from otp", events: []Event{EventInvitationFound, EventBack}, want: StepEmail, failAt: -1},
		{name: "back from password", events: []Event{EventInvitationFound, EventOtpVerified, EventBack}, want: StepOtp, failAt: -1},
		{name: "cannot skip otp", events: []Event{EventInvitationFound, EventAccountCreated}, want: StepOtp, failAt: 1},
		{name: "no back from email", events: []Event{EventBack}, want: StepEmail, failAt: 0},
		{name: "completed is terminal", events: []Event{EventInvitationFound, EventOtpVerified, EventAccountCreated, EventBack}, want: StepCompleted, failAt: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewOnboardingStateMachine()
			for i, ev := range tt.events {
				err := sm.TriggerEvent(ev)
				if i == tt.failAt {
					assert.ErrorIs(t, err, ErrInvalidTransition)
					continue
				}
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, sm.Current())
		})
	}
}

func TestOnboardingStep_IsTerminal(t *testing.T) {
	assert.True(t, StepCompleted.IsTerminal())
	assert.False(t, StepPassword.IsTerminal())
}
