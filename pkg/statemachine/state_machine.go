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

// Package statemachine is a small generic finite state machine with event
// transitions, enter hooks and a bounded transition history.
package statemachine

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// ErrInvalidTransition is wrapped by every rejected transition.
var ErrInvalidTransition = errors.New("invalid transition")

type Event string

type TransitionHook[T comparable] func(from, to T, event Event) error

type StateHook[T comparable] func(state T) error

type TransitionRecord[T comparable] struct {
	From      T
	To        T
	Event     Event
	Timestamp time.Time
	Error     error
}

type transitionKey[T comparable] struct {
	From  T
	Event Event
}

type StateMachine[T comparable] struct {
	mu sync.RWMutex

	current T
	initial T

	allowed map[T][]T
	events  map[transitionKey[T]]T

	history        []TransitionRecord[T]
	maxHistorySize int

	onTransition []TransitionHook[T]
	onEnter      map[T][]StateHook[T]
}

func NewWithState[T comparable](initial T) *StateMachine[T] {
	return &StateMachine[T]{
		current:        initial,
		initial:        initial,
		allowed:        make(map[T][]T),
		events:         make(map[transitionKey[T]]T),
		onEnter:        make(map[T][]StateHook[T]),
		maxHistorySize: 100,
	}
}

// Allow registers direct transitions from one state to the given targets.
func (sm *StateMachine[T]) Allow(from T, to ...T) *StateMachine[T] {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for _, target := range to {
		if !slices.Contains(sm.allowed[from], target) {
			sm.allowed[from] = append(sm.allowed[from], target)
		}
	}
	return sm
}

// AddEventTransition binds event in state from to the target state.
func (sm *StateMachine[T]) AddEventTransition(from T, event Event, to T) *StateMachine[T] {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.events[transitionKey[T]{From: from, Event: event}] = to
	if !slices.Contains(sm.allowed[from], to) {
		sm.allowed[from] = append(sm.allowed[from], to)
	}
	return sm
}

func (sm *StateMachine[T]) OnTransition(h TransitionHook[T]) *StateMachine[T] {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.onTransition = append(sm.onTransition, h)
	return sm
}

func (sm *StateMachine[T]) OnEnter(state T, h StateHook[T]) *StateMachine[T] {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.onEnter[state] = append(sm.onEnter[state], h)
	return sm
}

func (sm *StateMachine[T]) Current() T {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.current
}

func (sm *StateMachine[T]) Initial() T {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.initial
}

func (sm *StateMachine[T]) Is(state T) bool {
	return sm.Current() == state
}

func (sm *StateMachine[T]) CanTransitionTo(to T) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return slices.Contains(sm.allowed[sm.current], to)
}

func (sm *StateMachine[T]) CanTriggerEvent(event Event) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	_, ok := sm.events[transitionKey[T]{From: sm.current, Event: event}]
	return ok
}

// Reset returns to the initial state and clears the history.
func (sm *StateMachine[T]) Reset() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.current = sm.initial
	sm.history = nil
}

func (sm *StateMachine[T]) History() []TransitionRecord[T] {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return slices.Clone(sm.history)
}

func (sm *StateMachine[T]) SetMaxHistorySize(size int) *StateMachine[T] {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.maxHistorySize = size
	if len(sm.history) > size {
		sm.history = sm.history[len(sm.history)-size:]
	}
	return sm
}

// TransitionTo moves from the current state to to, if allowed.
func (sm *StateMachine[T]) TransitionTo(to T) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.transition(sm.current, to, "")
}

// TriggerEvent fires event from the current state.
func (sm *StateMachine[T]) TriggerEvent(event Event) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	to, ok := sm.events[transitionKey[T]{From: sm.current, Event: event}]
	if !ok {
		return fmt.Errorf("%w: no transition for event %q in state %v", ErrInvalidTransition, event, sm.current)
	}
	return sm.transition(sm.current, to, event)
}

// transition must be called with mu held. A failing hook leaves the machine in
// its previous state.
func (sm *StateMachine[T]) transition(from, to T, event Event) (err error) {
	defer func() {
		sm.history = append(sm.history, TransitionRecord[T]{
			From:      from,
			To:        to,
			Event:     event,
			Timestamp: time.Now(),
			Error:     err,
		})
		if len(sm.history) > sm.maxHistorySize {
			sm.history = sm.history[len(sm.history)-sm.maxHistorySize:]
		}
	}()

	if !slices.Contains(sm.allowed[from], to) {
		return fmt.Errorf("%w: %v -> %v", ErrInvalidTransition, from, to)
	}
	for _, h := range sm.onTransition {
		if err := h(from, to, event); err != nil {
			return fmt.Errorf("transition hook failed: %w", err)
		}
	}
	for _, h := range sm.onEnter[to] {
		if err := h(to); err != nil {
			return fmt.Errorf("enter hook failed for state %v: %w", to, err)
		}
	}
	sm.current = to
	return nil
}

// ToDot renders the transition graph in graphviz format.
func (sm *StateMachine[T]) ToDot(name string) string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	var b strings.Builder
	fmt.Fprintf(&b, "digraph %s {\n", name)
	b.WriteString("  rankdir=LR;\n")
	fmt.Fprintf(&b, "  start [shape=point];\n  start -> %q;\n", fmt.Sprint(sm.initial))

	keys := make([]transitionKey[T], 0, len(sm.events))
	for k := range sm.events {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b transitionKey[T]) int {
		if c := strings.Compare(fmt.Sprint(a.From), fmt.Sprint(b.From)); c != 0 {
			return c
		}
		return strings.Compare(string(a.Event), string(b.Event))
	})
	for _, k := range keys {
		fmt.Fprintf(&b, "  %q -> %q [label=%q];\n", fmt.Sprint(k.From), fmt.Sprint(sm.events[k]), string(k.Event))
	}
	b.WriteString("}\n")
	return b.String()
}
