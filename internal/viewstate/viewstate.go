// Package viewstate models which recipe view the presentation layer has
// open as an explicit tagged variant, so states like "editing nothing"
// cannot be represented at all.
package viewstate

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrBadTransition is returned for transitions the state machine forbids.
var ErrBadTransition = errors.New("illegal view transition")

// Kind tags the variant.
type Kind string

const (
	Closed   Kind = "closed"
	Viewing  Kind = "viewing"
	Editing  Kind = "editing"
	Creating Kind = "creating"
)

// State is one of Closed, Viewing(id), Editing(id) or Creating.
type State struct {
	Kind     Kind      `json:"kind"`
	RecipeID uuid.UUID `json:"recipe_id,omitempty"`
}

// Machine tracks the current view state and validates transitions:
//
//	Closed   -> Viewing(id) | Creating
//	Viewing  -> Editing(same id) | Closed
//	Editing  -> Viewing(same id) | Closed
//	Creating -> Closed
type Machine struct {
	state State
}

func NewMachine() *Machine {
	return &Machine{state: State{Kind: Closed}}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Open starts viewing a recipe. Only legal from Closed.
func (m *Machine) Open(id uuid.UUID) error {
	if m.state.Kind != Closed {
		return fmt.Errorf("%w: open from %s", ErrBadTransition, m.state.Kind)
	}
	if id == uuid.Nil {
		return fmt.Errorf("%w: open without a recipe", ErrBadTransition)
	}
	m.state = State{Kind: Viewing, RecipeID: id}
	return nil
}

// Edit switches the currently viewed recipe into editing.
func (m *Machine) Edit() error {
	if m.state.Kind != Viewing {
		return fmt.Errorf("%w: edit from %s", ErrBadTransition, m.state.Kind)
	}
	m.state.Kind = Editing
	return nil
}

// Done leaves editing back to viewing the same recipe.
func (m *Machine) Done() error {
	if m.state.Kind != Editing {
		return fmt.Errorf("%w: done from %s", ErrBadTransition, m.state.Kind)
	}
	m.state.Kind = Viewing
	return nil
}

// Create opens the new-recipe form. Only legal from Closed.
func (m *Machine) Create() error {
	if m.state.Kind != Closed {
		return fmt.Errorf("%w: create from %s", ErrBadTransition, m.state.Kind)
	}
	m.state = State{Kind: Creating}
	return nil
}

// Close dismisses whatever is open. Always legal.
func (m *Machine) Close() {
	m.state = State{Kind: Closed}
}
