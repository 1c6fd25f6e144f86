package state

import (
	"fmt"
	"slices"

	"github.com/five82/hnsearch/internal/hn"
)

// ListState is the remote list as the view sees it.
type ListState struct {
	Items     []hn.Item
	IsLoading bool
	IsError   bool
	LastError error
}

// Action is a state transition request. The set of actions is closed.
type Action interface {
	action()
}

// FetchStart marks a request as in flight.
type FetchStart struct{}

// FetchSuccess replaces the collection with Items.
type FetchSuccess struct {
	Items []hn.Item
}

// FetchFailure records a failed request; Err may be nil.
type FetchFailure struct {
	Err error
}

// Delete removes the item with ID from the collection.
type Delete struct {
	ID hn.ItemID
}

func (FetchStart) action()   {}
func (FetchSuccess) action() {}
func (FetchFailure) action() {}
func (Delete) action()       {}

// Apply returns the state that results from applying a to s. It has no side
// effects and never aliases a's payload. An action outside the closed set is a
// programming error and panics.
func Apply(s ListState, a Action) ListState {
	switch a := a.(type) {
	case FetchStart:
		s.IsLoading = true
		s.IsError = false
	case FetchSuccess:
		s.Items = cloneItems(a.Items)
		s.IsLoading = false
		s.IsError = false
		s.LastError = nil
	case FetchFailure:
		s.IsLoading = false
		s.IsError = true
		s.LastError = a.Err
	case Delete:
		// Every match goes, so a payload that repeated an id cannot leave a
		// copy behind. Linear scan; collections are one page of results.
		match := func(it hn.Item) bool { return it.ID == a.ID }
		if slices.ContainsFunc(s.Items, match) {
			s.Items = slices.DeleteFunc(cloneItems(s.Items), match)
			if len(s.Items) == 0 {
				s.Items = nil
			}
		}
	default:
		panic(fmt.Sprintf("state: unhandled action %T", a))
	}
	return s
}

// Store holds the current ListState. It is not safe for concurrent use: every
// Dispatch happens on the program's update loop.
type Store struct {
	state ListState

	// OnApply, when set, observes each action after it is applied.
	OnApply func(Action, ListState)
}

// Dispatch applies a to the stored state.
func (s *Store) Dispatch(a Action) {
	s.state = Apply(s.state, a)
	if s.OnApply != nil {
		s.OnApply(a, s.Snapshot())
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() ListState {
	snap := s.state
	snap.Items = cloneItems(s.state.Items)
	return snap
}

func cloneItems(items []hn.Item) []hn.Item {
	if len(items) == 0 {
		return nil
	}
	dup := make([]hn.Item, len(items))
	copy(dup, items)
	return dup
}
