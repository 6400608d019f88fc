// Package app defines the explicit application state shared by the
// interaction controller, the editor binding and the presenter, together with
// the capabilities those components are given instead of touching the UI.
package app

import (
	"github.com/vanderheijden86/bubblemap/pkg/graph"
	"github.com/vanderheijden86/bubblemap/pkg/model"
	"github.com/vanderheijden86/bubblemap/pkg/view"
)

// LinkType names the kind of link being drawn.
type LinkType string

const LinkSupporting LinkType = "supporting"

// LinkMode is armed from the context menu and waits for a target click.
type LinkMode struct {
	FromID string
	Type   LinkType
}

// EditorState tracks what the node form is bound to.
type EditorState struct {
	IsNew     bool
	CurrentID string
}

// State is the whole mutable session: graph, view, selection, editor and
// link mode. It is only touched from the event loop.
type State struct {
	Graph      *graph.Store
	View       *view.Transform
	SelectedID string
	Editor     EditorState
	LinkMode   *LinkMode
}

// NewState wraps a graph and a view.
func NewState(g *graph.Store, v *view.Transform) *State {
	return &State{Graph: g, View: v}
}

// Selected returns the selected node, or nil when nothing (or a stale id) is
// selected.
func (s *State) Selected() *model.Node {
	if s.SelectedID == "" {
		return nil
	}
	return s.Graph.FindNode(s.SelectedID)
}

// ClearSelection drops the selection and unbinds the editor.
func (s *State) ClearSelection() {
	s.SelectedID = ""
	s.Editor = EditorState{}
}

// Prompter is the blocking dialog capability: text input, confirmation and
// alerts. Prompt reports ok=false when the dialog was dismissed.
type Prompter interface {
	Prompt(message, def string) (string, bool)
	Confirm(message string) bool
	Alert(message string)
}

// Syncer regenerates the presentation from state.
type Syncer interface {
	Sync(st *State)
}

// SyncFunc adapts a function to Syncer.
type SyncFunc func(st *State)

func (f SyncFunc) Sync(st *State) { f(st) }
