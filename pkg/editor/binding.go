// Package editor binds the node form to the graph: loading a node into the
// form, creating, saving and deleting.
package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vanderheijden86/bubblemap/pkg/app"
	"github.com/vanderheijden86/bubblemap/pkg/graph"
	"github.com/vanderheijden86/bubblemap/pkg/model"
)

const (
	MsgTitleRequired = "Please enter a title for the node."
	MsgConfirmDelete = "Delete this node? Links to and from it will also be removed."
)

// Form mirrors the editable fields of a node.
type Form struct {
	ID      string
	Title   string
	Summary string
	Content string
	Bubbles []string
}

// BubbleOption is one checkbox of the membership set.
type BubbleOption struct {
	ID      string
	Title   string
	Checked bool
}

// Binding keeps the form in sync with the selected node.
type Binding struct {
	Form Form

	prompt app.Prompter
	sync   app.Syncer
	newID  func() string
}

// New creates a binding that reports through prompt and re-renders through sync.
func New(prompt app.Prompter, sync app.Syncer) *Binding {
	return &Binding{prompt: prompt, sync: sync, newID: NewID}
}

// NewID returns a fresh time-ordered node id.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return "node-" + uuid.NewString()
	}
	return "node-" + id.String()
}

// Load selects the node and copies its fields into the form. Stale ids are
// ignored and reported as false.
func (b *Binding) Load(st *app.State, id string) bool {
	n := st.Graph.FindNode(id)
	if n == nil {
		return false
	}
	st.SelectedID = n.ID
	st.Editor = app.EditorState{CurrentID: n.ID}
	b.Form = Form{
		ID:      n.ID,
		Title:   n.Title,
		Summary: n.Summary,
		Content: n.ContentHTML,
		Bubbles: append([]string(nil), n.Bubbles...),
	}
	b.sync.Sync(st)
	return true
}

// NewNode clears the form with a fresh id and enters creating mode. The node
// does not exist until Save.
func (b *Binding) NewNode(st *app.State) {
	b.Form = Form{ID: b.newID()}
	st.SelectedID = ""
	st.Editor = app.EditorState{IsNew: true}
	b.sync.Sync(st)
}

// Save validates the form and writes it to the graph. New nodes (or ids that
// do not resolve) are appended at the world point in the middle of the view.
func (b *Binding) Save(st *app.State) error {
	node := model.Node{
		Title:       b.Form.Title,
		Summary:     b.Form.Summary,
		ContentHTML: b.Form.Content,
		Bubbles:     append([]string{}, b.Form.Bubbles...),
	}
	if err := node.Validate(); err != nil {
		b.prompt.Alert(MsgTitleRequired)
		ve := &app.ValidationError{Field: "title", Message: err.Error()}
		var fe *model.FieldError
		if errors.As(err, &fe) {
			ve.Field, ve.Message = fe.Field, fe.Message
		}
		return fmt.Errorf("save node: %w", ve)
	}
	id := strings.TrimSpace(b.Form.ID)
	if id == "" {
		id = b.newID()
	}
	b.Form.ID = id
	node.ID = id
	bubbles := node.Bubbles

	if st.Editor.IsNew || st.Graph.FindNode(id) == nil {
		at := st.View.Center()
		node.X, node.Y = at.X, at.Y
		st.Graph.AddNode(node)
	} else {
		st.Graph.UpdateNode(id, graph.NodeUpdate{
			Title:       &b.Form.Title,
			Summary:     &b.Form.Summary,
			ContentHTML: &b.Form.Content,
			Bubbles:     &bubbles,
		})
	}
	st.Editor.IsNew = false
	b.Load(st, id)
	return nil
}

// Delete removes the bound node after confirmation, cascading to its links.
func (b *Binding) Delete(st *app.State) error {
	id := strings.TrimSpace(b.Form.ID)
	if id == "" || st.Graph.FindNode(id) == nil {
		return fmt.Errorf("delete node %q: %w", id, app.ErrNotFound)
	}
	if !b.prompt.Confirm(MsgConfirmDelete) {
		return app.ErrConfirmationDeclined
	}
	st.Graph.DeleteNode(id)
	if st.LinkMode != nil && st.LinkMode.FromID == id {
		st.LinkMode = nil
	}
	b.Form = Form{}
	st.ClearSelection()
	b.sync.Sync(st)
	return nil
}

// Toggle flips membership of a bubble in the form, keeping graph order.
func (b *Binding) Toggle(st *app.State, bubbleID string) {
	checked := map[string]bool{}
	for _, id := range b.Form.Bubbles {
		checked[id] = true
	}
	checked[bubbleID] = !checked[bubbleID]
	b.SetBubbles(st, checkedIDs(st, checked))
}

// SetBubbles stores the checked ids in graph bubble order, dropping unknown ids.
func (b *Binding) SetBubbles(st *app.State, ids []string) {
	checked := map[string]bool{}
	for _, id := range ids {
		checked[id] = true
	}
	b.Form.Bubbles = checkedIDs(st, checked)
}

// BubbleOptions mirrors the graph's bubbles with the form's checked state.
func (b *Binding) BubbleOptions(st *app.State) []BubbleOption {
	checked := map[string]bool{}
	for _, id := range b.Form.Bubbles {
		checked[id] = true
	}
	bubbles := st.Graph.Bubbles()
	opts := make([]BubbleOption, 0, len(bubbles))
	for _, bb := range bubbles {
		opts = append(opts, BubbleOption{ID: bb.ID, Title: bb.Title, Checked: checked[bb.ID]})
	}
	return opts
}

func checkedIDs(st *app.State, checked map[string]bool) []string {
	out := []string{}
	for _, bb := range st.Graph.Bubbles() {
		if checked[bb.ID] {
			out = append(out, bb.ID)
		}
	}
	return out
}
