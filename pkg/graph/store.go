// Package graph holds the in-memory bubble, node and link collections.
//
// The store is owned by the single event-handling goroutine of the UI and does
// no locking. Lookups are linear; ids are caller supplied and not checked for
// uniqueness, so with duplicate ids the first match wins.
package graph

import (
	"github.com/vanderheijden86/bubblemap/pkg/model"
)

// Store owns the bubble, node and link collections.
type Store struct {
	bubbles []*model.Bubble
	nodes   []*model.Node
	links   []model.Link
}

// NodeUpdate carries the fields to merge into an existing node.
// Nil fields are left untouched.
type NodeUpdate struct {
	Title       *string
	Summary     *string
	ContentHTML *string
	Bubbles     *[]string
	X           *float64
	Y           *float64
}

// New builds a store from a snapshot. Node positions are kept as given.
func New(snap model.Snapshot) *Store {
	s := &Store{
		bubbles: make([]*model.Bubble, 0, len(snap.Bubbles)),
		nodes:   make([]*model.Node, 0, len(snap.Nodes)),
		links:   make([]model.Link, 0, len(snap.Links)),
	}
	for _, b := range snap.Bubbles {
		s.bubbles = append(s.bubbles, &b)
	}
	for _, n := range snap.Nodes {
		n := n.Clone()
		s.nodes = append(s.nodes, &n)
	}
	s.links = append(s.links, snap.Links...)
	return s
}

// FindNode returns the first node with the given id, or nil.
func (s *Store) FindNode(id string) *model.Node {
	for _, n := range s.nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// FindBubble returns the first bubble with the given id, or nil.
func (s *Store) FindBubble(id string) *model.Bubble {
	for _, b := range s.bubbles {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// AddNode appends a copy of n and returns the stored node.
func (s *Store) AddNode(n model.Node) *model.Node {
	stored := n.Clone()
	s.nodes = append(s.nodes, &stored)
	return &stored
}

// UpdateNode merges the non-nil fields of u into the node with the given id.
// It reports false when no node matches.
func (s *Store) UpdateNode(id string, u NodeUpdate) bool {
	n := s.FindNode(id)
	if n == nil {
		return false
	}
	if u.Title != nil {
		n.Title = *u.Title
	}
	if u.Summary != nil {
		n.Summary = *u.Summary
	}
	if u.ContentHTML != nil {
		n.ContentHTML = *u.ContentHTML
	}
	if u.Bubbles != nil {
		n.Bubbles = append([]string(nil), (*u.Bubbles)...)
	}
	if u.X != nil {
		n.X = *u.X
	}
	if u.Y != nil {
		n.Y = *u.Y
	}
	return true
}

// MoveNode sets a node's world position. Stale ids are ignored.
func (s *Store) MoveNode(id string, p model.Point) bool {
	return s.UpdateNode(id, NodeUpdate{X: &p.X, Y: &p.Y})
}

// DeleteNode removes the first node with the given id and every link that
// starts or ends at it. It returns whether a node was removed and how many
// links were pruned.
func (s *Store) DeleteNode(id string) (bool, int) {
	idx := -1
	for i, n := range s.nodes {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, 0
	}
	s.nodes = append(s.nodes[:idx], s.nodes[idx+1:]...)

	kept := s.links[:0]
	pruned := 0
	for _, l := range s.links {
		if l.Touches(id) {
			pruned++
			continue
		}
		kept = append(kept, l)
	}
	s.links = kept
	return true, pruned
}

// AddLink appends a link unconditionally. Callers reject self-links.
func (s *Store) AddLink(from, to, label string) model.Link {
	l := model.Link{From: from, To: to, Label: label}
	s.links = append(s.links, l)
	return l
}

// LinksFrom returns the links whose source is nodeID, in insertion order.
func (s *Store) LinksFrom(nodeID string) []model.Link {
	var out []model.Link
	for _, l := range s.links {
		if l.From == nodeID {
			out = append(out, l)
		}
	}
	return out
}

// LinksTo returns the links whose target is nodeID, in insertion order.
func (s *Store) LinksTo(nodeID string) []model.Link {
	var out []model.Link
	for _, l := range s.links {
		if l.To == nodeID {
			out = append(out, l)
		}
	}
	return out
}

// Nodes returns the stored nodes in insertion order. The pointers are live.
func (s *Store) Nodes() []*model.Node {
	out := make([]*model.Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// Bubbles returns the stored bubbles in insertion order.
func (s *Store) Bubbles() []*model.Bubble {
	out := make([]*model.Bubble, len(s.bubbles))
	copy(out, s.bubbles)
	return out
}

// Links returns a copy of the link collection.
func (s *Store) Links() []model.Link {
	out := make([]model.Link, len(s.links))
	copy(out, s.links)
	return out
}

// Snapshot returns a deep copy in the persisted shape. Node positions are
// zeroed and every node carries a non-nil bubbles slice.
func (s *Store) Snapshot() model.Snapshot {
	snap := model.Snapshot{
		Bubbles: make([]model.Bubble, 0, len(s.bubbles)),
		Nodes:   make([]model.Node, 0, len(s.nodes)),
		Links:   s.Links(),
	}
	for _, b := range s.bubbles {
		snap.Bubbles = append(snap.Bubbles, *b)
	}
	for _, n := range s.nodes {
		c := n.Clone()
		c.X, c.Y = 0, 0
		if c.Bubbles == nil {
			c.Bubbles = []string{}
		}
		snap.Nodes = append(snap.Nodes, c)
	}
	return snap
}
