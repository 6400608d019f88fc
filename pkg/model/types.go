package model

import (
	"fmt"
	"slices"
	"strings"
)

// Bubble represents a circular grouping drawn on the canvas
type Bubble struct {
	ID          string  `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description" yaml:"description"`
	X           float64 `json:"x" yaml:"x"`
	Y           float64 `json:"y" yaml:"y"`
	Radius      float64 `json:"radius" yaml:"radius"`
}

// Diameter is derived for presentation and is never serialized
func (b Bubble) Diameter() float64 {
	return b.Radius * 2
}

// Node represents a titled content card placed in world space.
// X and Y are session-only: they are neither ingested nor exported.
type Node struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Summary     string   `json:"summary" yaml:"summary"`
	ContentHTML string   `json:"contentHtml" yaml:"contentHtml"`
	Bubbles     []string `json:"bubbles" yaml:"bubbles"`
	X           float64  `json:"-" yaml:"-"`
	Y           float64  `json:"-" yaml:"-"`
}

// Clone creates a deep copy of the node
func (n Node) Clone() Node {
	clone := n
	if n.Bubbles != nil {
		clone.Bubbles = make([]string, len(n.Bubbles))
		copy(clone.Bubbles, n.Bubbles)
	}
	return clone
}

// InBubble reports whether the node lists the given bubble id
func (n Node) InBubble(bubbleID string) bool {
	return slices.Contains(n.Bubbles, bubbleID)
}

// Position returns the node's world-space position
func (n Node) Position() Point {
	return Point{X: n.X, Y: n.Y}
}

// FieldError names the node field that failed validation.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Validate checks the presence rules applied on save
func (n *Node) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return &FieldError{Field: "title", Message: "cannot be empty"}
	}
	return nil
}

// Link represents a directed, labeled edge between two node ids.
// Links are not unique: parallel and duplicate links are allowed.
type Link struct {
	From  string `json:"from" yaml:"from"`
	To    string `json:"to" yaml:"to"`
	Label string `json:"label" yaml:"label"`
}

// Touches reports whether either endpoint is the given node id
func (l Link) Touches(nodeID string) bool {
	return l.From == nodeID || l.To == nodeID
}

// Point is a 2D coordinate, either in world or screen space
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Snapshot is the persisted graph shape, used for both ingest and export
type Snapshot struct {
	Bubbles []Bubble `json:"bubbles" yaml:"bubbles"`
	Nodes   []Node   `json:"nodes" yaml:"nodes"`
	Links   []Link   `json:"links" yaml:"links"`
}

// Validate checks that every bubble and node carries an id
func (s *Snapshot) Validate() error {
	for i, b := range s.Bubbles {
		if b.ID == "" {
			return fmt.Errorf("bubble %d: id cannot be empty", i)
		}
	}
	for i, n := range s.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node %d: id cannot be empty", i)
		}
	}
	return nil
}
