// Package interaction turns pointer, wheel and key input into graph and view
// mutations.
//
// Gestures (pan and node drag) live on the controller and always end on
// release. Link mode lives on the application state and is sticky: only a
// completed link or the "cancel" menu action clears it.
package interaction

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/bubblemap/pkg/app"
	"github.com/vanderheijden86/bubblemap/pkg/model"
	"github.com/vanderheijden86/bubblemap/pkg/present"
)

const (
	MsgLinkArmed   = "Now click another node to complete the link."
	MsgLabelPrompt = "Enter link label (or leave blank to use target node title):"
)

// Button identifies the pointer button of a press.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

// Kind is the externally visible interaction state.
type Kind int

const (
	Idle Kind = iota
	Panning
	DraggingNode
	LinkPending
)

func (k Kind) String() string {
	switch k {
	case Idle:
		return "idle"
	case Panning:
		return "panning"
	case DraggingNode:
		return "dragging"
	case LinkPending:
		return "link-pending"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Status is a Kind plus the node it refers to (dragged node or link source).
type Status struct {
	Kind   Kind
	NodeID string
}

func (s Status) String() string {
	if s.NodeID == "" {
		return s.Kind.String()
	}
	return fmt.Sprintf("%s(%s)", s.Kind, s.NodeID)
}

// Selector binds a node to the detail panel and editor form.
type Selector interface {
	Load(st *app.State, id string) bool
}

// Config holds the tunable input constants.
type Config struct {
	PanStep float64
	ZoomIn  float64
	ZoomOut float64
}

// DefaultConfig returns pan step 40 and wheel factors 1.1 / 0.9.
func DefaultConfig() Config {
	return Config{PanStep: 40, ZoomIn: 1.1, ZoomOut: 0.9}
}

// Controller is the gesture state machine. It must only be driven from the
// event loop.
type Controller struct {
	cfg      Config
	prompt   app.Prompter
	sync     app.Syncer
	selector Selector

	gesture Kind
	dragID  string

	pressAt    model.Point
	pressNode  string
	panOrigin  model.Point
	dragOrigin model.Point
	menu       *Menu
}

// New wires a controller to its capabilities.
func New(cfg Config, prompt app.Prompter, sync app.Syncer, selector Selector) *Controller {
	if cfg.PanStep == 0 {
		cfg.PanStep = DefaultConfig().PanStep
	}
	if cfg.ZoomIn == 0 {
		cfg.ZoomIn = DefaultConfig().ZoomIn
	}
	if cfg.ZoomOut == 0 {
		cfg.ZoomOut = DefaultConfig().ZoomOut
	}
	return &Controller{cfg: cfg, prompt: prompt, sync: sync, selector: selector}
}

// State reports the active gesture, or LinkPending when idle with link mode
// armed.
func (c *Controller) State(st *app.State) Status {
	switch c.gesture {
	case Panning:
		return Status{Kind: Panning}
	case DraggingNode:
		return Status{Kind: DraggingNode, NodeID: c.dragID}
	}
	if st.LinkMode != nil {
		return Status{Kind: LinkPending, NodeID: st.LinkMode.FromID}
	}
	return Status{Kind: Idle}
}

// Press starts a gesture. hitID is the node under the pointer, or "".
// Any press closes an open context menu.
func (c *Controller) Press(st *app.State, screen model.Point, button Button, hitID string) {
	c.menu = nil
	if button == ButtonSecondary {
		if hitID != "" {
			c.OpenMenu(hitID, screen)
		}
		return
	}

	c.pressAt = screen
	c.pressNode = hitID
	if hitID == "" {
		c.gesture = Panning
		c.panOrigin = model.Point{X: st.View.Offset.X, Y: st.View.Offset.Y}
		return
	}

	c.gesture = DraggingNode
	c.dragID = hitID
	if n := st.Graph.FindNode(hitID); n != nil {
		c.dragOrigin = n.Position()
	}
}

// Move updates the active gesture. Dragging a node that no longer resolves
// is a no-op.
func (c *Controller) Move(st *app.State, screen model.Point) {
	dx := screen.X - c.pressAt.X
	dy := screen.Y - c.pressAt.Y

	switch c.gesture {
	case Panning:
		st.View.Offset.X = c.panOrigin.X + dx
		st.View.Offset.Y = c.panOrigin.Y + dy
		c.sync.Sync(st)
	case DraggingNode:
		if st.Graph.FindNode(c.dragID) == nil {
			return
		}
		st.Graph.MoveNode(c.dragID, model.Point{
			X: c.dragOrigin.X + dx/st.View.Scale,
			Y: c.dragOrigin.Y + dy/st.View.Scale,
		})
		c.sync.Sync(st)
	}
}

// Release ends any gesture. Releasing over the node the press started on is
// a click on that node.
func (c *Controller) Release(st *app.State, screen model.Point, hitID string) {
	pressed := c.pressNode
	c.gesture = Idle
	c.dragID = ""
	c.pressNode = ""

	if hitID != "" && hitID == pressed {
		c.Click(st, hitID)
	}
}

// ReleaseWouldPrompt reports whether Release with hitID would ask for a link
// label. Surfaces with asynchronous dialogs use it to collect the answer
// before replaying the click.
func (c *Controller) ReleaseWouldPrompt(st *app.State, hitID string) bool {
	if hitID == "" || hitID != c.pressNode {
		return false
	}
	return c.completes(st, hitID)
}

func (c *Controller) completes(st *app.State, targetID string) bool {
	if st.LinkMode == nil || targetID == st.LinkMode.FromID {
		return false
	}
	return st.Graph.FindNode(targetID) != nil && st.Graph.FindNode(st.LinkMode.FromID) != nil
}

// Cancel ends any gesture without treating it as a click.
func (c *Controller) Cancel() {
	c.gesture = Idle
	c.dragID = ""
	c.pressNode = ""
}

// Click handles a primary click on a node: completing a pending link, or
// selecting the node.
func (c *Controller) Click(st *app.State, nodeID string) {
	if st.LinkMode != nil {
		c.completeLink(st, nodeID)
		return
	}
	c.Select(st, nodeID)
}

func (c *Controller) completeLink(st *app.State, targetID string) {
	from := st.LinkMode.FromID
	if targetID == from {
		return
	}
	target := st.Graph.FindNode(targetID)
	if target == nil {
		return
	}
	if st.Graph.FindNode(from) == nil {
		st.LinkMode = nil
		c.sync.Sync(st)
		return
	}

	label, ok := c.prompt.Prompt(MsgLabelPrompt, "")
	label = strings.TrimSpace(label)
	if !ok || label == "" {
		label = target.Title
	}

	st.Graph.AddLink(from, targetID, label)
	st.LinkMode = nil
	if st.SelectedID != "" && c.selector.Load(st, st.SelectedID) {
		return
	}
	c.sync.Sync(st)
}

// Select binds a node to the detail panel and form. Stale ids are ignored.
func (c *Controller) Select(st *app.State, nodeID string) bool {
	return c.selector.Load(st, nodeID)
}

// FollowLink selects a node from a detail-panel reference and centres the
// canvas on its card.
func (c *Controller) FollowLink(st *app.State, nodeID string) {
	if !c.Select(st, nodeID) {
		return
	}
	if n := st.Graph.FindNode(nodeID); n != nil {
		st.View.CenterOn(present.Anchor(n))
		c.sync.Sync(st)
	}
}

// Wheel zooms about the pointer. It never interrupts a gesture.
func (c *Controller) Wheel(st *app.State, screen model.Point, deltaY float64) {
	factor := c.cfg.ZoomIn
	if deltaY > 0 {
		factor = c.cfg.ZoomOut
	}
	st.View.ZoomAt(screen, factor)
	c.sync.Sync(st)
}

// Direction is a keyboard pan direction.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// KeyDirection maps the arrow keys and WASD (either case) to a direction.
func KeyDirection(key string) (Direction, bool) {
	switch key {
	case "up", "w", "W":
		return Up, true
	case "down", "s", "S":
		return Down, true
	case "left", "a", "A":
		return Left, true
	case "right", "d", "D":
		return Right, true
	}
	return 0, false
}

// Key pans by one step. Up moves the content down, as if scrolling the
// viewport up.
func (c *Controller) Key(st *app.State, dir Direction) {
	step := c.cfg.PanStep
	switch dir {
	case Up:
		st.View.PanBy(0, step)
	case Down:
		st.View.PanBy(0, -step)
	case Left:
		st.View.PanBy(step, 0)
	case Right:
		st.View.PanBy(-step, 0)
	}
	c.sync.Sync(st)
}
