package interaction

import (
	"github.com/vanderheijden86/bubblemap/pkg/app"
	"github.com/vanderheijden86/bubblemap/pkg/model"
)

// MenuAction is an entry of the node context menu.
type MenuAction int

const (
	ActionStartLink MenuAction = iota
	ActionCancelLink
)

// MenuItem is a labelled action.
type MenuItem struct {
	Action MenuAction
	Label  string
}

// Menu is the context menu opened on a node.
type Menu struct {
	NodeID string
	At     model.Point
	Items  []MenuItem
}

var menuItems = []MenuItem{
	{Action: ActionStartLink, Label: "Start supporting link from this node"},
	{Action: ActionCancelLink, Label: "Cancel active link (if any)"},
}

// OpenMenu opens the context menu for a node, replacing any open menu. It
// does not change the interaction state.
func (c *Controller) OpenMenu(nodeID string, at model.Point) *Menu {
	items := make([]MenuItem, len(menuItems))
	copy(items, menuItems)
	c.menu = &Menu{NodeID: nodeID, At: at, Items: items}
	return c.menu
}

// Menu returns the open context menu, or nil.
func (c *Controller) Menu() *Menu {
	return c.menu
}

// CloseMenu dismisses the context menu without acting.
func (c *Controller) CloseMenu() {
	c.menu = nil
}

// Choose runs a menu action and closes the menu.
func (c *Controller) Choose(st *app.State, action MenuAction) {
	m := c.menu
	c.menu = nil
	if m == nil {
		return
	}
	switch action {
	case ActionStartLink:
		st.LinkMode = &app.LinkMode{FromID: m.NodeID, Type: app.LinkSupporting}
		c.sync.Sync(st)
		c.prompt.Alert(MsgLinkArmed)
	case ActionCancelLink:
		st.LinkMode = nil
		c.sync.Sync(st)
	}
}
