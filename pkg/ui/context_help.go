package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Context is the part of the UI that currently owns the keyboard.
type Context int

const (
	ContextCanvas Context = iota
	ContextSidebar
	ContextDetail
	ContextLinkPending
	ContextMenu
	ContextPicker
	ContextForm
)

func (c Context) String() string {
	switch c {
	case ContextCanvas:
		return "canvas"
	case ContextSidebar:
		return "sidebar"
	case ContextDetail:
		return "detail"
	case ContextLinkPending:
		return "link"
	case ContextMenu:
		return "menu"
	case ContextPicker:
		return "jump"
	case ContextForm:
		return "form"
	default:
		return "unknown"
	}
}

// ContextHelpContent holds a one-screen quick reference per context.
var ContextHelpContent = map[Context]string{
	ContextCanvas:      contextHelpCanvas,
	ContextSidebar:     contextHelpSidebar,
	ContextDetail:      contextHelpDetail,
	ContextLinkPending: contextHelpLinkPending,
	ContextMenu:        contextHelpMenu,
	ContextPicker:      contextHelpPicker,
}

// GetContextHelp returns the help for ctx, or the generic reference.
func GetContextHelp(ctx Context) string {
	if content, ok := ContextHelpContent[ctx]; ok {
		return content
	}
	return contextHelpGeneric
}

// RenderContextHelp renders the quick reference modal.
func RenderContextHelp(ctx Context, theme Theme, width, height int) string {
	r := theme.Renderer

	modalWidth := 60
	if modalWidth > width-4 {
		modalWidth = width - 4
	}
	if modalWidth < 20 {
		modalWidth = 20
	}

	var b strings.Builder
	b.WriteString(r.NewStyle().Bold(true).Foreground(theme.Primary).Render("Quick Reference"))
	b.WriteString("\n")
	b.WriteString(r.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", modalWidth-4)))
	b.WriteString("\n\n")
	b.WriteString(r.NewStyle().Foreground(theme.Subtext).Render(GetContextHelp(ctx)))
	b.WriteString("\n\n")
	b.WriteString(r.NewStyle().Foreground(theme.Muted).Italic(true).Render("Esc or ? to close"))

	modal := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Padding(1, 2).
		Width(modalWidth).
		Render(b.String())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}

const contextHelpCanvas = `## Canvas

**Mouse**
  Drag empty space   Pan
  Drag a card        Move the node
  Click a card       Select it
  Right-click card   Node menu
  Wheel              Zoom at the pointer

**Keys**
  ←↑→↓ / wasd   Pan
  + / -         Zoom in / out
  0             Reset the view
  n / e / x     New / edit / delete node
  m             Menu for the selected node
  /             Jump to a node
  r             Reload the data file
  Tab           Focus sidebar, detail`

const contextHelpSidebar = `## Sidebar

  ↑/↓ or j/k    Move
  Enter         Select node
  Space         Fold or unfold a bubble
  PgUp/PgDn     Page
  a/d, w/s      Pan the canvas
  Tab           Next panel`

const contextHelpDetail = `## Detail

  ↑/↓ or j/k    Scroll
  1-9           Follow a linked node
  e             Edit this node
  Tab           Next panel`

const contextHelpLinkPending = `## Drawing a link

  Click a card    Link to it (you will be asked for a label)
  Esc             Cancel the pending link

The link stays armed until it is completed or cancelled.`

const contextHelpMenu = `## Node menu

  ↑/↓       Move
  Enter     Run the action
  Esc       Close`

const contextHelpPicker = `## Jump to node

  Type        Filter by title or id
  ↑/↓         Move
  Enter       Select and centre
  Esc         Close`

const contextHelpGeneric = `## Quick Reference

  ?     Toggle help
  q     Quit
  E     Export
  y     Copy the text map
  r     Reload the data file`
