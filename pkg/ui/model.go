package ui

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/bubblemap/pkg/app"
	"github.com/vanderheijden86/bubblemap/pkg/config"
	"github.com/vanderheijden86/bubblemap/pkg/editor"
	"github.com/vanderheijden86/bubblemap/pkg/export"
	"github.com/vanderheijden86/bubblemap/pkg/graph"
	"github.com/vanderheijden86/bubblemap/pkg/interaction"
	"github.com/vanderheijden86/bubblemap/pkg/model"
	"github.com/vanderheijden86/bubblemap/pkg/present"
	"github.com/vanderheijden86/bubblemap/pkg/view"
)

// Layout thresholds: below these widths the detail panel, then the sidebar,
// are hidden.
const (
	DetailViewThreshold  = 100
	SidebarViewThreshold = 60
	DefaultTitle         = "Bubble Map"
)

// Options configures a Model.
type Options struct {
	Config   config.Config
	Title    string
	DataPath string
	// StatePath stores the sidebar collapse state; empty disables it.
	StatePath string
}

// session is the single mutable application session shared by every copy of
// the Model. It is the presenter's draw surface.
type session struct {
	state     *app.State
	ctrl      *interaction.Controller
	binding   *editor.Binding
	presenter *present.Presenter
	prompter  *dialogPrompter

	frame   present.Frame
	renders int

	reloader Reloader
}

// Reloader rereads the data file on request and delivers the result as a
// SnapshotReadyMsg.
type Reloader interface {
	Reload()
}

// Render implements present.Surface.
func (s *session) Render(f present.Frame) {
	s.frame = f
	s.renders++
}

// Model is the bubbletea model of the bubble map explorer.
type Model struct {
	s      *session
	cfg    config.Config
	title  string
	path   string
	theme  Theme
	keys   keyMap
	help   help.Model
	writer *ExportWriter

	canvas  *Canvas
	sidebar SidebarModel
	detail  DetailModel
	menu    ContextMenuModel
	picker  *NodePickerModel
	dialog  *dialog

	focus    Context
	showHelp bool
	seen     int // session renders already pushed into the panels

	status    string
	statusErr bool

	width, height int
	ready         bool
}

// NewModel builds a model around an initial snapshot.
func NewModel(snap model.Snapshot, opts Options) Model {
	cfg := opts.Config
	if cfg.Canvas.CellWidth <= 0 || cfg.Canvas.CellHeight <= 0 {
		cfg.Canvas = config.Default().Canvas
	}
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}

	s := &session{prompter: &dialogPrompter{}}
	s.state = app.NewState(graph.New(snap), view.New(cfg.View.InitialScale))
	s.presenter = present.NewPresenter(s)
	s.binding = editor.New(s.prompter, s.presenter)
	s.ctrl = interaction.New(interaction.Config{
		PanStep: cfg.View.PanStep,
		ZoomIn:  cfg.View.ZoomIn,
		ZoomOut: cfg.View.ZoomOut,
	}, s.prompter, s.presenter, s.binding)

	theme := DefaultTheme(lipgloss.DefaultRenderer())
	sidebar := NewSidebarModel(theme)
	if opts.StatePath != "" {
		sidebar.SetStatePath(opts.StatePath)
	}

	exportOpts := export.Options{Dir: cfg.ExportDir(), BaseName: cfg.Export.BaseName}
	if formats, err := export.ParseFormats(cfg.Export.Formats); err == nil {
		exportOpts.Formats = formats
	} else {
		log.Printf("config: %v; exporting json only", err)
		exportOpts.Formats = []export.Format{export.FormatJSON}
	}

	m := Model{
		s:       s,
		cfg:     cfg,
		title:   title,
		path:    opts.DataPath,
		theme:   theme,
		keys:    defaultKeyMap(),
		help:    help.New(),
		writer:  NewExportWriter(exportOpts),
		canvas:  NewCanvas(0, 0, cfg.Canvas.CellWidth, cfg.Canvas.CellHeight),
		sidebar: sidebar,
		detail:  NewDetailModel(theme, cfg.UI.GlamourStyle, cfg.UI.SanitizeContent),
		focus:   ContextCanvas,
	}
	s.presenter.Sync(s.state)
	m.pullFrame()
	return m
}

// SetReloader installs the handler for the reload key. It is shared by every
// copy of the Model, including the one already handed to the program.
func (m Model) SetReloader(r Reloader) {
	m.s.reloader = r
}

// State exposes the application state.
func (m Model) State() *app.State { return m.s.state }

// Frame returns the last presented frame.
func (m Model) Frame() present.Frame { return m.s.frame }

// Status returns the status bar message.
func (m Model) Status() string { return m.status }

// Select binds a node as the initial selection.
func (m Model) Select(id string) Model {
	m.s.ctrl.Select(m.s.state, id)
	m.pullFrame()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// pullFrame pushes a newly presented frame into the panels and collects any
// alerts raised since the last update.
func (m *Model) pullFrame() {
	if m.seen != m.s.renders {
		m.seen = m.s.renders
		f := m.s.frame
		m.sidebar.Build(f)
		if f.HighlightID != "" {
			m.sidebar.SelectByID(f.HighlightID)
		}
		m.detail.SetDetail(f.Detail)
		if menu := m.s.ctrl.Menu(); menu == nil {
			m.menu.Close()
		}
	}
	if alerts := m.s.prompter.drainAlerts(); len(alerts) > 0 {
		m.setStatus(alerts[len(alerts)-1], false)
	}
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

func (m *Model) sync() {
	m.s.presenter.Sync(m.s.state)
}

// Update handles all bubbletea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		if m.dialog != nil {
			cmd = m.updateDialog(msg)
		}

	case SnapshotReadyMsg:
		m.applySnapshot(msg.Snapshot)

	case SnapshotErrorMsg:
		m.setStatus(fmt.Sprintf("Reload failed: %v", msg.Err), true)

	case ExportResultMsg:
		if msg.Success {
			m.setStatus(msg.Output, false)
		} else {
			m.setStatus(fmt.Sprintf("Export failed: %v", msg.Error), true)
		}

	case JumpToNodeMsg:
		m.picker = nil
		m.s.ctrl.FollowLink(m.s.state, msg.ID)

	case ClosePickerMsg:
		m.picker = nil

	case tea.MouseMsg:
		if m.dialog == nil && m.picker == nil && !m.showHelp {
			m.handleMouse(msg)
		}

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	default:
		if m.dialog != nil {
			cmd = m.updateDialog(msg)
		} else if m.picker != nil {
			var p NodePickerModel
			p, cmd = m.picker.Update(msg)
			m.picker = &p
		}
	}
	m.pullFrame()
	return m, cmd
}

func (m *Model) layout() (sidebarW, detailW, canvasCols, canvasRows int) {
	if m.width >= SidebarViewThreshold {
		sidebarW = m.cfg.UI.SidebarWidth
	}
	if m.width >= DetailViewThreshold {
		detailW = m.cfg.UI.DetailWidth
	}
	canvasCols = m.width
	if sidebarW > 0 {
		canvasCols -= sidebarW + 1
	}
	if detailW > 0 {
		canvasCols -= detailW + 1
	}
	canvasRows = m.height - 3 // header, help, status
	return sidebarW, detailW, max(canvasCols, 1), max(canvasRows, 1)
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.ready = true
	sw, dw, cols, rows := m.layout()
	m.canvas = NewCanvas(cols, rows, m.cfg.Canvas.CellWidth, m.cfg.Canvas.CellHeight)
	m.s.state.View.SetViewport(m.canvas.Viewport())
	m.sidebar.SetSize(sw, rows)
	m.detail.SetSize(max(dw, 10), rows)
	m.help.Width = w
	if m.picker != nil {
		m.picker.SetSize(w, rows)
	}
	m.sync()
}

// applySnapshot swaps in a reloaded graph. Nodes that survive the reload
// keep their current positions.
func (m *Model) applySnapshot(ds *DataSnapshot) {
	if ds == nil {
		return
	}
	st := m.s.state
	snap := ds.Graph
	for i := range snap.Nodes {
		if old := st.Graph.FindNode(snap.Nodes[i].ID); old != nil {
			snap.Nodes[i].X, snap.Nodes[i].Y = old.X, old.Y
		}
	}
	st.Graph = graph.New(snap)
	if st.LinkMode != nil && st.Graph.FindNode(st.LinkMode.FromID) == nil {
		st.LinkMode = nil
	}
	m.menu.Close()
	m.s.ctrl.CloseMenu()
	m.s.ctrl.Cancel()

	if st.SelectedID != "" && !m.s.binding.Load(st, st.SelectedID) {
		st.ClearSelection()
		m.s.binding.Form = editor.Form{}
	}
	m.sync()
	m.setStatus(fmt.Sprintf("Reloaded %s (%d nodes)", ds.Path, len(snap.Nodes)), false)
}

// canvasOrigin returns the terminal cell of the canvas's top-left corner.
func (m *Model) canvasOrigin() (int, int) {
	sw, _, _, _ := m.layout()
	if sw > 0 {
		return sw + 1, 1
	}
	return 0, 1
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	st := m.s.state
	x0, y0 := m.canvasOrigin()
	sw, _, cols, rows := m.layout()
	col, row := msg.X-x0, msg.Y-y0

	if msg.Action == tea.MouseActionPress && msg.X < sw && msg.Y >= 1 {
		m.focus = ContextSidebar
		if id, ok := m.sidebar.ClickRow(msg.Y - 1); ok {
			m.s.ctrl.Select(st, id)
		}
		return
	}

	inCanvas := col >= 0 && row >= 0 && col < cols && row < rows
	if !inCanvas && msg.Action == tea.MouseActionPress {
		return
	}
	screen := m.canvas.ScreenPoint(col, row)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.s.ctrl.Wheel(st, screen, -1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.s.ctrl.Wheel(st, screen, 1)

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.focus = ContextCanvas
		if m.menu.Open() {
			action, onItem := m.menu.ItemAt(m.canvas, col, row)
			inside := m.menu.Contains(m.canvas, col, row)
			if onItem {
				m.menu.Close()
				m.s.ctrl.Choose(st, action)
				return
			}
			if inside {
				return
			}
			m.menu.Close()
		}
		m.s.ctrl.Press(st, screen, interaction.ButtonPrimary, m.hitNode(st, col, row, screen))

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonRight:
		m.focus = ContextCanvas
		m.s.ctrl.Press(st, screen, interaction.ButtonSecondary, m.hitNode(st, col, row, screen))
		if menu := m.s.ctrl.Menu(); menu != nil {
			m.menu = NewContextMenuModel(menu)
		} else {
			m.menu.Close()
		}

	case msg.Action == tea.MouseActionMotion:
		m.s.ctrl.Move(st, screen)

	case msg.Action == tea.MouseActionRelease:
		hit := ""
		if inCanvas {
			hit = m.hitNode(st, col, row, screen)
		}
		if m.s.ctrl.ReleaseWouldPrompt(st, hit) {
			m.s.ctrl.Cancel()
			m.openDialog(newLabelDialog(hit, m.dialogWidth()))
			return
		}
		m.s.ctrl.Release(st, screen, hit)
	}
}

// hitNode resolves the card under a canvas cell, preferring the drawn
// rectangle over the world one.
func (m *Model) hitNode(st *app.State, col, row int, screen model.Point) string {
	if id := m.canvas.NodeAt(m.s.frame, col, row); id != "" {
		return id
	}
	return present.NodeAt(st, screen)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.dialog != nil {
		return m.updateDialog(msg)
	}
	if m.picker != nil {
		p, cmd := m.picker.Update(msg)
		m.picker = &p
		return cmd
	}
	if m.showHelp {
		switch msg.String() {
		case "esc", "?", "q":
			m.showHelp = false
		}
		return nil
	}
	if m.menu.Open() {
		return m.handleMenuKey(msg)
	}

	st := m.s.state
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return nil
	case msg.String() == "esc":
		if st.LinkMode != nil {
			m.s.ctrl.OpenMenu(st.LinkMode.FromID, model.Point{})
			m.s.ctrl.Choose(st, interaction.ActionCancelLink)
			m.setStatus("Link cancelled", false)
		}
		return nil
	case key.Matches(msg, m.keys.Focus):
		m.cycleFocus()
		return nil
	case key.Matches(msg, m.keys.Jump):
		p := NewNodePicker(m.s.frame.AllNodes, m.theme)
		_, _, _, rows := m.layout()
		p.SetSize(m.width, rows)
		m.picker = &p
		return p.Init()
	case key.Matches(msg, m.keys.NewNode):
		m.s.binding.NewNode(st)
		m.openDialog(newEditorDialog(m.s.binding, m.s.binding.BubbleOptions(st), true, m.dialogWidth()))
		return m.dialog.form.Init()
	case key.Matches(msg, m.keys.Edit):
		if st.Selected() == nil {
			return nil
		}
		m.openDialog(newEditorDialog(m.s.binding, m.s.binding.BubbleOptions(st), false, m.dialogWidth()))
		return m.dialog.form.Init()
	case key.Matches(msg, m.keys.Delete):
		return m.requestDelete()
	case key.Matches(msg, m.keys.Menu):
		if n := st.Selected(); n != nil {
			m.menu = NewContextMenuModel(m.s.ctrl.OpenMenu(n.ID, st.View.WorldToScreen(n.Position())))
		}
		return nil
	case key.Matches(msg, m.keys.FollowLink) && m.focus != ContextSidebar:
		if id, ok := m.detail.LinkedID(int(msg.String()[0] - '0')); ok {
			m.s.ctrl.FollowLink(st, id)
		}
		return nil
	case key.Matches(msg, m.keys.Export):
		m.setStatus("Exporting…", false)
		return m.writer.Write(m.document())
	case key.Matches(msg, m.keys.Copy):
		return m.writer.Copy(m.s.frame.TextMap.String())
	case key.Matches(msg, m.keys.Reload):
		if m.s.reloader == nil {
			m.setStatus("Reload unavailable", true)
			return nil
		}
		m.setStatus("Reloading…", false)
		m.s.reloader.Reload()
		return nil
	}

	switch m.focus {
	case ContextSidebar:
		return m.handleSidebarKey(msg)
	case ContextDetail:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return cmd
	}
	return m.handleCanvasKey(msg)
}

func (m *Model) handleCanvasKey(msg tea.KeyMsg) tea.Cmd {
	st := m.s.state
	if dir, ok := interaction.KeyDirection(msg.String()); ok {
		m.s.ctrl.Key(st, dir)
		return nil
	}
	w, h := st.View.Viewport()
	center := model.Point{X: w / 2, Y: h / 2}
	switch {
	case key.Matches(msg, m.keys.ZoomIn):
		m.s.ctrl.Wheel(st, center, -1)
	case key.Matches(msg, m.keys.ZoomOut):
		m.s.ctrl.Wheel(st, center, 1)
	case key.Matches(msg, m.keys.Reset):
		st.View.Reset(m.cfg.View.InitialScale)
		m.sync()
	}
	return nil
}

func (m *Model) handleSidebarKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		m.sidebar.MoveUp()
	case "down", "j":
		m.sidebar.MoveDown()
	case "pgup":
		m.sidebar.PageUp()
	case "pgdown":
		m.sidebar.PageDown()
	case " ":
		m.sidebar.Toggle()
	case "enter":
		if id := m.sidebar.SelectedNodeID(); id != "" {
			m.s.ctrl.Select(m.s.state, id)
		} else {
			m.sidebar.Toggle()
		}
	default:
		// up/down move the cursor above; the other pan keys still pan.
		if dir, ok := interaction.KeyDirection(msg.String()); ok {
			m.s.ctrl.Key(m.s.state, dir)
		}
	}
	return nil
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		m.menu.MoveUp()
	case "down", "j":
		m.menu.MoveDown()
	case "enter":
		if action, ok := m.menu.Selected(); ok {
			m.menu.Close()
			m.s.ctrl.Choose(m.s.state, action)
		}
	case "esc", "q", "m":
		m.menu.Close()
		m.s.ctrl.CloseMenu()
	}
	return nil
}

func (m *Model) cycleFocus() {
	sw, dw, _, _ := m.layout()
	order := []Context{ContextCanvas}
	if sw > 0 {
		order = append(order, ContextSidebar)
	}
	if dw > 0 {
		order = append(order, ContextDetail)
	}
	next := ContextCanvas
	for i, c := range order {
		if c == m.focus {
			next = order[(i+1)%len(order)]
			break
		}
	}
	m.focus = next
	m.sidebar.SetFocused(next == ContextSidebar)
}

// requestDelete asks for confirmation before deleting the bound node. A
// form that is not bound to an existing node is a silent no-op.
func (m *Model) requestDelete() tea.Cmd {
	st := m.s.state
	if id := m.s.binding.Form.ID; id == "" || st.Graph.FindNode(id) == nil {
		m.finishDelete()
		return nil
	}
	m.openDialog(newDeleteDialog(m.dialogWidth()))
	return m.dialog.form.Init()
}

func (m *Model) finishDelete() {
	title := m.s.binding.Form.Title
	err := m.s.binding.Delete(m.s.state)
	switch {
	case err == nil:
		m.setStatus(fmt.Sprintf("Deleted %q", title), false)
	case app.IsSilent(err):
	default:
		m.setStatus(err.Error(), true)
	}
}

func (m *Model) dialogWidth() int {
	return max(min(70, m.width-4), 30)
}

func (m *Model) openDialog(d *dialog) {
	m.dialog = d
	m.menu.Close()
	m.s.ctrl.CloseMenu()
}

// updateDialog forwards msg to the open form and acts once it finishes.
func (m *Model) updateDialog(msg tea.Msg) tea.Cmd {
	d := m.dialog
	updated, cmd := d.form.Update(msg)
	if f, ok := updated.(*huh.Form); ok {
		d.form = f
	}
	switch d.form.State {
	case huh.StateCompleted:
		m.dialog = nil
		return tea.Batch(cmd, m.finishDialog(d, true))
	case huh.StateAborted:
		m.dialog = nil
		return tea.Batch(cmd, m.finishDialog(d, false))
	}
	return cmd
}

// finishDialog applies a completed or cancelled dialog.
func (m *Model) finishDialog(d *dialog, ok bool) tea.Cmd {
	st := m.s.state
	switch d.kind {
	case dialogEditor:
		if !ok {
			if st.Editor.IsNew {
				st.Editor = app.EditorState{}
				m.s.binding.Form = editor.Form{}
				m.sync()
			}
			return nil
		}
		return m.saveDraft(d.draft)

	case dialogLabel:
		m.s.prompter.presetLabel(*d.label, ok)
		m.s.ctrl.Click(st, d.target)

	case dialogDelete:
		if !ok {
			return nil
		}
		m.s.prompter.presetConfirm(*d.confirm)
		m.finishDelete()
	}
	return nil
}

// saveDraft writes the edited form through the binding. A rejected save
// reopens the editor with the same draft.
func (m *Model) saveDraft(draft *editor.Form) tea.Cmd {
	st := m.s.state
	b := m.s.binding
	creating := st.Editor.IsNew
	b.Form = *draft
	b.SetBubbles(st, draft.Bubbles)

	err := b.Save(st)
	switch {
	case err == nil:
		verb := "Saved"
		if creating {
			verb = "Created"
		}
		m.setStatus(fmt.Sprintf("%s %q", verb, b.Form.Title), false)
		return nil
	case errors.Is(err, app.ErrValidation):
		m.pullFrame()
		m.statusErr = true
		m.openDialog(newEditorDialog(b, b.BubbleOptions(st), creating, m.dialogWidth()))
		return m.dialog.form.Init()
	default:
		m.setStatus(err.Error(), true)
		return nil
	}
}

// document captures the current graph and frame for export.
func (m Model) document() export.Document {
	return export.Document{
		Title:    m.title,
		Snapshot: m.s.state.Graph.Snapshot(),
		Frame:    present.Project(m.s.state),
	}
}

// View renders the whole screen.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	sw, dw, cols, rows := m.layout()

	var body string
	switch {
	case m.dialog != nil:
		body = lipgloss.Place(m.width, rows, lipgloss.Center, lipgloss.Center, m.dialog.form.View())
	case m.picker != nil:
		body = m.picker.View()
	case m.showHelp:
		body = RenderContextHelp(m.helpContext(), m.theme, m.width, rows)
	default:
		body = m.renderPanels(sw, dw, cols, rows)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.help.View(m.keys),
		m.renderStatus(),
	)
}

func (m Model) helpContext() Context {
	switch {
	case m.menu.Open():
		return ContextMenu
	case m.s.state.LinkMode != nil:
		return ContextLinkPending
	}
	return m.focus
}

func (m Model) renderPanels(sw, dw, cols, rows int) string {
	r := m.theme.Renderer
	m.canvas.Draw(m.s.frame)
	m.menu.Draw(m.canvas)
	canvasView := r.NewStyle().Width(cols).Height(rows).MaxHeight(rows).Render(m.canvas.Render(m.theme))

	panels := []string{}
	border := func(focused bool) lipgloss.Style {
		c := m.theme.Border
		if focused {
			c = m.theme.Primary
		}
		return r.NewStyle().BorderForeground(c).Height(rows).MaxHeight(rows)
	}
	if sw > 0 {
		panels = append(panels, border(m.focus == ContextSidebar).
			Border(lipgloss.NormalBorder(), false, true, false, false).
			Width(sw).
			Render(m.sidebar.View()))
	}
	panels = append(panels, canvasView)
	if dw > 0 {
		panels = append(panels, border(m.focus == ContextDetail).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			Width(dw).
			Render(m.detail.View()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, panels...)
}

func (m Model) renderHeader() string {
	r := m.theme.Renderer
	st := m.s.state
	left := r.NewStyle().Bold(true).Foreground(m.theme.Primary).Render(m.title)

	parts := []string{m.s.ctrl.State(st).String(), fmt.Sprintf("zoom %.0f%%", st.View.Scale*100)}
	if m.s.frame.Creating {
		parts = append(parts, "new node")
	}
	mid := r.NewStyle().Foreground(m.theme.Subtext).Render("  " + strings.Join(parts, " · "))

	right := ""
	if b := m.s.frame.Banner; b != "" {
		right = r.NewStyle().Foreground(m.theme.Accent).Bold(true).Render(b)
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(mid) - lipgloss.Width(right)
	return left + mid + strings.Repeat(" ", max(gap, 1)) + right
}

func (m Model) renderStatus() string {
	r := m.theme.Renderer
	if m.status == "" {
		counts := fmt.Sprintf("%d bubbles · %d nodes · %d links",
			len(m.s.frame.Bubbles), len(m.s.frame.AllNodes), len(m.s.state.Graph.Links()))
		if m.path != "" {
			counts += " · " + m.path
		}
		return r.NewStyle().Foreground(m.theme.Muted).Render(counts)
	}
	c := m.theme.Secondary
	if m.statusErr {
		c = m.theme.Error
	}
	return r.NewStyle().Foreground(c).Render(m.status)
}
