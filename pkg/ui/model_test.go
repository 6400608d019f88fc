package ui

import (
	"errors"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/bubblemap/pkg/config"
	"github.com/vanderheijden86/bubblemap/pkg/editor"
	"github.com/vanderheijden86/bubblemap/pkg/interaction"
	"github.com/vanderheijden86/bubblemap/pkg/model"
	"github.com/vanderheijden86/bubblemap/pkg/present"
)

func modelSnapshot() model.Snapshot {
	return model.Snapshot{
		Bubbles: []model.Bubble{{ID: "b1", Title: "Ideas", Radius: 300}},
		Nodes: []model.Node{
			{ID: "n1", Title: "Alpha", Bubbles: []string{"b1"}},
			{ID: "n2", Title: "Beta", X: -300, Y: 100},
		},
		Links: []model.Link{{From: "n1", To: "n2", Label: "leads to"}},
	}
}

// newTestModel returns a 120x40 model with the default config.
func newTestModel(t *testing.T) Model {
	t.Helper()
	m := NewModel(modelSnapshot(), Options{Config: config.Default(), DataPath: "map.json"})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model)
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func sendKey(m Model, k string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch k {
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	return update(m, msg)
}

func mouse(m Model, x, y int, action tea.MouseAction, button tea.MouseButton) Model {
	m, _ = update(m, tea.MouseMsg{X: x, Y: y, Action: action, Button: button})
	return m
}

// nodeCell returns the terminal cell over the middle of a node's card.
func nodeCell(t *testing.T, m Model, id string) (int, int) {
	t.Helper()
	n := m.State().Graph.FindNode(id)
	if n == nil {
		t.Fatalf("node %s not found", id)
	}
	col, row := m.canvas.CellAt(m.State().View.WorldToScreen(present.Anchor(n)))
	_, _, cols, rows := m.layout()
	if col < 0 || row < 0 || col >= cols || row >= rows {
		t.Fatalf("node %s is off canvas at %d,%d", id, col, row)
	}
	x0, y0 := m.canvasOrigin()
	return col + x0, row + y0
}

func click(m Model, x, y int) Model {
	m = mouse(m, x, y, tea.MouseActionPress, tea.MouseButtonLeft)
	return mouse(m, x, y, tea.MouseActionRelease, tea.MouseButtonLeft)
}

func hasLink(m Model, from, to, label string) bool {
	for _, l := range m.State().Graph.Links() {
		if l.From == from && l.To == to && l.Label == label {
			return true
		}
	}
	return false
}

// finish completes (or cancels) the open dialog as if the user had answered it.
func finish(t *testing.T, m Model, ok bool) Model {
	t.Helper()
	d := m.dialog
	if d == nil {
		t.Fatal("no dialog open")
	}
	m.dialog = nil
	m.finishDialog(d, ok)
	m.pullFrame()
	return m
}

func TestNewModel_InitialFrame(t *testing.T) {
	m := NewModel(modelSnapshot(), Options{Config: config.Default()})
	if got := len(m.Frame().Nodes); got != 2 {
		t.Fatalf("frame has %d nodes, want 2", got)
	}
	if m.title != DefaultTitle {
		t.Errorf("title = %q", m.title)
	}
	if m.View() != "Initializing..." {
		t.Errorf("view before the first resize = %q", m.View())
	}
}

func TestModel_ResizeSetsViewport(t *testing.T) {
	m := newTestModel(t)
	w, h := m.State().View.Viewport()
	cw, ch := m.canvas.Viewport()
	if w != cw || h != ch {
		t.Errorf("viewport %vx%v, canvas %vx%v", w, h, cw, ch)
	}
	view := m.View()
	if !strings.Contains(view, DefaultTitle) {
		t.Error("view should contain the title")
	}
	if !strings.Contains(view, "Alpha") {
		t.Error("view should draw the Alpha card")
	}
}

func TestModel_NarrowLayoutHidesPanels(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(m, tea.WindowSizeMsg{Width: 50, Height: 20})
	sw, dw, cols, _ := m.layout()
	if sw != 0 || dw != 0 || cols != 50 {
		t.Errorf("layout = %d/%d/%d, want canvas only", sw, dw, cols)
	}
}

func TestModel_ClickSelectsNode(t *testing.T) {
	m := newTestModel(t)
	x, y := nodeCell(t, m, "n1")
	m = click(m, x, y)
	if m.State().SelectedID != "n1" {
		t.Fatalf("SelectedID = %q, want n1", m.State().SelectedID)
	}
	if id, ok := m.detail.LinkedID(1); !ok || id != "n2" {
		t.Errorf("detail linked #1 = %q, %v", id, ok)
	}
}

func TestModel_DragMovesNode(t *testing.T) {
	m := newTestModel(t)
	x, y := nodeCell(t, m, "n1")
	m = mouse(m, x, y, tea.MouseActionPress, tea.MouseButtonLeft)
	if got := m.s.ctrl.State(m.State()).Kind; got != interaction.DraggingNode {
		t.Fatalf("state = %v, want dragging", got)
	}
	m = mouse(m, x+5, y, tea.MouseActionMotion, tea.MouseButtonLeft)
	m = mouse(m, x+5, y, tea.MouseActionRelease, tea.MouseButtonLeft)

	n := m.State().Graph.FindNode("n1")
	// 5 cells of 8px at scale 0.8
	if math.Abs(n.X-50) > 1e-9 || n.Y != 0 {
		t.Errorf("n1 at %v,%v, want 50,0", n.X, n.Y)
	}
	if got := m.s.ctrl.State(m.State()).Kind; got != interaction.Idle {
		t.Errorf("state after release = %v", got)
	}
}

func TestModel_DragEmptySpacePans(t *testing.T) {
	m := newTestModel(t)
	x0, y0 := m.canvasOrigin()
	m = mouse(m, x0, y0, tea.MouseActionPress, tea.MouseButtonLeft)
	m = mouse(m, x0+3, y0+2, tea.MouseActionMotion, tea.MouseButtonLeft)
	m = mouse(m, x0+3, y0+2, tea.MouseActionRelease, tea.MouseButtonLeft)

	off := m.State().View.Offset
	if off.X != 24 || off.Y != 32 {
		t.Errorf("offset = %v, want 24,32", off)
	}
	if m.State().SelectedID != "" {
		t.Error("panning must not select")
	}
}

func TestModel_WheelZooms(t *testing.T) {
	m := newTestModel(t)
	x0, y0 := m.canvasOrigin()
	m = mouse(m, x0+10, y0+10, tea.MouseActionPress, tea.MouseButtonWheelUp)
	if got := m.State().View.Scale; math.Abs(got-0.88) > 1e-9 {
		t.Errorf("scale after wheel up = %v", got)
	}
	m = mouse(m, x0+10, y0+10, tea.MouseActionPress, tea.MouseButtonWheelDown)
	if got := m.State().View.Scale; math.Abs(got-0.792) > 1e-9 {
		t.Errorf("scale after wheel down = %v", got)
	}
}

func TestModel_KeyboardPanZoomReset(t *testing.T) {
	m := newTestModel(t)
	m, _ = sendKey(m, "left")
	if m.State().View.Offset.X != 40 {
		t.Errorf("offset after left = %v", m.State().View.Offset)
	}
	m, _ = sendKey(m, "+")
	if got := m.State().View.Scale; math.Abs(got-0.88) > 1e-9 {
		t.Errorf("scale after + = %v", got)
	}
	m, _ = sendKey(m, "0")
	if m.State().View.Scale != 0.8 || m.State().View.Offset.X != 0 {
		t.Errorf("reset left scale %v offset %v", m.State().View.Scale, m.State().View.Offset)
	}
}

func armLink(t *testing.T, m Model, from string) Model {
	t.Helper()
	m = m.Select(from)
	m, _ = sendKey(m, "m")
	if !m.menu.Open() {
		t.Fatal("menu should be open")
	}
	m, _ = sendKey(m, "enter")
	if m.State().LinkMode == nil || m.State().LinkMode.FromID != from {
		t.Fatalf("link mode = %+v", m.State().LinkMode)
	}
	return m
}

func TestModel_LinkFromMenu(t *testing.T) {
	m := newTestModel(t)
	m = armLink(t, m, "n1")
	if m.Status() != interaction.MsgLinkArmed {
		t.Errorf("status = %q", m.Status())
	}
	if !strings.Contains(m.View(), "Linking from Alpha") {
		t.Error("banner should be shown while linking")
	}

	x, y := nodeCell(t, m, "n2")
	m = click(m, x, y)
	if m.dialog == nil || m.dialog.kind != dialogLabel || m.dialog.target != "n2" {
		t.Fatalf("expected a label dialog for n2, got %+v", m.dialog)
	}
	*m.dialog.label = "causes"
	m = finish(t, m, true)

	if !hasLink(m, "n1", "n2", "causes") {
		t.Errorf("link not added: %+v", m.State().Graph.Links())
	}
	if m.State().LinkMode != nil {
		t.Error("link mode should clear after completing")
	}
}

func TestModel_DismissedLabelUsesTargetTitle(t *testing.T) {
	m := newTestModel(t)
	m = armLink(t, m, "n1")
	x, y := nodeCell(t, m, "n2")
	m = click(m, x, y)
	m = finish(t, m, false)
	if !hasLink(m, "n1", "n2", "Beta") {
		t.Errorf("expected a link labelled with the target title: %+v", m.State().Graph.Links())
	}
}

func TestModel_LinkModeIsSticky(t *testing.T) {
	m := newTestModel(t)
	m = armLink(t, m, "n1")

	x0, y0 := m.canvasOrigin()
	m = click(m, x0, y0)
	if m.State().LinkMode == nil {
		t.Fatal("clicking empty space must not clear the pending link")
	}
	m, _ = sendKey(m, "esc")
	if m.State().LinkMode != nil {
		t.Error("esc should cancel the pending link")
	}
}

func TestModel_RightClickOpensMenu(t *testing.T) {
	m := newTestModel(t)
	x, y := nodeCell(t, m, "n2")
	m = mouse(m, x, y, tea.MouseActionPress, tea.MouseButtonRight)
	if !m.menu.Open() || m.s.ctrl.Menu().NodeID != "n2" {
		t.Fatal("right click should open the menu on n2")
	}
	m, _ = sendKey(m, "esc")
	if m.menu.Open() || m.s.ctrl.Menu() != nil {
		t.Error("esc should close the menu")
	}
}

func TestModel_NewNode(t *testing.T) {
	m := newTestModel(t)
	m, _ = sendKey(m, "n")
	if m.dialog == nil || m.dialog.kind != dialogEditor {
		t.Fatal("n should open the editor")
	}
	if !m.Frame().Creating {
		t.Error("frame should be in creating mode")
	}
	m.dialog.draft.Title = "Gamma"
	m = finish(t, m, true)

	if got := len(m.State().Graph.Nodes()); got != 3 {
		t.Fatalf("node count = %d, want 3", got)
	}
	if m.Status() != `Created "Gamma"` {
		t.Errorf("status = %q", m.Status())
	}
	if sel := m.State().Selected(); sel == nil || sel.Title != "Gamma" {
		t.Errorf("new node should be selected, got %+v", sel)
	}
}

func TestModel_SaveWithoutTitleReopensEditor(t *testing.T) {
	m := newTestModel(t)
	m, _ = sendKey(m, "n")
	m.dialog.draft.Summary = "kept"
	m = finish(t, m, true)

	if m.dialog == nil || m.dialog.kind != dialogEditor {
		t.Fatal("editor should reopen after a rejected save")
	}
	if m.dialog.draft.Summary != "kept" {
		t.Errorf("draft lost: %+v", m.dialog.draft)
	}
	if m.Status() != editor.MsgTitleRequired || !m.statusErr {
		t.Errorf("status = %q err=%v", m.Status(), m.statusErr)
	}
	if got := len(m.State().Graph.Nodes()); got != 2 {
		t.Errorf("node count = %d, want 2", got)
	}
}

func TestModel_CancelNewNode(t *testing.T) {
	m := newTestModel(t)
	m, _ = sendKey(m, "n")
	m = finish(t, m, false)
	if m.State().Editor.IsNew || m.Frame().Creating {
		t.Error("cancelling should leave creating mode")
	}
}

func TestModel_EditNode(t *testing.T) {
	m := newTestModel(t).Select("n1")
	m, _ = sendKey(m, "e")
	if m.dialog == nil || m.dialog.draft.Title != "Alpha" {
		t.Fatal("editor should open on Alpha")
	}
	m.dialog.draft.Title = "Alpha prime"
	m = finish(t, m, true)
	if got := m.State().Graph.FindNode("n1").Title; got != "Alpha prime" {
		t.Errorf("title = %q", got)
	}
}

func TestModel_DeleteConfirmed(t *testing.T) {
	m := newTestModel(t).Select("n1")
	m, _ = sendKey(m, "x")
	if m.dialog == nil || m.dialog.kind != dialogDelete {
		t.Fatal("x should ask for confirmation")
	}
	*m.dialog.confirm = true
	m = finish(t, m, true)

	if m.State().Graph.FindNode("n1") != nil {
		t.Error("n1 should be deleted")
	}
	if len(m.State().Graph.Links()) != 0 {
		t.Error("links should cascade")
	}
	if m.State().SelectedID != "" {
		t.Error("selection should clear")
	}
	if m.Status() != `Deleted "Alpha"` {
		t.Errorf("status = %q", m.Status())
	}
}

func TestModel_DeleteDeclinedIsSilent(t *testing.T) {
	m := newTestModel(t).Select("n1")
	m, _ = sendKey(m, "x")
	m = finish(t, m, true) // confirm left false
	if m.State().Graph.FindNode("n1") == nil {
		t.Error("declined delete removed the node")
	}
	if m.statusErr {
		t.Errorf("declining is not an error: %q", m.Status())
	}
}

func TestModel_DeleteWithoutSelectionIsSilent(t *testing.T) {
	m := newTestModel(t)
	m, _ = sendKey(m, "x")
	if m.dialog != nil {
		t.Error("nothing to delete, no dialog expected")
	}
	if m.Status() != "" {
		t.Errorf("status = %q", m.Status())
	}
}

func TestModel_ReloadKeepsPositionsAndSelection(t *testing.T) {
	m := newTestModel(t).Select("n1")
	m.State().Graph.MoveNode("n1", model.Point{X: 70, Y: 80})

	snap := modelSnapshot()
	snap.Nodes = append(snap.Nodes, model.Node{ID: "n3", Title: "Gamma"})
	m, _ = update(m, SnapshotReadyMsg{Snapshot: &DataSnapshot{Graph: snap, Path: "map.json"}})

	n1 := m.State().Graph.FindNode("n1")
	if n1.X != 70 || n1.Y != 80 {
		t.Errorf("n1 moved to %v,%v on reload", n1.X, n1.Y)
	}
	if m.State().Graph.FindNode("n3") == nil {
		t.Error("n3 should be added")
	}
	if m.State().SelectedID != "n1" {
		t.Errorf("selection = %q", m.State().SelectedID)
	}
	if !strings.Contains(m.Status(), "Reloaded map.json (3 nodes)") {
		t.Errorf("status = %q", m.Status())
	}
}

func TestModel_ReloadDropsStaleSelectionAndLink(t *testing.T) {
	m := newTestModel(t)
	m = armLink(t, m, "n2")

	snap := modelSnapshot()
	snap.Nodes = snap.Nodes[:1]
	m, _ = update(m, SnapshotReadyMsg{Snapshot: &DataSnapshot{Graph: snap}})

	if m.State().SelectedID != "" {
		t.Errorf("stale selection kept: %q", m.State().SelectedID)
	}
	if m.State().LinkMode != nil {
		t.Error("link from a removed node should clear")
	}
}

func TestModel_StatusMessages(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(m, SnapshotErrorMsg{Err: errors.New("bad json"), Recoverable: true})
	if !m.statusErr || !strings.Contains(m.Status(), "bad json") {
		t.Errorf("status = %q", m.Status())
	}
	m, _ = update(m, ExportResultMsg{Success: true, Output: "Exported json to ."})
	if m.statusErr || m.Status() != "Exported json to ." {
		t.Errorf("status = %q", m.Status())
	}
}

func TestModel_PickerJump(t *testing.T) {
	m := newTestModel(t)
	m, _ = sendKey(m, "/")
	if m.picker == nil {
		t.Fatal("/ should open the picker")
	}
	m, _ = update(m, JumpToNodeMsg{ID: "n2"})
	if m.picker != nil {
		t.Error("picker should close")
	}
	if m.State().SelectedID != "n2" {
		t.Errorf("SelectedID = %q", m.State().SelectedID)
	}
	want := present.Anchor(m.State().Graph.FindNode("n2"))
	if got := m.State().View.Center(); math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Errorf("view centred on %v, want %v", got, want)
	}
}

func TestModel_FollowLinkByNumber(t *testing.T) {
	m := newTestModel(t).Select("n1")
	m, _ = sendKey(m, "1")
	if m.State().SelectedID != "n2" {
		t.Errorf("SelectedID = %q, want n2", m.State().SelectedID)
	}
	m, _ = sendKey(m, "1") // n2 has no outbound links
	if m.State().SelectedID != "n2" {
		t.Errorf("SelectedID = %q, want n2", m.State().SelectedID)
	}
}

func TestModel_FocusCycleAndSidebar(t *testing.T) {
	m := newTestModel(t)
	m, _ = sendKey(m, "tab")
	if m.focus != ContextSidebar || !m.sidebar.Focused() {
		t.Fatalf("focus = %v", m.focus)
	}
	m.sidebar.SelectByID("n2")
	m, _ = sendKey(m, "enter")
	if m.State().SelectedID != "n2" {
		t.Errorf("SelectedID = %q", m.State().SelectedID)
	}
	m, _ = sendKey(m, "tab")
	if m.focus != ContextDetail {
		t.Errorf("focus = %v, want detail", m.focus)
	}
	m, _ = sendKey(m, "tab")
	if m.focus != ContextCanvas {
		t.Errorf("focus = %v, want canvas", m.focus)
	}
}

func TestModel_SidebarFocusStillPans(t *testing.T) {
	m := newTestModel(t)
	m, _ = sendKey(m, "tab")
	if m.focus != ContextSidebar {
		t.Fatalf("focus = %v", m.focus)
	}
	m, _ = sendKey(m, "a")
	m, _ = sendKey(m, "w")
	if off := m.State().View.Offset; off.X != 40 || off.Y != 40 {
		t.Errorf("offset = %v, want 40,40", off)
	}
	m, _ = sendKey(m, "left")
	if off := m.State().View.Offset; off.X != 80 {
		t.Errorf("offset after left = %v", off)
	}
	if m.focus != ContextSidebar {
		t.Error("panning should keep the sidebar focused")
	}
}

type countingReloader struct{ calls int }

func (r *countingReloader) Reload() { r.calls++ }

func TestModel_ReloadKey(t *testing.T) {
	m := newTestModel(t)
	m, _ = sendKey(m, "r")
	if !m.statusErr || m.Status() != "Reload unavailable" {
		t.Errorf("status without a reloader = %q", m.Status())
	}

	r := &countingReloader{}
	m.SetReloader(r)
	m, _ = sendKey(m, "r")
	if r.calls != 1 {
		t.Fatalf("Reload calls = %d, want 1", r.calls)
	}
	if m.statusErr || m.Status() != "Reloading…" {
		t.Errorf("status = %q", m.Status())
	}
}

func TestModel_HelpOverlay(t *testing.T) {
	m := newTestModel(t)
	m, _ = sendKey(m, "?")
	if !m.showHelp || !strings.Contains(m.View(), "Quick Reference") {
		t.Fatal("? should show the quick reference")
	}
	m, _ = sendKey(m, "esc")
	if m.showHelp {
		t.Error("esc should close help")
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := sendKey(m, "q")
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("got %T, want tea.QuitMsg", cmd())
	}
}

func TestModel_DocumentCapturesGraph(t *testing.T) {
	m := newTestModel(t)
	doc := m.document()
	if doc.Title != DefaultTitle || len(doc.Snapshot.Nodes) != 2 {
		t.Errorf("document = %+v", doc)
	}
	if len(doc.Frame.Lines) != 1 {
		t.Errorf("frame lines = %d", len(doc.Frame.Lines))
	}
}

func TestModel_EveryDrawnCardCellHits(t *testing.T) {
	for _, scale := range []float64{0.3, 0.5, 0.8} {
		snap := model.Snapshot{Nodes: []model.Node{{ID: "n1", Title: "Alpha"}}}
		m := NewModel(snap, Options{Config: config.Default()})
		m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
		m.State().View.Reset(scale)
		m.s.presenter.Sync(m.s.state)
		m.pullFrame()

		f := m.Frame()
		col, row, w, h := m.canvas.cardCells(f.Nodes[0], f.Scale)
		missed := 0
		for y := row; y < row+h; y++ {
			for x := col; x < col+w; x++ {
				if m.hitNode(m.State(), x, y, m.canvas.ScreenPoint(x, y)) != "n1" {
					missed++
				}
			}
		}
		if missed > 0 {
			t.Errorf("scale %v: %d of %d drawn cells miss the card", scale, missed, w*h)
		}

		// The bottom-right cell is the one a world-space test drops first.
		x0, y0 := m.canvasOrigin()
		x, y := col+w-1+x0, row+h-1+y0
		m = mouse(m, x, y, tea.MouseActionPress, tea.MouseButtonLeft)
		if got := m.s.ctrl.State(m.State()).Kind; got != interaction.DraggingNode {
			t.Errorf("scale %v: press on card edge gave %v, want dragging", scale, got)
		}
		m = mouse(m, x, y, tea.MouseActionRelease, tea.MouseButtonLeft)
		if m.State().SelectedID != "n1" {
			t.Errorf("scale %v: click on card edge selected %q", scale, m.State().SelectedID)
		}
	}
}
