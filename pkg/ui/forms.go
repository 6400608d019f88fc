package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"

	"github.com/vanderheijden86/bubblemap/pkg/editor"
	"github.com/vanderheijden86/bubblemap/pkg/interaction"
)

type dialogKind int

const (
	dialogNone dialogKind = iota
	dialogEditor
	dialogLabel
	dialogDelete
)

// dialog is an open huh form plus the values it writes into.
type dialog struct {
	kind dialogKind
	form *huh.Form

	draft   *editor.Form // dialogEditor
	label   *string      // dialogLabel
	target  string       // dialogLabel: node the link will point at
	confirm *bool        // dialogDelete
}

func formKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel"))
	return km
}

func newForm(width int, groups ...*huh.Group) *huh.Form {
	f := huh.NewForm(groups...).
		WithKeyMap(formKeyMap()).
		WithTheme(huh.ThemeDracula()).
		WithShowHelp(true)
	if width > 0 {
		f = f.WithWidth(width)
	}
	// embedded forms must not quit the program
	f.SubmitCmd = nil
	f.CancelCmd = nil
	return f
}

// newEditorDialog edits a copy of the bound form so that cancelling leaves
// the node untouched.
func newEditorDialog(b *editor.Binding, opts []editor.BubbleOption, creating bool, width int) *dialog {
	draft := b.Form
	draft.Bubbles = append([]string(nil), b.Form.Bubbles...)
	d := &dialog{kind: dialogEditor, draft: &draft}

	title := "Edit node"
	if creating {
		title = "New node"
	}
	fields := []huh.Field{
		huh.NewNote().Title(title).Description(draft.ID),
		huh.NewInput().Title("Title").Value(&d.draft.Title),
		huh.NewInput().Title("Summary").Value(&d.draft.Summary),
		huh.NewText().Title("Content (HTML)").Lines(6).Value(&d.draft.Content),
	}
	if len(opts) > 0 {
		options := make([]huh.Option[string], 0, len(opts))
		for _, o := range opts {
			options = append(options, huh.NewOption(o.Title, o.ID).Selected(o.Checked))
		}
		fields = append(fields, huh.NewMultiSelect[string]().
			Title("Bubbles").
			Options(options...).
			Value(&d.draft.Bubbles))
	}
	d.form = newForm(width, huh.NewGroup(fields...))
	return d
}

func newLabelDialog(target string, width int) *dialog {
	label := ""
	d := &dialog{kind: dialogLabel, label: &label, target: target}
	d.form = newForm(width, huh.NewGroup(
		huh.NewInput().
			Title(interaction.MsgLabelPrompt).
			Placeholder("leave empty to use the target title").
			Value(d.label),
	))
	return d
}

func newDeleteDialog(width int) *dialog {
	ok := false
	d := &dialog{kind: dialogDelete, confirm: &ok}
	d.form = newForm(width, huh.NewGroup(
		huh.NewConfirm().
			Title(editor.MsgConfirmDelete).
			Affirmative("Delete").
			Negative("Cancel").
			Value(d.confirm),
	))
	return d
}
