package ui

// dialogPrompter answers the application's blocking prompts from answers the
// UI collected beforehand in its own dialogs. A prompt without a queued answer
// is treated as dismissed. Alerts are queued for the status bar.
type dialogPrompter struct {
	label    *string
	confirm  *bool
	alerts   []string
	prompted int
}

func (p *dialogPrompter) presetLabel(label string, ok bool) {
	if !ok {
		p.label = nil
		return
	}
	p.label = &label
}

func (p *dialogPrompter) presetConfirm(ok bool) {
	p.confirm = &ok
}

// Prompt returns the queued label once.
func (p *dialogPrompter) Prompt(_ string, def string) (string, bool) {
	p.prompted++
	if p.label == nil {
		return def, false
	}
	v := *p.label
	p.label = nil
	return v, true
}

// Confirm returns the queued answer once; unanswered means declined.
func (p *dialogPrompter) Confirm(string) bool {
	if p.confirm == nil {
		return false
	}
	v := *p.confirm
	p.confirm = nil
	return v
}

func (p *dialogPrompter) Alert(msg string) {
	p.alerts = append(p.alerts, msg)
}

// drainAlerts returns and clears the queued alerts.
func (p *dialogPrompter) drainAlerts() []string {
	a := p.alerts
	p.alerts = nil
	return a
}
