package present

import "github.com/vanderheijden86/bubblemap/pkg/app"

// Surface draws frames.
type Surface interface {
	Render(f Frame)
}

// Presenter is the Syncer that pushes a fresh frame to a surface.
type Presenter struct {
	surface Surface
	last    Frame
	syncs   int
}

// NewPresenter returns a presenter drawing to surface.
func NewPresenter(surface Surface) *Presenter {
	return &Presenter{surface: surface}
}

// Sync regenerates the frame from st and renders it.
func (p *Presenter) Sync(st *app.State) {
	p.last = Project(st)
	p.syncs++
	if p.surface != nil {
		p.surface.Render(p.last)
	}
}

// Last returns the most recently rendered frame.
func (p *Presenter) Last() Frame { return p.last }

// Syncs counts renders since creation.
func (p *Presenter) Syncs() int { return p.syncs }
