package html

import (
	"io"

	"github.com/goliatone/go-formarray/pkg/dialog"
)

// Presenter writes each presented dialog to w as an HTML fragment. Clients
// post the chosen action back and the host calls Request.Invoke.
type Presenter struct {
	renderer *Renderer
	w        io.Writer
}

// NewPresenter builds a presenter writing to w.
func NewPresenter(renderer *Renderer, w io.Writer) *Presenter {
	return &Presenter{renderer: renderer, w: w}
}

// Present implements dialog.Presenter.
func (p *Presenter) Present(req *dialog.Request) dialog.Handle {
	if _, err := p.renderer.RenderDialog(req, p.w); err != nil {
		p.renderer.cfg.logger.Warn("dialog render failed", "title", req.Title, "error", err)
	}
	return dialog.NopHandle{}
}
