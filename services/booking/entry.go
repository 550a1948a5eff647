package booking

import (
	"context"

	"bookingportal/services/identity"
)

// EntryView is shown at the entry route when there is no booking to resume.
type EntryView struct {
	HasSession bool   `json:"hasSession"`
	Notice     string `json:"notice,omitempty"`
}

// Resume sends a visitor with a loadable session to the first step it has not
// completed.
func (p *Pipeline) Resume(ctx context.Context, req identity.RequestContext) *StepResult {
	session := p.loadSession(ctx, req)
	if session == nil {
		return &StepResult{View: &EntryView{}}
	}
	return redirect(FirstIncompleteRoute(session))
}
