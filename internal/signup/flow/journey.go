package flow

// Journey is one user's pass through the signup pages. Its controller reports
// completion to its router.
type Journey struct {
	Router     *PageRouter
	Controller *Controller
}

// View is the combined state of a journey.
type View struct {
	Page Page     `json:"page"`
	Flow Snapshot `json:"flow"`
}

// NewJourney wires a router and controller together. The router reaches the
// complete page before the controller reports the complete phase, so a View
// never shows the complete phase on the signup page. deps.OnComplete, if set,
// runs after both.
func NewJourney(deps Deps) *Journey {
	router := NewPageRouter()

	deps.advance = func(c Completion) {
		// the controller only completes from the signup page
		_ = router.Complete(c.Email, c.FirstName)
	}

	return &Journey{Router: router, Controller: NewController(deps)}
}

// Signup returns the controller once the user has left the welcome page.
func (j *Journey) Signup() (*Controller, error) {
	if j.Router.Page() == PageWelcome {
		return nil, ErrInvalidTransition
	}
	return j.Controller, nil
}

// View reads the controller before the router; see NewJourney.
func (j *Journey) View() View {
	snap := j.Controller.Snapshot()
	return View{Page: j.Router.Page(), Flow: snap}
}
