package flow

import "sync"

// Page is one screen of the signup journey.
type Page string

const (
	PageWelcome  Page = "welcome"
	PageSignup   Page = "signup"
	PageComplete Page = "complete"
)

// PageRouter moves forward through welcome, signup and complete. There is no
// way back.
type PageRouter struct {
	mu     sync.Mutex
	page   Page
	result *Completion
}

func NewPageRouter() *PageRouter {
	return &PageRouter{page: PageWelcome}
}

// Start leaves the welcome page.
func (r *PageRouter) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.page != PageWelcome {
		return ErrInvalidTransition
	}
	r.page = PageSignup
	return nil
}

// Complete shows the completion page for the registered user.
func (r *PageRouter) Complete(email, firstName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.page != PageSignup {
		return ErrInvalidTransition
	}
	r.page = PageComplete
	r.result = &Completion{Email: email, FirstName: firstName}
	return nil
}

func (r *PageRouter) Page() Page {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.page
}

// Completion is set once the complete page is reached.
func (r *PageRouter) Completion() (Completion, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.result == nil {
		return Completion{}, false
	}
	return *r.result, true
}
