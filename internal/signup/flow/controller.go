package flow

import (
	"context"
	"errors"
	"maps"
	"sync"

	"github.com/delveng/signup/internal/signup/domain"
	"github.com/delveng/signup/pkg/regsdk"
	"github.com/delveng/signup/pkg/slogx"
)

// Messages the controller sets itself.
const (
	MsgIdentityCancelled = "Google sign-in was cancelled or failed. Please try again."
	MsgProfileFailed     = "Failed to fetch Google user info"
)

// Registrar is the subset of the registration API the flow needs.
type Registrar interface {
	ExchangeIdentityToken(ctx context.Context, accessToken string) (*regsdk.IdentityExchange, error)
	SubmitRegistration(ctx context.Context, req regsdk.RegistrationRequest) (*regsdk.RegistrationResponse, error)
}

// ProfileFetcher reads the user's profile from the identity provider.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, accessToken string) (domain.Profile, error)
}

// Deps are the controller's collaborators. Validators default to the domain
// validators; OnComplete may be nil.
type Deps struct {
	Registrar Registrar
	Profiles  ProfileFetcher

	ValidateRegistration func(domain.RegistrationDraft) domain.FieldErrors
	ValidatePreferences  func(domain.PreferencesDraft) domain.FieldErrors

	// OnComplete runs once, after the registration is accepted.
	OnComplete func(Completion)

	// advance runs under the controller lock just before the complete state
	// becomes visible. It must not call back into the controller.
	advance func(Completion)
}

// Controller is the signup state machine for one user. All methods are safe
// for concurrent use. Remote calls run without holding the lock, with the
// state parked in a busy variant so that only one can be in flight.
type Controller struct {
	deps Deps

	mu        sync.Mutex
	st        state
	draft     domain.RegistrationDraft
	prefs     domain.PreferencesDraft
	fieldErrs domain.FieldErrors
	prefErrs  domain.FieldErrors
	errMsg    string
	assertion *IdentityAssertion
}

func NewController(deps Deps) *Controller {
	if deps.ValidateRegistration == nil {
		deps.ValidateRegistration = domain.RegistrationDraft.Validate
	}
	if deps.ValidatePreferences == nil {
		deps.ValidatePreferences = domain.PreferencesDraft.Validate
	}
	return &Controller{deps: deps, st: idle{}}
}

// guard reports whether op may run in the current state. Caller holds mu.
func (c *Controller) guard(allowed Phase) error {
	if isBusy(c.st) {
		return ErrBusy
	}
	if c.st.phase() != allowed {
		return ErrInvalidTransition
	}
	return nil
}

// UpdateDraft replaces the account form. Errors for edited fields are cleared.
func (c *Controller) UpdateDraft(d domain.RegistrationDraft) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guard(PhaseIdle); err != nil {
		return err
	}
	c.fieldErrs = c.fieldErrs.Without(c.draft.ChangedFields(d)...)
	c.draft = d
	return nil
}

// SubmitLocal validates the account form and, if it passes, opens the
// preferences questionnaire.
func (c *Controller) SubmitLocal() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guard(PhaseIdle); err != nil {
		return err
	}

	c.errMsg = ""
	c.fieldErrs = c.deps.ValidateRegistration(c.draft)
	if len(c.fieldErrs) > 0 {
		return ErrInvalidInput
	}

	c.prefErrs = nil
	c.st = collecting{origin: OriginLocal}
	return nil
}

// BeginIdentitySignup fetches the provider profile for accessToken and opens
// the questionnaire with the form pre-filled. The provider fields are trusted
// and are not validated.
func (c *Controller) BeginIdentitySignup(ctx context.Context, accessToken string) error {
	c.mu.Lock()
	if err := c.guard(PhaseIdle); err != nil {
		c.mu.Unlock()
		return err
	}
	c.st = authenticating{}
	c.errMsg = ""
	c.mu.Unlock()

	settled := false
	defer func() {
		if !settled {
			c.mu.Lock()
			c.st = idle{}
			c.mu.Unlock()
		}
	}()

	profile, err := c.deps.Profiles.FetchProfile(ctx, accessToken)

	c.mu.Lock()
	defer c.mu.Unlock()
	settled = true

	if err != nil {
		slogx.FromContext(ctx).Warn("identity profile fetch failed", "err", err)
		c.st = idle{}
		c.errMsg = MsgProfileFailed
		return &RemoteError{Step: StepProfile, Err: err}
	}

	c.draft = domain.ProfileDraft(profile)
	c.fieldErrs = nil
	c.prefErrs = nil
	c.assertion = &IdentityAssertion{AccessToken: accessToken, Profile: profile}
	c.st = collecting{origin: OriginIdentity}
	return nil
}

// FailIdentitySignup records that the provider popup was closed or failed.
func (c *Controller) FailIdentitySignup() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guard(PhaseIdle); err != nil {
		return err
	}
	c.errMsg = MsgIdentityCancelled
	return nil
}

// UpdatePreferences replaces the questionnaire answers.
func (c *Controller) UpdatePreferences(p domain.PreferencesDraft) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guard(PhaseCollectingPreferences); err != nil {
		return err
	}

	var edited []string
	if p.LearningMode != c.prefs.LearningMode {
		edited = append(edited, domain.FieldLearningMode)
	}
	if p.Interests != c.prefs.Interests {
		edited = append(edited, domain.FieldInterests)
	}
	if p.HoursPerWeek != c.prefs.HoursPerWeek {
		edited = append(edited, domain.FieldHoursPerWeek)
	}
	c.prefErrs = c.prefErrs.Without(edited...)
	c.prefs = p
	return nil
}

// SubmitPreferences validates the answers, exchanges the identity token if the
// form came from a provider, then submits the registration. Any remote failure
// returns to the questionnaire with both drafts kept.
func (c *Controller) SubmitPreferences(ctx context.Context, p domain.PreferencesDraft) error {
	c.mu.Lock()
	if err := c.guard(PhaseCollectingPreferences); err != nil {
		c.mu.Unlock()
		return err
	}

	c.prefs = p
	c.prefErrs = c.deps.ValidatePreferences(p)
	if len(c.prefErrs) > 0 {
		c.mu.Unlock()
		return ErrInvalidInput
	}

	origin := c.st.(collecting).origin
	c.st = submitting{origin: origin}
	c.errMsg = ""
	draft := c.draft
	assertion := c.assertion
	c.mu.Unlock()

	settled := false
	defer func() {
		if !settled {
			c.mu.Lock()
			c.st = collecting{origin: origin}
			c.mu.Unlock()
		}
	}()

	step, err := c.register(ctx, draft, p, assertion)

	c.mu.Lock()
	settled = true
	if err != nil {
		slogx.FromContext(ctx).Info("registration attempt failed", "step", step, "err", err)
		c.st = collecting{origin: origin}
		c.errMsg = regsdk.Message(err)
		c.mu.Unlock()
		return &RemoteError{Step: step, Err: err}
	}

	result := Completion{Email: draft.Email, FirstName: draft.FirstName}
	c.assertion = nil
	if c.deps.advance != nil {
		c.deps.advance(result)
	}
	c.st = complete{result: result}
	c.mu.Unlock()

	if c.deps.OnComplete != nil {
		c.deps.OnComplete(result)
	}
	return nil
}

// register runs the remote half of a submission. It never touches controller
// state.
func (c *Controller) register(ctx context.Context, d domain.RegistrationDraft, p domain.PreferencesDraft, a *IdentityAssertion) (Step, error) {
	if a != nil {
		if _, err := c.deps.Registrar.ExchangeIdentityToken(ctx, a.AccessToken); err != nil {
			return StepExchange, err
		}
	}

	_, err := c.deps.Registrar.SubmitRegistration(ctx, regsdk.RegistrationRequest{
		FirstName:    d.FirstName,
		SecondName:   d.LastName,
		Email:        d.Email,
		Interests:    p.Interests,
		LearningMode: p.LearningMode,
		HoursPerWeek: p.HoursPerWeek,
	})
	if err != nil {
		return StepRegistration, err
	}
	return "", nil
}

// Cancel closes the questionnaire. A provider-filled form is discarded along
// with its assertion; a typed form is kept for editing.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guard(PhaseCollectingPreferences); err != nil {
		return err
	}

	if c.st.(collecting).origin == OriginIdentity {
		c.draft = domain.RegistrationDraft{}
		c.fieldErrs = nil
		c.assertion = nil
	}
	c.prefs = domain.PreferencesDraft{}
	c.prefErrs = nil
	c.errMsg = ""
	c.st = idle{}
	return nil
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		Phase:            c.st.phase(),
		Draft:            c.draft.Redacted(),
		Preferences:      c.prefs,
		FieldErrors:      maps.Clone(c.fieldErrs),
		PreferenceErrors: maps.Clone(c.prefErrs),
		Error:            c.errMsg,
		Busy:             isBusy(c.st),
		IdentityLinked:   c.assertion != nil,
	}

	switch st := c.st.(type) {
	case collecting:
		s.Origin = st.origin
		s.ModalOpen = true
	case submitting:
		s.Origin = st.origin
		s.ModalOpen = true
	case complete:
		result := st.result
		s.Completion = &result
	}
	return s
}

// IsRemote reports whether err came from a remote call rather than local
// state or validation.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
