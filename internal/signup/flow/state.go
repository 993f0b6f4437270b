package flow

import (
	"errors"
	"fmt"

	"github.com/delveng/signup/internal/signup/domain"
)

var (
	// ErrBusy is returned while a profile fetch or submission is in flight.
	ErrBusy = errors.New("flow: another operation is in progress")

	// ErrInvalidTransition is returned for operations the current state does not allow.
	ErrInvalidTransition = errors.New("flow: operation not allowed in current state")

	// ErrInvalidInput means local validation failed. Details are in the snapshot.
	ErrInvalidInput = errors.New("flow: input failed validation")
)

// Step names the remote call a RemoteError came from.
type Step string

const (
	StepProfile      Step = "profile"
	StepExchange     Step = "exchange"
	StepRegistration Step = "registration"
)

// RemoteError is a failed call to the identity provider or registration API.
type RemoteError struct {
	Step Step
	Err  error
}

func (e *RemoteError) Error() string { return fmt.Sprintf("flow: %s: %v", e.Step, e.Err) }
func (e *RemoteError) Unwrap() error { return e.Err }

// Phase is the externally visible name of a state.
type Phase string

const (
	PhaseIdle                  Phase = "idle"
	PhaseAuthenticating        Phase = "authenticating"
	PhaseCollectingPreferences Phase = "collecting_preferences"
	PhaseSubmitting            Phase = "submitting"
	PhaseComplete              Phase = "complete"
)

// Origin records how the account form was filled in.
type Origin string

const (
	OriginLocal    Origin = "local"
	OriginIdentity Origin = "identity"
)

// IdentityAssertion is the provider token kept between the profile fetch and
// the exchange performed at final submission.
type IdentityAssertion struct {
	AccessToken string
	Profile     domain.Profile
}

// Completion is what the completion page shows.
type Completion struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
}

// state is one variant of the controller's state machine.
type state interface {
	phase() Phase
}

type (
	idle           struct{}
	authenticating struct{}
	collecting     struct{ origin Origin }
	submitting     struct{ origin Origin }
	complete       struct{ result Completion }
)

func (idle) phase() Phase           { return PhaseIdle }
func (authenticating) phase() Phase { return PhaseAuthenticating }
func (collecting) phase() Phase     { return PhaseCollectingPreferences }
func (submitting) phase() Phase     { return PhaseSubmitting }
func (complete) phase() Phase       { return PhaseComplete }

func isBusy(s state) bool {
	switch s.(type) {
	case authenticating, submitting:
		return true
	}
	return false
}

// Snapshot is a read-only view of a controller. The password is redacted.
type Snapshot struct {
	Phase            Phase                    `json:"phase"`
	Origin           Origin                   `json:"origin,omitempty"`
	Draft            domain.RegistrationDraft `json:"draft"`
	Preferences      domain.PreferencesDraft  `json:"preferences"`
	FieldErrors      domain.FieldErrors       `json:"fieldErrors,omitempty"`
	PreferenceErrors domain.FieldErrors       `json:"preferenceErrors,omitempty"`
	Error            string                   `json:"error,omitempty"`
	Busy             bool                     `json:"busy"`
	ModalOpen        bool                     `json:"modalOpen"`
	IdentityLinked   bool                     `json:"identityLinked"`
	Completion       *Completion              `json:"completion,omitempty"`
}
