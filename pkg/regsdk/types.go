package regsdk

import (
	"encoding/json"
)

// ============================================================================
// Wire envelope
// ============================================================================

// Envelope is the response shape shared by every registration API endpoint.
type Envelope[T any] struct {
	// Code is 1 on success
	Code int `json:"code"`

	// Type is a free-form status such as "success" or "error"
	Type string `json:"type,omitempty"`

	Message string `json:"message,omitempty"`

	// Errors maps a request field to its validation messages
	Errors map[string]FieldMessages `json:"errors,omitempty"`

	Data T `json:"data"`
}

// FieldMessages holds the messages for one field. The API sends either a
// single string or a list.
type FieldMessages []string

func (f *FieldMessages) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*f = FieldMessages{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*f = many
	return nil
}

// ============================================================================
// Identity exchange
// ============================================================================

type identityExchangeRequest struct {
	AccessToken string `json:"access_token"`
}

// User is the account the registration API associates with a session.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// IdentityExchange is the result of a successful token exchange.
type IdentityExchange struct {
	// AccessToken is the API session token. It has already been stored.
	AccessToken string `json:"access_token"`

	User User `json:"user"`
}

// ============================================================================
// Registration
// ============================================================================

// RegistrationRequest is an early-access signup.
type RegistrationRequest struct {
	FirstName    string
	SecondName   string
	Email        string
	Interests    string
	LearningMode string
	HoursPerWeek string
}

// registrationBody is the wire form. The questionnaire answers travel as
// numbered questions.
type registrationBody struct {
	FirstName  string `json:"first_name"`
	SecondName string `json:"second_name"`
	Email      string `json:"email"`
	Question1  string `json:"question_1"`
	Question2  string `json:"question_2"`
	Question3  string `json:"question_3"`
}

func (r RegistrationRequest) body() registrationBody {
	return registrationBody{
		FirstName:  r.FirstName,
		SecondName: r.SecondName,
		Email:      r.Email,
		Question1:  r.Interests,
		Question2:  r.LearningMode,
		Question3:  r.HoursPerWeek,
	}
}

// RegistrationResponse is returned for an accepted registration.
type RegistrationResponse struct {
	Code    int    `json:"code"`
	Type    string `json:"type,omitempty"`
	Message string `json:"message,omitempty"`
}
