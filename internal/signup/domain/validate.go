package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field names, as they appear in FieldErrors and in JSON.
const (
	FieldFirstName    = "firstName"
	FieldLastName     = "lastName"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldLearningMode = "learningMode"
	FieldInterests    = "interests"
	FieldHoursPerWeek = "hoursPerWeek"
)

// MinPasswordLength is counted in characters on the password as typed, spaces
// included.
const MinPasswordLength = 8

const (
	MsgFirstNameRequired    = "First name is required"
	MsgLastNameRequired     = "Last name is required"
	MsgEmailRequired        = "Email is required"
	MsgEmailInvalid         = "Please enter a valid email address"
	MsgPasswordRequired     = "Password is required"
	MsgPasswordTooShort     = "Password must be at least 8 characters long"
	MsgLearningModeRequired = "Please select your preferred learning mode"
	MsgInterestsRequired    = "Please select your area of interest"
	MsgHoursRequired        = "Please select how many hours per week you can dedicate"
	MsgInvalidOption        = "Please select a valid option"
)

// emailPattern treats Unicode separators such as U+00A0 as whitespace too.
var emailPattern = regexp.MustCompile(`[^\s\p{Z}]+@[^\s\p{Z}]+\.[^\s\p{Z}]+`)

// FieldErrors maps a field name to the message shown next to it.
type FieldErrors map[string]string

// orNil keeps "valid" and "no errors" the same value.
func (fe FieldErrors) orNil() FieldErrors {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// Without returns a copy of fe minus the named fields.
func (fe FieldErrors) Without(fields ...string) FieldErrors {
	if fe == nil {
		return nil
	}
	out := make(FieldErrors, len(fe))
	for k, v := range fe {
		out[k] = v
	}
	for _, f := range fields {
		delete(out, f)
	}
	return out.orNil()
}

// Validate checks the account form. It returns nil when every field passes.
func (d RegistrationDraft) Validate() FieldErrors {
	fe := FieldErrors{}

	if strings.TrimSpace(d.FirstName) == "" {
		fe[FieldFirstName] = MsgFirstNameRequired
	}
	if strings.TrimSpace(d.LastName) == "" {
		fe[FieldLastName] = MsgLastNameRequired
	}

	switch email := strings.TrimSpace(d.Email); {
	case email == "":
		fe[FieldEmail] = MsgEmailRequired
	case !emailPattern.MatchString(email):
		fe[FieldEmail] = MsgEmailInvalid
	}

	switch {
	case strings.TrimSpace(d.Password) == "":
		fe[FieldPassword] = MsgPasswordRequired
	case utf8.RuneCountInString(d.Password) < MinPasswordLength:
		fe[FieldPassword] = MsgPasswordTooShort
	}

	return fe.orNil()
}

// Validate checks the questionnaire answers against the option sets.
func (p PreferencesDraft) Validate() FieldErrors {
	fe := FieldErrors{}
	checkChoice(fe, FieldLearningMode, p.LearningMode, learningModeOptions, MsgLearningModeRequired)
	checkChoice(fe, FieldInterests, p.Interests, interestOptions, MsgInterestsRequired)
	checkChoice(fe, FieldHoursPerWeek, p.HoursPerWeek, hoursOptions, MsgHoursRequired)
	return fe.orNil()
}

func checkChoice(fe FieldErrors, field, value string, opts []Option, required string) {
	switch {
	case value == "":
		fe[field] = required
	case !hasOption(opts, value):
		fe[field] = MsgInvalidOption
	}
}
