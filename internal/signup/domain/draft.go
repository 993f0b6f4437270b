package domain

import "strings"

// RegistrationDraft is the account form as typed so far.
type RegistrationDraft struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Redacted returns a copy safe to show or log.
func (d RegistrationDraft) Redacted() RegistrationDraft {
	if d.Password != "" {
		d.Password = "********"
	}
	return d
}

// ChangedFields lists the json names of fields that differ between d and next.
func (d RegistrationDraft) ChangedFields(next RegistrationDraft) []string {
	var out []string
	if d.FirstName != next.FirstName {
		out = append(out, FieldFirstName)
	}
	if d.LastName != next.LastName {
		out = append(out, FieldLastName)
	}
	if d.Email != next.Email {
		out = append(out, FieldEmail)
	}
	if d.Password != next.Password {
		out = append(out, FieldPassword)
	}
	return out
}

// PreferencesDraft holds the questionnaire answers.
type PreferencesDraft struct {
	LearningMode string `json:"learningMode"`
	Interests    string `json:"interests"`
	HoursPerWeek string `json:"hoursPerWeek"`
}

// Profile is what an identity provider tells us about the user.
type Profile struct {
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}

// ProfileDraft pre-fills the account form from a provider profile. Missing
// given or family names are taken from the display name: the first word is
// the first name, the rest the last name. The password stays empty.
func ProfileDraft(p Profile) RegistrationDraft {
	words := strings.Fields(p.Name)

	first := strings.TrimSpace(p.GivenName)
	if first == "" && len(words) > 0 {
		first = words[0]
	}

	last := strings.TrimSpace(p.FamilyName)
	if last == "" && len(words) > 1 {
		last = strings.Join(words[1:], " ")
	}

	return RegistrationDraft{
		FirstName: first,
		LastName:  last,
		Email:     strings.TrimSpace(p.Email),
	}
}
