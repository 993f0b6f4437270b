package domain

import "slices"

// Option is one selectable answer in the questionnaire.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OptionSets is the full questionnaire, keyed like PreferencesDraft.
type OptionSets struct {
	LearningMode []Option `json:"learningMode"`
	Interests    []Option `json:"interests"`
	HoursPerWeek []Option `json:"hoursPerWeek"`
}

var (
	interestOptions = []Option{
		{"electrical", "Electrical"},
		{"mechanical", "Mechanical"},
		{"architectural", "Architectural"},
		{"construction", "Construction"},
	}

	learningModeOptions = []Option{
		{"live", "Live Online Classes"},
		{"self-paced", "Self-Paced Learning"},
		{"recorded", "Recorded Video Courses"},
		{"interactive", "Interactive Online Sessions"},
		{"hybrid-online", "Mixed (Live + Recorded)"},
	}

	hoursOptions = []Option{
		{"1-5", "1-5 hours"},
		{"6-10", "6-10 hours"},
		{"11-15", "11-15 hours"},
		{"16-20", "16-20 hours"},
		{"20+", "20+ hours"},
	}
)

// Options returns a copy of the questionnaire choices.
func Options() OptionSets {
	return OptionSets{
		LearningMode: slices.Clone(learningModeOptions),
		Interests:    slices.Clone(interestOptions),
		HoursPerWeek: slices.Clone(hoursOptions),
	}
}

func hasOption(opts []Option, value string) bool {
	return slices.ContainsFunc(opts, func(o Option) bool { return o.Value == value })
}
