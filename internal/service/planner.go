package service

import "strings"

// maxFollowUps caps the combined follow-up sequence per input.
const maxFollowUps = 2

// followUpTemplate binds a condition keyword to its fixed pair of
// clarifying questions.
type followUpTemplate struct {
	condition string
	questions []string
}

// followUpTemplates is consulted in declaration order when planning.
var followUpTemplates = []followUpTemplate{
	{"fever", []string{
		"Is the fever accompanied by a rash?",
		"Do you have chills or night sweats?",
	}},
	{"cough", []string{
		"Is the cough dry or productive (with phlegm)?",
		"Is the cough worse at night?",
	}},
	{"headache", []string{
		"Is the headache accompanied by nausea or sensitivity to light?",
		"Does it feel like a throbbing pain?",
	}},
	{"diarrhea", []string{
		"Is there blood in the stool?",
		"Are you experiencing dehydration symptoms like dizziness?",
	}},
	{"rash", []string{
		"Is the rash itchy?",
		"Does it spread or change in appearance?",
	}},
	{"eczema", []string{
		"Is the skin dry or cracked?",
		"Is there oozing or crusting?",
	}},
	{"psoriasis", []string{
		"Are there thick, scaly patches?",
		"Is it painful or itchy?",
	}},
	{"acne", []string{
		"Is the acne inflamed or pustular?",
		"Does it appear on the face, back, or chest?",
	}},
}

// PlanFollowUps expands a symptom description into clarifying questions:
// every condition keyword contained in the lowercased input contributes
// its template in declaration order, and the combined sequence is
// truncated to two questions. Pure function, no state.
func PlanFollowUps(symptomText string) []string {
	lower := strings.ToLower(symptomText)

	var questions []string
	for _, tmpl := range followUpTemplates {
		if strings.Contains(lower, tmpl.condition) {
			questions = append(questions, tmpl.questions...)
		}
	}
	if len(questions) > maxFollowUps {
		questions = questions[:maxFollowUps]
	}
	return questions
}
