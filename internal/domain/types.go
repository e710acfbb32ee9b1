// Package domain contains the core entities and types for the rule-based
// diagnostic dialogue: the patient record built up over a session, the
// dialogue states the intake walks through, and the condition catalog rows
// the prescription composer consumes.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// AgeGroup identifies the patient age bracket used for catalog lookups
// and vitals thresholds.
type AgeGroup string

const (
	AgeGroupUnset AgeGroup = ""
	AgeGroupChild AgeGroup = "child"
	AgeGroupAdult AgeGroup = "adult"
)

// ParseAgeGroup accepts the case-insensitive literals "child" and "adult".
// Anything else is rejected; the dialogue re-prompts on rejection.
func ParseAgeGroup(s string) (AgeGroup, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "child":
		return AgeGroupChild, true
	case "adult":
		return AgeGroupAdult, true
	default:
		return AgeGroupUnset, false
	}
}

// IsValid reports whether the age group has been set to a known bracket.
func (a AgeGroup) IsValid() bool {
	return a == AgeGroupChild || a == AgeGroupAdult
}

func (a AgeGroup) String() string {
	return string(a)
}

// Severity is the session-wide symptom severity, resampled from the
// external severity selector on every accepted answer.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// SeverityFromLevel maps the discrete selector positions 1..3 to a severity.
// Out-of-range levels fall back to mild, matching the selector default.
func SeverityFromLevel(level int) Severity {
	switch level {
	case 2:
		return SeverityModerate
	case 3:
		return SeveritySevere
	default:
		return SeverityMild
	}
}

// IsValid reports whether the severity is one of the three known grades.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityMild, SeverityModerate, SeveritySevere:
		return true
	default:
		return false
	}
}

func (s Severity) String() string {
	return string(s)
}

// DialogueState identifies the current step of the intake sequence.
type DialogueState string

const (
	StateAgeGroup  DialogueState = "age_group"
	StateVitals    DialogueState = "vitals"
	StateInitial   DialogueState = "initial"
	StateFollowUp  DialogueState = "follow_up"
	StateDuration  DialogueState = "duration"
	StateAllergies DialogueState = "allergies"
	StateHistory   DialogueState = "history"
	StateLifestyle DialogueState = "lifestyle"
	StateFinal     DialogueState = "final"
)

// StateOrder is the fixed traversal order of the intake. The follow_up
// state is the only one with a skip rule: it is bypassed whenever the
// follow-up queue is empty at the moment of transition.
var StateOrder = []DialogueState{
	StateAgeGroup,
	StateVitals,
	StateInitial,
	StateFollowUp,
	StateDuration,
	StateAllergies,
	StateHistory,
	StateLifestyle,
	StateFinal,
}

// IsValid reports whether the state is part of the intake sequence.
func (d DialogueState) IsValid() bool {
	for _, s := range StateOrder {
		if s == d {
			return true
		}
	}
	return false
}

func (d DialogueState) String() string {
	return string(d)
}

// IsTerminal reports whether the state accepts no further answers.
func (d DialogueState) IsTerminal() bool {
	return d == StateFinal
}

// Vitals holds the numeric vitals extracted from free text. Both fields
// are optional; a nil pointer means the vital was never reported.
type Vitals struct {
	Temperature *float64 `json:"temperature,omitempty"` // degrees Fahrenheit
	HeartRate   *int     `json:"heart_rate,omitempty"`  // beats per minute
}

// Empty reports whether no vital was captured.
func (v Vitals) Empty() bool {
	return v.Temperature == nil && v.HeartRate == nil
}

// PatientRecord is the mutable working set of one diagnosis session.
// Symptoms keep insertion order and may contain duplicates; derived
// condition tags are appended alongside the raw text that produced them.
type PatientRecord struct {
	AgeGroup  AgeGroup `json:"age_group"`
	Symptoms  []string `json:"symptoms"`
	Vitals    Vitals   `json:"vitals"`
	Duration  string   `json:"duration"`
	Allergies string   `json:"allergies"`
	History   string   `json:"history"`
	Lifestyle string   `json:"lifestyle"`
	Severity  Severity `json:"severity"`
}

// NewPatientRecord returns an empty record with the default mild severity.
func NewPatientRecord() *PatientRecord {
	return &PatientRecord{Severity: SeverityMild}
}

// Reset clears the per-session fields while preserving the profile-backed
// ones (allergies, history, lifestyle). Age group is cleared too: a fresh
// intake always starts by asking it again.
func (p *PatientRecord) Reset() {
	p.AgeGroup = AgeGroupUnset
	p.Symptoms = nil
	p.Vitals = Vitals{}
	p.Duration = ""
	p.Severity = SeverityMild
}

// ApplyProfile copies the persisted per-user fields into the record.
func (p *PatientRecord) ApplyProfile(profile *UserProfile) {
	if profile == nil {
		return
	}
	p.AgeGroup = profile.AgeGroup
	p.Allergies = profile.Allergies
	p.History = profile.History
	p.Lifestyle = profile.Lifestyle
}

// Profile extracts the persisted subset of the record for the given user.
func (p *PatientRecord) Profile(username string) *UserProfile {
	return &UserProfile{
		Username:  username,
		AgeGroup:  p.AgeGroup,
		Allergies: p.Allergies,
		History:   p.History,
		Lifestyle: p.Lifestyle,
	}
}

// ConditionRecord is one row of the static condition catalog, keyed by
// (symptom tag, age group, severity). Several rows may share a Name when
// a composite syndrome overlays multiple symptom tags.
type ConditionRecord struct {
	Name         string   `json:"name"`
	Symptom      string   `json:"symptom"`
	AgeGroup     AgeGroup `json:"age_group"`
	Severity     Severity `json:"severity"`
	Treatment    string   `json:"treatment"`
	Description  string   `json:"description"`
	SeverityInfo string   `json:"severity_info"`
	Causes       string   `json:"causes"`
	Prevention   string   `json:"prevention"`
}

// TimestampLayout is the second-precision stamp format used on
// prescriptions, both in the document text and as the persistence key.
const TimestampLayout = "2006-01-02 15:04:05"

// PrescriptionRecord is an immutable generated prescription. History is
// append-only per user; records are deleted by timestamp, never updated.
type PrescriptionRecord struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"` // TimestampLayout
}

// HistoryEntry renders the record the way the history surface shows it,
// with the bracketed timestamp a selection is later parsed back out of.
func (r PrescriptionRecord) HistoryEntry() string {
	return fmt.Sprintf("[%s]\n%s\n", r.Timestamp, r.Text)
}

// UserProfile is the per-username persisted subset of the patient record.
// Symptoms, vitals and severity are per-session only and never persisted.
type UserProfile struct {
	Username  string   `json:"username"`
	AgeGroup  AgeGroup `json:"age_group"`
	Allergies string   `json:"allergies"`
	History   string   `json:"history"`
	Lifestyle string   `json:"lifestyle"`
}

// Turn is one entry of the session transcript.
type Turn struct {
	Speaker string    `json:"speaker"` // "Doctor" or "User"
	Text    string    `json:"text"`
	At      time.Time `json:"at"`
}
