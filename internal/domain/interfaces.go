package domain

import (
	"context"
)

// ConditionCatalog is the read-only lookup of treatment records keyed by
// (symptom tag, age group, severity). Lookup falls back to mild severity
// before reporting an empty result; an empty result is not an error.
type ConditionCatalog interface {
	Lookup(ctx context.Context, symptom string, ageGroup AgeGroup, severity Severity) ([]ConditionRecord, error)
}

// CredentialStore persists login credentials. Usernames are unique;
// passwords are stored and compared verbatim.
type CredentialStore interface {
	CreateUser(ctx context.Context, username, password string) error
	GetPassword(ctx context.Context, username string) (string, error)
}

// ProfileStore persists the per-username subset of the patient record
// with upsert semantics.
type ProfileStore interface {
	SaveProfile(ctx context.Context, profile *UserProfile) error
	GetProfile(ctx context.Context, username string) (*UserProfile, error)
}

// PrescriptionStore is the append-only prescription history. Records are
// identified by (username, timestamp); there is no update operation.
type PrescriptionStore interface {
	SavePrescription(ctx context.Context, rec *PrescriptionRecord) error
	ListPrescriptions(ctx context.Context, username string) ([]PrescriptionRecord, error)
	GetPrescription(ctx context.Context, username, timestamp string) (*PrescriptionRecord, error)
	DeletePrescription(ctx context.Context, username, timestamp string) error
}

// SeveritySource is the external severity selector. The dialogue resamples
// it on every accepted answer; the last value before the final state wins.
type SeveritySource interface {
	Severity() Severity
}

// Translator renders doctor prompts in the session language. Translation
// is best-effort: on any failure the original text comes back unchanged.
type Translator interface {
	Translate(ctx context.Context, text, lang string) string
}

// Speaker is the optional text-to-speech collaborator. Failures are
// logged, never surfaced to the dialogue.
type Speaker interface {
	Speak(text string)
}

// Transcriber is the optional voice-to-text collaborator. It resolves to
// recognized text or an explicit outcome error (not understood, service
// unavailable); it never blocks forever.
type Transcriber interface {
	Listen(ctx context.Context) (string, error)
}
