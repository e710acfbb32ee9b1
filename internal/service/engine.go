package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/doctor-dialogue-server/internal/domain"
	"github.com/doctor-dialogue-server/pkg/skin"
	"github.com/doctor-dialogue-server/pkg/vitals"
)

// prompts are the fixed doctor questions per dialogue state. The follow_up
// prompt is a prefix completed with the queued question text.
var prompts = map[domain.DialogueState]string{
	domain.StateAgeGroup:  "Is the patient a child (under 18) or an adult? Please respond with 'child' or 'adult'.",
	domain.StateVitals:    "Please provide any known vital signs (e.g., temperature in °F, heart rate in bpm). Enter 'unknown' if not available.",
	domain.StateInitial:   "Please describe the patient's symptoms in detail.",
	domain.StateFollowUp:  "Please answer the following symptom-specific question: ",
	domain.StateDuration:  "How long have the symptoms been present?",
	domain.StateAllergies: "Does the patient have any known allergies or pre-existing conditions?",
	domain.StateHistory:   "Has the patient experienced similar symptoms before?",
	domain.StateLifestyle: "Can you provide details about the patient's diet, exercise, or recent travel?",
	domain.StateFinal:     "Thank you for the information. I will generate a prescription based on the responses.",
}

const ageGroupReprompt = "Please specify 'child' or 'adult'."

func now() time.Time { return time.Now() }

// SeveritySelector is the in-process stand-in for the external severity
// slider: the surface sets the discrete level, the engine resamples it on
// every accepted answer.
type SeveritySelector struct {
	mu    sync.Mutex
	level int
}

// NewSeveritySelector returns a selector at the default mild position.
func NewSeveritySelector() *SeveritySelector {
	return &SeveritySelector{level: 1}
}

// Set moves the selector to the given discrete position (1..3).
func (s *SeveritySelector) Set(level int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.level = level
}

// Severity implements domain.SeveritySource.
func (s *SeveritySelector) Severity() domain.Severity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.SeverityFromLevel(s.level)
}

// Reply is the engine's answer to one user input: the next doctor prompt,
// the state after the input was processed, and, when the final state was
// reached, the generated prescription.
type Reply struct {
	Prompt       string
	State        domain.DialogueState
	Done         bool
	Prescription *domain.PrescriptionRecord
	Warning      string
}

// SessionDeps bundles the collaborators a session needs.
type SessionDeps struct {
	Catalog       domain.ConditionCatalog
	Profiles      domain.ProfileStore
	Prescriptions domain.PrescriptionStore
	Severity      domain.SeveritySource
	Translator    domain.Translator
	Speaker       domain.Speaker
	Logger        *logrus.Logger
}

// Session drives one diagnostic dialogue for one user. All state is owned
// by the session; collaborators are injected and never mutated.
type Session struct {
	username string
	lang     string

	record   *domain.PatientRecord
	state    domain.DialogueState
	queue    []string // pending follow-up questions, FIFO
	turns    []domain.Turn
	current  *domain.PrescriptionRecord
	finished bool

	classifier   *SymptomClassifier
	vitalsParser *vitals.Parser
	composer     *PrescriptionComposer
	deps         SessionDeps

	handlers map[domain.DialogueState]func(ctx context.Context, text string) (*Reply, bool, error)
}

// NewSession creates a session for the user, loads their persisted profile
// and prepares the state machine at the age-group question.
func NewSession(ctx context.Context, username string, deps SessionDeps) *Session {
	s := &Session{
		username:     username,
		lang:         "en",
		record:       domain.NewPatientRecord(),
		state:        domain.StateAgeGroup,
		classifier:   NewSymptomClassifier(deps.Logger),
		vitalsParser: vitals.NewParser(deps.Logger),
		composer:     NewPrescriptionComposer(deps.Catalog, deps.Prescriptions, deps.Logger),
		deps:         deps,
	}

	s.handlers = map[domain.DialogueState]func(ctx context.Context, text string) (*Reply, bool, error){
		domain.StateAgeGroup:  s.handleAgeGroup,
		domain.StateVitals:    s.handleVitals,
		domain.StateInitial:   s.handleInitial,
		domain.StateFollowUp:  s.handleFollowUp,
		domain.StateDuration:  s.handleFreeText,
		domain.StateAllergies: s.handleFreeText,
		domain.StateHistory:   s.handleFreeText,
		domain.StateLifestyle: s.handleFreeText,
	}

	profile, err := deps.Profiles.GetProfile(ctx, username)
	if err != nil && err != domain.ErrNotFound {
		deps.Logger.WithFields(logrus.Fields{
			"username": username,
			"error":    err,
		}).Warn("Could not load user profile")
	}
	s.record.ApplyProfile(profile)

	return s
}

// Start emits the opening doctor prompt.
func (s *Session) Start(ctx context.Context) string {
	return s.say(ctx, prompts[s.state])
}

// State returns the current dialogue state.
func (s *Session) State() domain.DialogueState { return s.state }

// Record exposes the patient record for inspection (composer input, tests).
func (s *Session) Record() *domain.PatientRecord { return s.record }

// PendingFollowUps returns a copy of the queued follow-up questions.
func (s *Session) PendingFollowUps() []string {
	out := make([]string, len(s.queue))
	copy(out, s.queue)
	return out
}

// Transcript returns the doctor/user turn log so far.
func (s *Session) Transcript() []domain.Turn {
	out := make([]domain.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// CurrentPrescription returns the last composed prescription, if any.
func (s *Session) CurrentPrescription() *domain.PrescriptionRecord { return s.current }

// SetLanguage switches the language doctor prompts are translated into.
func (s *Session) SetLanguage(lang string) { s.lang = lang }

// Answer feeds one user input into the state machine and returns the next
// doctor prompt. Rejected input (an unknown age group) re-prompts without
// a state change; there is no retry limit.
func (s *Session) Answer(ctx context.Context, text string) (*Reply, error) {
	if s.finished {
		return nil, domain.ErrSessionFinished
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return &Reply{Prompt: s.currentPrompt(), State: s.state}, nil
	}

	s.turns = append(s.turns, domain.Turn{Speaker: "User", Text: text, At: now()})

	handler, ok := s.handlers[s.state]
	if !ok {
		return nil, domain.ErrSessionFinished
	}

	reply, accepted, err := handler(ctx, text)
	if err != nil {
		return nil, err
	}
	if !accepted {
		reply.Prompt = s.say(ctx, reply.Prompt)
		return reply, nil
	}

	// Severity is resampled on every accepted answer; the last value
	// before the final state wins.
	s.record.Severity = s.deps.Severity.Severity()

	if reply != nil && reply.Prompt != "" {
		// Handler chose the prompt itself (follow-up drain).
		reply.Prompt = s.say(ctx, reply.Prompt)
		reply.State = s.state
		return reply, nil
	}

	s.advance()

	if s.state == domain.StateFinal {
		return s.finish(ctx)
	}

	return &Reply{Prompt: s.say(ctx, s.currentPrompt()), State: s.state}, nil
}

// advance moves to the next state in the fixed order, skipping follow_up
// whenever the queue is empty at this moment. The emptiness check happens
// on every traversal, so follow_up may be skipped on one pass and entered
// on a later one.
func (s *Session) advance() {
	idx := 0
	for i, st := range domain.StateOrder {
		if st == s.state {
			idx = i
			break
		}
	}

	next := idx + 1
	for next < len(domain.StateOrder) && domain.StateOrder[next] == domain.StateFollowUp && len(s.queue) == 0 {
		next++
	}
	if next < len(domain.StateOrder) {
		s.state = domain.StateOrder[next]
	}
}

func (s *Session) handleAgeGroup(ctx context.Context, text string) (*Reply, bool, error) {
	age, ok := domain.ParseAgeGroup(text)
	if !ok {
		return &Reply{Prompt: ageGroupReprompt, State: s.state}, false, nil
	}

	s.record.AgeGroup = age
	s.saveProfile(ctx)
	return &Reply{}, true, nil
}

func (s *Session) handleVitals(ctx context.Context, text string) (*Reply, bool, error) {
	reading := s.vitalsParser.Parse(text)
	s.record.Vitals = domain.Vitals{
		Temperature: reading.Temperature,
		HeartRate:   reading.HeartRate,
	}
	return &Reply{}, true, nil
}

func (s *Session) handleInitial(ctx context.Context, text string) (*Reply, bool, error) {
	// "next" is the continuation token used after an image upload already
	// contributed a symptom; it must not be recorded as a symptom itself.
	if !strings.EqualFold(text, "next") {
		s.record.Symptoms = append(s.record.Symptoms, text)

		// Planning runs against the raw input only; the derived tag is
		// appended afterwards and does not retrigger planning this turn.
		s.queue = append(s.queue, PlanFollowUps(text)...)
		if tag, ok := s.classifier.ClassifyText(text); ok {
			s.record.Symptoms = append(s.record.Symptoms, tag)
		}
	}
	return &Reply{}, true, nil
}

func (s *Session) handleFollowUp(ctx context.Context, text string) (*Reply, bool, error) {
	s.record.Symptoms = append(s.record.Symptoms, text)
	if len(s.queue) > 0 {
		s.queue = s.queue[1:]
	}
	if len(s.queue) > 0 {
		// Stay in follow_up until the queue drains.
		return &Reply{Prompt: prompts[domain.StateFollowUp] + s.queue[0]}, true, nil
	}
	return &Reply{}, true, nil
}

func (s *Session) handleFreeText(ctx context.Context, text string) (*Reply, bool, error) {
	switch s.state {
	case domain.StateDuration:
		s.record.Duration = text
	case domain.StateAllergies:
		s.record.Allergies = text
		s.saveProfile(ctx)
	case domain.StateHistory:
		s.record.History = text
		s.saveProfile(ctx)
	case domain.StateLifestyle:
		s.record.Lifestyle = text
		s.saveProfile(ctx)
	}
	return &Reply{}, true, nil
}

// finish composes the prescription and locks the session until a reset.
func (s *Session) finish(ctx context.Context) (*Reply, error) {
	s.finished = true
	closing := s.say(ctx, prompts[domain.StateFinal])

	rec, warning, err := s.composer.Compose(ctx, s.username, s.record)
	if err != nil {
		return nil, err
	}
	s.current = rec

	return &Reply{
		Prompt:       closing,
		State:        s.state,
		Done:         true,
		Prescription: rec,
		Warning:      warning,
	}, nil
}

// GeneratePrescription composes on demand, outside the automatic
// final-state trigger. Fails with ErrAgeGroupRequired when the age group
// was never captured.
func (s *Session) GeneratePrescription(ctx context.Context) (*domain.PrescriptionRecord, string, error) {
	rec, warning, err := s.composer.Compose(ctx, s.username, s.record)
	if err != nil {
		return nil, "", err
	}
	s.current = rec
	return rec, warning, nil
}

// AttachImage runs the image classifier over an uploaded skin photo. A
// detected condition is appended as a symptom and queues its follow-up
// questions; when the dialogue is past the initial question the next
// queued question is surfaced immediately.
func (s *Session) AttachImage(ctx context.Context, data []byte) (string, string, error) {
	if s.finished {
		return "", "", domain.ErrSessionFinished
	}

	sig, err := skin.AnalyzeBytes(data)
	if err != nil {
		s.deps.Logger.WithFields(logrus.Fields{
			"username": s.username,
			"error":    err,
		}).Warn("Could not analyze uploaded image")
		return "", "", domain.NewValidationError("image", "could not be decoded as a raster image", nil)
	}

	tag, ok := s.classifier.ClassifySignal(sig)
	if !ok {
		return "", "", nil
	}

	s.record.Symptoms = append(s.record.Symptoms, tag)
	s.queue = append(s.queue, PlanFollowUps(tag)...)

	var followUp string
	if s.state != domain.StateInitial && len(s.queue) > 0 {
		followUp = s.say(ctx, prompts[domain.StateFollowUp]+s.queue[0])
	}
	return tag, followUp, nil
}

// Reset returns the dialogue to the age-group question. Per-session data
// is cleared; the profile-backed fields stay loaded for the user.
func (s *Session) Reset(ctx context.Context) string {
	s.record.Reset()
	s.queue = nil
	s.turns = nil
	s.current = nil
	s.finished = false
	s.state = domain.StateAgeGroup
	return s.Start(ctx)
}

// currentPrompt is the doctor question for the present state; in
// follow_up it is completed with the pending question.
func (s *Session) currentPrompt() string {
	if s.state == domain.StateFollowUp && len(s.queue) > 0 {
		return prompts[domain.StateFollowUp] + s.queue[0]
	}
	return prompts[s.state]
}

// say records and renders one doctor turn: the text is translated into
// the session language and handed to the speaker, both best-effort.
func (s *Session) say(ctx context.Context, text string) string {
	rendered := text
	if s.deps.Translator != nil {
		rendered = s.deps.Translator.Translate(ctx, text, s.lang)
	}
	s.turns = append(s.turns, domain.Turn{Speaker: "Doctor", Text: rendered, At: now()})
	if s.deps.Speaker != nil {
		s.deps.Speaker.Speak(rendered)
	}
	return rendered
}

// saveProfile persists the profile-backed fields. Failures are logged and
// never interrupt the dialogue.
func (s *Session) saveProfile(ctx context.Context) {
	if err := s.deps.Profiles.SaveProfile(ctx, s.record.Profile(s.username)); err != nil {
		s.deps.Logger.WithFields(logrus.Fields{
			"username": s.username,
			"error":    err,
		}).Error("Failed to save user profile")
	}
}
