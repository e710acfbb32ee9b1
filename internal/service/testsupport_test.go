package service

import (
	"context"
	"errors"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/doctor-dialogue-server/internal/domain"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// memCatalog is an in-memory catalog with the same mild-severity fallback
// semantics as the SQLite implementation.
type memCatalog struct {
	records []domain.ConditionRecord
	failing bool
}

func (m *memCatalog) Lookup(_ context.Context, symptom string, age domain.AgeGroup, sev domain.Severity) ([]domain.ConditionRecord, error) {
	if m.failing {
		return nil, errors.New("catalog unavailable")
	}
	match := func(s domain.Severity) []domain.ConditionRecord {
		var out []domain.ConditionRecord
		for _, r := range m.records {
			if r.Symptom == symptom && r.AgeGroup == age && r.Severity == s {
				out = append(out, r)
			}
		}
		return out
	}
	out := match(sev)
	if len(out) == 0 && sev != domain.SeverityMild {
		out = match(domain.SeverityMild)
	}
	return out, nil
}

// memProfiles implements domain.ProfileStore in memory.
type memProfiles struct {
	profiles map[string]*domain.UserProfile
	saveErr  error
}

func newMemProfiles() *memProfiles {
	return &memProfiles{profiles: map[string]*domain.UserProfile{}}
}

func (m *memProfiles) SaveProfile(_ context.Context, p *domain.UserProfile) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := *p
	m.profiles[p.Username] = &cp
	return nil
}

func (m *memProfiles) GetProfile(_ context.Context, username string) (*domain.UserProfile, error) {
	p, ok := m.profiles[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// memPrescriptions implements domain.PrescriptionStore in memory.
type memPrescriptions struct {
	records []domain.PrescriptionRecord
	nextID  int64
	saveErr error
}

func (m *memPrescriptions) SavePrescription(_ context.Context, rec *domain.PrescriptionRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.nextID++
	rec.ID = m.nextID
	m.records = append(m.records, *rec)
	return nil
}

func (m *memPrescriptions) ListPrescriptions(_ context.Context, username string) ([]domain.PrescriptionRecord, error) {
	var out []domain.PrescriptionRecord
	for _, r := range m.records {
		if r.Username == username {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out, nil
}

func (m *memPrescriptions) GetPrescription(_ context.Context, username, timestamp string) (*domain.PrescriptionRecord, error) {
	for _, r := range m.records {
		if r.Username == username && r.Timestamp == timestamp {
			cp := r
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memPrescriptions) DeletePrescription(_ context.Context, username, timestamp string) error {
	for i, r := range m.records {
		if r.Username == username && r.Timestamp == timestamp {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// fixedSeverity implements domain.SeveritySource with a settable value.
type fixedSeverity struct {
	value domain.Severity
}

func (f *fixedSeverity) Severity() domain.Severity { return f.value }

func testDeps(sev *fixedSeverity) SessionDeps {
	return SessionDeps{
		Catalog:       &memCatalog{},
		Profiles:      newMemProfiles(),
		Prescriptions: &memPrescriptions{},
		Severity:      sev,
		Logger:        testLogger(),
	}
}

// driveTo answers the session through the listed inputs.
func driveTo(ctx context.Context, s *Session, inputs ...string) (*Reply, error) {
	var reply *Reply
	var err error
	for _, in := range inputs {
		reply, err = s.Answer(ctx, in)
		if err != nil {
			return reply, err
		}
	}
	return reply, nil
}
