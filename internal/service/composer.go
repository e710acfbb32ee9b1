package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/doctor-dialogue-server/internal/domain"
)

// seriousSymptoms are the phrases that flag an emergency. Matching is a
// plain substring check against each lowercased symptom entry.
var seriousSymptoms = []string{
	"chest pain",
	"difficulty breathing",
	"severe abdominal pain",
	"unconsciousness",
	"severe bleeding",
	"severe skin infection",
}

// Temperature advisories trigger above these per-age-group limits (°F).
const (
	childTempLimit = 102
	adultTempLimit = 103
	heartRateHigh  = 100
	heartRateLow   = 60
)

const disclaimer = "**Disclaimer**: These are suggested prescriptions. Consult a qualified doctor " +
	"to confirm dosages and appropriateness. This chatbot is not a substitute for professional medical advice."

// PrescriptionComposer assembles the recommendation document from a
// completed patient record and persists it to history.
type PrescriptionComposer struct {
	catalog domain.ConditionCatalog
	store   domain.PrescriptionStore
	log     *logrus.Logger
	now     func() time.Time
}

// NewPrescriptionComposer creates a new composer.
func NewPrescriptionComposer(catalog domain.ConditionCatalog, store domain.PrescriptionStore, logger *logrus.Logger) *PrescriptionComposer {
	return &PrescriptionComposer{
		catalog: catalog,
		store:   store,
		log:     logger,
		now:     time.Now,
	}
}

// Compose builds the prescription for the record and saves it to the
// user's history. A persistence failure is non-fatal: the composed record
// is still returned, with a warning message for the caller to surface,
// so the session can keep the document for display and export.
func (pc *PrescriptionComposer) Compose(ctx context.Context, username string, record *domain.PatientRecord) (*domain.PrescriptionRecord, string, error) {
	if !record.AgeGroup.IsValid() {
		return nil, "", domain.ErrAgeGroupRequired
	}

	timestamp := pc.now().Format(domain.TimestampLayout)

	var b strings.Builder
	patientKind := "Adult"
	if record.AgeGroup == domain.AgeGroupChild {
		patientKind = "Child"
	}
	fmt.Fprintf(&b, "Prescription for %s Patient:\n", patientKind)
	fmt.Fprintf(&b, "Timestamp: %s\n\n", timestamp)
	b.WriteString("**Symptoms and Diagnosis**\n")

	seriousFlag := pc.writeSymptomSection(ctx, &b, record)
	pc.writeVitalsWarnings(&b, record)
	pc.writePatientInfo(&b, record)

	if !seriousFlag {
		b.WriteString("\n**General Recommendations**\n")
		b.WriteString("- Verify all medications with a healthcare professional.\n")
		b.WriteString("- Monitor symptoms and seek medical attention if they worsen.\n")
		if record.AgeGroup == domain.AgeGroupChild {
			b.WriteString("- Ensure a pediatrician reviews all treatments for children.\n")
		} else {
			b.WriteString("- Check for drug interactions if on other medications.\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(disclaimer)

	rec := &domain.PrescriptionRecord{
		Username:  username,
		Text:      b.String(),
		Timestamp: timestamp,
	}

	var warning string
	if err := pc.store.SavePrescription(ctx, rec); err != nil {
		pc.log.WithFields(logrus.Fields{
			"username": username,
			"error":    err,
		}).Error("Failed to save prescription")
		warning = "Failed to save prescription to history; it remains available in this session."
	} else {
		pc.log.WithFields(logrus.Fields{
			"username":  username,
			"timestamp": timestamp,
		}).Info("Prescription saved")
	}

	return rec, warning, nil
}

// writeSymptomSection emits the per-symptom diagnosis lines and reports
// whether a serious symptom was found. Once the serious flag is set,
// catalog lookups are suppressed for every remaining symptom in the pass;
// later serious symptoms still get their own urgent advisory.
func (pc *PrescriptionComposer) writeSymptomSection(ctx context.Context, b *strings.Builder, record *domain.PatientRecord) bool {
	seriousFlag := false

	for _, symptom := range record.Symptoms {
		lower := strings.ToLower(symptom)

		for _, serious := range seriousSymptoms {
			if strings.Contains(lower, serious) {
				seriousFlag = true
				fmt.Fprintf(b, "URGENT: %s is a serious symptom. Seek emergency medical care immediately.\n",
					capitalize(serious))
				break
			}
		}
		if seriousFlag {
			continue
		}

		records, err := pc.catalog.Lookup(ctx, lower, record.AgeGroup, record.Severity)
		if err != nil {
			pc.log.WithFields(logrus.Fields{
				"symptom": lower,
				"error":   err,
			}).Error("Catalog lookup failed")
			b.WriteString("- Error retrieving treatment. Please consult a doctor.\n")
			continue
		}

		for _, rec := range records {
			fmt.Fprintf(b, "- Symptom: %s\n", lower)
			fmt.Fprintf(b, "Treatment: %s\n", rec.Treatment)
			fmt.Fprintf(b, "Description: %s\n", rec.Description)
			fmt.Fprintf(b, "Severity: %s\n", rec.SeverityInfo)
			fmt.Fprintf(b, "Causes: %s\n", rec.Causes)
			fmt.Fprintf(b, "Prevention: %s\n\n", rec.Prevention)
		}
		if len(records) == 0 {
			fmt.Fprintf(b, "- No specific treatment found for %s. Consult a doctor.\n", lower)
		}
	}

	return seriousFlag
}

func (pc *PrescriptionComposer) writeVitalsWarnings(b *strings.Builder, record *domain.PatientRecord) {
	if record.Vitals.Temperature != nil {
		temp := *record.Vitals.Temperature
		highChild := record.AgeGroup == domain.AgeGroupChild && temp > childTempLimit
		highAdult := record.AgeGroup == domain.AgeGroupAdult && temp > adultTempLimit
		if highChild || highAdult {
			fmt.Fprintf(b, "Warning: High temperature (%g°F). Seek medical attention immediately.\n", temp)
		}
	}
	if record.Vitals.HeartRate != nil {
		hr := *record.Vitals.HeartRate
		if hr > heartRateHigh || hr < heartRateLow {
			fmt.Fprintf(b, "Warning: Abnormal heart rate (%d bpm). Consult a doctor.\n", hr)
		}
	}
}

func (pc *PrescriptionComposer) writePatientInfo(b *strings.Builder, record *domain.PatientRecord) {
	b.WriteString("**Patient Information**\n")
	if record.Duration != "" {
		fmt.Fprintf(b, "Symptom Duration: %s\n", record.Duration)
	}
	if record.Allergies != "" {
		fmt.Fprintf(b, "Allergies: %s\n", record.Allergies)
	} else {
		b.WriteString("Allergies: None reported\n")
	}
	if record.History != "" {
		fmt.Fprintf(b, "Medical History: %s\n", record.History)
	} else {
		b.WriteString("Medical History: No similar symptoms reported\n")
	}
	if record.Lifestyle != "" {
		fmt.Fprintf(b, "Lifestyle Factors: %s\n", record.Lifestyle)
	} else {
		b.WriteString("Lifestyle Factors: None reported\n")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
