package service

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/doctor-dialogue-server/pkg/skin"
)

// textRule maps a vocabulary of substrings to a canonical condition tag.
type textRule struct {
	tag      string
	keywords []string
}

// textRules is evaluated top to bottom, first match wins. The ordering is
// behaviorally significant (scaly vocabulary outranks dryness, dryness
// outranks blemishes), so it is declared as a literal table rather than
// derived.
var textRules = []textRule{
	{tag: "psoriasis", keywords: []string{"scaly", "scale"}},
	{tag: "eczema", keywords: []string{"dry", "cracked"}},
	{tag: "acne", keywords: []string{"pimple", "acne"}},
}

// Image-signal thresholds, checked in this fixed order.
const (
	yellowThreshold  = 0.05 // pustules -> acne
	whiteThreshold   = 0.10 // whitish patches -> psoriasis
	rednessThreshold = 0.15 // redness -> rash
)

// SymptomClassifier detects canonical condition tags from free text or
// from the color signal of an uploaded skin image.
type SymptomClassifier struct {
	log *logrus.Logger
}

// NewSymptomClassifier creates a new symptom classifier.
func NewSymptomClassifier(logger *logrus.Logger) *SymptomClassifier {
	return &SymptomClassifier{log: logger}
}

// ClassifyText returns the first condition tag whose vocabulary appears in
// the text. The caller appends the tag as an additional symptom; the raw
// text entry is never replaced.
func (c *SymptomClassifier) ClassifyText(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, rule := range textRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				c.log.WithFields(logrus.Fields{
					"tag":   rule.tag,
					"input": text,
				}).Debug("Detected condition from text")
				return rule.tag, true
			}
		}
	}
	return "", false
}

// ClassifySignal maps an image color signal to a condition tag. The
// precedence order is independent of the text rules: yellow pustules, then
// white patches, then redness, then the dull/dark eczema heuristic.
func (c *SymptomClassifier) ClassifySignal(sig skin.Signal) (string, bool) {
	var tag string
	switch {
	case sig.YellowRatio > yellowThreshold:
		tag = "acne"
	case sig.WhiteRatio > whiteThreshold:
		tag = "psoriasis"
	case sig.RednessRatio > rednessThreshold:
		tag = "rash"
	case sig.LowSaturation && sig.Darkness:
		tag = "eczema"
	default:
		c.log.WithFields(logrus.Fields{
			"redness": sig.RednessRatio,
			"white":   sig.WhiteRatio,
			"yellow":  sig.YellowRatio,
		}).Debug("No condition detected from image signal")
		return "", false
	}

	c.log.WithFields(logrus.Fields{
		"tag":     tag,
		"redness": sig.RednessRatio,
		"white":   sig.WhiteRatio,
		"yellow":  sig.YellowRatio,
	}).Debug("Detected condition from image signal")
	return tag, true
}
