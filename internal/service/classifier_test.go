package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doctor-dialogue-server/pkg/skin"
)

func TestClassifyText_PrecedenceOrder(t *testing.T) {
	c := NewSymptomClassifier(testLogger())

	tests := []struct {
		text string
		tag  string
		ok   bool
	}{
		{"thick scaly patches on my elbow", "psoriasis", true},
		{"skin is dry and cracked", "eczema", true},
		{"pimples all over my chin", "acne", true},
		// Scaly vocabulary outranks dryness when both appear.
		{"dry scaly skin", "psoriasis", true},
		// Dryness outranks blemishes.
		{"dry skin with pimples", "eczema", true},
		{"I have a sore throat", "", false},
	}

	for _, tt := range tests {
		tag, ok := c.ClassifyText(tt.text)
		assert.Equal(t, tt.ok, ok, "text %q", tt.text)
		assert.Equal(t, tt.tag, tag, "text %q", tt.text)
	}
}

func TestClassifySignal_ThresholdOrder(t *testing.T) {
	c := NewSymptomClassifier(testLogger())

	tests := []struct {
		name string
		sig  skin.Signal
		tag  string
		ok   bool
	}{
		{"yellow pustules", skin.Signal{YellowRatio: 0.06}, "acne", true},
		{"white patches", skin.Signal{WhiteRatio: 0.2}, "psoriasis", true},
		{"redness", skin.Signal{RednessRatio: 0.3}, "rash", true},
		{"dull and dark", skin.Signal{LowSaturation: true, Darkness: true}, "eczema", true},
		// Yellow wins over everything else when it crosses its threshold.
		{"yellow beats white", skin.Signal{YellowRatio: 0.1, WhiteRatio: 0.5}, "acne", true},
		// White wins over redness.
		{"white beats red", skin.Signal{WhiteRatio: 0.2, RednessRatio: 0.9}, "psoriasis", true},
		{"below all thresholds", skin.Signal{YellowRatio: 0.04, WhiteRatio: 0.05, RednessRatio: 0.1}, "", false},
		{"dull but not dark", skin.Signal{LowSaturation: true}, "", false},
	}

	for _, tt := range tests {
		tag, ok := c.ClassifySignal(tt.sig)
		assert.Equal(t, tt.ok, ok, tt.name)
		assert.Equal(t, tt.tag, tag, tt.name)
	}
}
