// Package vitals extracts numeric vital signs from free-text answers.
// Parsing is best-effort: anything the patterns do not recognize is
// ignored, and a malformed number is logged and skipped rather than
// propagated as an error.
package vitals

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	temperaturePattern = regexp.MustCompile(`(?i)temperature\s*(\d+\.?\d*)\s*(°F|F|°C|C|degrees)`)
	heartRatePattern   = regexp.MustCompile(`(?i)heart rate\s*(\d+)\s*(bpm)?`)
)

// Reading holds whatever vitals were recognized in one input. Nil fields
// mean the vital was not mentioned or could not be read.
type Reading struct {
	Temperature *float64 // degrees Fahrenheit
	HeartRate   *int     // beats per minute
}

// Empty reports whether nothing was recognized.
func (r Reading) Empty() bool {
	return r.Temperature == nil && r.HeartRate == nil
}

// Parser recognizes temperature and heart-rate expressions.
type Parser struct {
	log *logrus.Logger
}

// NewParser creates a new vitals parser.
func NewParser(logger *logrus.Logger) *Parser {
	return &Parser{log: logger}
}

// Parse scans the text for vital expressions. Temperatures tagged with a
// Celsius unit are converted to Fahrenheit (F = C*9/5 + 32).
func (p *Parser) Parse(text string) Reading {
	var reading Reading

	if m := temperaturePattern.FindStringSubmatch(text); m != nil {
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			p.log.WithFields(logrus.Fields{
				"raw":   m[1],
				"error": err,
			}).Warn("Skipping unreadable temperature value")
		} else {
			if strings.Contains(strings.ToUpper(m[2]), "C") {
				value = value*9/5 + 32
			}
			reading.Temperature = &value
		}
	}

	if m := heartRatePattern.FindStringSubmatch(text); m != nil {
		value, err := strconv.Atoi(m[1])
		if err != nil {
			p.log.WithFields(logrus.Fields{
				"raw":   m[1],
				"error": err,
			}).Warn("Skipping unreadable heart rate value")
		} else {
			reading.HeartRate = &value
		}
	}

	return reading
}
