package speech

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// ErrNotUnderstood is the outcome when voice input could not be
// recognized as text.
var ErrNotUnderstood = errors.New("could not understand audio")

// NullSpeaker satisfies the Speaker port without an audio device; it
// logs what would have been spoken.
type NullSpeaker struct {
	log *logrus.Logger
}

// NewNullSpeaker creates a new logging speaker.
func NewNullSpeaker(logger *logrus.Logger) *NullSpeaker {
	return &NullSpeaker{log: logger}
}

func (s *NullSpeaker) Speak(text string) {
	s.log.WithFields(logrus.Fields{
		"text": text,
	}).Debug("Speaking")
}

// NullTranscriber satisfies the Transcriber port without a microphone.
// It always reports the not-understood outcome.
type NullTranscriber struct {
	log *logrus.Logger
}

// NewNullTranscriber creates a new no-op transcriber.
func NewNullTranscriber(logger *logrus.Logger) *NullTranscriber {
	return &NullTranscriber{log: logger}
}

func (t *NullTranscriber) Listen(ctx context.Context) (string, error) {
	t.log.Debug("Voice input requested but no transcriber is configured")
	return "", ErrNotUnderstood
}
