package entities

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// Bounds accepted for a synthesis request
const (
	MinRate   = 0.5
	MaxRate   = 2.0
	MinVolume = 0.0
	MaxVolume = 1.0

	DefaultMaxTextLength = 5000
)

// SynthesisRequest is one text-to-speech call, built per request and discarded after use
type SynthesisRequest struct {
	Text            string  `json:"text"`
	VoiceIdentifier string  `json:"voice_identifier"`
	Rate            float64 `json:"rate"`
	Volume          float64 `json:"volume"`
}

// Validate checks the request shape and bounds. maxTextLength <= 0 means DefaultMaxTextLength.
// Voice resolution is left to the catalog.
func (r SynthesisRequest) Validate(maxTextLength int) error {
	if maxTextLength <= 0 {
		maxTextLength = DefaultMaxTextLength
	}

	if strings.TrimSpace(r.Text) == "" {
		return NewValidationError("text", "text cannot be empty")
	}
	if n := utf8.RuneCountInString(r.Text); n > maxTextLength {
		return NewValidationError("text", fmt.Sprintf("text too long (%d characters, max %d)", n, maxTextLength))
	}
	if strings.TrimSpace(r.VoiceIdentifier) == "" {
		return NewValidationError("voice_identifier", "voice identifier is required")
	}
	if math.IsNaN(r.Rate) || r.Rate < MinRate || r.Rate > MaxRate {
		return NewValidationError("rate", fmt.Sprintf("rate must be between %.1f and %.1f, got %g", MinRate, MaxRate, r.Rate))
	}
	if math.IsNaN(r.Volume) || r.Volume < MinVolume || r.Volume > MaxVolume {
		return NewValidationError("volume", fmt.Sprintf("volume must be between %.1f and %.1f, got %g", MinVolume, MaxVolume, r.Volume))
	}

	return nil
}
