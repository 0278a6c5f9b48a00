package repositories

import (
	"context"

	"github.com/satriahrh/speechsuite/domain/entities"
)

// SynthesisParams is what a remote backend receives for one call
type SynthesisParams struct {
	Text        string
	BackendCode string
	LanguageTag string
	Rate        float64
	Volume      float64
}

// TextToSpeech abstracts the remote neural voice service.
// One call per invocation, returning the encoded audio payload.
type TextToSpeech interface {
	Name() string
	Synthesize(ctx context.Context, params SynthesisParams) ([]byte, error)
}

// VoiceCatalog resolves catalog identifiers to voice profiles
type VoiceCatalog interface {
	Resolve(identifier string) (entities.VoiceProfile, error)
	List() []entities.VoiceProfile
	ListByLanguage(prefix string) []entities.VoiceProfile
}
