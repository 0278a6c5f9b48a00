// Package catalog holds the static table of neural voices the server offers.
package catalog

import (
	"fmt"
	"strings"

	"github.com/satriahrh/speechsuite/domain/entities"
	"github.com/satriahrh/speechsuite/domain/repositories"
)

const DefaultVoice = "en-US-JennyNeural"

type voiceSeed struct {
	identifier string
	gender     entities.Gender
	name       string
	style      string
}

var seeds = []voiceSeed{
	// English (US)
	{"en-US-JennyNeural", entities.GenderFemale, "Jenny", "Friendly"},
	{"en-US-GuyNeural", entities.GenderMale, "Guy", "Friendly"},
	{"en-US-AriaNeural", entities.GenderFemale, "Aria", "News"},
	{"en-US-DavisNeural", entities.GenderMale, "Davis", "News"},
	{"en-US-AmberNeural", entities.GenderFemale, "Amber", "Warm"},
	{"en-US-AnaNeural", entities.GenderFemale, "Ana", "Child"},
	{"en-US-BrandonNeural", entities.GenderMale, "Brandon", "Young"},
	{"en-US-ChristopherNeural", entities.GenderMale, "Christopher", "Professional"},
	{"en-US-CoraNeural", entities.GenderFemale, "Cora", "Mature"},
	{"en-US-ElizabethNeural", entities.GenderFemale, "Elizabeth", "Calm"},
	{"en-US-EricNeural", entities.GenderMale, "Eric", "Casual"},
	{"en-US-JacobNeural", entities.GenderMale, "Jacob", "Conversational"},
	{"en-US-JaneNeural", entities.GenderFemale, "Jane", "Clear"},
	{"en-US-JasonNeural", entities.GenderMale, "Jason", "Energetic"},
	{"en-US-MichelleNeural", entities.GenderFemale, "Michelle", "Expressive"},
	{"en-US-MonicaNeural", entities.GenderFemale, "Monica", "Pleasant"},
	{"en-US-NancyNeural", entities.GenderFemale, "Nancy", "Storyteller"},
	{"en-US-RogerNeural", entities.GenderMale, "Roger", "Deep"},
	{"en-US-SaraNeural", entities.GenderFemale, "Sara", "Gentle"},
	{"en-US-SteffanNeural", entities.GenderMale, "Steffan", "Warm"},
	{"en-US-TonyNeural", entities.GenderMale, "Tony", "Professional"},

	// English (other regions)
	{"en-GB-SoniaNeural", entities.GenderFemale, "Sonia", "British"},
	{"en-GB-RyanNeural", entities.GenderMale, "Ryan", "British"},
	{"en-AU-NatashaNeural", entities.GenderFemale, "Natasha", "Australian"},
	{"en-AU-WilliamNeural", entities.GenderMale, "William", "Australian"},
	{"en-CA-ClaraNeural", entities.GenderFemale, "Clara", "Canadian"},
	{"en-CA-LiamNeural", entities.GenderMale, "Liam", "Canadian"},
	{"en-IN-NeerjaNeural", entities.GenderFemale, "Neerja", "Indian"},
	{"en-IN-PrabhatNeural", entities.GenderMale, "Prabhat", "Indian"},

	{"es-ES-ElviraNeural", entities.GenderFemale, "Elvira", "Spanish"},
	{"es-ES-AlvaroNeural", entities.GenderMale, "Alvaro", "Spanish"},
	{"fr-FR-DeniseNeural", entities.GenderFemale, "Denise", "French"},
	{"fr-FR-HenriNeural", entities.GenderMale, "Henri", "French"},
	{"de-DE-KatjaNeural", entities.GenderFemale, "Katja", "German"},
	{"de-DE-ConradNeural", entities.GenderMale, "Conrad", "German"},
}

// Catalog is an immutable voice lookup table. It has no mutators once built.
type Catalog struct {
	voices []entities.VoiceProfile
	index  map[string]int
}

// Ensure Catalog implements the VoiceCatalog interface
var _ repositories.VoiceCatalog = (*Catalog)(nil)

// New builds the catalog from the built-in voice table
func New() *Catalog {
	c := &Catalog{
		voices: make([]entities.VoiceProfile, 0, len(seeds)),
		index:  make(map[string]int, len(seeds)),
	}

	for _, s := range seeds {
		lang, short := splitIdentifier(s.identifier)
		c.index[s.identifier] = len(c.voices)
		c.voices = append(c.voices, entities.VoiceProfile{
			Identifier:  s.identifier,
			BackendCode: BackendCode(lang, short),
			LanguageTag: lang,
			Gender:      s.gender,
			Name:        s.name,
			Style:       s.style,
		})
	}

	return c
}

// BackendCode returns the long voice name the Edge service expects,
// e.g. "Microsoft Server Speech Text to Speech Voice (en-US, JennyNeural)".
func BackendCode(languageTag, shortName string) string {
	return fmt.Sprintf("Microsoft Server Speech Text to Speech Voice (%s, %s)", languageTag, shortName)
}

// Resolve looks up a voice by its identifier
func (c *Catalog) Resolve(identifier string) (entities.VoiceProfile, error) {
	i, ok := c.index[identifier]
	if !ok {
		return entities.VoiceProfile{}, entities.NewNotFoundError("voice", identifier)
	}
	return c.voices[i], nil
}

// List returns every voice in declaration order
func (c *Catalog) List() []entities.VoiceProfile {
	out := make([]entities.VoiceProfile, len(c.voices))
	copy(out, c.voices)
	return out
}

// ListByLanguage returns voices whose language tag starts with prefix ("en", "en-GB").
// An empty prefix returns the full list.
func (c *Catalog) ListByLanguage(prefix string) []entities.VoiceProfile {
	if prefix == "" {
		return c.List()
	}

	prefix = strings.ToLower(prefix)
	out := []entities.VoiceProfile{}
	for _, v := range c.voices {
		if strings.HasPrefix(strings.ToLower(v.LanguageTag), prefix) {
			out = append(out, v)
		}
	}
	return out
}

// splitIdentifier turns "en-US-JennyNeural" into ("en-US", "JennyNeural")
func splitIdentifier(identifier string) (string, string) {
	i := strings.LastIndex(identifier, "-")
	if i < 0 {
		return "", identifier
	}
	return identifier[:i], identifier[i+1:]
}
