package entities

// Gender of a catalog voice
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// VoiceProfile maps a human-readable voice identifier to the backend voice
type VoiceProfile struct {
	Identifier  string `json:"identifier"`
	BackendCode string `json:"-"`
	LanguageTag string `json:"language_tag"`
	Gender      Gender `json:"gender"`
	Name        string `json:"name"`
	Style       string `json:"style"`
}
