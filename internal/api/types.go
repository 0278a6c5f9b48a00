package api

import "time"

// SynthesizeRequest represents the request payload for a synthesis.
// Voice is the field name older clients send; VoiceIdentifier wins when both are set.
type SynthesizeRequest struct {
	Text            string   `json:"text"`
	VoiceIdentifier string   `json:"voice_identifier"`
	Voice           string   `json:"voice,omitempty"`
	Rate            *float64 `json:"rate,omitempty"`
	Volume          *float64 `json:"volume,omitempty"`
}

// SynthesizeResponse represents the response payload for a completed synthesis
type SynthesizeResponse struct {
	ArtifactName    string    `json:"artifact_name"`
	AudioURL        string    `json:"audio_url"`
	ByteSize        int64     `json:"byte_size"`
	CreatedAt       time.Time `json:"created_at"`
	VoiceIdentifier string    `json:"voice_identifier"`
}

// HealthResponse represents the health check payload
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Backend   string `json:"backend"`
	Artifacts int    `json:"artifacts"`
}

// CleanupResponse reports how many artifacts a purge removed
type CleanupResponse struct {
	CleanedFiles int `json:"cleaned_files"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}
