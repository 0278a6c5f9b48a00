package entities

import "time"

// AudioArtifact is a persisted audio file produced by one completed synthesis
type AudioArtifact struct {
	Name        string    `json:"artifact_name"`
	FilePath    string    `json:"-"`
	ByteSize    int64     `json:"byte_size"`
	CreatedAt   time.Time `json:"created_at"`
	ContentType string    `json:"content_type"`
}

// HistoryEntry records one successful synthesis
type HistoryEntry struct {
	ID              string    `json:"id" bson:"_id"`
	ArtifactName    string    `json:"artifact_name" bson:"artifact_name"`
	VoiceIdentifier string    `json:"voice_identifier" bson:"voice_identifier"`
	TextPreview     string    `json:"text_preview" bson:"text_preview"`
	Rate            float64   `json:"rate" bson:"rate"`
	Volume          float64   `json:"volume" bson:"volume"`
	ByteSize        int64     `json:"byte_size" bson:"byte_size"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
}

const previewLength = 80

// NewHistoryEntry builds a history entry for a stored artifact
func NewHistoryEntry(id string, req SynthesisRequest, artifact AudioArtifact) HistoryEntry {
	preview := []rune(req.Text)
	if len(preview) > previewLength {
		preview = append(preview[:previewLength], '…')
	}

	return HistoryEntry{
		ID:              id,
		ArtifactName:    artifact.Name,
		VoiceIdentifier: req.VoiceIdentifier,
		TextPreview:     string(preview),
		Rate:            req.Rate,
		Volume:          req.Volume,
		ByteSize:        artifact.ByteSize,
		CreatedAt:       artifact.CreatedAt,
	}
}
