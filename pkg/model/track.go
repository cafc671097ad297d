package model

import "github.com/gofrs/uuid/v5"

// DbTrack is a stored track record. The whole track document is kept in a
// single jsonb column, the id is assigned by the store on create.
type DbTrack struct {
	ID   uuid.UUID `json:"id"`
	Data Track     `json:"data"`
}

type Track struct {
	Name           string  `json:"name"`
	NoiseLimit     int     `json:"noiseLimit"` // dB
	Location       string  `json:"location"`
	BuiltYear      int     `json:"builtYear"`
	Length         float64 `json:"length"` // km
	Corners        int     `json:"corners"`
	LogoURL        string  `json:"logoUrl"`
	TrackShapeURL  string  `json:"trackShapeUrl"`
	FooterImageURL string  `json:"footerImageUrl,omitempty"`
}
