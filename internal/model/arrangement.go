package model

import "github.com/makeasinger/songsmith/internal/generator"

// ArrangementRequest represents the request body for arrangement derivation
type ArrangementRequest struct {
	Lyrics string `json:"lyrics" validate:"required,max=20000"`
	Seed   Seed   `json:"seed" validate:"max=256"`
	BPM    int    `json:"bpm" validate:"omitempty,min=40,max=220"`
}

// ArrangementResponse is the derived score plus the seed it was built from
type ArrangementResponse struct {
	generator.Arrangement
	Seed string `json:"seed"`
}
