package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Seed is a generation seed. JSON accepts either a string or a number.
type Seed string

// UnmarshalJSON accepts "abc", 1700000000000 and null.
func (s *Seed) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = ""
		return nil
	}

	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Seed(str)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("seed must be a string or a number: %w", err)
	}
	*s = Seed(n.String())
	return nil
}

// GenerateRequest represents the request body (or query string) for song generation
type GenerateRequest struct {
	Genre    string `json:"genre" validate:"max=64"`
	Duration string `json:"duration" validate:"max=16"`
	Prompt   string `json:"prompt" validate:"max=500"`
	Count    *int   `json:"count"`
	Seed     Seed   `json:"seed" validate:"max=256"`
	Format   Format `json:"format" validate:"omitempty,oneof=json csv"`
}

// Song is one generated song
type Song struct {
	ID       string `json:"id" csv:"id"`
	Title    string `json:"title" csv:"title"`
	Lyrics   string `json:"lyrics" csv:"lyrics"`
	Genre    string `json:"genre" csv:"genre"`
	Duration string `json:"duration" csv:"duration"`
	Seed     string `json:"seed" csv:"seed"`
}

// GenerateResponse represents the response for song generation
type GenerateResponse struct {
	Songs []Song `json:"songs"`
	Seed  string `json:"seed"`
}
