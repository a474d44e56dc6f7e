package model

import "github.com/makeasinger/songsmith/internal/generator"

// WebSocket message types
const (
	// client -> server
	WSMessageTypePlay = "play"
	WSMessageTypeStop = "stop"
	WSMessageTypePing = "ping"

	// server -> client
	WSMessageTypeStarted  = "started"
	WSMessageTypeEvent    = "event"
	WSMessageTypeComplete = "complete"
	WSMessageTypeStopped  = "stopped"
	WSMessageTypeError    = "error"
	WSMessageTypePong     = "pong"
)

// WSMessage represents a generic WebSocket message
type WSMessage struct {
	Type string `json:"type"`
}

// WSPlayMessage asks the server to start a playback session
type WSPlayMessage struct {
	Type   string `json:"type"`
	Lyrics string `json:"lyrics" validate:"required,max=20000"`
	Seed   Seed   `json:"seed" validate:"max=256"`
	BPM    int    `json:"bpm" validate:"omitempty,min=40,max=220"`
}

// WSStartedMessage acknowledges a play request
type WSStartedMessage struct {
	Type       string  `json:"type"`
	SessionID  string  `json:"sessionId"`
	BPM        int     `json:"bpm"`
	TotalBeats float64 `json:"totalBeats"`
	Events     int     `json:"events"`
}

// WSEventMessage carries one scheduled arrangement event
type WSEventMessage struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId"`
	Event     generator.Event `json:"event"`
}

// WSStateMessage reports that a session finished or was stopped
type WSStateMessage struct {
	Type      string        `json:"type"`
	SessionID string        `json:"sessionId"`
	State     PlaybackState `json:"state"`
}

// WSErrorMessage represents an error
type WSErrorMessage struct {
	Type  string  `json:"type"`
	Error WSError `json:"error"`
}

// WSError represents error details
type WSError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
