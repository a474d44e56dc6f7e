package model

// Request defaults
const (
	DefaultGenre    = "pop"
	DefaultDuration = "2:30"
	DefaultCount    = 5
)

// Response formats
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// Playback session states
type PlaybackState string

const (
	PlaybackStatePlaying   PlaybackState = "playing"
	PlaybackStateCompleted PlaybackState = "completed"
	PlaybackStateStopped   PlaybackState = "stopped"
)
