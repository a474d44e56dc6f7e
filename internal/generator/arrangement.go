package generator

import (
	"math"
	"strings"
	"unicode"
)

// EventKind identifies the voice an arrangement event is played on.
type EventKind string

const (
	KindKick  EventKind = "kick"
	KindSnare EventKind = "snare"
	KindHat   EventKind = "hat"
	KindBass  EventKind = "bass"
	KindChord EventKind = "chord"
	KindLead  EventKind = "lead"
)

const (
	DefaultBPM = 100
	MinBPM     = 40
	MaxBPM     = 220

	// MinBars is the shortest backing track, regardless of lyric length.
	MinBars = 8
	// MaxLeadNotes caps the lead line; words past it are not voiced.
	MaxLeadNotes = 256

	beatsPerBar   = 4
	leadNoteBeats = 0.5
)

// pentatonic holds major pentatonic degrees in semitones.
var pentatonic = []int{0, 2, 4, 7, 9}

var progressions = [][]int{
	{0, 7, 9, 5}, // I-V-vi-IV
	{9, 5, 0, 7}, // vi-IV-I-V
	{0, 9, 5, 7}, // I-vi-IV-V
}

// Event is one timed note or hit. Beat is measured in quarter notes from the
// start. Pitch is in semitones relative to A3 and is set only for lead, bass
// and chord events.
type Event struct {
	Kind        EventKind `json:"kind"`
	Beat        float64   `json:"beat"`
	Pitch       *int      `json:"pitch,omitempty"`
	LengthBeats float64   `json:"lengthBeats,omitempty"`
}

// Arrangement is the playback score derived from a lyric sheet.
type Arrangement struct {
	BPM        int     `json:"bpm"`
	Bars       int     `json:"bars"`
	TotalBeats float64 `json:"totalBeats"`
	Events     []Event `json:"events"`
}

// ClampBPM returns DefaultBPM for non-positive values and otherwise keeps
// bpm inside [MinBPM, MaxBPM].
func ClampBPM(bpm int) int {
	switch {
	case bpm <= 0:
		return DefaultBPM
	case bpm < MinBPM:
		return MinBPM
	case bpm > MaxBPM:
		return MaxBPM
	}
	return bpm
}

// BuildArrangement derives a lead line from the words of lyrics and lays a
// fixed drum, bass and chord pattern under it. The result depends only on
// the three arguments.
func BuildArrangement(lyrics, seed string, bpm int) Arrangement {
	r := NewRand(seed + "|arrangement")
	words := Words(lyrics)
	if len(words) > MaxLeadNotes {
		words = words[:MaxLeadNotes]
	}

	events := make([]Event, 0, len(words))
	for i := range words {
		pitch := Pick(r, pentatonic) + 12*Between(r, 0, 1)
		events = append(events, tonal(KindLead, float64(i)*leadNoteBeats, pitch, leadNoteBeats))
	}

	leadBeats := float64(len(words)) * leadNoteBeats
	bars := int(math.Ceil(leadBeats / beatsPerBar))
	if bars < MinBars {
		bars = MinBars
	}

	progression := Pick(r, progressions)
	for bar := 0; bar < bars; bar++ {
		base := float64(bar * beatsPerBar)
		root := progression[bar%len(progression)]

		events = append(events,
			tonal(KindBass, base, root-12, 2),
			tonal(KindChord, base, root, beatsPerBar),
			Event{Kind: KindKick, Beat: base},
			Event{Kind: KindKick, Beat: base + 2},
			Event{Kind: KindSnare, Beat: base + 1},
			Event{Kind: KindSnare, Beat: base + 3},
		)
		for eighth := 0; eighth < beatsPerBar*2; eighth++ {
			events = append(events, Event{Kind: KindHat, Beat: base + float64(eighth)*0.5})
		}
	}

	return Arrangement{
		BPM:        ClampBPM(bpm),
		Bars:       bars,
		TotalBeats: float64(bars * beatsPerBar),
		Events:     events,
	}
}

func tonal(kind EventKind, beat float64, pitch int, length float64) Event {
	return Event{Kind: kind, Beat: beat, Pitch: &pitch, LengthBeats: length}
}

// Words splits lyrics into singable words in line order. Section header
// lines such as "[Chorus]" are skipped.
func Words(lyrics string) []string {
	var words []string
	for _, line := range strings.Split(lyrics, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || (strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]")) {
			continue
		}
		words = append(words, strings.FieldsFunc(line, notWordRune)...)
	}
	return words
}

func notWordRune(r rune) bool {
	return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'')
}
