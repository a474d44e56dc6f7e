package generator

import (
	"strconv"
	"strings"
)

const (
	// MinCount and MaxCount bound the size of one batch.
	MinCount = 1
	MaxCount = 10

	// RetryFactor bounds duplicate rejection: a batch of n songs makes at most
	// RetryFactor*n generation attempts before duplicates are accepted.
	RetryFactor = 10

	// signaturePrefix is how many runes of lyrics take part in duplicate detection.
	signaturePrefix = 80
)

// Draft is one generated song before an identifier is attached.
type Draft struct {
	Title    string
	Lyrics   string
	Genre    string
	Duration string
	// Seed reproduces this draft on its own through Song.
	Seed string
}

// BatchRequest describes a batch of songs.
type BatchRequest struct {
	Params
	Seed  string
	Count int
	// RetryFactor overrides the package default when positive.
	RetryFactor int
}

// ClampCount keeps n inside [MinCount, MaxCount].
func ClampCount(n int) int {
	if n < MinCount {
		return MinCount
	}
	if n > MaxCount {
		return MaxCount
	}
	return n
}

// Song generates a single draft from its own seed.
func Song(seed string, p Params) Draft {
	r := NewRand(seed)
	title := Title(r, p.Prompt)
	lyrics := Lyrics(r, p)
	return Draft{
		Title:    title,
		Lyrics:   lyrics,
		Genre:    p.Genre,
		Duration: p.Duration,
		Seed:     seed,
	}
}

// SongSeed derives the seed for song index i of a batch on attempt k.
// Attempt 0 is the plain per-index seed.
func SongSeed(batchSeed string, i, attempt int) string {
	s := batchSeed + "#" + strconv.Itoa(i)
	if attempt > 0 {
		s += "~" + strconv.Itoa(attempt)
	}
	return s
}

// Batch generates req.Count songs (clamped). Each index is seeded independently
// so any song can be regenerated from its Seed. Duplicates by title and lyric
// prefix are regenerated until the retry budget runs out, after which the
// duplicate is kept.
func Batch(req BatchRequest) []Draft {
	return batch(req, Song)
}

func batch(req BatchRequest, song func(seed string, p Params) Draft) []Draft {
	count := ClampCount(req.Count)
	factor := req.RetryFactor
	if factor <= 0 {
		factor = RetryFactor
	}
	budget := factor * count

	drafts := make([]Draft, 0, count)
	seen := make(map[string]struct{}, count)
	attempts := 0
	for i := 0; i < count; i++ {
		var d Draft
		for k := 0; ; k++ {
			d = song(SongSeed(req.Seed, i, k), req.Params)
			attempts++
			if _, dup := seen[signature(d)]; !dup || attempts >= budget {
				break
			}
		}
		seen[signature(d)] = struct{}{}
		drafts = append(drafts, d)
	}
	return drafts
}

func signature(d Draft) string {
	prefix := d.Lyrics
	if runes := []rune(prefix); len(runes) > signaturePrefix {
		prefix = string(runes[:signaturePrefix])
	}
	var b strings.Builder
	b.WriteString(d.Title)
	b.WriteByte(0)
	b.WriteString(prefix)
	return b.String()
}
