package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/oklog/ulid/v2"

	"github.com/makeasinger/songsmith/internal/generator"
	"github.com/makeasinger/songsmith/internal/model"
)

// SongGenerator defines the interface for song generation
type SongGenerator interface {
	Generate(ctx context.Context, req *model.GenerateRequest) (*model.GenerateResponse, error)
	Arrange(ctx context.Context, req *model.ArrangementRequest) (*model.ArrangementResponse, error)
	ExportCSV(songs []model.Song) ([]byte, error)
}

// Options tune request defaults. Zero values fall back to the generator's.
type Options struct {
	DefaultCount int
	MaxCount     int
	RetryFactor  int
	DefaultBPM   int
}

// SongService turns requests into seeded generator calls
type SongService struct {
	opts  Options
	now   func() time.Time
	newID func() string
}

// NewSongService creates a song service
func NewSongService(opts Options) *SongService {
	if opts.DefaultCount <= 0 {
		opts.DefaultCount = model.DefaultCount
	}
	if opts.MaxCount <= 0 || opts.MaxCount > generator.MaxCount {
		opts.MaxCount = generator.MaxCount
	}
	if opts.DefaultBPM <= 0 {
		opts.DefaultBPM = generator.DefaultBPM
	}
	return &SongService{
		opts:  opts,
		now:   time.Now,
		newID: func() string { return ulid.Make().String() },
	}
}

// Generate creates a batch of songs. When no seed is supplied one is derived
// from the request fields and the current time, so repeated calls differ.
func (s *SongService) Generate(ctx context.Context, req *model.GenerateRequest) (*model.GenerateResponse, error) {
	params := generator.Params{
		Genre:    orDefault(req.Genre, model.DefaultGenre),
		Duration: orDefault(req.Duration, model.DefaultDuration),
		Prompt:   strings.TrimSpace(req.Prompt),
	}

	seed := string(req.Seed)
	if seed == "" {
		seed = s.derivedSeed(params)
	}

	count := s.opts.DefaultCount
	if req.Count != nil {
		count = *req.Count
	}
	if count > s.opts.MaxCount {
		count = s.opts.MaxCount
	}

	drafts := generator.Batch(generator.BatchRequest{
		Params:      params,
		Seed:        seed,
		Count:       count,
		RetryFactor: s.opts.RetryFactor,
	})

	songs := make([]model.Song, 0, len(drafts))
	for _, d := range drafts {
		songs = append(songs, model.Song{
			ID:       s.newID(),
			Title:    d.Title,
			Lyrics:   d.Lyrics,
			Genre:    d.Genre,
			Duration: d.Duration,
			Seed:     d.Seed,
		})
	}

	return &model.GenerateResponse{
		Songs: songs,
		Seed:  seed,
	}, nil
}

// Arrange derives the playback arrangement for a lyric sheet
func (s *SongService) Arrange(ctx context.Context, req *model.ArrangementRequest) (*model.ArrangementResponse, error) {
	bpm := req.BPM
	if bpm == 0 {
		bpm = s.opts.DefaultBPM
	}

	return &model.ArrangementResponse{
		Arrangement: generator.BuildArrangement(req.Lyrics, string(req.Seed), bpm),
		Seed:        string(req.Seed),
	}, nil
}

// ExportCSV renders a batch as CSV with a header row
func (s *SongService) ExportCSV(songs []model.Song) ([]byte, error) {
	data, err := gocsv.MarshalBytes(&songs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal csv: %w", err)
	}
	return data, nil
}

func (s *SongService) derivedSeed(p generator.Params) string {
	return strings.Join([]string{
		p.Genre,
		p.Duration,
		p.Prompt,
		strconv.FormatInt(s.now().UnixNano(), 10),
	}, "|")
}

func orDefault(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
