package playback

import (
	"sync"
	"time"

	"github.com/makeasinger/songsmith/internal/generator"
	"github.com/makeasinger/songsmith/internal/model"
)

// Emitter receives every message a session produces. It is called with the
// session lock held and must not block or call back into the session.
type Emitter func(msg interface{})

// Option configures a Session
type Option func(*Session)

// WithBeatDuration overrides the tempo-derived length of one beat.
func WithBeatDuration(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.beat = d
		}
	}
}

// Session plays one arrangement. It owns its timers and is built per play
// action; Stop tears it down and nothing is shared between sessions.
type Session struct {
	ID          string
	arrangement generator.Arrangement
	beat        time.Duration
	emit        Emitter

	mu        sync.Mutex
	state     model.PlaybackState
	timers    []*time.Timer
	remaining int
	done      chan struct{}
}

// NewSession creates a session that has not started yet
func NewSession(id string, arrangement generator.Arrangement, emit Emitter, opts ...Option) *Session {
	bpm := generator.ClampBPM(arrangement.BPM)
	s := &Session{
		ID:          id,
		arrangement: arrangement,
		beat:        time.Minute / time.Duration(bpm),
		emit:        emit,
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start schedules every event relative to now. Calling it twice is a no-op.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != "" {
		return
	}
	s.state = model.PlaybackStatePlaying

	events := s.arrangement.Events
	s.remaining = len(events)
	if s.remaining == 0 {
		s.finish(model.PlaybackStateCompleted, model.WSMessageTypeComplete)
		return
	}

	s.timers = make([]*time.Timer, 0, len(events))
	for _, e := range events {
		e := e
		delay := time.Duration(e.Beat * float64(s.beat))
		s.timers = append(s.timers, time.AfterFunc(delay, func() { s.fire(e) }))
	}
}

// Stop cancels all pending events. It reports whether the session was
// playing; stopping a finished session does nothing.
func (s *Session) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != model.PlaybackStatePlaying {
		return false
	}
	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = nil
	s.finish(model.PlaybackStateStopped, model.WSMessageTypeStopped)
	return true
}

// Done is closed once the session completes or is stopped
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// State returns the current lifecycle state
func (s *Session) State() model.PlaybackState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// BeatDuration is the wall-clock length of one beat
func (s *Session) BeatDuration() time.Duration {
	return s.beat
}

func (s *Session) fire(e generator.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != model.PlaybackStatePlaying {
		return
	}
	s.emit(model.WSEventMessage{
		Type:      model.WSMessageTypeEvent,
		SessionID: s.ID,
		Event:     e,
	})

	s.remaining--
	if s.remaining == 0 {
		s.timers = nil
		s.finish(model.PlaybackStateCompleted, model.WSMessageTypeComplete)
	}
}

// finish must be called with mu held.
func (s *Session) finish(state model.PlaybackState, msgType string) {
	s.state = state
	s.emit(model.WSStateMessage{
		Type:      msgType,
		SessionID: s.ID,
		State:     state,
	})
	close(s.done)
}
