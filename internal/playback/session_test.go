package playback

import (
	"sync"
	"testing"
	"time"

	"github.com/makeasinger/songsmith/internal/generator"
	"github.com/makeasinger/songsmith/internal/model"
)

type recorder struct {
	mu   sync.Mutex
	msgs []interface{}
}

func (r *recorder) emit(msg interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recorder) snapshot() []interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]interface{}(nil), r.msgs...)
}

// stoppedAfterDownbeat checks that a stopped session emitted nothing but
// beat-0 events followed by one stopped message. Beat-0 events have no delay
// and may fire before Stop runs.
func stoppedAfterDownbeat(t *testing.T, msgs []interface{}) {
	t.Helper()
	if len(msgs) == 0 {
		t.Fatal("expected a stopped message")
	}
	for _, m := range msgs[:len(msgs)-1] {
		ev, ok := m.(model.WSEventMessage)
		if !ok || ev.Event.Beat != 0 {
			t.Fatalf("expected only beat-0 events before stopping, got %+v", m)
		}
	}
	if m, ok := msgs[len(msgs)-1].(model.WSStateMessage); !ok || m.State != model.PlaybackStateStopped {
		t.Errorf("expected stopped message last, got %+v", msgs[len(msgs)-1])
	}
}

func waitDone(t *testing.T, s *Session) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("session did not finish in time")
	}
}

func TestSessionPlaysEveryEvent(t *testing.T) {
	arr := generator.BuildArrangement("hello world", "play", 120)
	rec := &recorder{}
	s := NewSession("s1", arr, rec.emit, WithBeatDuration(time.Millisecond))

	s.Start()
	waitDone(t, s)

	msgs := rec.snapshot()
	if len(msgs) != len(arr.Events)+1 {
		t.Fatalf("expected %d messages, got %d", len(arr.Events)+1, len(msgs))
	}
	for _, m := range msgs[:len(msgs)-1] {
		ev, ok := m.(model.WSEventMessage)
		if !ok {
			t.Fatalf("expected event message, got %T", m)
		}
		if ev.SessionID != "s1" {
			t.Errorf("expected session id s1, got %q", ev.SessionID)
		}
	}
	last, ok := msgs[len(msgs)-1].(model.WSStateMessage)
	if !ok || last.Type != model.WSMessageTypeComplete || last.State != model.PlaybackStateCompleted {
		t.Errorf("expected completion message last, got %+v", msgs[len(msgs)-1])
	}
	if s.State() != model.PlaybackStateCompleted {
		t.Errorf("expected completed state, got %q", s.State())
	}
	if s.Stop() {
		t.Error("expected Stop on a completed session to report false")
	}
}

func TestSessionStopCancelsPendingEvents(t *testing.T) {
	arr := generator.BuildArrangement("hello world", "stop", 120)
	rec := &recorder{}
	s := NewSession("s2", arr, rec.emit, WithBeatDuration(time.Hour))

	s.Start()
	if !s.Stop() {
		t.Fatal("expected Stop to report a playing session")
	}
	waitDone(t, s)

	stoppedAfterDownbeat(t, rec.snapshot())
	emitted := len(rec.snapshot())
	if s.Stop() {
		t.Error("expected second Stop to be a no-op")
	}

	s.Start()
	if s.State() != model.PlaybackStateStopped {
		t.Error("expected Start after Stop to be ignored")
	}
	if len(rec.snapshot()) != emitted {
		t.Error("expected nothing emitted after Stop")
	}
}

func TestSessionEmptyArrangementCompletesImmediately(t *testing.T) {
	rec := &recorder{}
	s := NewSession("s3", generator.Arrangement{BPM: 100}, rec.emit)

	s.Start()
	waitDone(t, s)
	if s.State() != model.PlaybackStateCompleted {
		t.Errorf("expected completed state, got %q", s.State())
	}
}

func TestSessionBeatDurationFollowsTempo(t *testing.T) {
	s := NewSession("s4", generator.Arrangement{BPM: 120}, func(interface{}) {})
	if s.BeatDuration() != 500*time.Millisecond {
		t.Errorf("expected 500ms per beat at 120 bpm, got %v", s.BeatDuration())
	}
	s = NewSession("s5", generator.Arrangement{}, func(interface{}) {})
	if s.BeatDuration() != time.Minute/generator.DefaultBPM {
		t.Errorf("expected default tempo, got %v", s.BeatDuration())
	}
}

func TestSessionsDoNotShareState(t *testing.T) {
	arr := generator.BuildArrangement("one two", "independent", 120)
	recA, recB := &recorder{}, &recorder{}
	a := NewSession("a", arr, recA.emit, WithBeatDuration(time.Hour))
	b := NewSession("b", arr, recB.emit, WithBeatDuration(time.Millisecond))

	a.Start()
	b.Start()
	a.Stop()
	waitDone(t, b)

	if b.State() != model.PlaybackStateCompleted {
		t.Errorf("stopping one session affected another: %q", b.State())
	}
	stoppedAfterDownbeat(t, recA.snapshot())
}
