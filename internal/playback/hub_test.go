package playback

import (
	"testing"
	"time"

	"github.com/makeasinger/songsmith/internal/generator"
	"github.com/makeasinger/songsmith/internal/model"
)

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func idleSession(id string) *Session {
	arr := generator.BuildArrangement("la la", id, 100)
	return NewSession(id, arr, func(interface{}) {}, WithBeatDuration(time.Hour))
}

func TestHubRegisterAndUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	s := idleSession("one")
	s.Start()
	hub.Register(s)
	eventually(t, func() bool { return hub.Active() == 1 })

	if got, ok := hub.Get("one"); !ok || got != s {
		t.Fatal("expected registered session to be found")
	}

	hub.Unregister(s)
	eventually(t, func() bool { return hub.Active() == 0 })
	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("expected unregistered session to be stopped")
	}
	if s.State() != model.PlaybackStateStopped {
		t.Errorf("expected stopped state, got %q", s.State())
	}
}

func TestHubUnregisterIgnoresReplacedSession(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	old := idleSession("same")
	replacement := idleSession("same")
	hub.Register(old)
	hub.Register(replacement)
	eventually(t, func() bool {
		got, ok := hub.Get("same")
		return ok && got == replacement
	})

	hub.Unregister(old)
	// Register after Unregister is processed in order by the loop.
	marker := idleSession("marker")
	hub.Register(marker)
	eventually(t, func() bool { return hub.Active() == 2 })

	if got, _ := hub.Get("same"); got != replacement {
		t.Error("expected replacement session to stay registered")
	}
}

func TestHubCloseStopsSessions(t *testing.T) {
	hub := NewHub()
	finished := make(chan struct{})
	go func() {
		hub.Run()
		close(finished)
	}()

	a, b := idleSession("a"), idleSession("b")
	a.Start()
	b.Start()
	hub.Register(a)
	hub.Register(b)
	eventually(t, func() bool { return hub.Active() == 2 })

	hub.Close()
	hub.Close()

	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("hub loop did not return after Close")
	}
	if hub.Active() != 0 {
		t.Errorf("expected no sessions after Close, got %d", hub.Active())
	}
	for _, s := range []*Session{a, b} {
		if s.State() != model.PlaybackStateStopped {
			t.Errorf("session %s: expected stopped, got %q", s.ID, s.State())
		}
	}

	// Calls after Close must not block.
	late := idleSession("late")
	late.Start()
	hub.Register(late)
	hub.Unregister(late)
	if late.State() != model.PlaybackStateStopped {
		t.Error("expected Unregister after Close to still stop the session")
	}
}
