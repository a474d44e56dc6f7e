package playback

import (
	"log"
	"sync"
)

// Hub tracks the playback sessions that are currently running
type Hub struct {
	// Sessions keyed by ID
	sessions map[string]*Session

	// Register requests
	register chan *Session

	// Unregister requests
	unregister chan *Session

	quit chan struct{}
	once sync.Once

	mu sync.RWMutex
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string]*Session),
		register:   make(chan *Session),
		unregister: make(chan *Session),
		quit:       make(chan struct{}),
	}
}

// Run starts the hub's main loop. It returns after Close.
func (h *Hub) Run() {
	for {
		select {
		case session := <-h.register:
			h.mu.Lock()
			h.sessions[session.ID] = session
			h.mu.Unlock()
			log.Printf("Playback session %s registered", session.ID)

		case session := <-h.unregister:
			h.mu.Lock()
			if current, ok := h.sessions[session.ID]; ok && current == session {
				delete(h.sessions, session.ID)
			}
			h.mu.Unlock()
			session.Stop()
			log.Printf("Playback session %s unregistered", session.ID)

		case <-h.quit:
			h.StopAll()
			return
		}
	}
}

// Register adds a session. It is a no-op once the hub is closed.
func (h *Hub) Register(session *Session) {
	select {
	case h.register <- session:
	case <-h.quit:
	}
}

// Unregister removes a session and stops it
func (h *Hub) Unregister(session *Session) {
	select {
	case h.unregister <- session:
	case <-h.quit:
		session.Stop()
	}
}

// Get returns a registered session
func (h *Hub) Get(id string) (*Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.sessions[id]
	return s, ok
}

// Active returns the number of registered sessions
func (h *Hub) Active() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// StopAll stops and forgets every session
func (h *Hub) StopAll() {
	h.mu.Lock()
	sessions := h.sessions
	h.sessions = make(map[string]*Session)
	h.mu.Unlock()

	for _, s := range sessions {
		s.Stop()
	}
}

// Close stops the main loop and every session
func (h *Hub) Close() {
	h.once.Do(func() { close(h.quit) })
}
