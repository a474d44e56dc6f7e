package playback

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"

	"github.com/makeasinger/songsmith/internal/model"
)

const (
	pingInterval = 30 * time.Second
	sendBuffer   = 256
)

// Error codes sent over the socket
const (
	CodeInvalidMessage = "INVALID_MESSAGE"
	CodeValidation     = "VALIDATION_ERROR"
	CodeArrangement    = "ARRANGEMENT_FAILED"
)

// Conn is the part of a WebSocket connection a Streamer uses
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
}

// Arranger derives the arrangement a session plays
type Arranger interface {
	Arrange(ctx context.Context, req *model.ArrangementRequest) (*model.ArrangementResponse, error)
}

// Streamer serves playback over WebSocket connections. Each connection plays
// at most one session at a time; a new play request replaces the old one.
type Streamer struct {
	hub      *Hub
	arranger Arranger
	validate *validator.Validate
	opts     []Option
}

// NewStreamer creates a streamer. opts apply to every session it starts.
func NewStreamer(hub *Hub, arranger Arranger, v *validator.Validate, opts ...Option) *Streamer {
	return &Streamer{
		hub:      hub,
		arranger: arranger,
		validate: v,
		opts:     opts,
	}
}

// Serve runs the read loop for one connection until it closes
func (st *Streamer) Serve(c Conn) {
	send := make(chan []byte, sendBuffer)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()

		for {
			select {
			case message, ok := <-send:
				if !ok {
					_ = c.WriteMessage(websocket.CloseMessage, []byte{})
					return
				}
				if err := c.WriteMessage(websocket.TextMessage, message); err != nil {
					return
				}

			case <-ticker.C:
				if err := c.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	emit := func(msg interface{}) {
		data, err := json.Marshal(msg)
		if err != nil {
			log.Printf("Failed to marshal playback message: %v", err)
			return
		}
		select {
		case send <- data:
		default:
			log.Printf("Playback client too slow, dropping message")
		}
	}

	var current *Session
	defer func() {
		if current != nil {
			current.Stop()
		}
		close(send)
		<-writerDone
	}()

	for {
		_, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}

		var msg model.WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			emit(errorMessage(CodeInvalidMessage, "Message is not valid JSON"))
			continue
		}

		switch msg.Type {
		case model.WSMessageTypePing:
			emit(model.WSMessage{Type: model.WSMessageTypePong})

		case model.WSMessageTypeStop:
			if current != nil {
				current.Stop()
				current = nil
			}

		case model.WSMessageTypePlay:
			if current != nil {
				current.Stop()
				current = nil
			}
			if session, ok := st.play(message, emit); ok {
				current = session
			}

		default:
			emit(errorMessage(CodeInvalidMessage, "Unknown message type: "+msg.Type))
		}
	}
}

func (st *Streamer) play(message []byte, emit Emitter) (*Session, bool) {
	var req model.WSPlayMessage
	if err := json.Unmarshal(message, &req); err != nil {
		emit(errorMessage(CodeInvalidMessage, "Invalid play message"))
		return nil, false
	}
	if err := st.validate.Struct(&req); err != nil {
		emit(errorMessage(CodeValidation, err.Error()))
		return nil, false
	}

	arr, err := st.arranger.Arrange(context.Background(), &model.ArrangementRequest{
		Lyrics: req.Lyrics,
		Seed:   req.Seed,
		BPM:    req.BPM,
	})
	if err != nil {
		emit(errorMessage(CodeArrangement, err.Error()))
		return nil, false
	}

	session := NewSession(uuid.NewString(), arr.Arrangement, emit, st.opts...)
	st.hub.Register(session)
	go func() {
		<-session.Done()
		st.hub.Unregister(session)
	}()

	emit(model.WSStartedMessage{
		Type:       model.WSMessageTypeStarted,
		SessionID:  session.ID,
		BPM:        arr.BPM,
		TotalBeats: arr.TotalBeats,
		Events:     len(arr.Events),
	})
	session.Start()
	return session, true
}

func errorMessage(code, message string) model.WSErrorMessage {
	return model.WSErrorMessage{
		Type:  model.WSMessageTypeError,
		Error: model.WSError{Code: code, Message: message},
	}
}
