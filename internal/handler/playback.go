package handler

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/makeasinger/songsmith/internal/playback"
)

type PlaybackHandler struct {
	streamer *playback.Streamer
}

func NewPlaybackHandler(st *playback.Streamer) *PlaybackHandler {
	return &PlaybackHandler{streamer: st}
}

// Upgrade rejects plain HTTP requests on WebSocket routes
func (h *PlaybackHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Stream handles WS /ws/playback
// @Summary      Stream playback
// @Description  WebSocket. Send {"type":"play","lyrics":...,"seed":...,"bpm":...}, "stop" or "ping"; receive started, event, complete, stopped, pong and error messages
// @Tags         Playback
// @Success      101
// @Failure      426 {object} response.ErrorResponse
// @Router       /ws/playback [get]
func (h *PlaybackHandler) Stream() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		h.streamer.Serve(c)
	})
}
