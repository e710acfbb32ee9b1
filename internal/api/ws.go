package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is already wide open via CORS; the websocket follows suit.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	wsPollInterval = 500 * time.Millisecond
	wsWriteWait    = 10 * time.Second
)

// handleTranscriptWS streams the session transcript over a websocket:
// all turns so far on connect, then every new turn as it is recorded,
// until the client disconnects.
func (s *Server) handleTranscriptWS(c *gin.Context) {
	entry, ok := s.getSession(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.deps.Logger.WithFields(logrus.Fields{
			"session": entry.id,
			"error":   err,
		}).Warn("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	// Reader goroutine: we never expect client messages, but reading is
	// required to notice the close frame.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	sent := 0
	ticker := time.NewTicker(wsPollInterval)
	defer ticker.Stop()

	for {
		entry.mu.Lock()
		turns := entry.session.Transcript()
		entry.mu.Unlock()

		for ; sent < len(turns); sent++ {
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(turns[sent]); err != nil {
				return
			}
		}

		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
