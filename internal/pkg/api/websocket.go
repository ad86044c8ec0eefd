package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmarkin/scorestream/internal/pkg/bus"
	"github.com/dmarkin/scorestream/internal/pkg/models"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin policy is enforced by the cors middleware in front.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsCommand is the client→server control message for match rooms.
type wsCommand struct {
	Action string        `json:"action"` // "join" or "leave"
	Source models.Source `json:"source"`
	ID     string        `json:"id"`
}

// handleWebSocket upgrades the connection and streams change events. Every
// client receives the score-update topic; clients watching a detail view join
// per-match rooms explicitly.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	sub := s.events.Subscribe(bus.TopicScores)
	slog.Debug("WebSocket client connected", "remote", conn.RemoteAddr())

	go s.writePump(conn, sub)
	s.readPump(conn, sub)
}

func (s *Server) readPump(conn *websocket.Conn, sub *bus.Subscription) {
	defer func() {
		s.events.Unsubscribe(sub)
		conn.Close()
	}()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var cmd wsCommand
		if err := json.Unmarshal(raw, &cmd); err != nil {
			slog.Debug("Ignoring malformed ws command", "error", err)
			continue
		}
		if cmd.ID == "" {
			continue
		}

		topic := bus.MatchTopic(cmd.Source, cmd.ID)
		switch cmd.Action {
		case "join":
			s.events.Join(sub, topic)
		case "leave":
			s.events.Leave(sub, topic)
		}
	}
}

func (s *Server) writePump(conn *websocket.Conn, sub *bus.Subscription) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case ev, ok := <-sub.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
