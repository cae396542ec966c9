package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/sitecraft/internal/editor"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// previewMessage is the outgoing websocket message.
type previewMessage struct {
	Type  string        `json:"type"` // "render" or "error"
	HTML  string        `json:"html,omitempty"`
	State *editor.State `json:"state,omitempty"`
	Error string        `json:"error,omitempty"`
}

// handlePreviewSocket sends the current page on connect, then the
// re-rendered page after every commit to the project.
func (s *Server) handlePreviewSocket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_, state, err := s.manager.Document(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	page, err := s.manager.Preview(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("preview websocket upgrade", zap.String("project", id), zap.Error(err))
		return
	}
	defer conn.Close()

	updates, cancel := s.manager.Subscribe(id)
	defer cancel()

	if err := s.send(conn, previewMessage{Type: "render", HTML: page, State: &state}); err != nil {
		return
	}

	// The reader only handles control frames and notices the close.
	closed := make(chan struct{})
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					s.logger.Debug("preview websocket read", zap.String("project", id), zap.Error(err))
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case u, ok := <-updates:
			if !ok {
				return
			}
			state := u.State
			if err := s.send(conn, previewMessage{Type: "render", HTML: u.HTML, State: &state}); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}

func (s *Server) send(conn *websocket.Conn, msg previewMessage) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(msg); err != nil {
		s.logger.Debug("preview websocket write", zap.Error(err))
		return err
	}
	return nil
}
