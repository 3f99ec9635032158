package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/clinassist/clinrag/internal/engine"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// chatRequest is the incoming WebSocket message format.
type chatRequest struct {
	Question string `json:"question"`
}

// chatMessage is the outgoing WebSocket message format.
type chatMessage struct {
	Type      string            `json:"type"` // "answer" or "error"
	SessionID string            `json:"session_id"`
	Answer    string            `json:"answer,omitempty"`
	Evidence  []evidencePayload `json:"evidence,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// handleChat runs a multi-turn conversation over one WebSocket connection.
// The rolling history is connection-local, so the server stays stateless
// across requests and connections never share turns.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	sessionID := uuid.NewString()
	var history []engine.Turn

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("server: websocket read: %v", err)
			}
			return
		}

		var req chatRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendChat(conn, chatMessage{Type: "error", SessionID: sessionID, Error: "Mensaje inválido."})
			continue
		}

		res, err := s.engine.Ask(r.Context(), req.Question, history)
		if err != nil {
			log.Printf("server: chat %s: %v", sessionID, err)
			s.sendChat(conn, chatMessage{Type: "error", SessionID: sessionID, Error: genericFailure})
			continue
		}

		history = append(history,
			engine.Turn{Role: "user", Content: req.Question},
			engine.Turn{Role: "assistant", Content: res.Answer},
		)
		history = engine.WindowTurns(history, 6)

		out := chatMessage{Type: "answer", SessionID: sessionID, Answer: res.Answer}
		for _, ev := range res.Evidence {
			out.Evidence = append(out.Evidence, evidencePayload{
				Text:  ev.Text,
				Score: ev.Score,
				Title: ev.Title,
				Page:  ev.Page,
			})
		}
		s.sendChat(conn, out)
	}
}

func (s *Server) sendChat(conn *websocket.Conn, msg chatMessage) {
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("server: websocket write: %v", err)
	}
}
