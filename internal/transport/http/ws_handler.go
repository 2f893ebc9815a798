package http

import (
	"log"
	"net/http"

	"classquiz-service/internal/domain"

	"github.com/gorilla/websocket"
)

var rankingUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type rankingMessage struct {
	Type    string                `json:"type"`
	Payload []domain.RankingEntry `json:"payload"`
}

// serveRankingWS streams leaderboard snapshots to a teacher: one on
// connect, then one after every successful submission batch. Browsers
// cannot set headers on websocket dials, so the bearer token rides in the
// token query parameter.
func (h *Handler) serveRankingWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized: No token provided")
		return
	}
	claims, err := h.tokens.Verify(token)
	if err != nil {
		writeMessage(w, http.StatusForbidden, "Forbidden: Invalid token")
		return
	}
	if claims.Role != domain.RoleTeacher {
		writeMessage(w, http.StatusForbidden, "Forbidden: teacher role required")
		return
	}

	conn, err := rankingUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates, cancel := h.ranking.Subscribe()
	defer cancel()

	initial, err := h.ranking.Ranking(r.Context())
	if err != nil {
		_ = conn.WriteJSON(messagePayload{Message: "Server error"})
		return
	}
	if err := conn.WriteJSON(rankingMessage{Type: "ranking", Payload: initial}); err != nil {
		return
	}

	// Reads only detect the peer going away; inbound frames are ignored.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case entries, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(rankingMessage{Type: "ranking", Payload: entries}); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}
