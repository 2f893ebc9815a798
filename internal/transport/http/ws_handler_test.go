package http

import (
	"net/http"
	"testing"
	"time"

	"classquiz-service/internal/domain"

	"github.com/gorilla/websocket"
)

func TestRankingStreamPushesAfterSubmission(t *testing.T) {
	server := newTestServer(t)
	teacher := registerAndLogin(t, server, "Alice", "alice@example.com", domain.RoleTeacher)
	student := registerAndLogin(t, server, "Sam", "sam@example.com", domain.RoleStudent)
	questionID := createQuestion(t, server, teacher, "Math", 1)

	u := "ws" + server.URL[len("http"):] + "/ws/ranking?token=" + teacher
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Initial snapshot arrives before any submissions.
	initial := readRanking(t, conn)
	if len(initial) != 0 {
		t.Fatalf("expected empty initial leaderboard, got %+v", initial)
	}

	resp := doJSON(t, http.MethodPost, server.URL+"/api/submit-answers", student, map[string]interface{}{
		"quizTitle": "Math",
		"answers":   map[string]int{questionID: 1},
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("submit: status %d", resp.StatusCode)
	}

	updated := readRanking(t, conn)
	if len(updated) != 1 || updated[0].CorrectAnswersCount != 1 {
		t.Fatalf("expected updated leaderboard, got %+v", updated)
	}
}

func TestRankingStreamRejectsStudents(t *testing.T) {
	server := newTestServer(t)
	student := registerAndLogin(t, server, "Sam", "sam@example.com", domain.RoleStudent)

	u := "ws" + server.URL[len("http"):] + "/ws/ranking?token=" + student
	if _, resp, err := websocket.DefaultDialer.Dial(u, nil); err == nil {
		t.Fatalf("expected dial to fail for student")
	} else if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %+v", resp)
	}
}

func readRanking(t *testing.T, conn *websocket.Conn) []domain.RankingEntry {
	t.Helper()
	var msg rankingMessage
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if msg.Type != "ranking" {
		t.Fatalf("expected ranking message, got %s", msg.Type)
	}
	return msg.Payload
}
