package http

import (
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestWebSocketCompletionFlow(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws?userId=u1&lang=en"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	_, welcome := readNext(conn, t, "welcome")
	if welcome["userId"] != "u1" {
		t.Fatalf("expected welcome for u1, got %v", welcome)
	}
	_, initial := readNext(conn, t, "stats")
	if initial["score"] != "0" {
		t.Fatalf("expected empty progress, got %v", initial)
	}

	complete := map[string]any{
		"type":    "complete",
		"payload": map[string]any{"quizId": "quizA", "score": 4, "totalQuestions": 5},
	}
	if err := conn.WriteJSON(complete); err != nil {
		t.Fatalf("write complete: %v", err)
	}
	_, updated := readNext(conn, t, "stats")
	if updated["score"] != "4" || updated["completed"] != "1/2" {
		t.Fatalf("unexpected stats update %v", updated)
	}

	if err := conn.WriteJSON(map[string]any{"type": "share"}); err != nil {
		t.Fatalf("write share: %v", err)
	}
	_, shared := readNext(conn, t, "share")
	if shared["url"] == "" {
		t.Fatalf("expected share url, got %v", shared)
	}

	if err := conn.WriteJSON(map[string]any{"type": "dance"}); err != nil {
		t.Fatalf("write unknown: %v", err)
	}
	readNext(conn, t, "error")
}

func TestWebSocketAssignsUserID(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+server.URL[len("http"):]+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	_, welcome := readNext(conn, t, "welcome")
	id, _ := welcome["userId"].(string)
	if len(id) != 36 {
		t.Fatalf("expected generated uuid, got %q", id)
	}
}

func TestWebSocketReceivesOtherTabsCompletions(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws?userId=u1"
	first, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial first: %v", err)
	}
	defer first.Close()
	readNext(first, t, "welcome")
	readNext(first, t, "stats")

	if status, body := postJSON(t, server.URL+"/v1/users/u1/completions", `{"quizId":"quizB","score":7,"totalQuestions":7}`); status != 200 {
		t.Fatalf("complete over http: %d %s", status, body)
	}

	_, update := readNext(first, t, "stats")
	if update["score"] != "7" {
		t.Fatalf("expected pushed update, got %v", update)
	}
}

func readNext(conn *websocket.Conn, t *testing.T, expect string) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s", expect, msg.Type)
	}
	return msg.Type, msg.Payload
}
