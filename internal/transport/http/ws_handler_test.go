package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"ckad-trainer/internal/domain"
	"ckad-trainer/internal/infra/memory"
	"github.com/gorilla/websocket"
)

func TestWebSocketTrainerFlow(t *testing.T) {
	clock := &testClock{now: time.Unix(0, 0)}
	server := newTestServer(t, clock)
	defer server.Close()

	conn := dial(t, server, "")
	defer conn.Close()

	msgType, payload := readNext(t, conn, "joined")
	if msgType != "joined" || payload["index"].(float64) != 0 || payload["total"].(float64) != 2 {
		t.Fatalf("unexpected joined payload %v", payload)
	}
	if q := payload["question"].(map[string]any); q["answer"] != "" {
		t.Fatalf("expected answer withheld, got %v", q["answer"])
	}

	send(t, conn, "hint")
	_, payload = readNext(t, conn, "snapshot")
	if payload["hintsVisible"] != true || payload["hint"] != "first" {
		t.Fatalf("expected first hint, got %v", payload)
	}

	send(t, conn, "next")
	_, payload = readNext(t, conn, "snapshot")
	if payload["index"].(float64) != 0 {
		t.Fatalf("expected next ignored while time remains, got %v", payload)
	}

	clock.Advance(time.Minute)
	send(t, conn, "next")
	_, payload = readNext(t, conn, "snapshot")
	if payload["index"].(float64) != 1 || payload["hintsVisible"] != false {
		t.Fatalf("expected second question with hints reset, got %v", payload)
	}

	send(t, conn, "dance")
	readNext(t, conn, "error")

	send(t, conn, "quit")
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Fatalf("expected normal close after quit, got %v", err)
	}
}

func TestWebSocketUnknownBank(t *testing.T) {
	server := newTestServer(t, &testClock{now: time.Unix(0, 0)})
	defer server.Close()

	conn := dial(t, server, "?bank=missing")
	defer conn.Close()

	_, payload := readNext(t, conn, "error")
	if payload["message"] != domain.ErrBankNotFound.Error() {
		t.Fatalf("expected bank not found, got %v", payload)
	}
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestServer(t *testing.T, clock *testClock) *httptest.Server {
	t.Helper()
	repo := memory.NewQuestionRepository(memory.NewStaticLoader(sampleBanks()), time.Minute)
	// A long tick keeps pushes driven by the actions under test.
	wsHandler := NewWSHandler(repo, "ckad", WithClock(clock.Now), WithTickInterval(time.Hour))

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	return httptest.NewServer(mux)
}

func dial(t *testing.T, server *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	u := "ws" + server.URL[len("http"):] + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func send(t *testing.T, conn *websocket.Conn, action string) {
	t.Helper()
	if err := conn.WriteJSON(map[string]any{"type": action}); err != nil {
		t.Fatalf("write %s: %v", action, err)
	}
}

func readNext(t *testing.T, conn *websocket.Conn, expect string) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s", expect, msg.Type)
	}
	var payload map[string]any
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	return msg.Type, payload
}

func sampleBanks() map[string][]domain.Question {
	return map[string][]domain.Question{
		"ckad": {
			{ID: 1, Prompt: "Create a pod", Hints: []string{"first", "second"}, Answer: "kubectl run", TimeLimit: time.Minute},
			{ID: 2, Prompt: "Create a deployment", Hints: []string{"only"}, Answer: "kubectl create deployment", TimeLimit: 30 * time.Second},
		},
	}
}
