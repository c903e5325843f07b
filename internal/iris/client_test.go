package iris

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	apperrors "github.com/kumargauravtiwari/youtube-summarizer/pkg/errors"
)

func TestClientSendMessage(t *testing.T) {
	var got ReplyRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/reply" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", server.Client(), zap.NewNop())
	if err := client.SendMessage(context.Background(), "room-1", "hello"); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}

	if got.Type != ReplyTypeText || got.Room != "room-1" || got.Data != "hello" {
		t.Fatalf("unexpected reply body: %+v", got)
	}
}

func TestClientSendImage(t *testing.T) {
	var got ReplyRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, zap.NewNop())
	if err := client.SendImage(context.Background(), "room-1", "aGVsbG8="); err != nil {
		t.Fatalf("SendImage() error = %v", err)
	}
	if got.Type != ReplyTypeImage || got.Data != "aGVsbG8=" {
		t.Fatalf("unexpected reply body: %+v", got)
	}
}

func TestClientErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "room not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), zap.NewNop())
	err := client.SendMessage(context.Background(), "missing", "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if status := apperrors.StatusCode(err); status != http.StatusNotFound {
		t.Fatalf("StatusCode() = %d, want 404", status)
	}
}

func TestClientGetConfigAndPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/config" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"port":3000,"pollingSpeed":100,"messageRate":50,"webserverEndpoint":"http://bot"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), zap.NewNop())
	cfg, err := client.GetConfig(context.Background())
	if err != nil {
		t.Fatalf("GetConfig() error = %v", err)
	}
	if cfg.Port != 3000 || cfg.WebserverEndpoint != "http://bot" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if !client.Ping(context.Background()) {
		t.Fatal("Ping() = false, want true")
	}
}

func TestClientPingUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", &http.Client{Timeout: time.Second}, zap.NewNop())
	if client.Ping(context.Background()) {
		t.Fatal("Ping() = true for unreachable host")
	}
}

func TestMessageHelpers(t *testing.T) {
	sender := "  Alice "
	msg := &Message{Msg: "!notes", Room: "Study", Sender: &sender}
	if msg.SenderName() != "Alice" {
		t.Fatalf("SenderName() = %q", msg.SenderName())
	}
	if msg.ReplyTarget() != "Study" {
		t.Fatalf("ReplyTarget() = %q", msg.ReplyTarget())
	}

	msg.JSON = &MessageJSON{ChatID: "18291"}
	if msg.ReplyTarget() != "18291" {
		t.Fatalf("ReplyTarget() with chat id = %q", msg.ReplyTarget())
	}

	var nilMsg *Message
	if nilMsg.SenderName() != "" || nilMsg.ReplyTarget() != "" {
		t.Fatal("nil message helpers should return empty strings")
	}
}

func TestWebSocketDeliversMessages(t *testing.T) {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`not json`))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"msg":"!notes https://youtu.be/dQw4w9WgXcQ","room":"Study"}`))
		// keep the connection open until the client goes away
		_, _, _ = conn.ReadMessage()
	}))
	defer server.Close()

	received := make(chan *Message, 1)
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	ws := NewWebSocket(wsURL, func(m *Message) { received <- m }, zap.NewNop(), WithReconnect(0, 10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ws.Run(ctx) }()

	select {
	case m := <-received:
		if m.Room != "Study" || !strings.HasPrefix(m.Msg, "!notes") {
			t.Fatalf("unexpected message: %+v", m)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
	}

	if !ws.IsConnected() {
		t.Fatalf("state = %s, want CONNECTED", ws.State())
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWebSocketGivesUpAfterMaxAttempts(t *testing.T) {
	var states []WebSocketState
	ws := NewWebSocket("ws://127.0.0.1:1/ws", nil, zap.NewNop(),
		WithReconnect(2, time.Millisecond),
		WithStateCallback(func(s WebSocketState) { states = append(states, s) }),
	)

	err := ws.Run(context.Background())
	if err != ErrReconnectExhausted {
		t.Fatalf("Run() error = %v, want ErrReconnectExhausted", err)
	}
	if ws.State() != WSStateFailed {
		t.Fatalf("state = %s, want FAILED", ws.State())
	}
	if len(states) == 0 || states[len(states)-1] != WSStateFailed {
		t.Fatalf("unexpected state transitions: %v", states)
	}
}
