package notify

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func dialHub(t *testing.T, hub *Hub, topic string) (*websocket.Conn, func()) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := hub.Subscribe(w, r, topic); err != nil {
			t.Errorf("subscribe failed: %v", err)
		}
	}))

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		srv.Close()
		t.Fatalf("dial failed: %v", err)
	}
	if resp != nil {
		resp.Body.Close()
	}
	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

func waitForSubscribers(t *testing.T, hub *Hub, topic string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.SubscriberCount(topic) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d subscribers on %s, got %d", want, topic, hub.SubscriberCount(topic))
}

func TestHubPublishReachesSubscriber(t *testing.T) {
	hub := NewHub(discardLogger())
	topic := RestaurantTopic(1)

	conn, cleanup := dialHub(t, hub, topic)
	defer cleanup()
	waitForSubscribers(t, hub, topic, 1)

	sent := OrderEvent{Type: EventOrderCreated, OrderID: 7, Number: "CMD-20260302-ABCDEF", RestaurantID: 1, Status: "en_attente"}
	hub.Publish(topic, sent)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var got OrderEvent
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got.Type != EventOrderCreated || got.OrderID != 7 || got.Number != sent.Number {
		t.Fatalf("unexpected event %+v", got)
	}
}

func TestHubTopicsAreIsolated(t *testing.T) {
	hub := NewHub(discardLogger())

	conn, cleanup := dialHub(t, hub, UserTopic(42))
	defer cleanup()
	waitForSubscribers(t, hub, UserTopic(42), 1)

	hub.Publish(RestaurantTopic(1), OrderEvent{Type: EventOrderCreated, OrderID: 1})

	conn.SetReadDeadline(time.Now().Add(150 * time.Millisecond))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatalf("subscriber must not receive foreign topic events")
	}
}

func TestHubUnregistersOnClose(t *testing.T) {
	hub := NewHub(discardLogger())
	topic := RestaurantTopic(9)

	conn, cleanup := dialHub(t, hub, topic)
	defer cleanup()
	waitForSubscribers(t, hub, topic, 1)

	conn.Close()
	waitForSubscribers(t, hub, topic, 0)
}

func TestHubPublishWithoutSubscribers(t *testing.T) {
	hub := NewHub(discardLogger())
	// Best-effort delivery: publishing into the void must not panic or block.
	hub.Publish(RestaurantTopic(1), OrderEvent{Type: EventOrderCreated})
	if hub.SubscriberCount(RestaurantTopic(1)) != 0 {
		t.Fatalf("expected no subscribers")
	}
}

func TestTopicNames(t *testing.T) {
	if RestaurantTopic(12) != "restaurant:12" {
		t.Fatalf("unexpected restaurant topic %q", RestaurantTopic(12))
	}
	if UserTopic(7) != "user:7" {
		t.Fatalf("unexpected user topic %q", UserTopic(7))
	}
}
