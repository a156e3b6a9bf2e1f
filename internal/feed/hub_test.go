package feed

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/0shq/ddc/internal/game"
)

func sampleOutcome() game.BattleOutcome {
	return game.BattleOutcome{
		Winner:           &game.Combatant{ID: "0xa", Name: "Doge"},
		Loser:            &game.Combatant{ID: "0xb", Name: "Shiba"},
		Timestamp:        1700000000000,
		ExperienceGained: 4,
		DamageDealt:      9,
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_BroadcastsOutcome(t *testing.T) {
	h := NewHub()
	srv := httptest.NewServer(h)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	waitFor(t, func() bool { return h.Subscribers() == 1 })

	h.Publish("0xabc", sampleOutcome())

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Type != MessageTypeBattle || msg.Wallet != "0xabc" {
		t.Fatalf("unexpected envelope: %+v", msg)
	}
	if msg.Outcome.Winner.ID != "0xa" || msg.Outcome.DamageDealt != 9 || msg.Outcome.Timestamp != 1700000000000 {
		t.Fatalf("unexpected outcome: %+v", msg.Outcome)
	}

	conn.Close()
	waitFor(t, func() bool { return h.Subscribers() == 0 })
}

func TestHub_DropsSlowSubscriber(t *testing.T) {
	h := NewHub()
	_, ch := h.subscribe()
	for i := 0; i <= subscriberBuffer; i++ {
		h.Publish("0xabc", sampleOutcome())
	}
	if h.Subscribers() != 0 {
		t.Fatalf("expected slow subscriber to be dropped")
	}
	n := 0
	for range ch {
		n++
	}
	if n != subscriberBuffer {
		t.Fatalf("expected %d buffered messages before close, got %d", subscriberBuffer, n)
	}
}

func TestHub_PublishWithoutSubscribers(t *testing.T) {
	h := NewHub()
	h.Publish("0xabc", sampleOutcome())
	h.Close()
	if h.Subscribers() != 0 {
		t.Fatalf("expected no subscribers")
	}
}
