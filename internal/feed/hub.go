package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/0shq/ddc/internal/constants"
	"github.com/0shq/ddc/internal/game"
	"github.com/0shq/ddc/internal/logging"
)

// MessageTypeBattle tags battle outcome messages on the feed.
const MessageTypeBattle = "BATTLE"

// Message is the JSON envelope written to feed subscribers.
type Message struct {
	Type    string             `json:"type"`
	Wallet  string             `json:"wallet"`
	Outcome game.BattleOutcome `json:"outcome"`
}

const subscriberBuffer = 32

// Hub fans battle outcomes out to websocket subscribers. Publish never
// blocks: a subscriber whose buffer is full is disconnected.
type Hub struct {
	upgrader websocket.Upgrader
	nextID   atomic.Uint64

	mu   sync.Mutex
	subs map[string]chan []byte
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		subs: map[string]chan []byte{},
	}
}

// Publish broadcasts an outcome to every subscriber.
func (h *Hub) Publish(wallet string, out game.BattleOutcome) {
	b, err := json.Marshal(Message{Type: MessageTypeBattle, Wallet: wallet, Outcome: out})
	if err != nil {
		logging.Error("failed to encode feed message", err, nil)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		select {
		case ch <- b:
		default:
			// slow consumer
			delete(h.subs, id)
			close(ch)
			logging.Warn("dropping slow feed subscriber", nil, logging.Fields{"subscriber": id})
		}
	}
}

// Subscribers returns the number of connected subscribers.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) subscribe() (string, chan []byte) {
	id := fmt.Sprintf("F%d", h.nextID.Add(1))
	ch := make(chan []byte, subscriberBuffer)
	h.mu.Lock()
	h.subs[id] = ch
	h.mu.Unlock()
	return id, ch
}

func (h *Hub) unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}

// ServeHTTP upgrades the request and streams messages until the client
// leaves or is dropped.
func (h *Hub) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	id, out := h.subscribe()
	defer h.unsubscribe(id)
	logging.Debug("feed subscriber joined", logging.Fields{"subscriber": id, constants.LogFieldAddr: r.RemoteAddr})

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	writeDone := make(chan struct{})
	go func() {
		defer close(writeDone)
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case b, ok := <-out:
				if !ok {
					_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "too slow"), time.Now().Add(time.Second))
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					return
				}
			}
		}
	}()

	// Reader loop only services control frames; client messages are ignored.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	<-writeDone
	logging.Debug("feed subscriber left", logging.Fields{"subscriber": id})
}
