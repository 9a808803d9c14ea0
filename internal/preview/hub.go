package preview

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsWriteWait = 10 * time.Second
	wsPongWait  = 60 * time.Second
	wsPingEvery = (wsPongWait * 9) / 10
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// SlideEvent tells a preview client which unit to show.
type SlideEvent struct {
	Type       string `json:"type"`
	DocID      string `json:"docId"`
	SlideIndex int    `json:"index"`
	SlideLevel int    `json:"slideLevel"`
}

type subscriber struct {
	send chan SlideEvent
}

// Hub fans slide events out to websocket subscribers, grouped by document.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[*subscriber]struct{}
	log  *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		subs: make(map[string]map[*subscriber]struct{}),
		log:  log,
	}
}

// Broadcast pushes an event to every subscriber of the document. Slow
// subscribers drop events rather than stall the caller; only the latest
// slide position matters.
func (h *Hub) Broadcast(ev SlideEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[ev.DocID] {
		select {
		case sub.send <- ev:
		default:
		}
	}
}

// Subscribers returns the subscriber count for a document.
func (h *Hub) Subscribers(docID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[docID])
}

func (h *Hub) add(docID string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[docID] == nil {
		h.subs[docID] = make(map[*subscriber]struct{})
	}
	h.subs[docID][sub] = struct{}{}
}

func (h *Hub) remove(docID string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[docID], sub)
	if len(h.subs[docID]) == 0 {
		delete(h.subs, docID)
	}
}

// ServeWS upgrades the request and streams slide events for docID until
// the peer disconnects.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, docID string) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "doc_id", docID, "error", err)
		return
	}
	defer conn.Close()

	sub := &subscriber{send: make(chan SlideEvent, 8)}
	h.add(docID, sub)
	defer h.remove(docID, sub)

	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsPongWait))
		return nil
	})

	done := make(chan struct{})

	// Reader: the client sends nothing meaningful; the loop exists to
	// service pongs and notice disconnects.
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case ev := <-sub.send:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
