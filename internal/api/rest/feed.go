package rest

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/louisbranch/scorekeep/internal/session/engine"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// subscriber pairs a connection with a write lock. The websocket protocol
// allows a single concurrent writer per connection.
type subscriber struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *subscriber) write(payload viewJSON) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(payload)
}

// feed fans refreshed session views out to websocket subscribers. A zero
// view (empty session_id) tells clients the session ended or was cancelled.
type feed struct {
	mu   sync.Mutex
	subs map[*websocket.Conn]*subscriber
}

func newFeed() *feed {
	return &feed{subs: make(map[*websocket.Conn]*subscriber)}
}

func (f *feed) add(conn *websocket.Conn) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs[conn] = &subscriber{conn: conn}
}

func (f *feed) remove(conn *websocket.Conn) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.subs[conn]; ok {
		delete(f.subs, conn)
		_ = conn.Close()
	}
}

func (f *feed) broadcast(view engine.View) {
	payload := toViewJSON(view)

	f.mu.Lock()
	subs := make([]*subscriber, 0, len(f.subs))
	for _, sub := range f.subs {
		subs = append(subs, sub)
	}
	f.mu.Unlock()

	for _, sub := range subs {
		if err := sub.write(payload); err != nil {
			log.Printf("rest: feed write: %v", err)
			f.remove(sub.conn)
		}
	}
}

func (s *Server) handleSessionFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("rest: feed upgrade: %v", err)
		return
	}
	s.feed.add(conn)

	// Drain control frames until the peer goes away.
	go func() {
		defer s.feed.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
