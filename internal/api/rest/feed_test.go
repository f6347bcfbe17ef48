package rest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/louisbranch/scorekeep/internal/session/engine"
)

func TestBroadcastSerializesWritesPerConnection(t *testing.T) {
	f := newFeed()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := wsUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		f.add(conn)
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	const writers, perWriter = 8, 25
	if err := client.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("set read deadline: %v", err)
	}
	received := make(chan error, 1)
	go func() {
		for i := 0; i < writers*perWriter; i++ {
			if _, _, err := client.ReadMessage(); err != nil {
				received <- err
				return
			}
		}
		received <- nil
	}()

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				f.broadcast(engine.View{SessionID: "session-1"})
			}
		}()
	}
	wg.Wait()

	if err := <-received; err != nil {
		t.Fatalf("read broadcast messages: %v", err)
	}
}
