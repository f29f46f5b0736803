package wsfeed

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// Feed is the public websocket endpoint. It implements the service's
// FeedPublisher, so every committed event fans out to subscribers.
type Feed struct {
	hub      *hub
	upgrader websocket.Upgrader
}

func New() *Feed {
	return &Feed{
		hub:      newHub(),
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
	}
}

// Publish fans one serialized event out to every subscriber.
func (f *Feed) Publish(data []byte) {
	f.hub.Broadcast(data)
}

// ServeHTTP upgrades the connection and streams events until the
// client goes away.
func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	sub := f.hub.Subscribe(32)
	defer f.hub.Unsubscribe(sub)

	for data := range sub.ch {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

// Serve runs the feed on its own listener.
func (f *Feed) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/events", f)
	log.Printf("[wsfeed] listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}
