package api

import (
	"log"
	"net/http"

	"invitacion/internal/websocket"
)

// ServeWsHandler subscribes the page to live attendee count updates. The
// current count is sent first; the hub then replays its latest broadcast on
// registration, so the last message a page sees is always the newest count.
func (s *Server) ServeWsHandler(w http.ResponseWriter, r *http.Request) {
	count, err := s.attendance.CurrentCount()
	if err != nil {
		log.Printf("ERROR: failed to read count for subscriber: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	conn, err := websocket.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}

	client := websocket.NewClient(s.wsHub, conn)
	client.Queue(s.wsHub.Encode(count))
	s.wsHub.Register <- client

	go client.ReadPump()
	go client.WritePump()
}
