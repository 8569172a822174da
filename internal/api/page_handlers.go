package api

import (
	"bytes"
	"log"
	"net/http"

	"invitacion/internal/attendance"
	"invitacion/internal/identity"
)

type pageData struct {
	Title       string
	Location    string
	MusicURL    string
	Mode        attendance.Mode
	CountLabel  string
	ButtonLabel string
	Confirmed   bool
}

// IndexHandler renders the invitation with the count and button state already
// resolved, so the page is correct before any script runs.
func (s *Server) IndexHandler(w http.ResponseWriter, r *http.Request) {
	id, _ := identity.FromContext(r.Context())

	status, err := s.attendance.Status(r.Context(), id)
	if err != nil {
		log.Printf("ERROR: failed to load attendance status: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := pageData{
		Title:       s.invitation.Title(),
		Location:    s.invitation.Location(),
		MusicURL:    s.invitation.MusicURL(),
		Mode:        status.Mode,
		CountLabel:  status.CountLabel,
		ButtonLabel: status.ButtonLabel,
		Confirmed:   status.Confirmed,
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "index.html", data); err != nil {
		log.Printf("ERROR: failed to render page: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
