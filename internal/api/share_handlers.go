package api

import (
	"fmt"
	"log"
	"net/http"
)

// @Summary      Add to Google Calendar
// @Description  Redirects to the Google Calendar event template. Falls back to the .ics download when the link cannot be built.
// @Tags         share
// @Success      302
// @Success      200  {file}    file
// @Router       /calendar [get]
func (s *Server) CalendarHandler(w http.ResponseWriter, r *http.Request) {
	target, err := s.invitation.GoogleCalendarURL()
	if err != nil {
		log.Printf("WARN: calendar link unavailable, serving .ics instead: %v", err)
		s.DownloadICSHandler(w, r)
		return
	}

	http.Redirect(w, r, target, http.StatusFound)
}

// @Summary      Download calendar file
// @Description  Returns the event as an iCalendar attachment.
// @Tags         share
// @Produce      text/calendar
// @Success      200  {file}    file
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /calendar.ics [get]
func (s *Server) DownloadICSHandler(w http.ResponseWriter, r *http.Request) {
	data, err := s.invitation.ICS()
	if err != nil {
		log.Printf("ERROR: failed to build calendar file: %v", err)
		http.Error(w, "Failed to build calendar file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.invitation.Filename()))
	w.Write(data)
}

// @Summary      Open venue map
// @Tags         share
// @Success      302
// @Router       /share/maps [get]
func (s *Server) MapsHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.invitation.MapsURL(), http.StatusFound)
}

// @Summary      Share on WhatsApp
// @Tags         share
// @Success      302
// @Router       /share/whatsapp [get]
func (s *Server) WhatsAppHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.invitation.WhatsAppURL(), http.StatusFound)
}
