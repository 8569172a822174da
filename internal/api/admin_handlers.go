package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
)

const (
	defaultPageSize = 100
	maxPageSize     = 500
)

// @Summary      List attendance records
// @Description  Audit listing of the remote Attendance Records. Only available when the database is reachable.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Page size (max 500)"
// @Param        offset  query     int  false  "Offset"
// @Success      200     {array}   models.Attendee
// @Failure      400     {string}  string "Bad Request"
// @Failure      401     {string}  string "Unauthorized"
// @Failure      503     {string}  string "Database unavailable"
// @Router       /admin/attendees [get]
func (s *Server) ListAttendeesHandler(w http.ResponseWriter, r *http.Request) {
	if s.attendees == nil {
		http.Error(w, "Database unavailable", http.StatusServiceUnavailable)
		return
	}

	limit, err := queryInt(r, "limit", defaultPageSize)
	if err != nil || limit <= 0 || limit > maxPageSize {
		http.Error(w, "Invalid 'limit' parameter", http.StatusBadRequest)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil || offset < 0 {
		http.Error(w, "Invalid 'offset' parameter", http.StatusBadRequest)
		return
	}

	attendees, err := s.attendees.ListAttendees(r.Context(), limit, offset)
	if err != nil {
		log.Printf("ERROR: failed to list attendees: %v", err)
		http.Error(w, "Failed to retrieve attendees", http.StatusInternalServerError)
		return
	}

	if admin := GetAdminFromContext(r.Context()); admin != nil {
		log.Printf("Admin %s listed %d attendees (offset %d)", admin.Username, len(attendees), offset)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(attendees)
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
