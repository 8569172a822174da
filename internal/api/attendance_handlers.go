package api

import (
	"encoding/json"
	"log"
	"net/http"

	"invitacion/internal/identity"
)

// @Summary      Get attendance status
// @Description  Returns the confirmed-attendance count and whether the calling device has already confirmed.
// @Tags         attendance
// @Produce      json
// @Success      200  {object}  attendance.Status
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /attendance [get]
func (s *Server) GetAttendanceHandler(w http.ResponseWriter, r *http.Request) {
	id, _ := identity.FromContext(r.Context())

	status, err := s.attendance.Status(r.Context(), id)
	if err != nil {
		log.Printf("ERROR: failed to load attendance status: %v", err)
		http.Error(w, "Failed to load attendance status", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

// @Summary      Confirm attendance
// @Description  Confirms attendance for the calling device. Repeated calls are no-ops once confirmed. When the database write fails the confirmation is recorded locally and the response is flagged offline.
// @Tags         attendance
// @Produce      json
// @Success      200  {object}  attendance.Confirmation
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /attendance/confirm [post]
func (s *Server) ConfirmAttendanceHandler(w http.ResponseWriter, r *http.Request) {
	id, _ := identity.FromContext(r.Context())

	result, err := s.attendance.Confirm(r.Context(), id, identity.Metadata(r))
	if err != nil {
		log.Printf("ERROR: failed to confirm attendance for %s: %v", id, err)
		http.Error(w, "Failed to confirm attendance", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
