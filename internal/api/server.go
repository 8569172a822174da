package api

import (
	"context"
	"html/template"

	"invitacion/internal/attendance"
	"invitacion/internal/config"
	"invitacion/internal/identity"
	"invitacion/internal/invitation"
	"invitacion/internal/models"
	"invitacion/internal/websocket"
)

// AttendeeLister is the audit view of the remote store. It is nil in
// offline mode.
type AttendeeLister interface {
	ListAttendees(ctx context.Context, limit int, offset int) ([]models.Attendee, error)
}

type Server struct {
	config     *config.Config
	attendance *attendance.Controller
	invitation *invitation.Invitation
	identity   *identity.Provider
	wsHub      *websocket.Hub
	attendees  AttendeeLister
	templates  *template.Template
}

func NewServer(
	cfg *config.Config,
	controller *attendance.Controller,
	inv *invitation.Invitation,
	provider *identity.Provider,
	wsHub *websocket.Hub,
	attendees AttendeeLister,
	templates *template.Template,
) *Server {
	return &Server{
		config:     cfg,
		attendance: controller,
		invitation: inv,
		identity:   provider,
		wsHub:      wsHub,
		attendees:  attendees,
		templates:  templates,
	}
}
