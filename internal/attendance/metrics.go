package attendance

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	confirmationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invitacion_confirmations_total",
		Help: "Confirm-attendance activations by mode and outcome.",
	}, []string{"mode", "outcome"})

	attendeesGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "invitacion_attendees",
		Help: "Latest attendee count reported by the remote store.",
	})
)
