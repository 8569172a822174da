package api

import (
	"net/http"

	"invitacion/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Get("/health", s.HealthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/ws", s.ServeWsHandler)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))

	r.Get("/calendar", s.CalendarHandler)
	r.Get("/calendar.ics", s.DownloadICSHandler)
	r.Get("/share/maps", s.MapsHandler)
	r.Get("/share/whatsapp", s.WhatsAppHandler)

	r.With(s.identity.Middleware).Get("/", s.IndexHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.config.CORS.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))

		r.Post("/auth/login", s.LoginHandler)

		r.Group(func(r chi.Router) {
			r.Use(s.identity.Middleware)
			r.Get("/attendance", s.GetAttendanceHandler)
			r.Post("/attendance/confirm", s.ConfirmAttendanceHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware)
			r.Get("/admin/attendees", s.ListAttendeesHandler)
		})
	})

	return r
}
