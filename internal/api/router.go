package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestLogger(h.log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/token", h.TokenHandler)
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(h.AuthMiddleware)

			r.Route("/departments", func(r chi.Router) {
				r.Post("/", h.CreateDepartmentHandler)
				r.Get("/", h.ListDepartmentsHandler)
				r.Get("/search", h.SearchDepartmentsHandler)
				r.Get("/{id}", h.GetDepartmentHandler)
				r.Delete("/{id}", h.DeleteDepartmentHandler)
			})

			r.Route("/doctors", func(r chi.Router) {
				r.Post("/", h.CreateDoctorHandler)
				r.Get("/", h.ListDoctorsHandler)
				r.Get("/search", h.SearchDoctorsHandler)
				r.Get("/me", h.GetOwnDoctorHandler)
				r.Get("/{id}", h.GetDoctorHandler)
				r.Put("/{id}", h.UpdateDoctorHandler)
				r.Patch("/{id}/availability", h.UpdateDoctorAvailabilityHandler)
				r.Delete("/{id}", h.DeleteDoctorHandler)
			})

			r.Route("/patients", func(r chi.Router) {
				r.Post("/", h.CreatePatientHandler)
				r.Get("/", h.ListPatientsHandler)
				r.Get("/me", h.GetOwnPatientHandler)
				r.Get("/{id}", h.GetPatientHandler)
				r.Put("/{id}", h.UpdatePatientHandler)
				r.Delete("/{id}", h.DeletePatientHandler)
				r.Get("/{id}/consultations", h.PatientConsultationHistoryHandler)
			})

			r.Route("/consultations", func(r chi.Router) {
				r.Post("/", h.CreateConsultationHandler)
				r.Get("/", h.ListConsultationsHandler)
				r.Get("/{id}", h.GetConsultationHandler)
			})

			r.Route("/chats", func(r chi.Router) {
				r.Post("/", h.CreateChatHandler)
				r.Get("/", h.ListChatsHandler)
				r.Get("/{id}", h.GetChatHandler)
			})
		})
	})

	return r
}
