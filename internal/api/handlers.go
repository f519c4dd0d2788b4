package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"curalink.io/coordination-service/internal/auth"
	"curalink.io/coordination-service/internal/core"
	"curalink.io/coordination-service/internal/identity"
)

// Handler exposes the entity services over HTTP.
type Handler struct {
	registry *core.Registry
	tokens   *auth.TokenIssuer
	devMode  bool
	log      zerolog.Logger
}

func NewHandler(registry *core.Registry, tokens *auth.TokenIssuer, devMode bool, log zerolog.Logger) *Handler {
	return &Handler{registry: registry, tokens: tokens, devMode: devMode, log: log}
}

// AuthMiddleware verifies the bearer token and attaches the caller
// principal to the request context. Services never see the token itself.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header is required", http.StatusUnauthorized)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		caller, err := h.tokens.Verify(tokenString)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := identity.WithPrincipal(r.Context(), caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error().Err(err).Msg("failed to encode response")
	}
}

// statusFor maps every code in the closed result set to an HTTP status.
func statusFor(code core.Code) int {
	switch code {
	case core.CodeNotFound:
		return http.StatusNotFound
	case core.CodeInvalidPayload:
		return http.StatusBadRequest
	case core.CodePaymentFailed:
		return http.StatusPaymentRequired
	case core.CodePaymentCompleted:
		return http.StatusOK
	case core.CodeError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeFault(w http.ResponseWriter, r *http.Request, err error) {
	code := core.CodeOf(err)
	if code == core.CodeError {
		h.log.Error().Err(err).Str("path", r.URL.Path).Msg("operation failed")
	}
	h.writeJSON(w, statusFor(code), map[string]string{
		"code":  string(code),
		"error": err.Error(),
	})
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// --- token (development only) ---

type TokenRequest struct {
	Subject string `json:"subject"`
}

// TokenHandler mints a bearer token for a given subject. It exists so a
// development deployment has a way to exercise the API; production
// deployments receive tokens from the hosting identity provider.
func (h *Handler) TokenHandler(w http.ResponseWriter, r *http.Request) {
	if !h.devMode {
		http.Error(w, "token minting is disabled", http.StatusForbidden)
		return
	}

	var req TokenRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Subject) == "" {
		http.Error(w, "subject is required", http.StatusBadRequest)
		return
	}

	token, err := h.tokens.Mint(req.Subject)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to mint token")
		http.Error(w, "Failed to mint token", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// --- departments ---

type CreateDepartmentRequest struct {
	Name string `json:"name"`
}

func (h *Handler) CreateDepartmentHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateDepartmentRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	dep, err := h.registry.Departments.Create(req.Name)
	if err != nil {
		h.writeFault(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, dep)
}

func (h *Handler) GetDepartmentHandler(w http.ResponseWriter, r *http.Request) {
	dep, err := h.registry.Departments.ByID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeFault(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, dep)
}

func (h *Handler) ListDepartmentsHandler(w http.ResponseWriter, r *http.Request) {
	deps, err := h.registry.Departments.All()
	if err != nil {
		h.writeFault(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, deps)
}

func (h *Handler) SearchDepartmentsHandler(w http.ResponseWriter, r *http.Request) {
	deps, err := h.registry.Departments.SearchByName(r.URL.Query().Get("name"))
	if err != nil {
		h.writeFault(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, deps)
}

func (h *Handler) DeleteDepartmentHandler(w http.ResponseWriter, r *http.Request) {
	msg, err := h.registry.Departments.Delete(chi.URLParam(r, "id"))
	if err != nil {
		h.writeFault(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

// --- doctors ---

func (h *Handler) CreateDoctorHandler(w http.ResponseWriter, r *http.Request) {
	var req core.CreateDoctorRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := h.registry.Doctors.Create(r.Context(), req)
	if err != nil {
		h.writeFault(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, doc)
}

func (h *Handler) GetDoctorHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := h.registry.Doctors.ByID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeFault(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, doc)
}

func (h *Handler) GetOwnDoctorHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := h.registry.Doctors.ByOwner(r.Context())
	if err != nil {
		h.writeFault(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, doc)
}

func (h *Handler) ListDoctorsHandler(w http.ResponseWriter, r *http.Request) {
	docs, err := h.registry.Doctors.All()
	if err != nil {
		h.writeFault(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, docs)
}

func (h *Handler) SearchDoctorsHandler(w http.ResponseWriter, r *http.Request) {
	docs, err := h.registry.Doctors.SearchByName(r.URL.Query().Get("name"))
	if err != nil {
		h.writeFault(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, docs)
}

func (h *Handler) UpdateDoctorHandler(w http.ResponseWriter, r *http.Request) {
	var req core.UpdateDoctorRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := h.registry.Doctors.Update(chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeFault(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, doc)
}

type AvailabilityRequest struct {
	Available bool `json:"available"`
}

func (h *Handler) UpdateDoctorAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	var req AvailabilityRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := h.registry.Doctors.UpdateAvailability(chi.URLParam(r, "id"), req.Available)
	if err != nil {
		h.writeFault(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, doc)
}

func (h *Handler) DeleteDoctorHandler(w http.ResponseWriter, r *http.Request) {
	msg, err := h.registry.Doctors.Delete(chi.URLParam(r, "id"))
	if err != nil {
		h.writeFault(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

// --- patients ---

func (h *Handler) CreatePatientHandler(w http.ResponseWriter, r *http.Request) {
	var req core.CreatePatientRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	p, err := h.registry.Patients.Create(r.Context(), req)
	if err != nil {
		h.writeFault(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) GetPatientHandler(w http.ResponseWriter, r *http.Request) {
	p, err := h.registry.Patients.ByID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeFault(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}

func (h *Handler) GetOwnPatientHandler(w http.ResponseWriter, r *http.Request) {
	p, err := h.registry.Patients.ByOwner(r.Context())
	if err != nil {
		h.writeFault(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}

func (h *Handler) ListPatientsHandler(w http.ResponseWriter, r *http.Request) {
	patients, err := h.registry.Patients.All()
	if err != nil {
		h.writeFault(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, patients)
}

func (h *Handler) UpdatePatientHandler(w http.ResponseWriter, r *http.Request) {
	var req core.UpdatePatientRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	p, err := h.registry.Patients.Update(chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeFault(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}

func (h *Handler) DeletePatientHandler(w http.ResponseWriter, r *http.Request) {
	msg, err := h.registry.Patients.Delete(chi.URLParam(r, "id"))
	if err != nil {
		h.writeFault(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

// --- consultations ---

func (h *Handler) CreateConsultationHandler(w http.ResponseWriter, r *http.Request) {
	var req core.CreateConsultationRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	c, err := h.registry.Consultations.Create(req)
	if err != nil {
		h.writeFault(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) GetConsultationHandler(w http.ResponseWriter, r *http.Request) {
	c, err := h.registry.Consultations.ByID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeFault(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

func (h *Handler) ListConsultationsHandler(w http.ResponseWriter, r *http.Request) {
	consultations, err := h.registry.Consultations.All()
	if err != nil {
		h.writeFault(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, consultations)
}

func (h *Handler) PatientConsultationHistoryHandler(w http.ResponseWriter, r *http.Request) {
	history, err := h.registry.Consultations.HistoryByPatient(chi.URLParam(r, "id"))
	if err != nil {
		h.writeFault(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, history)
}

// --- chats ---

func (h *Handler) CreateChatHandler(w http.ResponseWriter, r *http.Request) {
	var req core.CreateChatRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	c, err := h.registry.Chats.Create(req)
	if err != nil {
		h.writeFault(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) GetChatHandler(w http.ResponseWriter, r *http.Request) {
	c, err := h.registry.Chats.ByID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeFault(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

func (h *Handler) ListChatsHandler(w http.ResponseWriter, r *http.Request) {
	chats, err := h.registry.Chats.All()
	if err != nil {
		h.writeFault(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, chats)
}
