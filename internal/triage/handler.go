package triage

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type ClassifyRequest struct {
	UserInput string `json:"user_input"`
}

type FollowupRequest struct {
	InteractionID string   `json:"interaction_id"`
	QuestionIndex int      `json:"question_index"`
	UserResponses []string `json:"user_responses"`
}

// Classify begins a dialog session from raw symptom text.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	result, err := h.svc.StartSession(r.Context(), req.UserInput)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// Followup advances a dialog session with the answer to the question at the
// given index.
func (h *Handler) Followup(w http.ResponseWriter, r *http.Request) {
	var req FollowupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	id, err := uuid.Parse(req.InteractionID)
	if err != nil {
		http.Error(w, "Invalid interaction ID", http.StatusBadRequest)
		return
	}

	result, err := h.svc.SubmitFollowup(r.Context(), id, req.QuestionIndex, req.UserResponses)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// ListInteractions returns every stored session, most recent first.
func (h *Handler) ListInteractions(w http.ResponseWriter, r *http.Request) {
	interactions, err := h.svc.ListInteractions(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if interactions == nil {
		interactions = []Interaction{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(interactions)
}

// statusFor maps the failure taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrEmptyInput),
		errors.Is(err, ErrIndexOutOfRange),
		errors.Is(err, ErrStaleIndex):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrNoCandidateAnswers),
		errors.Is(err, ErrNoMatchFound),
		errors.Is(err, ErrNoDiagnosisRecord):
		return http.StatusNotFound
	case errors.Is(err, ErrClassificationUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/triage/classify", h.Classify)
	r.Post("/triage/followup", h.Followup)
	r.Get("/triage/interactions", h.ListInteractions)
}
