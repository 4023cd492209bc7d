package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/connectpro/connectpro/pkg/models"
	"github.com/connectpro/connectpro/pkg/repository"
)

type ContactHandler struct {
	contactRepo repository.ContactRepo
}

func NewContactHandler(cr repository.ContactRepo) *ContactHandler {
	return &ContactHandler{contactRepo: cr}
}

func (h *ContactHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if !validateBody(r.Context(), w, contactSchema, body) {
		return
	}

	var sub models.ContactSubmission
	if err := json.Unmarshal(body, &sub); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	id, err := h.contactRepo.CreateContactSubmission(r.Context(), &sub)
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"success": true, "id": id}, http.StatusOK)
}

func (h *ContactHandler) SubscribeNewsletter(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if !validateBody(r.Context(), w, newsletterSchema, body) {
		return
	}

	var req struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	existing, err := h.contactRepo.GetNewsletterSubscriptionByEmail(ctx, req.Email)
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		writeError(w, "Email already subscribed", http.StatusBadRequest)
		return
	}

	id, err := h.contactRepo.CreateNewsletterSubscription(ctx, req.Email)
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"success": true, "id": id}, http.StatusOK)
}
