package api

import (
	"net/http"
	"strconv"

	"github.com/connectpro/connectpro/pkg/models"
	"github.com/connectpro/connectpro/pkg/repository"
	"github.com/gorilla/mux"
)

type DirectoryHandler struct {
	userRepo repository.UserRepo
}

func NewDirectoryHandler(ur repository.UserRepo) *DirectoryHandler {
	return &DirectoryHandler{userRepo: ur}
}

// GetBusinesses lists business profiles filtered by the conjunction of
// optional query params: search, businessType, location, tags.
func (h *DirectoryHandler) GetBusinesses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repository.DirectoryFilters{
		Search:       q.Get("search"),
		BusinessType: q.Get("businessType"),
		Location:     q.Get("location"),
		Tags:         q["tags"],
	}

	users, err := h.userRepo.ListBusinesses(r.Context(), f)
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if users == nil {
		users = []models.User{}
	}

	writeJSON(w, map[string]any{"success": true, "businesses": users}, http.StatusOK)
}

// GetContractors lists contractor profiles filtered by search, skills,
// location, tags.
func (h *DirectoryHandler) GetContractors(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repository.DirectoryFilters{
		Search:   q.Get("search"),
		Location: q.Get("location"),
		Skills:   q["skills"],
		Tags:     q["tags"],
	}

	users, err := h.userRepo.ListContractors(r.Context(), f)
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if users == nil {
		users = []models.User{}
	}

	writeJSON(w, map[string]any{"success": true, "contractors": users}, http.StatusOK)
}

func (h *DirectoryHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || userID <= 0 {
		writeError(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	user, err := h.userRepo.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		writeError(w, "User not found", http.StatusNotFound)
		return
	}

	writeJSON(w, map[string]any{"success": true, "user": user}, http.StatusOK)
}
