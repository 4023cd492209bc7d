package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/connectpro/connectpro/pkg/models"
	"github.com/connectpro/connectpro/pkg/repository"
	"github.com/gorilla/mux"
)

type JobOrdersHandler struct {
	userRepo repository.UserRepo
	jobRepo  repository.JobOrderRepo
}

func NewJobOrdersHandler(ur repository.UserRepo, jr repository.JobOrderRepo) *JobOrdersHandler {
	return &JobOrdersHandler{userRepo: ur, jobRepo: jr}
}

type jobOrderRequest struct {
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	BudgetRange    *string  `json:"budgetRange"`
	ProjectSize    *string  `json:"projectSize"`
	Deadline       *int64   `json:"deadline"`
	Location       *string  `json:"location"`
	RequiredSkills []string `json:"requiredSkills"`
	Status         *string  `json:"status"`
}

// CreateJobOrder creates a work request. Only business accounts may post job
// orders; status defaults to open.
func (h *JobOrdersHandler) CreateJobOrder(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireBusinessUser(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if !validateBody(r.Context(), w, jobOrderSchema, body) {
		return
	}

	var req jobOrderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	status := models.JobStatusOpen
	if req.Status != nil {
		status = *req.Status
	}

	order := models.JobOrder{
		BusinessOwnerID: owner.ID,
		Title:           *req.Title,
		Description:     *req.Description,
		BudgetRange:     req.BudgetRange,
		ProjectSize:     req.ProjectSize,
		Deadline:        req.Deadline,
		Location:        req.Location,
		RequiredSkills:  req.RequiredSkills,
		Status:          status,
	}

	id, err := h.jobRepo.CreateJobOrder(r.Context(), &order)
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	created, err := h.jobRepo.GetJobOrderByID(r.Context(), id)
	if err != nil || created == nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"success": true, "jobOrder": created}, http.StatusOK)
}

// ListJobOrders returns the session owner's orders, optionally filtered by
// status.
func (h *JobOrdersHandler) ListJobOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(r)
	if !ok {
		writeError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	status := r.URL.Query().Get("status")
	if status != "" && !models.ValidJobStatus(status) {
		writeError(w, "Invalid status", http.StatusBadRequest)
		return
	}

	orders, err := h.jobRepo.ListJobOrdersByOwner(r.Context(), userID, status)
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if orders == nil {
		orders = []models.JobOrder{}
	}

	writeJSON(w, map[string]any{"success": true, "jobOrders": orders}, http.StatusOK)
}

func (h *JobOrdersHandler) GetJobOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(r)
	if !ok {
		writeError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	order, ok := h.loadJobOrder(w, r)
	if !ok {
		return
	}
	if !canModify(userID, order.BusinessOwnerID) {
		writeError(w, "Job order not found", http.StatusNotFound)
		return
	}

	writeJSON(w, map[string]any{"success": true, "jobOrder": order}, http.StatusOK)
}

// UpdateJobOrder applies a partial update. Any authorized caller may set any
// valid status value; transitions are not ordered.
func (h *JobOrdersHandler) UpdateJobOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(r)
	if !ok {
		writeError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	order, ok := h.loadJobOrder(w, r)
	if !ok {
		return
	}
	if !canModify(userID, order.BusinessOwnerID) {
		writeError(w, "Not authorized", http.StatusForbidden)
		return
	}

	var req jobOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.Title != nil {
		if *req.Title == "" {
			writeValidationError(w, []fieldError{{Field: "title", Message: "title must not be empty"}})
			return
		}
		order.Title = *req.Title
	}
	if req.Description != nil {
		if *req.Description == "" {
			writeValidationError(w, []fieldError{{Field: "description", Message: "description must not be empty"}})
			return
		}
		order.Description = *req.Description
	}
	if req.BudgetRange != nil {
		order.BudgetRange = req.BudgetRange
	}
	if req.ProjectSize != nil {
		order.ProjectSize = req.ProjectSize
	}
	if req.Deadline != nil {
		order.Deadline = req.Deadline
	}
	if req.Location != nil {
		order.Location = req.Location
	}
	if req.RequiredSkills != nil {
		order.RequiredSkills = req.RequiredSkills
	}
	if req.Status != nil {
		if !models.ValidJobStatus(*req.Status) {
			writeValidationError(w, []fieldError{{Field: "status", Message: "status must be one of open, in_progress, completed, cancelled"}})
			return
		}
		order.Status = *req.Status
	}

	if err := h.jobRepo.UpdateJobOrder(r.Context(), order); err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	updated, err := h.jobRepo.GetJobOrderByID(r.Context(), order.ID)
	if err != nil || updated == nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"success": true, "jobOrder": updated}, http.StatusOK)
}

// DeleteJobOrder removes the session owner's order. Non-owners get the same
// 404 as a missing order.
func (h *JobOrdersHandler) DeleteJobOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(r)
	if !ok {
		writeError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	order, ok := h.loadJobOrder(w, r)
	if !ok {
		return
	}
	if !canModify(userID, order.BusinessOwnerID) {
		writeError(w, "Job order not found", http.StatusNotFound)
		return
	}

	if err := h.jobRepo.DeleteJobOrder(r.Context(), order.ID); err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"success": true}, http.StatusOK)
}

func (h *JobOrdersHandler) loadJobOrder(w http.ResponseWriter, r *http.Request) (*models.JobOrder, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, "Invalid job order ID", http.StatusBadRequest)
		return nil, false
	}

	order, err := h.jobRepo.GetJobOrderByID(r.Context(), id)
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return nil, false
	}
	if order == nil {
		writeError(w, "Job order not found", http.StatusNotFound)
		return nil, false
	}

	return order, true
}

// requireBusinessUser resolves the session user and rejects non-business
// accounts.
func (h *JobOrdersHandler) requireBusinessUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	userID, ok := sessionUserID(r)
	if !ok {
		writeError(w, "Not authenticated", http.StatusUnauthorized)
		return nil, false
	}

	user, err := h.userRepo.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return nil, false
	}
	if user == nil {
		writeError(w, "Not authenticated", http.StatusUnauthorized)
		return nil, false
	}
	if user.UserType != models.UserTypeBusiness {
		writeError(w, "Only business accounts can manage job orders", http.StatusForbidden)
		return nil, false
	}

	return user, true
}
