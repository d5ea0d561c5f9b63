package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"payroll.service/internal/auth"
	"payroll.service/internal/core/model"
	"payroll.service/internal/core/timesheet"
	"payroll.service/internal/identity"
	"payroll.service/internal/ports/repository"
)

type EmployeeHandler struct {
	Employees  repository.EmployeeRepository
	Timesheets repository.TimesheetRepository
}

// EmployeeRequest is the profile payload for create and update.
type EmployeeRequest struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          *string  `json:"email"`
	Phone          *string  `json:"phone"`
	Position       *string  `json:"position"`
	EmploymentType *string  `json:"employmentType"`
	JobID          *string  `json:"jobId"`
	Payrate        *float64 `json:"payrate"`
	Status         string   `json:"status"`
	StartDate      *string  `json:"startDate"`
}

// List returns employee profiles, optionally filtered by a name search
// and a status. Admin only.
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	q := r.URL.Query()
	employees, err := h.Employees.SelectEmployees(r.Context(), repository.EmployeeFilter{
		SearchName: q.Get("search"),
		Status:     model.EmployeeStatus(q.Get("status")),
	})
	if err != nil {
		http.Error(w, "Failed to load employees", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"employees": employees})
}

// Get returns one profile. The page policy already confines non-admins
// to their own ID, the check here backs it up for direct API calls.
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]
	if user.Role != identity.RoleAdmin && id != user.ID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	employee, err := h.Employees.GetEmployee(r.Context(), id)
	if err != nil {
		http.Error(w, "Failed to load employee", http.StatusInternalServerError)
		return
	}
	if employee == nil {
		http.Error(w, "Employee not found", http.StatusNotFound)
		return
	}

	// The profile page shows the current week's entries alongside the
	// contact details.
	window, ok := weekWindow(r)
	if !ok {
		http.Error(w, "Invalid weekStart date", http.StatusBadRequest)
		return
	}
	records, err := h.Timesheets.SelectTimesheets(r.Context(), id, window.From(), window.To())
	if err != nil {
		http.Error(w, "Failed to load timesheets", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"employee":   employee,
		"weekStart":  window.From(),
		"days":       timesheet.GroupByDate(records),
		"totalHours": timesheet.SumHours(records),
	})
}

// Create adds a worker profile. Admin only; the ID must be the worker's
// identity-provider user ID.
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	var req EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ID == "" || req.Name == "" {
		http.Error(w, "ID and name are required", http.StatusBadRequest)
		return
	}
	if req.Status == "" {
		req.Status = string(model.StatusActive)
	}

	if err := h.Employees.CreateEmployee(r.Context(), req.toModel()); err != nil {
		http.Error(w, "Failed to create employee", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": req.ID})
}

// Update overwrites a profile. Admins can edit anyone; workers can only
// touch their own contact fields and never their payrate or status.
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]
	if user.Role != identity.RoleAdmin && id != user.ID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	existing, err := h.Employees.GetEmployee(r.Context(), id)
	if err != nil {
		http.Error(w, "Failed to load employee", http.StatusInternalServerError)
		return
	}
	if existing == nil {
		http.Error(w, "Employee not found", http.StatusNotFound)
		return
	}

	var req EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.ID = id
	if user.Role != identity.RoleAdmin {
		req.Payrate = existing.Payrate
		req.Status = string(existing.Status)
		req.JobID = existing.JobID
	}
	if req.Name == "" {
		req.Name = existing.Name
	}
	if req.Status == "" {
		req.Status = string(existing.Status)
	}

	if err := h.Employees.UpdateEmployee(r.Context(), req.toModel()); err != nil {
		http.Error(w, "Failed to update employee", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetupAccount creates or completes the caller's own worker profile
// after first sign-in. The profile goes live only once the identity
// provider has verified the email address.
func (h *EmployeeHandler) SetupAccount(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	req.ID = user.ID
	if req.Email == nil && user.Email != "" {
		email := user.Email
		req.Email = &email
	}
	// Payrate and project assignments are the admin's call.
	req.Payrate = nil
	req.JobID = nil
	if user.EmailVerified {
		req.Status = string(model.StatusActive)
	} else {
		req.Status = string(model.StatusAwaitingVerification)
	}

	existing, err := h.Employees.GetEmployee(r.Context(), user.ID)
	if err != nil {
		http.Error(w, "Failed to load employee", http.StatusInternalServerError)
		return
	}

	if existing == nil {
		err = h.Employees.CreateEmployee(r.Context(), req.toModel())
	} else {
		req.Payrate = existing.Payrate
		req.JobID = existing.JobID
		err = h.Employees.UpdateEmployee(r.Context(), req.toModel())
	}
	if err != nil {
		http.Error(w, "Failed to set up account", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": user.ID, "status": req.Status})
}

func (req EmployeeRequest) toModel() model.Employee {
	return model.Employee{
		ID:             req.ID,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Position:       req.Position,
		EmploymentType: req.EmploymentType,
		JobID:          req.JobID,
		Payrate:        req.Payrate,
		Status:         model.EmployeeStatus(req.Status),
		StartDate:      req.StartDate,
	}
}

// pageParams reads limit and page query parameters with the defaults
// the payroll screen uses.
func pageParams(r *http.Request) (limit, page int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if limit <= 0 {
		limit = 10
	}
	if page <= 0 {
		page = 1
	}
	return limit, page
}
