package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"payroll.service/internal/auth"
	"payroll.service/internal/core/model"
	"payroll.service/internal/core/timesheet"
	"payroll.service/internal/identity"
	"payroll.service/internal/ports/repository"
)

type TimesheetHandler struct {
	Timesheets repository.TimesheetRepository
}

// TimesheetRequest is the entry payload for create and update. Total
// hours are always recomputed on the server, a client-supplied value is
// ignored.
type TimesheetRequest struct {
	EmployeeID     string  `json:"employeeId"`
	Date           string  `json:"date"`
	StartTime      *string `json:"startTime"`
	EndTime        *string `json:"endTime"`
	LunchStartTime *string `json:"lunchStartTime"`
	LunchEndTime   *string `json:"lunchEndTime"`
	JobSite        *string `json:"jobSite"`
	Description    *string `json:"description"`
}

// List returns timesheets grouped by date for the requested range.
// Non-admins only ever see their own entries, whatever the query says.
func (h *TimesheetHandler) List(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	employeeID := q.Get("employeeId")
	if user.Role != identity.RoleAdmin {
		employeeID = user.ID
	}

	records, err := h.Timesheets.SelectTimesheets(r.Context(), employeeID, q.Get("from"), q.Get("to"))
	if err != nil {
		http.Error(w, "Failed to load timesheets", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"days":        timesheet.GroupByDate(records),
		"totalHours":  timesheet.SumHours(records),
		"lockedCount": timesheet.CountLocked(records),
	})
}

// Create records a new entry.
func (h *TimesheetHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req TimesheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Date == "" {
		http.Error(w, "Date is required", http.StatusBadRequest)
		return
	}
	if user.Role != identity.RoleAdmin || req.EmployeeID == "" {
		req.EmployeeID = user.ID
	}

	id, err := h.Timesheets.CreateTimesheet(r.Context(), req.toModel(""))
	if err != nil {
		http.Error(w, "Failed to create timesheet", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// Update overwrites an entry. Locked entries are refused with 409.
func (h *TimesheetHandler) Update(w http.ResponseWriter, r *http.Request) {
	existing := h.ownedTimesheet(w, r)
	if existing == nil {
		return
	}

	var req TimesheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Date == "" {
		req.Date = existing.Date
	}
	req.EmployeeID = existing.EmployeeID

	err := h.Timesheets.UpdateTimesheet(r.Context(), req.toModel(existing.ID))
	if errors.Is(err, repository.ErrLocked) {
		http.Error(w, "Timesheet is locked", http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, "Failed to update timesheet", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes an entry. Locked entries are refused with 409.
func (h *TimesheetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	existing := h.ownedTimesheet(w, r)
	if existing == nil {
		return
	}

	err := h.Timesheets.DeleteTimesheet(r.Context(), existing.ID)
	if errors.Is(err, repository.ErrLocked) {
		http.Error(w, "Timesheet is locked", http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, "Failed to delete timesheet", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Lock sets or clears the lock flag. Admin only: locking is how payroll
// freezes a week before exporting it.
func (h *TimesheetHandler) Lock(w http.ResponseWriter, r *http.Request) {
	h.setFlag(w, r, h.Timesheets.SetLocked)
}

// Approve sets or clears the approval flag. Admin only.
func (h *TimesheetHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.setFlag(w, r, h.Timesheets.SetApproved)
}

func (h *TimesheetHandler) setFlag(w http.ResponseWriter, r *http.Request, set func(ctx context.Context, id string, v bool) error) {
	if requireAdmin(w, r) == nil {
		return
	}

	// Absent body means set; {"value": false} clears.
	req := struct {
		Value *bool `json:"value"`
	}{}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}
	value := true
	if req.Value != nil {
		value = *req.Value
	}

	if err := set(r.Context(), mux.Vars(r)["id"], value); err != nil {
		http.Error(w, "Failed to update timesheet", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (req TimesheetRequest) toModel(id string) model.Timesheet {
	hours := timesheet.ComputeTotalHours(req.StartTime, req.EndTime, req.LunchStartTime, req.LunchEndTime)
	return model.Timesheet{
		ID:             id,
		EmployeeID:     req.EmployeeID,
		Date:           req.Date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		LunchStartTime: req.LunchStartTime,
		LunchEndTime:   req.LunchEndTime,
		JobSite:        req.JobSite,
		Description:    req.Description,
		TotalHours:     &hours,
	}
}

// ownedTimesheet loads the entry addressed by the route and enforces
// ownership for non-admins. Writes the error response itself and
// returns nil when the request should stop.
func (h *TimesheetHandler) ownedTimesheet(w http.ResponseWriter, r *http.Request) *model.Timesheet {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return nil
	}

	id := mux.Vars(r)["id"]
	existing, err := h.Timesheets.GetTimesheet(r.Context(), id)
	if err != nil {
		http.Error(w, "Failed to load timesheet", http.StatusInternalServerError)
		return nil
	}
	if existing == nil {
		http.Error(w, "Timesheet not found", http.StatusNotFound)
		return nil
	}
	if user.Role != identity.RoleAdmin && existing.EmployeeID != user.ID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return nil
	}
	return existing
}
