package handler

import (
	"net/http"

	"payroll.service/internal/auth"
	"payroll.service/internal/ports/repository"
)

type JobHandler struct {
	Jobs repository.JobRepository
}

// List returns all projects, for the timesheet and profile forms.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	if auth.UserFromContext(r.Context()) == nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	jobs, err := h.Jobs.SelectJobs(r.Context())
	if err != nil {
		http.Error(w, "Failed to load projects", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}
