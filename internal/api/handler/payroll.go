package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"payroll.service/internal/core/model"
	"payroll.service/internal/core/payroll"
	"payroll.service/internal/core/service"
	"payroll.service/internal/ports/messaging"
	"payroll.service/internal/ports/repository"
)

type PayrollHandler struct {
	Employees repository.EmployeeRepository
	Exports   repository.ExportJobRepository
	Reports   *service.ReportService
	Producer  messaging.Producer
}

// Week serves the weekly payroll screen: one page of employees with
// their timesheets for the week, plus the headline summary. Admin only.
func (h *PayrollHandler) Week(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	window, ok := weekWindow(r)
	if !ok {
		http.Error(w, "Invalid weekStart date", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	limit, page := pageParams(r)
	data, total, err := h.Employees.GetEmployeesWithTimesheets(r.Context(),
		q.Get("search"), model.EmployeeStatus(q.Get("status")), limit, page, window.From(), window.To())
	if err != nil {
		http.Error(w, "Failed to load payroll data", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"weekStart":  window.From(),
		"weekEnd":    window.To(),
		"days":       window.Days(),
		"employees":  data,
		"totalCount": total,
		"summary":    payroll.Summarize(data),
	})
}

// Download builds the weekly spreadsheet and streams it back. Admin
// only.
func (h *PayrollHandler) Download(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	window, ok := weekWindow(r)
	if !ok {
		http.Error(w, "Invalid weekStart date", http.StatusBadRequest)
		return
	}

	report, err := h.Reports.GenerateSpreadsheet(r.Context(), window)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to generate payroll spreadsheet")
		http.Error(w, "Failed to generate report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "payroll-report-"+window.From()+".xlsx"))
	w.Write(report)
}

// EmailExport queues an asynchronous export: the worker builds the
// spreadsheet and mails it. Admin only. Responds 202 immediately.
func (h *PayrollHandler) EmailExport(w http.ResponseWriter, r *http.Request) {
	user := requireAdmin(w, r)
	if user == nil {
		return
	}

	window, ok := weekWindow(r)
	if !ok {
		http.Error(w, "Invalid weekStart date", http.StatusBadRequest)
		return
	}

	req := struct {
		Recipient string `json:"recipient"`
	}{}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}
	if req.Recipient == "" {
		req.Recipient = user.Email
	}
	if req.Recipient == "" {
		http.Error(w, "Recipient is required", http.StatusBadRequest)
		return
	}

	job := model.ExportJob{
		ID:          uuid.NewString(),
		WeekStart:   window.From(),
		RequestedBy: user.ID,
		Recipient:   req.Recipient,
		Status:      model.StatusExportPending,
	}
	if err := h.Exports.CreateExportJob(r.Context(), job); err != nil {
		http.Error(w, "Failed to create export job", http.StatusInternalServerError)
		return
	}

	err := h.Producer.PublishExport(r.Context(), messaging.ExportRequestedEvent{
		ExportJobID: job.ID,
		WeekStart:   job.WeekStart,
		RequestedBy: job.RequestedBy,
		Recipient:   job.Recipient,
		OccurredAt:  time.Now().UTC(),
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("exportJobId", job.ID).Msg("Failed to publish export event")
		http.Error(w, "Failed to queue export", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{
		"exportJobId": job.ID,
		"message":     "Export queued, the report will be emailed shortly.",
	})
}

// ExportStatus reports the state of a queued export. Admin only.
func (h *PayrollHandler) ExportStatus(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	job, err := h.Exports.GetExportJob(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Failed to load export job", http.StatusInternalServerError)
		return
	}
	if job == nil {
		http.Error(w, "Export job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job)
}
