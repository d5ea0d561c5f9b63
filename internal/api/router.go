package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"payroll.service/internal/api/handler"
	"payroll.service/internal/auth"
	"payroll.service/internal/core/service"
	"payroll.service/internal/identity"
	"payroll.service/internal/ports/messaging"
	"payroll.service/internal/ports/repository"
)

// Dependencies carries everything the router needs wired in.
type Dependencies struct {
	Identity      identity.Client
	Authenticator identity.Authenticator
	Employees     repository.EmployeeRepository
	Timesheets    repository.TimesheetRepository
	Jobs          repository.JobRepository
	Exports       repository.ExportJobRepository
	Reports       *service.ReportService
	Producer      messaging.Producer
}

// NewRouter sets up the gorilla/mux router and defines all routes. The
// health probe bypasses the session middleware; everything else runs
// through the access policy first.
func NewRouter(deps Dependencies) *mux.Router {
	authHandler := handler.AuthHandler{Auth: deps.Authenticator}
	timesheetHandler := handler.TimesheetHandler{Timesheets: deps.Timesheets}
	employeeHandler := handler.EmployeeHandler{Employees: deps.Employees, Timesheets: deps.Timesheets}
	payrollHandler := handler.PayrollHandler{
		Employees: deps.Employees,
		Exports:   deps.Exports,
		Reports:   deps.Reports,
		Producer:  deps.Producer,
	}
	jobHandler := handler.JobHandler{Jobs: deps.Jobs}

	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Service is operational."))
	}).Methods(http.MethodGet)

	app := r.PathPrefix("/").Subrouter()
	app.Use(auth.Middleware(deps.Identity))

	app.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	app.HandleFunc("/auth/callback", authHandler.Callback).Methods(http.MethodGet)
	app.HandleFunc("/auth/session", authHandler.Session).Methods(http.MethodGet)

	app.HandleFunc("/timesheet", timesheetHandler.List).Methods(http.MethodGet)
	app.HandleFunc("/timesheet", timesheetHandler.Create).Methods(http.MethodPost)
	app.HandleFunc("/timesheet/{id}", timesheetHandler.Update).Methods(http.MethodPut)
	app.HandleFunc("/timesheet/{id}", timesheetHandler.Delete).Methods(http.MethodDelete)
	app.HandleFunc("/timesheet/{id}/lock", timesheetHandler.Lock).Methods(http.MethodPost)
	app.HandleFunc("/timesheet/{id}/approve", timesheetHandler.Approve).Methods(http.MethodPost)

	app.HandleFunc("/employee", employeeHandler.List).Methods(http.MethodGet)
	app.HandleFunc("/employee", employeeHandler.Create).Methods(http.MethodPost)
	app.HandleFunc("/employee/{id}", employeeHandler.Get).Methods(http.MethodGet)
	app.HandleFunc("/employee/{id}", employeeHandler.Update).Methods(http.MethodPut)
	app.HandleFunc("/setup-account", employeeHandler.SetupAccount).Methods(http.MethodPost)

	app.HandleFunc("/payroll", payrollHandler.Week).Methods(http.MethodGet)
	app.HandleFunc("/payroll/export", payrollHandler.Download).Methods(http.MethodGet)
	app.HandleFunc("/payroll/export/email", payrollHandler.EmailExport).Methods(http.MethodPost)
	app.HandleFunc("/payroll/export/status/{id}", payrollHandler.ExportStatus).Methods(http.MethodGet)

	app.HandleFunc("/jobs", jobHandler.List).Methods(http.MethodGet)

	return r
}
