package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payroll.service/internal/core/model"
	"payroll.service/internal/identity"
	"payroll.service/internal/ports/repository"
)

type recordingEmployeeRepo struct {
	stubEmployeeRepo
	existing map[string]*model.Employee
	created  []model.Employee
	updated  []model.Employee
}

func (f *recordingEmployeeRepo) GetEmployee(ctx context.Context, id string) (*model.Employee, error) {
	return f.existing[id], nil
}

func (f *recordingEmployeeRepo) CreateEmployee(ctx context.Context, e model.Employee) error {
	f.created = append(f.created, e)
	return nil
}

func (f *recordingEmployeeRepo) UpdateEmployee(ctx context.Context, e model.Employee) error {
	f.updated = append(f.updated, e)
	return nil
}

var _ repository.EmployeeRepository = (*recordingEmployeeRepo)(nil)

func TestSetupAccountVerifiedEmailGoesActive(t *testing.T) {
	repo := &recordingEmployeeRepo{existing: map[string]*model.Employee{}}
	h := EmployeeHandler{Employees: repo}

	user := &identity.User{ID: "u1", Email: "ana@example.com", Role: "employee", EmailVerified: true}
	req := asUser(httptest.NewRequest(http.MethodPost, "/setup-account", strings.NewReader(`{"name":"Ana"}`)), user)
	rec := httptest.NewRecorder()
	h.SetupAccount(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, repo.created, 1)
	created := repo.created[0]
	assert.Equal(t, "u1", created.ID)
	assert.Equal(t, model.StatusActive, created.Status)
	require.NotNil(t, created.Email)
	assert.Equal(t, "ana@example.com", *created.Email)
	assert.Nil(t, created.Payrate)
}

func TestSetupAccountUnverifiedEmailAwaitsVerification(t *testing.T) {
	repo := &recordingEmployeeRepo{existing: map[string]*model.Employee{}}
	h := EmployeeHandler{Employees: repo}

	user := &identity.User{ID: "u2", Email: "bo@example.com", Role: "employee", EmailVerified: false}
	req := asUser(httptest.NewRequest(http.MethodPost, "/setup-account", strings.NewReader(`{"name":"Bo"}`)), user)
	rec := httptest.NewRecorder()
	h.SetupAccount(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, repo.created, 1)
	assert.Equal(t, model.StatusAwaitingVerification, repo.created[0].Status)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "AWAITINGVERIFICATION", resp["status"])
}

func TestEmployeeUpdateNonAdminCannotChangePayrate(t *testing.T) {
	repo := &recordingEmployeeRepo{existing: map[string]*model.Employee{
		"u1": {ID: "u1", Name: "Ana", Payrate: ptr(25.0), Status: model.StatusActive},
	}}
	h := EmployeeHandler{Employees: repo}

	body := `{"name":"Ana Maria","payrate":99,"status":"TERMINATED"}`
	req := asUser(httptest.NewRequest(http.MethodPut, "/employee/u1", strings.NewReader(body)), worker("u1"))
	req = mux.SetURLVars(req, map[string]string{"id": "u1"})
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, repo.updated, 1)
	updated := repo.updated[0]
	assert.Equal(t, "Ana Maria", updated.Name)
	require.NotNil(t, updated.Payrate)
	assert.Equal(t, 25.0, *updated.Payrate)
	assert.Equal(t, model.StatusActive, updated.Status)
}

func TestEmployeeGetForeignProfileForbidden(t *testing.T) {
	h := EmployeeHandler{Employees: &recordingEmployeeRepo{}}

	req := asUser(httptest.NewRequest(http.MethodGet, "/employee/u2", nil), worker("u1"))
	req = mux.SetURLVars(req, map[string]string{"id": "u2"})
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
