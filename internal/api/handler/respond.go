package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"payroll.service/internal/auth"
	"payroll.service/internal/core/schedule"
	"payroll.service/internal/identity"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// requireAdmin enforces the admin role on endpoints the page policy
// alone does not cover. Returns the user when the check passes.
func requireAdmin(w http.ResponseWriter, r *http.Request) *identity.User {
	user := auth.UserFromContext(r.Context())
	if user == nil || user.Role != identity.RoleAdmin {
		http.Error(w, "Admin access required", http.StatusForbidden)
		return nil
	}
	return user
}

// weekWindow resolves the weekStart query parameter, defaulting to the
// current payroll week. Any date snaps to the Monday of its week.
func weekWindow(r *http.Request) (schedule.WeekWindow, bool) {
	raw := r.URL.Query().Get("weekStart")
	if raw == "" {
		return schedule.Window(time.Now().UTC()), true
	}
	window, err := schedule.WindowFrom(raw)
	if err != nil {
		return schedule.WeekWindow{}, false
	}
	return window, true
}
