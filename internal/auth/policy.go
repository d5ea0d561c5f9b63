package auth

import (
	"strings"

	"payroll.service/internal/identity"
)

// Decision is the outcome of the page access policy: either the request
// proceeds or the caller is redirected. The policy never errors.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Allowed lets the request through.
var Allowed = Decision{Allow: true}

// Redirect sends the caller to another path.
func Redirect(path string) Decision {
	return Decision{RedirectTo: path}
}

// AccessRequest is the request metadata the policy decides on.
type AccessRequest struct {
	Authenticated bool
	Role          string
	UserID        string
	Path          string
}

// Authorize is the route access-control policy, evaluated before any
// handler runs. Rules apply in order, first match wins:
//
//  1. unauthenticated requests go to /login, except /login and /auth/*
//  2. an authenticated user on /login goes home
//  3. admins may go anywhere
//  4. everyone else is confined to the timesheet area, account setup and
//     their own employee page; anything else bounces to /timesheet
func Authorize(req AccessRequest) Decision {
	if !req.Authenticated {
		if strings.HasPrefix(req.Path, "/login") || strings.HasPrefix(req.Path, "/auth") {
			return Allowed
		}
		return Redirect("/login")
	}

	if strings.HasPrefix(req.Path, "/login") {
		return Redirect("/")
	}

	if req.Role == identity.RoleAdmin {
		return Allowed
	}

	switch {
	case req.Path == "/timesheet" || strings.HasPrefix(req.Path, "/timesheet/"):
		return Allowed
	case req.Path == "/setup-account":
		return Allowed
	case strings.HasPrefix(req.Path, "/employee/") && pathID(req.Path) == req.UserID:
		return Allowed
	default:
		return Redirect("/timesheet")
	}
}

// pathID extracts the id segment of /employee/{id} paths.
func pathID(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) < 3 {
		return ""
	}
	return parts[2]
}
