// A stand-in identity provider for local development. It accepts any
// password for the seeded accounts and issues JWTs the API can verify
// with the same JWT_SECRET.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"payroll.service/internal/identity"
)

var accounts = map[string]identity.User{
	"admin@example.com":  {ID: "admin-1", Email: "admin@example.com", Role: "admin", EmailVerified: true},
	"worker@example.com": {ID: "worker-1", Email: "worker@example.com", Role: "employee", EmailVerified: true},
	"new@example.com":    {ID: "worker-2", Email: "new@example.com", Role: "employee", EmailVerified: false},
}

func main() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "local-dev-secret"
	}
	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = "payroll-service"
	}
	verifier := identity.NewJWTVerifier(secret, issuer)

	http.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}

		user, ok := accounts[creds.Email]
		if !ok || creds.Password == "" {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}

		token, err := identity.IssueToken(user, secret, issuer, time.Hour)
		if err != nil {
			http.Error(w, "Failed to issue token", http.StatusInternalServerError)
			return
		}

		log.Printf("Issued token for %s (%s)", user.Email, user.Role)
		json.NewEncoder(w).Encode(map[string]string{"access_token": token})
	})

	http.HandleFunc("/auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		token := strings.TrimPrefix(authz, "Bearer ")
		user, err := verifier.GetCurrentUser(r.Context(), token)
		if err != nil || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(user)
	})

	log.Println("Identity mock server starting on port 9999...")
	log.Fatal(http.ListenAndServe(":9999", nil))
}
