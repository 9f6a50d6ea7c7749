package httpapi

import (
	"net/http"
	"strings"
)

const adminHeader = "X-Admin-Key"

// Verifier decides whether a caller-supplied admin credential is valid.
// The static shared-secret check is the default; stronger schemes can
// replace it without touching the handlers.
type Verifier interface {
	Verify(credential string) bool
}

// StaticKeyVerifier accepts exactly one shared secret. An empty secret
// rejects everything, so an unconfigured deployment has no admin surface.
type StaticKeyVerifier struct {
	Key string
}

func (v StaticKeyVerifier) Verify(credential string) bool {
	return v.Key != "" && credential == v.Key
}

// RequireAdmin guards mutating routes. The credential comes from the
// X-Admin-Key header or an Authorization bearer token; absence or
// mismatch is a 401 before any store access happens.
func RequireAdmin(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !verifier.Verify(credentialFrom(r)) {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func credentialFrom(r *http.Request) string {
	if key := r.Header.Get(adminHeader); key != "" {
		return key
	}
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return token
	}
	return ""
}
