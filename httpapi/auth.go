package httpapi

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// SecretHeader is the shared-secret header checked before any core logic.
const SecretHeader = "X-Bridge-Secret"

// requireSecret gates next behind a shared-secret header comparison. An
// empty configured secret disables the check entirely (non-production
// convenience); a mismatch rejects before any provider or parser work runs.
func requireSecret(secret string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if secret != "" {
			presented := r.Header.Get(SecretHeader)
			if subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(errorReply{Error: "unauthorized"})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
