package middleware

import (
	"crypto/subtle"
	"net/http"
	"strconv"

	"github.com/amirhosseinghanipour/projectdb/internal/application/ports"
)

// AdminSecretHeader carries the admin secret for /admin/*.
const AdminSecretHeader = "X-Projectdb-Admin-Secret"

// RequireAdminSecret returns a middleware that requires X-Projectdb-Admin-Secret to match the given secret.
// If secret is empty, all requests are rejected with 401.
func RequireAdminSecret(secret string) func(http.Handler) http.Handler {
	return RequireAdminSecretWithLockout(secret, nil)
}

// RequireAdminSecretWithLockout is RequireAdminSecret plus a lockout keyed by PeerIP after repeated wrong secrets.
// Locked clients get 429 with Retry-After. lockout may be nil.
func RequireAdminSecretWithLockout(secret string, lockout ports.LockoutStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				writeErr(w, http.StatusUnauthorized, "unauthorized", "admin API not configured (ADMIN_SECRET)")
				return
			}
			ip := PeerIP(r)
			if lockout != nil {
				if locked, retry := lockout.IsLocked(r.Context(), ip); locked {
					w.Header().Set("Retry-After", strconv.Itoa(retry))
					writeErr(w, http.StatusTooManyRequests, "rate_limited", "too many failed admin attempts")
					return
				}
			}
			if subtle.ConstantTimeCompare([]byte(r.Header.Get(AdminSecretHeader)), []byte(secret)) != 1 {
				if lockout != nil {
					lockout.RecordFailure(r.Context(), ip)
				}
				writeErr(w, http.StatusUnauthorized, "unauthorized", "invalid or missing admin secret")
				return
			}
			if lockout != nil {
				lockout.RecordSuccess(r.Context(), ip)
			}
			next.ServeHTTP(w, r)
		})
	}
}
