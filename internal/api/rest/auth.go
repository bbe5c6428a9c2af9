package rest

import (
	"net/http"
	"strings"
)

// Identity headers stamped by the fronting gateway. This service trusts them:
// it checks presence for read endpoints and a privilege string match for the
// internal write endpoints. No token verification happens here.
const (
	HeaderIdentity      = "Eric-Identity"
	HeaderIdentityType  = "Eric-Identity-Type"
	HeaderKeyPrivileges = "Eric-Authorised-Key-Privileges"
)

// authenticated requires a caller identity to be present.
func (h *Handler) authenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(HeaderIdentity) == "" || r.Header.Get(HeaderIdentityType) == "" {
			writeError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Identity required")
			return
		}
		next(w, r)
	}
}

// internalOnly additionally requires the internal-app privilege. Privileges
// arrive as a comma-separated list.
func (h *Handler) internalOnly(next http.HandlerFunc) http.HandlerFunc {
	return h.authenticated(func(w http.ResponseWriter, r *http.Request) {
		if !hasPrivilege(r.Header.Get(HeaderKeyPrivileges), h.internalPrivilege) {
			writeError(w, http.StatusForbidden, ErrCodeForbidden, "Internal application privilege required")
			return
		}
		next(w, r)
	})
}

func hasPrivilege(header, privilege string) bool {
	for _, p := range strings.Split(header, ",") {
		if strings.TrimSpace(p) == privilege {
			return true
		}
	}
	return false
}
