package middleware

import (
	"net/http"

	goPermit "github.com/MrEthical07/goPermit"
	"github.com/MrEthical07/goPermit/bind"
)

// RestrictedHeader is set on 403 responses when the denial was caused by a
// restriction overriding a grant. Its value is the restriction reason,
// "direct" or "sector".
const RestrictedHeader = "X-Permission-Restricted"

// Require gates next on all of perms being allowed for the store attached to
// the request context.
func Require(perms ...goPermit.Permission) func(http.Handler) http.Handler {
	return guard(goPermit.ModeAll, perms)
}

// RequireAny gates next on at least one of perms being allowed.
func RequireAny(perms ...goPermit.Permission) func(http.Handler) http.Handler {
	return guard(goPermit.ModeAny, perms)
}

func guard(mode goPermit.Mode, perms []goPermit.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store, ok := bind.FromContext(r.Context())
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if !store.CanMode(mode, perms...) {
				reject(w, store, perms)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole gates next on raw membership of role. Role possession ignores
// restrictions, matching the resolver's role-query semantics.
func RequireRole(role goPermit.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store, ok := bind.FromContext(r.Context())
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if !store.HasRole(role) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// reject answers 403 and, when a granted permission was policy-blocked,
// names the restriction reason in [RestrictedHeader].
func reject(w http.ResponseWriter, store *bind.Store, perms []goPermit.Permission) {
	for _, p := range perms {
		if !store.HasPermission(p) && store.Granted(p) {
			w.Header().Set(RestrictedHeader, store.RestrictionReason(p).String())
			break
		}
	}
	http.Error(w, "forbidden", http.StatusForbidden)
}

// Counters serves the store's counters in Prometheus text exposition
// format. The store is fixed at wiring time, not taken from the request.
func Counters(store *bind.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		_ = store.Counters().WriteText(w)
	})
}
