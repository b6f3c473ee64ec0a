package auth

// Terminology: User Identifiers
//   - UserID / userID / user_id: The MongoDB ObjectID (_id) that uniquely identifies a user record
//   - LoginID / loginID / login_id: The human-readable string users type to log in

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/mutuhub/internal/app/system/authz"
	"github.com/dalemusser/mutuhub/internal/app/system/respond"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	userIDKey   = "user_id"
	loggedInKey = "logged_in_at"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helper                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionUser is the signed-in user injected into r.Context(). Its
// capabilities are resolved once, when the request's user is loaded.
type SessionUser struct {
	ID          string
	Name        string
	LoginID     string
	Role        string
	UnitID      string
	Permissions []string

	Caps authz.Capabilities
}

// HasRole implements authz.Principal.
func (u *SessionUser) HasRole(name string) bool { return u != nil && u.Caps.HasRole(name) }

// Can implements authz.Principal.
func (u *SessionUser) Can(p authz.Permission) bool { return u != nil && u.Caps.Can(p) }

// UserFetcher loads fresh user data on every request so role changes and
// disabled accounts take effect immediately. A nil result means the
// session no longer maps to an active user.
type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) *SessionUser
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user and a found flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok && u != nil
}

// CurrentPrincipal returns the request's principal. Visitors get an empty
// Capabilities value that can do nothing.
func CurrentPrincipal(r *http.Request) authz.Principal {
	if u, ok := CurrentUser(r); ok {
		return u
	}
	return authz.Capabilities{}
}

// Can reports whether the request's principal holds p.
func Can(r *http.Request, p authz.Permission) bool {
	return CurrentPrincipal(r).Can(p)
}

// WithTestUser injects u into the request context, resolving its
// capabilities from Role and Permissions when they are not set yet.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	if u != nil && u.Caps.Role() == "" {
		u.Caps = authz.Resolve(u.Role, u.Permissions)
	}
	return withUser(r, u)
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

/*─────────────────────────────────────────────────────────────────────────────*
| Session manager                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionManager owns the cookie store and the auth middleware.
type SessionManager struct {
	store   *sessions.CookieStore
	name    string
	fetcher UserFetcher
	log     *zap.Logger
}

// NewSessionManager builds a cookie-backed session manager.
//
// In production (secure=true) cookies are Secure + SameSite=None; in local
// dev over http://localhost they are SameSite=Lax so browsers accept them.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended", zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = "mutuhub-session"
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if secure {
		store.Options.SameSite = http.SameSiteNoneMode
	}
	if maxAge > 0 {
		store.MaxAge(int(maxAge.Seconds()))
	}

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// SetUserFetcher enables per-request user refresh.
func (sm *SessionManager) SetUserFetcher(f UserFetcher) { sm.fetcher = f }

// Login records userID in the session cookie.
func (sm *SessionManager) Login(w http.ResponseWriter, r *http.Request, userID string) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values[userIDKey] = userID
	sess.Values[loggedInKey] = time.Now().UTC().Unix()
	return sess.Save(r, w)
}

// Logout expires the session cookie.
func (sm *SessionManager) Logout(w http.ResponseWriter, r *http.Request) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// LoadSessionUser injects the signed-in user (with resolved capabilities)
// into the request context. Requests without a valid session pass through
// untouched.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.store.Get(r, sm.name)
		if err != nil {
			var scErr securecookie.Error
			if errors.As(err, &scErr) && scErr.IsDecode() {
				sm.log.Debug("ignoring undecodable session cookie", zap.Error(err))
			}
			next.ServeHTTP(w, r)
			return
		}

		userID, _ := sess.Values[userIDKey].(string)
		if userID == "" || sm.fetcher == nil {
			next.ServeHTTP(w, r)
			return
		}

		u := sm.fetcher.FetchUser(r.Context(), userID)
		if u == nil {
			next.ServeHTTP(w, r)
			return
		}
		u.Caps = authz.Resolve(u.Role, u.Permissions)
		next.ServeHTTP(w, withUser(r, u))
	})
}

// RequireSignedIn answers 401 when no user is in context.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			respond.Unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole answers 401 without a user and 403 when the user holds none
// of the allowed roles.
func (sm *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				respond.Unauthorized(w)
				return
			}
			for _, role := range allowed {
				if u.HasRole(strings.TrimSpace(role)) {
					next.ServeHTTP(w, r)
					return
				}
			}
			sm.log.Debug("role check failed", zap.String("user_id", u.ID), zap.String("role", u.Role))
			respond.Forbidden(w)
		})
	}
}

// RequireCan answers 401 without a user and 403 unless the user holds
// every listed permission. The check runs before the handler touches any
// data, so a denied request never becomes a validation or not-found error.
func (sm *SessionManager) RequireCan(perms ...authz.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				respond.Unauthorized(w)
				return
			}
			for _, p := range perms {
				if !u.Can(p) {
					sm.log.Debug("capability check failed",
						zap.String("user_id", u.ID),
						zap.String("permission", string(p)))
					respond.Forbidden(w)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
