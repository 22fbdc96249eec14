package mw

import (
	"context"
	"net/http"
	"strings"

	"commerce/storefront/internal/domain"

	log "github.com/sirupsen/logrus"
)

const sessionKey ctxKey = "auth_session"

type AuthDeps struct {
	Tokens    domain.TokenManager
	Blacklist domain.TokenBlacklist
}

func (d AuthDeps) session(r *http.Request) (domain.Session, bool) {
	raw := extractBearer(r.Header.Get("Authorization"))
	if raw == "" {
		return domain.Session{}, false
	}
	claims, err := d.Tokens.Parse(r.Context(), domain.Token(raw))
	if err != nil {
		return domain.Session{}, false
	}
	revoked, err := d.Blacklist.IsRevoked(r.Context(), claims.JTI)
	if err != nil {
		log.WithField("req_id", RequestIDFromCtx(r.Context())).Warnf("Token blacklist lookup failed: %v", err)
		return domain.Session{}, false
	}
	if revoked {
		return domain.Session{}, false
	}
	return domain.Session{
		UserID:    claims.UserID,
		UserName:  claims.UserName,
		JTI:       claims.JTI,
		ExpiresAt: claims.ExpiresAt,
	}, true
}

// OptionalAuth attaches the session when a valid token is present and lets anonymous requests through
func OptionalAuth(deps AuthDeps, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := deps.session(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, s)))
	})
}

func RequireAuth(deps AuthDeps, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := deps.session(r)
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"errors":["unauthorized"]}`))
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, s)))
	})
}

func SessionFromCtx(ctx context.Context) (domain.Session, bool) {
	s, ok := ctx.Value(sessionKey).(domain.Session)
	return s, ok
}

// WithSession is used by tests and internal callers that already authenticated the user
func WithSession(ctx context.Context, s domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func extractBearer(h string) string {
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
