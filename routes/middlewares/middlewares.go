package middlewares

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/oauth"

	"github.com/formdesk/formdesk/model"
)

type sessionKey struct{}

// Authenticated validates the bearer token and stores the caller's
// identity in the request context as a model.Session.
func Authenticated(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return chi.Chain(oauth.Authorize(secret, nil), session).Handler(next)
	}
}

func session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(oauth.ClaimsContext).(map[string]string)
		if !ok {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		s := model.Session{UserID: claims["user_id"], Email: claims["email"]}
		if s.UserID == "" {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, WithSession(r, s))
	})
}

// WithSession returns r with s attached to its context.
func WithSession(r *http.Request, s model.Session) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), sessionKey{}, s))
}

// SessionFrom returns the session stored by Authenticated.
func SessionFrom(r *http.Request) (model.Session, bool) {
	s, ok := r.Context().Value(sessionKey{}).(model.Session)
	return s, ok
}
