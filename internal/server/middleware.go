package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

type contextKey int

const (
	userIDKey contextKey = iota
	userInfoKey
)

// UserInfo is the authenticated identity attached to each request.
type UserInfo struct {
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
}

// APIKeyAuth returns middleware that validates the X-API-Key header.
func APIKeyAuth(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-API-Key")
			if key == "" {
				http.Error(w, `{"error":"missing API key"}`, http.StatusUnauthorized)
				return
			}
			if key != apiKey {
				http.Error(w, `{"error":"invalid API key"}`, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogging returns middleware that logs each request.
func RequestLogging(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration", time.Since(start).String(),
			)
		})
	}
}

// CORS adds permissive CORS headers for local development.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// DevIdentity assigns the fixed local development identity to every
// request, enabling local use without Tailscale.
func DevIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(devContext(r.Context())))
	})
}

func devContext(ctx context.Context) context.Context {
	ctx = context.WithValue(ctx, userIDKey, 1)
	return context.WithValue(ctx, userInfoKey, UserInfo{Login: "local", DisplayName: "Local Dev User"})
}

// identity resolves the request's user. With a tsnet local client set it
// performs a WhoIs lookup and maps the tailnet login onto a user row;
// otherwise every request runs as the dev user.
func (s *Server) identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.lc == nil {
			next.ServeHTTP(w, r.WithContext(devContext(r.Context())))
			return
		}

		who, err := s.lc.WhoIs(r.Context(), r.RemoteAddr)
		if err != nil || who.UserProfile == nil {
			s.log.Warn("tailscale whois failed", "remote", r.RemoteAddr, "error", err)
			http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			return
		}

		login := who.UserProfile.LoginName
		displayName := who.UserProfile.DisplayName
		uid, err := s.users.GetOrCreateUser(r.Context(), login, displayName)
		if err != nil {
			s.log.Error("resolving user", "login", login, "error", err)
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, uid)
		ctx = context.WithValue(ctx, userInfoKey, UserInfo{Login: login, DisplayName: displayName})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userIDFromContext(r *http.Request) int {
	if id, ok := r.Context().Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

func userInfoFromContext(r *http.Request) UserInfo {
	if info, ok := r.Context().Value(userInfoKey).(UserInfo); ok {
		return info
	}
	return UserInfo{Login: "local", DisplayName: "Local Dev User"}
}

// statusWriter wraps ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
