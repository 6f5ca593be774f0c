package api

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"log/slog"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/jobport/jobport/internal/models"
	"github.com/jobport/jobport/internal/session"
)

type ctxKey string

const (
	// CtxUser holds the signed-in *models.User.
	CtxUser ctxKey = "user"
	// CtxSessionID holds the session id from the token.
	CtxSessionID ctxKey = "session_id"
	// CtxSession holds the session.Store cell for the request's session.
	CtxSession ctxKey = "session"
)

// package-level logger used by middleware and helpers; can be set via SetLogger from caller
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger installs a logger for the api package. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote", r.RemoteAddr),
		)
		next.ServeHTTP(w, r)
	})
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic", slog.Any("err", err))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// SessionAuthMiddleware validates the bearer token and resolves the
// session it names. A request without a live signed-in session never
// reaches a protected handler; this is the navigation guard standing
// in for the sign-in redirect.
func SessionAuthMiddleware(secret string, sessions *session.Registry) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Missing Authorization header", http.StatusUnauthorized)
				return
			}

			var tokenString string
			if _, err := fmt.Sscanf(authHeader, "Bearer %s", &tokenString); err != nil {
				logger.Error("failed to parse Authorization header", slog.Any("err", err))
			}
			if tokenString == "" {
				http.Error(w, "Invalid Authorization header", http.StatusUnauthorized)
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}

				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				http.Error(w, "Invalid token claims", http.StatusUnauthorized)
				return
			}
			sid, _ := claims["sid"].(string)
			if sid == "" {
				http.Error(w, "Invalid token claims", http.StatusUnauthorized)
				return
			}

			cell, ok := sessions.Cell(sid)
			if !ok {
				// signed out or never signed in
				http.Error(w, "Not authenticated", http.StatusUnauthorized)
				return
			}
			user, err := cell.Get(r.Context())
			if err != nil || user == nil {
				http.Error(w, "Not authenticated", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), CtxUser, user)
			ctx = context.WithValue(ctx, CtxSessionID, sid)
			ctx = context.WithValue(ctx, CtxSession, cell)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// userFromContext returns the signed-in user attached by the auth
// middleware.
func userFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(CtxUser).(*models.User)
	return u, ok
}

func sessionFromContext(ctx context.Context) (session.Store, bool) {
	s, ok := ctx.Value(CtxSession).(session.Store)
	return s, ok
}
