package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const AdminSubjectKey contextKey = "adminSubject"

const adminSubject = "admin"

// Middleware wraps a handler func.
type Middleware func(http.HandlerFunc) http.HandlerFunc

// IssueAdminToken signs an HS256 admin token valid for ttl.
func IssueAdminToken(secret []byte, ttl time.Duration) (string, time.Time, error) {
	if len(secret) == 0 {
		return "", time.Time{}, errors.New("admin token secret is not configured")
	}
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   adminSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign admin token: %w", err)
	}
	return signed, expiresAt, nil
}

// IsAdmin reports whether the request passed AdminMiddleware.
func IsAdmin(r *http.Request) bool {
	subject, ok := r.Context().Value(AdminSubjectKey).(string)
	return ok && subject == adminSubject
}

// AdminMiddleware rejects requests without a valid admin bearer token.
// With an empty secret every request is rejected.
func AdminMiddleware(secret []byte) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if len(secret) == 0 {
				RespondError(w, http.StatusUnauthorized, "Admin access is not configured")
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				RespondError(w, http.StatusUnauthorized, "Authorization header required")
				return
			}

			tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

			claims := &jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
				}
				return secret, nil
			})

			if err != nil || !token.Valid || claims.Subject != adminSubject {
				RespondError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), AdminSubjectKey, claims.Subject)
			next(w, r.WithContext(ctx))
		}
	}
}
