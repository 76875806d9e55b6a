package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type userIDKey struct{}

// WithUserID returns a copy of ctx carrying the authenticated user's ID.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserID returns the authenticated user's ID placed in ctx by NewAuthHandler.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	return id, ok
}

// NewAuthHandler returns a middleware that requires an HS256-signed bearer
// token whose subject claim is the caller's user UUID. Tokens are issued by
// the hosted identity provider; this service only verifies them.
func NewAuthHandler(secret []byte) func(http.Handler) http.Handler {
	keyFunc := func(_ *jwt.Token) (any, error) { return secret, nil }

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r.Header.Get("Authorization"))
			if raw == "" {
				writeUnauthorized(w, "missing bearer token")
				return
			}

			var claims jwt.RegisteredClaims
			token, err := jwt.ParseWithClaims(raw, &claims, keyFunc,
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
				jwt.WithExpirationRequired(),
			)
			if err != nil || !token.Valid {
				writeUnauthorized(w, tokenErrorMessage(err))
				return
			}

			id, err := uuid.Parse(claims.Subject)
			if err != nil {
				writeUnauthorized(w, "token subject is not a user id")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
		})
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func tokenErrorMessage(err error) string {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return "token expired"
	}
	return "invalid token"
}

// writeUnauthorized writes the API's standard error body with a 401.
func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="roamwyth"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": "unauthorized", "message": message},
	})
}
