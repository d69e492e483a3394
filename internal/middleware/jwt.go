package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"typedrill/internal/logger"
	"typedrill/internal/reqctx"
)

const msgAuthRequired = "Authentication required. Please log in."

// JWTAuth validates the Bearer access token and puts user_id, username
// and role on the request context.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				logger.WithCtx(r.Context()).Warn("JWTAuth: missing access token")
				respondAuthError(w, r, http.StatusUnauthorized, msgAuthRequired)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				logger.WithCtx(r.Context()).Warn("JWTAuth: invalid or expired token", zap.Error(err))
				respondAuthError(w, r, http.StatusUnauthorized, msgAuthRequired)
				return
			}

			userID, ok1 := claims["user_id"].(float64)
			role, ok2 := claims["role"].(string)
			if !ok1 || !ok2 {
				logger.WithCtx(r.Context()).Warn("JWTAuth: malformed payload", zap.Any("claims", claims))
				respondAuthError(w, r, http.StatusUnauthorized, msgAuthRequired)
				return
			}

			ctx := reqctx.WithUserID(r.Context(), int(userID))
			if username, ok := claims["username"].(string); ok {
				ctx = reqctx.WithUsername(ctx, username)
			}
			ctx = context.WithValue(ctx, ContextRole, role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
