package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"typedrill/internal/logger"
	"typedrill/internal/models"
	"typedrill/internal/repository"
	"typedrill/internal/reqctx"
)

const (
	msgTextNotFound     = "Text not found."
	msgPermissionDenied = "Permission denied. You do not own this text."
)

// TextLoader fetches a text by id.
type TextLoader interface {
	GetText(ctx context.Context, id int) (*models.Text, error)
}

// TextOwnership guards every route carrying a {id} path variable. It
// loads the text once, verifies the caller owns it and attaches it to
// the context, so handlers never repeat the lookup or the check.
//
// Checks run in a fixed order: authentication, existence, ownership.
// An unauthenticated caller always gets 401 before any existence
// information leaks.
func TextOwnership(loader TextLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := reqctx.GetUserID(r.Context())
			if !ok {
				respondAuthError(w, r, http.StatusUnauthorized, msgAuthRequired)
				return
			}

			id, err := strconv.Atoi(mux.Vars(r)["id"])
			if err != nil || id <= 0 {
				respondGuardError(w, r, http.StatusNotFound, msgTextNotFound)
				return
			}

			text, err := loader.GetText(r.Context(), id)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					respondGuardError(w, r, http.StatusNotFound, msgTextNotFound)
					return
				}
				logger.WithCtx(r.Context()).Error("ownership guard: text lookup failed",
					zap.Int("text_id", id), zap.Error(err))
				respondGuardError(w, r, http.StatusInternalServerError, "Internal server error.")
				return
			}

			if text.OwnerID != userID {
				logger.WithCtx(r.Context()).Warn("ownership guard: denied",
					zap.Int("text_id", id), zap.Int("owner_id", text.OwnerID))
				respondGuardError(w, r, http.StatusForbidden, msgPermissionDenied)
				return
			}

			ctx := context.WithValue(r.Context(), ContextText, text)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
