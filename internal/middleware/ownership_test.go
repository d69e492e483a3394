package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typedrill/internal/models"
	"typedrill/internal/repository"
	"typedrill/internal/reqctx"
)

type stubLoader struct {
	text *models.Text
	err  error
}

func (s *stubLoader) GetText(_ context.Context, _ int) (*models.Text, error) {
	return s.text, s.err
}

func guardedRouter(loader TextLoader, next http.HandlerFunc) *mux.Router {
	r := mux.NewRouter()
	sub := r.PathPrefix("/texts").Subrouter()
	sub.Use(TextOwnership(loader))
	sub.HandleFunc("/{id:[0-9]+}", next).Methods(http.MethodGet)
	return r
}

func asUser(r *http.Request, userID int) *http.Request {
	return r.WithContext(reqctx.WithUserID(r.Context(), userID))
}

func TestOwnershipUnauthenticated(t *testing.T) {
	router := guardedRouter(&stubLoader{text: &models.Text{ID: 1, OwnerID: 7}}, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/texts/1", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Authentication required. Please log in.")
}

func TestOwnershipUnauthenticatedBeforeExistence(t *testing.T) {
	// Missing text, missing auth: auth wins, nothing about existence leaks.
	router := guardedRouter(&stubLoader{err: repository.ErrNotFound}, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/texts/999", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestOwnershipTextNotFound(t *testing.T) {
	router := guardedRouter(&stubLoader{err: repository.ErrNotFound}, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := asUser(httptest.NewRequest(http.MethodGet, "/texts/999", nil), 7)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Text not found.")
}

func TestOwnershipDenied(t *testing.T) {
	router := guardedRouter(&stubLoader{text: &models.Text{ID: 1, OwnerID: 42}}, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := asUser(httptest.NewRequest(http.MethodGet, "/texts/1", nil), 7)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "Permission denied. You do not own this text.")
}

func TestOwnershipLookupFailure(t *testing.T) {
	router := guardedRouter(&stubLoader{err: errors.New("connection refused")}, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := asUser(httptest.NewRequest(http.MethodGet, "/texts/1", nil), 7)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestOwnershipAttachesText(t *testing.T) {
	want := &models.Text{ID: 5, OwnerID: 7, Title: "drill"}
	called := false

	router := guardedRouter(&stubLoader{text: want}, func(w http.ResponseWriter, r *http.Request) {
		called = true
		got, ok := TextFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, want, got)
		w.WriteHeader(http.StatusOK)
	})

	req := asUser(httptest.NewRequest(http.MethodGet, "/texts/5", nil), 7)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestOwnershipBrowserRedirects(t *testing.T) {
	router := guardedRouter(&stubLoader{text: &models.Text{ID: 1, OwnerID: 42}}, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := asUser(httptest.NewRequest(http.MethodGet, "/texts/1", nil), 7)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Contains(t, rr.Header().Get("Location"), "/texts?error=")
}
