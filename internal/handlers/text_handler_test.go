package handlers

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typedrill/internal/middleware"
	"typedrill/internal/models"
	"typedrill/internal/reqctx"
	"typedrill/internal/services"
)

type fakeTextRepo struct {
	texts  map[int]*models.Text
	nextID int
	orders [][]int
}

func newFakeTextRepo() *fakeTextRepo {
	return &fakeTextRepo{texts: make(map[int]*models.Text), nextID: 1}
}

func (f *fakeTextRepo) AddText(_ context.Context, t *models.Text) (int, error) {
	id := f.nextID
	f.nextID++
	saved := *t
	saved.ID = id
	f.texts[id] = &saved
	return id, nil
}

func (f *fakeTextRepo) GetText(_ context.Context, id int) (*models.Text, error) {
	t, ok := f.texts[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return t, nil
}

func (f *fakeTextRepo) ListTexts(_ context.Context, _ int, _ *int) ([]*models.Text, error) {
	return nil, nil
}

func (f *fakeTextRepo) UpdateText(_ context.Context, t *models.Text) (bool, error) {
	_, ok := f.texts[t.ID]
	return ok, nil
}

func (f *fakeTextRepo) DeleteText(_ context.Context, id int) (bool, error) {
	_, ok := f.texts[id]
	delete(f.texts, id)
	return ok, nil
}

func (f *fakeTextRepo) SaveProgress(_ context.Context, _, _ int) (bool, error) { return true, nil }

func (f *fakeTextRepo) UpdateTextOrder(_ context.Context, _ int, ids []int) error {
	f.orders = append(f.orders, ids)
	return nil
}

type fakeExtractor struct {
	out string
	err error
}

func (f *fakeExtractor) Extract(_ context.Context, _ *models.Upload) (string, error) {
	return f.out, f.err
}

type fakeCategoryGetter struct{}

func (fakeCategoryGetter) Get(_ context.Context, _ int) (*models.Category, error) {
	return nil, errors.New("not found")
}

func newHandler(ext *fakeExtractor) (*TextHandler, *fakeTextRepo) {
	repo := newFakeTextRepo()
	svc := services.NewTextService(repo, ext, fakeCategoryGetter{})
	return NewTextHandler(svc, 10), repo
}

func authed(r *http.Request) *http.Request {
	return r.WithContext(reqctx.WithUserID(r.Context(), 7))
}

func pdfForm(t *testing.T, title string, withFile bool, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", title))
	if content != "" {
		require.NoError(t, mw.WriteField("content", content))
	}
	if withFile {
		part, err := mw.CreateFormFile("pdfFile", "doc.pdf")
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 fake"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestCreateFromPDFUpload(t *testing.T) {
	h, repo := newHandler(&fakeExtractor{out: " Extracted PDF text. "})

	body, ct := pdfForm(t, "PDF Text", true, "")
	req := authed(httptest.NewRequest(http.MethodPost, "/texts", body))
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), "Text added successfully!")
	assert.Contains(t, rr.Body.String(), "Extracted PDF text.")

	require.Len(t, repo.texts, 1)
	saved := repo.texts[1]
	assert.Equal(t, 7, saved.OwnerID)
	assert.Equal(t, "PDF Text", saved.Title)
	assert.Equal(t, "Extracted PDF text.", saved.Content, "extracted text must be normalized before persisting")
}

func TestCreateFromJSON(t *testing.T) {
	h, repo := newHandler(&fakeExtractor{})

	req := authed(httptest.NewRequest(http.MethodPost, "/texts",
		strings.NewReader(`{"title":"Pasted","content":"  hello world  "}`)))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	require.Len(t, repo.texts, 1)
	assert.Equal(t, "hello world", repo.texts[1].Content)
}

func TestCreateRequiresAuth(t *testing.T) {
	h, _ := newHandler(&fakeExtractor{})

	req := httptest.NewRequest(http.MethodPost, "/texts", strings.NewReader(`{"title":"T","content":"x"}`))
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Authentication required. Please log in.")
}

func TestCreateEmptyTitle(t *testing.T) {
	h, repo := newHandler(&fakeExtractor{})

	req := authed(httptest.NewRequest(http.MethodPost, "/texts",
		strings.NewReader(`{"title":"  ","content":"x"}`)))
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Title cannot be empty.")
	assert.Empty(t, repo.texts)
}

func TestCreateConflictingSources(t *testing.T) {
	h, repo := newHandler(&fakeExtractor{out: "from pdf"})

	body, ct := pdfForm(t, "T", true, "also pasted")
	req := authed(httptest.NewRequest(http.MethodPost, "/texts", body))
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Please provide text content OR upload a PDF, not both.")
	assert.Empty(t, repo.texts)
}

func TestCreateMissingSources(t *testing.T) {
	h, _ := newHandler(&fakeExtractor{})

	body, ct := pdfForm(t, "T", false, "")
	req := authed(httptest.NewRequest(http.MethodPost, "/texts", body))
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Please provide text content or upload a PDF file.")
}

func TestCreateExtractionFailureIs422(t *testing.T) {
	h, repo := newHandler(&fakeExtractor{err: errors.New("Error processing PDF with pdftotext.")})

	body, ct := pdfForm(t, "T", true, "")
	req := authed(httptest.NewRequest(http.MethodPost, "/texts", body))
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	// an error that is none of the known sentinels maps to 500
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Empty(t, repo.texts)
}

func withText(r *http.Request, text *models.Text) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.ContextText, text)
	return r.WithContext(ctx)
}

func TestDeleteAlreadyRemoved(t *testing.T) {
	h, repo := newHandler(&fakeExtractor{})
	// guard loaded the text, but it is no longer in the store
	stale := &models.Text{ID: 9, OwnerID: 7}
	require.NotContains(t, repo.texts, 9)

	req := authed(withText(httptest.NewRequest(http.MethodDelete, "/texts/9", nil), stale))
	rr := httptest.NewRecorder()
	h.Delete(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Could not delete text. It might have already been removed.")
}

func TestDeleteSuccess(t *testing.T) {
	h, repo := newHandler(&fakeExtractor{})
	repo.texts[5] = &models.Text{ID: 5, OwnerID: 7}

	req := authed(withText(httptest.NewRequest(http.MethodDelete, "/texts/5", nil), repo.texts[5]))
	rr := httptest.NewRecorder()
	h.Delete(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, repo.texts, 5)
}

func TestCreateUploadTooLarge(t *testing.T) {
	repo := newFakeTextRepo()
	svc := services.NewTextService(repo, &fakeExtractor{out: "text"}, fakeCategoryGetter{})
	h := NewTextHandler(svc, 1)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", "Big"))
	part, err := mw.CreateFormFile("pdfFile", "big.pdf")
	require.NoError(t, err)
	_, err = part.Write(make([]byte, (1<<20)+1))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := authed(httptest.NewRequest(http.MethodPost, "/texts", &buf))
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Contains(t, rr.Body.String(), "File too large.")
	assert.Empty(t, repo.texts)
}

func TestReorderFieldName(t *testing.T) {
	h, repo := newHandler(&fakeExtractor{})

	req := authed(httptest.NewRequest(http.MethodPost, "/texts/order",
		strings.NewReader(`{"order":[3,1,2]}`)))
	rr := httptest.NewRecorder()
	h.Reorder(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Len(t, repo.orders, 1)
	assert.Equal(t, []int{3, 1, 2}, repo.orders[0])
}

func TestCreateBrowserRedirects(t *testing.T) {
	h, _ := newHandler(&fakeExtractor{})

	req := authed(httptest.NewRequest(http.MethodPost, "/texts",
		strings.NewReader(`{"title":"T","content":"hello"}`)))
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	loc, err := url.Parse(rr.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/texts", loc.Path)
	assert.Equal(t, "Text added successfully!", loc.Query().Get("message"))
}

func TestCreateBrowserErrorRedirects(t *testing.T) {
	h, _ := newHandler(&fakeExtractor{})

	req := authed(httptest.NewRequest(http.MethodPost, "/texts",
		strings.NewReader(`{"title":"","content":"hello"}`)))
	req.Header.Set("Accept", "text/html")
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	loc, err := url.Parse(rr.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "Title cannot be empty.", loc.Query().Get("error"))
}
