package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"typedrill/internal/logger"
	"typedrill/internal/middleware"
	"typedrill/internal/models"
	"typedrill/internal/pdfextract"
	"typedrill/internal/reqctx"
	"typedrill/internal/services"
	"typedrill/internal/utils/helpers"
)

type TextHandler struct {
	textService *services.TextService
	maxUploadMB int64
}

func NewTextHandler(textService *services.TextService, maxUploadMB int64) *TextHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	return &TextHandler{textService: textService, maxUploadMB: maxUploadMB}
}

var errFileTooLarge = errors.New("File too large.")

type createTextRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID string `json:"category_id"`
}

type textResponse struct {
	Message string       `json:"message"`
	Text    *models.Text `json:"text"`
}

type progressRequest struct {
	ProgressIndex *int `json:"progress_index"`
}

type reorderRequest struct {
	Order []int `json:"order"`
}

// wantsHTML reports whether the caller is a browser form submission.
// Those get a redirect with the outcome in query parameters; API
// clients get JSON.
func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func redirectWithError(w http.ResponseWriter, r *http.Request, target, msg string) {
	http.Redirect(w, r, target+"?error="+url.QueryEscape(msg), http.StatusSeeOther)
}

// Create godoc
// @Summary Submit a new practice text
// @Description Accepts either pasted content or a PDF upload (multipart field "pdfFile"), never both.
// @Tags texts
// @Security ApiKeyAuth
// @Accept json
// @Accept mpfd
// @Produce json
// @Param input body createTextRequest false "Pasted text submission"
// @Success 201 {object} textResponse
// @Failure 400 {string} string "Validation error"
// @Failure 422 {string} string "Extraction failed"
// @Failure 500 {string} string "Persistence failed"
// @Router /texts [post]
func (h *TextHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := reqctx.GetUserID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Authentication required. Please log in.")
		return
	}

	input, err := h.parseSubmission(r)
	if err != nil {
		h.respondSubmitError(w, r, err)
		return
	}

	text, err := h.textService.Submit(r.Context(), userID, input)
	if err != nil {
		h.respondSubmitError(w, r, err)
		return
	}

	if wantsHTML(r) {
		target := "/texts?message=" + url.QueryEscape("Text added successfully!")
		if text.CategoryID != nil {
			target += "&category_id=" + strconv.Itoa(*text.CategoryID)
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	helpers.JSON(w, http.StatusCreated, textResponse{Message: "Text added successfully!", Text: text})
}

// parseSubmission reads either a multipart form (browser, possibly with
// a PDF in the "pdfFile" field) or a JSON body into one SubmitTextInput.
func (h *TextHandler) parseSubmission(r *http.Request) (services.SubmitTextInput, error) {
	var in services.SubmitTextInput

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(h.maxUploadMB << 20); err != nil {
			return in, services.ErrInvalidInput
		}
		in.Title = r.FormValue("title")
		in.Content = r.FormValue("content")
		in.CategoryID = r.FormValue("category_id")

		file, header, err := r.FormFile("pdfFile")
		if err == nil {
			defer file.Close()
			content, readErr := io.ReadAll(io.LimitReader(file, (h.maxUploadMB<<20)+1))
			if readErr != nil {
				return in, services.ErrInvalidInput
			}
			if int64(len(content)) > h.maxUploadMB<<20 {
				return in, fmt.Errorf("%w The limit is %d MB.", errFileTooLarge, h.maxUploadMB)
			}
			in.Upload = &models.Upload{
				Filename: header.Filename,
				MimeType: header.Header.Get("Content-Type"),
				Content:  content,
			}
		} else if err != http.ErrMissingFile {
			return in, services.ErrInvalidInput
		}
		return in, nil
	}

	var req createTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return in, services.ErrInvalidInput
	}
	in.Title = req.Title
	in.Content = req.Content
	in.CategoryID = req.CategoryID
	return in, nil
}

// respondSubmitError maps workflow errors onto statuses: validation and
// unsupported uploads are the client's fault, extraction trouble is
// 422, a missing tool or failed insert is on the server.
func (h *TextHandler) respondSubmitError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrEmptyTitle),
		errors.Is(err, services.ErrMissingContent),
		errors.Is(err, services.ErrConflictingContent),
		errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, pdfextract.ErrUnsupportedType):
		status = http.StatusBadRequest
	case errors.Is(err, errFileTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, pdfextract.ErrEmptyResult),
		errors.Is(err, pdfextract.ErrExtractionFailed):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, pdfextract.ErrToolNotFound),
		errors.Is(err, services.ErrSaveFailed):
		status = http.StatusInternalServerError
	}

	logger.WithCtx(r.Context()).Warn("text submission rejected", zap.Int("status", status), zap.Error(err))

	if wantsHTML(r) {
		redirectWithError(w, r, "/texts", err.Error())
		return
	}
	helpers.Error(w, status, err.Error())
}

// List godoc
// @Summary List the caller's texts in one category
// @Tags texts
// @Security ApiKeyAuth
// @Produce json
// @Param category_id query string false "Category id, or 'root'"
// @Success 200 {array} models.Text
// @Router /texts [get]
func (h *TextHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := reqctx.GetUserID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Authentication required. Please log in.")
		return
	}

	var categoryID *int
	if raw := r.URL.Query().Get("category_id"); raw != "" && raw != "root" {
		if id, err := strconv.Atoi(raw); err == nil && id > 0 {
			categoryID = &id
		}
	}

	texts, err := h.textService.List(r.Context(), userID, categoryID)
	if err != nil {
		helpers.Error(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if texts == nil {
		texts = []*models.Text{}
	}
	helpers.JSON(w, http.StatusOK, texts)
}

// Get godoc
// @Summary Fetch one owned text
// @Tags texts
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Text id"
// @Success 200 {object} models.Text
// @Failure 403 {string} string "Permission denied"
// @Failure 404 {string} string "Text not found"
// @Router /texts/{id} [get]
func (h *TextHandler) Get(w http.ResponseWriter, r *http.Request) {
	text, ok := middleware.TextFromContext(r.Context())
	if !ok {
		helpers.Error(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	helpers.JSON(w, http.StatusOK, text)
}

// Practice is Get's twin for the typing screen; kept separate so the
// routes mirror the UI's pages.
func (h *TextHandler) Practice(w http.ResponseWriter, r *http.Request) {
	text, ok := middleware.TextFromContext(r.Context())
	if !ok {
		helpers.Error(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	helpers.JSON(w, http.StatusOK, text)
}

// Update godoc
// @Summary Edit an owned text
// @Tags texts
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "Text id"
// @Param input body createTextRequest true "New title, content and category"
// @Success 200 {object} textResponse
// @Failure 400 {string} string "Validation error"
// @Router /texts/{id} [put]
func (h *TextHandler) Update(w http.ResponseWriter, r *http.Request) {
	text, ok := middleware.TextFromContext(r.Context())
	if !ok {
		helpers.Error(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	var req createTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Invalid data format.")
		return
	}

	err := h.textService.Update(r.Context(), text, services.UpdateTextInput{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		helpers.Error(w, status, err.Error())
		return
	}

	helpers.JSON(w, http.StatusOK, textResponse{Message: "Text updated successfully.", Text: text})
}

// Delete godoc
// @Summary Delete an owned text
// @Tags texts
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Text id"
// @Success 200 {string} string "Deleted"
// @Router /texts/{id} [delete]
func (h *TextHandler) Delete(w http.ResponseWriter, r *http.Request) {
	text, ok := middleware.TextFromContext(r.Context())
	if !ok {
		helpers.Error(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	categoryID, err := h.textService.Delete(r.Context(), text)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyRemoved) {
			if wantsHTML(r) {
				redirectWithError(w, r, "/texts", err.Error())
				return
			}
			helpers.Error(w, http.StatusNotFound, err.Error())
			return
		}
		helpers.Error(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	if wantsHTML(r) {
		target := "/texts?message=" + url.QueryEscape("Text deleted successfully.")
		if categoryID != nil {
			target += "&category_id=" + strconv.Itoa(*categoryID)
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	helpers.JSON(w, http.StatusOK, "Text deleted successfully.")
}

// SaveProgress godoc
// @Summary Save the typing position for an owned text
// @Tags texts
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "Text id"
// @Param input body progressRequest true "New progress index"
// @Success 200 {object} map[string]int
// @Failure 400 {string} string "Invalid data format"
// @Router /texts/{id}/progress [put]
func (h *TextHandler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	text, ok := middleware.TextFromContext(r.Context())
	if !ok {
		helpers.Error(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProgressIndex == nil {
		helpers.Error(w, http.StatusBadRequest, "Invalid data format.")
		return
	}

	saved, err := h.textService.SaveProgress(r.Context(), text, *req.ProgressIndex)
	if err != nil {
		helpers.Error(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	helpers.JSON(w, http.StatusOK, map[string]int{"progress_index": saved})
}

// Reorder godoc
// @Summary Apply a manual ordering of the caller's texts
// @Tags texts
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body reorderRequest true "Text ids in the desired order"
// @Success 200 {string} string "Reordered"
// @Failure 400 {string} string "Invalid data format"
// @Router /texts/order [post]
func (h *TextHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	userID, ok := reqctx.GetUserID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Authentication required. Please log in.")
		return
	}

	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Invalid data format.")
		return
	}

	if err := h.textService.Reorder(r.Context(), userID, req.Order); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		helpers.Error(w, status, err.Error())
		return
	}
	helpers.JSON(w, http.StatusOK, "Order saved.")
}
