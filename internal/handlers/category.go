package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"typedrill/internal/models"
	"typedrill/internal/reqctx"
	"typedrill/internal/services"
	"typedrill/internal/utils/helpers"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

type createCategoryRequest struct {
	Name     string `json:"name"`
	ParentID string `json:"parent_id"`
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body createCategoryRequest true "Name and optional parent"
// @Success 201 {object} models.Category
// @Failure 400 {string} string "Validation error"
// @Router /categories [post]
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := reqctx.GetUserID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Authentication required. Please log in.")
		return
	}

	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Invalid data format.")
		return
	}

	cat, err := h.categoryService.Create(r.Context(), userID, req.Name, req.ParentID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		helpers.Error(w, status, err.Error())
		return
	}
	helpers.JSON(w, http.StatusCreated, cat)
}

// List godoc
// @Summary List categories
// @Description Direct children of parent_id by default; ?flat=true returns the whole tree with paths.
// @Tags categories
// @Security ApiKeyAuth
// @Produce json
// @Param parent_id query string false "Parent category id, or 'root'"
// @Param flat query bool false "Return the full tree as a flat path-ordered list"
// @Success 200 {array} models.Category
// @Router /categories [get]
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := reqctx.GetUserID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Authentication required. Please log in.")
		return
	}

	if r.URL.Query().Get("flat") == "true" {
		flat, err := h.categoryService.ListFlat(r.Context(), userID)
		if err != nil {
			helpers.Error(w, http.StatusInternalServerError, "Internal server error.")
			return
		}
		if flat == nil {
			flat = []*models.CategoryPath{}
		}
		helpers.JSON(w, http.StatusOK, flat)
		return
	}

	var parentID *int
	if raw := r.URL.Query().Get("parent_id"); raw != "" && raw != "root" {
		if id, err := strconv.Atoi(raw); err == nil && id > 0 {
			parentID = &id
		}
	}

	cats, err := h.categoryService.List(r.Context(), userID, parentID)
	if err != nil {
		helpers.Error(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if cats == nil {
		cats = []*models.Category{}
	}
	helpers.JSON(w, http.StatusOK, cats)
}

// Delete godoc
// @Summary Delete a category, reparenting its contents
// @Tags categories
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Category id"
// @Success 200 {string} string "Deleted"
// @Failure 404 {string} string "Category not found"
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := reqctx.GetUserID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Authentication required. Please log in.")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		helpers.Error(w, http.StatusNotFound, services.ErrCategoryNotFound.Error())
		return
	}

	if err := h.categoryService.Delete(r.Context(), userID, id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrCategoryNotFound) {
			status = http.StatusNotFound
		}
		helpers.Error(w, status, err.Error())
		return
	}
	helpers.JSON(w, http.StatusOK, "Category deleted.")
}
