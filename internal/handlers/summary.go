package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"typedrill/internal/logger"
	"typedrill/internal/middleware"
	"typedrill/internal/services"
	"typedrill/internal/utils/helpers"
)

type SummaryHandler struct {
	summaryService *services.SummaryService
}

func NewSummaryHandler(summaryService *services.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

type summaryResponse struct {
	Message      string `json:"message"`
	NewTextID    int    `json:"new_text_id"`
	NewTextTitle string `json:"new_text_title"`
}

// Summarize godoc
// @Summary Generate an AI summary of an owned text
// @Description The summary is saved as a new text in the same category.
// @Tags texts
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Text id"
// @Success 201 {object} summaryResponse
// @Failure 400 {string} string "Source text is empty"
// @Failure 502 {string} string "AI service error"
// @Failure 503 {string} string "AI service not configured"
// @Router /texts/{id}/summarize [post]
func (h *SummaryHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	text, ok := middleware.TextFromContext(r.Context())
	if !ok {
		helpers.Error(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	summary, err := h.summaryService.Summarize(r.Context(), text)
	if err != nil {
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, services.ErrSummaryDisabled):
			status = http.StatusServiceUnavailable
		case errors.Is(err, services.ErrSummaryEmptySource):
			status = http.StatusBadRequest
		case errors.Is(err, services.ErrSaveFailed):
			status = http.StatusInternalServerError
		}
		logger.WithCtx(r.Context()).Warn("summarize failed", zap.Int("text_id", text.ID), zap.Error(err))
		helpers.Error(w, status, err.Error())
		return
	}

	helpers.JSON(w, http.StatusCreated, summaryResponse{
		Message:      "Summary created successfully.",
		NewTextID:    summary.ID,
		NewTextTitle: summary.Title,
	})
}
