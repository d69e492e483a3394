package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"typedrill/internal/logger"
	"typedrill/internal/models"
)

var (
	ErrSummaryDisabled    = errors.New("AI Service is not configured or unavailable. Missing API Key.")
	ErrSummaryEmptySource = errors.New("Cannot summarize empty text.")
	ErrSummaryEmptyReply  = errors.New("AI service returned an empty summary.")
)

const summaryPrompt = "Detect the language of the following text and provide a detailed summary (in that same language):\n\n---\n%s\n---"

// SummaryService generates an AI summary of a text and stores it as a
// new text next to the original, so it becomes typing material too.
type SummaryService struct {
	client *openai.Client
	model  string
	texts  TextRepo
}

// NewSummaryService builds the service. An empty apiKey leaves the
// client nil and every summarize call answers ErrSummaryDisabled.
func NewSummaryService(apiKey, model string, texts TextRepo) *SummaryService {
	var client *openai.Client
	if apiKey != "" {
		client = openai.NewClient(apiKey)
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &SummaryService{client: client, model: model, texts: texts}
}

// Summarize asks the model for a summary of the given owned text and
// persists it as "Summary of: <title>" in the same category.
func (s *SummaryService) Summarize(ctx context.Context, text *models.Text) (*models.Text, error) {
	if s.client == nil {
		return nil, ErrSummaryDisabled
	}
	if strings.TrimSpace(text.Content) == "" {
		return nil, ErrSummaryEmptySource
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(summaryPrompt, text.Content),
			},
		},
	})
	if err != nil {
		logger.WithCtx(ctx).Error("summary completion failed (service)",
			zap.Int("text_id", text.ID), zap.Error(err))
		return nil, err
	}

	var summary string
	if len(resp.Choices) > 0 {
		summary = strings.TrimSpace(resp.Choices[0].Message.Content)
	}
	if summary == "" {
		return nil, ErrSummaryEmptyReply
	}

	out := &models.Text{
		OwnerID:    text.OwnerID,
		Title:      "Summary of: " + text.Title,
		Content:    summary,
		CategoryID: text.CategoryID,
	}

	id, err := s.texts.AddText(ctx, out)
	if err != nil || id <= 0 {
		logger.WithCtx(ctx).Error("summary persistence failed (service)", zap.Error(err))
		return nil, ErrSaveFailed
	}
	out.ID = id

	logger.WithCtx(ctx).Info("summary created (service)",
		zap.Int("source_text_id", text.ID), zap.Int("summary_text_id", id))
	return out, nil
}
