package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"typedrill/internal/logger"
	"typedrill/internal/models"
	"typedrill/internal/textproc"
)

// Error messages are user-facing; handlers surface them verbatim.
var (
	ErrEmptyTitle         = errors.New("Title cannot be empty.")
	ErrMissingContent     = errors.New("Please provide text content or upload a PDF file.")
	ErrConflictingContent = errors.New("Please provide text content OR upload a PDF, not both.")
	ErrSaveFailed         = errors.New("Failed to save text to the database. Please try again.")
	ErrInvalidInput       = errors.New("Invalid data format.")
	ErrAlreadyRemoved     = errors.New("Could not delete text. It might have already been removed.")
)

type TextRepo interface {
	AddText(ctx context.Context, t *models.Text) (int, error)
	GetText(ctx context.Context, id int) (*models.Text, error)
	ListTexts(ctx context.Context, ownerID int, categoryID *int) ([]*models.Text, error)
	UpdateText(ctx context.Context, t *models.Text) (bool, error)
	DeleteText(ctx context.Context, id int) (bool, error)
	SaveProgress(ctx context.Context, id, progressIndex int) (bool, error)
	UpdateTextOrder(ctx context.Context, ownerID int, orderedIDs []int) error
}

// PdfExtractor turns an uploaded PDF into raw text.
type PdfExtractor interface {
	Extract(ctx context.Context, up *models.Upload) (string, error)
}

// CategoryGetter is the slice of the category repository the text
// service needs for ownership fallback.
type CategoryGetter interface {
	Get(ctx context.Context, id int) (*models.Category, error)
}

type TextService struct {
	repo       TextRepo
	extractor  PdfExtractor
	categories CategoryGetter
}

func NewTextService(repo TextRepo, extractor PdfExtractor, categories CategoryGetter) *TextService {
	return &TextService{repo: repo, extractor: extractor, categories: categories}
}

// SubmitTextInput carries one submission: pasted content or an uploaded
// PDF, never both. CategoryID arrives as the raw form value.
type SubmitTextInput struct {
	Title      string
	Content    string
	Upload     *models.Upload
	CategoryID string
}

// Submit runs the full submission workflow: validate, resolve the
// category, extract if a PDF was uploaded, normalize, persist. The
// returned text carries the id assigned by the database.
func (s *TextService) Submit(ctx context.Context, ownerID int, in SubmitTextInput) (*models.Text, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	hasContent := strings.TrimSpace(in.Content) != ""
	hasUpload := in.Upload != nil && len(in.Upload.Content) > 0
	if !hasContent && !hasUpload {
		return nil, ErrMissingContent
	}
	if hasContent && hasUpload {
		return nil, ErrConflictingContent
	}

	categoryID := s.resolveCategoryID(ctx, ownerID, in.CategoryID)

	var body string
	if hasUpload {
		raw, err := s.extractor.Extract(ctx, in.Upload)
		if err != nil {
			return nil, err
		}
		body = textproc.Clean(raw)
	} else {
		body = textproc.Clean(in.Content)
	}
	if body == "" {
		return nil, ErrMissingContent
	}

	text := &models.Text{
		OwnerID:    ownerID,
		Title:      title,
		Content:    body,
		CategoryID: categoryID,
	}

	id, err := s.repo.AddText(ctx, text)
	if err != nil || id <= 0 {
		logger.WithCtx(ctx).Error("text persistence failed (service)",
			zap.Int("returned_id", id), zap.Error(err))
		return nil, ErrSaveFailed
	}
	text.ID = id

	logger.WithCtx(ctx).Info("text submitted (service)",
		zap.Int("text_id", id), zap.String("title", title), zap.Bool("from_pdf", hasUpload))
	return text, nil
}

type UpdateTextInput struct {
	Title      string
	Content    string
	CategoryID string
}

// Update rewrites an already ownership-checked text. Typing progress
// resets because the saved position no longer maps onto new content.
func (s *TextService) Update(ctx context.Context, text *models.Text, in UpdateTextInput) error {
	title := strings.TrimSpace(in.Title)
	body := textproc.Clean(in.Content)
	if title == "" || body == "" {
		return ErrInvalidInput
	}

	text.Title = title
	text.Content = body
	text.CategoryID = s.resolveCategoryID(ctx, text.OwnerID, in.CategoryID)
	text.ProgressIndex = 0

	ok, err := s.repo.UpdateText(ctx, text)
	if err != nil {
		return ErrSaveFailed
	}
	if !ok {
		return ErrInvalidInput
	}
	return nil
}

// Delete removes an ownership-checked text and reports the category it
// lived in, so browser flows can land back on the right listing.
func (s *TextService) Delete(ctx context.Context, text *models.Text) (*int, error) {
	ok, err := s.repo.DeleteText(ctx, text.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		// The guard saw the text but the delete hit no row: it went
		// away in between. Tolerated, not a server fault.
		return nil, ErrAlreadyRemoved
	}
	return text.CategoryID, nil
}

func (s *TextService) List(ctx context.Context, ownerID int, categoryID *int) ([]*models.Text, error) {
	return s.repo.ListTexts(ctx, ownerID, categoryID)
}

// SaveProgress stores the typing position, clamped to the content's
// rune count so a stale client can never push the cursor out of range.
func (s *TextService) SaveProgress(ctx context.Context, text *models.Text, index int) (int, error) {
	max := utf8.RuneCountInString(text.Content)
	if index < 0 {
		index = 0
	}
	if index > max {
		index = max
	}

	ok, err := s.repo.SaveProgress(ctx, text.ID, index)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrInvalidInput
	}
	return index, nil
}

// Reorder applies a manual drag-and-drop ordering of the owner's texts.
func (s *TextService) Reorder(ctx context.Context, ownerID int, orderedIDs []int) error {
	if len(orderedIDs) == 0 {
		return ErrInvalidInput
	}
	return s.repo.UpdateTextOrder(ctx, ownerID, orderedIDs)
}

// resolveCategoryID parses the raw form value leniently: "root", empty
// or garbage all fall back to the root listing, and so does a category
// the caller does not own. Submissions never fail over a bad category,
// they just land at the top level.
func (s *TextService) resolveCategoryID(ctx context.Context, ownerID int, raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "root" {
		return nil
	}

	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		logger.WithCtx(ctx).Warn("unparsable category id, using root", zap.String("raw", raw))
		return nil
	}

	cat, err := s.categories.Get(ctx, id)
	if err != nil {
		logger.WithCtx(ctx).Warn("category lookup failed, using root", zap.Int("category_id", id), zap.Error(err))
		return nil
	}
	if cat.OwnerID != ownerID {
		logger.WithCtx(ctx).Warn("category not owned by caller, using root", zap.Int("category_id", id))
		return nil
	}
	return &id
}
