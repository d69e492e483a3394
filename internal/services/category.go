package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"typedrill/internal/logger"
	"typedrill/internal/models"
)

var ErrCategoryNotFound = errors.New("Category not found.")

type CategoryRepo interface {
	Create(ctx context.Context, c *models.Category) (int, error)
	Get(ctx context.Context, id int) (*models.Category, error)
	ListByParent(ctx context.Context, ownerID int, parentID *int) ([]*models.Category, error)
	GetCategoriesFlat(ctx context.Context, ownerID int) ([]*models.CategoryPath, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type CategoryService struct {
	repo CategoryRepo
}

func NewCategoryService(repo CategoryRepo) *CategoryService {
	return &CategoryService{repo: repo}
}

// Create adds a category under the given parent. An unparsable or
// foreign parent falls back to top level, mirroring how text
// submissions treat their category.
func (s *CategoryService) Create(ctx context.Context, ownerID int, name, rawParentID string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	var parentID *int
	if raw := strings.TrimSpace(rawParentID); raw != "" && raw != "root" {
		if parent, err := s.getOwned(ctx, ownerID, raw); err == nil {
			parentID = &parent.ID
		} else {
			logger.WithCtx(ctx).Warn("parent category unusable, creating at top level",
				zap.String("raw", raw), zap.Error(err))
		}
	}

	cat := &models.Category{OwnerID: ownerID, ParentID: parentID, Name: name}
	id, err := s.repo.Create(ctx, cat)
	if err != nil {
		return nil, err
	}
	cat.ID = id
	return cat, nil
}

func (s *CategoryService) List(ctx context.Context, ownerID int, parentID *int) ([]*models.Category, error) {
	return s.repo.ListByParent(ctx, ownerID, parentID)
}

// ListFlat returns the whole tree depth-first with slash-joined paths,
// ready for a move/select dropdown.
func (s *CategoryService) ListFlat(ctx context.Context, ownerID int) ([]*models.CategoryPath, error) {
	return s.repo.GetCategoriesFlat(ctx, ownerID)
}

// Delete removes an owned category. Its subcategories and texts are
// reparented, not deleted.
func (s *CategoryService) Delete(ctx context.Context, ownerID, id int) error {
	cat, err := s.repo.Get(ctx, id)
	if err != nil {
		return ErrCategoryNotFound
	}
	if cat.OwnerID != ownerID {
		return ErrCategoryNotFound
	}

	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCategoryNotFound
	}
	return nil
}

func (s *CategoryService) getOwned(ctx context.Context, ownerID int, raw string) (*models.Category, error) {
	id, err := parsePositiveInt(raw)
	if err != nil {
		return nil, err
	}
	cat, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat.OwnerID != ownerID {
		return nil, ErrCategoryNotFound
	}
	return cat, nil
}

func parsePositiveInt(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, ErrInvalidInput
	}
	return id, nil
}
