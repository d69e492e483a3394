package repository

import (
	"context"
	"errors"

	"typedrill/internal/logger"
	"typedrill/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a row does not exist. Callers use it to
// distinguish missing records from infrastructure failures.
var ErrNotFound = errors.New("not found")

type TextRepository struct {
	db *pgxpool.Pool
}

func NewTextRepository(db *pgxpool.Pool) *TextRepository {
	return &TextRepository{db: db}
}

// AddText inserts a text at the end of its category and returns the new
// row id. Ordering is per owner and category.
func (r *TextRepository) AddText(ctx context.Context, t *models.Text) (int, error) {
	logger.WithCtx(ctx).Info("adding text (repo)", zap.String("title", t.Title))
	query := `
	INSERT INTO texts (owner_id, title, content, category_id, order_index)
	VALUES ($1, $2, $3, $4, (
		SELECT COALESCE(MAX(order_index) + 1, 0)
		FROM texts
		WHERE owner_id = $1 AND category_id IS NOT DISTINCT FROM $4
	))
	RETURNING id`

	var id int
	err := r.db.QueryRow(ctx, query, t.OwnerID, t.Title, t.Content, t.CategoryID).Scan(&id)
	if err != nil {
		logger.WithCtx(ctx).Error("insert text failed (repo)", zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *TextRepository) GetText(ctx context.Context, id int) (*models.Text, error) {
	query := `
	SELECT id, owner_id, title, content, category_id, progress_index, order_index, created_at, updated_at
	FROM texts
	WHERE id = $1`

	var t models.Text
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.OwnerID,
		&t.Title,
		&t.Content,
		&t.CategoryID,
		&t.ProgressIndex,
		&t.OrderIndex,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		logger.WithCtx(ctx).Error("get text failed (repo)", zap.Int("text_id", id), zap.Error(err))
		return nil, err
	}
	return &t, nil
}

// ListTexts returns the owner's texts inside one category, in manual
// order. A nil categoryID selects the root (uncategorized) texts.
func (r *TextRepository) ListTexts(ctx context.Context, ownerID int, categoryID *int) ([]*models.Text, error) {
	query := `
	SELECT id, owner_id, title, content, category_id, progress_index, order_index, created_at, updated_at
	FROM texts
	WHERE owner_id = $1 AND category_id IS NOT DISTINCT FROM $2
	ORDER BY order_index, id`

	rows, err := r.db.Query(ctx, query, ownerID, categoryID)
	if err != nil {
		logger.WithCtx(ctx).Error("list texts failed (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var texts []*models.Text
	for rows.Next() {
		var t models.Text
		if err := rows.Scan(
			&t.ID,
			&t.OwnerID,
			&t.Title,
			&t.Content,
			&t.CategoryID,
			&t.ProgressIndex,
			&t.OrderIndex,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			logger.WithCtx(ctx).Error("scan text failed (repo)", zap.Error(err))
			return nil, err
		}
		texts = append(texts, &t)
	}
	return texts, rows.Err()
}

// UpdateText rewrites title, content and category. Progress resets
// because the old position no longer maps onto the new content.
func (r *TextRepository) UpdateText(ctx context.Context, t *models.Text) (bool, error) {
	query := `
	UPDATE texts
	SET title = $1, content = $2, category_id = $3, progress_index = 0, updated_at = now()
	WHERE id = $4`

	tag, err := r.db.Exec(ctx, query, t.Title, t.Content, t.CategoryID, t.ID)
	if err != nil {
		logger.WithCtx(ctx).Error("update text failed (repo)", zap.Int("text_id", t.ID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *TextRepository) DeleteText(ctx context.Context, id int) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM texts WHERE id = $1`, id)
	if err != nil {
		logger.WithCtx(ctx).Error("delete text failed (repo)", zap.Int("text_id", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *TextRepository) SaveProgress(ctx context.Context, id, progressIndex int) (bool, error) {
	query := `UPDATE texts SET progress_index = $1, updated_at = now() WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, progressIndex, id)
	if err != nil {
		logger.WithCtx(ctx).Error("save progress failed (repo)", zap.Int("text_id", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateTextOrder rewrites order_index for the owner's texts following
// the given id sequence. Ids not owned by ownerID are left untouched,
// the WHERE clause guards them. Runs in one transaction so a partial
// reorder never becomes visible.
func (r *TextRepository) UpdateTextOrder(ctx context.Context, ownerID int, orderedIDs []int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		logger.WithCtx(ctx).Error("begin reorder tx failed (repo)", zap.Error(err))
		return err
	}
	defer tx.Rollback(ctx)

	for i, id := range orderedIDs {
		if _, err := tx.Exec(ctx,
			`UPDATE texts SET order_index = $1 WHERE id = $2 AND owner_id = $3`,
			i, id, ownerID,
		); err != nil {
			logger.WithCtx(ctx).Error("reorder update failed (repo)", zap.Int("text_id", id), zap.Error(err))
			return err
		}
	}
	return tx.Commit(ctx)
}
