package repository

import (
	"context"

	"typedrill/internal/logger"
	"typedrill/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type CategoryRepository struct {
	db *pgxpool.Pool
}

func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) (int, error) {
	logger.WithCtx(ctx).Info("creating category (repo)", zap.String("name", c.Name))
	var id int
	err := r.db.QueryRow(ctx,
		`INSERT INTO categories (owner_id, parent_id, name) VALUES ($1, $2, $3) RETURNING id`,
		c.OwnerID, c.ParentID, c.Name,
	).Scan(&id)
	if err != nil {
		logger.WithCtx(ctx).Error("insert category failed (repo)", zap.Error(err))
	}
	return id, err
}

func (r *CategoryRepository) Get(ctx context.Context, id int) (*models.Category, error) {
	var c models.Category
	err := r.db.QueryRow(ctx,
		`SELECT id, owner_id, parent_id, name, created_at FROM categories WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.OwnerID, &c.ParentID, &c.Name, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		logger.WithCtx(ctx).Error("get category failed (repo)", zap.Int("category_id", id), zap.Error(err))
		return nil, err
	}
	return &c, nil
}

// ListByParent returns the owner's direct subcategories of parentID.
// A nil parentID lists the top-level categories.
func (r *CategoryRepository) ListByParent(ctx context.Context, ownerID int, parentID *int) ([]*models.Category, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, owner_id, parent_id, name, created_at
		 FROM categories
		 WHERE owner_id = $1 AND parent_id IS NOT DISTINCT FROM $2
		 ORDER BY name, id`,
		ownerID, parentID,
	)
	if err != nil {
		logger.WithCtx(ctx).Error("list categories failed (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var cats []*models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.ParentID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		cats = append(cats, &c)
	}
	return cats, rows.Err()
}

// GetCategoriesFlat walks the owner's category tree and returns every
// category with its depth and slash-joined path, ordered so that a
// parent always precedes its children. Used to render the move/select
// dropdowns in one query.
func (r *CategoryRepository) GetCategoriesFlat(ctx context.Context, ownerID int) ([]*models.CategoryPath, error) {
	q := `
WITH RECURSIVE tree AS (
  SELECT id, owner_id, parent_id, name, created_at, 0 AS depth, name::text AS path
  FROM categories
  WHERE owner_id = $1 AND parent_id IS NULL
  UNION ALL
  SELECT c.id, c.owner_id, c.parent_id, c.name, c.created_at, t.depth + 1, t.path || '/' || c.name
  FROM categories c
  JOIN tree t ON c.parent_id = t.id
)
SELECT id, owner_id, parent_id, name, created_at, depth, path
FROM tree
ORDER BY path;
`
	rows, err := r.db.Query(ctx, q, ownerID)
	if err != nil {
		logger.WithCtx(ctx).Error("flat category list failed (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var out []*models.CategoryPath
	for rows.Next() {
		var cp models.CategoryPath
		if err := rows.Scan(&cp.ID, &cp.OwnerID, &cp.ParentID, &cp.Name, &cp.CreatedAt, &cp.Depth, &cp.Path); err != nil {
			return nil, err
		}
		out = append(out, &cp)
	}
	return out, rows.Err()
}

// Delete removes a category. Subcategories move up to the deleted
// category's parent; its texts fall back to the root listing. Runs in
// one transaction.
func (r *CategoryRepository) Delete(ctx context.Context, id int) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		logger.WithCtx(ctx).Error("begin category delete tx failed (repo)", zap.Error(err))
		return false, err
	}
	defer tx.Rollback(ctx)

	var parentID *int
	if err := tx.QueryRow(ctx, `SELECT parent_id FROM categories WHERE id = $1`, id).Scan(&parentID); err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, err
	}

	if _, err := tx.Exec(ctx, `UPDATE categories SET parent_id = $1 WHERE parent_id = $2`, parentID, id); err != nil {
		logger.WithCtx(ctx).Error("reparent subcategories failed (repo)", zap.Int("category_id", id), zap.Error(err))
		return false, err
	}
	if _, err := tx.Exec(ctx, `UPDATE texts SET category_id = NULL WHERE category_id = $1`, id); err != nil {
		logger.WithCtx(ctx).Error("detach texts failed (repo)", zap.Int("category_id", id), zap.Error(err))
		return false, err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		logger.WithCtx(ctx).Error("delete category failed (repo)", zap.Int("category_id", id), zap.Error(err))
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
