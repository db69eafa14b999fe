package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Eddiexian/AI-Pr/internal/domain"
	"github.com/Eddiexian/AI-Pr/internal/domain/entity"
	"github.com/Eddiexian/AI-Pr/internal/domain/repository"
)

var _ repository.LayoutRepository = (*LayoutRepo)(nil)

// LayoutRepo implementación del puerto LayoutRepository sobre PostgreSQL.
type LayoutRepo struct {
	db Querier
}

// NewLayoutRepository construye el adaptador de persistencia para layouts.
func NewLayoutRepository(db Querier) *LayoutRepo {
	return &LayoutRepo{db: db}
}

func (r *LayoutRepo) Create(ctx context.Context, l *entity.Layout) error {
	query := `
		INSERT INTO layouts (id, name, width, height, floor, area, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query, l.ID, l.Name, l.Width, l.Height, l.Floor, l.Area, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert layout: %w", err)
	}
	return nil
}

func (r *LayoutRepo) GetByID(ctx context.Context, id string) (*entity.Layout, error) {
	query := `
		SELECT id, name, width, height, floor, area, created_at, updated_at
		FROM layouts WHERE id = $1`
	var l entity.Layout
	err := r.db.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.Name, &l.Width, &l.Height, &l.Floor, &l.Area, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get layout: %w", err)
	}
	return &l, nil
}

func (r *LayoutRepo) Update(ctx context.Context, l *entity.Layout) error {
	query := `
		UPDATE layouts SET name = $2, width = $3, height = $4, floor = $5, area = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, l.ID, l.Name, l.Width, l.Height, l.Floor, l.Area, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update layout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve los layouts en orden de creación.
func (r *LayoutRepo) List(ctx context.Context) ([]*entity.Layout, error) {
	query := `
		SELECT id, name, width, height, floor, area, created_at, updated_at
		FROM layouts ORDER BY created_at, id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Layout
	for rows.Next() {
		var l entity.Layout
		if err := rows.Scan(&l.ID, &l.Name, &l.Width, &l.Height, &l.Floor, &l.Area, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan layout: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Delete elimina el layout; los componentes caen por ON DELETE CASCADE.
func (r *LayoutRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM layouts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete layout: %w", err)
	}
	return nil
}
