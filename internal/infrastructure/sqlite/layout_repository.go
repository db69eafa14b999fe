package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Eddiexian/AI-Pr/internal/domain"
	"github.com/Eddiexian/AI-Pr/internal/domain/entity"
	"github.com/Eddiexian/AI-Pr/internal/domain/repository"
)

var _ repository.LayoutRepository = (*LayoutRepo)(nil)

const layoutColumns = `id, name, width, height, floor, area, created_at, updated_at`

// LayoutRepo implementación de LayoutRepository sobre SQLite.
type LayoutRepo struct {
	db Querier
}

func NewLayoutRepository(db Querier) *LayoutRepo {
	return &LayoutRepo{db: db}
}

func (r *LayoutRepo) Create(ctx context.Context, l *entity.Layout) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO layouts (`+layoutColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.Name, l.Width, l.Height, l.Floor, l.Area, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert layout: %w", err)
	}
	return nil
}

func (r *LayoutRepo) GetByID(ctx context.Context, id string) (*entity.Layout, error) {
	var l entity.Layout
	err := r.db.QueryRowContext(ctx, `SELECT `+layoutColumns+` FROM layouts WHERE id = ?`, id).Scan(
		&l.ID, &l.Name, &l.Width, &l.Height, &l.Floor, &l.Area, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get layout: %w", err)
	}
	return &l, nil
}

func (r *LayoutRepo) Update(ctx context.Context, l *entity.Layout) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE layouts SET name = ?, width = ?, height = ?, floor = ?, area = ?, updated_at = ? WHERE id = ?`,
		l.Name, l.Width, l.Height, l.Floor, l.Area, l.UpdatedAt, l.ID)
	if err != nil {
		return fmt.Errorf("update layout: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LayoutRepo) List(ctx context.Context) ([]*entity.Layout, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+layoutColumns+` FROM layouts ORDER BY created_at, rowid`)
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

// Delete elimina el layout; los componentes caen por ON DELETE CASCADE (requiere _foreign_keys=on).
func (r *LayoutRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM layouts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete layout: %w", err)
	}
	return nil
}
