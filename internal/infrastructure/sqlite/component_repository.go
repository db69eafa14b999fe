package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Eddiexian/AI-Pr/internal/domain"
	"github.com/Eddiexian/AI-Pr/internal/domain/entity"
	"github.com/Eddiexian/AI-Pr/internal/domain/repository"
)

var _ repository.ComponentRepository = (*ComponentRepo)(nil)

const componentColumns = `id, layout_id, type, x, y, width, height, rotation, shape_points, code, props, created_at, updated_at`

// ComponentRepo implementación de ComponentRepository sobre SQLite; shape_points y props como texto JSON.
type ComponentRepo struct {
	db Querier
}

func NewComponentRepository(db Querier) *ComponentRepo {
	return &ComponentRepo{db: db}
}

func (r *ComponentRepo) Create(ctx context.Context, c *entity.Component) error {
	shape, err := encodeShape(c.ShapePoints)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO components (`+componentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.LayoutID, c.Type, c.X, c.Y, c.Width, c.Height, c.Rotation,
		shape, c.Code, encodeProps(c.Props), c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert component: %w", err)
	}
	return nil
}

func (r *ComponentRepo) GetByID(ctx context.Context, id string) (*entity.Component, error) {
	c, err := scanComponent(r.db.QueryRowContext(ctx, `SELECT `+componentColumns+` FROM components WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get component: %w", err)
	}
	return c, nil
}

func (r *ComponentRepo) Update(ctx context.Context, c *entity.Component) error {
	shape, err := encodeShape(c.ShapePoints)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE components
		SET x = ?, y = ?, width = ?, height = ?, rotation = ?, shape_points = ?, code = ?, props = ?, updated_at = ?
		WHERE id = ?`,
		c.X, c.Y, c.Width, c.Height, c.Rotation, shape, c.Code, encodeProps(c.Props), c.UpdatedAt, c.ID)
	if err != nil {
		return fmt.Errorf("update component: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ComponentRepo) ListByLayout(ctx context.Context, layoutID string) ([]*entity.Component, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+componentColumns+` FROM components WHERE layout_id = ? ORDER BY created_at, rowid`, layoutID)
	if err != nil {
		return nil, fmt.Errorf("list components: %w", err)
	}
	defer rows.Close()
	var list []*entity.Component
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan component: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *ComponentRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM components WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete component: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComponent(row rowScanner) (*entity.Component, error) {
	var (
		c     entity.Component
		shape sql.NullString
		props string
	)
	if err := row.Scan(
		&c.ID, &c.LayoutID, &c.Type, &c.X, &c.Y, &c.Width, &c.Height, &c.Rotation,
		&shape, &c.Code, &props, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if shape.Valid && shape.String != "" && shape.String != "null" {
		if err := json.Unmarshal([]byte(shape.String), &c.ShapePoints); err != nil {
			return nil, fmt.Errorf("decode shape: %w", err)
		}
		if len(c.ShapePoints) == 0 {
			c.ShapePoints = nil
		}
	}
	c.Props = json.RawMessage(props)
	return &c, nil
}

// encodeShape sin puntos guarda NULL.
func encodeShape(points []entity.Point) (sql.NullString, error) {
	if len(points) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(points)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode shape: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func encodeProps(props json.RawMessage) string {
	if len(props) == 0 {
		return "{}"
	}
	return string(props)
}
