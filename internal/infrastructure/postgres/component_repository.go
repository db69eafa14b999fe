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

var _ repository.ComponentRepository = (*ComponentRepo)(nil)

const componentColumns = `id, layout_id, type, x, y, width, height, rotation, shape_points, code, props, created_at, updated_at`

// ComponentRepo implementación del puerto ComponentRepository sobre PostgreSQL.
// shape_points y props se guardan como JSONB.
type ComponentRepo struct {
	db Querier
}

// NewComponentRepository construye el adaptador de persistencia para componentes.
func NewComponentRepository(db Querier) *ComponentRepo {
	return &ComponentRepo{db: db}
}

func (r *ComponentRepo) Create(ctx context.Context, c *entity.Component) error {
	shape, err := shapeParam(c.ShapePoints)
	if err != nil {
		return fmt.Errorf("encode shape: %w", err)
	}
	query := `
		INSERT INTO components (` + componentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = r.db.Exec(ctx, query,
		c.ID, c.LayoutID, c.Type, c.X, c.Y, c.Width, c.Height, c.Rotation,
		shape, c.Code, propsParam(c.Props), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert component: %w", err)
	}
	return nil
}

func (r *ComponentRepo) GetByID(ctx context.Context, id string) (*entity.Component, error) {
	c, err := scanComponent(r.db.QueryRow(ctx, `SELECT `+componentColumns+` FROM components WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get component: %w", err)
	}
	return c, nil
}

func (r *ComponentRepo) Update(ctx context.Context, c *entity.Component) error {
	shape, err := shapeParam(c.ShapePoints)
	if err != nil {
		return fmt.Errorf("encode shape: %w", err)
	}
	query := `
		UPDATE components
		SET x = $2, y = $3, width = $4, height = $5, rotation = $6,
		    shape_points = $7, code = $8, props = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		c.ID, c.X, c.Y, c.Width, c.Height, c.Rotation, shape, c.Code, propsParam(c.Props), c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update component: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ComponentRepo) ListByLayout(ctx context.Context, layoutID string) ([]*entity.Component, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+componentColumns+` FROM components WHERE layout_id = $1 ORDER BY created_at, id`, layoutID)
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
	if _, err := r.db.Exec(ctx, `DELETE FROM components WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete component: %w", err)
	}
	return nil
}

func scanComponent(row pgx.Row) (*entity.Component, error) {
	var (
		c     entity.Component
		shape []byte
		props []byte
	)
	if err := row.Scan(
		&c.ID, &c.LayoutID, &c.Type, &c.X, &c.Y, &c.Width, &c.Height, &c.Rotation,
		&shape, &c.Code, &props, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	points, err := decodeShape(shape)
	if err != nil {
		return nil, fmt.Errorf("decode shape: %w", err)
	}
	c.ShapePoints = points
	c.Props = props
	return &c, nil
}
