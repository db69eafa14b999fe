package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Eddiexian/AI-Pr/internal/domain/entity"
	"github.com/Eddiexian/AI-Pr/internal/domain/repository"
)

var _ repository.OccupancyRepository = (*OccupancyRepo)(nil)

// OccupancyRepo lectura de contenedores y work-items por bin (tablas containers y work_items).
type OccupancyRepo struct {
	db Querier
}

// NewOccupancyRepository construye el adaptador de lectura de ocupación.
func NewOccupancyRepository(db Querier) *OccupancyRepo {
	return &OccupancyRepo{db: db}
}

func (r *OccupancyRepo) ContainerCounts(ctx context.Context, binCodes []string) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT bin_code, count(*) FROM containers
		WHERE bin_code = ANY($1)
		GROUP BY bin_code`, binCodes)
	if err != nil {
		return nil, fmt.Errorf("container counts: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int, len(binCodes))
	for rows.Next() {
		var (
			code string
			n    int
		)
		if err := rows.Scan(&code, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		out[code] = n
	}
	return out, rows.Err()
}

// ContentsByBins un solo LEFT JOIN; los contenedores sin work-items quedan con Units vacío.
func (r *OccupancyRepo) ContentsByBins(ctx context.Context, binCodes []string) (map[string][]entity.Container, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.bin_code, c.id, c.position,
		       w.id, w.model, w.grade, w.stage, w.operator_id
		FROM containers c
		LEFT JOIN work_items w ON w.container_id = c.id
		WHERE c.bin_code = ANY($1)
		ORDER BY c.bin_code, c.position, c.id, w.id`, binCodes)
	if err != nil {
		return nil, fmt.Errorf("contents by bins: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.Container)
	for rows.Next() {
		var (
			code, containerID                       string
			position                                int
			itemID, model, grade, stage, operatorID *string
		)
		if err := rows.Scan(&code, &containerID, &position, &itemID, &model, &grade, &stage, &operatorID); err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		list := out[code]
		if n := len(list); n == 0 || list[n-1].ID != containerID {
			list = append(list, entity.Container{ID: containerID, Position: position, Units: []entity.WorkItem{}})
		}
		if itemID != nil {
			last := &list[len(list)-1]
			last.Units = append(last.Units, entity.WorkItem{
				ID:         *itemID,
				Model:      deref(model),
				Grade:      deref(grade),
				Stage:      deref(stage),
				OperatorID: deref(operatorID),
			})
		}
		out[code] = list
	}
	return out, rows.Err()
}

func (r *OccupancyRepo) LocateWorkItem(ctx context.Context, workItemID string) (entity.Location, error) {
	var loc entity.Location
	err := r.db.QueryRow(ctx, `
		SELECT c.bin_code, c.id, w.id
		FROM work_items w JOIN containers c ON c.id = w.container_id
		WHERE w.id = $1`, workItemID).Scan(&loc.BinCode, &loc.ContainerID, &loc.WorkItemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Location{}, nil
		}
		return entity.Location{}, fmt.Errorf("locate work item: %w", err)
	}
	return loc, nil
}

func (r *OccupancyRepo) LocateContainer(ctx context.Context, containerID string) (entity.Location, error) {
	var loc entity.Location
	err := r.db.QueryRow(ctx, `SELECT bin_code, id FROM containers WHERE id = $1`, containerID).
		Scan(&loc.BinCode, &loc.ContainerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Location{}, nil
		}
		return entity.Location{}, fmt.Errorf("locate container: %w", err)
	}
	return loc, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var _ repository.ContainerWriter = (*ContainerWriter)(nil)

// ContainerWriter inserta o reemplaza un contenedor con sus work-items.
type ContainerWriter struct {
	db Querier
}

// NewContainerWriter construye el escritor de contenedores (siembra).
func NewContainerWriter(db Querier) *ContainerWriter {
	return &ContainerWriter{db: db}
}

func (w *ContainerWriter) PutContainer(ctx context.Context, binCode string, c entity.Container) error {
	_, err := w.db.Exec(ctx, `
		INSERT INTO containers (id, bin_code, position) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET bin_code = EXCLUDED.bin_code, position = EXCLUDED.position`,
		c.ID, binCode, c.Position)
	if err != nil {
		return fmt.Errorf("put container: %w", err)
	}
	if _, err := w.db.Exec(ctx, `DELETE FROM work_items WHERE container_id = $1`, c.ID); err != nil {
		return fmt.Errorf("clear work items: %w", err)
	}
	for _, u := range c.Units {
		_, err := w.db.Exec(ctx, `
			INSERT INTO work_items (id, container_id, model, grade, stage, operator_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET container_id = EXCLUDED.container_id, model = EXCLUDED.model,
				grade = EXCLUDED.grade, stage = EXCLUDED.stage, operator_id = EXCLUDED.operator_id`,
			u.ID, c.ID, u.Model, u.Grade, u.Stage, u.OperatorID)
		if err != nil {
			return fmt.Errorf("put work item: %w", err)
		}
	}
	return nil
}
