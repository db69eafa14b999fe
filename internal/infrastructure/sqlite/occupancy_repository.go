package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Eddiexian/AI-Pr/internal/domain/entity"
	"github.com/Eddiexian/AI-Pr/internal/domain/repository"
)

var (
	_ repository.OccupancyRepository = (*OccupancyRepo)(nil)
	_ repository.ContainerWriter     = (*ContainerWriter)(nil)
)

// OccupancyRepo lectura de contenedores y work-items por bin.
type OccupancyRepo struct {
	db Querier
}

func NewOccupancyRepository(db Querier) *OccupancyRepo {
	return &OccupancyRepo{db: db}
}

func (r *OccupancyRepo) ContainerCounts(ctx context.Context, binCodes []string) (map[string]int, error) {
	out := make(map[string]int, len(binCodes))
	for _, batch := range inBatches(binCodes) {
		if err := r.countBatch(ctx, batch, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *OccupancyRepo) countBatch(ctx context.Context, binCodes []string, out map[string]int) error {
	in, args := inClause(binCodes)
	rows, err := r.db.QueryContext(ctx,
		`SELECT bin_code, count(*) FROM containers WHERE bin_code IN (`+in+`) GROUP BY bin_code`, args...)
	if err != nil {
		return fmt.Errorf("container counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			code string
			n    int
		)
		if err := rows.Scan(&code, &n); err != nil {
			return fmt.Errorf("scan count: %w", err)
		}
		out[code] = n
	}
	return rows.Err()
}

func (r *OccupancyRepo) ContentsByBins(ctx context.Context, binCodes []string) (map[string][]entity.Container, error) {
	out := make(map[string][]entity.Container)
	for _, batch := range inBatches(binCodes) {
		if err := r.contentsBatch(ctx, batch, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *OccupancyRepo) contentsBatch(ctx context.Context, binCodes []string, out map[string][]entity.Container) error {
	in, args := inClause(binCodes)
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.bin_code, c.id, c.position, w.id, w.model, w.grade, w.stage, w.operator_id
		FROM containers c
		LEFT JOIN work_items w ON w.container_id = c.id
		WHERE c.bin_code IN (`+in+`)
		ORDER BY c.bin_code, c.position, c.id, w.id`, args...)
	if err != nil {
		return fmt.Errorf("contents by bins: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			code, containerID                       string
			position                                int
			itemID, model, grade, stage, operatorID sql.NullString
		)
		if err := rows.Scan(&code, &containerID, &position, &itemID, &model, &grade, &stage, &operatorID); err != nil {
			return fmt.Errorf("scan content: %w", err)
		}
		list := out[code]
		if n := len(list); n == 0 || list[n-1].ID != containerID {
			list = append(list, entity.Container{ID: containerID, Position: position, Units: []entity.WorkItem{}})
		}
		if itemID.Valid {
			last := &list[len(list)-1]
			last.Units = append(last.Units, entity.WorkItem{
				ID:         itemID.String,
				Model:      model.String,
				Grade:      grade.String,
				Stage:      stage.String,
				OperatorID: operatorID.String,
			})
		}
		out[code] = list
	}
	return rows.Err()
}

func (r *OccupancyRepo) LocateWorkItem(ctx context.Context, workItemID string) (entity.Location, error) {
	var loc entity.Location
	err := r.db.QueryRowContext(ctx, `
		SELECT c.bin_code, c.id, w.id
		FROM work_items w JOIN containers c ON c.id = w.container_id
		WHERE w.id = ?`, workItemID).Scan(&loc.BinCode, &loc.ContainerID, &loc.WorkItemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Location{}, nil
		}
		return entity.Location{}, fmt.Errorf("locate work item: %w", err)
	}
	return loc, nil
}

func (r *OccupancyRepo) LocateContainer(ctx context.Context, containerID string) (entity.Location, error) {
	var loc entity.Location
	err := r.db.QueryRowContext(ctx, `SELECT bin_code, id FROM containers WHERE id = ?`, containerID).
		Scan(&loc.BinCode, &loc.ContainerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Location{}, nil
		}
		return entity.Location{}, fmt.Errorf("locate container: %w", err)
	}
	return loc, nil
}

// ContainerWriter inserta o reemplaza un contenedor con sus work-items (siembra).
type ContainerWriter struct {
	db Querier
}

func NewContainerWriter(db Querier) *ContainerWriter {
	return &ContainerWriter{db: db}
}

func (w *ContainerWriter) PutContainer(ctx context.Context, binCode string, c entity.Container) error {
	_, err := w.db.ExecContext(ctx, `
		INSERT INTO containers (id, bin_code, position) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET bin_code = excluded.bin_code, position = excluded.position`,
		c.ID, binCode, c.Position)
	if err != nil {
		return fmt.Errorf("put container: %w", err)
	}
	if _, err := w.db.ExecContext(ctx, `DELETE FROM work_items WHERE container_id = ?`, c.ID); err != nil {
		return fmt.Errorf("clear work items: %w", err)
	}
	for _, u := range c.Units {
		_, err := w.db.ExecContext(ctx, `
			INSERT INTO work_items (id, container_id, model, grade, stage, operator_id)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET container_id = excluded.container_id, model = excluded.model,
				grade = excluded.grade, stage = excluded.stage, operator_id = excluded.operator_id`,
			u.ID, c.ID, u.Model, u.Grade, u.Stage, u.OperatorID)
		if err != nil {
			return fmt.Errorf("put work item: %w", err)
		}
	}
	return nil
}
