package postgres

import (
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Eddiexian/AI-Pr/internal/domain/entity"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// shapeParam serializa el contorno para una columna JSONB; sin puntos se guarda NULL.
func shapeParam(points []entity.Point) (any, error) {
	if len(points) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(points)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func decodeShape(raw []byte) ([]entity.Point, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var points []entity.Point
	if err := json.Unmarshal(raw, &points); err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, nil
	}
	return points, nil
}

func propsParam(props json.RawMessage) string {
	if len(props) == 0 {
		return "{}"
	}
	return string(props)
}
