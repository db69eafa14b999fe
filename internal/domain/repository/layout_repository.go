package repository

import (
	"context"

	"github.com/Eddiexian/AI-Pr/internal/domain/entity"
)

// LayoutRepository define el puerto de persistencia para Layout (DIP).
// Delete elimina en cascada los componentes del layout.
type LayoutRepository interface {
	Create(ctx context.Context, layout *entity.Layout) error
	GetByID(ctx context.Context, id string) (*entity.Layout, error)
	Update(ctx context.Context, layout *entity.Layout) error
	List(ctx context.Context) ([]*entity.Layout, error)
	Delete(ctx context.Context, id string) error
}
