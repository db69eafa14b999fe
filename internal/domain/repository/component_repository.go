package repository

import (
	"context"

	"github.com/Eddiexian/AI-Pr/internal/domain/entity"
)

// ComponentRepository define el puerto de persistencia para Component (DIP).
type ComponentRepository interface {
	Create(ctx context.Context, component *entity.Component) error
	GetByID(ctx context.Context, id string) (*entity.Component, error)
	Update(ctx context.Context, component *entity.Component) error
	ListByLayout(ctx context.Context, layoutID string) ([]*entity.Component, error)
	Delete(ctx context.Context, id string) error
}
