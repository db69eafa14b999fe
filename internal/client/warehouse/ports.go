// Package warehouse estado local del cliente: directorio de layouts, componentes del layout
// actual, overlay de ocupación y localizador. Todo cambio local ocurre solo después de que
// el backend confirma la escritura.
package warehouse

import (
	"context"

	"github.com/Eddiexian/AI-Pr/internal/client/model"
)

// LayoutAPI llamadas remotas del directorio.
type LayoutAPI interface {
	ListLayouts(ctx context.Context) ([]model.Layout, error)
	CreateLayout(ctx context.Context, in model.LayoutDraft) (model.Layout, error)
	GetLayout(ctx context.Context, id string) (model.LayoutDetail, error)
	UpdateLayout(ctx context.Context, id string, in model.LayoutPatch) (model.Layout, error)
	DeleteLayout(ctx context.Context, id string) error
}

// ComponentAPI llamadas remotas de la colección de componentes.
type ComponentAPI interface {
	AddComponent(ctx context.Context, layoutID string, in model.ComponentDraft) (model.Component, error)
	UpdateComponent(ctx context.Context, id string, in model.ComponentPatch) (model.Component, error)
	DeleteComponent(ctx context.Context, id string) error
}

// OccupancyAPI consultas de solo lectura por código de bin.
type OccupancyAPI interface {
	Counts(ctx context.Context, binCodes []string) (map[string]int, error)
	CassetteCounts(ctx context.Context, binCodes []string) (map[string]int, error)
	WIP(ctx context.Context, binCodes []string) (map[string][]model.Container, error)
	Locate(ctx context.Context, q model.LocateQuery) (model.Location, error)
}
