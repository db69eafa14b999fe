package occupancy

import (
	"context"

	"github.com/Eddiexian/AI-Pr/internal/domain/entity"
	"github.com/Eddiexian/AI-Pr/internal/domain/repository"
)

var _ Provider = (*StoreProvider)(nil)

// StoreProvider implementa Provider sobre las tablas de contenedores y work-items.
// Counts y CassetteCounts coinciden: ambos cuentan contenedores reales.
type StoreProvider struct {
	repo repository.OccupancyRepository
}

// NewStoreProvider construye el proveedor respaldado por base de datos.
func NewStoreProvider(repo repository.OccupancyRepository) *StoreProvider {
	return &StoreProvider{repo: repo}
}

func (p *StoreProvider) Counts(ctx context.Context, binCodes []string) (map[string]int, error) {
	return p.CassetteCounts(ctx, binCodes)
}

// CassetteCounts incluye con 0 los bins consultados que no tienen contenedores.
func (p *StoreProvider) CassetteCounts(ctx context.Context, binCodes []string) (map[string]int, error) {
	counts, err := p.repo.ContainerCounts(ctx, binCodes)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(binCodes))
	for _, code := range binCodes {
		out[code] = counts[code]
	}
	return out, nil
}

// WIP incluye con lista vacía los bins consultados sin contenido.
func (p *StoreProvider) WIP(ctx context.Context, binCodes []string) (map[string][]entity.Container, error) {
	contents, err := p.repo.ContentsByBins(ctx, binCodes)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]entity.Container, len(binCodes))
	for _, code := range binCodes {
		cs := contents[code]
		if cs == nil {
			cs = []entity.Container{}
		}
		out[code] = cs
	}
	return out, nil
}

func (p *StoreProvider) Locate(ctx context.Context, workItemID, containerID string) (entity.Location, error) {
	if workItemID != "" {
		return p.repo.LocateWorkItem(ctx, workItemID)
	}
	return p.repo.LocateContainer(ctx, containerID)
}
