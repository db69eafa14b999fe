package repository

import (
	"context"

	"github.com/Eddiexian/AI-Pr/internal/domain/entity"
)

// OccupancyRepository lectura de contenedores y work-items por bin.
// Solo lectura: la ocupación nunca se escribe desde el sistema de layouts.
type OccupancyRepository interface {
	// ContainerCounts devuelve code -> cantidad de contenedores; los bins sin contenedores no aparecen.
	ContainerCounts(ctx context.Context, binCodes []string) (map[string]int, error)
	// ContentsByBins devuelve code -> contenedores ordenados por posición, con sus work-items.
	ContentsByBins(ctx context.Context, binCodes []string) (map[string][]entity.Container, error)
	LocateWorkItem(ctx context.Context, workItemID string) (entity.Location, error)
	LocateContainer(ctx context.Context, containerID string) (entity.Location, error)
}
