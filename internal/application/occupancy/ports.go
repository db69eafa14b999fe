package occupancy

import (
	"context"

	"github.com/Eddiexian/AI-Pr/internal/domain/entity"
)

// Provider puerto de salida hacia la fuente de WIP (base de datos de planta o datos simulados).
// Los códigos llegan ya normalizados y sin duplicados.
type Provider interface {
	// Counts resumen liviano por bin (coloreado del mapa).
	Counts(ctx context.Context, binCodes []string) (map[string]int, error)
	// CassetteCounts cantidad real de contenedores por bin.
	CassetteCounts(ctx context.Context, binCodes []string) (map[string]int, error)
	// WIP contenido anidado bin -> contenedores -> work-items.
	WIP(ctx context.Context, binCodes []string) (map[string][]entity.Container, error)
	// Locate resuelve un work-item o un contenedor a su bin; Location vacío si no hay coincidencia.
	Locate(ctx context.Context, workItemID, containerID string) (entity.Location, error)
}
