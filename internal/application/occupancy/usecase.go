package occupancy

import (
	"context"
	"strings"

	"github.com/Eddiexian/AI-Pr/internal/domain/bincode"
	"github.com/Eddiexian/AI-Pr/internal/domain/entity"
)

// UseCase consultas de ocupación por lote de códigos de bin. Solo lectura.
type UseCase struct {
	provider Provider
}

// NewUseCase construye el caso de uso sobre el proveedor configurado.
func NewUseCase(provider Provider) *UseCase {
	return &UseCase{provider: provider}
}

// Counts devuelve code -> conteo. Lista vacía no consulta al proveedor.
func (uc *UseCase) Counts(ctx context.Context, binCodes []string) (map[string]int, error) {
	codes := bincode.NormalizeAll(binCodes)
	if len(codes) == 0 {
		return map[string]int{}, nil
	}
	return uc.provider.Counts(ctx, codes)
}

// CassetteCounts devuelve code -> cantidad de contenedores. Lista vacía no consulta al proveedor.
func (uc *UseCase) CassetteCounts(ctx context.Context, binCodes []string) (map[string]int, error) {
	codes := bincode.NormalizeAll(binCodes)
	if len(codes) == 0 {
		return map[string]int{}, nil
	}
	return uc.provider.CassetteCounts(ctx, codes)
}

// WIP devuelve el contenido completo de cada bin solicitado.
func (uc *UseCase) WIP(ctx context.Context, binCodes []string) (map[string][]entity.Container, error) {
	codes := bincode.NormalizeAll(binCodes)
	if len(codes) == 0 {
		return map[string][]entity.Container{}, nil
	}
	return uc.provider.WIP(ctx, codes)
}

// Locate busca por work-item (prioridad) o por contenedor. Sin identificadores devuelve vacío.
func (uc *UseCase) Locate(ctx context.Context, workItemID, containerID string) (entity.Location, error) {
	workItemID = strings.TrimSpace(workItemID)
	containerID = strings.TrimSpace(containerID)
	if workItemID == "" && containerID == "" {
		return entity.Location{}, nil
	}
	return uc.provider.Locate(ctx, workItemID, containerID)
}
