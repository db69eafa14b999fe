package repository

import (
	"context"

	"github.com/Eddiexian/AI-Pr/internal/domain/entity"
)

// ContainerWriter carga contenedores y sus work-items. Solo lo usa la siembra de datos;
// en operación la ocupación la escribe la planta, no el sistema de layouts.
type ContainerWriter interface {
	PutContainer(ctx context.Context, binCode string, container entity.Container) error
}

// Repositories agrupa los repositorios atados a una misma transacción.
type Repositories struct {
	Users      UserRepository
	Layouts    LayoutRepository
	Components ComponentRepository
	Containers ContainerWriter
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback si no.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repositories) error) error
}
