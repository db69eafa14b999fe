package warehouse

import (
	"context"
	"strings"

	"github.com/Eddiexian/AI-Pr/internal/client/model"
	"github.com/Eddiexian/AI-Pr/pkg/logger"
)

// Locator búsqueda de conveniencia: sin identificador o ante un fallo remoto devuelve una
// Location vacía, igual que cuando no hay coincidencia.
type Locator struct {
	remote OccupancyAPI
	log    *logger.Logger
}

func NewLocator(remote OccupancyAPI, log *logger.Logger) *Locator {
	if log == nil {
		log = logger.Nop()
	}
	return &Locator{remote: remote, log: log.Component("locator")}
}

func (l *Locator) Locate(ctx context.Context, q model.LocateQuery) model.Location {
	q.WorkItemID = strings.TrimSpace(q.WorkItemID)
	q.ContainerID = strings.TrimSpace(q.ContainerID)
	if q.Empty() {
		return model.Location{}
	}
	loc, err := l.remote.Locate(ctx, q)
	if err != nil {
		l.log.Warn().Err(err).Str("work_item_id", q.WorkItemID).Str("container_id", q.ContainerID).Msg("localizar")
		return model.Location{}
	}
	return loc
}
