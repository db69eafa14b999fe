package warehouse

import (
	"context"

	"github.com/Eddiexian/AI-Pr/internal/client/model"
	"github.com/Eddiexian/AI-Pr/internal/domain/bincode"
	"github.com/Eddiexian/AI-Pr/pkg/logger"
)

// Components colección de componentes del layout actual.
type Components struct {
	ws     *Workspace
	remote ComponentAPI
	log    *logger.Logger
}

func NewComponents(ws *Workspace, remote ComponentAPI, log *logger.Logger) *Components {
	if log == nil {
		log = logger.Nop()
	}
	return &Components{ws: ws, remote: remote, log: log.Component("components")}
}

// Add crea el componente en layoutID. El componente canónico devuelto por el backend se
// agrega localmente solo si layoutID sigue siendo el layout actual al resolver la llamada.
func (c *Components) Add(ctx context.Context, layoutID string, draft model.ComponentDraft) (model.Component, error) {
	epoch := c.ws.Epoch()
	comp, err := c.remote.AddComponent(ctx, layoutID, draft)
	if err != nil {
		c.log.Error().Err(err).Str("op", "add").Str("layout_id", layoutID).Str("type", draft.Type).Msg("agregar componente")
		return model.Component{}, err
	}
	c.ws.mu.Lock()
	attached := !c.ws.staleLocked(epoch, c.log, "add") && c.ws.current != nil && c.ws.current.ID == layoutID
	if attached {
		c.ws.current.Components = append(c.ws.current.Components, comp)
	}
	c.ws.mu.Unlock()
	if !attached {
		c.log.Debug().Str("layout_id", layoutID).Str("component_id", comp.ID).Msg("selección cambió, componente no agregado localmente")
		return comp, nil
	}
	c.ws.commit()
	return comp, nil
}

// Update envía el parche y sobrescribe la copia local con los valores confirmados,
// conservando el contenido WIP adjuntado. Si el componente ya no está en caché no hace nada.
func (c *Components) Update(ctx context.Context, id string, patch model.ComponentPatch) (model.Component, error) {
	epoch := c.ws.Epoch()
	comp, err := c.remote.UpdateComponent(ctx, id, patch)
	if err != nil {
		c.log.Error().Err(err).Str("op", "update").Str("component_id", id).Msg("actualizar componente")
		return model.Component{}, err
	}
	c.ws.mu.Lock()
	hit := false
	if c.ws.current != nil && !c.ws.staleLocked(epoch, c.log, "update") {
		for i := range c.ws.current.Components {
			if c.ws.current.Components[i].ID == id {
				comp.Contents = c.ws.current.Components[i].Contents
				c.ws.current.Components[i] = comp
				hit = true
				break
			}
		}
	}
	c.ws.mu.Unlock()
	if hit {
		c.ws.commit()
	}
	return comp, nil
}

// Remove borra remoto primero y luego filtra el componente de la colección local.
func (c *Components) Remove(ctx context.Context, id string) error {
	epoch := c.ws.Epoch()
	if err := c.remote.DeleteComponent(ctx, id); err != nil {
		c.log.Error().Err(err).Str("op", "remove").Str("component_id", id).Msg("eliminar componente")
		return err
	}
	c.ws.mu.Lock()
	hit := false
	if c.ws.current != nil && !c.ws.staleLocked(epoch, c.log, "remove") {
		kept := make([]model.Component, 0, len(c.ws.current.Components))
		for _, comp := range c.ws.current.Components {
			if comp.ID == id {
				hit = true
				continue
			}
			kept = append(kept, comp)
		}
		c.ws.current.Components = kept
	}
	c.ws.mu.Unlock()
	if hit {
		c.ws.commit()
	}
	return nil
}

// List componentes del layout actual (vacío si no hay selección).
func (c *Components) List() []model.Component {
	c.ws.mu.RLock()
	defer c.ws.mu.RUnlock()
	if c.ws.current == nil {
		return []model.Component{}
	}
	return append([]model.Component{}, c.ws.current.Components...)
}

// Get busca un componente del layout actual por id.
func (c *Components) Get(id string) (model.Component, bool) {
	c.ws.mu.RLock()
	defer c.ws.mu.RUnlock()
	if c.ws.current == nil {
		return model.Component{}, false
	}
	for _, comp := range c.ws.current.Components {
		if comp.ID == id {
			return comp, true
		}
	}
	return model.Component{}, false
}

// Attach adjunta contenido WIP a los bins del layout actual con ese código. Es dato de
// presentación: no se persiste. Devuelve cuántos componentes lo recibieron.
func (c *Components) Attach(code string, contents []model.Container) int {
	code = bincode.Normalize(code)
	c.ws.mu.Lock()
	defer c.ws.mu.Unlock()
	if c.ws.current == nil || code == "" {
		return 0
	}
	n := 0
	for i := range c.ws.current.Components {
		comp := &c.ws.current.Components[i]
		if comp.Type == model.ComponentBin && bincode.Normalize(comp.CodeOrEmpty()) == code {
			comp.Contents = contents
			n++
		}
	}
	return n
}
