package warehouse

import (
	"context"
	"strings"
	"sync"

	"github.com/Eddiexian/AI-Pr/internal/client/model"
	"github.com/Eddiexian/AI-Pr/internal/domain"
	"github.com/Eddiexian/AI-Pr/pkg/logger"
)

// DetailHook se invoca en segundo plano cada vez que se carga el detalle de un layout.
type DetailHook func(ctx context.Context, detail model.LayoutDetail)

// Directory directorio de layouts y selección del layout actual.
type Directory struct {
	ws     *Workspace
	remote LayoutAPI
	log    *logger.Logger

	hookMu sync.RWMutex
	hook   DetailHook
	wg     sync.WaitGroup
}

func NewDirectory(ws *Workspace, remote LayoutAPI, log *logger.Logger) *Directory {
	if log == nil {
		log = logger.Nop()
	}
	return &Directory{ws: ws, remote: remote, log: log.Component("directory")}
}

// OnDetailLoaded registra el hook de carga de detalle (lo usa el overlay).
func (d *Directory) OnDetailLoaded(hook DetailHook) {
	d.hookMu.Lock()
	defer d.hookMu.Unlock()
	d.hook = hook
}

// Wait espera a que terminen los hooks lanzados por Open.
func (d *Directory) Wait() { d.wg.Wait() }

// List trae todos los layouts y reemplaza el directorio local. Ante un fallo devuelve una
// lista vacía y el directorio local queda intacto.
func (d *Directory) List(ctx context.Context) ([]model.Layout, error) {
	epoch := d.ws.Epoch()
	list, err := d.remote.ListLayouts(ctx)
	if err != nil {
		d.log.Error().Err(err).Str("op", "list").Msg("listar layouts")
		return []model.Layout{}, err
	}
	d.ws.mu.Lock()
	if d.ws.staleLocked(epoch, d.log, "list") {
		d.ws.mu.Unlock()
		return list, nil
	}
	d.ws.layouts = append([]model.Layout{}, list...)
	d.ws.mu.Unlock()
	d.ws.commit()
	return list, nil
}

// Create crea el layout y lo agrega al directorio solo tras la confirmación.
// Ante un fallo el ID devuelto es "".
func (d *Directory) Create(ctx context.Context, draft model.LayoutDraft) (model.Layout, error) {
	draft.Name = strings.TrimSpace(draft.Name)
	if draft.Name == "" || draft.Width < 0 || draft.Height < 0 {
		return model.Layout{}, domain.ErrInvalidInput
	}
	epoch := d.ws.Epoch()
	layout, err := d.remote.CreateLayout(ctx, draft)
	if err != nil {
		d.log.Error().Err(err).Str("op", "create").Str("name", draft.Name).Msg("crear layout")
		return model.Layout{}, err
	}
	d.ws.mu.Lock()
	if d.ws.staleLocked(epoch, d.log, "create") {
		d.ws.mu.Unlock()
		return layout, nil
	}
	d.ws.layouts = append(d.ws.layouts, layout)
	d.ws.mu.Unlock()
	d.ws.commit()
	return layout, nil
}

// Update aplica los campos aceptados por el backend a la entrada del directorio y, si el
// layout es el actual, a su copia en caché (sin volver a pedir el detalle).
func (d *Directory) Update(ctx context.Context, id string, patch model.LayoutPatch) (model.Layout, error) {
	epoch := d.ws.Epoch()
	layout, err := d.remote.UpdateLayout(ctx, id, patch)
	if err != nil {
		d.log.Error().Err(err).Str("op", "update").Str("layout_id", id).Msg("actualizar layout")
		return model.Layout{}, err
	}
	d.ws.mu.Lock()
	if d.ws.staleLocked(epoch, d.log, "update") {
		d.ws.mu.Unlock()
		return layout, nil
	}
	for i := range d.ws.layouts {
		if d.ws.layouts[i].ID == id {
			d.ws.layouts[i] = layout
			break
		}
	}
	if d.ws.current != nil && d.ws.current.ID == id {
		d.ws.current.Layout = layout
	}
	d.ws.mu.Unlock()
	d.ws.commit()
	return layout, nil
}

// Remove borra remoto primero; tras la confirmación quita el id del directorio y
// deselecciona el layout si era el actual. Los componentes los borra el backend en cascada.
func (d *Directory) Remove(ctx context.Context, id string) error {
	epoch := d.ws.Epoch()
	if err := d.remote.DeleteLayout(ctx, id); err != nil {
		d.log.Error().Err(err).Str("op", "remove").Str("layout_id", id).Msg("eliminar layout")
		return err
	}
	d.ws.mu.Lock()
	if d.ws.staleLocked(epoch, d.log, "remove") {
		d.ws.mu.Unlock()
		return nil
	}
	kept := d.ws.layouts[:0]
	for _, l := range d.ws.layouts {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	d.ws.layouts = kept
	if d.ws.current != nil && d.ws.current.ID == id {
		d.ws.current = nil
	}
	d.ws.mu.Unlock()
	d.ws.commit()
	return nil
}

// Open trae el detalle del layout, lo deja como actual y dispara el hook sin esperarlo.
// Si el workspace se reinició durante la llamada el detalle se devuelve sin seleccionarlo.
func (d *Directory) Open(ctx context.Context, id string) (model.LayoutDetail, error) {
	epoch := d.ws.Epoch()
	detail, err := d.remote.GetLayout(ctx, id)
	if err != nil {
		d.log.Error().Err(err).Str("op", "open").Str("layout_id", id).Msg("cargar layout")
		return model.LayoutDetail{}, err
	}
	if detail.Components == nil {
		detail.Components = []model.Component{}
	}
	cur := cloneDetail(detail)

	d.ws.mu.Lock()
	if d.ws.staleLocked(epoch, d.log, "open") {
		d.ws.mu.Unlock()
		return detail, nil
	}
	d.ws.current = &cur
	found := false
	for i := range d.ws.layouts {
		if d.ws.layouts[i].ID == id {
			d.ws.layouts[i] = detail.Layout
			found = true
			break
		}
	}
	if !found {
		d.ws.layouts = append(d.ws.layouts, detail.Layout)
	}
	d.ws.mu.Unlock()
	d.ws.commit()

	d.hookMu.RLock()
	hook := d.hook
	d.hookMu.RUnlock()
	if hook != nil {
		hookCtx := context.WithoutCancel(ctx)
		snapshot := cloneDetail(detail)
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			hook(hookCtx, snapshot)
		}()
	}
	return detail, nil
}

// Deselect deja sin layout actual.
func (d *Directory) Deselect() {
	d.ws.mu.Lock()
	d.ws.current = nil
	d.ws.mu.Unlock()
	d.ws.commit()
}

// Layouts copia del directorio local.
func (d *Directory) Layouts() []model.Layout {
	d.ws.mu.RLock()
	defer d.ws.mu.RUnlock()
	return append([]model.Layout{}, d.ws.layouts...)
}

// Current copia del layout actual.
func (d *Directory) Current() (model.LayoutDetail, bool) {
	d.ws.mu.RLock()
	defer d.ws.mu.RUnlock()
	if d.ws.current == nil {
		return model.LayoutDetail{}, false
	}
	return cloneDetail(*d.ws.current), true
}
