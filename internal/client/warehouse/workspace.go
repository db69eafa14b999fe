package warehouse

import (
	"sync"

	"github.com/Eddiexian/AI-Pr/internal/client/model"
	"github.com/Eddiexian/AI-Pr/pkg/logger"
)

// Workspace agregado compartido por Directory, Components y Overlay. Cada mutación
// confirmada termina en commit, que escribe el snapshot en el SnapshotStore.
//
// epoch avanza en cada Reset: una respuesta remota pedida antes del Reset no se aplica.
type Workspace struct {
	mu        sync.RWMutex
	epoch     uint64
	layouts   []model.Layout
	current   *model.LayoutDetail
	counts    map[string]int
	cassettes map[string]int

	saveMu sync.Mutex
	store  SnapshotStore
	log    *logger.Logger
}

// NewWorkspace crea un workspace vacío. store nil = MemorySnapshotStore.
func NewWorkspace(store SnapshotStore, log *logger.Logger) *Workspace {
	if store == nil {
		store = NewMemorySnapshotStore()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Workspace{
		layouts:   []model.Layout{},
		counts:    make(map[string]int),
		cassettes: make(map[string]int),
		store:     store,
		log:       log.Component("workspace"),
	}
}

// Restore carga el último snapshot; sin snapshot el workspace queda vacío.
func (w *Workspace) Restore() error {
	snap, ok, err := w.store.Load()
	if err != nil {
		w.log.Error().Err(err).Msg("leer snapshot")
		return err
	}
	if !ok {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.layouts = append([]model.Layout{}, snap.Layouts...)
	w.current = snap.Current
	w.counts = make(map[string]int, len(snap.Counts))
	for k, v := range snap.Counts {
		w.counts[k] = v
	}
	w.cassettes = make(map[string]int, len(snap.CassetteCounts))
	for k, v := range snap.CassetteCounts {
		w.cassettes[k] = v
	}
	return nil
}

// Reset vacía el estado local y el snapshot (p.ej. al cerrar sesión).
func (w *Workspace) Reset() {
	w.mu.Lock()
	w.epoch++
	w.layouts = []model.Layout{}
	w.current = nil
	w.counts = make(map[string]int)
	w.cassettes = make(map[string]int)
	w.mu.Unlock()
	w.commit()
}

// Epoch generación actual del workspace.
func (w *Workspace) Epoch() uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.epoch
}

// staleLocked indica si hubo un Reset desde epoch. Requiere mu tomado.
func (w *Workspace) staleLocked(epoch uint64, log *logger.Logger, op string) bool {
	if w.epoch == epoch {
		return false
	}
	log.Debug().Str("op", op).Msg("workspace reiniciado durante la llamada, respuesta descartada")
	return true
}

// Snapshot copia del estado persistible.
func (w *Workspace) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snapshotLocked()
}

func (w *Workspace) snapshotLocked() Snapshot {
	snap := Snapshot{
		Layouts:        append([]model.Layout{}, w.layouts...),
		Counts:         make(map[string]int, len(w.counts)),
		CassetteCounts: make(map[string]int, len(w.cassettes)),
	}
	if w.current != nil {
		cur := cloneDetail(*w.current)
		snap.Current = &cur
	}
	for k, v := range w.counts {
		snap.Counts[k] = v
	}
	for k, v := range w.cassettes {
		snap.CassetteCounts[k] = v
	}
	return snap
}

// commit escribe el estado actual. saveMu serializa las escrituras para que la última
// siempre refleje el estado más reciente; un fallo se registra y no revierte nada.
func (w *Workspace) commit() {
	w.saveMu.Lock()
	defer w.saveMu.Unlock()
	if err := w.store.Save(w.Snapshot()); err != nil {
		w.log.Error().Err(err).Msg("persistir snapshot")
	}
}

func cloneDetail(d model.LayoutDetail) model.LayoutDetail {
	out := d
	out.Components = make([]model.Component, len(d.Components))
	copy(out.Components, d.Components)
	return out
}
