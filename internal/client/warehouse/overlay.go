package warehouse

import (
	"context"
	"errors"

	"github.com/Eddiexian/AI-Pr/internal/client/model"
	"github.com/Eddiexian/AI-Pr/internal/domain/bincode"
	"github.com/Eddiexian/AI-Pr/pkg/logger"
)

// Overlay caché de ocupación por código de bin. Las respuestas se fusionan sobre la caché:
// un código ausente en la respuesta conserva su valor anterior.
type Overlay struct {
	ws     *Workspace
	remote OccupancyAPI
	log    *logger.Logger
}

func NewOverlay(ws *Workspace, remote OccupancyAPI, log *logger.Logger) *Overlay {
	if log == nil {
		log = logger.Nop()
	}
	return &Overlay{ws: ws, remote: remote, log: log.Component("overlay")}
}

// FetchCounts consulta el resumen de ocupación. Sin códigos no hay llamada remota.
func (o *Overlay) FetchCounts(ctx context.Context, binCodes []string) (map[string]int, error) {
	return o.fetch(ctx, o.ws.Epoch(), "counts", binCodes, o.remote.Counts, func(w *Workspace) map[string]int { return w.counts })
}

// FetchCassetteCounts consulta la cantidad real de contenedores por bin.
func (o *Overlay) FetchCassetteCounts(ctx context.Context, binCodes []string) (map[string]int, error) {
	return o.fetch(ctx, o.ws.Epoch(), "cassette-counts", binCodes, o.remote.CassetteCounts, func(w *Workspace) map[string]int { return w.cassettes })
}

func (o *Overlay) fetch(
	ctx context.Context,
	epoch uint64,
	op string,
	binCodes []string,
	call func(context.Context, []string) (map[string]int, error),
	cache func(*Workspace) map[string]int,
) (map[string]int, error) {
	codes := bincode.NormalizeAll(binCodes)
	if len(codes) == 0 {
		return map[string]int{}, nil
	}
	res, err := call(ctx, codes)
	if err != nil {
		o.log.Error().Err(err).Str("op", op).Strs("bin_codes", codes).Msg("consultar ocupación")
		return nil, err
	}
	if len(res) == 0 {
		return map[string]int{}, nil
	}
	o.ws.mu.Lock()
	if o.ws.staleLocked(epoch, o.log, op) {
		o.ws.mu.Unlock()
		return res, nil
	}
	dst := cache(o.ws)
	for code, n := range res {
		dst[code] = n
	}
	o.ws.mu.Unlock()
	o.ws.commit()
	return res, nil
}

// FetchWipData devuelve el contenido completo por bin sin guardarlo en caché.
func (o *Overlay) FetchWipData(ctx context.Context, binCodes []string) (map[string][]model.Container, error) {
	codes := bincode.NormalizeAll(binCodes)
	if len(codes) == 0 {
		return map[string][]model.Container{}, nil
	}
	res, err := o.remote.WIP(ctx, codes)
	if err != nil {
		o.log.Error().Err(err).Str("op", "wip").Strs("bin_codes", codes).Msg("consultar WIP")
		return nil, err
	}
	if res == nil {
		res = map[string][]model.Container{}
	}
	return res, nil
}

// Refresh vuelve a pedir ambos conteos para los bins del layout actual.
func (o *Overlay) Refresh(ctx context.Context) error {
	o.ws.mu.RLock()
	epoch := o.ws.epoch
	var codes []string
	if o.ws.current != nil {
		codes = o.ws.current.BinCodes()
	}
	o.ws.mu.RUnlock()
	return o.load(ctx, epoch, codes)
}

// OnDetailLoaded se registra como hook del directorio: pide ambos conteos para los bins
// con código del layout recién cargado, si sigue siendo el actual.
func (o *Overlay) OnDetailLoaded(ctx context.Context, detail model.LayoutDetail) {
	o.ws.mu.RLock()
	epoch := o.ws.epoch
	current := o.ws.current != nil && o.ws.current.ID == detail.ID
	o.ws.mu.RUnlock()
	if !current {
		o.log.Debug().Str("layout_id", detail.ID).Msg("layout ya no es el actual, conteos omitidos")
		return
	}
	_ = o.load(ctx, epoch, detail.BinCodes())
}

func (o *Overlay) load(ctx context.Context, epoch uint64, codes []string) error {
	_, errCounts := o.fetch(ctx, epoch, "counts", codes, o.remote.Counts, func(w *Workspace) map[string]int { return w.counts })
	_, errCassettes := o.fetch(ctx, epoch, "cassette-counts", codes, o.remote.CassetteCounts, func(w *Workspace) map[string]int { return w.cassettes })
	return errors.Join(errCounts, errCassettes)
}

// Counts copia de la caché de resumen.
func (o *Overlay) Counts() map[string]int {
	o.ws.mu.RLock()
	defer o.ws.mu.RUnlock()
	return copyCounts(o.ws.counts)
}

// CassetteCounts copia de la caché de contenedores.
func (o *Overlay) CassetteCounts() map[string]int {
	o.ws.mu.RLock()
	defer o.ws.mu.RUnlock()
	return copyCounts(o.ws.cassettes)
}

func copyCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
