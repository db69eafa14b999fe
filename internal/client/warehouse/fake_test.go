package warehouse_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Eddiexian/AI-Pr/internal/client/model"
)

var errBackend = errors.New("backend caído")

// hold bloquea una llamada ya aplicada en el backend hasta que el test la libere, para
// controlar en qué orden resuelven las llamadas concurrentes.
type hold struct {
	started chan struct{}
	release chan struct{}
}

func newHold() *hold {
	return &hold{started: make(chan struct{}), release: make(chan struct{})}
}

// fakeRemote backend en memoria que implementa LayoutAPI, ComponentAPI y OccupancyAPI.
type fakeRemote struct {
	mu        sync.Mutex
	seq       int
	layouts   []model.Layout
	comps     map[string]model.Component
	counts    map[string]int
	cassettes map[string]int
	wip       map[string][]model.Container
	located   map[string]model.Location

	fail  map[string]error
	calls map[string]int
	holds map[string][]*hold
	codes map[string][][]string
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		comps:     make(map[string]model.Component),
		counts:    make(map[string]int),
		cassettes: make(map[string]int),
		wip:       make(map[string][]model.Container),
		located:   make(map[string]model.Location),
		fail:      make(map[string]error),
		calls:     make(map[string]int),
		holds:     make(map[string][]*hold),
		codes:     make(map[string][][]string),
	}
}

func (f *fakeRemote) failOn(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.fail, op)
		return
	}
	f.fail[op] = err
}

func (f *fakeRemote) holdNext(op string) *hold {
	f.mu.Lock()
	defer f.mu.Unlock()
	h := newHold()
	f.holds[op] = append(f.holds[op], h)
	return h
}

func (f *fakeRemote) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// enter registra la llamada y devuelve el error inyectado y el hold pendiente, si hay.
// Debe llamarse con f.mu tomado.
func (f *fakeRemote) enter(op string) (*hold, error) {
	f.calls[op]++
	var h *hold
	if q := f.holds[op]; len(q) > 0 {
		h, f.holds[op] = q[0], q[1:]
	}
	return h, f.fail[op]
}

func wait(h *hold) {
	if h == nil {
		return
	}
	close(h.started)
	<-h.release
}

func (f *fakeRemote) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeRemote) ListLayouts(ctx context.Context) ([]model.Layout, error) {
	f.mu.Lock()
	h, err := f.enter("list")
	out := append([]model.Layout{}, f.layouts...)
	f.mu.Unlock()
	wait(h)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (f *fakeRemote) CreateLayout(ctx context.Context, in model.LayoutDraft) (model.Layout, error) {
	f.mu.Lock()
	h, err := f.enter("create")
	var l model.Layout
	if err == nil {
		l = model.Layout{ID: f.nextID("L"), Name: in.Name, Width: in.Width, Height: in.Height, Floor: in.Floor, Area: in.Area}
		if l.Width == 0 {
			l.Width = 800
		}
		if l.Height == 0 {
			l.Height = 600
		}
		f.layouts = append(f.layouts, l)
	}
	f.mu.Unlock()
	wait(h)
	return l, err
}

func (f *fakeRemote) GetLayout(ctx context.Context, id string) (model.LayoutDetail, error) {
	f.mu.Lock()
	h, err := f.enter("get")
	var out model.LayoutDetail
	if err == nil {
		err = errNotFound
		for _, l := range f.layouts {
			if l.ID == id {
				out = model.LayoutDetail{Layout: l, Components: f.componentsOf(id)}
				err = nil
			}
		}
	}
	f.mu.Unlock()
	wait(h)
	return out, err
}

var errNotFound = errors.New("404")

func (f *fakeRemote) componentsOf(layoutID string) []model.Component {
	out := []model.Component{}
	for _, c := range f.comps {
		if c.LayoutID == layoutID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeRemote) UpdateLayout(ctx context.Context, id string, in model.LayoutPatch) (model.Layout, error) {
	f.mu.Lock()
	h, err := f.enter("update-layout")
	var out model.Layout
	if err == nil {
		err = errNotFound
		for i := range f.layouts {
			if f.layouts[i].ID != id {
				continue
			}
			l := &f.layouts[i]
			if in.Name != nil {
				l.Name = *in.Name
			}
			if in.Width != nil {
				l.Width = *in.Width
			}
			if in.Height != nil {
				l.Height = *in.Height
			}
			if in.Floor != nil {
				l.Floor = *in.Floor
			}
			if in.Area != nil {
				l.Area = *in.Area
			}
			out, err = *l, nil
		}
	}
	f.mu.Unlock()
	wait(h)
	return out, err
}

func (f *fakeRemote) DeleteLayout(ctx context.Context, id string) error {
	f.mu.Lock()
	h, err := f.enter("delete-layout")
	if err == nil {
		kept := f.layouts[:0]
		for _, l := range f.layouts {
			if l.ID != id {
				kept = append(kept, l)
			}
		}
		f.layouts = kept
		for cid, c := range f.comps {
			if c.LayoutID == id {
				delete(f.comps, cid)
			}
		}
	}
	f.mu.Unlock()
	wait(h)
	return err
}

func (f *fakeRemote) AddComponent(ctx context.Context, layoutID string, in model.ComponentDraft) (model.Component, error) {
	f.mu.Lock()
	h, err := f.enter("add")
	var c model.Component
	if err == nil {
		c = model.Component{
			ID:       f.nextID("C"),
			LayoutID: layoutID,
			Type:     in.Type,
			X:        deref(in.X, 0),
			Y:        deref(in.Y, 0),
			Width:    deref(in.Width, 100),
			Height:   deref(in.Height, 100),
			Rotation: deref(in.Rotation, 0),
		}
		if in.Code != "" {
			code := in.Code
			c.Code = &code
		}
		f.comps[c.ID] = c
	}
	f.mu.Unlock()
	wait(h)
	return c, err
}

func (f *fakeRemote) UpdateComponent(ctx context.Context, id string, in model.ComponentPatch) (model.Component, error) {
	f.mu.Lock()
	h, err := f.enter("update")
	var c model.Component
	if err == nil {
		var ok bool
		if c, ok = f.comps[id]; !ok {
			err = errNotFound
		} else {
			c.X = deref(in.X, c.X)
			c.Y = deref(in.Y, c.Y)
			c.Width = deref(in.Width, c.Width)
			c.Height = deref(in.Height, c.Height)
			c.Rotation = deref(in.Rotation, c.Rotation)
			if in.Code != nil {
				code := *in.Code
				c.Code = &code
			}
			f.comps[id] = c
		}
	}
	f.mu.Unlock()
	wait(h)
	return c, err
}

func (f *fakeRemote) DeleteComponent(ctx context.Context, id string) error {
	f.mu.Lock()
	h, err := f.enter("remove")
	if err == nil {
		delete(f.comps, id)
	}
	f.mu.Unlock()
	wait(h)
	return err
}

func (f *fakeRemote) Counts(ctx context.Context, binCodes []string) (map[string]int, error) {
	return f.countsCall("counts", binCodes, f.counts)
}

func (f *fakeRemote) CassetteCounts(ctx context.Context, binCodes []string) (map[string]int, error) {
	return f.countsCall("cassette-counts", binCodes, f.cassettes)
}

func (f *fakeRemote) countsCall(op string, binCodes []string, src map[string]int) (map[string]int, error) {
	f.mu.Lock()
	h, err := f.enter(op)
	f.codes[op] = append(f.codes[op], append([]string{}, binCodes...))
	out := make(map[string]int)
	for _, code := range binCodes {
		if n, ok := src[code]; ok {
			out[code] = n
		}
	}
	f.mu.Unlock()
	wait(h)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (f *fakeRemote) WIP(ctx context.Context, binCodes []string) (map[string][]model.Container, error) {
	f.mu.Lock()
	h, err := f.enter("wip")
	out := make(map[string][]model.Container)
	for _, code := range binCodes {
		out[code] = f.wip[code]
	}
	f.mu.Unlock()
	wait(h)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (f *fakeRemote) Locate(ctx context.Context, q model.LocateQuery) (model.Location, error) {
	f.mu.Lock()
	h, err := f.enter("locate")
	loc := f.located[q.WorkItemID+"|"+q.ContainerID]
	f.mu.Unlock()
	wait(h)
	if err != nil {
		return model.Location{}, err
	}
	return loc, nil
}

// serverComponentIDs ids confirmados en el backend para un layout.
func (f *fakeRemote) serverComponentIDs(layoutID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for _, c := range f.componentsOf(layoutID) {
		ids = append(ids, c.ID)
	}
	sort.Strings(ids)
	return ids
}

func deref(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
