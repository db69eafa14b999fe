// memrepo.go - repositorios en memoria para tests de casos de uso y handlers
package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/Eddiexian/AI-Pr/internal/domain"
	"github.com/Eddiexian/AI-Pr/internal/domain/entity"
	"github.com/Eddiexian/AI-Pr/internal/domain/repository"
)

var (
	_ repository.UserRepository      = (*MemUsers)(nil)
	_ repository.LayoutRepository    = (*MemLayouts)(nil)
	_ repository.ComponentRepository = (*MemComponents)(nil)
	_ repository.OccupancyRepository = (*MemOccupancy)(nil)
)

// MemStore estado compartido por los repositorios en memoria (cascada layout -> componentes).
type MemStore struct {
	mu         sync.RWMutex
	users      map[string]entity.User
	layouts    map[string]entity.Layout
	layoutSeq  []string
	components map[string]entity.Component
	bins       map[string][]entity.Container
}

// NewMemStore crea un almacén vacío.
func NewMemStore() *MemStore {
	return &MemStore{
		users:      make(map[string]entity.User),
		layouts:    make(map[string]entity.Layout),
		components: make(map[string]entity.Component),
		bins:       make(map[string][]entity.Container),
	}
}

// Users, Layouts, Components y Occupancy devuelven los adaptadores de cada puerto.
func (s *MemStore) Users() *MemUsers           { return &MemUsers{s} }
func (s *MemStore) Layouts() *MemLayouts       { return &MemLayouts{s} }
func (s *MemStore) Components() *MemComponents { return &MemComponents{s} }
func (s *MemStore) Occupancy() *MemOccupancy   { return &MemOccupancy{s} }

// PutBin fija el contenido de un bin (solo tests).
func (s *MemStore) PutBin(code string, containers ...entity.Container) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bins[code] = containers
}

// ComponentCount devuelve cuántos componentes hay en total (para aserciones de cascada).
func (s *MemStore) ComponentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.components)
}

// MemUsers implementa UserRepository.
type MemUsers struct{ s *MemStore }

func (r *MemUsers) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *MemUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *MemUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *MemUsers) UpdateRole(_ context.Context, id, role string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Role = role
	r.s.users[id] = u
	return nil
}

func (r *MemUsers) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		u := u
		list = append(list, &u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Username < list[j].Username })
	return list, nil
}

// MemLayouts implementa LayoutRepository conservando el orden de creación.
type MemLayouts struct{ s *MemStore }

func (r *MemLayouts) Create(_ context.Context, layout *entity.Layout) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.layouts[layout.ID] = *layout
	r.s.layoutSeq = append(r.s.layoutSeq, layout.ID)
	return nil
}

func (r *MemLayouts) GetByID(_ context.Context, id string) (*entity.Layout, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.layouts[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *MemLayouts) Update(_ context.Context, layout *entity.Layout) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.layouts[layout.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.layouts[layout.ID] = *layout
	return nil
}

func (r *MemLayouts) List(_ context.Context) ([]*entity.Layout, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Layout, 0, len(r.s.layoutSeq))
	for _, id := range r.s.layoutSeq {
		l := r.s.layouts[id]
		list = append(list, &l)
	}
	return list, nil
}

func (r *MemLayouts) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.layouts, id)
	for i, lid := range r.s.layoutSeq {
		if lid == id {
			r.s.layoutSeq = append(r.s.layoutSeq[:i], r.s.layoutSeq[i+1:]...)
			break
		}
	}
	for cid, c := range r.s.components {
		if c.LayoutID == id {
			delete(r.s.components, cid)
		}
	}
	return nil
}

// MemComponents implementa ComponentRepository.
type MemComponents struct{ s *MemStore }

func (r *MemComponents) Create(_ context.Context, c *entity.Component) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.layouts[c.LayoutID]; !ok {
		return domain.ErrNotFound
	}
	r.s.components[c.ID] = *c
	return nil
}

func (r *MemComponents) GetByID(_ context.Context, id string) (*entity.Component, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.components[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *MemComponents) Update(_ context.Context, c *entity.Component) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.components[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.components[c.ID] = *c
	return nil
}

func (r *MemComponents) ListByLayout(_ context.Context, layoutID string) ([]*entity.Component, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Component
	for _, c := range r.s.components {
		if c.LayoutID == layoutID {
			c := c
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func (r *MemComponents) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.components, id)
	return nil
}

// MemOccupancy implementa OccupancyRepository sobre los bins cargados con PutBin.
type MemOccupancy struct{ s *MemStore }

func (r *MemOccupancy) ContainerCounts(_ context.Context, binCodes []string) (map[string]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]int)
	for _, code := range binCodes {
		if cs := r.s.bins[code]; len(cs) > 0 {
			out[code] = len(cs)
		}
	}
	return out, nil
}

func (r *MemOccupancy) ContentsByBins(_ context.Context, binCodes []string) (map[string][]entity.Container, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string][]entity.Container)
	for _, code := range binCodes {
		if cs, ok := r.s.bins[code]; ok {
			out[code] = cs
		}
	}
	return out, nil
}

func (r *MemOccupancy) LocateWorkItem(_ context.Context, workItemID string) (entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for code, cs := range r.s.bins {
		for _, c := range cs {
			for _, u := range c.Units {
				if u.ID == workItemID {
					return entity.Location{BinCode: code, ContainerID: c.ID, WorkItemID: u.ID}, nil
				}
			}
		}
	}
	return entity.Location{}, nil
}

func (r *MemOccupancy) LocateContainer(_ context.Context, containerID string) (entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for code, cs := range r.s.bins {
		for _, c := range cs {
			if c.ID == containerID {
				return entity.Location{BinCode: code, ContainerID: c.ID}, nil
			}
		}
	}
	return entity.Location{}, nil
}
