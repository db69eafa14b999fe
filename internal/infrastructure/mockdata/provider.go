// Package mockdata simula la base de WIP de planta para desarrollo y demos.
package mockdata

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"sync"

	"github.com/Eddiexian/AI-Pr/internal/application/occupancy"
	"github.com/Eddiexian/AI-Pr/internal/domain/entity"
)

var (
	grades = []string{"A", "A", "A", "B", "P", "B", "A"}
	models = []string{"TX-2024", "RX-9900", "AI-CHIP-V1", "TX-PRO", "NM-100"}
	stages = []string{"LITH", "ETCH", "DEP", "CMP", "CLEAN", "PHOTO"}
)

// DefaultTrackedBins cuántos códigos recientes recuerda Locate.
const DefaultTrackedBins = 4096

var _ occupancy.Provider = (*Provider)(nil)

// Provider genera contenido aleatorio pero estable por código de bin: con la misma semilla,
// el mismo bin siempre tiene los mismos contenedores, así counts, cassette-counts y wip coinciden.
// Locate solo encuentra ids de los últimos bins servidos; se guardan códigos, no contenido.
type Provider struct {
	seed  uint64
	limit int

	mu     sync.Mutex
	recent []string // anillo, next apunta a la posición más vieja
	next   int
	index  map[string]struct{}
}

// Option ajusta el Provider.
type Option func(*Provider)

// WithTrackedBins fija cuántos códigos recuerda Locate (mínimo 1).
func WithTrackedBins(n int) Option {
	return func(p *Provider) {
		if n > 0 {
			p.limit = n
		}
	}
}

// NewProvider crea el proveedor simulado con la semilla indicada.
func NewProvider(seed int64, opts ...Option) *Provider {
	p := &Provider{seed: uint64(seed), limit: DefaultTrackedBins}
	for _, o := range opts {
		o(p)
	}
	p.recent = make([]string, 0, p.limit)
	p.index = make(map[string]struct{}, p.limit)
	return p
}

func (p *Provider) Counts(ctx context.Context, binCodes []string) (map[string]int, error) {
	return p.CassetteCounts(ctx, binCodes)
}

func (p *Provider) CassetteCounts(_ context.Context, binCodes []string) (map[string]int, error) {
	out := make(map[string]int, len(binCodes))
	for _, code := range binCodes {
		out[code] = len(p.bin(code))
	}
	return out, nil
}

func (p *Provider) WIP(_ context.Context, binCodes []string) (map[string][]entity.Container, error) {
	out := make(map[string][]entity.Container, len(binCodes))
	for _, code := range binCodes {
		out[code] = p.bin(code)
	}
	return out, nil
}

func (p *Provider) Locate(_ context.Context, workItemID, containerID string) (entity.Location, error) {
	p.mu.Lock()
	codes := append([]string{}, p.recent...)
	p.mu.Unlock()
	for _, code := range codes {
		for _, c := range generate(p.seed, code) {
			if workItemID != "" {
				for _, u := range c.Units {
					if u.ID == workItemID {
						return entity.Location{BinCode: code, ContainerID: c.ID, WorkItemID: u.ID}, nil
					}
				}
				continue
			}
			if c.ID == containerID {
				return entity.Location{BinCode: code, ContainerID: c.ID}, nil
			}
		}
	}
	return entity.Location{}, nil
}

func (p *Provider) bin(code string) []entity.Container {
	p.track(code)
	return generate(p.seed, code)
}

// track recuerda code para Locate; al llenarse el anillo se olvida el más viejo.
func (p *Provider) track(code string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.index[code]; ok {
		return
	}
	if len(p.recent) < p.limit {
		p.recent = append(p.recent, code)
	} else {
		delete(p.index, p.recent[p.next])
		p.recent[p.next] = code
		p.next = (p.next + 1) % p.limit
	}
	p.index[code] = struct{}{}
}

// Tracked cuántos códigos recuerda hoy Locate.
func (p *Provider) Tracked() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.recent)
}

// generate ~10% de los bins quedan vacíos; el resto tiene 1-5 contenedores de 10-30 unidades.
func generate(seed uint64, code string) []entity.Container {
	h := fnv.New64a()
	_, _ = h.Write([]byte(code))
	r := rand.New(rand.NewPCG(seed, h.Sum64()))

	containers := []entity.Container{}
	if r.Float64() > 0.9 {
		return containers
	}
	n := 1 + r.IntN(5)
	for i := 0; i < n; i++ {
		c := entity.Container{
			ID:       fmt.Sprintf("CST-%04d", 1000+r.IntN(9000)),
			Position: i + 1,
		}
		units := 10 + r.IntN(21)
		c.Units = make([]entity.WorkItem, 0, units)
		for j := 0; j < units; j++ {
			c.Units = append(c.Units, entity.WorkItem{
				ID:         fmt.Sprintf("S%02d-CH%03d", 10+r.IntN(90), 100+r.IntN(900)),
				Model:      models[r.IntN(len(models))],
				Grade:      grades[r.IntN(len(grades))],
				Stage:      stages[r.IntN(len(stages))],
				OperatorID: fmt.Sprintf("OP-%d", 200+r.IntN(301)),
			})
		}
		containers = append(containers, c)
	}
	return containers
}
