// seed puebla la base configurada (DB_DRIVER) con usuarios de demo, seis layouts con bins,
// pilares y un bin hexagonal, y contenedores/work-items para los bins.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Eddiexian/AI-Pr/internal/application/auth"
	"github.com/Eddiexian/AI-Pr/internal/domain/entity"
	"github.com/Eddiexian/AI-Pr/internal/domain/repository"
	"github.com/Eddiexian/AI-Pr/internal/infrastructure/mockdata"
	"github.com/Eddiexian/AI-Pr/internal/infrastructure/storage"
	"github.com/Eddiexian/AI-Pr/pkg/config"
	"github.com/Eddiexian/AI-Pr/pkg/logger"
)

type layoutSeed struct {
	name, floor, area string
	hex               bool
}

var layouts = []layoutSeed{
	{"大R區 (Big R)", "1F", "Big R", true},
	{"5F測試區 (5F Test Area)", "5F", "Test", true},
	{"6F測試區 (6F Test Area)", "6F", "Test", true},
	{"6F雷射維修區 (6F Laser Repair)", "6F", "Laser", false},
	{"7F雷射維修區 (7F Laser Repair)", "7F", "Laser", false},
	{"7F非測試區 (7F Non-Test)", "7F", "Production", false},
}

var hexagon = []entity.Point{
	{X: 40, Y: 0}, {X: 80, Y: 20}, {X: 80, Y: 60}, {X: 40, Y: 80}, {X: 0, Y: 60}, {X: 0, Y: 20},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a base de datos")
	}
	defer store.Close()

	wip := mockdata.NewProvider(cfg.Data.MockSeed + 1)
	var binCodes []string

	err = store.Tx.Run(ctx, func(repos repository.Repositories) error {
		for _, name := range []string{entity.RoleAdmin, entity.RoleWorker, entity.RoleMaintainer} {
			existing, err := repos.Users.GetByUsername(ctx, name)
			if err != nil {
				return err
			}
			if existing != nil {
				continue
			}
			u, err := auth.NewUser(name, name, name)
			if err != nil {
				return err
			}
			if err := repos.Users.Create(ctx, u); err != nil {
				return err
			}
		}

		base := time.Now().UTC()
		for i, info := range layouts {
			at := base.Add(time.Duration(i) * time.Millisecond)
			l := &entity.Layout{
				ID: uuid.New().String(), Name: info.name, Width: 1200, Height: 800,
				Floor: info.floor, Area: info.area, CreatedAt: at, UpdatedAt: at,
			}
			if err := repos.Layouts.Create(ctx, l); err != nil {
				return err
			}
			comps := make([]*entity.Component, 0, 14)
			for b := 1; b <= 10; b++ {
				code := fmt.Sprintf("%s-B-%02d", info.floor, b)
				binCodes = append(binCodes, code)
				comps = append(comps, newComponent(l.ID, entity.ComponentBin, float64(50+(b-1)*110), 100, 80, 80, code, "#334155"))
			}
			for p := 1; p <= 3; p++ {
				comps = append(comps, newComponent(l.ID, entity.ComponentPillar, float64(200+p*300), 400, 40, 40, fmt.Sprintf("P-%d", p), "#94a3b8"))
			}
			if info.hex {
				code := info.floor + "-HEX-01"
				binCodes = append(binCodes, code)
				hex := newComponent(l.ID, entity.ComponentBin, 100, 600, 80, 80, code, "#1e293b")
				hex.ShapePoints = hexagon
				comps = append(comps, hex)
			}
			for j, c := range comps {
				c.CreatedAt = at.Add(time.Duration(j) * time.Microsecond)
				c.UpdatedAt = c.CreatedAt
				if err := repos.Components.Create(ctx, c); err != nil {
					return err
				}
			}
		}

		contents, err := wip.WIP(ctx, binCodes)
		if err != nil {
			return err
		}
		for code, containers := range contents {
			for _, c := range containers {
				// ids aleatorios pueden repetirse entre bins; se prefijan con el código
				c.ID = code + "/" + c.ID
				for k := range c.Units {
					c.Units[k].ID = c.ID + "/" + c.Units[k].ID
				}
				if err := repos.Containers.PutContainer(ctx, code, c); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("siembra de datos")
	}
	log.Info().Int("layouts", len(layouts)).Int("bins", len(binCodes)).Str("driver", store.Driver).Msg("base de datos sembrada")
}

func newComponent(layoutID, typ string, x, y, w, h float64, code, color string) *entity.Component {
	props, _ := json.Marshal(map[string]string{"color": color})
	return &entity.Component{
		ID: uuid.New().String(), LayoutID: layoutID, Type: typ,
		X: x, Y: y, Width: w, Height: h, Code: code, Props: props,
	}
}
