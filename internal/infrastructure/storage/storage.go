// Package storage selecciona el adaptador de persistencia según DB_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/Eddiexian/AI-Pr/internal/domain/repository"
	"github.com/Eddiexian/AI-Pr/internal/infrastructure/postgres"
	"github.com/Eddiexian/AI-Pr/internal/infrastructure/sqlite"
	"github.com/Eddiexian/AI-Pr/pkg/config"
)

// Store agrupa los puertos de persistencia de un driver y su cierre.
type Store struct {
	Driver     string
	Users      repository.UserRepository
	Layouts    repository.LayoutRepository
	Components repository.ComponentRepository
	Occupancy  repository.OccupancyRepository
	Tx         repository.TxRunner

	close func()
}

// Close libera el pool o la conexión.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open abre el almacenamiento configurado. Con postgres el esquema se aplica si AutoMigrate;
// con sqlite siempre (archivo local de desarrollo).
func Open(ctx context.Context, cfg config.DBConfig) (*Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return &Store{
			Driver:     cfg.Driver,
			Users:      postgres.NewUserRepository(pool),
			Layouts:    postgres.NewLayoutRepository(pool),
			Components: postgres.NewComponentRepository(pool),
			Occupancy:  postgres.NewOccupancyRepository(pool),
			Tx:         postgres.NewTxRunner(pool),
			close:      pool.Close,
		}, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:     cfg.Driver,
			Users:      sqlite.NewUserRepository(db),
			Layouts:    sqlite.NewLayoutRepository(db),
			Components: sqlite.NewComponentRepository(db),
			Occupancy:  sqlite.NewOccupancyRepository(db),
			Tx:         sqlite.NewTxRunner(db),
			close:      func() { _ = db.Close() },
		}, nil
	}
	return nil, fmt.Errorf("driver de almacenamiento no soportado: %q", cfg.Driver)
}
