// Package storage contiene los medios clave-valor donde se persisten catálogos y el
// directorio de usuarios, y la fábrica que elige uno según la configuración.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/print3d-api/internal/domain/repository"
	"github.com/jhoicas/print3d-api/internal/infrastructure/postgres"
	"github.com/jhoicas/print3d-api/pkg/config"
)

// Medium medio abierto más su función de cierre.
type Medium struct {
	Store repository.KeyValueStore
	Close func() error
}

// Open abre el medio indicado por cfg.Storage.Driver.
func Open(ctx context.Context, cfg *config.Config) (*Medium, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return &Medium{Store: NewMemoryStore(), Close: func() error { return nil }}, nil
	case config.StorageSQLite:
		s, err := NewSQLiteStore(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Medium{Store: s, Close: s.Close}, nil
	case config.StorageRedis:
		s, err := NewRedisStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		return &Medium{Store: s, Close: s.Close}, nil
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		repo, err := postgres.NewKVRepository(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return &Medium{Store: repo, Close: func() error { pool.Close(); return nil }}, nil
	default:
		return nil, fmt.Errorf("driver de almacenamiento no soportado: %s", cfg.Storage.Driver)
	}
}
