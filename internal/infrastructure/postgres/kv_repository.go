package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/print3d-api/internal/domain/repository"
)

// Asegura que KVRepo implementa repository.KeyValueStore.
var _ repository.KeyValueStore = (*KVRepo)(nil)

const kvSchema = `
	CREATE TABLE IF NOT EXISTS kv_entries (
		entry_key  TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// KVRepo implementación del medio clave-valor sobre PostgreSQL.
type KVRepo struct {
	pool *pgxpool.Pool
}

// NewKVRepository construye el adaptador y crea la tabla si no existe.
func NewKVRepository(ctx context.Context, pool *pgxpool.Pool) (*KVRepo, error) {
	if _, err := pool.Exec(ctx, kvSchema); err != nil {
		return nil, fmt.Errorf("crear kv_entries: %w", err)
	}
	return &KVRepo{pool: pool}, nil
}

// Get obtiene el valor de una clave.
func (r *KVRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.pool.QueryRow(ctx, `SELECT value FROM kv_entries WHERE entry_key = $1`, key).Scan(&value)
	if err != nil {
		if isNoRows(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Set inserta o reemplaza el valor (último escritor gana).
func (r *KVRepo) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_entries (entry_key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (entry_key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err := r.pool.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete elimina una clave.
func (r *KVRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM kv_entries WHERE entry_key = $1`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// SummarizePrints agrega el historial de impresiones de un snapshot directamente en SQL.
// Un snapshot que no es JSON válido hace fallar la consulta; el llamador lo trata como sin datos.
func (r *KVRepo) SummarizePrints(ctx context.Context, key string) (count int, revenue, profit decimal.Decimal, err error) {
	const query = `
		SELECT COUNT(rec),
		       COALESCE(SUM((rec->>'precoUnitario')::numeric * (rec->>'quantidade')::numeric), 0),
		       COALESCE(SUM((rec->>'lucroTotal')::numeric), 0)
		  FROM kv_entries
		  LEFT JOIN LATERAL jsonb_array_elements(value::jsonb -> 'printHistory') AS rec ON true
		 WHERE entry_key = $1`
	err = r.pool.QueryRow(ctx, query, key).Scan(&count, &revenue, &profit)
	if err != nil {
		if isNoRows(err) {
			return 0, decimal.Zero, decimal.Zero, nil
		}
		return 0, decimal.Zero, decimal.Zero, fmt.Errorf("resumen %s: %w", key, err)
	}
	return count, revenue, profit, nil
}
