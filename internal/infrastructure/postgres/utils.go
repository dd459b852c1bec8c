package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// isNoRows verifica si la consulta no devolvió filas.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
