// Package catalog contiene el reductor puro del agregado de negocio (entity.Catalog).
//
// Reduce nunca modifica el estado recibido: cada transición copia solo la colección
// que cambia y comparte el resto.
package catalog

import "github.com/jhoicas/print3d-api/internal/domain/entity"

// Reduce aplica la acción al estado y devuelve el nuevo estado. Con action nil devuelve state.
func Reduce(state entity.Catalog, action Action) entity.Catalog {
	if action == nil {
		return state
	}
	return action.apply(state)
}
