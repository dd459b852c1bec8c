// Package auth contiene el reductor puro de autenticación y directorio de usuarios.
package auth

import (
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/print3d-api/internal/domain/entity"
)

// Reducer aplica acciones de auth. Guarda el reloj y el generador de IDs que usa CreateUser,
// inyectables para tests.
type Reducer struct {
	now   func() time.Time
	newID func() string
}

// Option configura un Reducer.
type Option func(*Reducer)

// WithClock fija el reloj usado para CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(r *Reducer) { r.now = now }
}

// WithIDGenerator fija el generador de IDs de usuario.
func WithIDGenerator(newID func() string) Option {
	return func(r *Reducer) { r.newID = newID }
}

// NewReducer construye el reductor con reloj UTC y UUIDs por defecto.
func NewReducer(opts ...Option) *Reducer {
	r := &Reducer{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reduce aplica la acción y devuelve el nuevo estado; el estado recibido no se modifica.
func (r *Reducer) Reduce(state State, action Action) State {
	if action == nil {
		return state
	}
	return action.apply(r, state)
}

// findByID busca la primera entrada cuyo usuario tiene ese ID, recorriendo las claves en orden.
func findByID(users entity.Directory, id string) (string, bool) {
	for _, key := range slices.Sorted(maps.Keys(users)) {
		if users[key].User.ID == id {
			return key, true
		}
	}
	return "", false
}
