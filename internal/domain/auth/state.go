package auth

import "github.com/jhoicas/print3d-api/internal/domain/entity"

// State agregado de autenticación: directorio de usuarios y sesión actual.
// IsAuthenticated es true si y solo si CurrentUser != nil.
type State struct {
	Users           entity.Directory
	CurrentUser     *entity.User
	IsAuthenticated bool
}

// InitialState estado sin usuarios ni sesión.
func InitialState() State {
	return State{Users: entity.Directory{}}
}

// Username del usuario autenticado, o "" si no hay sesión.
func (s State) Username() string {
	if !s.IsAuthenticated || s.CurrentUser == nil {
		return ""
	}
	return s.CurrentUser.Username
}

func cloneDirectory(d entity.Directory) entity.Directory {
	out := make(entity.Directory, len(d)+1)
	for k, v := range d {
		out[k] = v
	}
	return out
}

// UserByID devuelve el usuario del directorio con ese ID.
func (s State) UserByID(id string) (entity.User, bool) {
	key, ok := findByID(s.Users, id)
	if !ok {
		return entity.User{}, false
	}
	return s.Users[key].User, true
}
