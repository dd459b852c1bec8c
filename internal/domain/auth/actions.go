package auth

import "github.com/jhoicas/print3d-api/internal/domain/entity"

// Nombres de acción.
const (
	TypeLogin       = "LOGIN"
	TypeLogout      = "LOGOUT"
	TypeCreateUser  = "CREATE_USER"
	TypeLoadUsers   = "LOAD_USERS"
	TypeUpdateUser  = "UPDATE_USER"
	TypeSuspendUser = "SUSPEND_USER"
)

// Action conjunto cerrado de transiciones de autenticación (ver catalog.Action).
type Action interface {
	Type() string
	apply(r *Reducer, state State) State
}

// Login abre sesión con el usuario dado. No valida credenciales: eso ocurre antes del dispatch.
type Login struct{ User entity.User }

func (Login) Type() string { return TypeLogin }
func (a Login) apply(_ *Reducer, s State) State {
	u := a.User
	s.IsAuthenticated = true
	s.CurrentUser = &u
	return s
}

// Logout cierra la sesión incondicionalmente.
type Logout struct{}

func (Logout) Type() string { return TypeLogout }
func (Logout) apply(_ *Reducer, s State) State {
	s.IsAuthenticated = false
	s.CurrentUser = nil
	return s
}

// CreateUser inserta (o sobrescribe) la entrada del directorio para Username.
// Password se guarda tal cual; el caso de uso entrega el hash.
type CreateUser struct {
	Username string
	Email    string
	Password string
	Role     string
}

func (CreateUser) Type() string { return TypeCreateUser }
func (a CreateUser) apply(r *Reducer, s State) State {
	role := a.Role
	if role == "" {
		role = entity.RoleUser
	}
	user := entity.User{
		ID:        r.newID(),
		Username:  a.Username,
		Email:     a.Email,
		CreatedAt: r.now(),
		Role:      role,
	}
	users := cloneDirectory(s.Users)
	users[entity.NormalizeUsername(a.Username)] = entity.UserRecord{Password: a.Password, User: user}
	s.Users = users
	return s
}

// LoadUsers reemplaza el directorio completo (arranque desde almacenamiento).
type LoadUsers struct{ Users entity.Directory }

func (LoadUsers) Type() string { return TypeLoadUsers }
func (a LoadUsers) apply(_ *Reducer, s State) State {
	s.Users = a.Users
	return s
}

// UpdateUser reemplaza el usuario de la entrada UsernameKey. Si la clave no existe el estado no cambia.
// Password nil conserva la credencial actual.
type UpdateUser struct {
	UsernameKey string
	User        entity.User
	Password    *string
}

func (UpdateUser) Type() string { return TypeUpdateUser }
func (a UpdateUser) apply(_ *Reducer, s State) State {
	current, ok := s.Users[a.UsernameKey]
	if !ok {
		return s
	}
	password := current.Password
	if a.Password != nil {
		password = *a.Password
	}
	users := cloneDirectory(s.Users)
	users[a.UsernameKey] = entity.UserRecord{Password: password, User: a.User}
	s.Users = users
	if s.CurrentUser != nil && s.CurrentUser.ID == a.User.ID {
		u := a.User
		s.CurrentUser = &u
	}
	return s
}

// SuspendUser marca (o desmarca) la suspensión del usuario con ese ID.
// Suspender al usuario de la sesión actual cierra la sesión en la misma transición.
type SuspendUser struct {
	UserID    string
	Suspended bool
}

func (SuspendUser) Type() string { return TypeSuspendUser }
func (a SuspendUser) apply(_ *Reducer, s State) State {
	if key, ok := findByID(s.Users, a.UserID); ok {
		users := cloneDirectory(s.Users)
		rec := users[key]
		rec.User.Suspended = a.Suspended
		users[key] = rec
		s.Users = users
	}
	if a.Suspended && s.CurrentUser != nil && s.CurrentUser.ID == a.UserID {
		s.IsAuthenticated = false
		s.CurrentUser = nil
	}
	return s
}
