// Package auth casos de uso de autenticación y administración de usuarios sobre la sesión.
// Las credenciales se verifican aquí; el reductor de auth solo registra el resultado.
package auth

import (
	"context"
	"slices"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/print3d-api/internal/application/dto"
	"github.com/jhoicas/print3d-api/internal/application/session"
	"github.com/jhoicas/print3d-api/internal/domain"
	authstate "github.com/jhoicas/print3d-api/internal/domain/auth"
	"github.com/jhoicas/print3d-api/internal/domain/entity"
	"github.com/jhoicas/print3d-api/pkg/jwt"
	"github.com/jhoicas/print3d-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase registro, login, logout y administración del directorio.
type AuthUseCase struct {
	sess   *session.Session
	jwtCfg JWTConfig
	cost   int
	log    *logger.Logger
}

// Option configura el caso de uso.
type Option func(*AuthUseCase)

// WithPasswordCost fija el costo de bcrypt (bcrypt.MinCost en tests).
func WithPasswordCost(cost int) Option {
	return func(uc *AuthUseCase) { uc.cost = cost }
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(sess *session.Session, jwtCfg JWTConfig, log *logger.Logger, opts ...Option) *AuthUseCase {
	uc := &AuthUseCase{sess: sess, jwtCfg: jwtCfg, cost: bcrypt.DefaultCost, log: log.Component("auth")}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// RegisterUser autorregistro. El primer usuario del directorio queda como admin; el resto como user.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	return uc.createUser(ctx, in.Username, in.Email, in.Password, "")
}

// CreateUser alta de usuario por un administrador.
func (uc *AuthUseCase) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	return uc.createUser(ctx, in.Username, in.Email, in.Password, role)
}

func (uc *AuthUseCase) createUser(ctx context.Context, username, email, password, role string) (*dto.UserResponse, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}
	if role != "" && !validRole(role) {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if err != nil {
		return nil, err
	}
	key := entity.NormalizeUsername(username)

	var out *dto.UserResponse
	err = uc.sess.Run(ctx, func(tx *session.Tx) error {
		users := tx.Auth().Users
		if _, exists := users[key]; exists {
			return domain.ErrDuplicate
		}
		if role == "" {
			role = entity.RoleUser
			if len(users) == 0 {
				role = entity.RoleAdmin
			}
		}
		st := tx.DispatchAuth(authstate.CreateUser{Username: username, Email: email, Password: string(hash), Role: role})
		resp := toUserResponse(st.Users[key].User)
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("username", key).Str("role", out.Role).Msg("usuario creado")
	return out, nil
}

// Login verifica username/password, abre la sesión (LOGIN) y devuelve token + usuario.
// Un login con otro usuario reemplaza al actual: el catálogo se recarga para el nuevo.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	key := entity.NormalizeUsername(in.Username)
	var user entity.User
	err := uc.sess.Run(ctx, func(tx *session.Tx) error {
		rec, ok := tx.Auth().Users[key]
		if !ok {
			return domain.ErrUserNotFound
		}
		if err := bcrypt.CompareHashAndPassword([]byte(rec.Password), []byte(in.Password)); err != nil {
			return domain.ErrUnauthorized
		}
		if rec.User.Suspended {
			return domain.ErrForbidden
		}
		tx.DispatchAuth(authstate.Login{User: rec.User})
		user = rec.User
		return nil
	})
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("username", key).Msg("sesión iniciada")
	return &dto.LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

// Logout cierra la sesión si userID es el usuario actual; si no, no hace nada.
func (uc *AuthUseCase) Logout(ctx context.Context, userID string) error {
	return uc.sess.Run(ctx, func(tx *session.Tx) error {
		cur := tx.Auth().CurrentUser
		if cur == nil || cur.ID != userID {
			return nil
		}
		tx.DispatchAuth(authstate.Logout{})
		return nil
	})
}

// Me devuelve el usuario de la sesión actual.
func (uc *AuthUseCase) Me(ctx context.Context) (*dto.UserResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	st := uc.sess.Auth()
	if !st.IsAuthenticated || st.CurrentUser == nil {
		return nil, domain.ErrUnauthorized
	}
	resp := toUserResponse(*st.CurrentUser)
	return &resp, nil
}

// ListUsers usuarios del directorio ordenados por clave.
func (uc *AuthUseCase) ListUsers(ctx context.Context) (*dto.UserListResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	users := uc.sess.Auth().Users
	keys := make([]string, 0, len(users))
	for k := range users {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := &dto.UserListResponse{Items: make([]dto.UserResponse, 0, len(keys))}
	for _, k := range keys {
		out.Items = append(out.Items, toUserResponse(users[k].User))
	}
	return out, nil
}

// UpdateUser modifica email, rol o password del usuario con esa clave.
func (uc *AuthUseCase) UpdateUser(ctx context.Context, username string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if in.Role != nil && !validRole(*in.Role) {
		return nil, domain.ErrInvalidInput
	}
	var hashed *string
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), uc.cost)
		if err != nil {
			return nil, err
		}
		h := string(hash)
		hashed = &h
	}
	key := entity.NormalizeUsername(username)

	var out *dto.UserResponse
	err := uc.sess.Run(ctx, func(tx *session.Tx) error {
		rec, ok := tx.Auth().Users[key]
		if !ok {
			return domain.ErrUserNotFound
		}
		user := rec.User
		if in.Email != nil {
			user.Email = *in.Email
		}
		if in.Role != nil {
			user.Role = *in.Role
		}
		st := tx.DispatchAuth(authstate.UpdateUser{UsernameKey: key, User: user, Password: hashed})
		resp := toUserResponse(st.Users[key].User)
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SuspendUser suspende o reactiva por ID. Suspender al usuario actual cierra la sesión.
func (uc *AuthUseCase) SuspendUser(ctx context.Context, userID string, suspended bool) (*dto.UserResponse, error) {
	var out *dto.UserResponse
	err := uc.sess.Run(ctx, func(tx *session.Tx) error {
		if _, ok := findUser(tx.Auth().Users, userID); !ok {
			return domain.ErrUserNotFound
		}
		st := tx.DispatchAuth(authstate.SuspendUser{UserID: userID, Suspended: suspended})
		user, _ := findUser(st.Users, userID)
		resp := toUserResponse(user)
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", userID).Bool("suspended", suspended).Msg("suspensión actualizada")
	return out, nil
}

func findUser(users entity.Directory, id string) (entity.User, bool) {
	for _, rec := range users {
		if rec.User.ID == id {
			return rec.User, true
		}
	}
	return entity.User{}, false
}

func validRole(role string) bool {
	return role == entity.RoleAdmin || role == entity.RoleUser
}

func toUserResponse(u entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		Suspended: u.Suspended,
		CreatedAt: u.CreatedAt,
	}
}
