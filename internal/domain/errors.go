package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrUserNotFound   = errors.New("usuario no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrDuplicate      = errors.New("recurso duplicado")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrForbidden      = errors.New("acceso denegado")
	ErrSessionUser    = errors.New("la sesión activa pertenece a otro usuario")
	ErrNotHydrated    = errors.New("catálogo aún no cargado para la sesión")
	ErrSnapshotFormat = errors.New("snapshot con formato inválido")
)
