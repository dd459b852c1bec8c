package http

import (
	"slices"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/print3d-api/internal/application/dto"
	"github.com/jhoicas/print3d-api/internal/domain/auth"
)

// sessionReader es el contrato mínimo que necesita el middleware; lo implementa *session.Session.
type sessionReader interface {
	Auth() auth.State
}

// RequireSessionUser exige que el usuario del token sea el usuario de la sesión actual.
// Debe usarse DESPUÉS de AuthMiddleware. El estado es de un único usuario a la vez: un token
// viejo de otro usuario no puede operar sobre el catálogo cargado.
//
// Comportamiento:
//   - 401 SESSION_EXPIRED  → no hay sesión abierta (logout, suspensión o reinicio).
//   - 409 SESSION_MISMATCH → la sesión pertenece a otro usuario.
func RequireSessionUser(sess sessionReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st := sess.Auth()
		if !st.IsAuthenticated || st.CurrentUser == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "SESSION_EXPIRED",
				Message: "no hay sesión activa, inicie sesión nuevamente",
			})
		}
		if st.CurrentUser.ID != GetUserID(c) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:    "SESSION_MISMATCH",
				Message: "la sesión activa pertenece a otro usuario",
			})
		}
		return c.Next()
	}
}

// RequireDirectoryRole valida el usuario del token contra el directorio vigente y no contra
// los claims: una suspensión o un cambio de rol posterior a la emisión del JWT aplica de inmediato.
// Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 USER_NOT_FOUND → el ID del token ya no está en el directorio.
//   - 403 SUSPENDED      → el usuario está suspendido.
//   - 403 FORBIDDEN      → el rol actual no está entre los permitidos.
func RequireDirectoryRole(sess sessionReader, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := sess.Auth().UserByID(GetUserID(c))
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "USER_NOT_FOUND",
				Message: "el usuario del token no existe",
			})
		}
		if user.Suspended {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "SUSPENDED",
				Message: "usuario suspendido",
			})
		}
		if !slices.Contains(roles, user.Role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "permisos insuficientes para esta acción",
			})
		}
		return c.Next()
	}
}
