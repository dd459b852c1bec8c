package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/print3d-api/internal/application/auth"
	"github.com/jhoicas/print3d-api/internal/application/dto"
	"github.com/jhoicas/print3d-api/internal/application/usecase"
)

// UserHandler administración del directorio de usuarios (solo admin).
type UserHandler struct {
	uc     *auth.AuthUseCase
	report *usecase.ReportUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *auth.AuthUseCase, report *usecase.ReportUseCase) *UserHandler {
	return &UserHandler{uc: uc, report: report}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserListResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListUsers(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateUser(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        username  path  string                  true  "Username"
// @Param        body      body  dto.UpdateUserRequest   true  "Campos a modificar"
// @Success      200       {object}  dto.UserResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/users/{username} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateUser(c.UserContext(), c.Params("username"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Suspend godoc
// @Summary      Suspender o reactivar usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del usuario"
// @Param        body  body  dto.SuspendUserRequest  true  "suspended"
// @Success      200   {object}  dto.UserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/suspension [patch]
func (h *UserHandler) Suspend(c *fiber.Ctx) error {
	var in dto.SuspendUserRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.SuspendUser(c.UserContext(), c.Params("id"), in.Suspended)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de producción por usuario
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SummaryListResponse
// @Router       /api/users/summary [get]
func (h *UserHandler) Summary(c *fiber.Ctx) error {
	out, err := h.report.Summaries(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
