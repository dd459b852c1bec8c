package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/print3d-api/internal/application/dto"
	"github.com/jhoicas/print3d-api/internal/application/usecase"
	"github.com/jhoicas/print3d-api/internal/domain/entity"
)

// CollectionHandler CRUD HTTP genérico sobre una colección del catálogo (protegido).
// Los cuerpos usan la misma forma JSON del snapshot.
type CollectionHandler[T entity.Identifiable] struct {
	uc *usecase.CollectionUseCase[T]
}

// NewCollectionHandler construye el handler.
func NewCollectionHandler[T entity.Identifiable](uc *usecase.CollectionUseCase[T]) *CollectionHandler[T] {
	return &CollectionHandler[T]{uc: uc}
}

// Mount registra GET/POST en "/" y GET/PUT/DELETE en "/:id" bajo /<colección>.
func (h *CollectionHandler[T]) Mount(r fiber.Router) {
	g := r.Group("/" + h.uc.Name())
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Get("/:id", h.GetByID)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}

// List godoc
// @Summary      Listar ítems de la colección
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        collection  path  string  true  "printers | filaments | accessories | packaging | categories"
// @Success      200  {array}  object
// @Router       /api/{collection} [get]
func (h *CollectionHandler[T]) List(c *fiber.Ctx) error {
	items, err := h.uc.List(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(items)
}

// GetByID godoc
// @Summary      Obtener ítem por ID
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        collection  path  string  true  "Colección"
// @Param        id          path  string  true  "ID"
// @Success      200  {object}  object
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{collection}/{id} [get]
func (h *CollectionHandler[T]) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	item, err := h.uc.Get(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(item)
}

// Create godoc
// @Summary      Crear ítem
// @Description  Sin id se genera un UUID. Accesorios y embalajes arrancan con estoqueAtual = quantidadeTotal.
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        collection  path  string  true  "Colección"
// @Success      201  {object}  object
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/{collection} [post]
func (h *CollectionHandler[T]) Create(c *fiber.Ctx) error {
	var in T
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Reemplazar ítem
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        collection  path  string  true  "Colección"
// @Param        id          path  string  true  "ID"
// @Success      200  {object}  object
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{collection}/{id} [put]
func (h *CollectionHandler[T]) Update(c *fiber.Ctx) error {
	var in T
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar ítem
// @Tags         catalog
// @Security     Bearer
// @Param        collection  path  string  true  "Colección"
// @Param        id          path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{collection}/{id} [delete]
func (h *CollectionHandler[T]) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
