package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/print3d-api/internal/application/dto"
	"github.com/jhoicas/print3d-api/internal/application/usecase"
)

// PrintHandler historial de impresiones, stock y presupuestos (protegido).
type PrintHandler struct {
	uc    *usecase.PrintUseCase
	quote *usecase.QuoteUseCase
}

// NewPrintHandler construye el handler.
func NewPrintHandler(uc *usecase.PrintUseCase, quote *usecase.QuoteUseCase) *PrintHandler {
	return &PrintHandler{uc: uc, quote: quote}
}

// Register godoc
// @Summary      Registrar impresión
// @Description  Calcula costos, agrega al historial y descuenta el stock consumido.
// @Tags         prints
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterPrintRequest  true  "Datos de la impresión"
// @Success      201   {object}  entity.PrintRecord
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/prints [post]
func (h *PrintHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterPrintRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Register(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// History godoc
// @Summary      Historial de impresiones
// @Tags         prints
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.PrintHistoryResponse
// @Router       /api/prints [get]
func (h *PrintHandler) History(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de paginación inválidos"})
	}
	out, err := h.uc.History(c.UserContext(), GetUserID(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener impresión
// @Tags         prints
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la impresión"
// @Success      200  {object}  entity.PrintRecord
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prints/{id} [get]
func (h *PrintHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// QuotePDF godoc
// @Summary      Presupuesto en PDF
// @Tags         prints
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la impresión"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prints/{id}/quote [get]
func (h *PrintHandler) QuotePDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.quote.QuotePDF(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// ConsumeStock godoc
// @Summary      Descontar stock
// @Description  Cantidades negativas reponen. IDs desconocidos se ignoran; el stock puede quedar negativo.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockConsumeRequest  true  "Consumos"
// @Success      200   {object}  entity.Catalog
// @Router       /api/stock/consume [post]
func (h *PrintHandler) ConsumeStock(c *fiber.Ctx) error {
	var in dto.StockConsumeRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.ConsumeStock(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
