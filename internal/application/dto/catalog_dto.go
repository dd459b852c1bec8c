package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/print3d-api/internal/domain/entity"
)

// UsageRequest consumo de un ítem del catálogo: gramos para filamentos, unidades para el resto.
type UsageRequest struct {
	ID     string          `json:"id" validate:"required"`
	Amount decimal.Decimal `json:"amount"`
}

// StockConsumeRequest descuento manual de stock.
type StockConsumeRequest struct {
	Filaments   []UsageRequest `json:"filaments" validate:"dive"`
	Accessories []UsageRequest `json:"accessories" validate:"dive"`
	Packaging   []UsageRequest `json:"packaging" validate:"dive"`
}

// RegisterPrintRequest registro de una impresión a partir de ids del catálogo.
// Date vacío usa el momento actual; si viene, se guarda sin reinterpretar.
type RegisterPrintRequest struct {
	Date        string          `json:"data" validate:"max=64"`
	Client      string          `json:"cliente" validate:"max=200"`
	Product     string          `json:"produto" validate:"required,max=200"`
	Category    string          `json:"categoria"`
	PrinterID   string          `json:"impressoraId" validate:"required"`
	Hours       decimal.Decimal `json:"tempoTotal"`
	Quantity    int             `json:"quantidade" validate:"required,min=1"`
	Filaments   []UsageRequest  `json:"filamentos" validate:"required,min=1,dive"`
	Accessories []UsageRequest  `json:"acessorios" validate:"dive"`
	Packaging   []UsageRequest  `json:"embalagens" validate:"dive"`
}

// PrintHistoryResponse página del historial, de la impresión más reciente a la más antigua.
type PrintHistoryResponse struct {
	Items []entity.PrintRecord `json:"items"`
	Page  PageResponse         `json:"page"`
}

// UserSummaryResponse resumen de producción de un usuario (reporte de administración).
type UserSummaryResponse struct {
	Username string          `json:"username"`
	Prints   int             `json:"prints"`
	Revenue  decimal.Decimal `json:"revenue"`
	Profit   decimal.Decimal `json:"profit"`
}

// SummaryListResponse resumen de todos los usuarios del directorio.
type SummaryListResponse struct {
	Items []UserSummaryResponse `json:"items"`
}
