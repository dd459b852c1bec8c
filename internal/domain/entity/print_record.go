package entity

import "github.com/shopspring/decimal"

// PrintRecord es una impresión registrada en el historial (append-only).
// Los campos de costo y ganancia se calculan al registrarla; nunca se recalculan.
// Date se conserva tal como llegó (RFC 3339 o solo fecha); no se reinterpreta.
type PrintRecord struct {
	ID          string          `json:"id"`
	Date        string          `json:"data"`
	Client      string          `json:"cliente"`
	Product     string          `json:"produto"`
	Category    string          `json:"categoria"`
	Printer     string          `json:"impressora"`
	TotalWeight decimal.Decimal `json:"pesoTotal"`  // gramos
	TotalTime   decimal.Decimal `json:"tempoTotal"` // horas
	Quantity    int             `json:"quantidade"`
	TotalCost   decimal.Decimal `json:"custoTotal"`
	UnitPrice   decimal.Decimal `json:"precoUnitario"`
	UnitProfit  decimal.Decimal `json:"lucroUnitario"`
	TotalProfit decimal.Decimal `json:"lucroTotal"`
}

func (r PrintRecord) EntityID() string { return r.ID }
