package entity

import "github.com/shopspring/decimal"

// Accessory es un insumo que se consume por unidad (imanes, argollas, tornillos...).
// CurrentStock arranca en TotalQuantity y solo baja con consumos; puede quedar negativo.
type Accessory struct {
	ID            string          `json:"id"`
	Type          string          `json:"tipo"`
	TotalQuantity decimal.Decimal `json:"quantidadeTotal"`
	TotalPrice    decimal.Decimal `json:"precoTotal"`
	UnitPrice     decimal.Decimal `json:"precoUnitario"`
	CurrentStock  decimal.Decimal `json:"estoqueAtual"`
}

func (a Accessory) EntityID() string { return a.ID }

// Packaging es un embalaje; mismas reglas de stock que Accessory.
type Packaging struct {
	ID            string          `json:"id"`
	Type          string          `json:"tipo"`
	TotalQuantity decimal.Decimal `json:"quantidadeTotal"`
	TotalPrice    decimal.Decimal `json:"precoTotal"`
	UnitPrice     decimal.Decimal `json:"precoUnitario"`
	CurrentStock  decimal.Decimal `json:"estoqueAtual"`
}

func (p Packaging) EntityID() string { return p.ID }
