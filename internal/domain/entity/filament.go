package entity

import "github.com/shopspring/decimal"

// Filament representa un rollo de filamento. SpoolWeight y CurrentStock van en gramos.
type Filament struct {
	ID           string          `json:"id"`
	Brand        string          `json:"marca"`
	Type         string          `json:"tipo"`
	Color        string          `json:"cor"`
	SpoolCost    decimal.Decimal `json:"custoRolo"`
	SpoolWeight  decimal.Decimal `json:"pesoRolo"`
	CurrentStock decimal.Decimal `json:"estoqueAtual"`
}

func (f Filament) EntityID() string { return f.ID }
