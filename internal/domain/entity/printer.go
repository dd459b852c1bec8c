package entity

import "github.com/shopspring/decimal"

// Printer representa una impresora 3D del taller.
// PowerWatts y LifespanHours alimentan el cálculo de energía y depreciación.
type Printer struct {
	ID            string          `json:"id"`
	Brand         string          `json:"marca"`
	Model         string          `json:"modelo"`
	PowerWatts    decimal.Decimal `json:"potencia"`
	LifespanHours decimal.Decimal `json:"vidaUtil"`
	PricePaid     decimal.Decimal `json:"valorPago"`
	FailureRate   decimal.Decimal `json:"percentualFalhas"` // porcentaje, 0..100
}

func (p Printer) EntityID() string { return p.ID }
