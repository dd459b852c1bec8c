// Package costing calcula costo y ganancia de un trabajo de impresión (servicio de dominio).
package costing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/print3d-api/internal/domain"
	"github.com/jhoicas/print3d-api/internal/domain/entity"
)

var (
	hundred  = decimal.NewFromInt(100)
	thousand = decimal.NewFromInt(1000)
)

// FilamentUse gramos consumidos de un filamento.
type FilamentUse struct {
	Filament entity.Filament
	Grams    decimal.Decimal
}

// ItemUse unidades consumidas de un accesorio o embalaje a su precio unitario.
type ItemUse struct {
	UnitPrice decimal.Decimal
	Amount    decimal.Decimal
}

// Input datos de un trabajo. Hours es el tiempo total de impresora para todas las piezas.
type Input struct {
	Printer       entity.Printer
	Filaments     []FilamentUse
	Accessories   []ItemUse
	Packaging     []ItemUse
	Hours         decimal.Decimal
	Quantity      int
	EnergyKWh     decimal.Decimal // tarifa por kWh
	MarginPercent decimal.Decimal
}

// Result desglose del costo. Todos los importes van redondeados a 2 decimales.
type Result struct {
	TotalWeight  decimal.Decimal
	Material     decimal.Decimal
	Energy       decimal.Decimal
	Depreciation decimal.Decimal
	Failure      decimal.Decimal
	Extras       decimal.Decimal
	TotalCost    decimal.Decimal
	UnitCost     decimal.Decimal
	UnitPrice    decimal.Decimal
	UnitProfit   decimal.Decimal
	TotalProfit  decimal.Decimal
}

// Calculate aplica:
//
//	material      = Σ custoRolo / pesoRolo × gramos
//	energía       = potencia / 1000 × horas × tarifa
//	depreciación  = valorPago / vidaUtil × horas
//	fallas        = percentualFalhas% × (material + energía + depreciación)
//	extras        = Σ precioUnitario × cantidad (accesorios y embalajes)
//	costo unitario = total / cantidad; precio unitario = costo unitario × (1 + margen%)
//
// Un rollo sin peso o una impresora sin vida útil aportan cero en lugar de dividir por cero.
func Calculate(in Input) (Result, error) {
	if in.Quantity <= 0 {
		return Result{}, fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if in.Hours.IsNegative() {
		return Result{}, fmt.Errorf("%w: el tiempo no puede ser negativo", domain.ErrInvalidInput)
	}

	var r Result
	for _, f := range in.Filaments {
		if f.Grams.IsNegative() {
			return Result{}, fmt.Errorf("%w: consumo negativo del filamento %s", domain.ErrInvalidInput, f.Filament.ID)
		}
		r.TotalWeight = r.TotalWeight.Add(f.Grams)
		if f.Filament.SpoolWeight.IsPositive() {
			r.Material = r.Material.Add(f.Filament.SpoolCost.Div(f.Filament.SpoolWeight).Mul(f.Grams))
		}
	}

	r.Energy = in.Printer.PowerWatts.Div(thousand).Mul(in.Hours).Mul(in.EnergyKWh)
	if in.Printer.LifespanHours.IsPositive() {
		r.Depreciation = in.Printer.PricePaid.Div(in.Printer.LifespanHours).Mul(in.Hours)
	}
	base := r.Material.Add(r.Energy).Add(r.Depreciation)
	r.Failure = base.Mul(in.Printer.FailureRate).Div(hundred)

	for _, items := range [][]ItemUse{in.Accessories, in.Packaging} {
		for _, it := range items {
			r.Extras = r.Extras.Add(it.UnitPrice.Mul(it.Amount))
		}
	}

	total := base.Add(r.Failure).Add(r.Extras)
	qty := decimal.NewFromInt(int64(in.Quantity))
	unitCost := total.Div(qty)
	unitPrice := unitCost.Mul(decimal.NewFromInt(1).Add(in.MarginPercent.Div(hundred)))

	r.Material = r.Material.Round(2)
	r.Energy = r.Energy.Round(2)
	r.Depreciation = r.Depreciation.Round(2)
	r.Failure = r.Failure.Round(2)
	r.Extras = r.Extras.Round(2)
	r.TotalCost = total.Round(2)
	r.UnitCost = unitCost.Round(2)
	r.UnitPrice = unitPrice.Round(2)
	r.UnitProfit = r.UnitPrice.Sub(r.UnitCost)
	r.TotalProfit = r.UnitProfit.Mul(qty)
	return r, nil
}

// UnitPrice precio unitario de un lote de accesorios o embalajes (precoTotal / quantidadeTotal).
func UnitPrice(totalPrice, totalQuantity decimal.Decimal) decimal.Decimal {
	if !totalQuantity.IsPositive() {
		return decimal.Zero
	}
	return totalPrice.Div(totalQuantity).Round(4)
}
