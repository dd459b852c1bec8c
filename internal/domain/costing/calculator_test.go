package costing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/print3d-api/internal/domain"
	"github.com/jhoicas/print3d-api/internal/domain/costing"
	"github.com/jhoicas/print3d-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "%s: esperado %s, obtenido %s", field, want, got)
}

func TestCalculate(t *testing.T) {
	in := costing.Input{
		Printer: entity.Printer{
			PowerWatts: d("200"), LifespanHours: d("1000"),
			PricePaid: d("5000"), FailureRate: d("10"),
		},
		Filaments: []costing.FilamentUse{
			{Filament: entity.Filament{ID: "f1", SpoolCost: d("100"), SpoolWeight: d("1000")}, Grams: d("150")},
			{Filament: entity.Filament{ID: "f2", SpoolCost: d("80"), SpoolWeight: d("1000")}, Grams: d("50")},
		},
		Accessories:   []costing.ItemUse{{UnitPrice: d("0.5"), Amount: d("4")}},
		Packaging:     []costing.ItemUse{{UnitPrice: d("1.5"), Amount: d("2")}},
		Hours:         d("10"),
		Quantity:      2,
		EnergyKWh:     d("1"),
		MarginPercent: d("100"),
	}

	r, err := costing.Calculate(in)
	require.NoError(t, err)

	// material 15 + 4 = 19; energía 0.2×10×1 = 2; depreciación 5×10 = 50
	assertDec(t, "200", r.TotalWeight, "peso")
	assertDec(t, "19", r.Material, "material")
	assertDec(t, "2", r.Energy, "energía")
	assertDec(t, "50", r.Depreciation, "depreciación")
	assertDec(t, "7.1", r.Failure, "fallas")
	assertDec(t, "5", r.Extras, "extras")
	assertDec(t, "83.1", r.TotalCost, "total")
	assertDec(t, "41.55", r.UnitCost, "costo unitario")
	assertDec(t, "83.1", r.UnitPrice, "precio unitario")
	assertDec(t, "41.55", r.UnitProfit, "ganancia unitaria")
	assertDec(t, "83.1", r.TotalProfit, "ganancia total")
}

func TestCalculate_ZeroDivisorsContributeNothing(t *testing.T) {
	r, err := costing.Calculate(costing.Input{
		Filaments: []costing.FilamentUse{{Filament: entity.Filament{SpoolCost: d("100")}, Grams: d("10")}},
		Hours:     d("3"),
		Quantity:  1,
	})
	require.NoError(t, err)
	assert.True(t, r.TotalCost.IsZero())
	assertDec(t, "10", r.TotalWeight, "peso")
}

func TestCalculate_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   costing.Input
	}{
		{"cantidad cero", costing.Input{Quantity: 0}},
		{"horas negativas", costing.Input{Quantity: 1, Hours: d("-1")}},
		{"gramos negativos", costing.Input{Quantity: 1, Filaments: []costing.FilamentUse{{Grams: d("-5")}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := costing.Calculate(tt.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestUnitPrice(t *testing.T) {
	assertDec(t, "0.25", costing.UnitPrice(d("25"), d("100")), "unitario")
	assert.True(t, costing.UnitPrice(d("25"), decimal.Zero).IsZero())
}
