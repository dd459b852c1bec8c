package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/print3d-api/internal/application/ports"
	"github.com/jhoicas/print3d-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "R$ 0,00"},
		{"12.5", "R$ 12,50"},
		{"999.999", "R$ 1.000,00"},
		{"1234567.5", "R$ 1.234.567,50"},
		{"-3", "-R$ 3,00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatMoney(decimal.RequireFromString(tt.in)), tt.in)
	}
}

func TestGenerateQuotePDF(t *testing.T) {
	company := entity.DefaultCompanySettings()
	company.TradeName = "Print Lab"
	company.CNPJ = "12.345.678/0001-90"
	company.PixKey = "pix@printlab.com"
	company.Notes = "Cores sujeitas à disponibilidade."

	q := ports.Quote{
		Number:   "20261018-abcd1234",
		IssuedAt: time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
		Record: entity.PrintRecord{
			ID: "abcd1234", Client: "Maria", Product: "Vaso", Category: "Decoração",
			Quantity: 2, UnitPrice: decimal.RequireFromString("45.90"),
		},
		Company: company,
	}

	for name, settings := range map[string]entity.CompanySettings{
		"con pix":  company,
		"sin pago": entity.DefaultCompanySettings(),
	} {
		t.Run(name, func(t *testing.T) {
			q.Company = settings
			out, err := NewMarotoQuoteGenerator().GenerateQuotePDF(context.Background(), q)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
		})
	}
}

func TestGenerateQuotePDF_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMarotoQuoteGenerator().GenerateQuotePDF(ctx, ports.Quote{})
	assert.ErrorIs(t, err, context.Canceled)
}
