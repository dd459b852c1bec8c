// Package pdf genera el presupuesto (orçamento) de una impresión en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre fantasía + CNPJ  │  N° presupuesto + fecha   │
//	│  EMISOR: Dirección / Tel / Email / Site                      │
//	│  CLIENTE                                                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Qtd | Produto | Categoria | Unitário | Total         │
//	│  TOTAL                                                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONDICIONES: plazo de entrega, validez, observaciones       │
//	│  PAGO: PIX (QR) + datos bancarios                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/print3d-api/internal/application/ports"
	"github.com/jhoicas/print3d-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ ports.QuotePDFGenerator = (*MarotoQuoteGenerator)(nil)

// MarotoQuoteGenerator implementa ports.QuotePDFGenerator usando Maroto v2.
type MarotoQuoteGenerator struct{}

// NewMarotoQuoteGenerator construye el generador.
func NewMarotoQuoteGenerator() *MarotoQuoteGenerator { return &MarotoQuoteGenerator{} }

// GenerateQuotePDF genera el PDF y devuelve sus bytes.
func (g *MarotoQuoteGenerator) GenerateQuotePDF(ctx context.Context, q ports.Quote) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	company := q.Company
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orçamento "+q.Number, true).
		WithAuthor(nonEmpty(company.TradeName, company.LegalName), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(q))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(emitterRow(company))
	m.AddRows(clientRow(q.Record))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(), itemRow(q.Record))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(q.Record))

	m.AddRows(line.NewRow(3))
	m.AddRows(conditionRows(company)...)
	m.AddRows(paymentRows(company)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(q ports.Quote) core.Row {
	c := q.Company
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(c.TradeName, "-"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(strings.TrimSpace(nonEmpty(c.LegalName, "")+"  CNPJ: "+nonEmpty(c.CNPJ, "-")), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORÇAMENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Nº "+q.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Data: "+q.IssuedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func emitterRow(c entity.CompanySettings) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Endereço: %s   |   Tel: %s   |   Email: %s   |   %s",
				nonEmpty(c.Address, "-"),
				nonEmpty(c.Phone, "-"),
				nonEmpty(c.Email, "-"),
				c.Website,
			), props.Text{Size: 8, Top: 3, Color: colorGray}),
		),
	)
}

func clientRow(r entity.PrintRecord) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(r.Client, "-"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qtd.", 1, align.Center),
		h("Produto", 5, align.Left),
		h("Categoria", 2, align.Left),
		h("Unitário", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

func itemRow(r entity.PrintRecord) core.Row {
	total := r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity)))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	return row.New(7).Add(
		cell(fmt.Sprintf("%d", r.Quantity), 1, align.Center),
		cell(nonEmpty(r.Product, "-"), 5, align.Left),
		cell(r.Category, 2, align.Left),
		cell(formatMoney(r.UnitPrice), 2, align.Right),
		cell(formatMoney(total), 2, align.Right),
	)
}

func totalRow(r entity.PrintRecord) core.Row {
	total := r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity)))
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(formatMoney(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

func conditionRows(c entity.CompanySettings) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(text.New("CONDIÇÕES", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}))),
		row.New(5).Add(col.New(12).Add(text.New(
			fmt.Sprintf("Prazo de entrega: %s   |   Validade do orçamento: %s",
				nonEmpty(c.DeliveryTime, entity.DefaultDeliveryTime),
				nonEmpty(c.QuoteValidity, entity.DefaultQuoteValidity)),
			props.Text{Size: 8, Top: 1, Color: colorGray},
		))),
	}
	if c.Notes != "" {
		rows = append(rows, row.New(10).Add(col.New(12).Add(text.New(c.Notes, props.Text{
			Size: 8, Top: 2, Color: colorGray,
		}))))
	}
	return rows
}

// paymentRows: QR PIX (qrCodePix o, en su defecto, la clave) más datos bancarios.
func paymentRows(c entity.CompanySettings) []core.Row {
	qr := nonEmpty(c.PixQRCode, c.PixKey)
	if qr == "" && c.BankDetails == "" {
		return nil
	}
	info := make([]core.Component, 0, 3)
	info = append(info, text.New("PAGAMENTO", props.Text{
		Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Left: 3,
	}))
	if c.PixKey != "" {
		info = append(info, text.New("Chave PIX: "+c.PixKey, props.Text{Size: 8, Top: 7, Left: 3}))
	}
	if c.BankDetails != "" {
		info = append(info, text.New(c.BankDetails, props.Text{Size: 8, Top: 13, Left: 3, Color: colorGray}))
	}

	if qr == "" {
		return []core.Row{row.New(25).Add(col.New(12).Add(info...))}
	}
	return []core.Row{row.New(45).Add(
		col.New(4).Add(code.NewQr(qr, props.Rect{Percent: 95, Center: true})),
		col.New(8).Add(info...),
	)}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea en reales: puntos de miles y coma decimal.
// Ej: 1234567.5 → "R$ 1.234.567,50", -3 → "-R$ 3,00"
func formatMoney(v decimal.Decimal) string {
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Neg()
	}
	fixed := v.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + "R$ " + string(buf) + "," + frac
}
