package ports

import (
	"context"
	"time"

	"github.com/jhoicas/print3d-api/internal/domain/entity"
)

// Quote datos de un presupuesto: la impresión registrada más la empresa emisora.
type Quote struct {
	Number   string
	IssuedAt time.Time
	Record   entity.PrintRecord
	Company  entity.CompanySettings
}

// QuotePDFGenerator puerto de salida para renderizar presupuestos.
// La implementación (maroto) vive en infrastructure/pdf.
type QuotePDFGenerator interface {
	GenerateQuotePDF(ctx context.Context, q Quote) ([]byte, error)
}
