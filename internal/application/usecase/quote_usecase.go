package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/print3d-api/internal/application/ports"
	"github.com/jhoicas/print3d-api/internal/application/session"
	"github.com/jhoicas/print3d-api/internal/domain"
)

// QuoteUseCase genera el presupuesto en PDF de una impresión del historial.
type QuoteUseCase struct {
	sess      *session.Session
	generator ports.QuotePDFGenerator
	now       func() time.Time
}

// NewQuoteUseCase construye el caso de uso inyectando el generador de PDF.
func NewQuoteUseCase(sess *session.Session, generator ports.QuotePDFGenerator) *QuoteUseCase {
	return &QuoteUseCase{sess: sess, generator: generator, now: time.Now}
}

// QuotePDF devuelve el PDF y el nombre de archivo sugerido.
//
// Retorna domain.ErrNotFound si la impresión no existe en el historial del usuario.
func (uc *QuoteUseCase) QuotePDF(ctx context.Context, userID, recordID string) (pdfBytes []byte, filename string, err error) {
	cat, err := readCatalog(ctx, uc.sess, userID)
	if err != nil {
		return nil, "", err
	}
	rec, ok := findByID(cat.PrintHistory, recordID)
	if !ok {
		return nil, "", domain.ErrNotFound
	}

	issued := uc.now()
	number := fmt.Sprintf("%s-%s", issued.Format("20060102"), shortID(rec.ID))
	pdfBytes, err = uc.generator.GenerateQuotePDF(ctx, ports.Quote{
		Number:   number,
		IssuedAt: issued,
		Record:   rec,
		Company:  cat.CompanySettings,
	})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("orcamento_%s.pdf", number), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
