package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/print3d-api/internal/application/dto"
	"github.com/jhoicas/print3d-api/internal/application/session"
	"github.com/jhoicas/print3d-api/internal/domain"
	"github.com/jhoicas/print3d-api/internal/domain/catalog"
	"github.com/jhoicas/print3d-api/internal/domain/costing"
	"github.com/jhoicas/print3d-api/internal/domain/entity"
)

// Pricing parámetros globales de costeo.
type Pricing struct {
	EnergyKWh     decimal.Decimal
	MarginPercent decimal.Decimal
}

// PrintUseCase registra impresiones: calcula costos, agrega al historial y descuenta stock.
type PrintUseCase struct {
	sess    *session.Session
	pricing Pricing
	now     func() time.Time
	newID   func() string
}

// NewPrintUseCase construye el caso de uso.
func NewPrintUseCase(sess *session.Session, pricing Pricing) *PrintUseCase {
	return &PrintUseCase{sess: sess, pricing: pricing, now: time.Now, newID: uuid.NewString}
}

// Register despacha ADD_PRINT_RECORD y después UPDATE_STOCK con los consumos agregados por ID.
// Impresora, filamentos, accesorios y embalajes deben existir (domain.ErrNotFound si no).
func (uc *PrintUseCase) Register(ctx context.Context, userID string, in dto.RegisterPrintRequest) (*entity.PrintRecord, error) {
	filaments := mergeUsages(in.Filaments)
	accessories := mergeUsages(in.Accessories)
	packaging := mergeUsages(in.Packaging)
	for _, group := range [][]catalog.StockDelta{filaments, accessories, packaging} {
		for _, d := range group {
			if d.Amount.IsNegative() {
				return nil, fmt.Errorf("%w: consumo negativo para %s", domain.ErrInvalidInput, d.ID)
			}
		}
	}

	var out entity.PrintRecord
	err := uc.sess.Run(ctx, func(tx *session.Tx) error {
		if err := requireCatalog(tx, userID); err != nil {
			return err
		}
		cat := tx.Catalog()

		printer, ok := findByID(cat.Printers, in.PrinterID)
		if !ok {
			return fmt.Errorf("%w: impresora %s", domain.ErrNotFound, in.PrinterID)
		}
		input := costing.Input{
			Printer:       printer,
			Hours:         in.Hours,
			Quantity:      in.Quantity,
			EnergyKWh:     uc.pricing.EnergyKWh,
			MarginPercent: uc.pricing.MarginPercent,
		}
		for _, d := range filaments {
			f, ok := findByID(cat.Filaments, d.ID)
			if !ok {
				return fmt.Errorf("%w: filamento %s", domain.ErrNotFound, d.ID)
			}
			input.Filaments = append(input.Filaments, costing.FilamentUse{Filament: f, Grams: d.Amount})
		}
		for _, d := range accessories {
			a, ok := findByID(cat.Accessories, d.ID)
			if !ok {
				return fmt.Errorf("%w: accesorio %s", domain.ErrNotFound, d.ID)
			}
			input.Accessories = append(input.Accessories, costing.ItemUse{UnitPrice: a.UnitPrice, Amount: d.Amount})
		}
		for _, d := range packaging {
			p, ok := findByID(cat.Packaging, d.ID)
			if !ok {
				return fmt.Errorf("%w: embalaje %s", domain.ErrNotFound, d.ID)
			}
			input.Packaging = append(input.Packaging, costing.ItemUse{UnitPrice: p.UnitPrice, Amount: d.Amount})
		}

		res, err := costing.Calculate(input)
		if err != nil {
			return err
		}
		date := strings.TrimSpace(in.Date)
		if date == "" {
			date = uc.now().UTC().Format(time.RFC3339)
		}
		out = entity.PrintRecord{
			ID:          uc.newID(),
			Date:        date,
			Client:      in.Client,
			Product:     in.Product,
			Category:    in.Category,
			Printer:     strings.TrimSpace(printer.Brand + " " + printer.Model),
			TotalWeight: res.TotalWeight,
			TotalTime:   in.Hours,
			Quantity:    in.Quantity,
			TotalCost:   res.TotalCost,
			UnitPrice:   res.UnitPrice,
			UnitProfit:  res.UnitProfit,
			TotalProfit: res.TotalProfit,
		}
		tx.DispatchCatalog(catalog.AddPrintRecord{Record: out})
		tx.DispatchCatalog(catalog.UpdateStock{Filaments: filaments, Accessories: accessories, Packaging: packaging})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// History página del historial, de la más reciente a la más antigua.
func (uc *PrintUseCase) History(ctx context.Context, userID string, page dto.PageRequest) (*dto.PrintHistoryResponse, error) {
	page.DefaultPage()
	cat, err := readCatalog(ctx, uc.sess, userID)
	if err != nil {
		return nil, err
	}
	total := len(cat.PrintHistory)
	items := make([]entity.PrintRecord, 0, page.Limit)
	for i := total - 1 - page.Offset; i >= 0 && len(items) < page.Limit; i-- {
		items = append(items, cat.PrintHistory[i])
	}
	return &dto.PrintHistoryResponse{
		Items: items,
		Page: dto.PageResponse{
			Limit:   page.Limit,
			Offset:  page.Offset,
			Total:   total,
			HasMore: page.Offset+len(items) < total,
		},
	}, nil
}

// Get busca una impresión del historial por ID (la primera si hay duplicados).
func (uc *PrintUseCase) Get(ctx context.Context, userID, id string) (*entity.PrintRecord, error) {
	cat, err := readCatalog(ctx, uc.sess, userID)
	if err != nil {
		return nil, err
	}
	rec, ok := findByID(cat.PrintHistory, id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

// ConsumeStock descuenta stock manualmente. Una cantidad negativa repone; IDs desconocidos se ignoran.
func (uc *PrintUseCase) ConsumeStock(ctx context.Context, userID string, in dto.StockConsumeRequest) (entity.Catalog, error) {
	action := catalog.UpdateStock{
		Filaments:   mergeUsages(in.Filaments),
		Accessories: mergeUsages(in.Accessories),
		Packaging:   mergeUsages(in.Packaging),
	}
	var out entity.Catalog
	err := uc.sess.Run(ctx, func(tx *session.Tx) error {
		if err := requireCatalog(tx, userID); err != nil {
			return err
		}
		out = tx.DispatchCatalog(action)
		return nil
	})
	return out, err
}

// mergeUsages suma los consumos repetidos del mismo ID: UPDATE_STOCK solo aplica el primero.
func mergeUsages(in []dto.UsageRequest) []catalog.StockDelta {
	out := make([]catalog.StockDelta, 0, len(in))
	index := make(map[string]int, len(in))
	for _, u := range in {
		if i, ok := index[u.ID]; ok {
			out[i].Amount = out[i].Amount.Add(u.Amount)
			continue
		}
		index[u.ID] = len(out)
		out = append(out, catalog.StockDelta{ID: u.ID, Amount: u.Amount})
	}
	return out
}
