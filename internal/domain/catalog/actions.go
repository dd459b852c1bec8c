package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/print3d-api/internal/domain/entity"
)

// Nombres de acción tal como aparecen en logs y en la API.
const (
	TypeAddPrinter            = "ADD_PRINTER"
	TypeUpdatePrinter         = "UPDATE_PRINTER"
	TypeDeletePrinter         = "DELETE_PRINTER"
	TypeAddFilament           = "ADD_FILAMENT"
	TypeUpdateFilament        = "UPDATE_FILAMENT"
	TypeDeleteFilament        = "DELETE_FILAMENT"
	TypeAddAccessory          = "ADD_ACCESSORY"
	TypeUpdateAccessory       = "UPDATE_ACCESSORY"
	TypeDeleteAccessory       = "DELETE_ACCESSORY"
	TypeAddPackaging          = "ADD_PACKAGING"
	TypeUpdatePackaging       = "UPDATE_PACKAGING"
	TypeDeletePackaging       = "DELETE_PACKAGING"
	TypeAddCategory           = "ADD_CATEGORY"
	TypeUpdateCategory        = "UPDATE_CATEGORY"
	TypeDeleteCategory        = "DELETE_CATEGORY"
	TypeAddPrintRecord        = "ADD_PRINT_RECORD"
	TypeUpdateStock           = "UPDATE_STOCK"
	TypeLoadData              = "LOAD_DATA"
	TypeUpdateCompanySettings = "UPDATE_COMPANY_SETTINGS"
	TypeResetData             = "RESET_DATA"
)

// Action es el conjunto cerrado de transiciones del catálogo.
// El método apply no es exportado: solo este paquete define variantes, y una variante
// sin transición no compila.
type Action interface {
	Type() string
	apply(state entity.Catalog) entity.Catalog
}

// StockDelta cantidad a descontar del stock de la entidad con ese ID.
type StockDelta struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
}

// ── Impresoras ───────────────────────────────────────────────────────────────

type AddPrinter struct{ Printer entity.Printer }

func (AddPrinter) Type() string { return TypeAddPrinter }
func (a AddPrinter) apply(s entity.Catalog) entity.Catalog {
	s.Printers = appendItem(s.Printers, a.Printer)
	return s
}

type UpdatePrinter struct{ Printer entity.Printer }

func (UpdatePrinter) Type() string { return TypeUpdatePrinter }
func (a UpdatePrinter) apply(s entity.Catalog) entity.Catalog {
	s.Printers = replaceByID(s.Printers, a.Printer)
	return s
}

type DeletePrinter struct{ ID string }

func (DeletePrinter) Type() string { return TypeDeletePrinter }
func (a DeletePrinter) apply(s entity.Catalog) entity.Catalog {
	s.Printers = removeByID(s.Printers, a.ID)
	return s
}

// ── Filamentos ───────────────────────────────────────────────────────────────

type AddFilament struct{ Filament entity.Filament }

func (AddFilament) Type() string { return TypeAddFilament }
func (a AddFilament) apply(s entity.Catalog) entity.Catalog {
	s.Filaments = appendItem(s.Filaments, a.Filament)
	return s
}

type UpdateFilament struct{ Filament entity.Filament }

func (UpdateFilament) Type() string { return TypeUpdateFilament }
func (a UpdateFilament) apply(s entity.Catalog) entity.Catalog {
	s.Filaments = replaceByID(s.Filaments, a.Filament)
	return s
}

type DeleteFilament struct{ ID string }

func (DeleteFilament) Type() string { return TypeDeleteFilament }
func (a DeleteFilament) apply(s entity.Catalog) entity.Catalog {
	s.Filaments = removeByID(s.Filaments, a.ID)
	return s
}

// ── Accesorios ───────────────────────────────────────────────────────────────

// AddAccessory ignora el CurrentStock recibido: un accesorio nuevo entra con el stock completo.
type AddAccessory struct{ Accessory entity.Accessory }

func (AddAccessory) Type() string { return TypeAddAccessory }
func (a AddAccessory) apply(s entity.Catalog) entity.Catalog {
	item := a.Accessory
	item.CurrentStock = item.TotalQuantity
	s.Accessories = appendItem(s.Accessories, item)
	return s
}

type UpdateAccessory struct{ Accessory entity.Accessory }

func (UpdateAccessory) Type() string { return TypeUpdateAccessory }
func (a UpdateAccessory) apply(s entity.Catalog) entity.Catalog {
	s.Accessories = replaceByID(s.Accessories, a.Accessory)
	return s
}

type DeleteAccessory struct{ ID string }

func (DeleteAccessory) Type() string { return TypeDeleteAccessory }
func (a DeleteAccessory) apply(s entity.Catalog) entity.Catalog {
	s.Accessories = removeByID(s.Accessories, a.ID)
	return s
}

// ── Embalajes ────────────────────────────────────────────────────────────────

// AddPackaging igual que AddAccessory: CurrentStock = TotalQuantity.
type AddPackaging struct{ Packaging entity.Packaging }

func (AddPackaging) Type() string { return TypeAddPackaging }
func (a AddPackaging) apply(s entity.Catalog) entity.Catalog {
	item := a.Packaging
	item.CurrentStock = item.TotalQuantity
	s.Packaging = appendItem(s.Packaging, item)
	return s
}

type UpdatePackaging struct{ Packaging entity.Packaging }

func (UpdatePackaging) Type() string { return TypeUpdatePackaging }
func (a UpdatePackaging) apply(s entity.Catalog) entity.Catalog {
	s.Packaging = replaceByID(s.Packaging, a.Packaging)
	return s
}

type DeletePackaging struct{ ID string }

func (DeletePackaging) Type() string { return TypeDeletePackaging }
func (a DeletePackaging) apply(s entity.Catalog) entity.Catalog {
	s.Packaging = removeByID(s.Packaging, a.ID)
	return s
}

// ── Categorías ───────────────────────────────────────────────────────────────

type AddCategory struct{ Category entity.Category }

func (AddCategory) Type() string { return TypeAddCategory }
func (a AddCategory) apply(s entity.Catalog) entity.Catalog {
	s.Categories = appendItem(s.Categories, a.Category)
	return s
}

type UpdateCategory struct{ Category entity.Category }

func (UpdateCategory) Type() string { return TypeUpdateCategory }
func (a UpdateCategory) apply(s entity.Catalog) entity.Catalog {
	s.Categories = replaceByID(s.Categories, a.Category)
	return s
}

type DeleteCategory struct{ ID string }

func (DeleteCategory) Type() string { return TypeDeleteCategory }
func (a DeleteCategory) apply(s entity.Catalog) entity.Catalog {
	s.Categories = removeByID(s.Categories, a.ID)
	return s
}

// ── Historial, stock y agregado completo ─────────────────────────────────────

// AddPrintRecord agrega al historial sin validar unicidad del ID.
type AddPrintRecord struct{ Record entity.PrintRecord }

func (AddPrintRecord) Type() string { return TypeAddPrintRecord }
func (a AddPrintRecord) apply(s entity.Catalog) entity.Catalog {
	s.PrintHistory = appendItem(s.PrintHistory, a.Record)
	return s
}

// UpdateStock descuenta consumos de filamentos, accesorios y embalajes. IDs desconocidos se ignoran.
type UpdateStock struct {
	Filaments   []StockDelta
	Accessories []StockDelta
	Packaging   []StockDelta
}

func (UpdateStock) Type() string { return TypeUpdateStock }
func (a UpdateStock) apply(s entity.Catalog) entity.Catalog {
	s.Filaments = consume(s.Filaments, a.Filaments, func(f entity.Filament, d StockDelta) entity.Filament {
		f.CurrentStock = f.CurrentStock.Sub(d.Amount)
		return f
	})
	s.Accessories = consume(s.Accessories, a.Accessories, func(it entity.Accessory, d StockDelta) entity.Accessory {
		it.CurrentStock = it.CurrentStock.Sub(d.Amount)
		return it
	})
	s.Packaging = consume(s.Packaging, a.Packaging, func(it entity.Packaging, d StockDelta) entity.Packaging {
		it.CurrentStock = it.CurrentStock.Sub(d.Amount)
		return it
	})
	return s
}

// LoadData reemplaza el agregado completo por el snapshot, sin mezclar ni validar.
type LoadData struct{ Snapshot entity.Catalog }

func (LoadData) Type() string                          { return TypeLoadData }
func (a LoadData) apply(entity.Catalog) entity.Catalog { return a.Snapshot }

type UpdateCompanySettings struct{ Settings entity.CompanySettings }

func (UpdateCompanySettings) Type() string { return TypeUpdateCompanySettings }
func (a UpdateCompanySettings) apply(s entity.Catalog) entity.Catalog {
	s.CompanySettings = a.Settings
	return s
}

type ResetData struct{}

func (ResetData) Type() string                        { return TypeResetData }
func (ResetData) apply(entity.Catalog) entity.Catalog { return entity.DefaultCatalog() }
