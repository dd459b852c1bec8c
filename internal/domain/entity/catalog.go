package entity

// Catalog es el agregado de negocio de un usuario: todo lo que se persiste bajo su clave.
// Solo el reductor de catálogo lo modifica.
type Catalog struct {
	Printers        []Printer       `json:"printers"`
	Filaments       []Filament      `json:"filaments"`
	Accessories     []Accessory     `json:"accessories"`
	Packaging       []Packaging     `json:"packaging"`
	Categories      []Category      `json:"categories"`
	PrintHistory    []PrintRecord   `json:"printHistory"`
	CompanySettings CompanySettings `json:"companySettings"`
}

// DefaultCatalog devuelve el catálogo vacío con la configuración por defecto.
func DefaultCatalog() Catalog {
	return Catalog{
		Printers:        []Printer{},
		Filaments:       []Filament{},
		Accessories:     []Accessory{},
		Packaging:       []Packaging{},
		Categories:      []Category{},
		PrintHistory:    []PrintRecord{},
		CompanySettings: DefaultCompanySettings(),
	}
}
