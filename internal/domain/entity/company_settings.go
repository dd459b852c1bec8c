package entity

// Valores por defecto de CompanySettings.
const (
	DefaultDeliveryTime  = "7 dias úteis"
	DefaultQuoteValidity = "30 dias"
)

// CompanySettings datos de la empresa usados en presupuestos y formatos.
// Es un registro único por catálogo, no una colección.
type CompanySettings struct {
	TradeName     string `json:"nomeFantasia"`
	LegalName     string `json:"razaoSocial"`
	CNPJ          string `json:"cnpj"`
	Address       string `json:"endereco"`
	Phone         string `json:"telefone"`
	Email         string `json:"email"`
	Website       string `json:"site"`
	Logo          string `json:"logo"`
	PixKey        string `json:"pixChave"`
	BankDetails   string `json:"dadosBancarios"`
	PixQRCode     string `json:"qrCodePix"`
	DeliveryTime  string `json:"prazoEntrega"`
	QuoteValidity string `json:"validadeOrcamento"`
	Notes         string `json:"observacoes"`
}

// DefaultCompanySettings devuelve la configuración inicial de una empresa nueva.
func DefaultCompanySettings() CompanySettings {
	return CompanySettings{
		DeliveryTime:  DefaultDeliveryTime,
		QuoteValidity: DefaultQuoteValidity,
	}
}
