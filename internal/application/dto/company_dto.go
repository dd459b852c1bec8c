package dto

// UpdateCompanySettingsRequest actualización parcial de la configuración de la empresa:
// solo se modifican los campos presentes.
type UpdateCompanySettingsRequest struct {
	TradeName     *string `json:"nomeFantasia" validate:"omitempty,max=200"`
	LegalName     *string `json:"razaoSocial" validate:"omitempty,max=200"`
	CNPJ          *string `json:"cnpj" validate:"omitempty,max=20"`
	Address       *string `json:"endereco"`
	Phone         *string `json:"telefone"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Website       *string `json:"site"`
	Logo          *string `json:"logo"`
	PixKey        *string `json:"pixChave"`
	BankDetails   *string `json:"dadosBancarios"`
	PixQRCode     *string `json:"qrCodePix"`
	DeliveryTime  *string `json:"prazoEntrega"`
	QuoteValidity *string `json:"validadeOrcamento"`
	Notes         *string `json:"observacoes"`
}
