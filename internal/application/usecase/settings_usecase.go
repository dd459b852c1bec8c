package usecase

import (
	"context"

	"github.com/jhoicas/print3d-api/internal/application/dto"
	"github.com/jhoicas/print3d-api/internal/application/session"
	"github.com/jhoicas/print3d-api/internal/domain/catalog"
	"github.com/jhoicas/print3d-api/internal/domain/entity"
)

// SettingsUseCase lectura y actualización de la configuración de la empresa del usuario.
type SettingsUseCase struct {
	sess *session.Session
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(sess *session.Session) *SettingsUseCase {
	return &SettingsUseCase{sess: sess}
}

// Get devuelve la configuración actual.
func (uc *SettingsUseCase) Get(ctx context.Context, userID string) (entity.CompanySettings, error) {
	cat, err := readCatalog(ctx, uc.sess, userID)
	if err != nil {
		return entity.CompanySettings{}, err
	}
	return cat.CompanySettings, nil
}

// Update aplica los campos presentes y despacha UPDATE_COMPANY_SETTINGS con el registro completo.
func (uc *SettingsUseCase) Update(ctx context.Context, userID string, in dto.UpdateCompanySettingsRequest) (entity.CompanySettings, error) {
	var out entity.CompanySettings
	err := uc.sess.Run(ctx, func(tx *session.Tx) error {
		if err := requireCatalog(tx, userID); err != nil {
			return err
		}
		s := tx.Catalog().CompanySettings
		set(&s.TradeName, in.TradeName)
		set(&s.LegalName, in.LegalName)
		set(&s.CNPJ, in.CNPJ)
		set(&s.Address, in.Address)
		set(&s.Phone, in.Phone)
		set(&s.Email, in.Email)
		set(&s.Website, in.Website)
		set(&s.Logo, in.Logo)
		set(&s.PixKey, in.PixKey)
		set(&s.BankDetails, in.BankDetails)
		set(&s.PixQRCode, in.PixQRCode)
		set(&s.DeliveryTime, in.DeliveryTime)
		set(&s.QuoteValidity, in.QuoteValidity)
		set(&s.Notes, in.Notes)
		out = tx.DispatchCatalog(catalog.UpdateCompanySettings{Settings: s}).CompanySettings
		return nil
	})
	return out, err
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
