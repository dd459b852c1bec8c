package usecase

import (
	"context"

	"github.com/jhoicas/print3d-api/internal/application/session"
	"github.com/jhoicas/print3d-api/internal/domain"
	"github.com/jhoicas/print3d-api/internal/domain/entity"
)

// requireCatalog exige que userID sea el usuario de la sesión y que su catálogo ya esté cargado.
// Se evalúa dentro de Run: el catálogo que se lee o modifica es el de ese usuario.
func requireCatalog(tx *session.Tx, userID string) error {
	st := tx.Auth()
	if !st.IsAuthenticated || st.CurrentUser == nil {
		return domain.ErrUnauthorized
	}
	if st.CurrentUser.ID != userID {
		return domain.ErrSessionUser
	}
	if !tx.Hydrated() {
		return domain.ErrNotHydrated
	}
	return nil
}

// readCatalog lee el catálogo de userID bajo el lock de la sesión.
func readCatalog(ctx context.Context, sess *session.Session, userID string) (entity.Catalog, error) {
	var out entity.Catalog
	err := sess.Run(ctx, func(tx *session.Tx) error {
		if err := requireCatalog(tx, userID); err != nil {
			return err
		}
		out = tx.Catalog()
		return nil
	})
	return out, err
}
