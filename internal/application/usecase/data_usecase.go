package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/print3d-api/internal/application/persistence"
	"github.com/jhoicas/print3d-api/internal/application/session"
	"github.com/jhoicas/print3d-api/internal/domain"
	"github.com/jhoicas/print3d-api/internal/domain/catalog"
	"github.com/jhoicas/print3d-api/internal/domain/entity"
	"github.com/jhoicas/print3d-api/pkg/logger"
)

// DataUseCase exporta, importa y reinicia el catálogo completo del usuario.
type DataUseCase struct {
	sess *session.Session
	log  *logger.Logger
}

// NewDataUseCase construye el caso de uso.
func NewDataUseCase(sess *session.Session, log *logger.Logger) *DataUseCase {
	return &DataUseCase{sess: sess, log: log.Component("data")}
}

// Export devuelve el catálogo con la misma forma del snapshot persistido.
func (uc *DataUseCase) Export(ctx context.Context, userID string) (entity.Catalog, error) {
	return readCatalog(ctx, uc.sess, userID)
}

// Import reemplaza el catálogo con LOAD_DATA. El documento debe tener la forma exacta del snapshot.
// A diferencia del LOAD_DATA del login, este sí se persiste.
func (uc *DataUseCase) Import(ctx context.Context, userID string, raw []byte) (entity.Catalog, error) {
	data, found, err := persistence.DecodeCatalog(string(raw))
	if err != nil {
		return entity.Catalog{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if !found {
		return entity.Catalog{}, fmt.Errorf("%w: documento vacío", domain.ErrInvalidInput)
	}
	var out entity.Catalog
	err = uc.sess.Run(ctx, func(tx *session.Tx) error {
		if err := requireCatalog(tx, userID); err != nil {
			return err
		}
		out = tx.DispatchCatalog(catalog.LoadData{Snapshot: data})
		uc.log.Info().Str("username", tx.Auth().Username()).Msg("catálogo importado")
		return nil
	})
	return out, err
}

// Reset vuelve el catálogo del usuario al estado inicial y lo persiste.
func (uc *DataUseCase) Reset(ctx context.Context, userID string) error {
	return uc.sess.Run(ctx, func(tx *session.Tx) error {
		if err := requireCatalog(tx, userID); err != nil {
			return err
		}
		tx.DispatchCatalog(catalog.ResetData{})
		uc.log.Info().Str("username", tx.Auth().Username()).Msg("catálogo reiniciado")
		return nil
	})
}
