package persistence

import (
	"github.com/jhoicas/print3d-api/internal/domain/auth"
	"github.com/jhoicas/print3d-api/internal/domain/catalog"
	"github.com/jhoicas/print3d-api/internal/domain/entity"
	"github.com/jhoicas/print3d-api/pkg/store"
)

// Stores observados por los bindings.
type (
	AuthStore    = store.Store[auth.State, auth.Action]
	CatalogStore = store.Store[entity.Catalog, catalog.Action]
)

// Tipos de snapshot para logs y métricas.
const (
	KindCatalog   = "catalog"
	KindDirectory = "directory"
)

// DataKey clave del catálogo de un usuario: "<namespace>:data:<username en minúsculas>".
// Devuelve "" si username está vacío.
func DataKey(namespace, username string) string {
	userKey := entity.NormalizeUsername(username)
	if userKey == "" {
		return ""
	}
	return namespace + ":data:" + userKey
}

// UsersKey clave del directorio de usuarios.
func UsersKey(namespace string) string {
	return namespace + ":users"
}

// Recorder recibe los eventos de persistencia (lo implementa metrics.PersistenceMetrics).
type Recorder interface {
	SnapshotLoaded(kind, result string)
	SnapshotSaved(kind, result string)
	SaveSkipped(kind, reason string)
}

type nopRecorder struct{}

func (nopRecorder) SnapshotLoaded(string, string) {}
func (nopRecorder) SnapshotSaved(string, string)  {}
func (nopRecorder) SaveSkipped(string, string)    {}
