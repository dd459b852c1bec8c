// Package persistence enlaza la identidad autenticada con el medio clave-valor:
// carga el catálogo del usuario al iniciar sesión, lo descarta al cerrarla y lo guarda
// después de cada cambio posterior.
package persistence

import (
	"context"

	"github.com/jhoicas/print3d-api/internal/domain/auth"
	"github.com/jhoicas/print3d-api/internal/domain/catalog"
	"github.com/jhoicas/print3d-api/internal/domain/entity"
	"github.com/jhoicas/print3d-api/internal/domain/repository"
	"github.com/jhoicas/print3d-api/pkg/logger"
)

// CatalogBinding mantiene el catálogo en memoria sincronizado con "<namespace>:data:<usuario>".
//
// Dos banderas gobiernan el guardado:
//   - hydrated: el catálogo en memoria corresponde a lastKey. Sin ella no se guarda nada,
//     así un catálogo por defecto nunca pisa un snapshot real.
//   - skipNextSave: la próxima notificación de catálogo es el eco de un LOAD_DATA o RESET_DATA
//     propio y se consume sin escribir.
//
// No es seguro para uso concurrente; session.Session serializa los dispatch.
type CatalogBinding struct {
	kv        repository.KeyValueStore
	namespace string
	auth      *AuthStore
	catalog   *CatalogStore
	log       *logger.Logger
	rec       Recorder

	hydrated     bool
	skipNextSave bool

	evaluated         bool
	lastAuthenticated bool
	lastKey           string

	unsubscribe []func()
}

// Option configura un binding.
type Option func(*options)

type options struct {
	rec Recorder
}

// WithRecorder registra métricas de carga y guardado.
func WithRecorder(rec Recorder) Option {
	return func(o *options) {
		if rec != nil {
			o.rec = rec
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{rec: nopRecorder{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewCatalogBinding construye el binding; no observa nada hasta Start.
func NewCatalogBinding(
	kv repository.KeyValueStore,
	namespace string,
	authStore *AuthStore,
	catalogStore *CatalogStore,
	log *logger.Logger,
	opts ...Option,
) *CatalogBinding {
	o := buildOptions(opts)
	return &CatalogBinding{
		kv:        kv,
		namespace: namespace,
		auth:      authStore,
		catalog:   catalogStore,
		log:       log.Component("persistence.catalog"),
		rec:       o.rec,
	}
}

// Start se suscribe primero a auth y después al catálogo, y evalúa el estado actual una vez.
func (b *CatalogBinding) Start() {
	b.unsubscribe = append(b.unsubscribe,
		b.auth.Subscribe(func(_, _ auth.State) { b.onAuthChange() }),
		b.catalog.Subscribe(func(_, _ entity.Catalog) { b.onCatalogChange() }),
	)
	b.onAuthChange()
}

// Stop cancela las suscripciones. El catálogo en memoria queda como está.
func (b *CatalogBinding) Stop() {
	for _, fn := range b.unsubscribe {
		fn()
	}
	b.unsubscribe = nil
	b.evaluated = false
	b.hydrated = false
}

// Hydrated informa si el catálogo en memoria ya corresponde al usuario autenticado.
func (b *CatalogBinding) Hydrated() bool { return b.hydrated }

// StorageKey clave derivada del estado de auth actual ("" sin sesión).
func (b *CatalogBinding) StorageKey() string {
	return b.keyFor(b.auth.State())
}

func (b *CatalogBinding) keyFor(s auth.State) string {
	if !s.IsAuthenticated {
		return ""
	}
	return DataKey(b.namespace, s.Username())
}

// onAuthChange reacciona solo cuando cambia (autenticado, clave); el resto de cambios de
// auth (p. ej. CREATE_USER) no tocan el catálogo.
func (b *CatalogBinding) onAuthChange() {
	st := b.auth.State()
	key := b.keyFor(st)
	if b.evaluated && st.IsAuthenticated == b.lastAuthenticated && key == b.lastKey {
		return
	}
	b.evaluated = true
	b.lastAuthenticated = st.IsAuthenticated
	b.lastKey = key

	if st.IsAuthenticated && key != "" {
		data := b.load(key)
		b.log.Info().Str("key", key).
			Int("printers", len(data.Printers)).
			Int("filaments", len(data.Filaments)).
			Int("print_history", len(data.PrintHistory)).
			Msg("catálogo cargado")
		b.hydrated = true
		b.skipNextSave = true
		b.catalog.Dispatch(catalog.LoadData{Snapshot: data})
		return
	}

	b.log.Debug().Msg("sin sesión: catálogo reiniciado")
	b.hydrated = false
	b.skipNextSave = true
	b.catalog.Dispatch(catalog.ResetData{})
}

// onCatalogChange vuelve a leer el estado de auth en cada llamada: no confía en nada cacheado
// salvo la clave que se hidrató.
func (b *CatalogBinding) onCatalogChange() {
	st := b.auth.State()
	key := b.keyFor(st)
	if !st.IsAuthenticated || key == "" {
		b.rec.SaveSkipped(KindCatalog, "unauthenticated")
		return
	}
	if !b.hydrated || key != b.lastKey {
		b.rec.SaveSkipped(KindCatalog, "not_hydrated")
		return
	}
	if b.skipNextSave {
		b.skipNextSave = false
		b.rec.SaveSkipped(KindCatalog, "suppressed")
		return
	}
	b.save(key, b.catalog.State())
}

// load devuelve el snapshot guardado o el catálogo por defecto ante ausencia o cualquier fallo.
func (b *CatalogBinding) load(key string) entity.Catalog {
	raw, found, err := b.kv.Get(context.Background(), key)
	if err != nil {
		b.log.Error().Err(err).Str("key", key).Msg("leer snapshot de catálogo")
		b.rec.SnapshotLoaded(KindCatalog, "error")
		return entity.DefaultCatalog()
	}
	if !found {
		b.rec.SnapshotLoaded(KindCatalog, "miss")
		return entity.DefaultCatalog()
	}
	data, ok, err := DecodeCatalog(raw)
	if err != nil {
		b.log.Warn().Err(err).Str("key", key).Msg("snapshot de catálogo corrupto, se usa el catálogo por defecto")
		b.rec.SnapshotLoaded(KindCatalog, "corrupt")
		return entity.DefaultCatalog()
	}
	if !ok {
		b.rec.SnapshotLoaded(KindCatalog, "miss")
		return entity.DefaultCatalog()
	}
	b.rec.SnapshotLoaded(KindCatalog, "hit")
	return data
}

// save escribe el snapshot; un fallo se registra y el guardado se descarta.
func (b *CatalogBinding) save(key string, data entity.Catalog) {
	raw, err := EncodeCatalog(data)
	if err == nil {
		err = b.kv.Set(context.Background(), key, raw)
	}
	if err != nil {
		b.log.Error().Err(err).Str("key", key).Msg("guardar snapshot de catálogo")
		b.rec.SnapshotSaved(KindCatalog, "error")
		return
	}
	b.log.Debug().Str("key", key).
		Int("printers", len(data.Printers)).
		Int("filaments", len(data.Filaments)).
		Int("accessories", len(data.Accessories)).
		Int("packaging", len(data.Packaging)).
		Int("categories", len(data.Categories)).
		Int("print_history", len(data.PrintHistory)).
		Msg("catálogo guardado")
	b.rec.SnapshotSaved(KindCatalog, "ok")
}
