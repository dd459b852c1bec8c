// Package session agrupa los dos stores (auth y catálogo) con sus bindings de persistencia
// en un objeto explícito que reemplaza al contexto global de autenticación.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/print3d-api/internal/application/persistence"
	"github.com/jhoicas/print3d-api/internal/domain/auth"
	"github.com/jhoicas/print3d-api/internal/domain/catalog"
	"github.com/jhoicas/print3d-api/internal/domain/entity"
	"github.com/jhoicas/print3d-api/internal/domain/repository"
	"github.com/jhoicas/print3d-api/pkg/logger"
	"github.com/jhoicas/print3d-api/pkg/store"
)

// ErrClosed la sesión no está abierta.
var ErrClosed = errors.New("sesión cerrada")

// Session serializa todos los dispatch con un mutex: los handlers HTTP corren en paralelo
// pero la capa de estado tiene un único escritor.
type Session struct {
	mu sync.Mutex

	log       *logger.Logger
	auth      *persistence.AuthStore
	catalog   *persistence.CatalogStore
	directory *persistence.DirectoryBinding
	binding   *persistence.CatalogBinding
	open      bool
}

// Option configura la sesión.
type Option func(*config)

type config struct {
	reducer *auth.Reducer
	rec     persistence.Recorder
}

// WithAuthReducer reemplaza el reductor de auth (reloj e ids fijos en tests).
func WithAuthReducer(r *auth.Reducer) Option {
	return func(c *config) { c.reducer = r }
}

// WithRecorder registra métricas de persistencia.
func WithRecorder(rec persistence.Recorder) Option {
	return func(c *config) { c.rec = rec }
}

// New construye la sesión sobre el medio kv. No lee ni escribe nada hasta Open.
func New(kv repository.KeyValueStore, namespace string, log *logger.Logger, opts ...Option) *Session {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.reducer == nil {
		cfg.reducer = auth.NewReducer()
	}
	var popts []persistence.Option
	if cfg.rec != nil {
		popts = append(popts, persistence.WithRecorder(cfg.rec))
	}

	authStore := store.New(auth.InitialState(), cfg.reducer.Reduce)
	catalogStore := store.New(entity.DefaultCatalog(), catalog.Reduce)
	return &Session{
		log:       log.Component("session"),
		auth:      authStore,
		catalog:   catalogStore,
		directory: persistence.NewDirectoryBinding(kv, namespace, authStore, log, popts...),
		binding:   persistence.NewCatalogBinding(kv, namespace, authStore, catalogStore, log, popts...),
	}
}

// Open carga el directorio de usuarios y evalúa el binding del catálogo una vez.
func (s *Session) Open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open {
		return nil
	}
	s.directory.Start()
	s.binding.Start()
	s.open = true
	s.log.Info().Int("users", len(s.auth.State().Users)).Msg("sesión abierta")
	return nil
}

// Close cancela las suscripciones y vuelve al estado inicial sin tocar el medio.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return
	}
	s.binding.Stop()
	s.directory.Stop()
	s.auth.Dispatch(auth.Logout{})
	s.catalog.Dispatch(catalog.ResetData{})
	s.open = false
	s.log.Info().Msg("sesión cerrada")
}

// Auth estado de autenticación actual.
func (s *Session) Auth() auth.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.auth.State()
}

// Catalog catálogo actual (por defecto si no hay sesión hidratada).
func (s *Session) Catalog() entity.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.State()
}

// DispatchAuth aplica una acción de auth y devuelve el estado resultante.
// Con la sesión cerrada (o aún sin abrir) la acción se descarta y se devuelve el estado actual.
func (s *Session) DispatchAuth(a auth.Action) auth.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		s.log.Warn().Str("action", a.Type()).Msg("acción de auth descartada: sesión cerrada")
		return s.auth.State()
	}
	return s.auth.Dispatch(a)
}

// DispatchCatalog aplica una acción de catálogo y devuelve el estado resultante.
// Igual que DispatchAuth, no hace nada con la sesión cerrada.
func (s *Session) DispatchCatalog(a catalog.Action) entity.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		s.log.Warn().Str("action", a.Type()).Msg("acción de catálogo descartada: sesión cerrada")
		return s.catalog.State()
	}
	return s.catalog.Dispatch(a)
}

// Hydrated informa si el catálogo corresponde al usuario autenticado.
func (s *Session) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.binding.Hydrated()
}

// StorageKey clave de persistencia del usuario actual ("" sin sesión).
func (s *Session) StorageKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.binding.StorageKey()
}

// Tx vista de la sesión dentro de Run: lecturas y dispatch sin volver a tomar el lock.
type Tx struct {
	s *Session
}

func (tx *Tx) Auth() auth.State                      { return tx.s.auth.State() }
func (tx *Tx) Catalog() entity.Catalog               { return tx.s.catalog.State() }
func (tx *Tx) Hydrated() bool                        { return tx.s.binding.Hydrated() }
func (tx *Tx) DispatchAuth(a auth.Action) auth.State { return tx.s.auth.Dispatch(a) }
func (tx *Tx) DispatchCatalog(a catalog.Action) entity.Catalog {
	return tx.s.catalog.Dispatch(a)
}

// Run ejecuta fn con el lock tomado, para validar y despachar de forma atómica.
// No hay rollback: lo despachado antes de un error queda aplicado.
func (s *Session) Run(ctx context.Context, fn func(tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return ErrClosed
	}
	return fn(&Tx{s: s})
}
