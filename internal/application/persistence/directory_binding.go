package persistence

import (
	"context"
	"maps"

	"github.com/jhoicas/print3d-api/internal/domain/auth"
	"github.com/jhoicas/print3d-api/internal/domain/repository"
	"github.com/jhoicas/print3d-api/pkg/logger"
)

// DirectoryBinding persiste el directorio de usuarios en "<namespace>:users".
// Al arrancar lo carga con LOAD_USERS; después guarda cada vez que el directorio cambia.
type DirectoryBinding struct {
	kv        repository.KeyValueStore
	namespace string
	auth      *AuthStore
	log       *logger.Logger
	rec       Recorder

	skipNextSave bool
	unsubscribe  func()
}

// NewDirectoryBinding construye el binding del directorio.
func NewDirectoryBinding(kv repository.KeyValueStore, namespace string, authStore *AuthStore, log *logger.Logger, opts ...Option) *DirectoryBinding {
	o := buildOptions(opts)
	return &DirectoryBinding{
		kv:        kv,
		namespace: namespace,
		auth:      authStore,
		log:       log.Component("persistence.directory"),
		rec:       o.rec,
	}
}

// Start se suscribe a auth y carga el directorio guardado, si existe.
func (b *DirectoryBinding) Start() {
	b.unsubscribe = b.auth.Subscribe(b.onAuthChange)

	key := UsersKey(b.namespace)
	raw, found, err := b.kv.Get(context.Background(), key)
	switch {
	case err != nil:
		b.log.Error().Err(err).Str("key", key).Msg("leer directorio de usuarios")
		b.rec.SnapshotLoaded(KindDirectory, "error")
		return
	case !found:
		b.rec.SnapshotLoaded(KindDirectory, "miss")
		return
	}
	users, ok, err := DecodeDirectory(raw)
	if err != nil {
		b.log.Warn().Err(err).Str("key", key).Msg("directorio de usuarios corrupto, se ignora")
		b.rec.SnapshotLoaded(KindDirectory, "corrupt")
		return
	}
	if !ok {
		b.rec.SnapshotLoaded(KindDirectory, "miss")
		return
	}
	b.rec.SnapshotLoaded(KindDirectory, "hit")
	b.log.Info().Int("users", len(users)).Msg("directorio de usuarios cargado")
	b.skipNextSave = true
	b.auth.Dispatch(auth.LoadUsers{Users: users})
	// Si el directorio cargado era igual al actual no hubo eco que consumir.
	b.skipNextSave = false
}

// Stop cancela la suscripción.
func (b *DirectoryBinding) Stop() {
	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}
}

func (b *DirectoryBinding) onAuthChange(prev, next auth.State) {
	if maps.Equal(prev.Users, next.Users) {
		return
	}
	if b.skipNextSave {
		b.skipNextSave = false
		b.rec.SaveSkipped(KindDirectory, "suppressed")
		return
	}
	key := UsersKey(b.namespace)
	raw, err := EncodeDirectory(b.auth.State().Users)
	if err == nil {
		err = b.kv.Set(context.Background(), key, raw)
	}
	if err != nil {
		b.log.Error().Err(err).Str("key", key).Msg("guardar directorio de usuarios")
		b.rec.SnapshotSaved(KindDirectory, "error")
		return
	}
	b.rec.SnapshotSaved(KindDirectory, "ok")
}
