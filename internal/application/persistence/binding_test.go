package persistence_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/print3d-api/internal/application/persistence"
	"github.com/jhoicas/print3d-api/internal/domain/auth"
	"github.com/jhoicas/print3d-api/internal/domain/catalog"
	"github.com/jhoicas/print3d-api/internal/domain/entity"
	"github.com/jhoicas/print3d-api/pkg/logger"
	"github.com/jhoicas/print3d-api/pkg/store"
)

// fakeKV medio en memoria que cuenta lecturas y escrituras por clave.
type fakeKV struct {
	mu      sync.Mutex
	data    map[string]string
	gets    map[string]int
	sets    map[string]int
	failGet error
	failSet error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}, gets: map[string]int{}, sets: map[string]int{}}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets[key]++
	if f.failGet != nil {
		return "", false, f.failGet
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeKV) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets[key]++
	if f.failSet != nil {
		return f.failSet
	}
	f.data[key] = value
	return nil
}

func (f *fakeKV) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeKV) totalSets() int {
	n := 0
	for _, c := range f.sets {
		n += c
	}
	return n
}

type recorded struct{ op, kind, value string }

type fakeRecorder struct{ events []recorded }

func (r *fakeRecorder) SnapshotLoaded(kind, result string) {
	r.events = append(r.events, recorded{"load", kind, result})
}
func (r *fakeRecorder) SnapshotSaved(kind, result string) {
	r.events = append(r.events, recorded{"save", kind, result})
}
func (r *fakeRecorder) SaveSkipped(kind, reason string) {
	r.events = append(r.events, recorded{"skip", kind, reason})
}

type harness struct {
	kv      *fakeKV
	auth    *persistence.AuthStore
	catalog *persistence.CatalogStore
	binding *persistence.CatalogBinding
}

func newHarness(t *testing.T, kv *fakeKV, opts ...persistence.Option) *harness {
	t.Helper()
	h := &harness{
		kv:      kv,
		auth:    store.New(auth.InitialState(), auth.NewReducer().Reduce),
		catalog: store.New(entity.DefaultCatalog(), catalog.Reduce),
	}
	h.binding = persistence.NewCatalogBinding(kv, "3dp", h.auth, h.catalog, logger.Nop(), opts...)
	h.binding.Start()
	t.Cleanup(h.binding.Stop)
	return h
}

func (h *harness) register(username string) entity.User {
	h.auth.Dispatch(auth.CreateUser{Username: username, Email: username + "@example.com", Password: "hash"})
	return h.auth.State().Users[entity.NormalizeUsername(username)].User
}

func (h *harness) login(u entity.User) { h.auth.Dispatch(auth.Login{User: u}) }

var testPrinter = entity.Printer{
	ID: "p1", Brand: "Bambu", Model: "X1", PowerWatts: decimal.NewFromInt(350), LifespanHours: decimal.NewFromInt(5000),
	PricePaid: decimal.NewFromInt(9000), FailureRate: decimal.NewFromInt(5),
}

func TestDataKey(t *testing.T) {
	assert.Equal(t, "3dp:data:alice", persistence.DataKey("3dp", "Alice"))
	assert.Equal(t, "", persistence.DataKey("3dp", ""))
	assert.Equal(t, "3dp:users", persistence.UsersKey("3dp"))
}

func TestCatalogBinding_LoginEditLogoutRelogin(t *testing.T) {
	kv := newFakeKV()
	h := newHarness(t, kv)

	assert.False(t, h.binding.Hydrated())
	assert.Equal(t, "", h.binding.StorageKey())

	alice := h.register("Alice")
	h.login(alice)
	require.True(t, h.binding.Hydrated())
	assert.Equal(t, "3dp:data:alice", h.binding.StorageKey())
	assert.Equal(t, 0, kv.totalSets(), "cargar no debe disparar un guardado")

	h.catalog.Dispatch(catalog.AddPrinter{Printer: testPrinter})
	assert.Equal(t, 1, kv.sets["3dp:data:alice"])
	assert.Equal(t, 1, kv.totalSets())

	h.auth.Dispatch(auth.Logout{})
	assert.False(t, h.binding.Hydrated())
	assert.Empty(t, h.catalog.State().Printers)
	assert.Equal(t, 1, kv.totalSets())

	h.login(alice)
	require.Len(t, h.catalog.State().Printers, 1)
	assert.Equal(t, "p1", h.catalog.State().Printers[0].ID)
	assert.True(t, h.catalog.State().Printers[0].PricePaid.Equal(decimal.NewFromInt(9000)))
	assert.Equal(t, 1, kv.totalSets())
}

func TestCatalogBinding_NoSaveBeforeLogin(t *testing.T) {
	kv := newFakeKV()
	h := newHarness(t, kv)

	h.catalog.Dispatch(catalog.AddPrinter{Printer: testPrinter})
	assert.Equal(t, 0, kv.totalSets())
}

func TestCatalogBinding_CorruptSnapshotFallsBackToDefault(t *testing.T) {
	for name, raw := range map[string]string{
		"json inválido":      "{not json",
		"campo desconocido":  `{"printers":[],"legacy":true}`,
		"basura al final":    `{"printers":[]} {}`,
		"tipo incompatible":  `{"printers":"x"}`,
		"null":               "null",
		"snapshot de objeto": `[]`,
	} {
		t.Run(name, func(t *testing.T) {
			kv := newFakeKV()
			kv.data["3dp:data:alice"] = raw
			h := newHarness(t, kv)

			h.login(h.register("alice"))
			assert.Equal(t, entity.DefaultCatalog(), h.catalog.State())
			assert.Equal(t, 0, kv.totalSets())

			h.catalog.Dispatch(catalog.AddPrinter{Printer: testPrinter})
			assert.Equal(t, 1, kv.sets["3dp:data:alice"])
		})
	}
}

func TestCatalogBinding_SwitchUserWithoutLogout(t *testing.T) {
	kv := newFakeKV()
	h := newHarness(t, kv)
	alice := h.register("alice")
	bob := h.register("Bob")

	h.login(alice)
	h.catalog.Dispatch(catalog.AddPrinter{Printer: testPrinter})
	aliceRaw := kv.data["3dp:data:alice"]

	h.login(bob)
	assert.Equal(t, "3dp:data:bob", h.binding.StorageKey())
	assert.Empty(t, h.catalog.State().Printers)
	assert.Equal(t, aliceRaw, kv.data["3dp:data:alice"])

	h.catalog.Dispatch(catalog.AddCategory{Category: entity.Category{ID: "c1", Name: "Decoração"}})
	assert.Equal(t, 1, kv.sets["3dp:data:bob"])
	assert.Equal(t, 1, kv.sets["3dp:data:alice"])
}

func TestCatalogBinding_IgnoresAuthChangesThatKeepIdentity(t *testing.T) {
	kv := newFakeKV()
	h := newHarness(t, kv)
	h.login(h.register("alice"))
	h.catalog.Dispatch(catalog.AddPrinter{Printer: testPrinter})
	gets := kv.gets["3dp:data:alice"]

	h.register("carol")

	assert.Equal(t, gets, kv.gets["3dp:data:alice"])
	assert.Len(t, h.catalog.State().Printers, 1)
}

func TestCatalogBinding_SuspendCurrentUserResets(t *testing.T) {
	kv := newFakeKV()
	h := newHarness(t, kv)
	alice := h.register("alice")
	h.login(alice)
	h.catalog.Dispatch(catalog.AddPrinter{Printer: testPrinter})

	h.auth.Dispatch(auth.SuspendUser{UserID: alice.ID, Suspended: true})

	assert.False(t, h.auth.State().IsAuthenticated)
	assert.False(t, h.binding.Hydrated())
	assert.Empty(t, h.catalog.State().Printers)
	assert.Equal(t, 1, kv.totalSets())
}

func TestCatalogBinding_StoreFailuresAreSwallowed(t *testing.T) {
	kv := newFakeKV()
	kv.failGet = errors.New("medio no disponible")
	kv.failSet = errors.New("cuota excedida")
	h := newHarness(t, kv)

	h.login(h.register("alice"))
	assert.True(t, h.binding.Hydrated())
	assert.Equal(t, entity.DefaultCatalog(), h.catalog.State())

	assert.NotPanics(t, func() {
		h.catalog.Dispatch(catalog.AddPrinter{Printer: testPrinter})
	})
	assert.Len(t, h.catalog.State().Printers, 1)
	assert.Equal(t, 1, kv.sets["3dp:data:alice"])
	assert.NotContains(t, kv.data, "3dp:data:alice")
}

func TestCatalogBinding_RecordsMetrics(t *testing.T) {
	kv := newFakeKV()
	rec := &fakeRecorder{}
	h := newHarness(t, kv, persistence.WithRecorder(rec))

	h.login(h.register("alice"))
	h.catalog.Dispatch(catalog.AddPrinter{Printer: testPrinter})

	assert.Equal(t, []recorded{
		{"skip", persistence.KindCatalog, "unauthenticated"},
		{"load", persistence.KindCatalog, "miss"},
		{"skip", persistence.KindCatalog, "suppressed"},
		{"save", persistence.KindCatalog, "ok"},
	}, rec.events)

	// sin sesión el motivo es la falta de usuario, no la hidratación
	rec.events = nil
	h.auth.Dispatch(auth.Logout{})
	h.catalog.Dispatch(catalog.AddPrinter{Printer: testPrinter})
	for _, e := range rec.events {
		if e.op == "skip" && e.kind == persistence.KindCatalog {
			assert.Equal(t, "unauthenticated", e.value)
		}
	}
	assert.Contains(t, rec.events, recorded{"skip", persistence.KindCatalog, "unauthenticated"})
	assert.Equal(t, 1, kv.sets["3dp:data:alice"])
}

func TestCatalogBinding_StopDetaches(t *testing.T) {
	kv := newFakeKV()
	h := newHarness(t, kv)
	h.login(h.register("alice"))
	h.binding.Stop()

	h.catalog.Dispatch(catalog.AddPrinter{Printer: testPrinter})
	assert.Equal(t, 0, kv.totalSets())
}

func TestDirectoryBinding_SavesAndReloads(t *testing.T) {
	kv := newFakeKV()
	authStore := store.New(auth.InitialState(), auth.NewReducer().Reduce)
	b := persistence.NewDirectoryBinding(kv, "3dp", authStore, logger.Nop())
	b.Start()

	authStore.Dispatch(auth.CreateUser{Username: "Alice", Password: "hash"})
	assert.Equal(t, 1, kv.sets["3dp:users"])

	authStore.Dispatch(auth.Login{User: authStore.State().Users["alice"].User})
	assert.Equal(t, 1, kv.sets["3dp:users"], "LOGIN no cambia el directorio")
	b.Stop()

	reloaded := store.New(auth.InitialState(), auth.NewReducer().Reduce)
	b2 := persistence.NewDirectoryBinding(kv, "3dp", reloaded, logger.Nop())
	b2.Start()
	defer b2.Stop()

	require.Contains(t, reloaded.State().Users, "alice")
	assert.Equal(t, "Alice", reloaded.State().Users["alice"].User.Username)
	assert.False(t, reloaded.State().IsAuthenticated)
	assert.Equal(t, 1, kv.sets["3dp:users"], "cargar no debe disparar un guardado")

	reloaded.Dispatch(auth.CreateUser{Username: "bob", Password: "hash"})
	assert.Equal(t, 2, kv.sets["3dp:users"])
}

func TestDirectoryBinding_CorruptDirectoryIgnored(t *testing.T) {
	kv := newFakeKV()
	kv.data["3dp:users"] = "{{"
	authStore := store.New(auth.InitialState(), auth.NewReducer().Reduce)
	b := persistence.NewDirectoryBinding(kv, "3dp", authStore, logger.Nop())
	b.Start()
	defer b.Stop()

	assert.Empty(t, authStore.State().Users)
	assert.Equal(t, 0, kv.totalSets())
}
