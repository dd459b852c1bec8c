package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/jhoicas/print3d-api/internal/application/session"
	"github.com/jhoicas/print3d-api/internal/domain"
	"github.com/jhoicas/print3d-api/internal/domain/catalog"
	"github.com/jhoicas/print3d-api/internal/domain/costing"
	"github.com/jhoicas/print3d-api/internal/domain/entity"
)

// Collection describe una colección del catálogo: cómo leerla y qué acciones la modifican.
type Collection[T entity.Identifiable] struct {
	Name   string
	Items  func(entity.Catalog) []T
	WithID func(T, string) T
	Add    func(T) catalog.Action
	Update func(T) catalog.Action
	Delete func(id string) catalog.Action
	// Prepare valida y completa campos derivados antes de ADD/UPDATE. Opcional.
	Prepare func(T) (T, error)
}

// Colecciones del catálogo.
var (
	Printers = Collection[entity.Printer]{
		Name:   "printers",
		Items:  func(c entity.Catalog) []entity.Printer { return c.Printers },
		WithID: func(p entity.Printer, id string) entity.Printer { p.ID = id; return p },
		Add:    func(p entity.Printer) catalog.Action { return catalog.AddPrinter{Printer: p} },
		Update: func(p entity.Printer) catalog.Action { return catalog.UpdatePrinter{Printer: p} },
		Delete: func(id string) catalog.Action { return catalog.DeletePrinter{ID: id} },
		Prepare: func(p entity.Printer) (entity.Printer, error) {
			if p.PowerWatts.IsNegative() || p.LifespanHours.IsNegative() || p.PricePaid.IsNegative() || p.FailureRate.IsNegative() {
				return p, fmt.Errorf("%w: valores negativos en la impresora", domain.ErrInvalidInput)
			}
			return p, nil
		},
	}
	Filaments = Collection[entity.Filament]{
		Name:   "filaments",
		Items:  func(c entity.Catalog) []entity.Filament { return c.Filaments },
		WithID: func(f entity.Filament, id string) entity.Filament { f.ID = id; return f },
		Add:    func(f entity.Filament) catalog.Action { return catalog.AddFilament{Filament: f} },
		Update: func(f entity.Filament) catalog.Action { return catalog.UpdateFilament{Filament: f} },
		Delete: func(id string) catalog.Action { return catalog.DeleteFilament{ID: id} },
		Prepare: func(f entity.Filament) (entity.Filament, error) {
			if !f.SpoolWeight.IsPositive() || f.SpoolCost.IsNegative() {
				return f, fmt.Errorf("%w: el rollo necesita peso positivo y costo no negativo", domain.ErrInvalidInput)
			}
			return f, nil
		},
	}
	Accessories = Collection[entity.Accessory]{
		Name:   "accessories",
		Items:  func(c entity.Catalog) []entity.Accessory { return c.Accessories },
		WithID: func(a entity.Accessory, id string) entity.Accessory { a.ID = id; return a },
		Add:    func(a entity.Accessory) catalog.Action { return catalog.AddAccessory{Accessory: a} },
		Update: func(a entity.Accessory) catalog.Action { return catalog.UpdateAccessory{Accessory: a} },
		Delete: func(id string) catalog.Action { return catalog.DeleteAccessory{ID: id} },
		Prepare: func(a entity.Accessory) (entity.Accessory, error) {
			if a.TotalQuantity.IsNegative() || a.TotalPrice.IsNegative() {
				return a, fmt.Errorf("%w: cantidad y precio no pueden ser negativos", domain.ErrInvalidInput)
			}
			a.UnitPrice = costing.UnitPrice(a.TotalPrice, a.TotalQuantity)
			return a, nil
		},
	}
	Packaging = Collection[entity.Packaging]{
		Name:   "packaging",
		Items:  func(c entity.Catalog) []entity.Packaging { return c.Packaging },
		WithID: func(p entity.Packaging, id string) entity.Packaging { p.ID = id; return p },
		Add:    func(p entity.Packaging) catalog.Action { return catalog.AddPackaging{Packaging: p} },
		Update: func(p entity.Packaging) catalog.Action { return catalog.UpdatePackaging{Packaging: p} },
		Delete: func(id string) catalog.Action { return catalog.DeletePackaging{ID: id} },
		Prepare: func(p entity.Packaging) (entity.Packaging, error) {
			if p.TotalQuantity.IsNegative() || p.TotalPrice.IsNegative() {
				return p, fmt.Errorf("%w: cantidad y precio no pueden ser negativos", domain.ErrInvalidInput)
			}
			p.UnitPrice = costing.UnitPrice(p.TotalPrice, p.TotalQuantity)
			return p, nil
		},
	}
	Categories = Collection[entity.Category]{
		Name:   "categories",
		Items:  func(c entity.Catalog) []entity.Category { return c.Categories },
		WithID: func(c entity.Category, id string) entity.Category { c.ID = id; return c },
		Add:    func(c entity.Category) catalog.Action { return catalog.AddCategory{Category: c} },
		Update: func(c entity.Category) catalog.Action { return catalog.UpdateCategory{Category: c} },
		Delete: func(id string) catalog.Action { return catalog.DeleteCategory{ID: id} },
		Prepare: func(c entity.Category) (entity.Category, error) {
			if c.Name == "" {
				return c, fmt.Errorf("%w: la categoría necesita nombre", domain.ErrInvalidInput)
			}
			return c, nil
		},
	}
)

// CollectionUseCase CRUD sobre una colección del catálogo del usuario en sesión.
// Update es reemplazo completo del ítem, como UPDATE_* en el reductor.
type CollectionUseCase[T entity.Identifiable] struct {
	sess  *session.Session
	c     Collection[T]
	newID func() string
}

// NewCollectionUseCase construye el caso de uso para la colección c.
func NewCollectionUseCase[T entity.Identifiable](sess *session.Session, c Collection[T]) *CollectionUseCase[T] {
	return &CollectionUseCase[T]{sess: sess, c: c, newID: uuid.NewString}
}

// Name nombre de la colección (segmento de ruta).
func (uc *CollectionUseCase[T]) Name() string { return uc.c.Name }

// List devuelve los ítems en orden de inserción.
func (uc *CollectionUseCase[T]) List(ctx context.Context, userID string) ([]T, error) {
	cat, err := readCatalog(ctx, uc.sess, userID)
	if err != nil {
		return nil, err
	}
	return slices.Clone(uc.c.Items(cat)), nil
}

// Get obtiene un ítem por ID. Devuelve domain.ErrNotFound si no existe.
func (uc *CollectionUseCase[T]) Get(ctx context.Context, userID, id string) (T, error) {
	var zero T
	cat, err := readCatalog(ctx, uc.sess, userID)
	if err != nil {
		return zero, err
	}
	item, ok := findByID(uc.c.Items(cat), id)
	if !ok {
		return zero, domain.ErrNotFound
	}
	return item, nil
}

// Create agrega el ítem. Sin ID se genera un UUID; un ID existente es domain.ErrDuplicate.
func (uc *CollectionUseCase[T]) Create(ctx context.Context, userID string, item T) (T, error) {
	var zero T
	if item.EntityID() == "" {
		item = uc.c.WithID(item, uc.newID())
	}
	item, err := uc.prepare(item)
	if err != nil {
		return zero, err
	}
	var out T
	err = uc.sess.Run(ctx, func(tx *session.Tx) error {
		if err := requireCatalog(tx, userID); err != nil {
			return err
		}
		if _, exists := findByID(uc.c.Items(tx.Catalog()), item.EntityID()); exists {
			return domain.ErrDuplicate
		}
		next := tx.DispatchCatalog(uc.c.Add(item))
		// ADD_ACCESSORY / ADD_PACKAGING ajustan el stock; se devuelve lo guardado.
		out, _ = findByID(uc.c.Items(next), item.EntityID())
		return nil
	})
	if err != nil {
		return zero, err
	}
	return out, nil
}

// Update reemplaza el ítem con ese ID. Devuelve domain.ErrNotFound si no existe.
func (uc *CollectionUseCase[T]) Update(ctx context.Context, userID, id string, item T) (T, error) {
	var zero T
	item, err := uc.prepare(uc.c.WithID(item, id))
	if err != nil {
		return zero, err
	}
	err = uc.sess.Run(ctx, func(tx *session.Tx) error {
		if err := requireCatalog(tx, userID); err != nil {
			return err
		}
		if _, exists := findByID(uc.c.Items(tx.Catalog()), id); !exists {
			return domain.ErrNotFound
		}
		tx.DispatchCatalog(uc.c.Update(item))
		return nil
	})
	if err != nil {
		return zero, err
	}
	return item, nil
}

// Delete elimina el ítem con ese ID. Devuelve domain.ErrNotFound si no existe.
func (uc *CollectionUseCase[T]) Delete(ctx context.Context, userID, id string) error {
	return uc.sess.Run(ctx, func(tx *session.Tx) error {
		if err := requireCatalog(tx, userID); err != nil {
			return err
		}
		if _, exists := findByID(uc.c.Items(tx.Catalog()), id); !exists {
			return domain.ErrNotFound
		}
		tx.DispatchCatalog(uc.c.Delete(id))
		return nil
	})
}

func (uc *CollectionUseCase[T]) prepare(item T) (T, error) {
	if uc.c.Prepare == nil {
		return item, nil
	}
	return uc.c.Prepare(item)
}

func findByID[T entity.Identifiable](items []T, id string) (T, bool) {
	for _, it := range items {
		if it.EntityID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}
