package catalog

import "github.com/jhoicas/print3d-api/internal/domain/entity"

// Helpers genéricos sobre colecciones. Siempre devuelven un slice nuevo;
// el slice de entrada no se toca porque el estado anterior sigue siendo observable.

func appendItem[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, item)
}

func replaceByID[T entity.Identifiable](items []T, item T) []T {
	out := make([]T, len(items))
	for i, it := range items {
		if it.EntityID() == item.EntityID() {
			out[i] = item
			continue
		}
		out[i] = it
	}
	return out
}

func removeByID[T entity.Identifiable](items []T, id string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.EntityID() != id {
			out = append(out, it)
		}
	}
	return out
}

// consume resta a cada elemento la primera cantidad del delta con su mismo ID.
func consume[T entity.Identifiable](items []T, deltas []StockDelta, apply func(T, StockDelta) T) []T {
	out := make([]T, len(items))
	for i, it := range items {
		out[i] = it
		for _, d := range deltas {
			if d.ID == it.EntityID() {
				out[i] = apply(it, d)
				break
			}
		}
	}
	return out
}
