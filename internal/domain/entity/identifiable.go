package entity

// Identifiable lo implementan las entidades de catálogo que se indexan por ID.
type Identifiable interface {
	EntityID() string
}
