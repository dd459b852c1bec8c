package repository

import "context"

// KeyValueStore define el puerto del medio de almacenamiento: get/set de strings por clave.
// Es el equivalente durable del almacenamiento local del navegador; último escritor gana.
// La implementación vive en infrastructure.
type KeyValueStore interface {
	// Get devuelve el valor y found=false si la clave no existe.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
