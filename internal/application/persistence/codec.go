package persistence

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jhoicas/print3d-api/internal/domain"
	"github.com/jhoicas/print3d-api/internal/domain/entity"
)

// EncodeCatalog serializa el catálogo completo con la forma del snapshot.
func EncodeCatalog(c entity.Catalog) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("serializar catálogo: %w", err)
	}
	return string(b), nil
}

// DecodeCatalog lee un snapshot. Solo acepta la forma actual: campos desconocidos o basura
// al final son domain.ErrSnapshotFormat. Un JSON null se trata como "sin snapshot" (found=false).
func DecodeCatalog(raw string) (c entity.Catalog, found bool, err error) {
	var out *entity.Catalog
	if err := decodeStrict(raw, &out); err != nil {
		return entity.Catalog{}, false, err
	}
	if out == nil {
		return entity.Catalog{}, false, nil
	}
	return normalize(*out), true, nil
}

// EncodeDirectory serializa el directorio de usuarios.
func EncodeDirectory(d entity.Directory) (string, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("serializar directorio: %w", err)
	}
	return string(b), nil
}

// DecodeDirectory lee el directorio persistido; null equivale a no encontrado.
func DecodeDirectory(raw string) (entity.Directory, bool, error) {
	var out entity.Directory
	if err := decodeStrict(raw, &out); err != nil {
		return nil, false, err
	}
	if out == nil {
		return nil, false, nil
	}
	return out, true, nil
}

func decodeStrict(raw string, v any) error {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSnapshotFormat, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: datos después del objeto", domain.ErrSnapshotFormat)
	}
	return nil
}

// normalize reemplaza colecciones ausentes (null) por colecciones vacías.
func normalize(c entity.Catalog) entity.Catalog {
	if c.Printers == nil {
		c.Printers = []entity.Printer{}
	}
	if c.Filaments == nil {
		c.Filaments = []entity.Filament{}
	}
	if c.Accessories == nil {
		c.Accessories = []entity.Accessory{}
	}
	if c.Packaging == nil {
		c.Packaging = []entity.Packaging{}
	}
	if c.Categories == nil {
		c.Categories = []entity.Category{}
	}
	if c.PrintHistory == nil {
		c.PrintHistory = []entity.PrintRecord{}
	}
	return c
}
