package entity

import "github.com/shopspring/decimal"

// Los montos viajan como números JSON (120.5, no "120.5"), igual que los snapshots guardados.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
