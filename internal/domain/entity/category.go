package entity

// Category agrupa productos impresos (llaveros, miniaturas, repuestos...).
type Category struct {
	ID   string `json:"id"`
	Name string `json:"nome"`
}

func (c Category) EntityID() string { return c.ID }
