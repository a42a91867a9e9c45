package cart

// ItemMeta carries optional per-item customization chosen in the shop UI.
type ItemMeta struct {
	Color        string `json:"color,omitempty"`
	Engraving    string `json:"engraving,omitempty"`
	Installation bool   `json:"installation,omitempty"`
}

// Item is one purchasable line in a cart. ID is stable and unique within
// the cart; unit prices are whole BDT.
type Item struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unitPrice"`
	Quantity  int       `json:"quantity"`
	Category  string    `json:"category"`
	Meta      *ItemMeta `json:"meta,omitempty"`
}

// Subtotal returns unit price times quantity for this line.
func (it Item) Subtotal() float64 {
	return it.UnitPrice * float64(it.Quantity)
}

func (it Item) clone() Item {
	out := it
	if it.Meta != nil {
		meta := *it.Meta
		out.Meta = &meta
	}
	return out
}
