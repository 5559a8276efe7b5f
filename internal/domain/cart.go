package domain

const (
	MinQty = 1
	MaxQty = 99
)

// CartItem is one cart line with the price snapshotted at add time.
type CartItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	PriceUAH  float64 `json:"price_uah"`
	Qty       int     `json:"qty"`
}

func (it CartItem) Subtotal() float64 { return it.PriceUAH * float64(it.Qty) }

// Cart is the session-held cart. It is never persisted to the store;
// handlers read it from the session, apply a mutation and write it back,
// so every operation takes a value and returns the updated value.
type Cart struct {
	Items []CartItem `json:"items"`
}

func ClampQty(n int) int {
	if n < MinQty {
		return MinQty
	}
	if n > MaxQty {
		return MaxQty
	}
	return n
}

func (c Cart) clone() Cart {
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}

// Add appends a new line or increments an existing one. Quantity is
// clamped to [MinQty, MaxQty] in both cases.
func (c Cart) Add(p Product, qty int) Cart {
	out := c.clone()
	qty = ClampQty(qty)
	for i := range out.Items {
		if out.Items[i].ProductID == p.ID {
			out.Items[i].Qty = ClampQty(out.Items[i].Qty + qty)
			return out
		}
	}
	out.Items = append(out.Items, CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Slug:      p.Slug,
		PriceUAH:  p.PriceUAH,
		Qty:       qty,
	})
	return out
}

// UpdateQuantities applies the submitted per-product quantities. Lines
// without an entry keep their quantity; supplied values are clamped.
func (c Cart) UpdateQuantities(updates map[int64]int) Cart {
	out := c.clone()
	for i := range out.Items {
		if q, ok := updates[out.Items[i].ProductID]; ok {
			out.Items[i].Qty = ClampQty(q)
		}
	}
	return out
}

func (c Cart) Remove(productID int64) Cart {
	out := Cart{}
	for _, it := range c.Items {
		if it.ProductID != productID {
			out.Items = append(out.Items, it)
		}
	}
	return out
}

func (c Cart) Total() float64 {
	total := 0.0
	for _, it := range c.Items {
		total += it.PriceUAH * float64(it.Qty)
	}
	return total
}

// Count is the sum of line quantities, shown in the page header.
func (c Cart) Count() int {
	n := 0
	for _, it := range c.Items {
		n += it.Qty
	}
	return n
}

func (c Cart) Empty() bool { return len(c.Items) == 0 }
