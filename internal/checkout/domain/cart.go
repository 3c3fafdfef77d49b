package domain

// LineItem is one cart entry. The checkout takes an immutable snapshot of
// the cart when a session starts; quantity edits inside the session never
// flow back to the originating cart.
type LineItem struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Price           float64  `json:"price"`
	Quantity        int      `json:"quantity"`
	Thumbnail       string   `json:"thumbnail,omitempty"`
	DiscountedPrice *float64 `json:"discountedPrice,omitempty"`
}

// UnitPrice is the effective per-unit price: the discounted price when one
// is set, the list price otherwise.
func (li LineItem) UnitPrice() float64 {
	if li.DiscountedPrice != nil {
		return *li.DiscountedPrice
	}
	return li.Price
}
