package domain

// OrderItem is one purchased line inside an OrderSummary.
type OrderItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
}

// OrderSummary is the terminal artifact of a checkout: built once by the
// submission service on success and immutable afterwards. TotalAmount is
// the caller-supplied authoritative total, not a recomputation.
type OrderSummary struct {
	OrderID     string      `json:"orderId"`
	FullName    string      `json:"fullName"`
	Email       string      `json:"email"`
	Address     string      `json:"address"`
	TotalAmount float64     `json:"totalAmount"`
	OrderDate   string      `json:"orderDate"`
	Items       []OrderItem `json:"items"`
}
