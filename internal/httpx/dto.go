package httpx

import (
	"github.com/storefront/checkout/internal/checkout/domain"
	"github.com/storefront/checkout/internal/checkout/session"
)

type CreateSessionRequest struct {
	Items []LineItemDTO `json:"items"`
}

type LineItemDTO struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Price           float64  `json:"price"`
	Quantity        int      `json:"quantity"`
	Thumbnail       string   `json:"thumbnail,omitempty"`
	DiscountedPrice *float64 `json:"discountedPrice,omitempty"`
}

type SetFieldRequest struct {
	Value string `json:"value"`
}

// SetFieldResponse carries the field's validation message as data; a
// non-empty FieldError is a normal 200 response, not a transport failure.
type SetFieldResponse struct {
	Field      string       `json:"field"`
	FieldError string       `json:"fieldError,omitempty"`
	Session    session.View `json:"session"`
}

type JumpRequest struct {
	Step int `json:"step"`
}

// NavigateResponse reports whether the wizard moved. A refused forward
// navigation or ignored jump is Moved=false with the unchanged view.
type NavigateResponse struct {
	Moved   bool         `json:"moved"`
	Session session.View `json:"session"`
}

type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CouponRequest struct {
	Code string `json:"code"`
}

type CouponResponse struct {
	Valid    bool         `json:"valid"`
	Message  string       `json:"message"`
	Discount float64      `json:"discount,omitempty"`
	Session  session.View `json:"session"`
}

// SubmitResponse is the terminal action's result. Submitted is true only
// when an order was created; otherwise the wizard advanced or stayed and
// Session shows where it landed.
type SubmitResponse struct {
	Submitted bool                 `json:"submitted"`
	Order     *domain.OrderSummary `json:"order,omitempty"`
	Session   *session.View        `json:"session,omitempty"`
}

type OrderRecordResponse struct {
	OrderID     string              `json:"orderId"`
	Email       string              `json:"email"`
	TotalAmount float64             `json:"totalAmount"`
	CreatedAt   string              `json:"createdAt"`
	Order       domain.OrderSummary `json:"order"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
