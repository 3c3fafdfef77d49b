package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/storefront/checkout/internal/checkout/domain"
	"github.com/storefront/checkout/internal/checkout/orderlog"
	"github.com/storefront/checkout/internal/checkout/session"
	"github.com/storefront/checkout/internal/httpx/middlewares"
)

// Handler exposes the checkout wizard and the order history over HTTP.
type Handler struct {
	sessions *session.Manager
	orders   orderlog.Repository // nil-safe: history endpoints 404 when nil
}

// NewHandler wires the handler from the session manager and the order
// history repository. orders may be nil when history is disabled.
func NewHandler(sessions *session.Manager, orders orderlog.Repository) *Handler {
	return &Handler{sessions: sessions, orders: orders}
}

// CreateSession starts a checkout over a snapshot of the posted items.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	items := make([]domain.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		if it.ID == "" || it.Quantity <= 0 || it.Price < 0 {
			writeError(w, http.StatusBadRequest, "invalid_item", "id, quantity, and price must be valid")
			return
		}
		items = append(items, domain.LineItem{
			ID:              it.ID,
			Title:           it.Title,
			Price:           it.Price,
			Quantity:        it.Quantity,
			Thumbnail:       it.Thumbnail,
			DiscountedPrice: it.DiscountedPrice,
		})
	}

	user := middlewares.UserFrom(r.Context())
	slog.InfoContext(r.Context(), "starting checkout", "user_id", user.ID, "items", len(items))

	c := h.sessions.Create(r.Context(), items)
	writeJSON(w, http.StatusCreated, c.Snapshot())
}

// GetSession returns the full state of one session.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	c, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c.Snapshot())
}

// AbandonSession drops a session and its persisted draft.
func (h *Handler) AbandonSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Abandon(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusNotFound, "session_not_found", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetField updates one form field. A validation message comes back as data
// in a 200 response; only unknown fields are a client error.
func (h *Handler) SetField(w http.ResponseWriter, r *http.Request) {
	c, ok := h.session(w, r)
	if !ok {
		return
	}

	var req SetFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	field := chi.URLParam(r, "field")
	fieldErr, err := c.SetField(r.Context(), field, req.Value)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_field", field)
		return
	}

	resp := SetFieldResponse{Field: field, Session: c.Snapshot()}
	if fieldErr != nil {
		resp.FieldError = fieldErr.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

// Next validates the active step and advances on success.
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	c, ok := h.session(w, r)
	if !ok {
		return
	}
	moved := c.Next(r.Context())
	writeJSON(w, http.StatusOK, NavigateResponse{Moved: moved, Session: c.Snapshot()})
}

// Previous steps back without re-validation.
func (h *Handler) Previous(w http.ResponseWriter, r *http.Request) {
	c, ok := h.session(w, r)
	if !ok {
		return
	}
	c.Previous(r.Context())
	writeJSON(w, http.StatusOK, NavigateResponse{Moved: true, Session: c.Snapshot()})
}

// Jump attempts a direct jump; an ignored jump comes back Moved=false.
func (h *Handler) Jump(w http.ResponseWriter, r *http.Request) {
	c, ok := h.session(w, r)
	if !ok {
		return
	}

	var req JumpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	moved := c.JumpTo(r.Context(), req.Step)
	writeJSON(w, http.StatusOK, NavigateResponse{Moved: moved, Session: c.Snapshot()})
}

// UpdateItem changes a snapshot line's quantity.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	c, ok := h.session(w, r)
	if !ok {
		return
	}

	var req QuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	if err := c.UpdateQuantity(chi.URLParam(r, "itemID"), req.Quantity); err != nil {
		writeError(w, http.StatusNotFound, "item_not_found", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c.Snapshot())
}

// RemoveItem drops a line from the snapshot.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := c.RemoveItem(chi.URLParam(r, "itemID")); err != nil {
		writeError(w, http.StatusNotFound, "item_not_found", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c.Snapshot())
}

// ApplyCoupon validates and applies a code at the current subtotal.
func (h *Handler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	c, ok := h.session(w, r)
	if !ok {
		return
	}

	var req CouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	res := c.ApplyCoupon(r.Context(), req.Code)
	writeJSON(w, http.StatusOK, CouponResponse{
		Valid:    res.Valid,
		Message:  res.Message,
		Discount: res.Discount,
		Session:  c.Snapshot(),
	})
}

// RemoveCoupon clears the active coupon.
func (h *Handler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	c, ok := h.session(w, r)
	if !ok {
		return
	}
	c.RemoveCoupon()
	writeJSON(w, http.StatusOK, c.Snapshot())
}

// SubmitOrder runs the wizard's terminal action. While a submission is in
// flight further submits are refused with 409; the wizard delegates the
// re-entrancy guard to its caller.
func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	c, ok := h.session(w, r)
	if !ok {
		return
	}
	if c.IsSubmitting() {
		writeError(w, http.StatusConflict, "submission_in_flight", "an order submission is already being processed")
		return
	}

	summary, err := h.sessions.Submit(r.Context(), c.ID)
	if errors.Is(err, session.ErrSubmissionInFlight) {
		writeError(w, http.StatusConflict, "submission_in_flight", err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, "submission_failed", err.Error())
		return
	}

	if summary == nil {
		view := c.Snapshot()
		writeJSON(w, http.StatusOK, SubmitResponse{Submitted: false, Session: &view})
		return
	}
	writeJSON(w, http.StatusOK, SubmitResponse{Submitted: true, Order: summary})
}

// GetOrder returns one order from the history.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	if h.orders == nil {
		writeError(w, http.StatusNotFound, "history_disabled", "")
		return
	}

	entry, err := h.orders.GetByOrderID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "order_not_found", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, mapEntryToResponse(entry))
}

// ListOrders returns a customer's order history, newest first. The email
// comes from the query string or, failing that, the identity headers.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	if h.orders == nil {
		writeError(w, http.StatusNotFound, "history_disabled", "")
		return
	}

	email := r.URL.Query().Get("email")
	if email == "" {
		email = middlewares.UserFrom(r.Context()).Email
	}
	if email == "" {
		writeError(w, http.StatusBadRequest, "email_required", "")
		return
	}

	entries, err := h.orders.ListByEmail(r.Context(), email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "history_error", err.Error())
		return
	}

	out := make([]OrderRecordResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, mapEntryToResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}

// session resolves the {id} URL param, writing a 404 on a miss.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Checkout, bool) {
	c, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "session_not_found", err.Error())
		return nil, false
	}
	return c, true
}

func mapEntryToResponse(e *orderlog.Entry) OrderRecordResponse {
	resp := OrderRecordResponse{
		OrderID:     e.OrderID,
		Email:       e.Email,
		TotalAmount: e.TotalAmount,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
	// The payload was written by us; a decode failure means a corrupt row,
	// in which case the header fields are still served.
	_ = json.Unmarshal([]byte(e.Summary), &resp.Order)
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
