package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/storefront/checkout/internal/httpx/middlewares"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachIdentity)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/checkout/sessions", func(r chi.Router) {
		r.Post("/", handler.CreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handler.GetSession)
			r.Delete("/", handler.AbandonSession)
			r.Put("/fields/{field}", handler.SetField)
			r.Post("/next", handler.Next)
			r.Post("/previous", handler.Previous)
			r.Post("/jump", handler.Jump)
			r.Post("/items/{itemID}", handler.UpdateItem)
			r.Delete("/items/{itemID}", handler.RemoveItem)
			r.Post("/coupon", handler.ApplyCoupon)
			r.Delete("/coupon", handler.RemoveCoupon)
			r.Post("/submit", handler.SubmitOrder)
		})
	})

	r.Get("/orders", handler.ListOrders)
	r.Get("/orders/{id}", handler.GetOrder)

	return r
}
