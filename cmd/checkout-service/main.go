package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/storefront/checkout/internal/checkout/coupon"
	"github.com/storefront/checkout/internal/checkout/order"
	"github.com/storefront/checkout/internal/checkout/orderlog"
	"github.com/storefront/checkout/internal/checkout/orderlog/sqlite"
	"github.com/storefront/checkout/internal/checkout/session"
	"github.com/storefront/checkout/internal/httpx"
	"github.com/storefront/checkout/internal/pkg/storage"
	"github.com/storefront/checkout/internal/pkg/telemetry"
)

func main() {
	telemetry.InitLogger()

	ctx := context.Background()
	shutdown, err := telemetry.SetupTracer(ctx, "checkout-service")
	if err != nil {
		log.Printf("tracing disabled: %v", err)
	} else {
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(flushCtx)
		}()
	}

	httpAddr := getEnv("CHECKOUT_HTTP_ADDR", ":8080")

	// Drafts live in Redis when an instance is configured; without one the
	// service still runs, with in-memory drafts that do not survive a
	// restart.
	var store storage.Store
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		store = storage.NewRedisStore(redisAddr, "checkout")
		log.Printf("using redis draft storage at %s", redisAddr)
	} else {
		store = storage.NewMemoryStore()
		log.Printf("REDIS_ADDR not set, using in-memory draft storage")
	}

	var orders orderlog.Repository
	repo, err := sqlite.Open(getEnv("ORDER_DB_PATH", "./orders.db"))
	if err != nil {
		log.Fatalf("could not open order history db: %v", err)
	}
	defer repo.Close()
	orders = repo

	submitter := order.NewService(order.DefaultDelay)
	manager := session.NewManager(store, coupon.DefaultRegistry(), submitter, orders)

	handler := httpx.NewHandler(manager, orders)
	router := httpx.NewRouter(handler)

	log.Printf("checkout service running on %s", httpAddr)
	if err := http.ListenAndServe(httpAddr, router); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
