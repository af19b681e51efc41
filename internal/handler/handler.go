package handler

import (
	"net/http"
	"reflect"
	"strings"

	"cafe-pos/internal/checkout"
	"cafe-pos/internal/logger"
	"cafe-pos/internal/menu"
	"cafe-pos/internal/metrics"
	"cafe-pos/internal/middleware"
	"cafe-pos/internal/order"
	"cafe-pos/internal/staff"
	"cafe-pos/internal/table"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Deps are the services the HTTP API is built on.
type Deps struct {
	Staff    staff.Service
	Tables   table.Repository
	Menu     menu.Service
	Orders   order.Service
	Checkout checkout.Service
	Metrics  *metrics.Registry
	Limiter  *middleware.RateLimiter

	JWTSecret  string
	CORSOrigin string
}

type Handler struct {
	staff    staff.Service
	tables   table.Repository
	menu     menu.Service
	orders   order.Service
	checkout checkout.Service
	metrics  *metrics.Registry
	validate *validator.Validate
}

func New(d Deps) *Handler {
	validate := validator.New()
	// report fields by their JSON name
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	registry := d.Metrics
	if registry == nil {
		registry = metrics.NewRegistry()
	}

	return &Handler{
		staff:    d.Staff,
		tables:   d.Tables,
		menu:     d.Menu,
		orders:   d.Orders,
		checkout: d.Checkout,
		metrics:  registry,
		validate: validate,
	}
}

// NewRouter wires the middleware chain and every route of the API.
func NewRouter(d Deps) http.Handler {
	h := New(d)
	limiter := d.Limiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter()
	}

	r := chi.NewRouter()
	r.Use(logger.RequestIDMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.CORS(d.CORSOrigin))

	r.Get("/health", h.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.With(limiter.Middleware).Post("/auth/login", h.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(d.JWTSecret))
			r.Use(limiter.Middleware)

			h.RegisterRoutes(r)
			r.With(middleware.RequireRole(staff.RoleManager)).Get("/stats", h.handleStats)
		})
	})

	return r
}

// RegisterRoutes mounts the staff-only routes on router.
func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/tables", h.handleListTables)
	router.Get("/menu", h.handleListMenu)
	router.Get("/orders/active", h.handleListActiveOrders)
	router.Get("/orders/{orderID}/payments", h.handleListPayments)

	router.Route("/tables/{tableID}", func(r chi.Router) {
		r.Get("/order", h.handleGetOrder)
		r.Delete("/order", h.handleClearOrder)
		r.Post("/items", h.handleAddItem)
		r.Patch("/items/{lineID}", h.handleUpdateItem)
		r.Delete("/items/{lineID}", h.handleRemoveItem)
		r.Patch("/status", h.handleUpdateStatus)
		r.Post("/checkout/quote", h.handleQuote)
		r.Post("/checkout", h.handlePay)
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.metrics.Snapshot())
}
