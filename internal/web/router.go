package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/ghrd1/shop-front/internal/api"
	"github.com/ghrd1/shop-front/internal/cart"
	"github.com/ghrd1/shop-front/internal/catalog"
	"github.com/ghrd1/shop-front/internal/checkout"
	"github.com/ghrd1/shop-front/internal/orders"
	"github.com/ghrd1/shop-front/internal/session"
)

type Deps struct {
	Sessions    *session.Manager
	Catalog     *catalog.Browser
	Cart        *cart.Engine
	Coordinator *checkout.Coordinator
	History     *orders.History
	API         *api.Client
	Log         logrus.FieldLogger
	Timeout     time.Duration
}

// NewRouter assembles the local surface. The session manager gates everything
// except login, registration and health.
func NewRouter(deps Deps) http.Handler {
	authHandler := NewAuthHandler(deps.Sessions, deps.Log)
	shopHandler := NewShopHandler(deps.Catalog, deps.Cart)
	checkoutHandler := NewCheckoutHandler(deps.Coordinator, deps.Cart, deps.Log)
	ordersHandler := NewOrdersHandler(deps.History)
	adminHandler := NewAdminHandler(deps.API)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(deps.Timeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/login", authHandler.Login)
	r.Post("/register", authHandler.Register)

	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(deps.Sessions))

		r.Post("/logout", authHandler.Logout)
		r.Get("/profile", authHandler.Profile)
		r.Patch("/profile", authHandler.UpdateProfile)

		r.Get("/items", shopHandler.ListItems)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", shopHandler.GetCart)
			r.Post("/items", shopHandler.AddItem)
			r.Put("/items/{item_id}", shopHandler.UpdateQuantity)
			r.Delete("/items/{item_id}", shopHandler.RemoveItem)
			r.Post("/checkout", shopHandler.BeginCheckout)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", checkoutHandler.View)
			r.Put("/items/{item_id}", checkoutHandler.UpdateQuantity)
			r.Delete("/items/{item_id}", checkoutHandler.RemoveLine)
			r.Post("/submit", checkoutHandler.Submit)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordersHandler.List)
			r.Get("/{order_id}", ordersHandler.Detail)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireAdmin(deps.Sessions))

			r.Get("/users", adminHandler.ListUsers)
			r.Patch("/users/{user_id}", adminHandler.UpdateUser)
			r.Delete("/users/{user_id}", adminHandler.DeleteUser)

			r.Post("/items", adminHandler.CreateItem)
			r.Put("/items/{item_id}", adminHandler.UpdateItem)
			r.Delete("/items/{item_id}", adminHandler.DeleteItem)
		})
	})

	return r
}
