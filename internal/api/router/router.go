package router

import (
	"fmt"
	"net/http"

	"github.com/RoyceAzure/lab/shopcenter/internal/api"
	m "github.com/RoyceAzure/lab/shopcenter/internal/api/middleware"
	"github.com/RoyceAzure/rj/api/token"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func SetupRouter(server *api.Server, tokenMaker token.Maker[uuid.UUID], logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(m.AuthPayloadMiddleware(tokenMaker))
	r.Use(middleware.RealIP)
	r.Use(m.LoggerMiddleware(logger))

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		//Auth相關路由
		r.Group(func(r chi.Router) {
			r.Route("/auth", func(r chi.Router) {
				r.Post("/register", server.AuthHandler.Register)
				r.Post("/login", server.AuthHandler.Login)
				r.Post("/refresh-token", server.AuthHandler.ReNewToken)
				r.Post("/reset-password", server.AuthHandler.RequestPasswordReset)
				r.Post("/reset-password/confirm", server.AuthHandler.ConfirmPasswordReset)
				r.With(m.AuthMiddleware).Get("/me", server.AuthHandler.Me)
				r.With(m.AuthMiddleware).Post("/change-password", server.AuthHandler.ChangePassword)
			})
		})

		//商品與分類路由，讀取公開，寫入需登入
		r.Group(func(r chi.Router) {
			r.Route("/products", func(r chi.Router) {
				r.Get("/", server.ProductHandler.ListProducts)
				r.Get("/{id}", server.ProductHandler.GetProduct)
				r.With(m.AuthMiddleware).Post("/", server.ProductHandler.CreateProduct)
				r.With(m.AuthMiddleware).Patch("/{id}", server.ProductHandler.UpdateProduct)
				r.With(m.AuthMiddleware).Delete("/{id}", server.ProductHandler.DeleteProduct)
			})
			r.Route("/categories", func(r chi.Router) {
				r.Get("/", server.ProductHandler.ListCategories)
				r.With(m.AuthMiddleware).Post("/", server.ProductHandler.CreateCategory)
				r.With(m.AuthMiddleware).Put("/{id}", server.ProductHandler.UpdateCategory)
				r.With(m.AuthMiddleware).Delete("/{id}", server.ProductHandler.DeleteCategory)
			})
		})

		//購物車路由，全部需登入
		r.Group(func(r chi.Router) {
			r.Use(m.AuthMiddleware)
			r.Route("/cart", func(r chi.Router) {
				r.Get("/", server.CartHandler.GetCart)
				r.Delete("/", server.CartHandler.ClearCart)
				r.Post("/items", server.CartHandler.AddItem)
				r.Patch("/items/{id}", server.CartHandler.UpdateItem)
				r.Delete("/items/{id}", server.CartHandler.RemoveItem)
			})
		})

		//訂單路由，全部需登入
		r.Group(func(r chi.Router) {
			r.Use(m.AuthMiddleware)
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", server.OrderHandler.ListOrders)
				r.Post("/checkout", server.OrderHandler.Checkout)
				r.Get("/{id}", server.OrderHandler.GetOrder)
				r.Patch("/{id}", server.OrderHandler.UpdateOrderStatus)
				r.Delete("/{id}", server.OrderHandler.DeleteOrder)
			})
		})
	})

	// 在設置完所有路由後打印路由樹
	fmt.Println(chi.Walk(r, func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		fmt.Printf("%s %s\n", method, route)
		return nil
	}))
	return r
}
