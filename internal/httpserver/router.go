package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	authmw "github.com/hoanglamvn01/cosmetic_shop/internal/middleware/auth"
	"github.com/hoanglamvn01/cosmetic_shop/internal/middleware/ratelimit"
	"github.com/hoanglamvn01/cosmetic_shop/internal/service"
)

type Deps struct {
	JWTSecret []byte
	Redis     *redis.Client

	Auth     *service.AuthService
	Catalog  *service.CatalogService
	Cart     *service.CartService
	Address  *service.AddressService
	Discount *service.DiscountService
	Order    *service.OrderService
	Payment  *service.PaymentService
	Review   *service.ReviewService
	Content  *service.ContentService
}

// Register mounts the whole API surface on e.
func Register(e *echo.Echo, d Deps) {
	mw := authmw.New(d.JWTSecret)

	authHTTP := &AuthHTTP{Svc: d.Auth}
	catalogHTTP := &CatalogHTTP{Svc: d.Catalog}
	cartHTTP := &CartHTTP{Svc: d.Cart}
	addressHTTP := &AddressHTTP{Svc: d.Address}
	discountHTTP := &DiscountHTTP{Svc: d.Discount}
	orderHTTP := &OrderHTTP{Svc: d.Order}
	paymentHTTP := &PaymentHTTP{Svc: d.Payment}
	reviewHTTP := &ReviewHTTP{Svc: d.Review}
	contentHTTP := &ContentHTTP{Svc: d.Content}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")

	// auth; OTP and login endpoints are rate limited per client IP
	authGroup := api.Group("/auth", ratelimit.Middleware(d.Redis))
	authGroup.POST("/register", authHTTP.Register)
	authGroup.POST("/login", authHTTP.Login)
	authGroup.POST("/logout", authHTTP.Logout)
	authGroup.POST("/request-otp", authHTTP.RequestOTP)
	authGroup.POST("/verify-otp", authHTTP.VerifyOTP)
	authGroup.POST("/reset-password", authHTTP.ResetPassword)
	authGroup.POST("/google", authHTTP.GoogleLogin)

	// catalog
	api.GET("/products", catalogHTTP.GetProducts)
	api.GET("/products/search", catalogHTTP.SearchProducts)
	api.GET("/products/:id", catalogHTTP.GetProduct)
	api.POST("/products", catalogHTTP.CreateProduct, mw.RequireAdmin)
	api.PATCH("/products/:id", catalogHTTP.PatchProduct, mw.RequireAdmin)
	api.DELETE("/products/:id", catalogHTTP.DeleteProduct, mw.RequireAdmin)

	api.GET("/categories", catalogHTTP.GetCategories)
	api.POST("/categories", catalogHTTP.CreateCategory, mw.RequireAdmin)
	api.DELETE("/categories/:id", catalogHTTP.DeleteCategory, mw.RequireAdmin)

	api.GET("/brands", catalogHTTP.GetBrands)
	api.POST("/brands", catalogHTTP.CreateBrand, mw.RequireAdmin)
	api.DELETE("/brands/:id", catalogHTTP.DeleteBrand, mw.RequireAdmin)

	// cart
	cart := api.Group("/cart", mw.RequireAuth)
	cart.GET("", cartHTTP.GetCart)
	cart.POST("", cartHTTP.AddToCart)
	cart.PUT("/:productId", cartHTTP.UpdateCartItem)
	cart.DELETE("/:productId", cartHTTP.RemoveFromCart)
	cart.DELETE("", cartHTTP.ClearCart)

	// addresses
	addr := api.Group("/addresses", mw.RequireAuth)
	addr.GET("", addressHTTP.ListAddresses)
	addr.POST("", addressHTTP.CreateAddress)
	addr.PUT("/:id", addressHTTP.UpdateAddress)
	addr.DELETE("/:id", addressHTTP.DeleteAddress)
	addr.PUT("/:id/set-default", addressHTTP.SetDefaultAddress)

	// discounts
	api.POST("/discounts/apply", discountHTTP.ApplyDiscount, mw.RequireAuth)
	api.GET("/discounts", discountHTTP.ListDiscounts, mw.RequireAdmin)
	api.POST("/discounts", discountHTTP.CreateDiscount, mw.RequireAdmin)
	api.DELETE("/discounts/:id", discountHTTP.DeleteDiscount, mw.RequireAdmin)

	// orders
	api.POST("/orders", orderHTTP.CreateOrder, mw.RequireAuth)
	api.GET("/orders/:id", orderHTTP.GetOrder, mw.RequireAuth)
	api.GET("/orders/user/:userId", orderHTTP.ListUserOrders, mw.RequireAuth)
	api.PUT("/orders/:id/cancel", orderHTTP.CancelOrder, mw.RequireAuth)
	api.PUT("/orders/:id/status", orderHTTP.UpdateOrderStatus, mw.RequireAdmin)

	// payments; provider callbacks are unauthenticated, signatures gate them
	api.POST("/payments/create-vnpay-order", paymentHTTP.CreateVNPayOrder, mw.RequireAuth)
	api.POST("/payments/create-momo-order", paymentHTTP.CreateMoMoOrder, mw.RequireAuth)
	api.GET("/payments/vnpay_return", paymentHTTP.VNPayReturn)
	api.GET("/payments/vnpay_ipn", paymentHTTP.VNPayIPN)
	api.POST("/payments/momo_ipn", paymentHTTP.MoMoIPN)

	// reviews
	api.GET("/products/:id/reviews", reviewHTTP.ListProductReviews)
	api.POST("/reviews", reviewHTTP.CreateReview, mw.RequireAuth)
	api.DELETE("/reviews/:id", reviewHTTP.DeleteReview, mw.RequireAuth)

	// content
	api.GET("/posts", contentHTTP.ListPosts)
	api.GET("/posts/:id", contentHTTP.GetPost)
	api.POST("/contact", contentHTTP.SubmitContact)
	api.GET("/contacts", contentHTTP.ListContacts, mw.RequireAdmin)
}
