package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lucira_back_end/internal/handlers"
)

// RegisterRoutes branche toute la surface HTTP du storefront.
func RegisterRoutes(
	r *gin.Engine,
	auth *handlers.AuthHandler,
	cart *handlers.CartHandler,
	collection *handlers.CollectionHandler,
	reviews *handlers.ReviewHandler,
) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Auth (login OTP sans mot de passe)
	api.POST("/auth/send-otp", auth.SendOTP)
	api.POST("/auth/verify-otp", auth.VerifyOTP)
	api.POST("/auth/register", auth.Register)
	api.POST("/auth/logout", auth.Logout)

	// Panier
	api.POST("/cart/create", cart.Create)
	api.POST("/cart/attach", cart.Attach)

	// Navigation collections
	api.GET("/collection", collection.Page)
	api.GET("/collection/filters", collection.Filters)
	api.GET("/products", collection.ProductsRedirect)

	// Avis produits
	api.GET("/reviews", reviews.ProductReviews)
}
