// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-state/internal/config"
	"github.com/your-org/storefront-state/internal/interfaces/http/events"
	"github.com/your-org/storefront-state/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-state/internal/store"
)

// SetupCartRoutes sets up cart related routes
func SetupCartRoutes(rg *gin.RouterGroup, s *store.Store) {
	cartHandler := handlers.NewCartHandler(s)

	cart := rg.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.GET("/count", cartHandler.GetCartCount)
		cart.DELETE("", cartHandler.ClearCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
	}
}

// SetupWishlistRoutes sets up wishlist related routes
func SetupWishlistRoutes(rg *gin.RouterGroup, s *store.Store) {
	wishlistHandler := handlers.NewWishlistHandler(s)

	wishlist := rg.Group("/wishlist")
	{
		wishlist.GET("", wishlistHandler.GetWishlist)
		wishlist.POST("", wishlistHandler.AddToWishlist)
		wishlist.DELETE("", wishlistHandler.ClearWishlist)
		wishlist.POST("/toggle", wishlistHandler.ToggleWishlist)
		wishlist.GET("/:id", wishlistHandler.CheckItemInWishlist)
		wishlist.DELETE("/:id", wishlistHandler.RemoveFromWishlist)
		wishlist.POST("/:id/move-to-cart", wishlistHandler.MoveToCart)
	}
}

// SetupHistoryRoutes sets up recently-viewed and recent-search routes
func SetupHistoryRoutes(rg *gin.RouterGroup, s *store.Store) {
	historyHandler := handlers.NewHistoryHandler(s)

	viewed := rg.Group("/recently-viewed")
	{
		viewed.GET("", historyHandler.GetRecentlyViewed)
		viewed.POST("", historyHandler.RecordView)
		viewed.DELETE("", historyHandler.ClearRecentlyViewed)
	}

	searches := rg.Group("/searches")
	{
		searches.GET("", historyHandler.GetRecentSearches)
		searches.POST("", historyHandler.RecordSearch)
		searches.DELETE("", historyHandler.ClearRecentSearches)
	}
}

// SetupProfileRoutes sets up profile and address routes
func SetupProfileRoutes(rg *gin.RouterGroup, s *store.Store) {
	profileHandler := handlers.NewProfileHandler(s)

	profile := rg.Group("/profile")
	{
		profile.GET("", profileHandler.GetProfile)
		profile.PUT("", profileHandler.SetProfile)
		profile.DELETE("", profileHandler.ClearProfile)
		profile.POST("/reload", profileHandler.ReloadProfile)

		addresses := profile.Group("/addresses")
		{
			addresses.POST("", profileHandler.AddAddress)
			addresses.PUT("/:id", profileHandler.UpdateAddress)
			addresses.DELETE("/:id", profileHandler.DeleteAddress)
			addresses.PUT("/:id/default", profileHandler.SetDefaultAddress)
		}
	}
}

// SetupEventRoutes sets up the change stream
func SetupEventRoutes(rg *gin.RouterGroup, s *store.Store, hub *events.Hub, cfg *config.Config, logger *logrus.Logger) {
	eventsHandler := handlers.NewEventsHandler(s, hub, cfg, logger)
	rg.GET("/events", eventsHandler.Stream)
}

// SetupRoutes sets up all API routes
func SetupRoutes(rg *gin.RouterGroup, s *store.Store, hub *events.Hub, cfg *config.Config, logger *logrus.Logger) {
	SetupCartRoutes(rg, s)
	SetupWishlistRoutes(rg, s)
	SetupHistoryRoutes(rg, s)
	SetupProfileRoutes(rg, s)
	SetupEventRoutes(rg, s, hub, cfg, logger)
}
