package routes

import (
	"net/http"

	"campuskitchen/activity"
	"campuskitchen/admin"
	"campuskitchen/auth"
	"campuskitchen/cart"
	"campuskitchen/delivery"
	"campuskitchen/feedback"
	"campuskitchen/menu"
	"campuskitchen/middleware"
	"campuskitchen/models"
	"campuskitchen/orders"
	"campuskitchen/profile"
	"campuskitchen/qr"
	"campuskitchen/ratelim"
	"campuskitchen/subscription"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/menupic/*filepath", http.Dir("static/menupic"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(auth.RefreshToken))
}

func AddMenuRoutes(router *httprouter.Router) {
	router.GET("/api/menu", ratelim.RateLimit(menu.GetMenuItems))
	router.GET("/api/menu/:menuid", ratelim.RateLimit(menu.GetMenuItem))
	router.POST("/api/menu", middleware.RequireRole(menu.CreateMenuItem, models.RoleAdmin))
	router.PUT("/api/menu/:menuid", middleware.RequireRole(menu.EditMenuItem, models.RoleAdmin))
	router.DELETE("/api/menu/:menuid", middleware.RequireRole(menu.DeleteMenuItem, models.RoleAdmin))
	router.POST("/api/menu/:menuid/image", middleware.RequireRole(menu.UploadMenuImage, models.RoleAdmin))
}

func AddCartRoutes(router *httprouter.Router) {
	router.GET("/api/cart", middleware.Authenticate(cart.GetCart))
	router.POST("/api/cart/items", ratelim.RateLimit(middleware.Authenticate(cart.AddToCart)))
	router.PUT("/api/cart/items", ratelim.RateLimit(middleware.Authenticate(cart.SetQuantity)))
	router.DELETE("/api/cart/items/:itemid", middleware.Authenticate(cart.RemoveFromCart))
	router.DELETE("/api/cart", middleware.Authenticate(cart.ClearCart))
}

func AddOrderRoutes(router *httprouter.Router) {
	router.POST("/api/orders", ratelim.RateLimit(middleware.Authenticate(orders.PlaceOrder)))
	router.GET("/api/orders", middleware.Authenticate(orders.GetMyOrders))
	router.GET("/api/orders/:orderid", middleware.Authenticate(orders.GetOrder))
	router.POST("/api/orders/:orderid/cancel", ratelim.RateLimit(middleware.Authenticate(orders.CancelOrder)))
	router.GET("/api/orders/:orderid/qr", middleware.Authenticate(qr.OrderQRCode))
	router.GET("/api/orders/:orderid/slip", middleware.Authenticate(qr.PrintOrderSlip))
	router.GET("/ws/orders", orders.OrderUpdates(orders.Hub))
}

func AddDeliveryRoutes(router *httprouter.Router) {
	router.POST("/api/delivery/confirm", ratelim.RateLimit(middleware.RequireRole(delivery.ConfirmDelivery, models.RoleDelivery, models.RoleAdmin)))
	router.GET("/api/delivery/pending", middleware.RequireRole(orders.PendingDeliveries, models.RoleDelivery, models.RoleAdmin))
	router.GET("/api/delivery/completed", middleware.RequireRole(orders.CompletedDeliveries, models.RoleDelivery, models.RoleAdmin))
	router.GET("/api/delivery/stats", middleware.RequireRole(delivery.DeliveryStats, models.RoleDelivery, models.RoleAdmin))
}

func AddSubscriptionRoutes(router *httprouter.Router) {
	router.GET("/api/subscription/plans", ratelim.RateLimit(subscription.GetPlans))
	router.GET("/api/subscription/status", middleware.Authenticate(subscription.GetStatus))
	router.POST("/api/subscription/purchase", ratelim.RateLimit(middleware.Authenticate(subscription.Purchase)))
	router.POST("/api/subscription/extend", ratelim.RateLimit(middleware.Authenticate(subscription.ExtendSubscription)))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/profile", middleware.Authenticate(profile.GetProfile))
	router.PUT("/api/profile", middleware.Authenticate(profile.EditProfile))
	router.DELETE("/api/profile", middleware.Authenticate(profile.DeleteProfile))
}

func AddActivityRoutes(router *httprouter.Router) {
	router.GET("/api/activity", middleware.Authenticate(activity.GetActivityFeed))
}

func AddFeedbackRoutes(router *httprouter.Router) {
	router.POST("/api/feedback", ratelim.RateLimit(middleware.Authenticate(feedback.SubmitFeedback)))
	router.GET("/api/feedback", middleware.RequireRole(feedback.ListFeedback, models.RoleAdmin))
}

func AddAdminRoutes(router *httprouter.Router) {
	router.GET("/api/admin/dashboard", middleware.RequireRole(admin.Dashboard, models.RoleAdmin))
	router.GET("/api/admin/users", middleware.RequireRole(admin.ListUsers, models.RoleAdmin))
	router.GET("/api/admin/orders", middleware.RequireRole(admin.ListOrders, models.RoleAdmin))
	router.PUT("/api/admin/users/:userid/tokens", middleware.RequireRole(admin.AdjustTokens, models.RoleAdmin))
	router.DELETE("/api/admin/users/:userid", middleware.RequireRole(admin.DeleteUser, models.RoleAdmin))
	router.DELETE("/api/admin/orders/:orderid", middleware.RequireRole(admin.DeleteOrder, models.RoleAdmin))
}
