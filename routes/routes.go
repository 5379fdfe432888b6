package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminControllers "github.com/adithyakrishnan/bazario-api/controllers/admin"
	"github.com/adithyakrishnan/bazario-api/controllers/feed"
	otpControllers "github.com/adithyakrishnan/bazario-api/controllers/otp"
	userControllers "github.com/adithyakrishnan/bazario-api/controllers/user"
	"github.com/adithyakrishnan/bazario-api/middleware"
)

// SetupRoutes mounts every endpoint on the engine. Handlers close over
// the shared *gorm.DB.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public auth flow.
	auth := r.Group("/auth")
	{
		auth.POST("/register", userControllers.Register(db))
		auth.POST("/verify-otp", userControllers.VerifyRegistrationOtp(db))
		auth.POST("/set-password", userControllers.SetPassword(db))
		auth.POST("/login", userControllers.Login(db))
		auth.POST("/logout", middleware.ValidateUserToken(db), userControllers.Logout(db))
	}

	// OTP endpoints for the forgot-password flow.
	otp := r.Group("/otp")
	{
		otp.POST("/send", otpControllers.Send(db))
		otp.POST("/verify", otpControllers.Verify(db))
		otp.POST("/reset_password", otpControllers.ResetPassword(db))
		otp.GET("/status/:userId", otpControllers.GetStatus(db))
		otp.GET("/history/:userId", otpControllers.GetHistory(db))
		otp.DELETE("/clear/:userId", otpControllers.Clear(db))
	}

	// Public catalog.
	r.GET("/products", userControllers.ListProducts(db))
	r.GET("/products/:id", userControllers.GetProduct(db))

	// Live order feed for dashboards.
	r.GET("/ws/orders", feed.OrderFeedHandler)

	user := r.Group("/user", middleware.ValidateUserToken(db))
	{
		user.GET("/profile", userControllers.GetProfile(db))
		user.PUT("/profile", userControllers.UpdateProfile(db))

		user.POST("/addresses", userControllers.AddAddress(db))
		user.GET("/addresses", userControllers.ListAddresses(db))
		user.GET("/addresses/:id", userControllers.GetAddress(db))
		user.PUT("/addresses/:id", userControllers.UpdateAddress(db))
		user.DELETE("/addresses/:id", userControllers.RemoveAddress(db))

		user.POST("/products/:id/add-to-cart", userControllers.AddToCart(db))
		user.GET("/cart", userControllers.GetCart(db))
		user.PUT("/cart/:id", userControllers.UpdateCartItem(db))
		user.DELETE("/cart/:id", userControllers.RemoveCartItem(db))
		user.POST("/cart/checkout", userControllers.Checkout(db))

		user.GET("/orders", userControllers.ListOrders(db))
		user.GET("/orders/:id", userControllers.GetOrder(db))

		user.POST("/payments", userControllers.ProcessPayment(db))
		user.GET("/payments", userControllers.ListPayments(db))
		user.GET("/payments/:id", userControllers.GetPayment(db))
	}

	r.POST("/admin/login", adminControllers.Login(db))

	admin := r.Group("/admin", middleware.ValidateAdminToken(db))
	{
		admin.GET("/profile", adminControllers.GetProfile(db))
		admin.PUT("/profile", adminControllers.UpdateProfile(db))

		admin.GET("/users", adminControllers.ListUsers(db))
		admin.POST("/users", adminControllers.AddUser(db))
		admin.GET("/users/:id", adminControllers.GetUser(db))
		admin.PUT("/users/:id", adminControllers.UpdateUser(db))
		admin.DELETE("/users/:id", adminControllers.RemoveUser(db))
		admin.PUT("/users/:id/status", adminControllers.SetUserStatus(db))
		admin.GET("/users/:id/orders", adminControllers.GetUserOrders(db))

		admin.GET("/products", adminControllers.ListProducts(db))
		admin.POST("/products", adminControllers.AddProduct(db))
		admin.GET("/products/export-excel", adminControllers.ExportProductsToExcel(db))
		admin.GET("/products/:id", adminControllers.GetProduct(db))
		admin.PUT("/products/:id", adminControllers.UpdateProduct(db))
		admin.DELETE("/products/:id", adminControllers.RemoveProduct(db))
		admin.PUT("/products/:id/stock", adminControllers.UpdateStock(db))

		admin.GET("/orders", adminControllers.ListOrders(db))
		admin.GET("/orders/payments", adminControllers.ListAllPayments(db))
		admin.POST("/orders/place_for_user", adminControllers.PlaceForUser(db))
		admin.GET("/orders/:id", adminControllers.GetOrder(db))
		admin.PUT("/orders/:id/status", adminControllers.SetOrderStatus(db))

		admin.GET("/addresses", adminControllers.ListAllAddresses(db))
		admin.POST("/addresses", adminControllers.AddAddressForUser(db))
		admin.GET("/addresses/user/:userId", adminControllers.GetAddressesByUser(db))
		admin.GET("/addresses/:id", adminControllers.GetAddressByID(db))
		admin.PUT("/addresses/:id", adminControllers.UpdateAddress(db))
		admin.DELETE("/addresses/:id", adminControllers.RemoveAddress(db))

		// Admin lifecycle is restricted to super admins.
		super := admin.Group("", middleware.ValidateSuperAdminToken(db))
		{
			super.POST("/register", adminControllers.Register(db))
			super.GET("/admins", adminControllers.List(db))
			super.GET("/admins/:id", adminControllers.Get(db))
			super.PUT("/admins/:id", adminControllers.Update(db))
			super.DELETE("/admins/:id", adminControllers.Remove(db))
			super.PUT("/admins/:id/status", adminControllers.SetStatus(db))
		}
	}
}
