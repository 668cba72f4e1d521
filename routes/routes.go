package routes

import (
	"travel-portal/constants"
	"travel-portal/controllers/assistance"
	"travel-portal/controllers/auth"
	"travel-portal/controllers/booking"
	"travel-portal/controllers/confirmation"
	"travel-portal/controllers/dashboard"
	"travel-portal/controllers/funnel"
	"travel-portal/controllers/insurance"
	"travel-portal/controllers/packages"
	"travel-portal/controllers/review"
	"travel-portal/controllers/server"
	"travel-portal/controllers/user"
	"travel-portal/httpServices/gateway"
	"travel-portal/middleware"
	"travel-portal/services/assistant"
	dashboardService "travel-portal/services/dashboard"
	funnelService "travel-portal/services/funnel"
	insuranceService "travel-portal/services/insurance"
	"travel-portal/services/wishlist"

	"github.com/gofiber/fiber/v2"
)

// Dependencies are the long-lived components the handlers are built from.
type Dependencies struct {
	Gateway      *gateway.Client
	Verifier     middleware.TokenResolver
	Funnel       *funnelService.Service
	Drafts       *funnelService.Drafts
	Plans        *insuranceService.Catalog
	Wishlist     *wishlist.Store
	Refresher    *dashboardService.Refresher // nil when no service token is configured
	Assistant    *assistant.Assistant
	AuthLimiter  *middleware.RateLimiter
	SecureCookie bool
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	authController := auth.NewAuthController(deps.Gateway, deps.SecureCookie)
	packageController := packages.NewPackageController(deps.Gateway, deps.Wishlist)
	funnelController := funnel.NewFunnelController(deps.Funnel, deps.Drafts)
	insuranceController := insurance.NewInsuranceController(deps.Plans, deps.Gateway)
	confirmationController := confirmation.NewConfirmationController(deps.Gateway)
	bookingController := booking.NewBookingController(deps.Gateway)
	reviewController := review.NewReviewController(deps.Gateway, deps.Assistant)
	userController := user.NewUserController(deps.Gateway)

	// A nil Refresher is safe to call and never reports a fresh snapshot
	assistanceController := assistance.NewAssistanceController(deps.Gateway, deps.Refresher)
	dashboardController := dashboard.NewDashboardController(deps.Gateway, deps.Wishlist, deps.Refresher)

	requireAuth := middleware.IsAuthenticated(deps.Verifier)
	staffOnly := middleware.RequireRoles(constants.StaffRoles...)
	adminOnly := middleware.RequireRoles(constants.RoleAdmin)

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Get("/health", server.Health)
	api.Post("/login", deps.AuthLimiter.Handler(), authController.Login)
	api.Post("/register", deps.AuthLimiter.Handler(), authController.Register)

	api.Get("/packages", packageController.List)
	api.Get("/packages/search", packageController.Search)
	api.Get("/packages/:id", packageController.Show)
	api.Get("/reviews", reviewController.List)

	/*=============================================================================
	| Protected Routes
	===============================================================================*/
	authGroup := api.Group("/auth", requireAuth)
	authGroup.Get("/profile", authController.Profile)
	authGroup.Put("/profile", authController.UpdateProfile)
	authGroup.Post("/logout", authController.LogOut)
	authGroup.Get("/wishlist", packageController.Wishlist)
	authGroup.Post("/wishlist/:packageId", packageController.AddToWishlist)
	authGroup.Delete("/wishlist/:packageId", packageController.RemoveFromWishlist)

	/*=============================================================================
	| Booking Funnel Routes
	===============================================================================*/
	funnelGroup := api.Group("/funnel", requireAuth)
	funnelGroup.Post("/booking", funnelController.CreateBooking)
	funnelGroup.Get("/draft", funnelController.GetDraft)
	funnelGroup.Put("/draft", funnelController.SaveDraft)
	funnelGroup.Delete("/draft", funnelController.DeleteDraft)
	funnelGroup.Get("/:sessionId", funnelController.Session)
	funnelGroup.Get("/:sessionId/history", funnelController.History)
	funnelGroup.Post("/:sessionId/insurance", funnelController.SelectInsurance)
	funnelGroup.Post("/:sessionId/insurance/skip", funnelController.SkipInsurance)
	funnelGroup.Post("/:sessionId/payment/order", funnelController.CreateOrder)
	funnelGroup.Post("/:sessionId/payment/verify", funnelController.VerifyPayment)

	insuranceGroup := api.Group("/insurance", requireAuth)
	insuranceGroup.Get("/plans", insuranceController.Plans)
	insuranceGroup.Get("/selections", insuranceController.Selections)

	/*=============================================================================
	| Booking Routes
	===============================================================================*/
	bookingGroup := api.Group("/bookings", requireAuth)
	bookingGroup.Get("/mine", bookingController.Mine)
	bookingGroup.Put("/:id/cancel", bookingController.Cancel)
	bookingGroup.Get("/:id/confirmation", confirmationController.Show)
	bookingGroup.Get("/:id/receipt", confirmationController.Receipt)
	bookingGroup.Post("/:id/receipt/email", confirmationController.EmailReceipt)

	/*=============================================================================
	| Assistance and Review Routes
	===============================================================================*/
	assistanceGroup := api.Group("/assistance", requireAuth)
	assistanceGroup.Post("/", assistanceController.Create)
	assistanceGroup.Get("/mine", assistanceController.Mine)
	assistanceGroup.Get("/:id", assistanceController.Show)

	api.Post("/reviews", requireAuth, reviewController.Create)

	/*=============================================================================
	| Dashboard Routes
	===============================================================================*/
	dashboardGroup := api.Group("/dashboard", requireAuth)
	dashboardGroup.Get("/user", dashboardController.User)
	dashboardGroup.Get("/admin", adminOnly, dashboardController.Admin)
	dashboardGroup.Get("/agent", staffOnly, dashboardController.Agent)

	/*=============================================================================
	| Admin Routes
	===============================================================================*/
	adminGroup := api.Group("/admin", requireAuth)
	adminGroup.Get("/users", adminOnly, userController.List)
	adminGroup.Get("/users/:id", adminOnly, userController.Show)
	adminGroup.Post("/users", adminOnly, userController.Create)
	adminGroup.Put("/users/:id", adminOnly, userController.Update)
	adminGroup.Delete("/users/:id", adminOnly, userController.Delete)
	adminGroup.Get("/bookings", adminOnly, bookingController.Table)

	// Travel agents work the assistance queue too
	adminGroup.Get("/assistance", staffOnly, assistanceController.Queue)
	adminGroup.Put("/assistance/:id/resolve", staffOnly, assistanceController.Resolve)
	adminGroup.Put("/assistance/:id/status", staffOnly, assistanceController.UpdateStatus)

	/*=============================================================================
	| Travel Agent Routes
	===============================================================================*/
	agentGroup := api.Group("/agent", requireAuth, staffOnly)
	agentGroup.Get("/packages", packageController.AgentList)
	agentGroup.Post("/packages", packageController.Create)
	agentGroup.Put("/packages/:id", packageController.Update)
	agentGroup.Delete("/packages/:id", packageController.Delete)
	agentGroup.Patch("/packages/:id/status", packageController.UpdateStatus)
	agentGroup.Post("/packages/:id/image", packageController.UploadImage)
	agentGroup.Get("/bookings", bookingController.Table)
	agentGroup.Patch("/bookings/:id/status", bookingController.UpdateStatus)
	agentGroup.Get("/reviews", reviewController.AgentList)
	agentGroup.Put("/reviews/:id/respond", reviewController.Respond)
	agentGroup.Post("/reviews/:id/draft", reviewController.Draft)
}
