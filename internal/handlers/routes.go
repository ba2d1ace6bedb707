package handlers

import (
	"time"

	"realtychance/internal/middleware"
	"realtychance/internal/models"
	"realtychance/internal/repositories"
	"realtychance/internal/services/auth"
	"realtychance/internal/services/favorite"
	"realtychance/internal/services/inquiry"
	"realtychance/internal/services/project"
	"realtychance/internal/services/property"
	"realtychance/internal/services/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

// Dependencies carries the constructed services into route setup so tests
// can swap in their own.
type Dependencies struct {
	AuthService     auth.Service
	UserService     user.Service
	PropertyService property.Service
	ProjectService  project.Service
	InquiryService  inquiry.Service
	FavoriteService favorite.Service
}

// BuildDependencies constructs the default service graph over db.
func BuildDependencies(db *gorm.DB) Dependencies {
	userRepo := repositories.NewUserRepository(db)
	propertyRepo := repositories.NewPropertyRepository(db)

	return Dependencies{
		AuthService:     auth.NewService(userRepo),
		UserService:     user.NewService(userRepo),
		PropertyService: property.NewService(db, propertyRepo),
		ProjectService:  project.NewService(db, repositories.NewProjectRepository(db)),
		InquiryService:  inquiry.NewService(repositories.NewInquiryRepository(db), propertyRepo),
		FavoriteService: favorite.NewService(repositories.NewFavoriteRepository(db), propertyRepo),
	}
}

// SetupRoutes wires the handlers onto the app. Static paths register before
// the parameterised retrieve routes so /properties/unverified is not
// swallowed by /properties/:id. Auth middleware is attached per route, never
// as group middleware: a group handler becomes a prefix-scoped Use that
// would also intercept the public retrieve routes registered after it.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	authHandler := NewAuthHandler(deps.AuthService)
	userHandler := NewUserHandler(deps.UserService)
	propertyHandler := NewPropertyHandler(deps.PropertyService)
	projectHandler := NewProjectHandler(deps.ProjectService)
	inquiryHandler := NewInquiryHandler(deps.InquiryService)
	favoriteHandler := NewFavoriteHandler(deps.FavoriteService)

	authMW := middleware.NewAuthMiddleware(deps.AuthService)

	setupPublicRoutes(app, authHandler, userHandler, propertyHandler, projectHandler, authMW)
	setupAuthenticatedRoutes(app, authMW, authHandler, userHandler, propertyHandler,
		projectHandler, inquiryHandler, favoriteHandler)
	setupAdminRoutes(app, authMW, propertyHandler, projectHandler)
	setupRetrieveRoutes(app, propertyHandler, projectHandler)
}

func setupPublicRoutes(app *fiber.App, authHandler *AuthHandler, userHandler *UserHandler,
	propertyHandler *PropertyHandler, projectHandler *ProjectHandler, authMW *middleware.AuthMiddleware) {

	app.Get("/health", HealthCheck)
	app.Get("/health/cache", CacheStats)
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("Welcome to the RealtyChance API!") })

	api := app.Group("/api")

	// Throttle account creation and login attempts.
	authLimiter := limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Minute,
	})

	api.Post("/register", authLimiter, userHandler.RegisterUser)
	api.Post("/register-owner", authLimiter, userHandler.RegisterOwner)
	api.Post("/register-seeker", authLimiter, userHandler.RegisterSeeker)
	api.Post("/auth/login", authLimiter, authHandler.LoginUser)
	api.Post("/auth/refresh", authHandler.RefreshToken)
	api.Post("/auth/send-verification", authLimiter, authHandler.SendVerification)
	api.Post("/auth/verify-phone", authLimiter, authHandler.VerifyPhone)

	// Browsing is open to anonymous visitors.
	api.Get("/properties", propertyHandler.ListProperties)
	api.Get("/properties/trending-locations", propertyHandler.TrendingLocations)

	// Project visibility depends on who is asking, so the list route runs
	// through optional auth.
	api.Get("/new-projects", authMW.OptionalHandler, projectHandler.ListProjects)
}

func setupAuthenticatedRoutes(app *fiber.App, authMW *middleware.AuthMiddleware,
	authHandler *AuthHandler, userHandler *UserHandler, propertyHandler *PropertyHandler,
	projectHandler *ProjectHandler, inquiryHandler *InquiryHandler, favoriteHandler *FavoriteHandler) {

	api := app.Group("/api")
	requireAuth := authMW.Handler

	// Account routes
	api.Post("/logout", requireAuth, authHandler.LogoutUser)
	api.Post("/change-password", requireAuth, authHandler.ChangePassword)
	api.Get("/me/role", requireAuth, userHandler.MyRole)

	// Property routes
	api.Get("/properties/my-listings", requireAuth, propertyHandler.MyListings)
	api.Post("/properties", requireAuth,
		middleware.HasPermission(models.PermissionPropertyCreate), propertyHandler.CreateProperty)
	api.Put("/properties/:id", requireAuth, propertyHandler.UpdateProperty)
	api.Patch("/properties/:id/soft-delete", requireAuth, propertyHandler.SoftDeleteProperty)
	api.Patch("/properties/:id", requireAuth, propertyHandler.PatchProperty)
	api.Delete("/properties/:id", requireAuth, propertyHandler.DeleteProperty)

	// Project routes
	api.Get("/new-projects/my-projects", requireAuth, projectHandler.MyProjects)
	api.Post("/new-projects", requireAuth,
		middleware.HasPermission(models.PermissionProjectCreate), projectHandler.CreateProject)
	api.Put("/new-projects/:id", requireAuth, projectHandler.UpdateProject)
	api.Patch("/new-projects/:id", requireAuth, projectHandler.PatchProject)
	api.Delete("/new-projects/:id", requireAuth, projectHandler.DeleteProject)

	// Inquiry routes
	api.Post("/inquiries", requireAuth,
		middleware.HasPermission(models.PermissionInquiryCreate), inquiryHandler.CreateInquiry)
	api.Get("/inquiries", requireAuth, inquiryHandler.ListInquiries)
	api.Get("/inquiries/:id", requireAuth, inquiryHandler.GetInquiry)

	// Favorite routes. The group middleware is safe here: its Use is scoped
	// to the /api/favorites prefix, which no public route shares.
	favorites := api.Group("/favorites", requireAuth,
		middleware.HasPermission(models.PermissionFavoriteWrite))
	favorites.Get("/", favoriteHandler.ListFavorites)
	favorites.Post("/:propertyID/add", favoriteHandler.AddFavorite)
	favorites.Delete("/:propertyID/remove", favoriteHandler.RemoveFavorite)
	favorites.Delete("/:id", favoriteHandler.RemoveFavoriteByID)
}

func setupAdminRoutes(app *fiber.App, authMW *middleware.AuthMiddleware,
	propertyHandler *PropertyHandler, projectHandler *ProjectHandler) {

	api := app.Group("/api")
	requireAuth := authMW.Handler

	api.Get("/properties/unverified", requireAuth, middleware.AdminOnly, propertyHandler.UnverifiedProperties)
	api.Get("/properties/deleted", requireAuth, middleware.StaffOnly, propertyHandler.DeletedProperties)
	api.Patch("/properties/:id/verify", requireAuth, middleware.AdminOnly, propertyHandler.VerifyProperty)

	api.Get("/new-projects/unapproved", requireAuth, middleware.AdminOnly, projectHandler.UnapprovedProjects)
	api.Patch("/new-projects/:id/approve", requireAuth, middleware.AdminOnly, projectHandler.ApproveProject)
}

// setupRetrieveRoutes registers the parameterised public reads last.
func setupRetrieveRoutes(app *fiber.App, propertyHandler *PropertyHandler,
	projectHandler *ProjectHandler) {

	api := app.Group("/api")
	api.Get("/properties/:id", propertyHandler.GetProperty)
	api.Get("/new-projects/:id", projectHandler.GetProject)
}
