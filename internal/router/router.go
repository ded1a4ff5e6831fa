// Package router assembles the HTTP application: middleware, dependency
// wiring and the route table.
package router

import (
	"errors"
	"time"

	"it-inventory/internal/config"
	"it-inventory/internal/event"
	"it-inventory/internal/handler"
	"it-inventory/internal/middleware"
	"it-inventory/internal/model"
	"it-inventory/internal/repository"
	"it-inventory/internal/service"
	"it-inventory/internal/ws"
	"it-inventory/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Deps struct {
	Config *config.Config
	Logger *logrus.Logger
	DB     *gorm.DB
	Tokens *jwt.Manager
	Events event.Publisher
	// Hub is optional; without it /ws is not served.
	Hub *ws.Hub
	// Now is the dashboard and health clock; nil means time.Now.
	Now func() time.Time
	// Location reads movement dates sent without a zone; nil means UTC.
	Location *time.Location
}

func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      d.Config.AppName,
		ErrorHandler: errorHandler,
	})

	app.Use(logger.New(logger.Config{Output: d.Logger.WriterLevel(logrus.InfoLevel)}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: d.Config.CORSOrigins}))

	Setup(app, d)
	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

// Setup wires repositories, services and handlers and registers every route.
func Setup(app *fiber.App, d Deps) {
	l := d.Logger
	events := d.Events
	if events == nil {
		events = event.Nop()
	}

	// Repositories
	userRepo := repository.NewUserRepo(d.DB)
	privilegeRepo := repository.NewPrivilegeRepo(d.DB)
	roleRepo := repository.NewRoleRepo(d.DB)
	locationRepo := repository.NewLocationRepo(d.DB)
	categoryRepo := repository.NewCategoryRepo(d.DB)
	assetRepo := repository.NewAssetRepo(d.DB)
	movementRepo := repository.NewMovementRepo(d.DB)
	dashRepo := repository.NewDashboardRepo(d.DB)

	// Services
	authService := service.NewAuthService(l, userRepo, d.Tokens)
	userService := service.NewUserService(l, userRepo, privilegeRepo, roleRepo, locationRepo)
	assetService := service.NewAssetService(l, assetRepo, categoryRepo, events)
	movementService := service.NewMovementService(l, movementRepo, assetRepo, events, d.Location)
	categoryService := service.NewCategoryService(l, categoryRepo)
	locationService := service.NewLocationService(l, locationRepo)
	dashService := service.NewDashboardService(dashRepo, locationRepo, d.Now, d.Location)

	// Handlers
	authHandler := handler.NewAuthHandler(l, authService)
	userHandler := handler.NewUserHandler(l, userService)
	roleHandler := handler.NewRoleHandler(l, roleRepo, privilegeRepo)
	assetHandler := handler.NewAssetHandler(l, assetService)
	movementHandler := handler.NewMovementHandler(l, movementService)
	categoryHandler := handler.NewCategoryHandler(l, categoryService)
	locationHandler := handler.NewLocationHandler(l, locationService)
	dashHandler := handler.NewDashboardHandler(l, dashService)

	app.Get("/health-check", handler.HealthCheck(d.Now))

	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(authService))
	priv := middleware.RequirePrivilege

	protected.Get("/dashboard", priv(model.PrivDashboardView), dashHandler.GetDashboard)

	protected.Get("/assets", priv(model.PrivAssetView), assetHandler.GetAssets)
	protected.Get("/assets/options", middleware.RequireAnyPrivilege(model.PrivAssetView, model.PrivMovementCreate), assetHandler.GetOptions)
	protected.Get("/assets/:id", priv(model.PrivAssetView), assetHandler.GetAsset)
	protected.Post("/assets", priv(model.PrivAssetCreate), assetHandler.CreateAsset)
	protected.Put("/assets/:id", priv(model.PrivAssetUpdate), assetHandler.UpdateAsset)
	protected.Delete("/assets/:id", priv(model.PrivAssetDelete), assetHandler.DeleteAsset)

	protected.Get("/movements", priv(model.PrivMovementView), movementHandler.GetMovements)
	protected.Get("/movements/:id", priv(model.PrivMovementView), movementHandler.GetMovement)
	protected.Post("/movements", priv(model.PrivMovementCreate), movementHandler.RecordMovement)
	protected.Put("/movements/:id", priv(model.PrivMovementUpdate), movementHandler.UpdateMovement)
	protected.Delete("/movements/:id", priv(model.PrivMovementDelete), movementHandler.DeleteMovement)

	protected.Get("/categories", priv(model.PrivCategoryView), categoryHandler.GetCategories)
	protected.Get("/categories/:id", priv(model.PrivCategoryView), categoryHandler.GetCategory)
	protected.Post("/categories", priv(model.PrivCategoryManage), categoryHandler.CreateCategory)
	protected.Put("/categories/:id", priv(model.PrivCategoryManage), categoryHandler.UpdateCategory)
	protected.Delete("/categories/:id", priv(model.PrivCategoryManage), categoryHandler.DeleteCategory)

	protected.Get("/locations", priv(model.PrivLocationView), locationHandler.GetLocations)
	protected.Get("/locations/:id", priv(model.PrivLocationView), locationHandler.GetLocation)
	protected.Post("/locations", priv(model.PrivLocationManage), locationHandler.CreateLocation)
	protected.Put("/locations/:id", priv(model.PrivLocationManage), locationHandler.UpdateLocation)
	protected.Delete("/locations/:id", priv(model.PrivLocationManage), locationHandler.DeleteLocation)

	protected.Get("/users", priv(model.PrivUserView), userHandler.GetUsers)
	protected.Get("/users/:id", priv(model.PrivUserView), userHandler.GetUser)
	protected.Post("/users", priv(model.PrivUserCreate), userHandler.CreateUser)
	protected.Put("/users/:id", priv(model.PrivUserUpdate), userHandler.UpdateUser)
	protected.Delete("/users/:id", priv(model.PrivUserDelete), userHandler.DeleteUser)
	protected.Put("/users/:id/privileges", priv(model.PrivUserPrivilege), userHandler.UpdateUserPrivileges)

	protected.Get("/roles", roleHandler.GetRoles)
	protected.Get("/privileges", roleHandler.GetPrivileges)

	// Clients only receive events for locations their viewer can see
	if d.Hub != nil {
		app.Use("/ws", middleware.RequireSocketAuth(authService), func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return c.SendStatus(fiber.StatusUpgradeRequired)
		})
		app.Get("/ws", websocket.New(func(c *websocket.Conn) {
			d.Hub.Serve(c, middleware.SocketViewer(c))
		}))
	}
}
