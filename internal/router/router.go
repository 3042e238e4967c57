package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"checkwise/internal/config"
	"checkwise/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	checkHandler *handler.CheckHandler,
	billingHandler *handler.BillingHandler,
	seedHandler *handler.SeedHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/billing/plans", billingHandler.ListPlans)
	api.GET("/seed/users", seedHandler.SeedUsers)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	secured.GET("/auth/user", userHandler.GetCurrentUser)

	// Check routes
	secured.POST("/checks", checkHandler.CreateCheck)
	secured.GET("/checks/recent", checkHandler.GetRecentChecks)
	secured.GET("/checks", checkHandler.ListChecks)
	secured.GET("/checks/:id", checkHandler.GetCheck)

	// Billing routes
	secured.POST("/billing/plan", billingHandler.ApplyPlan)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
