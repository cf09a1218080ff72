package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	apperrors "coinvault/internal/errors"
	"coinvault/internal/handler"
	"coinvault/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	leaderboardHandler *handler.LeaderboardHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	// Public routes
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	// Secured routes: the bearer token is verified and resolved to a live
	// user, so a token for a deleted user is rejected here.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		ContextKey: handler.ContextUserKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return authService.ResolveToken(c.Request().Context(), auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			httpErr := apperrors.MapErrorToHTTP(apperrors.ErrInvalidToken)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	}))

	secured.GET("/profile", profileHandler.GetProfile)
	secured.POST("/sync", profileHandler.Sync)
	secured.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
