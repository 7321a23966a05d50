package router

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"taskpad/internal/apperror"
	"taskpad/internal/auth"
	"taskpad/internal/config"
	"taskpad/internal/handler"
)

var errMissingToken = errors.New("missing bearer token")

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	taskHandler *handler.TaskHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = errorHandler

	if cfg.SwaggerEnable {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	api := e.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	jwtMiddleware := echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			// subtypes are logged distinctly but all surface as 401
			reason := tokenFailure(err)
			c.Logger().Warnf("auth: rejected request %s %s: %v",
				c.Request().Method, c.Request().URL.Path, reason)
			return apperror.NewAuthentication("not authorized", reason)
		},
	})

	api.GET("/auth/me", authHandler.Me, jwtMiddleware)

	tasks := api.Group("/tasks", jwtMiddleware)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.GET("/status/:status", taskHandler.ListByStatus)
	tasks.GET("/date/:date", taskHandler.ListByDate)
	tasks.GET("/:id", taskHandler.GetByID)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)
}

// tokenFailure classifies why a bearer token was rejected.
func tokenFailure(err error) error {
	var tokenErr *echojwt.TokenError
	if errors.As(err, &tokenErr) {
		return auth.Classify(tokenErr.Err)
	}
	return errMissingToken
}

// errorHandler converts every handler failure into the uniform
// {"success":false,"message":...} body, logging the full error first. No
// internals reach the client.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "internal server error"

	var appErr *apperror.AppError
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		status = appErr.StatusCode()
		message = appErr.Message
	case errors.As(err, &httpErr):
		status = httpErr.Code
		if s, ok := httpErr.Message.(string); ok {
			message = s
		}
	}

	c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)

	if writeErr := c.JSON(status, handler.ErrorResponse{Success: false, Message: message}); writeErr != nil {
		c.Logger().Errorf("write error response: %v", writeErr)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
