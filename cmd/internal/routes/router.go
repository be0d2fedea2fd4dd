package routes

import (
	"net/http"
	"strconv"
	"strings"

	"instime/cmd/internal/utils"
	"instime/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type TokenParser interface {
	Parse(raw string) (*utils.TokenData, error)
}

type Handlers struct {
	Users     *DefaultUserRoute
	Tasks     *DefaultTaskRoute
	Freetimes *DefaultFreetimeRoute
	Plans     *DefaultPlanRoute
}

// Mount registers every API route on e. Routes other than health,
// registration and login require a bearer token.
func Mount(e *echo.Echo, h *Handlers, tokens TokenParser) {
	api := e.Group("/api")
	api.GET("/health", HealthCheck)

	// Users
	api.POST("/users", h.Users.CreateUser)
	api.POST("/users/login", h.Users.CreateLogin)

	auth := api.Group("", RequireToken(tokens))
	auth.GET("/users/@me", h.Users.GetMe)
	auth.DELETE("/users/@me", h.Users.DeleteMe)

	// Freetimes
	auth.GET("/times", h.Freetimes.GetFreetimes)
	auth.POST("/times", h.Freetimes.CreateFreetime)
	auth.GET("/times/:id", h.Freetimes.GetFreetime)
	auth.PUT("/times/:id", h.Freetimes.UpdateFreetime)
	auth.DELETE("/times/:id", h.Freetimes.DeleteFreetime)

	// Tasks
	auth.GET("/tasks", h.Tasks.GetTasks)
	auth.POST("/tasks", h.Tasks.CreateTask)
	auth.GET("/tasks/:id", h.Tasks.GetTask)
	auth.PUT("/tasks/:id", h.Tasks.UpdateTask)
	auth.DELETE("/tasks/:id", h.Tasks.DeleteTask)
	auth.PUT("/tasks/:id/freetimes", h.Tasks.AssignFreetimes)

	// Plan
	auth.GET("/plan", h.Plans.GetPlan)
}

// RequireToken rejects requests without a valid bearer token and stores
// the token data for utils.ParseTokenDataCtx.
func RequireToken(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			data, err := tokens.Parse(strings.TrimSpace(raw))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			c.Set(utils.TokenDataKey, data)
			return next(c)
		}
	}
}

func parseIDParam(c echo.Context) (int, apierror.ErrorResponse) {
	raw := strings.TrimSpace(c.Param("id"))
	if raw == "" {
		return 0, apierror.NewMissingParamError("id")
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierror.NewInvalidParamTypeError("id", "int")
	}
	return id, nil
}
