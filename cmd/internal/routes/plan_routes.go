package routes

import (
	"context"
	"net/http"
	"time"

	"instime/cmd/internal/service"
	"instime/cmd/internal/utils"
	"instime/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type PlanService interface {
	GetPlan(ctx context.Context, userID int) (*service.PlanResponse, apierror.ErrorResponse)
}

type DefaultPlanRoute struct {
	PlanService PlanService
}

func NewPlanDefault(planService PlanService) *DefaultPlanRoute {
	return &DefaultPlanRoute{PlanService: planService}
}

func (p *DefaultPlanRoute) GetPlan(c echo.Context) error {
	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
	}

	plan, apierr := p.PlanService.GetPlan(c.Request().Context(), data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, plan)
}

func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
