package routes

import (
	"context"
	"net/http"

	"instime/cmd/internal/service"
	"instime/cmd/internal/utils"
	"instime/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type FreetimeService interface {
	GetFreetimes(ctx context.Context, userID int) ([]*service.FreetimeResponse, apierror.ErrorResponse)
	GetFreetime(ctx context.Context, userID, id int) (*service.FreetimeResponse, apierror.ErrorResponse)
	CreateFreetime(ctx context.Context, userID int, req *service.FreetimeRequest) (*service.FreetimeResponse, apierror.ErrorResponse)
	UpdateFreetime(ctx context.Context, userID, id int, req *service.FreetimeRequest) (*service.FreetimeResponse, apierror.ErrorResponse)
	DeleteFreetime(ctx context.Context, userID, id int) apierror.ErrorResponse
}

type DefaultFreetimeRoute struct {
	FreetimeService FreetimeService
}

func NewFreetimeDefault(freetimeService FreetimeService) *DefaultFreetimeRoute {
	return &DefaultFreetimeRoute{FreetimeService: freetimeService}
}

func (f *DefaultFreetimeRoute) GetFreetimes(c echo.Context) error {
	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
	}

	freetimes, apierr := f.FreetimeService.GetFreetimes(c.Request().Context(), data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"freetimes": freetimes}
	return c.JSON(http.StatusOK, &resp)
}

func (f *DefaultFreetimeRoute) GetFreetime(c echo.Context) error {
	id, apierr := parseIDParam(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
	}

	freetime, apierr := f.FreetimeService.GetFreetime(c.Request().Context(), data.UserID, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, freetime)
}

func (f *DefaultFreetimeRoute) CreateFreetime(c echo.Context) error {
	var req service.FreetimeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
	}

	freetime, apierr := f.FreetimeService.CreateFreetime(c.Request().Context(), data.UserID, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, freetime)
}

func (f *DefaultFreetimeRoute) UpdateFreetime(c echo.Context) error {
	id, apierr := parseIDParam(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req service.FreetimeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
	}

	freetime, apierr := f.FreetimeService.UpdateFreetime(c.Request().Context(), data.UserID, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, freetime)
}

func (f *DefaultFreetimeRoute) DeleteFreetime(c echo.Context) error {
	id, apierr := parseIDParam(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
	}

	if apierr := f.FreetimeService.DeleteFreetime(c.Request().Context(), data.UserID, id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}
