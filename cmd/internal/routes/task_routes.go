package routes

import (
	"context"
	"net/http"

	"instime/cmd/internal/service"
	"instime/cmd/internal/utils"
	"instime/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type TaskService interface {
	GetTasks(ctx context.Context, userID int, sort string) ([]*service.TaskResponse, apierror.ErrorResponse)
	GetTask(ctx context.Context, userID, id int) (*service.TaskResponse, apierror.ErrorResponse)
	CreateTask(ctx context.Context, userID int, req *service.TaskRequest) (*service.AssignmentResponse, apierror.ErrorResponse)
	UpdateTask(ctx context.Context, userID, id int, req *service.TaskRequest) (*service.AssignmentResponse, apierror.ErrorResponse)
	AssignFreetimes(ctx context.Context, userID, id int, req *service.AssignRequest) (*service.AssignmentResponse, apierror.ErrorResponse)
	DeleteTask(ctx context.Context, userID, id int) apierror.ErrorResponse
}

type DefaultTaskRoute struct {
	TaskService TaskService
}

func NewTaskDefault(taskService TaskService) *DefaultTaskRoute {
	return &DefaultTaskRoute{TaskService: taskService}
}

func (t *DefaultTaskRoute) GetTasks(c echo.Context) error {
	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
	}

	tasks, apierr := t.TaskService.GetTasks(c.Request().Context(), data.UserID, c.QueryParam("sort"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"tasks": tasks}
	return c.JSON(http.StatusOK, &resp)
}

func (t *DefaultTaskRoute) GetTask(c echo.Context) error {
	id, apierr := parseIDParam(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
	}

	task, apierr := t.TaskService.GetTask(c.Request().Context(), data.UserID, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, task)
}

func (t *DefaultTaskRoute) CreateTask(c echo.Context) error {
	var req service.TaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
	}

	resp, apierr := t.TaskService.CreateTask(c.Request().Context(), data.UserID, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, resp)
}

func (t *DefaultTaskRoute) UpdateTask(c echo.Context) error {
	id, apierr := parseIDParam(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req service.TaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
	}

	resp, apierr := t.TaskService.UpdateTask(c.Request().Context(), data.UserID, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (t *DefaultTaskRoute) AssignFreetimes(c echo.Context) error {
	id, apierr := parseIDParam(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req service.AssignRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
	}

	resp, apierr := t.TaskService.AssignFreetimes(c.Request().Context(), data.UserID, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (t *DefaultTaskRoute) DeleteTask(c echo.Context) error {
	id, apierr := parseIDParam(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
	}

	if apierr := t.TaskService.DeleteTask(c.Request().Context(), data.UserID, id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}
