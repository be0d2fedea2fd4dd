package service

import (
	"context"
	"time"

	"instime/cmd/internal/domain/entity"
	"instime/cmd/internal/utils"
	"instime/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type TaskRepository interface {
	FindByID(ctx context.Context, id int) (*entity.Task, error)
	FindByUserID(ctx context.Context, userID int, sort entity.TaskSort) ([]*entity.Task, error)
	Save(ctx context.Context, task *entity.Task) error
	ReplaceFreetimes(ctx context.Context, task *entity.Task, freetimes []*entity.Freetime) error
	Delete(ctx context.Context, task *entity.Task) error
}

// TaskRequest is used for both creating and editing a task. A nil
// FreetimeIDs leaves the links untouched; any non-nil slice, even an empty
// one, becomes the task's complete set of freetimes.
type TaskRequest struct {
	Title        string `json:"title" validate:"required,max=30"`
	Description  string `json:"description" validate:"required,max=250"`
	Status       string `json:"status" validate:"omitempty,taskstatus"`
	TimeEstimate *int   `json:"time_estimate" validate:"omitempty,min=0"`
	Priority     int    `json:"priority" validate:"min=0,max=9"`
	FreetimeIDs  []int  `json:"freetime_ids"`
}

type AssignRequest struct {
	FreetimeIDs []int `json:"freetime_ids"`
}

type TaskResponse struct {
	ID             int                 `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Status         string              `json:"status"`
	TimeEstimate   *int                `json:"time_estimate"`
	PrettyEstimate *string             `json:"pretty_estimate"`
	Priority       int                 `json:"priority"`
	UserID         int                 `json:"user_id"`
	Freetimes      []*FreetimeResponse `json:"freetimes"`
}

// AssignmentResponse is the task after a link update plus one issue per
// freetime id that could not be linked.
type AssignmentResponse struct {
	Task   *TaskResponse      `json:"task"`
	Issues []*AssignmentIssue `json:"issues"`
}

type DefaultTaskService struct {
	TaskRepo     TaskRepository
	FreetimeRepo FreetimeRepository
	Tx           Transactor
	Validate     *validator.Validate
	Location     *time.Location
}

func NewTaskService(taskRepo TaskRepository, freetimeRepo FreetimeRepository, tx Transactor, validate *validator.Validate, loc *time.Location) *DefaultTaskService {
	return &DefaultTaskService{TaskRepo: taskRepo, FreetimeRepo: freetimeRepo, Tx: tx, Validate: validate, Location: loc}
}

// GetTasks lists the user's tasks ordered by sort ("status", "priority" or
// anything else for the time estimate ordering).
func (t *DefaultTaskService) GetTasks(ctx context.Context, userID int, sort string) ([]*TaskResponse, apierror.ErrorResponse) {
	tasks, err := t.TaskRepo.FindByUserID(ctx, userID, entity.ParseTaskSort(sort))
	if err != nil {
		log.Errorf("failed to find tasks for user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*TaskResponse, len(tasks))
	for i, task := range tasks {
		resp[i] = toTaskResponse(task, t.Location)
	}
	return resp, nil
}

func (t *DefaultTaskService) GetTask(ctx context.Context, userID, id int) (*TaskResponse, apierror.ErrorResponse) {
	task, apierr := t.ownedTask(ctx, userID, id)
	if apierr != nil {
		return nil, apierr
	}
	return toTaskResponse(task, t.Location), nil
}

// CreateTask saves the task and, when FreetimeIDs is set, its links in one
// transaction: a failed assignment leaves no task behind.
func (t *DefaultTaskService) CreateTask(ctx context.Context, userID int, req *TaskRequest) (*AssignmentResponse, apierror.ErrorResponse) {
	if apierr := t.validate(req); apierr != nil {
		return nil, apierr
	}

	task := &entity.Task{UserID: userID}
	applyTaskRequest(task, req)

	var issues []*AssignmentIssue
	apierr := inTransaction(ctx, t.Tx, func(ctx context.Context) apierror.ErrorResponse {
		if err := t.TaskRepo.Save(ctx, task); err != nil {
			log.Errorf("failed to save task for user %d: %v", userID, err)
			return apierror.InternalServerError
		}

		var apierr apierror.ErrorResponse
		issues, apierr = t.assign(ctx, task, req.FreetimeIDs)
		return apierr
	})
	if apierr != nil {
		return nil, apierr
	}
	return &AssignmentResponse{Task: toTaskResponse(task, t.Location), Issues: issues}, nil
}

// UpdateTask edits the task fields and, when FreetimeIDs is set, its links
// in one transaction.
func (t *DefaultTaskService) UpdateTask(ctx context.Context, userID, id int, req *TaskRequest) (*AssignmentResponse, apierror.ErrorResponse) {
	if apierr := t.validate(req); apierr != nil {
		return nil, apierr
	}

	var task *entity.Task
	var issues []*AssignmentIssue
	apierr := inTransaction(ctx, t.Tx, func(ctx context.Context) apierror.ErrorResponse {
		var apierr apierror.ErrorResponse
		task, apierr = t.ownedTask(ctx, userID, id)
		if apierr != nil {
			return apierr
		}

		applyTaskRequest(task, req)
		if err := t.TaskRepo.Save(ctx, task); err != nil {
			log.Errorf("failed to update task %d: %v", id, err)
			return apierror.InternalServerError
		}

		issues, apierr = t.assign(ctx, task, req.FreetimeIDs)
		return apierr
	})
	if apierr != nil {
		return nil, apierr
	}
	return &AssignmentResponse{Task: toTaskResponse(task, t.Location), Issues: issues}, nil
}

// AssignFreetimes replaces the task's freetimes with the valid subset of
// req.FreetimeIDs. Unknown ids and ids of other users' freetimes are
// skipped and reported; they never fail the request.
func (t *DefaultTaskService) AssignFreetimes(ctx context.Context, userID, id int, req *AssignRequest) (*AssignmentResponse, apierror.ErrorResponse) {
	ids := req.FreetimeIDs
	if ids == nil {
		ids = []int{}
	}

	var task *entity.Task
	var issues []*AssignmentIssue
	apierr := inTransaction(ctx, t.Tx, func(ctx context.Context) apierror.ErrorResponse {
		var apierr apierror.ErrorResponse
		task, apierr = t.ownedTask(ctx, userID, id)
		if apierr != nil {
			return apierr
		}

		issues, apierr = t.assign(ctx, task, ids)
		return apierr
	})
	if apierr != nil {
		return nil, apierr
	}
	return &AssignmentResponse{Task: toTaskResponse(task, t.Location), Issues: issues}, nil
}

func (t *DefaultTaskService) DeleteTask(ctx context.Context, userID, id int) apierror.ErrorResponse {
	return inTransaction(ctx, t.Tx, func(ctx context.Context) apierror.ErrorResponse {
		task, apierr := t.ownedTask(ctx, userID, id)
		if apierr != nil {
			return apierr
		}

		if err := t.TaskRepo.Delete(ctx, task); err != nil {
			log.Errorf("failed to delete task %d: %v", id, err)
			return apierror.InternalServerError
		}
		return nil
	})
}

// assign runs the assignment engine when freetimeIDs is non-nil. A nil
// slice leaves the links alone and reports no issues.
func (t *DefaultTaskService) assign(ctx context.Context, task *entity.Task, freetimeIDs []int) ([]*AssignmentIssue, apierror.ErrorResponse) {
	if freetimeIDs == nil {
		return []*AssignmentIssue{}, nil
	}

	issues, err := Assign(ctx, t.TaskRepo, t.FreetimeRepo, task, freetimeIDs)
	if err != nil {
		log.Errorf("failed to assign freetimes to task %d: %v", task.ID, err)
		return nil, apierror.InternalServerError
	}
	return issues, nil
}

func (t *DefaultTaskService) validate(req *TaskRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := t.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}
	return nil
}

func (t *DefaultTaskService) ownedTask(ctx context.Context, userID, id int) (*entity.Task, apierror.ErrorResponse) {
	task, err := t.TaskRepo.FindByID(ctx, id)
	if err != nil {
		log.Errorf("failed to fetch task by id %d: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if task == nil {
		return nil, apierror.NotFoundError
	}

	if task.UserID != userID {
		return nil, apierror.NotOwnedError
	}
	return task, nil
}

// applyTaskRequest copies the editable fields of req onto task. An empty
// status keeps the current one, or pending for a new task.
func applyTaskRequest(task *entity.Task, req *TaskRequest) {
	task.Title = req.Title
	task.Description = req.Description
	task.TimeEstimate = req.TimeEstimate
	task.Priority = req.Priority

	switch {
	case req.Status != "":
		task.Status = entity.TaskStatus(req.Status)
	case task.Status == "":
		task.Status = entity.StatusPending
	}
}

func toTaskResponse(task *entity.Task, loc *time.Location) *TaskResponse {
	freetimes := make([]*FreetimeResponse, len(task.Freetimes))
	for i := range task.Freetimes {
		freetimes[i] = toFreetimeResponse(&task.Freetimes[i], loc)
	}

	return &TaskResponse{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		Status:         string(task.Status),
		TimeEstimate:   task.TimeEstimate,
		PrettyEstimate: utils.PrettyEstimate(task.TimeEstimate),
		Priority:       task.Priority,
		UserID:         task.UserID,
		Freetimes:      freetimes,
	}
}
