package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"instime/cmd/internal/domain/database"
	"instime/cmd/internal/domain/database/repository"
	"instime/cmd/internal/utils"
	"instime/cmd/internal/utils/validators"

	"github.com/go-playground/validator/v10"
)

type testEnv struct {
	users     *DefaultUserService
	tasks     *DefaultTaskService
	freetimes *DefaultFreetimeService
	plans     *DefaultPlanService

	taskRepo     *repository.DefaultTaskRepository
	freetimeRepo *repository.DefaultFreetimeRepository
	blockRepo    *repository.DefaultBlockRepository
	tx           *repository.Transactor
	validate     *validator.Validate
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Init(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	validate := validator.New()
	validators.Register(validate)

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	freetimeRepo := repository.NewFreetimeRepository(db)
	blockRepo := repository.NewBlockRepository(db)
	tx := repository.NewTransactor(db)

	freetimes := NewFreetimeService(freetimeRepo, tx, validate, time.UTC)
	freetimes.Now = func() time.Time { return time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC) }

	return &testEnv{
		users:        NewUserService(userRepo, validate, utils.NewTokenManager("test-secret", time.Hour)),
		tasks:        NewTaskService(taskRepo, freetimeRepo, tx, validate, time.UTC),
		freetimes:    freetimes,
		plans:        NewPlanService(taskRepo, freetimeRepo, blockRepo, tx, time.UTC),
		taskRepo:     taskRepo,
		freetimeRepo: freetimeRepo,
		blockRepo:    blockRepo,
		tx:           tx,
		validate:     validate,
	}
}

func (e *testEnv) register(t *testing.T, email string) int {
	t.Helper()
	resp, apierr := e.users.CreateUser(context.Background(), &CreateUserRequest{
		Name:     "tester",
		Email:    email,
		Password: "password1",
	})
	if apierr != nil {
		t.Fatalf("CreateUser() failed: %v", apierr)
	}
	return resp.User.ID
}

func (e *testEnv) freetime(t *testing.T, userID int, start string) int {
	t.Helper()
	startTime, err := time.Parse(time.RFC3339, start)
	if err != nil {
		t.Fatalf("bad start %q: %v", start, err)
	}
	resp, apierr := e.freetimes.CreateFreetime(context.Background(), userID, &FreetimeRequest{
		Start: start,
		End:   startTime.Add(time.Hour).Format(time.RFC3339),
	})
	if apierr != nil {
		t.Fatalf("CreateFreetime() failed: %v", apierr)
	}
	return resp.ID
}

func (e *testEnv) task(t *testing.T, userID int, req *TaskRequest) int {
	t.Helper()
	if req.Title == "" {
		req.Title = "task"
	}
	if req.Description == "" {
		req.Description = "description"
	}
	resp, apierr := e.tasks.CreateTask(context.Background(), userID, req)
	if apierr != nil {
		t.Fatalf("CreateTask() failed: %v", apierr)
	}
	return resp.Task.ID
}

func (e *testEnv) linkedIDs(t *testing.T, taskID int) []int {
	t.Helper()
	task, err := e.taskRepo.FindByID(context.Background(), taskID)
	if err != nil || task == nil {
		t.Fatalf("FindByID(%d) = %v, %v", taskID, task, err)
	}
	return task.FreetimeIDs()
}

func intPtr(n int) *int {
	return &n
}

func taskResponseIDs(tasks []*TaskResponse) []int {
	ids := make([]int, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}
	return ids
}

func freetimeResponseIDs(freetimes []*FreetimeResponse) []int {
	ids := make([]int, len(freetimes))
	for i, freetime := range freetimes {
		ids[i] = freetime.ID
	}
	return ids
}
