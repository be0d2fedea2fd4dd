package service

import (
	"context"
	"time"

	"instime/cmd/internal/domain/entity"
	"instime/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

type BlockRepository interface {
	FindByUserID(ctx context.Context, userID int) ([]*entity.Block, error)
}

// PlanBlock is one task scheduled into one freetime.
type PlanBlock struct {
	Task     *entity.Task
	Freetime *entity.Freetime
}

// Plan reconciles a user's assignments with what is left on each side.
type Plan struct {
	Blocks        []PlanBlock
	OpenTasks     []*entity.Task
	OpenFreetimes []*entity.Freetime
}

type PlanBlockResponse struct {
	Task     *TaskResponse     `json:"task"`
	Freetime *FreetimeResponse `json:"freetime"`
}

type PlanResponse struct {
	Blocks        []*PlanBlockResponse `json:"blocks"`
	OpenTasks     []*TaskResponse      `json:"open_tasks"`
	OpenFreetimes []*FreetimeResponse  `json:"open_freetimes"`
}

type DefaultPlanService struct {
	TaskRepo     TaskRepository
	FreetimeRepo FreetimeRepository
	BlockRepo    BlockRepository
	Tx           Transactor
	Location     *time.Location
}

func NewPlanService(taskRepo TaskRepository, freetimeRepo FreetimeRepository, blockRepo BlockRepository, tx Transactor, loc *time.Location) *DefaultPlanService {
	return &DefaultPlanService{TaskRepo: taskRepo, FreetimeRepo: freetimeRepo, BlockRepo: blockRepo, Tx: tx, Location: loc}
}

// GetPlan reads tasks, freetimes and blocks in one transaction so the
// three lists describe the same state.
func (p *DefaultPlanService) GetPlan(ctx context.Context, userID int) (*PlanResponse, apierror.ErrorResponse) {
	var plan *Plan
	apierr := inTransaction(ctx, p.Tx, func(ctx context.Context) apierror.ErrorResponse {
		tasks, err := p.TaskRepo.FindByUserID(ctx, userID, entity.SortEstimate)
		if err != nil {
			log.Errorf("failed to find tasks for user %d: %v", userID, err)
			return apierror.InternalServerError
		}

		freetimes, err := p.FreetimeRepo.FindByUserID(ctx, userID)
		if err != nil {
			log.Errorf("failed to find freetimes for user %d: %v", userID, err)
			return apierror.InternalServerError
		}

		blocks, err := p.BlockRepo.FindByUserID(ctx, userID)
		if err != nil {
			log.Errorf("failed to find blocks for user %d: %v", userID, err)
			return apierror.InternalServerError
		}

		plan = Reconcile(tasks, freetimes, blocks)
		return nil
	})
	if apierr != nil {
		return nil, apierr
	}
	return p.toPlanResponse(plan), nil
}

// Reconcile pairs every block with its task and freetime, keeping the
// order of blocks, and collects the tasks and freetimes no block uses.
// Entities are matched by id. Blocks pointing outside the given sets are
// ignored.
func Reconcile(tasks []*entity.Task, freetimes []*entity.Freetime, blocks []*entity.Block) *Plan {
	taskByID := make(map[int]*entity.Task, len(tasks))
	for _, t := range tasks {
		taskByID[t.ID] = t
	}
	freetimeByID := make(map[int]*entity.Freetime, len(freetimes))
	for _, f := range freetimes {
		freetimeByID[f.ID] = f
	}

	plan := &Plan{
		Blocks:        []PlanBlock{},
		OpenTasks:     []*entity.Task{},
		OpenFreetimes: []*entity.Freetime{},
	}
	usedTasks := make(map[int]bool)
	usedFreetimes := make(map[int]bool)

	for _, b := range blocks {
		task, ok := taskByID[b.TaskID]
		if !ok {
			continue
		}
		freetime, ok := freetimeByID[b.FreetimeID]
		if !ok {
			continue
		}
		plan.Blocks = append(plan.Blocks, PlanBlock{Task: task, Freetime: freetime})
		usedTasks[task.ID] = true
		usedFreetimes[freetime.ID] = true
	}

	for _, t := range tasks {
		if !usedTasks[t.ID] {
			plan.OpenTasks = append(plan.OpenTasks, t)
		}
	}
	for _, f := range freetimes {
		if !usedFreetimes[f.ID] {
			plan.OpenFreetimes = append(plan.OpenFreetimes, f)
		}
	}
	return plan
}

func (p *DefaultPlanService) toPlanResponse(plan *Plan) *PlanResponse {
	resp := &PlanResponse{
		Blocks:        make([]*PlanBlockResponse, len(plan.Blocks)),
		OpenTasks:     make([]*TaskResponse, len(plan.OpenTasks)),
		OpenFreetimes: make([]*FreetimeResponse, len(plan.OpenFreetimes)),
	}
	for i, b := range plan.Blocks {
		resp.Blocks[i] = &PlanBlockResponse{
			Task:     toTaskResponse(b.Task, p.Location),
			Freetime: toFreetimeResponse(b.Freetime, p.Location),
		}
	}
	for i, t := range plan.OpenTasks {
		resp.OpenTasks[i] = toTaskResponse(t, p.Location)
	}
	for i, f := range plan.OpenFreetimes {
		resp.OpenFreetimes[i] = toFreetimeResponse(f, p.Location)
	}
	return resp
}
