package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"instime/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

// statusRank orders statuses by their lifecycle instead of alphabetically.
const statusRank = "CASE status WHEN 'pending' THEN 0 WHEN 'partial' THEN 1 WHEN 'done' THEN 2 ELSE 3 END"

type DefaultTaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *DefaultTaskRepository {
	return &DefaultTaskRepository{db: db}
}

// FindByID loads the task with its linked freetimes.
func (t *DefaultTaskRepository) FindByID(ctx context.Context, id int) (*entity.Task, error) {
	var task entity.Task
	err := conn(ctx, t.db).
		Preload("Freetimes", func(db *gorm.DB) *gorm.DB {
			return db.Order("freetimes.start_time asc, freetimes.end_time asc, freetimes.id asc")
		}).
		First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &task, err
}

// FindByUserID returns every task of the user, with linked freetimes, in
// the given order. The ordering runs in the database; the result is always
// fully materialized.
func (t *DefaultTaskRepository) FindByUserID(ctx context.Context, userID int, sort entity.TaskSort) ([]*entity.Task, error) {
	query := conn(ctx, t.db).
		Preload("Freetimes", func(db *gorm.DB) *gorm.DB {
			return db.Order("freetimes.start_time asc, freetimes.end_time asc, freetimes.id asc")
		}).
		Where("user_id = ?", userID)
	for _, clause := range orderClauses(sort) {
		query = query.Order(clause)
	}

	var tasks []*entity.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func orderClauses(sort entity.TaskSort) []string {
	switch sort {
	case entity.SortStatus:
		return []string{statusRank + " asc", "priority desc", "id asc"}
	case entity.SortPriority:
		return []string{"priority desc", "time_estimate desc nulls last", "id asc"}
	default:
		return []string{"time_estimate desc nulls last", "priority desc", "id asc"}
	}
}

// Save creates or updates the task row only; links are managed by ReplaceFreetimes.
func (t *DefaultTaskRepository) Save(ctx context.Context, task *entity.Task) error {
	return conn(ctx, t.db).Omit("Freetimes").Save(task).Error
}

// ReplaceFreetimes makes freetimes the exact link set of task, dropping any
// previous link, inside one transaction.
func (t *DefaultTaskRepository) ReplaceFreetimes(ctx context.Context, task *entity.Task, freetimes []*entity.Freetime) error {
	err := conn(ctx, t.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", task.ID).Delete(&entity.Block{}).Error; err != nil {
			return fmt.Errorf("clear blocks: %w", err)
		}
		if len(freetimes) == 0 {
			return nil
		}

		blocks := make([]*entity.Block, len(freetimes))
		for i, f := range freetimes {
			blocks[i] = &entity.Block{TaskID: task.ID, FreetimeID: f.ID}
		}
		if err := tx.Create(&blocks).Error; err != nil {
			return fmt.Errorf("create blocks: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	task.Freetimes = make([]entity.Freetime, len(freetimes))
	for i, f := range freetimes {
		task.Freetimes[i] = *f
	}
	sortFreetimes(task.Freetimes)
	return nil
}

// sortFreetimes applies the order the preloads use: start, end, then id.
func sortFreetimes(freetimes []entity.Freetime) {
	sort.SliceStable(freetimes, func(i, j int) bool {
		a, b := freetimes[i], freetimes[j]
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.Before(b.StartTime)
		}
		if !a.EndTime.Equal(b.EndTime) {
			return a.EndTime.Before(b.EndTime)
		}
		return a.ID < b.ID
	})
}

// Delete removes the task and its blocks.
func (t *DefaultTaskRepository) Delete(ctx context.Context, task *entity.Task) error {
	return conn(ctx, t.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", task.ID).Delete(&entity.Block{}).Error; err != nil {
			return fmt.Errorf("delete task blocks: %w", err)
		}
		if err := tx.Delete(task).Error; err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		return nil
	})
}
