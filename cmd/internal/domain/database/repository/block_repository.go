package repository

import (
	"context"

	"instime/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultBlockRepository struct {
	db *gorm.DB
}

func NewBlockRepository(db *gorm.DB) *DefaultBlockRepository {
	return &DefaultBlockRepository{db: db}
}

// FindByUserID returns the blocks whose task and freetime both belong to
// the user, ordered by the freetime's start and end time.
func (b *DefaultBlockRepository) FindByUserID(ctx context.Context, userID int) ([]*entity.Block, error) {
	var blocks []*entity.Block
	err := conn(ctx, b.db).
		Model(&entity.Block{}).
		Select("blocks.task_id, blocks.freetime_id").
		Joins("JOIN tasks ON tasks.id = blocks.task_id").
		Joins("JOIN freetimes ON freetimes.id = blocks.freetime_id").
		Joins("JOIN users ON users.id = tasks.user_id").
		Where("users.id = ? AND freetimes.user_id = ?", userID, userID).
		Order("freetimes.start_time asc, freetimes.end_time asc, blocks.task_id asc").
		Find(&blocks).Error
	return blocks, err
}
