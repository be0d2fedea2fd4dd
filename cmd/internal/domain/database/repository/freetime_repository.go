package repository

import (
	"context"
	"errors"
	"fmt"

	"instime/cmd/internal/domain/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultFreetimeRepository struct {
	db *gorm.DB
}

func NewFreetimeRepository(db *gorm.DB) *DefaultFreetimeRepository {
	return &DefaultFreetimeRepository{db: db}
}

func (f *DefaultFreetimeRepository) FindByID(ctx context.Context, id int) (*entity.Freetime, error) {
	var freetime entity.Freetime
	err := conn(ctx, f.db).First(&freetime, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &freetime, err
}

// FindByIDs returns the freetimes that exist among ids, whoever owns them.
// Missing ids are simply absent from the result. On Postgres the rows are
// share-locked so they cannot be deleted before the surrounding
// transaction commits.
func (f *DefaultFreetimeRepository) FindByIDs(ctx context.Context, ids []int) ([]*entity.Freetime, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := conn(ctx, f.db).Where("id IN ?", ids)
	if query.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: clause.LockingStrengthShare})
	}

	var freetimes []*entity.Freetime
	err := query.Find(&freetimes).Error
	return freetimes, err
}

func (f *DefaultFreetimeRepository) FindByUserID(ctx context.Context, userID int) ([]*entity.Freetime, error) {
	var freetimes []*entity.Freetime
	err := conn(ctx, f.db).
		Where("user_id = ?", userID).
		Order("start_time asc, end_time asc, id asc").
		Find(&freetimes).Error
	return freetimes, err
}

func (f *DefaultFreetimeRepository) Save(ctx context.Context, freetime *entity.Freetime) error {
	return conn(ctx, f.db).Save(freetime).Error
}

// Delete removes the freetime and the blocks pointing at it.
func (f *DefaultFreetimeRepository) Delete(ctx context.Context, freetime *entity.Freetime) error {
	return conn(ctx, f.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("freetime_id = ?", freetime.ID).Delete(&entity.Block{}).Error; err != nil {
			return fmt.Errorf("delete freetime blocks: %w", err)
		}
		if err := tx.Delete(freetime).Error; err != nil {
			return fmt.Errorf("delete freetime: %w", err)
		}
		return nil
	})
}
