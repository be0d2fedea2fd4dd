package repository

import (
	"context"
	"errors"
	"fmt"

	"instime/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *DefaultUserRepository {
	return &DefaultUserRepository{db: db}
}

func (u *DefaultUserRepository) FindByID(ctx context.Context, id int) (*entity.User, error) {
	var user entity.User
	err := conn(ctx, u.db).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (u *DefaultUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := conn(ctx, u.db).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (u *DefaultUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := conn(ctx, u.db).Model(&entity.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (u *DefaultUserRepository) Save(ctx context.Context, user *entity.User) error {
	err := conn(ctx, u.db).Omit("Tasks", "Freetimes").Save(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return entity.ErrEmailTaken
	}
	return err
}

// Delete removes the user together with its tasks, freetimes and every
// block that references them.
func (u *DefaultUserRepository) Delete(ctx context.Context, user *entity.User) error {
	return conn(ctx, u.db).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("task_id IN (SELECT id FROM tasks WHERE user_id = ?)", user.ID).
			Or("freetime_id IN (SELECT id FROM freetimes WHERE user_id = ?)", user.ID).
			Delete(&entity.Block{}).Error
		if err != nil {
			return fmt.Errorf("delete user blocks: %w", err)
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&entity.Task{}).Error; err != nil {
			return fmt.Errorf("delete user tasks: %w", err)
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&entity.Freetime{}).Error; err != nil {
			return fmt.Errorf("delete user freetimes: %w", err)
		}

		if err := tx.Delete(user).Error; err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}
