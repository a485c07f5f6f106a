package repository

import (
	"context"

	"github.com/overflow-lab/backend/internal/entity"
	"github.com/overflow-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, data *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	UpdateByID(ctx context.Context, id string, data *entity.User) error
	IncreaseReputation(ctx context.Context, id string, delta int) error
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, data *entity.User) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Take(&record, "email=?", email).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Take(&record, "username=?", username).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

// UpdateByID only updates the non-empty identity fields of data.
func (r *userRepository) UpdateByID(ctx context.Context, id string, data *entity.User) error {
	updateMap := map[string]any{}
	if data.Username != "" {
		updateMap["username"] = data.Username
	}

	if data.Email != "" {
		updateMap["email"] = data.Email
	}

	if data.Password != "" {
		updateMap["password"] = data.Password
	}

	if len(updateMap) == 0 {
		return nil
	}

	tx := xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", id).Updates(updateMap)
	return checkAffected(tx)
}

func (r *userRepository) IncreaseReputation(ctx context.Context, id string, delta int) error {
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		UpdateColumn("reputation", gorm.Expr("reputation+?", delta))

	return checkAffected(tx)
}
