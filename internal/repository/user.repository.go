package repository

import (
	"context"
	"time"

	"civilregistry/internal/apperrors"
	"civilregistry/internal/models"

	"gorm.io/gorm"
)

// UserFilter narrows user counts. Zero values are ignored.
type UserFilter struct {
	Role        models.Role
	CreatedFrom time.Time
	CreatedTo   time.Time
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error)
	UsernameTaken(ctx context.Context, username string, excludeID uint) (bool, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context, filter UserFilter) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (ur *userRepository) Create(ctx context.Context, user *models.User) error {
	return translateError(ur.db.WithContext(ctx).Create(user).Error)
}

func (ur *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := ur.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := ur.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (ur *userRepository) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	return ur.taken(ctx, "email", email, excludeID)
}

func (ur *userRepository) UsernameTaken(ctx context.Context, username string, excludeID uint) (bool, error) {
	return ur.taken(ctx, "username", username, excludeID)
}

func (ur *userRepository) taken(ctx context.Context, column, value string, excludeID uint) (bool, error) {
	q := ur.db.WithContext(ctx).Model(&models.User{}).Where(column+" = ?", value)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, translateError(err)
	}
	return n > 0, nil
}

func (ur *userRepository) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := ur.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	return users, translateError(err)
}

func (ur *userRepository) Update(ctx context.Context, user *models.User) error {
	res := ur.db.WithContext(ctx).Model(user).
		Select("username", "email", "full_name", "role").
		Updates(user)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (ur *userRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	res := ur.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password", passwordHash)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (ur *userRepository) Delete(ctx context.Context, id uint) error {
	res := ur.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (ur *userRepository) Count(ctx context.Context, filter UserFilter) (int64, error) {
	q := ur.db.WithContext(ctx).Model(&models.User{})
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	if !filter.CreatedFrom.IsZero() {
		q = q.Where("created_at >= ?", filter.CreatedFrom)
	}
	if !filter.CreatedTo.IsZero() {
		q = q.Where("created_at <= ?", filter.CreatedTo)
	}
	var n int64
	err := q.Count(&n).Error
	return n, translateError(err)
}
