package repository

import (
	"context"
	"strings"
	"time"

	"authapi/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID             string     `gorm:"column:id;primaryKey"`
	Email          string     `gorm:"column:email;uniqueIndex"`
	PasswordHash   string     `gorm:"column:password_hash"`
	FirstName      string     `gorm:"column:first_name"`
	LastName       string     `gorm:"column:last_name"`
	PhoneNumber    *string    `gorm:"column:phone_number"`
	DateOfBirth    *time.Time `gorm:"column:date_of_birth"`
	ProfilePicture *string    `gorm:"column:profile_picture"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	var phone, picture string
	if m.PhoneNumber != nil {
		phone = *m.PhoneNumber
	}
	if m.ProfilePicture != nil {
		picture = *m.ProfilePicture
	}

	return &domain.User{
		ID:             m.ID,
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		PhoneNumber:    phone,
		DateOfBirth:    m.DateOfBirth,
		ProfilePicture: picture,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	email := strings.TrimSpace(strings.ToLower(u.Email))

	var phone, picture *string
	if u.PhoneNumber != "" {
		v := u.PhoneNumber
		phone = &v
	}
	if u.ProfilePicture != "" {
		v := u.ProfilePicture
		picture = &v
	}

	return userModel{
		ID:             u.ID,
		Email:          email,
		PasswordHash:   u.PasswordHash,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		PhoneNumber:    phone,
		DateOfBirth:    u.DateOfBirth,
		ProfilePicture: picture,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&userModel{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", m.ID).Updates(&m)
	if tx.Error != nil {
		return tx.Error
	}
	refreshed, err := r.GetByID(ctx, u.ID)
	if err != nil {
		return err
	}
	*u = *refreshed
	return nil
}
