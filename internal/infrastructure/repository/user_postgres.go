package repository

import (
	"context"
	"errors"

	"learnplatform/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateAccount inserts the user row and its role row in one transaction.
// Wallet and username are checked first so the caller learns which one
// collided; a concurrent insert that slips past the checks is reported by the
// unique index as ErrUserAlreadyExists.
func (r *UserRepository) CreateAccount(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := exists(tx, "wallet_address = ?", user.WalletAddress)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrWalletTaken
		}

		taken, err = exists(tx, "username = ?", user.Username)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrUsernameTaken
		}

		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrUserAlreadyExists
			}
			return err
		}

		switch user.Role {
		case domain.RoleStudent:
			return tx.Create(&domain.Student{UserID: user.ID, StdName: user.FullName}).Error
		case domain.RoleTeacher:
			return tx.Create(&domain.Instructor{UserID: user.ID, InsName: user.FullName}).Error
		default:
			return domain.ErrInvalidRole
		}
	})
}

func exists(tx *gorm.DB, query string, arg any) (bool, error) {
	var count int64
	err := tx.Model(&domain.User{}).Where(query, arg).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) GetByWallet(ctx context.Context, wallet string) (*domain.User, error) {
	return r.first(ctx, "wallet_address = ?", wallet)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByWalletAndRole backs the public profile pages, which only show a wallet
// when it holds the requested role.
func (r *UserRepository) GetByWalletAndRole(ctx context.Context, wallet string, role domain.Role) (*domain.User, error) {
	return r.first(ctx, "wallet_address = ? AND role = ?", wallet, role)
}

func (r *UserRepository) first(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// InstructorNames maps teacher user ids to the display names stored by create_ins.
func (r *UserRepository) InstructorNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var rows []domain.Instructor
	if err := r.db.WithContext(ctx).Where("user_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		names[row.UserID] = row.InsName
	}
	return names, nil
}
