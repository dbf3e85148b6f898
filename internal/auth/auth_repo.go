package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, account *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, account *Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	var account Account
	err := r.db.WithContext(ctx).
		Where("email = ? AND is_active", strings.ToLower(strings.TrimSpace(email))).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	normalizeRole(&account)
	return &account, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	var account Account
	err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	normalizeRole(&account)
	return &account, nil
}

func normalizeRole(account *Account) {
	role := strings.ToUpper(strings.TrimSpace(account.Role))
	if role == "" {
		role = "EMPLOYEE"
	}
	account.Role = role
}
