package shift

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"go-timekeep/internal/tenant"
)

//go:generate mockgen -source=shift_repo.go -destination=mock/shift_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *Shift) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Shift, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Shift, error)
	FindActiveByName(ctx context.Context, companyID, name string) (*Shift, error)
	Update(ctx context.Context, s *Shift) error
	Delete(ctx context.Context, companyID, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, s *Shift) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Shift, error) {
	var shifts []Shift
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Shift, error) {
	var s Shift
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) FindActiveByName(ctx context.Context, companyID, name string) (*Shift, error) {
	var s Shift
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("name = ? AND status = ?", name, StatusActive).
		First(&s).Error
	return &s, err
}

func (r *repository) Update(ctx context.Context, s *Shift) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Shift{}, "id = ?", id).Error
}
