package company

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=company_repo.go -destination=mock/company_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *Company) error
	FindByID(ctx context.Context, id string) (*Company, error)
	AddSubnet(ctx context.Context, s *Subnet) error
	ListSubnets(ctx context.Context, companyID string) ([]Subnet, error)
	RemoveSubnet(ctx context.Context, companyID, id string) error
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

func (r *repository) Create(ctx context.Context, c *Company) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Company, error) {
	var c Company
	err := r.db.WithContext(ctx).
		Preload("Subnets").
		First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) AddSubnet(ctx context.Context, s *Subnet) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) ListSubnets(ctx context.Context, companyID string) ([]Subnet, error) {
	var subnets []Subnet
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at ASC").
		Find(&subnets).Error
	return subnets, err
}

func (r *repository) RemoveSubnet(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Delete(&Subnet{}, "id = ?", id).Error
}
