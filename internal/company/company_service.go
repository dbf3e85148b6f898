package company

import (
	"context"
	"errors"
	"net/netip"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	companyerrors "go-timekeep/internal/company/errors"
)

type Service interface {
	Create(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, error)
	GetByID(ctx context.Context, id string) (*CompanyResponse, error)
	AddSubnet(ctx context.Context, companyID string, req AddSubnetRequest) (*SubnetResponse, error)
	RemoveSubnet(ctx context.Context, companyID, subnetID string) error
	ListSubnets(ctx context.Context, companyID string) ([]SubnetResponse, error)
	IsIPAllowed(ctx context.Context, companyID, ip string) (bool, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, error) {
	c := &Company{
		ID:      uuid.New(),
		Name:    req.Name,
		Address: &req.Address,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, MapCompanyError(err)
	}

	s.logger.Info("company created", zap.String("company_id", c.ID.String()), zap.String("name", c.Name))
	resp := toCompanyResponse(c)
	return &resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*CompanyResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		return nil, err
	}
	resp := toCompanyResponse(c)
	return &resp, nil
}

func (s *service) AddSubnet(ctx context.Context, companyID string, req AddSubnetRequest) (*SubnetResponse, error) {
	prefix, err := netip.ParsePrefix(req.CIDR)
	if err != nil {
		return nil, companyerrors.ErrInvalidCIDR
	}

	if _, err := s.repo.FindByID(ctx, companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		return nil, err
	}

	sub := &Subnet{
		ID:        uuid.New(),
		CompanyID: uuid.MustParse(companyID),
		CIDR:      prefix.Masked().String(),
		Label:     &req.Label,
	}
	if err := s.repo.AddSubnet(ctx, sub); err != nil {
		return nil, MapCompanyError(err)
	}

	s.logger.Info("subnet registered",
		zap.String("company_id", companyID),
		zap.String("cidr", sub.CIDR))
	resp := toSubnetResponse(*sub)
	return &resp, nil
}

func (s *service) RemoveSubnet(ctx context.Context, companyID, subnetID string) error {
	return s.repo.RemoveSubnet(ctx, companyID, subnetID)
}

func (s *service) ListSubnets(ctx context.Context, companyID string) ([]SubnetResponse, error) {
	subnets, err := s.repo.ListSubnets(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]SubnetResponse, 0, len(subnets))
	for _, sub := range subnets {
		out = append(out, toSubnetResponse(sub))
	}
	return out, nil
}

// IsIPAllowed reports whether ip falls inside any CIDR block registered for
// the company. A company with no registered subnets allows nothing.
func (s *service) IsIPAllowed(ctx context.Context, companyID, ip string) (bool, error) {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false, nil
	}

	subnets, err := s.repo.ListSubnets(ctx, companyID)
	if err != nil {
		return false, err
	}
	for _, sub := range subnets {
		prefix, err := netip.ParsePrefix(sub.CIDR)
		if err != nil {
			s.logger.Warn("skipping malformed subnet",
				zap.String("company_id", companyID),
				zap.String("cidr", sub.CIDR))
			continue
		}
		if prefix.Contains(addr.Unmap()) {
			return true, nil
		}
	}
	return false, nil
}
