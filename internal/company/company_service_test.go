package company_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"

	"go-timekeep/internal/company"
	companyerrors "go-timekeep/internal/company/errors"
	companyMock "go-timekeep/internal/company/mock"
)

func TestService_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := companyMock.NewMockRepository(ctrl)
	service := company.NewService(mockRepo)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		id := uuid.NewString()
		address := "12 Main St"
		label := "HQ"
		mockComp := &company.Company{
			ID:      uuid.MustParse(id),
			Name:    "Acme Corp",
			Address: &address,
			Subnets: []company.Subnet{
				{ID: uuid.New(), CompanyID: uuid.MustParse(id), CIDR: "10.0.0.0/24", Label: &label},
			},
		}

		mockRepo.EXPECT().FindByID(ctx, id).Return(mockComp, nil)

		resp, err := service.GetByID(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, mockComp.Name, resp.Name)
		assert.Len(t, resp.Subnets, 1)
	})

	t.Run("Not Found", func(t *testing.T) {
		id := uuid.NewString()
		mockRepo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := service.GetByID(ctx, id)
		assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
	})
}

func TestService_AddSubnet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := companyMock.NewMockRepository(ctrl)
	service := company.NewService(mockRepo)
	ctx := context.Background()

	t.Run("Rejects malformed CIDR", func(t *testing.T) {
		_, err := service.AddSubnet(ctx, uuid.NewString(), company.AddSubnetRequest{CIDR: "10.0.0.0"})
		assert.ErrorIs(t, err, companyerrors.ErrInvalidCIDR)
	})

	t.Run("Normalizes prefix to network address", func(t *testing.T) {
		id := uuid.NewString()
		mockRepo.EXPECT().FindByID(ctx, id).Return(&company.Company{ID: uuid.MustParse(id)}, nil)

		var saved *company.Subnet
		mockRepo.EXPECT().AddSubnet(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, s *company.Subnet) error {
				saved = s
				return nil
			})

		resp, err := service.AddSubnet(ctx, id, company.AddSubnetRequest{CIDR: "10.0.0.17/24", Label: "office"})

		assert.NoError(t, err)
		assert.Equal(t, "10.0.0.0/24", saved.CIDR)
		assert.Equal(t, "10.0.0.0/24", resp.CIDR)
	})
}

func TestService_IsIPAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := companyMock.NewMockRepository(ctrl)
	service := company.NewService(mockRepo)
	ctx := context.Background()
	companyID := uuid.NewString()

	subnets := []company.Subnet{
		{CIDR: "10.0.0.0/24"},
		{CIDR: "192.168.1.0/28"},
	}

	t.Run("Inside registered subnet", func(t *testing.T) {
		mockRepo.EXPECT().ListSubnets(ctx, companyID).Return(subnets, nil)

		ok, err := service.IsIPAllowed(ctx, companyID, "192.168.1.9")
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Outside every subnet", func(t *testing.T) {
		mockRepo.EXPECT().ListSubnets(ctx, companyID).Return(subnets, nil)

		ok, err := service.IsIPAllowed(ctx, companyID, "172.16.4.2")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("No subnets registered allows nothing", func(t *testing.T) {
		mockRepo.EXPECT().ListSubnets(ctx, companyID).Return(nil, nil)

		ok, err := service.IsIPAllowed(ctx, companyID, "10.0.0.5")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Unparseable address is denied without error", func(t *testing.T) {
		ok, err := service.IsIPAllowed(ctx, companyID, "not-an-ip")
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}
