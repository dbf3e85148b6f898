package shift

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"go-timekeep/internal/config"
	shifterrors "go-timekeep/internal/shift/errors"
)

const ShiftAllKeyPrefix = "shifts:all:"

func GetShiftAllKey(companyID string) string {
	return ShiftAllKeyPrefix + companyID
}

//go:generate mockgen -source=shift_service.go -destination=mock/shift_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateShiftRequest) (ShiftResponse, error)
	GetAll(ctx context.Context, companyID string) ([]ShiftResponse, error)
	GetByID(ctx context.Context, companyID, id string) (ShiftResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateShiftRequest) (ShiftResponse, error)
	Delete(ctx context.Context, companyID, id string) error

	// EnsureAdministrative returns the company's default shift, creating it
	// on first use with the configured work hours.
	EnsureAdministrative(ctx context.Context, companyID string) (*Shift, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	hours  config.WorkHoursConfig
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, hours config.WorkHoursConfig, logger ...*zap.Logger) Service {
	l := zap.L().Named("shift.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, hours: hours, logger: l}
}

func validateWallClock(start, end string) error {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return shifterrors.ErrInvalidShiftTime
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return shifterrors.ErrInvalidShiftTime
	}
	if !s.Before(e) {
		return shifterrors.ErrInvalidShiftTime
	}
	return nil
}

func (s *service) Create(ctx context.Context, companyID string, req CreateShiftRequest) (ShiftResponse, error) {
	if err := validateWallClock(req.StartTime, req.EndTime); err != nil {
		return ShiftResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ShiftResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sh := &Shift{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    StatusActive,
	}
	if err := qtx.Create(ctx, sh); err != nil {
		return ShiftResponse{}, MapShiftError(err)
	}

	if err := tx.Commit(); err != nil {
		return ShiftResponse{}, err
	}

	s.invalidateList(ctx, companyID)
	return mapToResponse(*sh), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]ShiftResponse, error) {
	cacheKey := GetShiftAllKey(companyID)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp []ShiftResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		shifts, err := s.repo.FindAllByCompany(ctx, companyID)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(shifts)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 30*time.Minute)
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]ShiftResponse), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (ShiftResponse, error) {
	sh, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ShiftResponse{}, shifterrors.ErrShiftNotFound
		}
		return ShiftResponse{}, err
	}
	return mapToResponse(*sh), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateShiftRequest) (ShiftResponse, error) {
	if err := validateWallClock(req.StartTime, req.EndTime); err != nil {
		return ShiftResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ShiftResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sh, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ShiftResponse{}, shifterrors.ErrShiftNotFound
		}
		return ShiftResponse{}, err
	}

	sh.Name = req.Name
	sh.StartTime = req.StartTime
	sh.EndTime = req.EndTime
	sh.Status = req.Status

	if err := qtx.Update(ctx, sh); err != nil {
		return ShiftResponse{}, MapShiftError(err)
	}

	if err := tx.Commit(); err != nil {
		return ShiftResponse{}, err
	}

	s.invalidateList(ctx, companyID)
	return mapToResponse(*sh), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateList(ctx, companyID)
	return nil
}

func (s *service) EnsureAdministrative(ctx context.Context, companyID string) (*Shift, error) {
	sh, err := s.repo.FindActiveByName(ctx, companyID, s.hours.AdministrativeShiftName)
	if err == nil {
		return sh, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	sh = &Shift{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		Name:      s.hours.AdministrativeShiftName,
		StartTime: s.hours.WorkStart,
		EndTime:   s.hours.WorkEnd,
		Status:    StatusActive,
	}
	if err := s.repo.Create(ctx, sh); err != nil {
		// Lost a race with a concurrent first use. The winner's row is
		// the one we want.
		if errors.Is(MapShiftError(err), shifterrors.ErrShiftExists) {
			return s.repo.FindActiveByName(ctx, companyID, s.hours.AdministrativeShiftName)
		}
		return nil, err
	}

	s.logger.Info("administrative shift provisioned",
		zap.String("company_id", companyID),
		zap.String("shift_id", sh.ID))
	s.invalidateList(ctx, companyID)
	return sh, nil
}

func (s *service) invalidateList(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetShiftAllKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate cache", zap.String("key", cacheKey), zap.Error(err))
	}
}
