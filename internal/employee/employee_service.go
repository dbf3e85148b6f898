package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"go-timekeep/internal/domain"
	employeeerrors "go-timekeep/internal/employee/errors"
	"go-timekeep/internal/events"
	"go-timekeep/internal/face"
	faceerrors "go-timekeep/internal/face/errors"
	"go-timekeep/internal/messaging/kafka"
	"go-timekeep/internal/shared/contextutil"
	"go-timekeep/internal/shared/counter"
)

const EmployeeOptionsKeyPrefix = "employees:options:"

func GetEmployeeOptionsKey(companyID string) string {
	return EmployeeOptionsKeyPrefix + companyID
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context, companyID string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, companyID, id string) error

	EnrollFace(ctx context.Context, companyID, id string, image []byte) (int, error)

	// GetForVerification hands the full entity to the attendance gate and
	// scheduling code.
	GetForVerification(ctx context.Context, companyID, id string) (*Employee, error)
	GetType(ctx context.Context, companyID, id string) (domain.EmployeeType, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	counter  counter.Repository
	outbox   kafka.OutboxRepository
	rdb      *redis.Client
	verifier face.Verifier
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	verifier face.Verifier,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		counter:  counterRepo,
		outbox:   outboxRepo,
		rdb:      rdb,
		verifier: verifier,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("email", req.Email),
	)

	empType := domain.EmployeeType(req.EmployeeType)
	if !empType.Valid() {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeType
	}
	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if req.EmployeeCode == "" {
		nextVal, err := s.counter.GetNextValue(ctx, companyID, "employee_code")
		if err != nil {
			s.logger.Error("create employee generate code failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		req.EmployeeCode = fmt.Sprintf("EMP-%06d", nextVal)
	}

	baseSalary := req.BaseSalary
	if empType == domain.EmployeeTypeIntern {
		// Interns are unpaid: base salary is pinned at zero regardless of
		// input.
		baseSalary = 0
	}

	empl := &Employee{
		ID:           uuid.New(),
		CompanyID:    uuid.MustParse(companyID),
		EmployeeCode: req.EmployeeCode,
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Department:   req.Department,
		EmployeeType: empType,
		HireDate:     hireDate,
		BaseSalary:   baseSalary,
		Allowance:    req.Allowance,
		Bonus:        req.Bonus,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:    "employee_created",
			RequestID:    rid,
			EmployeeID:   empl.ID.String(),
			CompanyID:    companyID,
			EmployeeType: string(empType),
			OccurredAt:   time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return EmployeeResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   empl.ID.String(),
			EventType:     event.EventType,
			Topic:         events.EmployeeCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx, companyID)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_code", empl.EmployeeCode),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(employees), nil
}

func (s *service) GetOptions(ctx context.Context, companyID string) ([]EmployeeResponse, error) {
	cacheKey := GetEmployeeOptionsKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		emps, err := s.repo.FindOptionsByCompany(ctx, companyID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(emps)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 1*time.Hour)
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error) {
	empl, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	empType := domain.EmployeeType(req.EmployeeType)
	if !empType.Valid() {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeType
	}
	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if empl.EmployeeType != empType {
		s.logger.Info("employee type transition",
			zap.String("employee_id", id),
			zap.String("from", string(empl.EmployeeType)),
			zap.String("to", string(empType)),
		)
	}

	empl.FullName = req.FullName
	empl.Email = req.Email
	empl.Phone = req.Phone
	empl.Department = req.Department
	empl.EmployeeType = empType
	empl.HireDate = hireDate
	empl.BaseSalary = req.BaseSalary
	empl.Allowance = req.Allowance
	empl.Bonus = req.Bonus
	if empType == domain.EmployeeTypeIntern {
		empl.BaseSalary = 0
	}

	if err := qtx.Update(ctx, empl); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx, companyID)
	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateOptions(ctx, companyID)
	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

// EnrollFace extracts a descriptor from the image and appends it to the
// employee's enrolled set. Returns the new enrollment count.
func (s *service) EnrollFace(ctx context.Context, companyID, id string, image []byte) (int, error) {
	if len(image) == 0 {
		return 0, employeeerrors.ErrImageRequired
	}
	if s.verifier == nil {
		return 0, faceerrors.ErrVerificationFailed
	}

	descriptor, err := s.verifier.ExtractDescriptor(ctx, image)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return 0, mapRepositoryError(err)
	}

	empl.FaceDescriptors = append(empl.FaceDescriptors, descriptor)
	if err := qtx.Update(ctx, empl); err != nil {
		return 0, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	s.logger.Info("face enrolled",
		zap.String("employee_id", id),
		zap.Int("descriptors", len(empl.FaceDescriptors)),
	)
	return len(empl.FaceDescriptors), nil
}

func (s *service) GetForVerification(ctx context.Context, companyID, id string) (*Employee, error) {
	empl, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return empl, nil
}

func (s *service) GetType(ctx context.Context, companyID, id string) (domain.EmployeeType, error) {
	empl, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return "", mapRepositoryError(err)
	}
	return empl.EmployeeType, nil
}

func (s *service) invalidateOptions(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetEmployeeOptionsKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:            empl.ID.String(),
		CompanyID:     empl.CompanyID.String(),
		EmployeeCode:  empl.EmployeeCode,
		FullName:      empl.FullName,
		Email:         empl.Email,
		Phone:         empl.Phone,
		Department:    empl.Department,
		EmployeeType:  string(empl.EmployeeType),
		HireDate:      empl.HireDate.Format("2006-01-02"),
		BaseSalary:    empl.BaseSalary,
		Allowance:     empl.Allowance,
		Bonus:         empl.Bonus,
		FacesEnrolled: len(empl.FaceDescriptors),
	}
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		res[i] = mapToResponse(e)
	}
	return res
}
