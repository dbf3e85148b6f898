package request

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	requesterrors "go-timekeep/internal/request/errors"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
	StatusCanceled = "CANCELLED"
)

//go:generate mockgen -source=request_service.go -destination=mock/request_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateRequest) (RequestResponse, error)
	GetAll(ctx context.Context, companyID string, kind, status *string) ([]RequestResponse, error)
	GetMine(ctx context.Context, companyID, employeeID string) ([]RequestResponse, error)
	GetByID(ctx context.Context, companyID, id string) (RequestResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string) (RequestResponse, error)
	Reject(ctx context.Context, companyID, actorID, id, reason string) (RequestResponse, error)
	Cancel(ctx context.Context, companyID, actorID, id string) (RequestResponse, error)

	// HasApprovedCovering is consumed by the attendance gate.
	HasApprovedCovering(ctx context.Context, companyID, employeeID string, kind Kind, date time.Time) (bool, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("request.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("request.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateRequest) (RequestResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create request begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidCompanyID
	}
	createdByUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidActorID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidEmployeeID
	}

	kind := Kind(req.Kind)
	if !kind.Valid() {
		return RequestResponse{}, requesterrors.ErrInvalidKind
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return RequestResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return RequestResponse{}, err
	}
	if startDate.After(endDate) {
		return RequestResponse{}, requesterrors.ErrInvalidDateRange
	}

	var targetShiftID *uuid.UUID
	if kind == KindShiftChange {
		if req.TargetShiftID == nil || *req.TargetShiftID == "" {
			return RequestResponse{}, requesterrors.ErrTargetShiftRequired
		}
		parsed, err := uuid.Parse(*req.TargetShiftID)
		if err != nil {
			return RequestResponse{}, requesterrors.ErrTargetShiftRequired
		}
		targetShiftID = &parsed
	}

	belongs, err := qtx.EmployeeBelongsToCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		s.logger.Error("create request employee company check failed", zap.Error(err))
		return RequestResponse{}, err
	}
	if !belongs {
		return RequestResponse{}, requesterrors.ErrEmployeeNotInCompany
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, companyID, req.EmployeeID, kind, startDate, endDate, nil)
	if err != nil {
		s.logger.Error("create request overlap check failed", zap.Error(err))
		return RequestResponse{}, err
	}
	if overlap {
		s.logger.Warn("create request overlap detected",
			zap.String("company_id", companyID),
			zap.String("employee_id", req.EmployeeID),
			zap.String("kind", string(kind)),
		)
		return RequestResponse{}, requesterrors.ErrRequestOverlap
	}

	totalDays := int(endDate.Sub(startDate).Hours()/24) + 1
	rec := &Request{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		EmployeeID:    employeeUUID,
		Kind:          kind,
		StartDate:     startDate,
		EndDate:       endDate,
		TotalDays:     totalDays,
		Reason:        req.Reason,
		TargetShiftID: targetShiftID,
		Status:        StatusPending,
		CreatedBy:     createdByUUID,
	}

	if err := qtx.Create(ctx, rec); err != nil {
		s.logger.Error("create request persist failed", zap.Error(err))
		return RequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create request commit failed", zap.Error(err))
		return RequestResponse{}, err
	}
	s.logger.Info("create request success",
		zap.String("request_id", rec.ID.String()),
		zap.String("kind", string(kind)),
		zap.String("employee_id", req.EmployeeID),
	)

	return mapToResponse(*rec), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, kind, status *string) ([]RequestResponse, error) {
	var kindFilter *Kind
	if kind != nil && *kind != "" {
		k := Kind(*kind)
		if !k.Valid() {
			return nil, requesterrors.ErrInvalidKind
		}
		kindFilter = &k
	}
	var statusFilter *string
	if status != nil && *status != "" {
		statusFilter = status
	}

	requests, err := s.repo.FindAllByCompany(ctx, companyID, kindFilter, statusFilter)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetMine(ctx context.Context, companyID, employeeID string) ([]RequestResponse, error) {
	requests, err := s.repo.FindAllByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (RequestResponse, error) {
	rec, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, requesterrors.ErrRequestNotFound
		}
		return RequestResponse{}, err
	}
	return mapToResponse(*rec), nil
}

func (s *service) Approve(ctx context.Context, companyID, actorID, id string) (RequestResponse, error) {
	return s.transition(ctx, companyID, actorID, id, StatusApproved, nil)
}

func (s *service) Reject(ctx context.Context, companyID, actorID, id, reason string) (RequestResponse, error) {
	return s.transition(ctx, companyID, actorID, id, StatusRejected, &reason)
}

func (s *service) Cancel(ctx context.Context, companyID, actorID, id string) (RequestResponse, error) {
	return s.transition(ctx, companyID, actorID, id, StatusCanceled, nil)
}

// Decisions are one-way: only a pending request can move, and every target
// status is terminal.
func (s *service) transition(ctx context.Context, companyID, actorID, id, targetStatus string, rejectionReason *string) (RequestResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("transition request begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err = uuid.Parse(companyID); err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidActorID
	}

	rec, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, requesterrors.ErrRequestNotFound
		}
		return RequestResponse{}, err
	}
	if rec.Status != StatusPending {
		s.logger.Warn("transition request invalid",
			zap.String("request_id", id),
			zap.String("from_status", rec.Status),
			zap.String("to_status", targetStatus),
		)
		return RequestResponse{}, requesterrors.ErrInvalidStatusTransition
	}
	if targetStatus == StatusCanceled && rec.CreatedBy != actorUUID {
		return RequestResponse{}, requesterrors.ErrNotRequestOwner
	}

	rec.Status = targetStatus
	switch targetStatus {
	case StatusApproved:
		rec.ApprovedBy = &actorUUID
		now := time.Now().UTC()
		rec.ApprovedAt = &now
	case StatusRejected:
		if rejectionReason == nil || *rejectionReason == "" {
			return RequestResponse{}, requesterrors.ErrRejectionReasonRequired
		}
		rec.RejectionReason = rejectionReason
	}

	if err := qtx.Update(ctx, rec); err != nil {
		s.logger.Error("transition request persist failed",
			zap.String("request_id", id),
			zap.Error(err),
		)
		return RequestResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("transition request commit failed",
			zap.String("request_id", id),
			zap.Error(err),
		)
		return RequestResponse{}, err
	}
	s.logger.Info("transition request success",
		zap.String("request_id", id),
		zap.String("status", targetStatus),
	)
	return mapToResponse(*rec), nil
}

func (s *service) HasApprovedCovering(ctx context.Context, companyID, employeeID string, kind Kind, date time.Time) (bool, error) {
	return s.repo.HasApprovedCovering(ctx, companyID, employeeID, kind, date)
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, requesterrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(r Request) RequestResponse {
	resp := RequestResponse{
		ID:         r.ID.String(),
		CompanyID:  r.CompanyID.String(),
		EmployeeID: r.EmployeeID.String(),
		Kind:       string(r.Kind),
		StartDate:  r.StartDate.Format("2006-01-02"),
		EndDate:    r.EndDate.Format("2006-01-02"),
		TotalDays:  r.TotalDays,
		Reason:     r.Reason,
		Status:     r.Status,
		CreatedBy:  r.CreatedBy.String(),
	}
	if r.TargetShiftID != nil {
		v := r.TargetShiftID.String()
		resp.TargetShiftID = &v
	}
	if r.ApprovedBy != nil {
		v := r.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if r.ApprovedAt != nil {
		v := r.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	resp.RejectionReason = r.RejectionReason
	return resp
}

func mapToListResponse(requests []Request) []RequestResponse {
	resp := make([]RequestResponse, len(requests))
	for i, r := range requests {
		resp[i] = mapToResponse(r)
	}
	return resp
}
