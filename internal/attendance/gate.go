package attendance

import (
	"context"
	"time"

	"go.uber.org/zap"

	attendanceerrors "go-timekeep/internal/attendance/errors"
	"go-timekeep/internal/employee"
	"go-timekeep/internal/face"
	faceerrors "go-timekeep/internal/face/errors"
	"go-timekeep/internal/request"
)

// NetworkChecker reports whether an IP belongs to the company's registered
// subnets. Satisfied by the company service.
type NetworkChecker interface {
	IsIPAllowed(ctx context.Context, companyID, ip string) (bool, error)
}

// ApprovalChecker answers whether an approved request of a kind covers a
// date. Satisfied by the request service.
type ApprovalChecker interface {
	HasApprovedCovering(ctx context.Context, companyID, employeeID string, kind request.Kind, date time.Time) (bool, error)
}

// Gate runs the fixed sequence of admission checks before any attendance
// mutation. Checks run in order and the first failure wins, so a caller can
// always tell which requirement was violated.
type Gate struct {
	faceRequired bool
	verifier     face.Verifier
	matcher      face.Matcher
	network      NetworkChecker
	approvals    ApprovalChecker
	logger       *zap.Logger
}

func NewGate(
	faceRequired bool,
	verifier face.Verifier,
	matcher face.Matcher,
	network NetworkChecker,
	approvals ApprovalChecker,
	logger ...*zap.Logger,
) *Gate {
	l := zap.L().Named("attendance.gate")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &Gate{
		faceRequired: faceRequired,
		verifier:     verifier,
		matcher:      matcher,
		network:      network,
		approvals:    approvals,
		logger:       l,
	}
}

type AdmissionInput struct {
	Employee  *employee.Employee
	Latitude  *float64
	Longitude *float64
	Image     []byte
	IP        string
	Now       time.Time
}

func (g *Gate) Admit(ctx context.Context, in AdmissionInput) error {
	companyID := in.Employee.CompanyID.String()
	employeeID := in.Employee.ID.String()

	if in.Latitude == nil || in.Longitude == nil {
		return attendanceerrors.ErrLocationRequired
	}

	if g.faceRequired {
		if len(in.Image) == 0 {
			return attendanceerrors.ErrImageRequired
		}
		if len(in.Employee.FaceDescriptors) == 0 {
			return faceerrors.ErrNotEnrolled
		}

		probe, err := g.verifier.ExtractDescriptor(ctx, in.Image)
		if err != nil {
			return err
		}

		enrolled := make([]face.Descriptor, len(in.Employee.FaceDescriptors))
		for i, d := range in.Employee.FaceDescriptors {
			enrolled[i] = face.Descriptor(d)
		}
		if !g.matcher.Match(probe, enrolled) {
			g.logger.Warn("face mismatch",
				zap.String("company_id", companyID),
				zap.String("employee_id", employeeID),
			)
			return faceerrors.ErrFaceMismatch
		}
	}

	allowed, err := g.network.IsIPAllowed(ctx, companyID, in.IP)
	if err != nil {
		return err
	}
	if !allowed {
		// Approved remote work for today lifts the network requirement.
		remote, err := g.approvals.HasApprovedCovering(ctx, companyID, employeeID, request.KindRemoteWork, in.Now)
		if err != nil {
			return err
		}
		if !remote {
			g.logger.Warn("check from unregistered network",
				zap.String("company_id", companyID),
				zap.String("employee_id", employeeID),
				zap.String("ip", in.IP),
			)
			return attendanceerrors.ErrOutsideNetwork
		}
	}

	// A day under approved leave cannot also be an attendance day.
	onLeave, err := g.approvals.HasApprovedCovering(ctx, companyID, employeeID, request.KindLeave, in.Now)
	if err != nil {
		return err
	}
	if onLeave {
		return attendanceerrors.ErrOnApprovedLeave
	}

	return nil
}
