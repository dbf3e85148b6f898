package auth

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	autherrors "go-timekeep/internal/auth/errors"
	"go-timekeep/internal/employee"
	employeeerrors "go-timekeep/internal/employee/errors"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

// EmployeeLookup verifies the employee an account is bound to.
type EmployeeLookup interface {
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error)
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
	Register(ctx context.Context, companyID string, req RegisterRequest) (AuthResponse, error)
}

type service struct {
	repo      Repository
	employees EmployeeLookup
	logger    *zap.Logger
}

func NewService(repo Repository, employees EmployeeLookup, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, employees: employees, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		// Same failure for unknown email and wrong password.
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		s.logger.Warn("failed login attempt", zap.String("email", email))
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	accessToken, err := s.generateToken(account, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, err
	}
	refreshToken, err := s.generateToken(account, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	return accessToken, refreshToken, mapAccount(account), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	account, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrAccountNotFound
	}
	if !account.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrAccountDisabled
	}

	newAccess, err := s.generateToken(account, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, err
	}
	newRefresh, err := s.generateToken(account, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	return newAccess, newRefresh, mapAccount(account), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidToken
	}

	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrAccountNotFound
	}

	resp := mapAccount(account)
	return &resp, nil
}

// Register creates an account for an existing employee of the caller's
// company. Admin-only; the role defaults to EMPLOYEE.
func (s *service) Register(ctx context.Context, companyID string, req RegisterRequest) (AuthResponse, error) {
	empl, err := s.employees.FindByIDAndCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return AuthResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role == "" {
		role = "EMPLOYEE"
	}

	employeeID := empl.ID
	account := &Account{
		ID:         uuid.New(),
		CompanyID:  empl.CompanyID,
		EmployeeID: &employeeID,
		Name:       req.Name,
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Password:   string(hashed),
		Role:       role,
		IsActive:   true,
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return AuthResponse{}, mapAuthError(err)
	}

	s.logger.Info("account registered",
		zap.String("account_id", account.ID.String()),
		zap.String("employee_id", employeeID.String()),
	)
	return mapAccount(account), nil
}

func (s *service) generateToken(account *Account, ttl time.Duration) (string, error) {
	employeeID := ""
	if account.EmployeeID != nil {
		employeeID = account.EmployeeID.String()
	}
	claims := jwt.MapClaims{
		"user_id":     account.ID.String(),
		"employee_id": employeeID,
		"company_id":  account.CompanyID.String(),
		"role":        account.Role,
		"exp":         time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapAccount(account *Account) AuthResponse {
	resp := AuthResponse{
		ID:        account.ID.String(),
		CompanyID: account.CompanyID.String(),
		Email:     account.Email,
		Name:      account.Name,
		Role:      account.Role,
	}
	if account.EmployeeID != nil {
		resp.EmployeeID = account.EmployeeID.String()
	}
	return resp
}
