package companyerrors

import (
	"net/http"

	"go-timekeep/internal/shared/apperror"
)

var (
	ErrCompanyNotFound = apperror.New("COMPANY_NOT_FOUND", "Company not found", http.StatusNotFound)
	ErrCompanyExists   = apperror.New("COMPANY_ALREADY_EXISTS", "Company name already registered", http.StatusConflict)
	ErrSubnetExists    = apperror.New("SUBNET_ALREADY_EXISTS", "Subnet already registered for this company", http.StatusConflict)
	ErrInvalidCIDR     = apperror.New("INVALID_CIDR", "Subnet is not a valid CIDR block", http.StatusBadRequest)
	ErrSubnetNotFound  = apperror.New("SUBNET_NOT_FOUND", "Subnet not found", http.StatusNotFound)
)
