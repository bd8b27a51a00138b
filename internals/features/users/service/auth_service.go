// file: internals/features/users/service/auth_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"hadirku_backend/internals/configs"
	"hadirku_backend/internals/features/users/model"
)

var ErrInvalidCredentials = errors.New("email atau password salah")

type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

// Login memverifikasi kredensial dan menerbitkan access token berisi
// identitas yang dibutuhkan engine: user_id, company_id, role.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.WorkerModel, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var worker model.WorkerModel
	err := s.DB.WithContext(ctx).
		Where("worker_email = ? AND worker_is_active = TRUE", email).
		Take(&worker).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !ComparePassword(worker.WorkerPasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := buildAccessToken(&worker, time.Now())
	if err != nil {
		return "", nil, err
	}
	return token, &worker, nil
}

func buildAccessToken(worker *model.WorkerModel, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":        worker.WorkerID.String(),
		"user_id":    worker.WorkerID.String(),
		"company_id": worker.WorkerCompanyID.String(),
		"role":       worker.WorkerRole,
		"iat":        now.Unix(),
		"exp":        now.Add(24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
}
