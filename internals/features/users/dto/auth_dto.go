// file: internals/features/users/dto/auth_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "hadirku_backend/internals/features/users/model"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	Worker      WorkerResponse `json:"worker"`
}

type CreateWorkerRequest struct {
	WorkerEmail    string `json:"worker_email" validate:"required,email"`
	WorkerPassword string `json:"worker_password" validate:"required,min=8"`
	WorkerFullName string `json:"worker_full_name" validate:"required,max=160"`
	WorkerRole     string `json:"worker_role" validate:"omitempty,oneof=worker admin"`
}

type WorkerResponse struct {
	WorkerID        uuid.UUID `json:"worker_id"`
	WorkerCompanyID uuid.UUID `json:"worker_company_id"`
	WorkerEmail     string    `json:"worker_email"`
	WorkerFullName  string    `json:"worker_full_name"`
	WorkerRole      string    `json:"worker_role"`
	WorkerIsActive  bool      `json:"worker_is_active"`
	WorkerCreatedAt time.Time `json:"worker_created_at"`
}

func FromWorkerModel(mdl m.WorkerModel) WorkerResponse {
	return WorkerResponse{
		WorkerID:        mdl.WorkerID,
		WorkerCompanyID: mdl.WorkerCompanyID,
		WorkerEmail:     mdl.WorkerEmail,
		WorkerFullName:  mdl.WorkerFullName,
		WorkerRole:      mdl.WorkerRole,
		WorkerIsActive:  mdl.WorkerIsActive,
		WorkerCreatedAt: mdl.WorkerCreatedAt,
	}
}

// Hasil import CSV: berapa baris masuk, baris mana yang ditolak.
type ImportWorkersResult struct {
	Created int      `json:"created"`
	Skipped []string `json:"skipped,omitempty"`
}
