// file: internals/features/company/service/directory_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DirectoryService menjawab pertanyaan otorisasi engine: apakah worker
// ditugaskan ke site ini. Data assignment dibaca saja dari sisi engine;
// mutasinya lewat controller admin.
type DirectoryService struct {
	DB *gorm.DB
}

func NewDirectoryService(db *gorm.DB) *DirectoryService {
	return &DirectoryService{DB: db}
}

func (s *DirectoryService) IsWorkerAssigned(ctx context.Context, workerID, siteID uuid.UUID) (bool, error) {
	qctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var count int64
	err := s.DB.WithContext(qctx).
		Table("site_assignments").
		Where("site_assignment_worker_id = ?", workerID).
		Where("site_assignment_site_id = ?", siteID).
		Where("site_assignment_deleted_at IS NULL").
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// WorkerCompany mengembalikan company pemilik worker.
// gorm.ErrRecordNotFound kalau worker tidak ada.
func (s *DirectoryService) WorkerCompany(ctx context.Context, workerID uuid.UUID) (uuid.UUID, error) {
	qctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var row struct {
		CompanyID uuid.UUID `gorm:"column:worker_company_id"`
	}
	err := s.DB.WithContext(qctx).
		Table("workers").
		Select("worker_company_id").
		Where("worker_id = ? AND worker_deleted_at IS NULL", workerID).
		Take(&row).Error
	if err != nil {
		return uuid.Nil, err
	}
	return row.CompanyID, nil
}
