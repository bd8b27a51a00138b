// file: internals/features/users/service/import_service.go
package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"hadirku_backend/internals/constants"
	"hadirku_backend/internals/features/users/model"
)

// ImportWorkersCSV membaca CSV berformat: email,full_name,password[,role]
// (baris pertama boleh header). Baris yang tidak valid atau duplikat email
// dilewati dan dicatat, bukan menggagalkan seluruh import.
func (s *AuthService) ImportWorkersCSV(ctx context.Context, companyID uuid.UUID, r io.Reader) (int, []string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	created := 0
	var skipped []string
	line := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return created, skipped, fmt.Errorf("csv rusak di baris %d: %w", line+1, err)
		}
		line++

		if len(record) < 3 {
			skipped = append(skipped, fmt.Sprintf("baris %d: kolom kurang", line))
			continue
		}

		email := strings.ToLower(strings.TrimSpace(record[0]))
		fullName := strings.TrimSpace(record[1])
		password := strings.TrimSpace(record[2])

		// lewati header
		if line == 1 && email == "email" {
			continue
		}

		role := constants.RoleWorker
		if len(record) >= 4 {
			if v := strings.TrimSpace(record[3]); v != "" {
				role = v
			}
		}
		if role != constants.RoleWorker && role != constants.RoleAdmin {
			skipped = append(skipped, fmt.Sprintf("baris %d: role %q tidak dikenal", line, role))
			continue
		}
		if email == "" || fullName == "" || len(password) < 8 {
			skipped = append(skipped, fmt.Sprintf("baris %d: email/nama/password tidak valid", line))
			continue
		}

		var exists int64
		if err := s.DB.WithContext(ctx).
			Model(&model.WorkerModel{}).
			Where("worker_email = ?", email).
			Count(&exists).Error; err != nil {
			return created, skipped, err
		}
		if exists > 0 {
			skipped = append(skipped, fmt.Sprintf("baris %d: email %s sudah terdaftar", line, email))
			continue
		}

		hash, err := HashPassword(password)
		if err != nil {
			return created, skipped, err
		}

		worker := model.WorkerModel{
			WorkerCompanyID:    companyID,
			WorkerEmail:        email,
			WorkerPasswordHash: hash,
			WorkerFullName:     fullName,
			WorkerRole:         role,
		}
		if err := s.DB.WithContext(ctx).Create(&worker).Error; err != nil {
			skipped = append(skipped, fmt.Sprintf("baris %d: gagal simpan (%v)", line, err))
			continue
		}
		created++
	}

	return created, skipped, nil
}
