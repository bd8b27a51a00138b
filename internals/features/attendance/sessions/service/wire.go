// file: internals/features/attendance/sessions/service/wire.go
package service

import (
	"gorm.io/gorm"

	"hadirku_backend/internals/features/attendance/sessions/repository"
	companyservice "hadirku_backend/internals/features/company/service"
	geofence "hadirku_backend/internals/features/geofence/service"
)

// NewGormSessionService merakit engine dengan kolaborator default:
// store GORM/Postgres, oracle boundary lingkaran, dan directory company.
func NewGormSessionService(db *gorm.DB) *SessionService {
	return NewSessionService(
		repository.NewGormSessionRepository(db),
		geofence.NewSiteOracle(geofence.NewGormBoundaryResolver(db)),
		companyservice.NewDirectoryService(db),
	)
}
