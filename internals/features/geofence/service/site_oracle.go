// file: internals/features/geofence/service/site_oracle.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BoundaryResolver mengambil boundary milik satu site.
// gorm.ErrRecordNotFound artinya site tidak ada / tidak punya boundary.
type BoundaryResolver interface {
	BoundaryBySite(ctx context.Context, siteID uuid.UUID) (Circle, error)
}

// SiteOracle: implementasi Oracle berbasis boundary lingkaran per site.
type SiteOracle struct {
	Resolver BoundaryResolver
}

func NewSiteOracle(resolver BoundaryResolver) *SiteOracle {
	return &SiteOracle{Resolver: resolver}
}

func (o *SiteOracle) IsInside(ctx context.Context, coord Coordinate, siteID uuid.UUID) (bool, error) {
	boundary, err := o.Resolver.BoundaryBySite(ctx, siteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrBoundaryLookupFailed
		}
		// transient (timeout dsb.): satu kali retry, lalu menyerah fail-closed
		boundary, err = o.Resolver.BoundaryBySite(ctx, siteID)
		if err != nil {
			return false, ErrBoundaryLookupFailed
		}
	}
	return boundary.Contains(coord), nil
}

// GormBoundaryResolver membaca boundary dari tabel sites.
type GormBoundaryResolver struct {
	DB *gorm.DB
}

func NewGormBoundaryResolver(db *gorm.DB) *GormBoundaryResolver {
	return &GormBoundaryResolver{DB: db}
}

func (r *GormBoundaryResolver) BoundaryBySite(ctx context.Context, siteID uuid.UUID) (Circle, error) {
	type boundaryRow struct {
		Lat     float64 `gorm:"column:site_center_lat"`
		Lon     float64 `gorm:"column:site_center_lon"`
		RadiusM float64 `gorm:"column:site_radius_m"`
	}

	qctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var row boundaryRow
	if err := r.DB.WithContext(qctx).
		Table("sites").
		Select("site_center_lat, site_center_lon, site_radius_m").
		Where("site_id = ? AND site_deleted_at IS NULL", siteID).
		Take(&row).Error; err != nil {
		return Circle{}, err
	}

	return Circle{CenterLat: row.Lat, CenterLon: row.Lon, RadiusM: row.RadiusM}, nil
}
