// file: internals/features/geofence/service/oracle.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Koordinat GPS (WGS84).
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ErrBoundaryLookupFailed: site atau boundary-nya tidak bisa di-resolve.
// Untuk clock-in diperlakukan fail-closed: worker ditolak, bukan diloloskan.
var ErrBoundaryLookupFailed = errors.New("boundary site tidak bisa di-resolve")

// Oracle menjawab satu pertanyaan: apakah koordinat ini berada di dalam
// boundary site tersebut. Stateless, tanpa efek samping; engine memanggil
// tepat satu kali per OpenSession/RenewLease.
type Oracle interface {
	IsInside(ctx context.Context, coord Coordinate, siteID uuid.UUID) (bool, error)
}
